package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the services.
const (
	TemplateInvitation    = "claim_invitation"
	TemplateAuctionClosed = "auction_closed"
)

// TemplateManager is an in-memory TemplateRenderer.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-ins are compile-checked by tests; ignore the error here.
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var builtinTemplates = map[string]string{
	TemplateInvitation: `<html><body>
<h2>You have been invited to bid on a restoration project</h2>
<p>Hello {{.ContractorName}},</p>
<p>A homeowner invited you to review their {{.ProjectType}} claim in {{.City}}, {{.State}}.</p>
<p>Sign in to review the details and accept or decline the invitation.</p>
</body></html>`,

	TemplateAuctionClosed: `<html><body>
<h2>Your auction has closed</h2>
<p>Hello {{.OwnerName}},</p>
<p>The bidding window for your {{.ProjectType}} claim has ended with {{.BidCount}} bid(s).</p>
<p>Sign in to review the results.</p>
</body></html>`,
}
