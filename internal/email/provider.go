package email

// Provider sends outbound email.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders a named template and sends it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	Validate() error
	Close() error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name, template string) error
}
