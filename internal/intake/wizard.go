package intake

import (
	"fmt"
	"sync"

	"github.com/VendleServices/vendle-backend/pkg/apperrors"
)

// Wizard steps, in order.
const (
	StepLocation = iota + 1
	StepProject
	StepDamage
	StepProperty
	StepTimeline
	StepCosts
	StepFunding
	StepReview

	TotalSteps = StepReview
)

var stepNames = map[int]string{
	StepLocation: "location",
	StepProject:  "project",
	StepDamage:   "damage_types",
	StepProperty: "property_questions",
	StepTimeline: "timeline",
	StepCosts:    "costs",
	StepFunding:  "funding",
	StepReview:   "review",
}

// StepName returns the step's wire name, or its number for unknown values.
func StepName(step int) string {
	if name, ok := stepNames[step]; ok {
		return name
	}
	return fmt.Sprintf("step_%d", step)
}

// Wizard drives one homeowner's claim intake: an ordered step sequence with
// per-step validation gating forward navigation. The draft is owned
// exclusively by this instance for the duration of the flow.
type Wizard struct {
	mu sync.Mutex

	OwnerID string

	step        int
	draft       DraftClaim
	attachments Attachments
}

// NewWizard starts a fresh flow at step 1 with an empty draft.
func NewWizard(ownerID string, maxPDFSize int64) *Wizard {
	return &Wizard{
		OwnerID:     ownerID,
		step:        StepLocation,
		attachments: Attachments{maxPDFSize: maxPDFSize},
	}
}

// Step returns the current step index (1-based).
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() DraftClaim {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// ApplyStep merges a payload into the draft. Data for later steps is never
// destroyed; only fields present in the payload change.
func (w *Wizard) ApplyStep(p *StepPayload) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.apply(p)
}

// IsStepValid is a pure predicate over the current draft.
func (w *Wizard) IsStepValid(step int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.stepValid(step)
}

func (d *DraftClaim) stepValid(step int) bool {
	switch step {
	case StepLocation:
		return d.Street != "" && d.City != "" && d.State != "" && d.Zip != ""
	case StepProject:
		return d.ProjectType != ""
	case StepDamage:
		return len(d.DamageTypes) > 0
	case StepProperty:
		return d.propertyAnswered
	case StepTimeline:
		return d.Phase1Start != nil && d.Phase1End != nil && d.Phase2Start != nil && d.Phase2End != nil
	case StepCosts:
		return d.TotalJobValue > 0 && d.CostBasis != ""
	case StepFunding:
		return d.FundingSource != ""
	case StepReview:
		// Attachments are optional; review always passes.
		return true
	default:
		return false
	}
}

// Advance moves to the next step when the current one validates. On the last
// step it does not change the step; it reports done=true so the caller can
// run the submission pipeline.
func (w *Wizard) Advance() (done bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.draft.stepValid(w.step) {
		return false, apperrors.ErrStepIncomplete(map[string]interface{}{
			"step": w.step,
			"name": StepName(w.step),
		})
	}

	if w.step == TotalSteps {
		return true, nil
	}

	w.step++
	return false, nil
}

// Retreat steps back. Always allowed except at step 1; already-entered data
// for later steps is kept.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepLocation {
		return apperrors.ErrInvalidOperation("intake", "Already at the first step")
	}
	w.step--
	return nil
}

// Attachments exposes the staging area for the current flow.
func (w *Wizard) Attachments() *Attachments {
	return &w.attachments
}

// invalidSteps lists every step that fails validation, for submit-time
// re-checking.
func (w *Wizard) invalidSteps() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var invalid []string
	for step := StepLocation; step <= TotalSteps; step++ {
		if !w.draft.stepValid(step) {
			invalid = append(invalid, StepName(step))
		}
	}
	return invalid
}
