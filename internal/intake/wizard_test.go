package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VendleServices/vendle-backend/pkg/apperrors"
)

func strptr(s string) *string       { return &s }
func f64ptr(f float64) *float64     { return &f }
func boolptr(b bool) *bool          { return &b }
func timeptr(t time.Time) *time.Time { return &t }

// completeDraft fills every required field across all steps.
func completeDraft(w *Wizard) {
	now := time.Now()
	w.ApplyStep(&StepPayload{
		Street:      strptr("12 Oak Ln"),
		City:        strptr("Tulsa"),
		State:       strptr("OK"),
		Zip:         strptr("74101"),
		ProjectType: strptr("roof_replacement"),
		DamageTypes: []string{"wind", "hail"},
		Occupied:    boolptr(true),
		Phase1Start: timeptr(now),
		Phase1End:   timeptr(now.AddDate(0, 0, 14)),
		Phase2Start: timeptr(now.AddDate(0, 0, 15)),
		Phase2End:   timeptr(now.AddDate(0, 1, 0)),
		TotalJobValue: f64ptr(48000),
		CostBasis:     strptr("rcv"),
		FundingSource: strptr("insurance"),
	})
}

func TestWizardStartsAtStepOne(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	assert.Equal(t, StepLocation, w.Step())
}

func TestAdvanceBlockedOnIncompleteStep(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	w.ApplyStep(&StepPayload{Street: strptr("12 Oak Ln"), City: strptr("Tulsa")})

	done, err := w.Advance()
	assert.False(t, done)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeStepIncomplete, appErr.Code)
	assert.Equal(t, StepLocation, w.Step(), "step must not move on a failed advance")
}

func TestAdvanceThroughAllSteps(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	completeDraft(w)

	for i := StepLocation; i < TotalSteps; i++ {
		done, err := w.Advance()
		require.NoError(t, err, "step %s", StepName(i))
		assert.False(t, done)
	}
	assert.Equal(t, StepReview, w.Step())

	// Advancing from review signals completion without moving the step.
	done, err := w.Advance()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, StepReview, w.Step())
}

func TestRetreatKeepsLaterStepData(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	completeDraft(w)

	_, err := w.Advance()
	require.NoError(t, err)
	_, err = w.Advance()
	require.NoError(t, err)

	require.NoError(t, w.Retreat())
	assert.Equal(t, StepProject, w.Step())

	// Data entered for step 3+ survives going back.
	assert.Equal(t, []string{"wind", "hail"}, w.Draft().DamageTypes)
	assert.Equal(t, float64(48000), w.Draft().TotalJobValue)
}

func TestRetreatAtFirstStepFails(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	assert.Error(t, w.Retreat())
	assert.Equal(t, StepLocation, w.Step())
}

func TestApplyStepNeverClobbersOtherFields(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	w.ApplyStep(&StepPayload{Street: strptr("12 Oak Ln"), City: strptr("Tulsa")})
	w.ApplyStep(&StepPayload{ProjectType: strptr("roof_replacement")})

	d := w.Draft()
	assert.Equal(t, "12 Oak Ln", d.Street)
	assert.Equal(t, "Tulsa", d.City)
	assert.Equal(t, "roof_replacement", d.ProjectType)
}

func TestPropertyStepRequiresAnExplicitAnswer(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)

	// Zero values alone do not count as answered.
	assert.False(t, w.IsStepValid(StepProperty))

	// Answering "false" explicitly is a valid answer.
	w.ApplyStep(&StepPayload{Occupied: boolptr(false)})
	assert.True(t, w.IsStepValid(StepProperty))
}

func TestReviewStepAlwaysValid(t *testing.T) {
	w := NewWizard("owner-1", DefaultMaxPDFSize)
	assert.True(t, w.IsStepValid(StepReview))
}

func TestStepName(t *testing.T) {
	assert.Equal(t, "location", StepName(StepLocation))
	assert.Equal(t, "review", StepName(StepReview))
	assert.Equal(t, "step_99", StepName(99))
}

func TestSessionStoreOneWizardPerOwner(t *testing.T) {
	store := NewSessionStore(DefaultMaxPDFSize)

	w1, started := store.Start("owner-1")
	assert.True(t, started)

	w2, started := store.Start("owner-1")
	assert.False(t, started)
	assert.Same(t, w1, w2)

	store.Remove("owner-1")
	assert.Nil(t, store.Get("owner-1"))

	_, started = store.Start("owner-1")
	assert.True(t, started, "a removed session starts fresh")
}
