package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardState struct {
	Step       int    `json:"step"`
	StepName   string `json:"step_name"`
	TotalSteps int    `json:"total_steps"`
	StepValid  bool   `json:"step_valid"`
}

func parseState(t *testing.T, body string) wizardState {
	t.Helper()
	var state wizardState
	require.NoError(t, json.Unmarshal([]byte(body), &state))
	return state
}

func advance(t *testing.T, ts *helpers.TestServer, token string) (*http.Response, string) {
	t.Helper()
	return ts.SendRequest(t, "POST", "/api/v1/intake/advance", token, nil)
}

func applyStep(t *testing.T, ts *helpers.TestServer, token string, payload map[string]interface{}) {
	t.Helper()
	res, body := ts.SendRequest(t, "PUT", "/api/v1/intake/step", token, payload)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestIntakeFlow_CreatesClaim(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	token, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/intake/start", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	state := parseState(t, body)
	assert.Equal(t, 1, state.Step)
	assert.Equal(t, "location", state.StepName)
	assert.Equal(t, 8, state.TotalSteps)

	// Step 1: location
	applyStep(t, ts, token, map[string]interface{}{
		"street": "12 Cypress Ln", "city": "Houston", "state": "TX", "zip": "77002",
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "project", parseState(t, body).StepName)

	// Step 2: project
	applyStep(t, ts, token, map[string]interface{}{
		"project_type": "roof_replacement",
		"description":  "Hail damage across the south slope",
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Step 3: damage types
	applyStep(t, ts, token, map[string]interface{}{
		"damage_types": []string{"hail", "wind"},
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Step 4: property questions
	applyStep(t, ts, token, map[string]interface{}{
		"utilities_functional": true, "dumpster_on_site": false, "occupied": true,
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Step 5: timeline
	now := time.Now()
	applyStep(t, ts, token, map[string]interface{}{
		"phase1_start": now.Format(time.RFC3339),
		"phase1_end":   now.AddDate(0, 0, 14).Format(time.RFC3339),
		"phase2_start": now.AddDate(0, 0, 15).Format(time.RFC3339),
		"phase2_end":   now.AddDate(0, 1, 0).Format(time.RFC3339),
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Step 6: costs
	applyStep(t, ts, token, map[string]interface{}{
		"total_job_value": 18500.0,
		"materials":       6200.0,
		"cost_basis":      "rcv",
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Step 7: funding
	applyStep(t, ts, token, map[string]interface{}{
		"funding_source": "insurance",
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "review", parseState(t, body).StepName)

	// Step 8: review; advancing here submits.
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ClaimID string `json:"claim_id"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.ClaimID)
	assert.Equal(t, "submitted", created.Status)

	var claim models.Claim
	require.NoError(t, ts.DB.First(&claim, "id = ?", created.ClaimID).Error)
	assert.Equal(t, owner.ID, claim.OwnerID)
	assert.Equal(t, "roof_replacement", claim.ProjectType)
	assert.Equal(t, 18500.0, claim.TotalJobValue)

	// The session is consumed on submission.
	res, _ = ts.SendRequest(t, "GET", "/api/v1/intake", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestIntakeAdvance_BlockedOnIncompleteStep(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/intake/start", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = advance(t, ts, token)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "STEP_INCOMPLETE")
	assert.Contains(t, body, "location")

	// Still on step 1.
	res, body = ts.SendRequest(t, "GET", "/api/v1/intake", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, 1, parseState(t, body).Step)
}

func TestIntakeRetreat_KeepsEnteredData(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/intake/start", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	applyStep(t, ts, token, map[string]interface{}{
		"street": "9 Pine Rd", "city": "Austin", "state": "TX", "zip": "78701",
	})
	res, body = advance(t, ts, token)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.Equal(t, 2, parseState(t, body).Step)

	res, body = ts.SendRequest(t, "POST", "/api/v1/intake/retreat", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	state := parseState(t, body)
	assert.Equal(t, 1, state.Step)
	assert.True(t, state.StepValid, "location data must survive the retreat")

	// Retreating from step 1 is rejected.
	res, _ = ts.SendRequest(t, "POST", "/api/v1/intake/retreat", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestIntakeEstimate_RejectsNonPDF(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/intake/start", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendFile(t, "POST", "/api/v1/intake/estimate", token, "notes.txt", "text/plain", []byte("not a pdf"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "INVALID_FILE_TYPE")

	res, body = ts.SendFile(t, "POST", "/api/v1/intake/estimate", token, "estimate.pdf", "application/pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "estimate.pdf")
}

func TestIntakeImages_StageAndUnstage(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/intake/start", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendFile(t, "POST", "/api/v1/intake/images", token, "roof.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "roof.jpg")

	res, body = ts.SendRequest(t, "DELETE", "/api/v1/intake/images/0", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.NotContains(t, body, "roof.jpg")

	// Out-of-range index.
	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/intake/images/7", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestIntake_ContractorForbidden(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	token, _, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/intake/start", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
