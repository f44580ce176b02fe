package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin_Homeowner(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("owner_reg_%d@test.com", time.Now().UnixNano())
	registerBody := map[string]interface{}{
		"email":      email,
		"password":   "super_password123",
		"first_name": "Dana",
		"last_name":  "Whitfield",
		"role":       "homeowner",
	}

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)

	var authResp struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(regBodyStr), &authResp))
	assert.NotEmpty(t, authResp.Token)
	assert.Equal(t, "homeowner", authResp.User.Role)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBodyStr)
	assert.Contains(t, logBodyStr, "token")
}

func TestRegister_ContractorGetsProfile(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("contractor_reg_%d@test.com", time.Now().UnixNano())
	registerBody := map[string]interface{}{
		"email":        email,
		"password":     "super_password123",
		"first_name":   "Ray",
		"last_name":    "Alvarez",
		"role":         "contractor",
		"company_name": "Alvarez Restoration",
		"city":         "Houston",
		"license_no":   "TX-9001",
	}

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)

	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)

	var profile models.ContractorProfile
	require.NoError(t, ts.DB.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Alvarez Restoration", profile.CompanyName)
	assert.False(t, profile.NDASigned, "a fresh contractor must not have a signed NDA")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("duplicate_%d@test.com", time.Now().UnixNano())
	err := helpers.CreateUser(t, ts.DB, &models.User{
		Email:        email,
		PasswordHash: "pass12345",
		FirstName:    "User",
		LastName:     "One",
		Role:         models.UserRoleHomeowner,
	})
	require.NoError(t, err)

	duplicateBody := map[string]interface{}{
		"email":      email,
		"password":   "password_is_long_enough",
		"first_name": "User",
		"last_name":  "Two",
		"role":       "homeowner",
	}
	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", duplicateBody)
	assert.Equal(t, http.StatusConflict, regRes.StatusCode, regBodyStr)
	assert.Contains(t, regBodyStr, "ALREADY_EXISTS")
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	email := fmt.Sprintf("badpass_%d@test.com", time.Now().UnixNano())
	err := helpers.CreateUser(t, ts.DB, &models.User{
		Email:        email,
		PasswordHash: "correct-password",
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.UserRoleHomeowner,
	})
	require.NoError(t, err)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": "wrong-password",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, logRes.StatusCode, logBodyStr)
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/claims", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
