package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the password when a raw one is given.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("failed to create user %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser creates a user and logs in through the API, returning the
// access token and the user record.
func CreateAndLoginUser(t *testing.T, ts *TestServer, db *gorm.DB, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	err := CreateUser(t, db, user)
	require.NoError(t, err, "creating the test user should not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	require.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginHomeowner creates a homeowner with a unique email.
func CreateAndLoginHomeowner(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("homeowner_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, db, email, "password123", models.UserRoleHomeowner)
}

// CreateAndLoginContractor creates a contractor plus their profile.
func CreateAndLoginContractor(t *testing.T, ts *TestServer, db *gorm.DB) (string, *models.User, *models.ContractorProfile) {
	email := fmt.Sprintf("contractor_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, db, email, "password123", models.UserRoleContractor)

	profile := &models.ContractorProfile{
		UserID:      user.ID,
		CompanyName: "Test Restoration LLC",
		City:        "Houston",
		LicenseNo:   "TX-4411",
	}
	result := db.Create(profile)
	require.NoError(t, result.Error, "failed to create contractor profile")

	return token, user, profile
}

// CreateClaim inserts a submitted claim for the owner, bypassing the wizard.
func CreateClaim(t *testing.T, db *gorm.DB, ownerID string) *models.Claim {
	claim := &models.Claim{
		OwnerID:       ownerID,
		ProjectType:   "roof_replacement",
		Description:   "Hail damage across the south-facing slope",
		Street:        "42 Elm St",
		City:          "Houston",
		State:         "TX",
		Zip:           "77002",
		DamageTypes:   []byte(`["hail","wind"]`),
		TotalJobValue: 18500,
		CostBasis:     models.CostBasisRCV,
		FundingSource: models.FundingSourceInsurance,
		Status:        models.ClaimStatusSubmitted,
	}
	require.NoError(t, db.Create(claim).Error, "failed to create claim")
	return claim
}

// SignNDA marks the contractor's NDA as signed directly in the database.
func SignNDA(t *testing.T, db *gorm.DB, profile *models.ContractorProfile) {
	now := time.Now()
	err := db.Model(profile).Updates(map[string]interface{}{
		"nda_signed":    true,
		"nda_signed_at": now,
	}).Error
	require.NoError(t, err, "failed to sign NDA for contractor profile")
	profile.NDASigned = true
	profile.NDASignedAt = &now
}
