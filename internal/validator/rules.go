package validator

import (
	"log"

	"github.com/VendleServices/vendle-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the platform's enum validations.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that cannot be registered is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-cost-basis", validateCostBasis)
	mustRegister("is-funding-source", validateFundingSource)
	mustRegister("is-invitation-status", validateInvitationStatus)
	mustRegister("is-auction-status", validateAuctionStatus)
}

// Empty values are left to the 'required' tag on purpose.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleHomeowner, models.UserRoleContractor, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateCostBasis(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.CostBasis(value) {
	case models.CostBasisRCV, models.CostBasisACV:
		return true
	default:
		return false
	}
}

func validateFundingSource(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.FundingSource(value) {
	case models.FundingSourceFEMA, models.FundingSourceInsurance, models.FundingSourceSBA:
		return true
	default:
		return false
	}
}

func validateInvitationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.InvitationStatus(value) {
	case models.InvitationStatusPending, models.InvitationStatusAccepted, models.InvitationStatusDeclined:
		return true
	default:
		return false
	}
}

func validateAuctionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AuctionStatus(value) {
	case models.AuctionStatusOpen, models.AuctionStatusClosed:
		return true
	default:
		return false
	}
}
