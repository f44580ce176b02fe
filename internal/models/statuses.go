package models

type UserStatus string
type UserRole string
type ClaimStatus string
type AuctionStatus string
type InvitationStatus string
type CostBasis string
type FundingSource string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleHomeowner  UserRole = "homeowner"
	UserRoleContractor UserRole = "contractor"
	UserRoleAdmin      UserRole = "admin"

	ClaimStatusSubmitted ClaimStatus = "submitted"
	ClaimStatusLaunched  ClaimStatus = "launched"
	ClaimStatusArchived  ClaimStatus = "archived"

	AuctionStatusOpen   AuctionStatus = "open"
	AuctionStatusClosed AuctionStatus = "closed"

	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"

	// Replacement cost value vs. actual cash value
	CostBasisRCV CostBasis = "rcv"
	CostBasisACV CostBasis = "acv"

	FundingSourceFEMA      FundingSource = "fema"
	FundingSourceInsurance FundingSource = "insurance"
	FundingSourceSBA       FundingSource = "sba"
)

// Terminal reports whether the invitation status allows no further transitions.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationStatusAccepted || s == InvitationStatusDeclined
}
