package dto

import "time"

type UpdateContractorProfileRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	City        *string `json:"city,omitempty"`
	LicenseNo   *string `json:"license_no,omitempty"`
}

// ContractorStatusResponse summarizes the contractor's standing on the
// platform, including the NDA gate state.
type ContractorStatusResponse struct {
	UserID      string     `json:"user_id"`
	CompanyName string     `json:"company_name"`
	City        string     `json:"city"`
	NDASigned   bool       `json:"nda_signed"`
	NDASignedAt *time.Time `json:"nda_signed_at,omitempty"`

	PendingInvitations int   `json:"pending_invitations"`
	ActiveProjects     int   `json:"active_projects"`
	TotalBids          int64 `json:"total_bids"`
	AuctionsWon        int64 `json:"auctions_won"`
}

// ContractorRecommendation is one scored entry from the contractor analysis.
type ContractorRecommendation struct {
	ContractorID string   `json:"contractor_id"`
	CompanyName  string   `json:"company_name"`
	City         string   `json:"city"`
	Score        float64  `json:"score"`
	Reasons      []string `json:"reasons,omitempty"`
}

type ContractorAnalysisResponse struct {
	ClaimID         string                     `json:"claim_id"`
	Recommendations []ContractorRecommendation `json:"recommendations"`
}
