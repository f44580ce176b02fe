package dto

import "time"

type InviteContractorRequest struct {
	ContractorID string `json:"contractor_id" validate:"required,uuid"`
}

type InvitationResponse struct {
	ID           string    `json:"id"`
	ClaimID      string    `json:"claim_id"`
	ContractorID string    `json:"contractor_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	Claim *ClaimResponse `json:"claim,omitempty"`
}

type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
}
