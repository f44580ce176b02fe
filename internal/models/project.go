package models

// ProjectParticipant links a contractor to a claim's restoration project.
// Created when an invitation is accepted, in the same transaction.
type ProjectParticipant struct {
	BaseModel
	ClaimID      string `gorm:"not null;index:idx_project_claim_contractor,unique" json:"claim_id"`
	ContractorID string `gorm:"not null;index:idx_project_claim_contractor,unique" json:"contractor_id"`
	Role         string `gorm:"default:'contractor'" json:"role"`
}
