package models

// ClaimInvitation is a homeowner-to-contractor request to view and bid on a
// claim. Accepted and declined are terminal; there is no way back to pending.
type ClaimInvitation struct {
	BaseModel
	ClaimID      string           `gorm:"not null;index" json:"claim_id"`
	ContractorID string           `gorm:"not null;index" json:"contractor_id"`
	InviterID    *string          `json:"inviter_id"`
	Status       InvitationStatus `gorm:"default:'pending';index" json:"status"`

	Claim *Claim `gorm:"foreignKey:ClaimID" json:"claim,omitempty"`
}
