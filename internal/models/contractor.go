package models

import "time"

// ContractorProfile carries the contractor's business identity and the NDA
// signature state that gates full claim visibility.
type ContractorProfile struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	LicenseNo   string `json:"license_no"`

	NDASigned   bool       `gorm:"default:false" json:"nda_signed"`
	NDASignedAt *time.Time `json:"nda_signed_at"`
}
