package models

import (
	"time"

	"gorm.io/datatypes"
)

// Claim is a homeowner's property-damage record seeking restoration work.
// Created atomically on wizard completion; launched to auction via a
// dedicated transition.
type Claim struct {
	BaseModel
	OwnerID string `gorm:"not null;index" json:"owner_id"`

	ProjectType string `json:"project_type"`
	DesignPlan  string `json:"design_plan"`
	Description string `gorm:"type:text" json:"description"`

	// Property address
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`

	// Damage category tags
	DamageTypes datatypes.JSON `gorm:"type:jsonb" json:"damage_types"`

	// Property questions
	UtilitiesFunctional bool `json:"utilities_functional"`
	DumpsterOnSite      bool `json:"dumpster_on_site"`
	Occupied            bool `json:"occupied"`

	// Timeline
	Phase1Start *time.Time `json:"phase1_start"`
	Phase1End   *time.Time `json:"phase1_end"`
	Phase2Start *time.Time `json:"phase2_start"`
	Phase2End   *time.Time `json:"phase2_end"`

	// Cost fields; non-negative, coerced at submission
	TotalJobValue  float64       `json:"total_job_value"`
	OverheadProfit float64       `json:"overhead_profit"`
	Materials      float64       `json:"materials"`
	SalesTax       float64       `json:"sales_tax"`
	Depreciation   float64       `json:"depreciation"`
	CostBasis      CostBasis     `json:"cost_basis"`
	FundingSource  FundingSource `json:"funding_source"`

	Status ClaimStatus `gorm:"default:'submitted';index" json:"status"`

	Images []ClaimImage `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	PDFs   []ClaimPDF   `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE" json:"pdfs,omitempty"`
}

// ClaimImage records one uploaded photo's storage path. Paths are opaque
// strings; the bytes live in object storage.
type ClaimImage struct {
	BaseModel
	ClaimID      string `gorm:"not null;index" json:"claim_id"`
	Path         string `gorm:"not null" json:"path"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

// ClaimPDF records one uploaded estimate document's storage path.
type ClaimPDF struct {
	BaseModel
	ClaimID      string `gorm:"not null;index" json:"claim_id"`
	Path         string `gorm:"not null" json:"path"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}
