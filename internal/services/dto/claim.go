package dto

import (
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
)

type ClaimFileResponse struct {
	ID           string `json:"id"`
	Path         string `json:"path"`
	URL          string `json:"url,omitempty"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

// ClaimResponse is the full claim view. Redacted=true means the caller sees
// only the public subset (contractors without a signed NDA).
type ClaimResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Status      string `json:"status"`
	ProjectType string `json:"project_type"`
	City        string `json:"city"`
	State       string `json:"state"`

	Redacted bool `json:"redacted"`

	// Full-visibility fields; omitted when redacted.
	Street              string     `json:"street,omitempty"`
	Zip                 string     `json:"zip,omitempty"`
	DesignPlan          string     `json:"design_plan,omitempty"`
	Description         string     `json:"description,omitempty"`
	DamageTypes         []string   `json:"damage_types,omitempty"`
	UtilitiesFunctional *bool      `json:"utilities_functional,omitempty"`
	DumpsterOnSite      *bool      `json:"dumpster_on_site,omitempty"`
	Occupied            *bool      `json:"occupied,omitempty"`
	Phase1Start         *time.Time `json:"phase1_start,omitempty"`
	Phase1End           *time.Time `json:"phase1_end,omitempty"`
	Phase2Start         *time.Time `json:"phase2_start,omitempty"`
	Phase2End           *time.Time `json:"phase2_end,omitempty"`
	TotalJobValue       *float64   `json:"total_job_value,omitempty"`
	OverheadProfit      *float64   `json:"overhead_profit,omitempty"`
	Materials           *float64   `json:"materials,omitempty"`
	SalesTax            *float64   `json:"sales_tax,omitempty"`
	Depreciation        *float64   `json:"depreciation,omitempty"`
	CostBasis           string     `json:"cost_basis,omitempty"`
	FundingSource       string     `json:"funding_source,omitempty"`

	Images []ClaimFileResponse `json:"images,omitempty"`
	PDFs   []ClaimFileResponse `json:"pdfs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type ClaimListResponse struct {
	Claims []ClaimResponse `json:"claims"`
	Total  int             `json:"total"`
}

type CreateClaimResponse struct {
	ClaimID string `json:"claim_id"`
	Status  models.ClaimStatus `json:"status"`
}
