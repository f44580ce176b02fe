package intake

import (
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
)

// DraftClaim accumulates the homeowner's answers across the wizard steps.
// It lives in memory only; abandoned drafts are lost on purpose.
type DraftClaim struct {
	// Step 1: location
	Street string
	City   string
	State  string
	Zip    string

	// Step 2: project
	ProjectType string
	DesignPlan  string
	Description string

	// Step 3: damage categories
	DamageTypes []string

	// Step 4: property questions
	UtilitiesFunctional bool
	DumpsterOnSite      bool
	Occupied            bool
	propertyAnswered    bool

	// Step 5: timeline
	Phase1Start *time.Time
	Phase1End   *time.Time
	Phase2Start *time.Time
	Phase2End   *time.Time

	// Step 6: costs
	TotalJobValue  float64
	OverheadProfit float64
	Materials      float64
	SalesTax       float64
	Depreciation   float64
	CostBasis      models.CostBasis

	// Step 7: funding
	FundingSource models.FundingSource
}

// StepPayload is the union of fields a single wizard step may set. Nil
// pointers leave the draft untouched, so a step never clobbers another
// step's data.
type StepPayload struct {
	Street *string `json:"street,omitempty"`
	City   *string `json:"city,omitempty"`
	State  *string `json:"state,omitempty"`
	Zip    *string `json:"zip,omitempty"`

	ProjectType *string `json:"project_type,omitempty"`
	DesignPlan  *string `json:"design_plan,omitempty"`
	Description *string `json:"description,omitempty"`

	DamageTypes []string `json:"damage_types,omitempty"`

	UtilitiesFunctional *bool `json:"utilities_functional,omitempty"`
	DumpsterOnSite      *bool `json:"dumpster_on_site,omitempty"`
	Occupied            *bool `json:"occupied,omitempty"`

	Phase1Start *time.Time `json:"phase1_start,omitempty"`
	Phase1End   *time.Time `json:"phase1_end,omitempty"`
	Phase2Start *time.Time `json:"phase2_start,omitempty"`
	Phase2End   *time.Time `json:"phase2_end,omitempty"`

	TotalJobValue  *float64 `json:"total_job_value,omitempty"`
	OverheadProfit *float64 `json:"overhead_profit,omitempty"`
	Materials      *float64 `json:"materials,omitempty"`
	SalesTax       *float64 `json:"sales_tax,omitempty"`
	Depreciation   *float64 `json:"depreciation,omitempty"`
	CostBasis      *string  `json:"cost_basis,omitempty" binding:"omitempty" validate:"omitempty,is-cost-basis"`

	FundingSource *string `json:"funding_source,omitempty" validate:"omitempty,is-funding-source"`
}

func (d *DraftClaim) apply(p *StepPayload) {
	if p.Street != nil {
		d.Street = *p.Street
	}
	if p.City != nil {
		d.City = *p.City
	}
	if p.State != nil {
		d.State = *p.State
	}
	if p.Zip != nil {
		d.Zip = *p.Zip
	}
	if p.ProjectType != nil {
		d.ProjectType = *p.ProjectType
	}
	if p.DesignPlan != nil {
		d.DesignPlan = *p.DesignPlan
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.DamageTypes != nil {
		d.DamageTypes = p.DamageTypes
	}
	if p.UtilitiesFunctional != nil {
		d.UtilitiesFunctional = *p.UtilitiesFunctional
		d.propertyAnswered = true
	}
	if p.DumpsterOnSite != nil {
		d.DumpsterOnSite = *p.DumpsterOnSite
		d.propertyAnswered = true
	}
	if p.Occupied != nil {
		d.Occupied = *p.Occupied
		d.propertyAnswered = true
	}
	if p.Phase1Start != nil {
		d.Phase1Start = p.Phase1Start
	}
	if p.Phase1End != nil {
		d.Phase1End = p.Phase1End
	}
	if p.Phase2Start != nil {
		d.Phase2Start = p.Phase2Start
	}
	if p.Phase2End != nil {
		d.Phase2End = p.Phase2End
	}
	if p.TotalJobValue != nil {
		d.TotalJobValue = *p.TotalJobValue
	}
	if p.OverheadProfit != nil {
		d.OverheadProfit = *p.OverheadProfit
	}
	if p.Materials != nil {
		d.Materials = *p.Materials
	}
	if p.SalesTax != nil {
		d.SalesTax = *p.SalesTax
	}
	if p.Depreciation != nil {
		d.Depreciation = *p.Depreciation
	}
	if p.CostBasis != nil {
		d.CostBasis = models.CostBasis(*p.CostBasis)
	}
	if p.FundingSource != nil {
		d.FundingSource = models.FundingSource(*p.FundingSource)
	}
}
