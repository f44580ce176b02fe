package models

// Bid is a contractor's priced offer against an open auction.
// Amount must be positive; ranking is ascending by amount.
type Bid struct {
	BaseModel
	AuctionID    string  `gorm:"not null;index" json:"auction_id"`
	ContractorID string  `gorm:"not null;index" json:"contractor_id"`
	Amount       float64 `gorm:"not null" json:"amount"`

	// Optional cost breakdown
	Materials            *float64 `json:"materials,omitempty"`
	Labor                *float64 `json:"labor,omitempty"`
	SubcontractorExpense *float64 `json:"subcontractor_expense,omitempty"`
	Overhead             *float64 `json:"overhead,omitempty"`
	Profit               *float64 `json:"profit,omitempty"`
	Allowance            *float64 `json:"allowance,omitempty"`

	// Optional supporting estimate document (storage path)
	EstimatePath *string `json:"estimate_path,omitempty"`
}
