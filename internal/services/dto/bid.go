package dto

import "time"

type PlaceBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`

	Materials            *float64 `json:"materials,omitempty" validate:"omitempty,gte=0"`
	Labor                *float64 `json:"labor,omitempty" validate:"omitempty,gte=0"`
	SubcontractorExpense *float64 `json:"subcontractor_expense,omitempty" validate:"omitempty,gte=0"`
	Overhead             *float64 `json:"overhead,omitempty" validate:"omitempty,gte=0"`
	Profit               *float64 `json:"profit,omitempty" validate:"omitempty,gte=0"`
	Allowance            *float64 `json:"allowance,omitempty" validate:"omitempty,gte=0"`

	EstimatePath *string `json:"estimate_path,omitempty"`
}

type BidResponse struct {
	ID           string  `json:"id"`
	AuctionID    string  `json:"auction_id"`
	ContractorID string  `json:"contractor_id"`
	Amount       float64 `json:"amount"`
	// Rank within the auction, 1 = lowest amount.
	Rank int `json:"rank,omitempty"`

	Materials            *float64 `json:"materials,omitempty"`
	Labor                *float64 `json:"labor,omitempty"`
	SubcontractorExpense *float64 `json:"subcontractor_expense,omitempty"`
	Overhead             *float64 `json:"overhead,omitempty"`
	Profit               *float64 `json:"profit,omitempty"`
	Allowance            *float64 `json:"allowance,omitempty"`
	EstimatePath         *string  `json:"estimate_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type BidListResponse struct {
	Bids  []BidResponse `json:"bids"`
	Total int           `json:"total"`
}
