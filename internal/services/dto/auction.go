package dto

import "time"

type LaunchAuctionRequest struct {
	// Optional override of the configured window, in hours.
	DurationHours int `json:"duration_hours" validate:"omitempty,min=1,max=720"`
}

type AuctionResponse struct {
	ID          string    `json:"id"`
	ClaimID     string    `json:"claim_id"`
	Status      string    `json:"status"`
	StartingBid float64   `json:"starting_bid"`
	CurrentBid  *float64  `json:"current_bid"`
	BidCount    int       `json:"bid_count"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuctionSummary is the owner-facing aggregate over an auction's bids.
type AuctionSummary struct {
	Auction   AuctionResponse `json:"auction"`
	Bids      []BidResponse   `json:"bids"`
	LowestBid *BidResponse    `json:"lowest_bid,omitempty"`
	// Seconds until close; zero once the window has passed.
	RemainingSeconds int64 `json:"remaining_seconds"`
}

type AuctionListResponse struct {
	Auctions []AuctionResponse `json:"auctions"`
	Total    int               `json:"total"`
}
