package models

import "time"

// Auction is a time-boxed reverse-bidding window over one claim.
// Lowest qualifying bid wins.
type Auction struct {
	BaseModel
	ClaimID     string        `gorm:"not null;uniqueIndex" json:"claim_id"`
	OwnerID     string        `gorm:"not null;index" json:"owner_id"`
	Status      AuctionStatus `gorm:"default:'open';index" json:"status"`
	StartingBid float64       `json:"starting_bid"`
	CurrentBid  *float64      `json:"current_bid"` // best (lowest) bid so far
	BidCount    int           `gorm:"default:0" json:"bid_count"`
	EndsAt      time.Time     `gorm:"not null;index" json:"ends_at"`

	Claim *Claim `gorm:"foreignKey:ClaimID" json:"claim,omitempty"`
}

// Active reports whether the auction still accepts bids at the given time.
func (a *Auction) Active(now time.Time) bool {
	return a.Status == AuctionStatusOpen && now.Before(a.EndsAt)
}
