package models

import "time"

// Bid is one monetary offer against an auction. Bids are immutable:
// they are never edited or deleted, and the first bid on an auction
// permanently freezes the auction's mutable fields.
type Bid struct {
	// BidID is the internal unique identifier of the bid. It also serves
	// as the deterministic tail of the bid ordering: rows that tie on
	// amount and timestamp are ordered by id.
	BidID int64 `json:"-"`

	AuctionID int64 `json:"-"`

	// BidderID references the user who placed the bid. Never equal to the
	// auction's seller.
	BidderID int64 `json:"bidderId"`

	// Amount is strictly greater than every earlier bid on the same
	// auction.
	Amount int64 `json:"amount"`

	// Timestamp records when the bid was committed.
	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the Bid model.
func (b Bid) TableName() string {
	return "bids"
}

// BidSummary is the bid projection returned by the bid-listing endpoint,
// enriched with the bidder's display name.
type BidSummary struct {
	BidderID  int64     `json:"bidderId"`
	Amount    int64     `json:"amount"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Timestamp time.Time `json:"timestamp"`
}

// PlaceBidRequest is the payload accepted by the bid-placement endpoint.
type PlaceBidRequest struct {
	Amount int64 `json:"amount"`
}
