package models

import "time"

// Category is an immutable reference entry auctions are classified under.
// The set is seeded by migration and never mutated through the API.
type Category struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

// Auction is a sellable listing with a fixed close time.
//
// The mutable fields (title, description, category, end date, reserve) are
// frozen the moment the first bid lands; "closed" is not stored but derived
// by comparing EndDate with the current instant.
type Auction struct {
	// AuctionID is the internal unique identifier of the auction.
	AuctionID int64 `json:"auctionId"`

	// SellerID references the user who created the listing and is the only
	// actor allowed to mutate or delete it.
	SellerID int64 `json:"sellerId"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// CategoryID must reference an existing category at creation and at
	// every update.
	CategoryID int64 `json:"categoryId"`

	// EndDate is the instant the auction closes. Bids arriving at or after
	// it are rejected.
	EndDate time.Time `json:"endDate"`

	// Reserve is the listed minimum price. It defaults to 1 and is not
	// enforced as a bid floor.
	Reserve int64 `json:"reserve"`

	// ImageRef is the filename of the auction's image inside the blob
	// store, or empty when none has been uploaded.
	ImageRef string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Auction model.
func (a Auction) TableName() string {
	return "auctions"
}

// Expired reports whether the auction has closed relative to now.
func (a Auction) Expired(now time.Time) bool {
	return !now.Before(a.EndDate)
}

// AuctionDraft carries the caller-supplied fields for a new listing.
// Reserve below 1 (including unset) is normalized to 1 at creation.
type AuctionDraft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	EndDate     time.Time `json:"endDate"`
	Reserve     int64     `json:"reserve"`
}

// AuctionPatch describes a partial update of an auction. Nil fields are
// left untouched. Patches are only applicable while the auction has no
// bids.
type AuctionPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *int64     `json:"categoryId"`
	EndDate     *time.Time `json:"endDate"`
	Reserve     *int64     `json:"reserve"`
}

// Empty reports whether the patch would change nothing.
func (p AuctionPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.CategoryID == nil &&
		p.EndDate == nil && p.Reserve == nil
}

// AuctionSummary is one enriched row of a listing query. NumBids,
// HighestBid and the seller name are computed in the same query snapshot
// as the base row, never stitched together from separate reads.
type AuctionSummary struct {
	AuctionID       int64     `json:"auctionId"`
	Title           string    `json:"title"`
	CategoryID      int64     `json:"categoryId"`
	SellerID        int64     `json:"sellerId"`
	SellerFirstName string    `json:"sellerFirstName"`
	SellerLastName  string    `json:"sellerLastName"`
	Reserve         int64     `json:"reserve"`
	NumBids         int64     `json:"numBids"`
	// HighestBid is nil when the auction has no bids; zero is a valid
	// bid-adjacent value and must not stand in for absence.
	HighestBid *int64    `json:"highestBid"`
	EndDate    time.Time `json:"endDate"`
}

// AuctionDetail is the single-auction projection: a summary plus the full
// description.
type AuctionDetail struct {
	AuctionSummary
	Description string `json:"description"`
}

// AuctionList is the paged response envelope of a listing query.
type AuctionList struct {
	Auctions []AuctionSummary `json:"auctions"`
	Count    int              `json:"count"`
}
