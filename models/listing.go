package models

// SortOrder enumerates the accepted listing sort keys. The enum is the
// only thing ever translated into ORDER BY text; caller input that is not
// one of these values is rejected before any query is built.
type SortOrder string

const (
	// SortDefault orders by ascending end date (closing soonest first).
	SortDefault          SortOrder = ""
	SortAlphabeticalAsc  SortOrder = "ALPHABETICAL_ASC"
	SortAlphabeticalDesc SortOrder = "ALPHABETICAL_DESC"
	SortClosingSoon      SortOrder = "CLOSING_SOON"
	SortClosingLast      SortOrder = "CLOSING_LAST"
	SortReserveAsc       SortOrder = "RESERVE_ASC"
	SortReserveDesc      SortOrder = "RESERVE_DESC"
	// SortBidsAsc and SortBidsDesc order by the current highest bid.
	// Auctions without any bid sort after every auction that has one,
	// in both directions.
	SortBidsAsc  SortOrder = "BIDS_ASC"
	SortBidsDesc SortOrder = "BIDS_DESC"
)

// Valid reports whether s is one of the accepted sort keys.
func (s SortOrder) Valid() bool {
	switch s {
	case SortDefault, SortAlphabeticalAsc, SortAlphabeticalDesc,
		SortClosingSoon, SortClosingLast,
		SortReserveAsc, SortReserveDesc,
		SortBidsAsc, SortBidsDesc:
		return true
	}
	return false
}

// ListFilter is the composable filter set of a listing query. All fields
// are optional and independent.
//
// BidderID is a derived predicate, not a stored column: it is evaluated
// per candidate after the base query, so paging applies to the base result
// and the bidder filter then thins the returned page (matching the
// upstream API behavior).
type ListFilter struct {
	// SellerID restricts results to auctions sold by this user.
	SellerID *int64

	// CategoryID restricts results to one category. It is validated
	// against the category set before any query executes.
	CategoryID *int64

	// TextQuery is a case-insensitive substring match over title OR
	// description.
	TextQuery string

	// BidderID keeps only auctions on which this user has placed at least
	// one bid.
	BidderID *int64
}

// Page bounds a listing query. A nil StartIndex defaults to 0; a nil
// Count means unbounded.
type Page struct {
	StartIndex *uint64
	Count      *uint64
}
