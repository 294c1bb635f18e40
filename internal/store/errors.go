package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registration fails because a
	// user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound is returned when a token does not resolve to a
	// live session: the token is unknown, or it has already been revoked.
	ErrSessionNotFound = errors.New("session not found")

	// ErrAuctionNotFound is returned when an operation targets an auction
	// that does not exist.
	ErrAuctionNotFound = errors.New("auction not found")

	// ErrCategoryNotFound is returned when an auction references a category
	// id that is not part of the seeded category set.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAuctionHasBids is returned when a mutation or deletion targets an
	// auction that has at least one bid. Bid-bearing auctions are frozen.
	ErrAuctionHasBids = errors.New("auction already has bids")

	// ErrSelfBid is returned when a bid names the auction's own seller as
	// the bidder.
	ErrSelfBid = errors.New("cannot bid on own auction")

	// ErrAuctionExpired is returned when a bid arrives at or after the
	// auction's end date.
	ErrAuctionExpired = errors.New("auction has ended")

	// ErrBidTooLow is the sentinel matched by [errors.Is] for rejected
	// low bids. The concrete error is always a [*BidTooLowError], which
	// additionally carries the current highest amount.
	ErrBidTooLow = errors.New("bid amount too low")

	// ErrAttachmentNotFound is returned when an image lookup or removal
	// targets an owner that has no stored image.
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// BidTooLowError reports a bid rejected for not exceeding the auction's
// current highest bid. Highest carries the amount the caller has to beat,
// read under the same lock that would have committed the bid, so a retry
// with a higher amount has a current view.
type BidTooLowError struct {
	// Highest is the current highest bid on the auction, or 0 when the
	// auction has no bids yet.
	Highest int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount too low: must be higher than %d", e.Highest)
}

// Is makes errors.Is(err, ErrBidTooLow) match any *BidTooLowError.
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}
