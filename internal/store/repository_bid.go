package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bidhouse/internal/logger"
	"bidhouse/models"

	"github.com/jackc/pgerrcode"
)

// bidRepository is the PostgreSQL-backed implementation of [BidRepository].
//
// PlaceBid is the one path in the system where concurrency actually bites:
// two bidders reading the same highest bid and both inserting would accept
// two bids that each believe they are the new maximum. The repository
// therefore runs the whole read-compare-insert sequence in a single
// transaction with the auction row locked FOR UPDATE, which serializes
// bidders per auction while leaving unrelated auctions fully independent.
type bidRepository struct {
	logger *logger.Logger
	db     *DB

	// now is swappable for tests; production uses time.Now.
	now func() time.Time
}

// NewBidRepository constructs a [BidRepository] backed by the provided
// database connection and logger.
func NewBidRepository(db *DB, logger *logger.Logger) BidRepository {
	logger.Debug().Msg("creating bid repository")
	return &bidRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// PlaceBid validates and inserts a bid as one atomic unit.
//
// Under the auction-row lock it re-checks, in order: auction existence
// ([ErrAuctionNotFound]), self-bidding ([ErrSelfBid]), expiry
// ([ErrAuctionExpired]), and strict monotonicity against the current
// highest bid ([*BidTooLowError] carrying the amount to beat, 0 when the
// auction has no bids yet). Only then does the insert run, in the same
// transaction.
//
// A serialization conflict (40001) or deadlock (40P01) is retried once
// transparently; if the retry also fails, the storage error propagates
// unmodified.
func (r *bidRepository) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error) {
	log := logger.FromContext(ctx)

	bid, err := r.placeBidOnce(ctx, auctionID, bidderID, amount)
	if err != nil && isRetryableTxError(err) {
		log.Warn().
			Str("func", "*bidRepository.PlaceBid").
			Int64("auction_id", auctionID).
			Msg("serialization conflict on bid placement, retrying once")
		bid, err = r.placeBidOnce(ctx, auctionID, bidderID, amount)
	}

	if err != nil {
		return models.Bid{}, err
	}

	return bid, nil
}

func (r *bidRepository) placeBidOnce(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error) {
	log := logger.FromContext(ctx)

	bid := models.Bid{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
	}

	err := r.db.inTx(ctx, nil, func(tx *sql.Tx) error {
		var sellerID int64
		var endDate time.Time

		// Lock first: every precondition below stays true until commit.
		if err := tx.QueryRowContext(ctx, lockAuction, auctionID).Scan(&sellerID, &endDate); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if sellerID == bidderID {
			return ErrSelfBid
		}

		if !r.now().Before(endDate) {
			return ErrAuctionExpired
		}

		var highest sql.NullInt64
		if err := tx.QueryRowContext(ctx, highestBid, auctionID).Scan(&highest); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if amount <= highest.Int64 {
			return &BidTooLowError{Highest: highest.Int64}
		}

		if err := tx.QueryRowContext(ctx, insertBid, auctionID, bidderID, amount).Scan(&bid.BidID, &bid.Timestamp); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*bidRepository.placeBidOnce").
			Int64("auction_id", auctionID).
			Int64("bidder_id", bidderID).
			Int64("amount", amount).
			Msg("bid placement rejected or failed")
		return models.Bid{}, err
	}

	return bid, nil
}

// GetHighestBid returns the current highest bid amount, or nil when the
// auction has no bids. Absence is nil, never zero: zero would be
// indistinguishable from a (rejected) zero-amount bid.
func (r *bidRepository) GetHighestBid(ctx context.Context, auctionID int64) (*int64, error) {
	log := logger.FromContext(ctx)

	var highest sql.NullInt64
	if err := r.db.QueryRowContext(ctx, highestBid, auctionID).Scan(&highest); err != nil {
		log.Err(err).Str("func", "*bidRepository.GetHighestBid").Int64("auction_id", auctionID).Msg("failed to query highest bid")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !highest.Valid {
		return nil, nil
	}

	return &highest.Int64, nil
}

// GetBidCount returns the number of bids placed on the auction.
func (r *bidRepository) GetBidCount(ctx context.Context, auctionID int64) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.db.QueryRowContext(ctx, countBids, auctionID).Scan(&count); err != nil {
		log.Err(err).Str("func", "*bidRepository.GetBidCount").Int64("auction_id", auctionID).Msg("failed to count bids")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// ListBids returns every bid on the auction with the bidder's display
// name, ordered by amount, timestamp, then id, all descending.
func (r *bidRepository) ListBids(ctx context.Context, auctionID int64) ([]models.BidSummary, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listBids, auctionID)
	if err != nil {
		log.Err(err).Str("func", "*bidRepository.ListBids").Int64("auction_id", auctionID).Msg("failed to query bids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bids := make([]models.BidSummary, 0, 20)

	for rows.Next() {
		var bid models.BidSummary
		if err := rows.Scan(&bid.BidderID, &bid.Amount, &bid.FirstName, &bid.LastName, &bid.Timestamp); err != nil {
			log.Err(err).Str("func", "*bidRepository.ListBids").Msg("failed to scan bid row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		bids = append(bids, bid)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*bidRepository.ListBids").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bids, nil
}

// AuctionHasBidder reports whether the user has placed at least one bid on
// the auction. Used as the listing engine's per-candidate bidder filter.
func (r *bidRepository) AuctionHasBidder(ctx context.Context, auctionID, bidderID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, auctionHasBidder, auctionID, bidderID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*bidRepository.AuctionHasBidder").Int64("auction_id", auctionID).Msg("failed to check bidder")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// isRetryableTxError reports whether the error is a transient transaction
// conflict worth one more attempt.
func isRetryableTxError(err error) bool {
	switch postgresError(err) {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}
