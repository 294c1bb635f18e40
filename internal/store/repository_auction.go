package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bidhouse/internal/logger"
	"bidhouse/models"
)

// auctionRepository is the PostgreSQL-backed implementation of
// [AuctionRepository].
//
// UpdateAuction and DeleteAuction enforce the zero-bids precondition
// inside the same transaction as the write, holding the auction row under
// FOR UPDATE. Bid insertion locks the same row, so "the bid count was
// zero" cannot turn stale between the check and the commit.
type auctionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuctionRepository constructs an [AuctionRepository] backed by the
// provided database connection and logger.
func NewAuctionRepository(db *DB, logger *logger.Logger) AuctionRepository {
	logger.Debug().Msg("creating auction repository")
	return &auctionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAuction persists a new listing and returns its server-assigned id.
// The draft is assumed validated (existing category, future end date,
// normalized reserve) by the service layer.
func (r *auctionRepository) CreateAuction(ctx context.Context, draft models.AuctionDraft, sellerID int64) (int64, error) {
	log := logger.FromContext(ctx)

	var auctionID int64
	row := r.db.QueryRowContext(ctx, createAuction,
		sellerID, draft.Title, draft.Description, draft.CategoryID, draft.EndDate, draft.Reserve)

	if err := row.Scan(&auctionID); err != nil {
		log.Err(err).Str("func", "*auctionRepository.CreateAuction").Int64("seller_id", sellerID).Msg("error creating auction")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return auctionID, nil
}

// GetAuctionByID retrieves one auction row.
// Returns [ErrAuctionNotFound] when no row matches.
func (r *auctionRepository) GetAuctionByID(ctx context.Context, auctionID int64) (models.Auction, error) {
	log := logger.FromContext(ctx)

	var auction models.Auction
	row := r.db.QueryRowContext(ctx, getAuctionByID, auctionID)

	err := row.Scan(
		&auction.AuctionID,
		&auction.SellerID,
		&auction.Title,
		&auction.Description,
		&auction.CategoryID,
		&auction.EndDate,
		&auction.Reserve,
		&auction.ImageRef,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Auction{}, ErrAuctionNotFound
		}
		log.Err(err).Str("func", "*auctionRepository.GetAuctionByID").Int64("auction_id", auctionID).Msg("error scanning auction row")
		return models.Auction{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return auction, nil
}

// GetAuctionDetail retrieves one auction enriched with its bid aggregates
// and seller name, all read in a single statement so the fields reflect
// one snapshot.
func (r *auctionRepository) GetAuctionDetail(ctx context.Context, auctionID int64) (models.AuctionDetail, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildAuctionDetailQuery(auctionID)
	if err != nil {
		log.Err(err).Str("func", "*auctionRepository.GetAuctionDetail").Msg("failed to build query")
		return models.AuctionDetail{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var detail models.AuctionDetail
	var highest sql.NullInt64
	row := r.db.QueryRowContext(ctx, query, args...)

	err = row.Scan(
		&detail.AuctionID,
		&detail.Title,
		&detail.Description,
		&detail.CategoryID,
		&detail.SellerID,
		&detail.SellerFirstName,
		&detail.SellerLastName,
		&detail.Reserve,
		&detail.EndDate,
		&detail.NumBids,
		&highest,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AuctionDetail{}, ErrAuctionNotFound
		}
		log.Err(err).Str("func", "*auctionRepository.GetAuctionDetail").Int64("auction_id", auctionID).Msg("error scanning auction detail")
		return models.AuctionDetail{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if highest.Valid {
		detail.HighestBid = &highest.Int64
	}

	return detail, nil
}

// ListAuctions runs the filtered, sorted, paged listing query. Every
// summary row carries its bid count, highest bid, and seller name computed
// in the same statement as the base row.
func (r *auctionRepository) ListAuctions(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) ([]models.AuctionSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAuctionsQuery(filter, sort, page)
	if err != nil {
		log.Err(err).Str("func", "*auctionRepository.ListAuctions").Msg("failed to build listing query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auctionRepository.ListAuctions").Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.AuctionSummary, 0, 50)

	for rows.Next() {
		var summary models.AuctionSummary
		var highest sql.NullInt64

		scanErr := rows.Scan(
			&summary.AuctionID,
			&summary.Title,
			&summary.CategoryID,
			&summary.SellerID,
			&summary.SellerFirstName,
			&summary.SellerLastName,
			&summary.Reserve,
			&summary.EndDate,
			&summary.NumBids,
			&highest,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*auctionRepository.ListAuctions").Msg("failed to scan summary row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if highest.Valid {
			summary.HighestBid = &highest.Int64
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*auctionRepository.ListAuctions").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return summaries, nil
}

// UpdateAuction applies the non-nil patch fields, but only if the auction
// still has zero bids at commit time. The row is locked first, then the
// bid count is checked, then the update runs, all in one transaction, so
// a bid landing concurrently either commits before the lock (update
// rejected) or waits behind it.
//
// Reports whether anything changed; an empty patch reports false without
// writing.
func (r *auctionRepository) UpdateAuction(ctx context.Context, auctionID int64, patch models.AuctionPatch) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, ok, err := buildUpdateAuctionQuery(auctionID, patch)
	if err != nil {
		log.Err(err).Str("func", "*auctionRepository.UpdateAuction").Int64("auction_id", auctionID).Msg("failed to build update query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if !ok {
		return false, nil
	}

	var changed bool
	err = r.db.inTx(ctx, nil, func(tx *sql.Tx) error {
		if err := lockAuctionRow(ctx, tx, auctionID); err != nil {
			return err
		}

		var numBids int64
		if err := tx.QueryRowContext(ctx, countBids, auctionID).Scan(&numBids); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if numBids > 0 {
			return ErrAuctionHasBids
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		changed = affected > 0

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*auctionRepository.UpdateAuction").Int64("auction_id", auctionID).Msg("update transaction failed")
		return false, err
	}

	return changed, nil
}

// DeleteAuction removes the auction row, but only if it still has zero
// bids at commit time; the transaction shape mirrors [UpdateAuction]. The
// bids table additionally carries ON DELETE RESTRICT, so even a path that
// skipped this check could not cascade bids away.
func (r *auctionRepository) DeleteAuction(ctx context.Context, auctionID int64) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, nil, func(tx *sql.Tx) error {
		if err := lockAuctionRow(ctx, tx, auctionID); err != nil {
			return err
		}

		var numBids int64
		if err := tx.QueryRowContext(ctx, countBids, auctionID).Scan(&numBids); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if numBids > 0 {
			return ErrAuctionHasBids
		}

		if _, err := tx.ExecContext(ctx, deleteAuction, auctionID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*auctionRepository.DeleteAuction").Int64("auction_id", auctionID).Msg("delete transaction failed")
		return err
	}

	return nil
}

// lockAuctionRow takes the per-auction serialization point: FOR UPDATE on
// the auction row. Returns [ErrAuctionNotFound] when the row is absent.
func lockAuctionRow(ctx context.Context, tx *sql.Tx, auctionID int64) error {
	var sellerID int64
	var endDate time.Time

	if err := tx.QueryRowContext(ctx, lockAuction, auctionID).Scan(&sellerID, &endDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAuctionNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
