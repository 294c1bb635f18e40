package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bidhouse/internal/logger"
	"bidhouse/models"
)

// imageRefRepository binds blob-store filenames to their owning rows.
// Users and auctions each hold at most one image reference in an
// image_filename column; the repository is generic over the two tables
// through a fixed owner-to-table mapping; owner kinds never come from
// request input unchecked.
type imageRefRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewImageRefRepository constructs an [ImageRefRepository] backed by the
// provided database connection and logger.
func NewImageRefRepository(db *DB, logger *logger.Logger) ImageRefRepository {
	return &imageRefRepository{
		db:     db,
		logger: logger,
	}
}

// ownerTable maps an owner kind to its table and not-found sentinel.
// Returning an error for unknown kinds keeps table names out of reach of
// caller input.
func ownerTable(owner models.ImageOwner) (string, error, error) {
	switch owner {
	case models.ImageOwnerUser:
		return "users", ErrUserNotFound, nil
	case models.ImageOwnerAuction:
		return "auctions", ErrAuctionNotFound, nil
	default:
		return "", nil, fmt.Errorf("unknown image owner kind: %q", owner)
	}
}

// GetImageRef returns the owner's stored filename, empty when the owner
// has no image. Owner absence surfaces as the owner's not-found sentinel.
func (r *imageRefRepository) GetImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error) {
	log := logger.FromContext(ctx)

	table, notFound, err := ownerTable(owner)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(`SELECT COALESCE(image_filename, '') FROM %s WHERE id = $1;`, table)

	var ref string
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", notFound
		}
		log.Err(err).Str("func", "*imageRefRepository.GetImageRef").Str("owner", string(owner)).Int64("owner_id", ownerID).Msg("failed to query image ref")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ref, nil
}

// SetImageRef stores ref on the owner's row and returns the previous
// reference (empty when none existed). The read and the write share one
// transaction with the row locked, so "created vs replaced" is decided on
// a consistent view.
func (r *imageRefRepository) SetImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64, ref string) (string, error) {
	log := logger.FromContext(ctx)

	table, notFound, err := ownerTable(owner)
	if err != nil {
		return "", err
	}

	selectQuery := fmt.Sprintf(`SELECT COALESCE(image_filename, '') FROM %s WHERE id = $1 FOR UPDATE;`, table)
	updateQuery := fmt.Sprintf(`UPDATE %s SET image_filename = $1 WHERE id = $2;`, table)

	var prev string
	err = r.db.inTx(ctx, nil, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, selectQuery, ownerID).Scan(&prev); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err := tx.ExecContext(ctx, updateQuery, ref, ownerID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*imageRefRepository.SetImageRef").Str("owner", string(owner)).Int64("owner_id", ownerID).Msg("failed to set image ref")
		return "", err
	}

	return prev, nil
}

// ListImageRefs returns every live filename reference across users and
// auctions. Feeds the orphaned-blob sweeper.
func (r *imageRefRepository) ListImageRefs(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT image_filename FROM users WHERE image_filename IS NOT NULL
		UNION
		SELECT image_filename FROM auctions WHERE image_filename IS NOT NULL;`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*imageRefRepository.ListImageRefs").Msg("failed to query image refs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}

// ClearImageRef removes the owner's image reference and returns what it
// was. Clearing an owner that has no image is [ErrAttachmentNotFound],
// not a silent success.
func (r *imageRefRepository) ClearImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error) {
	log := logger.FromContext(ctx)

	table, notFound, err := ownerTable(owner)
	if err != nil {
		return "", err
	}

	selectQuery := fmt.Sprintf(`SELECT COALESCE(image_filename, '') FROM %s WHERE id = $1 FOR UPDATE;`, table)
	updateQuery := fmt.Sprintf(`UPDATE %s SET image_filename = NULL WHERE id = $1;`, table)

	var prev string
	err = r.db.inTx(ctx, nil, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, selectQuery, ownerID).Scan(&prev); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if prev == "" {
			return ErrAttachmentNotFound
		}

		if _, err := tx.ExecContext(ctx, updateQuery, ownerID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*imageRefRepository.ClearImageRef").Str("owner", string(owner)).Int64("owner_id", ownerID).Msg("failed to clear image ref")
		return "", err
	}

	return prev, nil
}
