package store

import (
	"context"
	"fmt"

	"bidhouse/internal/logger"
	"bidhouse/models"
)

// categoryRepository reads the seeded category reference set. Categories
// are created by migration and never mutated through the API.
type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getCategories)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetCategories").Msg("failed to query categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 16)

	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.CategoryID, &category.Name); err != nil {
			log.Err(err).Str("func", "*categoryRepository.GetCategories").Msg("failed to scan category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetCategories").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

func (r *categoryRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, categoryExists, categoryID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*categoryRepository.CategoryExists").Int64("category_id", categoryID).Msg("failed to check category")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}
