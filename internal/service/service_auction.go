package service

import (
	"context"
	"fmt"
	"time"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/models"
)

// auctionService is the auction lifecycle manager: it owns the
// create/update/delete invariants and the catalog read paths.
//
// Ownership and category checks run here; the zero-bids precondition is
// enforced by the repository inside the write transaction, because that
// is the only place it cannot go stale.
type auctionService struct {
	auctionRepository  store.AuctionRepository
	bidRepository      store.BidRepository
	categoryRepository store.CategoryRepository

	logger *logger.Logger

	// now is swappable for tests; production uses time.Now.
	now func() time.Time
}

// NewAuctionService constructs an AuctionService wired to the given
// repositories.
func NewAuctionService(auctions store.AuctionRepository, bids store.BidRepository, categories store.CategoryRepository, logger *logger.Logger) AuctionService {
	return &auctionService{
		auctionRepository:  auctions,
		bidRepository:      bids,
		categoryRepository: categories,
		logger:             logger,
		now:                time.Now,
	}
}

// CreateAuction validates and persists a new listing.
//
// The category must exist (store.ErrCategoryNotFound otherwise) and the
// end date must be strictly in the future (ErrEndDateNotInFuture). A
// reserve below 1, including the zero value of an omitted field, is
// normalized to 1 rather than rejected, matching the listing semantics of
// "reserve defaults to 1".
func (s *auctionService) CreateAuction(ctx context.Context, sellerID int64, draft models.AuctionDraft) (int64, error) {
	log := logger.FromContext(ctx)

	if draft.Title == "" || draft.Description == "" {
		return 0, ErrInvalidDataProvided
	}

	if err := s.checkCategory(ctx, draft.CategoryID); err != nil {
		return 0, err
	}

	if !draft.EndDate.After(s.now()) {
		log.Error().Time("end_date", draft.EndDate).Msg("end date not in the future")
		return 0, ErrEndDateNotInFuture
	}

	if draft.Reserve < 1 {
		draft.Reserve = 1
	}

	auctionID, err := s.auctionRepository.CreateAuction(ctx, draft, sellerID)
	if err != nil {
		log.Err(err).Int64("seller_id", sellerID).Msg("auction creation failed")
		return 0, err
	}

	return auctionID, nil
}

// GetAuction returns the enriched single-auction projection.
func (s *auctionService) GetAuction(ctx context.Context, auctionID int64) (models.AuctionDetail, error) {
	return s.auctionRepository.GetAuctionDetail(ctx, auctionID)
}

// ListAuctions serves the filtered, sorted, paged catalog view.
//
// The category filter is validated against the category set and the sort
// key against its enumeration before any query executes. Paging applies
// to the base query; the bidder predicate is derived, not stored, so it is
// evaluated per candidate and thins the returned page. Count reflects the
// rows actually returned.
func (s *auctionService) ListAuctions(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) (models.AuctionList, error) {
	log := logger.FromContext(ctx)

	if !sort.Valid() {
		return models.AuctionList{}, ErrInvalidSortKey
	}

	if filter.CategoryID != nil {
		if err := s.checkCategory(ctx, *filter.CategoryID); err != nil {
			return models.AuctionList{}, err
		}
	}

	summaries, err := s.auctionRepository.ListAuctions(ctx, filter, sort, page)
	if err != nil {
		log.Err(err).Msg("listing query failed")
		return models.AuctionList{}, err
	}

	if filter.BidderID != nil {
		filtered := make([]models.AuctionSummary, 0, len(summaries))
		for _, summary := range summaries {
			hasBidder, err := s.bidRepository.AuctionHasBidder(ctx, summary.AuctionID, *filter.BidderID)
			if err != nil {
				return models.AuctionList{}, err
			}
			if hasBidder {
				filtered = append(filtered, summary)
			}
		}
		summaries = filtered
	}

	if summaries == nil {
		summaries = []models.AuctionSummary{}
	}

	return models.AuctionList{
		Auctions: summaries,
		Count:    len(summaries),
	}, nil
}

// UpdateAuction applies a partial update to a listing.
//
// Outcomes, checked in order: store.ErrAuctionNotFound; ErrNotOwner when
// the actor is not the seller; store.ErrAuctionHasBids once any bid
// exists, whatever the patch contains; then field validation (future end
// date, existing category). The repository re-checks the zero-bids rule
// inside the write transaction, so a first bid racing the update still
// loses. Reports whether anything changed.
func (s *auctionService) UpdateAuction(ctx context.Context, auctionID, actorID int64, patch models.AuctionPatch) (bool, error) {
	log := logger.FromContext(ctx)

	auction, err := s.auctionRepository.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return false, err
	}

	if auction.SellerID != actorID {
		log.Warn().Int64("auction_id", auctionID).Int64("actor_id", actorID).Msg("update attempted by non-seller")
		return false, ErrNotOwner
	}

	bidCount, err := s.bidRepository.GetBidCount(ctx, auctionID)
	if err != nil {
		return false, err
	}
	if bidCount > 0 {
		return false, store.ErrAuctionHasBids
	}

	if patch.EndDate != nil && !patch.EndDate.After(s.now()) {
		return false, ErrEndDateNotInFuture
	}

	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return false, err
		}
	}

	if patch.Reserve != nil && *patch.Reserve < 1 {
		normalized := int64(1)
		patch.Reserve = &normalized
	}

	changed, err := s.auctionRepository.UpdateAuction(ctx, auctionID, patch)
	if err != nil {
		log.Err(err).Int64("auction_id", auctionID).Msg("auction update failed")
		return false, err
	}

	return changed, nil
}

// DeleteAuction removes a listing under the same ownership and zero-bids
// rules as UpdateAuction. An auction that has ever been bid on is never
// deleted.
func (s *auctionService) DeleteAuction(ctx context.Context, auctionID, actorID int64) error {
	log := logger.FromContext(ctx)

	auction, err := s.auctionRepository.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return err
	}

	if auction.SellerID != actorID {
		log.Warn().Int64("auction_id", auctionID).Int64("actor_id", actorID).Msg("delete attempted by non-seller")
		return ErrNotOwner
	}

	if err := s.auctionRepository.DeleteAuction(ctx, auctionID); err != nil {
		log.Err(err).Int64("auction_id", auctionID).Msg("auction delete failed")
		return err
	}

	return nil
}

// GetCategories returns the seeded category reference set.
func (s *auctionService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepository.GetCategories(ctx)
}

func (s *auctionService) checkCategory(ctx context.Context, categoryID int64) error {
	exists, err := s.categoryRepository.CategoryExists(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("category check failed: %w", err)
	}
	if !exists {
		return store.ErrCategoryNotFound
	}

	return nil
}
