package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/models"
)

func newTestAuctionService(auctions *mockAuctionRepository, bids *mockBidRepository, categories *mockCategoryRepository) *auctionService {
	return &auctionService{
		auctionRepository:  auctions,
		bidRepository:      bids,
		categoryRepository: categories,
		logger:             logger.Nop(),
		now:                time.Now,
	}
}

func validDraft() models.AuctionDraft {
	return models.AuctionDraft{
		Title:       "vintage radio",
		Description: "valve era, working",
		CategoryID:  3,
		EndDate:     time.Now().Add(48 * time.Hour),
		Reserve:     50,
	}
}

func TestAuctionService_CreateAuction_Success(t *testing.T) {
	auctions := &mockAuctionRepository{
		createFn: func(_ context.Context, draft models.AuctionDraft, sellerID int64) (int64, error) {
			assert.Equal(t, int64(10), sellerID)
			assert.Equal(t, int64(50), draft.Reserve)
			return 42, nil
		},
	}
	svc := newTestAuctionService(auctions, &mockBidRepository{}, &mockCategoryRepository{})

	auctionID, err := svc.CreateAuction(context.Background(), 10, validDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(42), auctionID)
}

func TestAuctionService_CreateAuction_ReserveDefaultsToOne(t *testing.T) {
	tests := []struct {
		name    string
		reserve int64
	}{
		{"omitted", 0},
		{"negative", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auctions := &mockAuctionRepository{
				createFn: func(_ context.Context, draft models.AuctionDraft, _ int64) (int64, error) {
					assert.Equal(t, int64(1), draft.Reserve)
					return 1, nil
				},
			}
			svc := newTestAuctionService(auctions, &mockBidRepository{}, &mockCategoryRepository{})

			draft := validDraft()
			draft.Reserve = tt.reserve

			_, err := svc.CreateAuction(context.Background(), 10, draft)
			require.NoError(t, err)
		})
	}
}

func TestAuctionService_CreateAuction_UnknownCategory(t *testing.T) {
	categories := &mockCategoryRepository{
		existsFn: func(_ context.Context, _ int64) (bool, error) { return false, nil },
	}
	svc := newTestAuctionService(&mockAuctionRepository{}, &mockBidRepository{}, categories)

	_, err := svc.CreateAuction(context.Background(), 10, validDraft())
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestAuctionService_CreateAuction_EndDateMustBeFuture(t *testing.T) {
	svc := newTestAuctionService(&mockAuctionRepository{}, &mockBidRepository{}, &mockCategoryRepository{})
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	draft := validDraft()
	draft.EndDate = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) // exactly now

	_, err := svc.CreateAuction(context.Background(), 10, draft)
	assert.ErrorIs(t, err, ErrEndDateNotInFuture)
}

func TestAuctionService_ListAuctions_RejectsUnknownSortKey(t *testing.T) {
	svc := newTestAuctionService(&mockAuctionRepository{}, &mockBidRepository{}, &mockCategoryRepository{})

	_, err := svc.ListAuctions(context.Background(), models.ListFilter{}, models.SortOrder("PRICE_ASC"), models.Page{})
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestAuctionService_ListAuctions_ValidatesCategoryBeforeQuery(t *testing.T) {
	categories := &mockCategoryRepository{
		existsFn: func(_ context.Context, _ int64) (bool, error) { return false, nil },
	}
	auctions := &mockAuctionRepository{
		listFn: func(_ context.Context, _ models.ListFilter, _ models.SortOrder, _ models.Page) ([]models.AuctionSummary, error) {
			t.Fatal("listing must not run with an unknown category filter")
			return nil, nil
		},
	}
	svc := newTestAuctionService(auctions, &mockBidRepository{}, categories)

	categoryID := int64(404)
	_, err := svc.ListAuctions(context.Background(), models.ListFilter{CategoryID: &categoryID}, models.SortDefault, models.Page{})
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestAuctionService_ListAuctions_BidderPostFilter(t *testing.T) {
	auctions := &mockAuctionRepository{
		listFn: func(_ context.Context, _ models.ListFilter, _ models.SortOrder, _ models.Page) ([]models.AuctionSummary, error) {
			return []models.AuctionSummary{
				{AuctionID: 1}, {AuctionID: 2}, {AuctionID: 3},
			}, nil
		},
	}
	bids := &mockBidRepository{
		hasBidderFn: func(_ context.Context, auctionID, bidderID int64) (bool, error) {
			assert.Equal(t, int64(20), bidderID)
			return auctionID == 2, nil
		},
	}
	svc := newTestAuctionService(auctions, bids, &mockCategoryRepository{})

	bidderID := int64(20)
	list, err := svc.ListAuctions(context.Background(), models.ListFilter{BidderID: &bidderID}, models.SortDefault, models.Page{})
	require.NoError(t, err)

	require.Len(t, list.Auctions, 1)
	assert.Equal(t, int64(2), list.Auctions[0].AuctionID)
	assert.Equal(t, 1, list.Count)
}

func TestAuctionService_ListAuctions_EmptyResultIsNotNil(t *testing.T) {
	svc := newTestAuctionService(&mockAuctionRepository{}, &mockBidRepository{}, &mockCategoryRepository{})

	list, err := svc.ListAuctions(context.Background(), models.ListFilter{}, models.SortDefault, models.Page{})
	require.NoError(t, err)
	assert.NotNil(t, list.Auctions)
	assert.Equal(t, 0, list.Count)
}

func TestAuctionService_UpdateAuction_OnlySeller(t *testing.T) {
	auctions := &mockAuctionRepository{
		getByIDFn: func(_ context.Context, auctionID int64) (models.Auction, error) {
			return models.Auction{AuctionID: auctionID, SellerID: 10}, nil
		},
	}
	svc := newTestAuctionService(auctions, &mockBidRepository{}, &mockCategoryRepository{})

	title := "new"
	_, err := svc.UpdateAuction(context.Background(), 1, 99, models.AuctionPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestAuctionService_UpdateAuction_NotFoundBeforeOwnership(t *testing.T) {
	auctions := &mockAuctionRepository{
		getByIDFn: func(_ context.Context, _ int64) (models.Auction, error) {
			return models.Auction{}, store.ErrAuctionNotFound
		},
	}
	svc := newTestAuctionService(auctions, &mockBidRepository{}, &mockCategoryRepository{})

	_, err := svc.UpdateAuction(context.Background(), 404, 99, models.AuctionPatch{})
	assert.ErrorIs(t, err, store.ErrAuctionNotFound)
}

func TestAuctionService_UpdateAuction_EmptyPatchOnBidBearingAuction(t *testing.T) {
	auctions := &mockAuctionRepository{
		getByIDFn: func(_ context.Context, auctionID int64) (models.Auction, error) {
			return models.Auction{AuctionID: auctionID, SellerID: 10}, nil
		},
		updateFn: func(_ context.Context, _ int64, _ models.AuctionPatch) (bool, error) {
			t.Fatal("a bid-bearing auction must not reach the repository update")
			return false, nil
		},
	}
	bids := &mockBidRepository{
		countFn: func(_ context.Context, _ int64) (int64, error) { return 2, nil },
	}
	svc := newTestAuctionService(auctions, bids, &mockCategoryRepository{})

	_, err := svc.UpdateAuction(context.Background(), 7, 10, models.AuctionPatch{})
	assert.ErrorIs(t, err, store.ErrAuctionHasBids)
}

func TestAuctionService_UpdateAuction_HasBidsBeforeFieldValidation(t *testing.T) {
	auctions := &mockAuctionRepository{
		getByIDFn: func(_ context.Context, auctionID int64) (models.Auction, error) {
			return models.Auction{AuctionID: auctionID, SellerID: 10}, nil
		},
	}
	bids := &mockBidRepository{
		countFn: func(_ context.Context, _ int64) (int64, error) { return 1, nil },
	}
	svc := newTestAuctionService(auctions, bids, &mockCategoryRepository{})

	// The patch is also invalid (end date in the past); the bid gate must
	// still decide the outcome.
	past := time.Now().Add(-time.Hour)
	_, err := svc.UpdateAuction(context.Background(), 7, 10, models.AuctionPatch{EndDate: &past})
	assert.ErrorIs(t, err, store.ErrAuctionHasBids)
}

func TestAuctionService_UpdateAuction_HasBidsPropagates(t *testing.T) {
	auctions := &mockAuctionRepository{
		getByIDFn: func(_ context.Context, auctionID int64) (models.Auction, error) {
			return models.Auction{AuctionID: auctionID, SellerID: 10}, nil
		},
		updateFn: func(_ context.Context, _ int64, _ models.AuctionPatch) (bool, error) {
			return false, store.ErrAuctionHasBids
		},
	}
	svc := newTestAuctionService(auctions, &mockBidRepository{}, &mockCategoryRepository{})

	title := "new"
	_, err := svc.UpdateAuction(context.Background(), 1, 10, models.AuctionPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrAuctionHasBids)
}

func TestAuctionService_DeleteAuction_OnlySeller(t *testing.T) {
	auctions := &mockAuctionRepository{
		getByIDFn: func(_ context.Context, auctionID int64) (models.Auction, error) {
			return models.Auction{AuctionID: auctionID, SellerID: 10}, nil
		},
		deleteFn: func(_ context.Context, _ int64) error {
			t.Fatal("delete must not run for a non-seller")
			return nil
		},
	}
	svc := newTestAuctionService(auctions, &mockBidRepository{}, &mockCategoryRepository{})

	err := svc.DeleteAuction(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrNotOwner)
}
