package service

import (
	"context"
	"errors"

	"bidhouse/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn     func(ctx context.Context, user models.User) (models.User, error)
	getByIDFn    func(ctx context.Context, userID int64) (models.User, error)
	getByEmailFn func(ctx context.Context, email string) (models.User, error)
	updateFn     func(ctx context.Context, userID int64, patch models.UserPatch, passwordHash string) (bool, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return models.User{Email: email}, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, userID int64, patch models.UserPatch, passwordHash string) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, patch, passwordHash)
	}
	return true, nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	saveFn          func(ctx context.Context, session models.Session) error
	getByTokenFn    func(ctx context.Context, token string) (models.Session, error)
	deleteByTokenFn func(ctx context.Context, token string) error
	deleteByUserFn  func(ctx context.Context, userID int64) error
}

func (m *mockSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return models.Session{Token: token}, nil
}

func (m *mockSessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	if m.deleteByTokenFn != nil {
		return m.deleteByTokenFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepository) DeleteSessionByUser(ctx context.Context, userID int64) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.CategoryRepository
// ─────────────────────────────────────────────

type mockCategoryRepository struct {
	getAllFn func(ctx context.Context) ([]models.Category, error)
	existsFn func(ctx context.Context, categoryID int64) (bool, error)
}

func (m *mockCategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, categoryID)
	}
	return true, nil
}

// ─────────────────────────────────────────────
// Mock: store.AuctionRepository
// ─────────────────────────────────────────────

type mockAuctionRepository struct {
	createFn    func(ctx context.Context, draft models.AuctionDraft, sellerID int64) (int64, error)
	getByIDFn   func(ctx context.Context, auctionID int64) (models.Auction, error)
	getDetailFn func(ctx context.Context, auctionID int64) (models.AuctionDetail, error)
	listFn      func(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) ([]models.AuctionSummary, error)
	updateFn    func(ctx context.Context, auctionID int64, patch models.AuctionPatch) (bool, error)
	deleteFn    func(ctx context.Context, auctionID int64) error
}

func (m *mockAuctionRepository) CreateAuction(ctx context.Context, draft models.AuctionDraft, sellerID int64) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, draft, sellerID)
	}
	return 1, nil
}

func (m *mockAuctionRepository) GetAuctionByID(ctx context.Context, auctionID int64) (models.Auction, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, auctionID)
	}
	return models.Auction{AuctionID: auctionID}, nil
}

func (m *mockAuctionRepository) GetAuctionDetail(ctx context.Context, auctionID int64) (models.AuctionDetail, error) {
	if m.getDetailFn != nil {
		return m.getDetailFn(ctx, auctionID)
	}
	return models.AuctionDetail{}, nil
}

func (m *mockAuctionRepository) ListAuctions(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) ([]models.AuctionSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, sort, page)
	}
	return nil, nil
}

func (m *mockAuctionRepository) UpdateAuction(ctx context.Context, auctionID int64, patch models.AuctionPatch) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, auctionID, patch)
	}
	return true, nil
}

func (m *mockAuctionRepository) DeleteAuction(ctx context.Context, auctionID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, auctionID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.BidRepository
// ─────────────────────────────────────────────

type mockBidRepository struct {
	placeFn     func(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error)
	highestFn   func(ctx context.Context, auctionID int64) (*int64, error)
	countFn     func(ctx context.Context, auctionID int64) (int64, error)
	listFn      func(ctx context.Context, auctionID int64) ([]models.BidSummary, error)
	hasBidderFn func(ctx context.Context, auctionID, bidderID int64) (bool, error)
}

func (m *mockBidRepository) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error) {
	if m.placeFn != nil {
		return m.placeFn(ctx, auctionID, bidderID, amount)
	}
	return models.Bid{AuctionID: auctionID, BidderID: bidderID, Amount: amount}, nil
}

func (m *mockBidRepository) GetHighestBid(ctx context.Context, auctionID int64) (*int64, error) {
	if m.highestFn != nil {
		return m.highestFn(ctx, auctionID)
	}
	return nil, nil
}

func (m *mockBidRepository) GetBidCount(ctx context.Context, auctionID int64) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, auctionID)
	}
	return 0, nil
}

func (m *mockBidRepository) ListBids(ctx context.Context, auctionID int64) ([]models.BidSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, auctionID)
	}
	return nil, nil
}

func (m *mockBidRepository) AuctionHasBidder(ctx context.Context, auctionID, bidderID int64) (bool, error) {
	if m.hasBidderFn != nil {
		return m.hasBidderFn(ctx, auctionID, bidderID)
	}
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: store.ImageRefRepository
// ─────────────────────────────────────────────

type mockImageRefRepository struct {
	getFn   func(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error)
	setFn   func(ctx context.Context, owner models.ImageOwner, ownerID int64, ref string) (string, error)
	clearFn func(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error)
	listFn  func(ctx context.Context) ([]string, error)
}

func (m *mockImageRefRepository) GetImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error) {
	if m.getFn != nil {
		return m.getFn(ctx, owner, ownerID)
	}
	return "", nil
}

func (m *mockImageRefRepository) SetImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64, ref string) (string, error) {
	if m.setFn != nil {
		return m.setFn(ctx, owner, ownerID, ref)
	}
	return "", nil
}

func (m *mockImageRefRepository) ClearImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error) {
	if m.clearFn != nil {
		return m.clearFn(ctx, owner, ownerID)
	}
	return "", nil
}

func (m *mockImageRefRepository) ListImageRefs(ctx context.Context) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.BlobStore
// ─────────────────────────────────────────────

type mockBlobStore struct {
	writeFn  func(ctx context.Context, key string, data []byte) error
	readFn   func(ctx context.Context, key string) ([]byte, error)
	deleteFn func(ctx context.Context, key string) error
	existsFn func(ctx context.Context, key string) (bool, error)
	keysFn   func(ctx context.Context) ([]string, error)
}

func (m *mockBlobStore) Write(ctx context.Context, key string, data []byte) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, key, data)
	}
	return nil
}

func (m *mockBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	if m.readFn != nil {
		return m.readFn(ctx, key)
	}
	return nil, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockBlobStore) Keys(ctx context.Context) ([]string, error) {
	if m.keysFn != nil {
		return m.keysFn(ctx)
	}
	return nil, nil
}
