package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bidhouse/internal/logger"
	"bidhouse/internal/service"
	"bidhouse/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn    func(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	logoutFn   func(ctx context.Context, token string) error
	resolveFn  func(ctx context.Context, token string) (int64, error)
	revokeFn   func(ctx context.Context, userID int64) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{UserID: 1, Email: req.Email}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.LoginResult{UserID: 1, Token: "token"}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) Resolve(ctx context.Context, token string) (int64, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, token)
	}
	return 1, nil
}

func (m *mockAuthService) Revoke(ctx context.Context, userID int64) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getFn    func(ctx context.Context, userID, viewerID int64) (models.User, error)
	updateFn func(ctx context.Context, userID, actorID int64, patch models.UserPatch) (bool, error)
}

func (m *mockUserService) GetUser(ctx context.Context, userID, viewerID int64) (models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, viewerID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID, actorID int64, patch models.UserPatch) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, actorID, patch)
	}
	return true, nil
}

// ─────────────────────────────────────────────
// Mock: service.AuctionService
// ─────────────────────────────────────────────

type mockAuctionService struct {
	createFn     func(ctx context.Context, sellerID int64, draft models.AuctionDraft) (int64, error)
	getFn        func(ctx context.Context, auctionID int64) (models.AuctionDetail, error)
	listFn       func(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) (models.AuctionList, error)
	updateFn     func(ctx context.Context, auctionID, actorID int64, patch models.AuctionPatch) (bool, error)
	deleteFn     func(ctx context.Context, auctionID, actorID int64) error
	categoriesFn func(ctx context.Context) ([]models.Category, error)
}

func (m *mockAuctionService) CreateAuction(ctx context.Context, sellerID int64, draft models.AuctionDraft) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, sellerID, draft)
	}
	return 1, nil
}

func (m *mockAuctionService) GetAuction(ctx context.Context, auctionID int64) (models.AuctionDetail, error) {
	if m.getFn != nil {
		return m.getFn(ctx, auctionID)
	}
	return models.AuctionDetail{}, nil
}

func (m *mockAuctionService) ListAuctions(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) (models.AuctionList, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, sort, page)
	}
	return models.AuctionList{Auctions: []models.AuctionSummary{}}, nil
}

func (m *mockAuctionService) UpdateAuction(ctx context.Context, auctionID, actorID int64, patch models.AuctionPatch) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, auctionID, actorID, patch)
	}
	return true, nil
}

func (m *mockAuctionService) DeleteAuction(ctx context.Context, auctionID, actorID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, auctionID, actorID)
	}
	return nil
}

func (m *mockAuctionService) GetCategories(ctx context.Context) ([]models.Category, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.BidService
// ─────────────────────────────────────────────

type mockBidService struct {
	placeFn func(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error)
	listFn  func(ctx context.Context, auctionID int64) ([]models.BidSummary, error)
}

func (m *mockBidService) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error) {
	if m.placeFn != nil {
		return m.placeFn(ctx, auctionID, bidderID, amount)
	}
	return models.Bid{AuctionID: auctionID, BidderID: bidderID, Amount: amount}, nil
}

func (m *mockBidService) ListBids(ctx context.Context, auctionID int64) ([]models.BidSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, auctionID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.ImageService
// ─────────────────────────────────────────────

type mockImageService struct {
	setFn    func(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64, contentType string, data []byte) (bool, error)
	getFn    func(ctx context.Context, owner models.ImageOwner, ownerID int64) (models.Attachment, error)
	removeFn func(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64) error
}

func (m *mockImageService) SetImage(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64, contentType string, data []byte) (bool, error) {
	if m.setFn != nil {
		return m.setFn(ctx, owner, ownerID, actorID, contentType, data)
	}
	return true, nil
}

func (m *mockImageService) GetImage(ctx context.Context, owner models.ImageOwner, ownerID int64) (models.Attachment, error) {
	if m.getFn != nil {
		return m.getFn(ctx, owner, ownerID)
	}
	return models.Attachment{}, nil
}

func (m *mockImageService) RemoveImage(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, owner, ownerID, actorID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler whose services default to permissive
// mocks; tests override the fields they exercise.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.UserService == nil {
		svcs.UserService = &mockUserService{}
	}
	if svcs.AuctionService == nil {
		svcs.AuctionService = &mockAuctionService{}
	}
	if svcs.BidService == nil {
		svcs.BidService = &mockBidService{}
	}
	if svcs.ImageService == nil {
		svcs.ImageService = &mockImageService{}
	}

	return &Handler{services: svcs, logger: logger.Nop()}
}

// injectNopLogger places a nop logger in the request context so handlers
// invoked outside the middleware chain still find one.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

// serveVia routes the request through the full router so URL parameters
// resolve; middleware behaviour is exercised as in production.
func serveVia(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}
