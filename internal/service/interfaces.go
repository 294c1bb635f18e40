package service

import (
	"context"

	"bidhouse/models"
)

// AuthService owns registration, credential verification, and the opaque
// session-token lifecycle.
type AuthService interface {
	// Register creates an account and returns it with its new id.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	// Login verifies credentials and issues a fresh token, implicitly
	// revoking any token the user held before.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	// Logout revokes the presented token.
	Logout(ctx context.Context, token string) error
	// Resolve maps a bearer token to the authenticated user id;
	// store.ErrSessionNotFound signals absence.
	Resolve(ctx context.Context, token string) (int64, error)
	// Revoke clears whatever session the user holds. Idempotent.
	Revoke(ctx context.Context, userID int64) error
}

// UserService serves user profiles.
type UserService interface {
	// GetUser returns the user's public projection; the email is included
	// only when viewerID is the user themselves.
	GetUser(ctx context.Context, userID, viewerID int64) (models.User, error)
	// UpdateUser applies a partial profile update. Only the account owner
	// may update, and a password change requires the current password as
	// proof.
	UpdateUser(ctx context.Context, userID, actorID int64, patch models.UserPatch) (bool, error)
}

// AuctionService owns the listing lifecycle and the catalog read paths.
type AuctionService interface {
	CreateAuction(ctx context.Context, sellerID int64, draft models.AuctionDraft) (int64, error)
	GetAuction(ctx context.Context, auctionID int64) (models.AuctionDetail, error)
	// ListAuctions validates the filter (category id, sort key) before any
	// query executes, pages the base result, then applies the bidder
	// post-filter.
	ListAuctions(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) (models.AuctionList, error)
	UpdateAuction(ctx context.Context, auctionID, actorID int64, patch models.AuctionPatch) (bool, error)
	DeleteAuction(ctx context.Context, auctionID, actorID int64) error
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// BidService owns bid placement and the bid read paths.
type BidService interface {
	// PlaceBid runs the precondition chain (existence, self-bid, expiry,
	// amount) and commits the bid atomically with the final check.
	PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error)
	ListBids(ctx context.Context, auctionID int64) ([]models.BidSummary, error)
}

// ImageService owns image attachments for users and auctions.
type ImageService interface {
	// SetImage stores an upload and reports whether it created a new
	// attachment (true) or replaced an existing one (false).
	SetImage(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64, contentType string, data []byte) (bool, error)
	GetImage(ctx context.Context, owner models.ImageOwner, ownerID int64) (models.Attachment, error)
	RemoveImage(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64) error
}
