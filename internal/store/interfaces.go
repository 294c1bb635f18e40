package store

import (
	"context"

	"bidhouse/models"
)

// UserRepository persists user accounts and their profile-image reference.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	// UpdateUser applies the non-nil fields of the patch. passwordHash is
	// the already-hashed replacement password, empty when unchanged.
	// Reports whether any row data changed.
	UpdateUser(ctx context.Context, userID int64, patch models.UserPatch, passwordHash string) (bool, error)
}

// SessionRepository persists live authentication sessions keyed by token.
type SessionRepository interface {
	// SaveSession stores the session, replacing any session the user
	// already holds (one live token per user).
	SaveSession(ctx context.Context, session models.Session) error
	// GetSessionByToken resolves a bearer token; ErrSessionNotFound when
	// the token is unknown or revoked.
	GetSessionByToken(ctx context.Context, token string) (models.Session, error)
	// DeleteSessionByToken revokes one token; ErrSessionNotFound when the
	// token did not name a live session.
	DeleteSessionByToken(ctx context.Context, token string) error
	// DeleteSessionByUser revokes whatever session the user holds.
	// Idempotent: revoking an already-revoked session is a no-op.
	DeleteSessionByUser(ctx context.Context, userID int64) error
}

// CategoryRepository reads the immutable category reference set.
type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

// AuctionRepository persists auction listings. UpdateAuction and
// DeleteAuction run their zero-bids precondition inside the same
// transaction as the write, so a concurrent first bid cannot slip between
// check and commit.
type AuctionRepository interface {
	CreateAuction(ctx context.Context, draft models.AuctionDraft, sellerID int64) (int64, error)
	GetAuctionByID(ctx context.Context, auctionID int64) (models.Auction, error)
	GetAuctionDetail(ctx context.Context, auctionID int64) (models.AuctionDetail, error)
	ListAuctions(ctx context.Context, filter models.ListFilter, sort models.SortOrder, page models.Page) ([]models.AuctionSummary, error)
	UpdateAuction(ctx context.Context, auctionID int64, patch models.AuctionPatch) (bool, error)
	DeleteAuction(ctx context.Context, auctionID int64) error
}

// BidRepository persists bids and serves the bid-derived read paths.
type BidRepository interface {
	// PlaceBid validates and inserts a bid as one atomic unit: the parent
	// auction row is locked for the duration of the check-then-insert
	// sequence, which is what keeps bid amounts strictly increasing under
	// concurrent bidders.
	PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error)
	// GetHighestBid returns nil when the auction has no bids.
	GetHighestBid(ctx context.Context, auctionID int64) (*int64, error)
	GetBidCount(ctx context.Context, auctionID int64) (int64, error)
	ListBids(ctx context.Context, auctionID int64) ([]models.BidSummary, error)
	AuctionHasBidder(ctx context.Context, auctionID, bidderID int64) (bool, error)
}

// ImageRefRepository binds a blob-store filename to its owning row.
// Owners are addressed per kind because users and auctions live in
// different tables.
type ImageRefRepository interface {
	// GetImageRef returns the stored filename; empty string when the owner
	// exists but has no image. Owner absence surfaces as the owner's
	// not-found error.
	GetImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error)
	// SetImageRef stores ref and returns the previous reference (empty
	// when none existed), read in the same transaction as the write.
	SetImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64, ref string) (string, error)
	// ClearImageRef removes the reference and returns what it was;
	// ErrAttachmentNotFound when there was none.
	ClearImageRef(ctx context.Context, owner models.ImageOwner, ownerID int64) (string, error)
	// ListImageRefs returns every filename referenced by any owner row,
	// across both owner kinds.
	ListImageRefs(ctx context.Context) ([]string, error)
}

// BlobStore holds image bytes addressed by the filename reference stored
// on the owning row.
type BlobStore interface {
	Write(ctx context.Context, key string, data []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Keys lists every stored blob key.
	Keys(ctx context.Context) ([]string, error)
}
