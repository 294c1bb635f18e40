package store

import (
	"bidhouse/internal/config"
	"bidhouse/internal/logger"
)

// Repositories aggregates every persistence-layer dependency the service
// layer needs, wired once at startup.
type Repositories struct {
	Users      UserRepository
	Sessions   SessionRepository
	Categories CategoryRepository
	Auctions   AuctionRepository
	Bids       BidRepository
	ImageRefs  ImageRefRepository
	Blobs      BlobStore
}

// NewRepositories wires all repositories onto the shared database
// connection and the file blob store.
func NewRepositories(db *DB, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	blobs, err := NewFileBlobStore(cfg.Images, log)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Users:      NewUserRepository(db, log),
		Sessions:   NewSessionRepository(db, log),
		Categories: NewCategoryRepository(db, log),
		Auctions:   NewAuctionRepository(db, log),
		Bids:       NewBidRepository(db, log),
		ImageRefs:  NewImageRefRepository(db, log),
		Blobs:      blobs,
	}, nil
}
