package service

import (
	"bidhouse/internal/logger"
	"bidhouse/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	AuctionService AuctionService
	BidService     BidService
	ImageService   ImageService
}

func NewServices(repos *store.Repositories, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(repos.Users, repos.Sessions, logger),
		UserService:    NewUserService(repos.Users, logger),
		AuctionService: NewAuctionService(repos.Auctions, repos.Bids, repos.Categories, logger),
		BidService:     NewBidService(repos.Bids, repos.Auctions, logger),
		ImageService:   NewImageService(repos.ImageRefs, repos.Auctions, repos.Blobs, logger),
	}
}
