package service

import (
	"context"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/models"
)

// bidService fronts bid placement and the bid read paths.
//
// The placement precondition chain (auction exists, bidder is not the
// seller, auction not expired, amount beats the current highest) is
// evaluated by the repository under the auction row lock; re-checking it
// here would only produce answers that can go stale before the insert.
type bidService struct {
	bidRepository     store.BidRepository
	auctionRepository store.AuctionRepository

	logger *logger.Logger
}

// NewBidService constructs a BidService wired to the given repositories.
func NewBidService(bids store.BidRepository, auctions store.AuctionRepository, logger *logger.Logger) BidService {
	return &bidService{
		bidRepository:     bids,
		auctionRepository: auctions,
		logger:            logger,
	}
}

// PlaceBid records a bid on an auction.
//
// A non-positive amount fails with ErrInvalidDataProvided before touching
// storage. Everything else is decided atomically by the repository:
// store.ErrAuctionNotFound, store.ErrSelfBid, store.ErrAuctionExpired, or
// a store.BidTooLowError carrying the amount to beat.
func (s *bidService) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (models.Bid, error) {
	log := logger.FromContext(ctx)

	if amount < 1 {
		return models.Bid{}, ErrInvalidDataProvided
	}

	bid, err := s.bidRepository.PlaceBid(ctx, auctionID, bidderID, amount)
	if err != nil {
		log.Err(err).
			Int64("auction_id", auctionID).
			Int64("bidder_id", bidderID).
			Int64("amount", amount).
			Msg("bid placement failed")
		return models.Bid{}, err
	}

	return bid, nil
}

// ListBids returns an auction's bids, highest first. An unknown auction
// surfaces as store.ErrAuctionNotFound rather than an empty list.
func (s *bidService) ListBids(ctx context.Context, auctionID int64) ([]models.BidSummary, error) {
	if _, err := s.auctionRepository.GetAuctionByID(ctx, auctionID); err != nil {
		return nil, err
	}

	return s.bidRepository.ListBids(ctx, auctionID)
}
