package http

import (
	"encoding/json"
	"net/http"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/internal/utils"
	"bidhouse/models"
)

func (h *Handler) listBids(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auctionID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrAuctionNotFound, "malformed auction id")
		return
	}

	bids, err := h.services.BidService.ListBids(ctx, auctionID)
	if err != nil {
		h.handleError(w, r, err, "bid listing failed")
		return
	}

	if bids == nil {
		bids = []models.BidSummary{}
	}

	utils.WriteJSON(w, bids, http.StatusOK)
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auctionID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrAuctionNotFound, "malformed auction id")
		return
	}

	bidderID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	bid, err := h.services.BidService.PlaceBid(ctx, auctionID, bidderID, req.Amount)
	if err != nil {
		h.handleError(w, r, err, "bid placement failed")
		return
	}

	utils.WriteJSON(w, bid, http.StatusCreated)
}
