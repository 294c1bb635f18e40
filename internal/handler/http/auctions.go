package http

import (
	"encoding/json"
	"net/http"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/internal/utils"
	"bidhouse/models"
)

func (h *Handler) listAuctions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, sort, page, err := listParamsFromRequest(r)
	if err != nil {
		log.Err(err).Msg("malformed listing parameters")
		http.Error(w, "malformed listing parameters", http.StatusBadRequest)
		return
	}

	list, err := h.services.AuctionService.ListAuctions(ctx, filter, sort, page)
	if err != nil {
		h.handleError(w, r, err, "auction listing failed")
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

// listParamsFromRequest parses the listing query string. Unknown sort
// keys are caught later by the service; this only rejects non-numeric
// numerics.
func listParamsFromRequest(r *http.Request) (models.ListFilter, models.SortOrder, models.Page, error) {
	var filter models.ListFilter
	var page models.Page

	if sellerID, ok, err := queryInt64(r, "sellerId"); err != nil {
		return filter, "", page, err
	} else if ok {
		filter.SellerID = &sellerID
	}

	if categoryID, ok, err := queryInt64(r, "categoryId"); err != nil {
		return filter, "", page, err
	} else if ok {
		filter.CategoryID = &categoryID
	}

	if bidderID, ok, err := queryInt64(r, "bidderId"); err != nil {
		return filter, "", page, err
	} else if ok {
		filter.BidderID = &bidderID
	}

	filter.TextQuery = r.URL.Query().Get("q")

	if startIndex, ok, err := queryUint64(r, "startIndex"); err != nil {
		return filter, "", page, err
	} else if ok {
		page.StartIndex = &startIndex
	}

	if count, ok, err := queryUint64(r, "count"); err != nil {
		return filter, "", page, err
	} else if ok {
		page.Count = &count
	}

	sort := models.SortOrder(r.URL.Query().Get("sortBy"))

	return filter, sort, page, nil
}

func (h *Handler) createAuction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sellerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var draft models.AuctionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	auctionID, err := h.services.AuctionService.CreateAuction(ctx, sellerID, draft)
	if err != nil {
		h.handleError(w, r, err, "auction creation failed")
		return
	}

	utils.WriteJSON(w, struct {
		AuctionID int64 `json:"auctionId"`
	}{AuctionID: auctionID}, http.StatusCreated)
}

func (h *Handler) getAuction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auctionID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrAuctionNotFound, "malformed auction id")
		return
	}

	auction, err := h.services.AuctionService.GetAuction(ctx, auctionID)
	if err != nil {
		h.handleError(w, r, err, "auction lookup failed")
		return
	}

	utils.WriteJSON(w, auction, http.StatusOK)
}

func (h *Handler) updateAuction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	auctionID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrAuctionNotFound, "malformed auction id")
		return
	}

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patch models.AuctionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	changed, err := h.services.AuctionService.UpdateAuction(ctx, auctionID, actorID, patch)
	if err != nil {
		h.handleError(w, r, err, "auction update failed")
		return
	}

	log.Debug().Int64("id", auctionID).Bool("changed", changed).Msg("auction update applied")

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAuction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auctionID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrAuctionNotFound, "malformed auction id")
		return
	}

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuctionService.DeleteAuction(ctx, auctionID, actorID); err != nil {
		h.handleError(w, r, err, "auction delete failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.AuctionService.GetCategories(r.Context())
	if err != nil {
		h.handleError(w, r, err, "category listing failed")
		return
	}

	utils.WriteJSON(w, categories, http.StatusOK)
}
