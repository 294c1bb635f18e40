package http

import (
	"io"
	"net/http"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/internal/utils"
	"bidhouse/models"
)

// maxImageBytes caps an upload body. Larger payloads fail the read with a
// 400 rather than being buffered in full.
const maxImageBytes = 20 << 20

func (h *Handler) getUserImage(w http.ResponseWriter, r *http.Request) {
	h.getImage(w, r, models.ImageOwnerUser, store.ErrUserNotFound)
}

func (h *Handler) getAuctionImage(w http.ResponseWriter, r *http.Request) {
	h.getImage(w, r, models.ImageOwnerAuction, store.ErrAuctionNotFound)
}

func (h *Handler) setUserImage(w http.ResponseWriter, r *http.Request) {
	h.setImage(w, r, models.ImageOwnerUser, store.ErrUserNotFound)
}

func (h *Handler) setAuctionImage(w http.ResponseWriter, r *http.Request) {
	h.setImage(w, r, models.ImageOwnerAuction, store.ErrAuctionNotFound)
}

func (h *Handler) deleteUserImage(w http.ResponseWriter, r *http.Request) {
	h.deleteImage(w, r, models.ImageOwnerUser, store.ErrUserNotFound)
}

func (h *Handler) deleteAuctionImage(w http.ResponseWriter, r *http.Request) {
	h.deleteImage(w, r, models.ImageOwnerAuction, store.ErrAuctionNotFound)
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request, owner models.ImageOwner, notFound error) {
	ctx := r.Context()

	ownerID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, notFound, "malformed owner id")
		return
	}

	attachment, err := h.services.ImageService.GetImage(ctx, owner, ownerID)
	if err != nil {
		h.handleError(w, r, err, "image lookup failed")
		return
	}

	w.Header().Set("Content-Type", attachment.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(attachment.Data)
}

// setImage handles a raw-body image upload. Responds 201 Created when the
// owner had no image before, 200 OK when an existing image was replaced.
func (h *Handler) setImage(w http.ResponseWriter, r *http.Request, owner models.ImageOwner, notFound error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, notFound, "malformed owner id")
		return
	}

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		log.Err(err).Msg("image body read failed")
		http.Error(w, "image body read failed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ImageService.SetImage(ctx, owner, ownerID, actorID, r.Header.Get("Content-Type"), data)
	if err != nil {
		h.handleError(w, r, err, "image upload failed")
		return
	}

	if created {
		w.WriteHeader(http.StatusCreated)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request, owner models.ImageOwner, notFound error) {
	ctx := r.Context()

	ownerID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, notFound, "malformed owner id")
		return
	}

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.ImageService.RemoveImage(ctx, owner, ownerID, actorID); err != nil {
		h.handleError(w, r, err, "image removal failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}
