package http

import (
	"encoding/json"
	"net/http"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/internal/utils"
	"bidhouse/models"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrUserNotFound, "malformed user id")
		return
	}

	// Zero when the request is anonymous; no real account has id 0, so
	// the email stays hidden.
	viewerID, _ := utils.GetUserIDFromContext(ctx)

	user, err := h.services.UserService.GetUser(ctx, userID, viewerID)
	if err != nil {
		h.handleError(w, r, err, "user lookup failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := idFromRequest(r)
	if err != nil {
		h.handleError(w, r, store.ErrUserNotFound, "malformed user id")
		return
	}

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	changed, err := h.services.UserService.UpdateUser(ctx, userID, actorID, patch)
	if err != nil {
		h.handleError(w, r, err, "user update failed")
		return
	}

	// A credential change invalidates the session it was made with; the
	// caller has to log in again with the new password.
	if patch.Password != nil {
		if err := h.services.AuthService.Revoke(ctx, userID); err != nil {
			log.Err(err).Msg("failed to revoke session after password change")
		}
	}

	log.Debug().Int64("id", userID).Bool("changed", changed).Msg("user update applied")

	w.WriteHeader(http.StatusOK)
}
