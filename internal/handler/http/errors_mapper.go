package http

import (
	"errors"
	"net/http"

	"bidhouse/internal/logger"
	"bidhouse/internal/service"
	"bidhouse/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrInvalidSortKey:       http.StatusBadRequest,
	service.ErrEndDateNotInFuture:   http.StatusBadRequest,
	service.ErrUnsupportedImageType: http.StatusBadRequest,
	service.ErrWrongPassword:        http.StatusUnauthorized,
	service.ErrNotOwner:             http.StatusForbidden,

	store.ErrSessionNotFound: http.StatusUnauthorized,
	store.ErrSelfBid:         http.StatusForbidden,
	store.ErrAuctionExpired:  http.StatusForbidden,
	store.ErrAuctionHasBids:  http.StatusForbidden,
	store.ErrUserNotFound:    http.StatusNotFound,
	store.ErrAuctionNotFound: http.StatusNotFound,
	// A category id is caller-supplied reference data, not an addressed
	// resource, so an unknown one is a validation failure.
	store.ErrCategoryNotFound:   http.StatusBadRequest,
	store.ErrAttachmentNotFound: http.StatusNotFound,
	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrBidTooLow:          http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// handleError writes the response for a failed service call: the mapped
// status, with the sentinel's message for client errors and a generic body
// for everything that maps to 500.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	log.Err(err).Msg(msg)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// A too-low bid carries the amount to beat in its message.
	var tooLow *store.BidTooLowError
	if errors.As(err, &tooLow) {
		http.Error(w, tooLow.Error(), status)
		return
	}

	http.Error(w, err.Error(), status)
}
