package http

import (
	"context"
	"net/http"

	"bidhouse/internal/logger"
	"bidhouse/internal/utils"
)

// authorizationHeader carries the opaque session token, with no scheme
// prefix.
const authorizationHeader = "X-Authorization"

// auth is an HTTP middleware that enforces session-token authentication.
//
// It reads the "X-Authorization" header, resolves the opaque token via
// [service.AuthService.Resolve], and on success stores the authenticated
// user's id in the request context under [utils.UserIDCtxKey] before
// delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is
// absent or empty, or when the token does not name a live session.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token := r.Header.Get(authorizationHeader)
		if token == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		userID, err := h.services.AuthService.Resolve(ctx, token)
		if err != nil {
			log.Err(err).Msg("token does not name a live session")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth resolves the token when one is presented but lets the
// request through anonymously when it is not. Used on read endpoints
// whose response depends on who is asking, such as the user profile that
// includes the email only for its owner. A presented-but-invalid token is
// still rejected rather than downgraded to anonymous.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(authorizationHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		h.auth(next).ServeHTTP(w, r)
	})
}
