package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// "X-Authorization" HTTP header. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when
	// the incoming request does not include an "X-Authorization" header at
	// all, or includes it with an empty value.
	ErrEmptyAuthorizationHeader = errors.New("empty `X-Authorization` header")
)
