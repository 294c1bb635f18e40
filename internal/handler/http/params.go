package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var errMalformedID = errors.New("malformed id in path")

// idFromRequest parses the {id} URL parameter. A non-numeric id never
// names a resource, so callers answer it with 404.
func idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errMalformedID
	}
	return id, nil
}

// queryInt64 parses an optional integer query parameter. ok reports
// whether the parameter was present; err is non-nil when it was present
// but not an integer.
func queryInt64(r *http.Request, name string) (value int64, ok bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}

	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// queryUint64 is queryInt64 for non-negative parameters; a negative value
// is an error.
func queryUint64(r *http.Request, name string) (value uint64, ok bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}

	value, err = strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
