package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrNotOwner is returned when an actor other than the auction's
	// seller (or the account's own user) attempts a mutation.
	ErrNotOwner = errors.New("operation permitted only for the owner")

	// ErrEndDateNotInFuture is returned when a create or update supplies
	// an end date that is not strictly after the current instant.
	ErrEndDateNotInFuture = errors.New("end date must be in the future")

	// ErrInvalidSortKey is returned when a listing request names a sort
	// key outside the fixed enumeration.
	ErrInvalidSortKey = errors.New("unknown sort key")

	// ErrUnsupportedImageType is returned before any bytes are persisted
	// when an upload's content type is not in the allow-list.
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)
