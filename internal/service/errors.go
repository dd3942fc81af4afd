package service

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are never distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound covers both a missing record and a record owned by a
	// different user; the two are reported identically.
	ErrNotFound = errors.New("not found")

	ErrInvalidInput = errors.New("invalid input")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// ErrUnavailable means the backing store could not serve the request.
	ErrUnavailable = errors.New("service unavailable")
)

// storeErr normalizes a repository failure: no rows becomes the not-found
// taxonomy, anything else is surfaced as the single "store unavailable"
// signal so handlers answer 503 instead of hanging or leaking driver detail.
func storeErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
