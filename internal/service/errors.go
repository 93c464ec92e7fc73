package service

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")

	// ErrNoFilter means a search endpoint was called without any search
	// parameter. Listing everything is a different operation.
	ErrNoFilter = errors.New("at least one search parameter is required")

	ErrEntryNotFound    = errors.New("entry not found")
	ErrNoFields         = errors.New("no fields to update provided")
	ErrNoPhoto          = errors.New("no photo provided")
	ErrNoValidPhoto     = errors.New("no valid photo file provided")
	ErrMalformedExpense = errors.New("malformed expense, expected category:amount")
	ErrBadCoordinate    = errors.New("latitude and longitude must be numeric")
)
