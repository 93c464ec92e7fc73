package repository

import "errors"

var (
	// ErrNotFound means no row matched the given identifiers.
	ErrNotFound = errors.New("record not found")

	// ErrWriteBuffered means the target rows were inserted too recently and
	// are still inside the store's write-settle window, so they cannot be
	// updated or deleted yet. This is an expected upstream constraint, not a
	// generic failure.
	ErrWriteBuffered = errors.New("rows are still in the write-settle window")
)
