package storage

import "errors"

var (
	// ErrNotFound indicates no deployment is recorded for the address.
	ErrNotFound = errors.New("storage: deployment not found")

	// ErrInvalidRecord indicates a deployment record without a usable address.
	ErrInvalidRecord = errors.New("storage: invalid deployment record")

	// ErrIOFailure indicates the database could not be read or written.
	ErrIOFailure = errors.New("storage: I/O failure")
)
