package distributor

import "errors"

var (
	// ErrValidation indicates the configuration cannot be encoded, most
	// commonly because share fractions do not sum to exactly 1.
	ErrValidation = errors.New("distributor: invalid configuration")

	// ErrMalformedData indicates a cell does not follow the configuration layout.
	ErrMalformedData = errors.New("distributor: malformed configuration data")

	// ErrRemoteOperation indicates the provider failed a send or get call.
	ErrRemoteOperation = errors.New("distributor: remote operation failed")

	// ErrNoStateInit indicates a deploy was requested on a handle built from an address.
	ErrNoStateInit = errors.New("distributor: contract handle has no state init")

	// ErrNotImplemented indicates the provider cannot serve the requested call.
	ErrNotImplemented = errors.New("distributor: operation not implemented by provider")
)
