package network

import "errors"

var (
	// ErrConnectionFailed indicates no lite server from the global config could be reached.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrNoWallet indicates a send was requested on a read-only client.
	ErrNoWallet = errors.New("network: client has no wallet, sends are disabled")

	// ErrInvalidMessage indicates an outgoing message is missing required fields.
	ErrInvalidMessage = errors.New("network: invalid message")

	// ErrInvalidResponse indicates the lite server returned an unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrUnknownNetwork indicates a network name with no preset and no explicit config.
	ErrUnknownNetwork = errors.New("network: unknown network")
)
