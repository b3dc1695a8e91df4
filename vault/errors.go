package vault

import "errors"

var (
	// ErrOffline indicates an operation that needs the network on a vault without one.
	ErrOffline = errors.New("vault: no network service configured (offline mode)")

	// ErrPasswordRequired indicates an empty wallet password.
	ErrPasswordRequired = errors.New("vault: password is required")

	// ErrWalletNotFound indicates the data directory has no wallet.enc.
	ErrWalletNotFound = errors.New("vault: wallet not found")

	// ErrWalletExists indicates Init would overwrite an existing wallet.
	ErrWalletExists = errors.New("vault: wallet already exists")

	// ErrWalletBusy indicates another process holds the wallet lock.
	ErrWalletBusy = errors.New("vault: wallet is in use by another distributor process")
)
