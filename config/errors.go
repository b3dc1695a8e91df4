package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\" or \"testnet\", or set liteserver_config)")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrInvalidWorkchain indicates a workchain other than basechain or masterchain.
	ErrInvalidWorkchain = errors.New("config: invalid workchain (must be 0 or -1)")

	// ErrInvalidWalletVersion indicates the wallet contract version is not supported.
	ErrInvalidWalletVersion = errors.New("config: invalid wallet version")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidManifest indicates a deployment manifest that cannot describe a distributor.
	ErrInvalidManifest = errors.New("config: invalid manifest")
)
