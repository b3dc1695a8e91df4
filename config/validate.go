package config

import (
	"fmt"
	"strings"

	"github.com/bitfsorg/distributor-go/wallet"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// knownNetworks have built-in lite server presets.
var knownNetworks = map[string]bool{
	"mainnet": true,
	"testnet": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	// Custom network names are fine as long as they bring their own lite servers.
	if !knownNetworks[cfg.Network] && (cfg.Network == "" || cfg.LiteServerConfigURL == "") {
		return ErrInvalidNetwork
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if _, err := wallet.ParseVersion(cfg.WalletVersion); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWalletVersion, err)
	}

	if cfg.Workchain != 0 && cfg.Workchain != -1 {
		return ErrInvalidWorkchain
	}

	return nil
}
