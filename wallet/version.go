package wallet

import (
	"fmt"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	tonwallet "github.com/xssnick/tonutils-go/ton/wallet"
)

// DefaultVersion is the wallet contract used when none is configured.
const DefaultVersion = "v4r2"

var versions = map[string]tonwallet.VersionConfig{
	"v3r2": tonwallet.V3R2,
	"v4r2": tonwallet.V4R2,
}

// ParseVersion maps a version name such as "v4r2" to the wallet contract config.
func ParseVersion(name string) (tonwallet.VersionConfig, error) {
	v, ok := versions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, name)
	}
	return v, nil
}

// Open derives the wallet from the mnemonic and binds it to api for sending.
func Open(api tonwallet.TonAPI, words []string, version string) (*tonwallet.Wallet, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}
	w, err := tonwallet.FromSeed(api, words, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	return w, nil
}

// Address returns the wallet address for the mnemonic without touching the network.
func Address(words []string, version string) (*address.Address, error) {
	w, err := Open(nil, words, version)
	if err != nil {
		return nil, err
	}
	return w.WalletAddress(), nil
}
