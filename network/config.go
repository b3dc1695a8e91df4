package network

import "fmt"

// EnvConfigURL overrides the lite server global config location.
const EnvConfigURL = "DISTRIBUTOR_LITESERVER_CONFIG"

// Config holds the parameters needed to reach TON lite servers.
type Config struct {
	// ConfigURL points at a global network config listing lite servers.
	ConfigURL string `json:"config_url" yaml:"config_url"`
	Network   string `json:"network" yaml:"network"`
	// Retries is the number of attempts per lite server query; 0 uses the client default.
	Retries int `json:"retries" yaml:"retries"`
}

// NetworkPresets contains the public global configs of known networks.
var NetworkPresets = map[string]Config{
	"mainnet": {ConfigURL: "https://ton.org/global.config.json"},
	"testnet": {ConfigURL: "https://ton.org/testnet-global.config.json"},
}

// ResolveConfig merges lite server configuration from three sources with decreasing priority:
//  1. CLI flags (highest priority)
//  2. Environment variable DISTRIBUTOR_LITESERVER_CONFIG
//  3. Network presets (lowest priority)
//
// Networks without a preset (for example a local MyLocalTon) need an explicit URL.
func ResolveConfig(flags *Config, env map[string]string, network string) (*Config, error) {
	result := Config{Network: network}

	if preset, ok := NetworkPresets[network]; ok {
		result = preset
		result.Network = network
	}

	if env != nil {
		if v, ok := env[EnvConfigURL]; ok && v != "" {
			result.ConfigURL = v
		}
	}

	if flags != nil {
		if flags.ConfigURL != "" {
			result.ConfigURL = flags.ConfigURL
		}
		if flags.Retries != 0 {
			result.Retries = flags.Retries
		}
	}

	if result.ConfigURL == "" {
		return nil, fmt.Errorf("%w: %q requires an explicit lite server config (set --liteserver-config or %s)",
			ErrUnknownNetwork, network, EnvConfigURL)
	}

	return &result, nil
}
