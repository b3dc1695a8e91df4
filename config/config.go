// Package config loads the tool configuration and deployment manifests.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bitfsorg/distributor-go/wallet"
)

const (
	// DefaultDirName is the data directory created under the user's home.
	DefaultDirName = ".distributor"

	// ConfigFileName is the configuration file inside the data directory.
	ConfigFileName = "config.yaml"
)

// Config holds the deploy tool settings.
type Config struct {
	DataDir             string `yaml:"datadir"`
	Network             string `yaml:"network"`
	LiteServerConfigURL string `yaml:"liteserver_config,omitempty"`
	LogLevel            string `yaml:"loglevel"`
	WalletVersion       string `yaml:"wallet_version"`
	Workchain           int8   `yaml:"workchain"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:       DefaultDataDir(),
		Network:       "mainnet",
		LogLevel:      "info",
		WalletVersion: wallet.DefaultVersion,
		Workchain:     0,
	}
}

// DefaultDataDir returns ~/.distributor, or a relative .distributor when the
// home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// ConfigPath returns the configuration file path for dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(filepath.Clean(dataDir), ConfigFileName)
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep
// their DefaultConfig values; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	out := append([]byte("# Distributor deploy tool configuration\n"), data...)
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
