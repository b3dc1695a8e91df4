package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/bitfsorg/distributor-go/distributor"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Network", cfg.Network, "mainnet"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"WalletVersion", cfg.WalletVersion, "v4r2"},
		{"Workchain", cfg.Workchain, int8(0)},
		{"LiteServerConfigURL", cfg.LiteServerConfigURL, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if !strings.HasSuffix(cfg.DataDir, DefaultDirName) {
		t.Errorf("DataDir = %q, want suffix %q", cfg.DataDir, DefaultDirName)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	original := Config{
		DataDir:             "/tmp/test-distributor",
		Network:             "localnet",
		LiteServerConfigURL: "http://127.0.0.1:8000/localhost.global.config.json",
		LogLevel:            "debug",
		WalletVersion:       "v3r2",
		Workchain:           -1,
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded != original {
		t.Errorf("LoadConfig = %+v, want %+v", loaded, original)
	}
}

func TestSaveConfig_OutputContainsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Distributor deploy tool configuration") {
		t.Error("saved config should start with the header comment")
	}
	for _, key := range []string{"datadir:", "network:", "loglevel:", "wallet_version:", "workchain:"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("saved config should contain key %q", key)
		}
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig missing file: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := "network: testnet\nunknown_key: ignored\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Network != "testnet" {
		t.Errorf("Network = %q, want %q", cfg.Network, "testnet")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
	if cfg.WalletVersion != "v4r2" {
		t.Errorf("WalletVersion = %q, want default %q", cfg.WalletVersion, "v4r2")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("network: [unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig on malformed YAML: expected error, got nil")
	}
	if errors.Is(err, ErrConfigNotFound) {
		t.Error("malformed file should not report ErrConfigNotFound")
	}
}

func TestLoadConfig_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission test not reliable on Windows")
	}
	if os.Getuid() == 0 {
		t.Skip("cannot test permission denial as root")
	}

	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("network: testnet\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(path, 0600) })

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig on unreadable file: expected error, got nil")
	}
	if errors.Is(err, ErrConfigNotFound) {
		t.Error("LoadConfig on unreadable file should not return ErrConfigNotFound")
	}
}

func TestConfigPath(t *testing.T) {
	for _, dir := range []string{"/foo", "/foo/"} {
		got := ConfigPath(dir)
		want := filepath.Join("/foo", ConfigFileName)
		if got != want {
			t.Errorf("ConfigPath(%q) = %q, want %q", dir, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"testnet", func(c *Config) { c.Network = "testnet" }, nil},
		{"custom network with servers", func(c *Config) {
			c.Network = "localnet"
			c.LiteServerConfigURL = "http://127.0.0.1/global.config.json"
		}, nil},
		{"custom network without servers", func(c *Config) { c.Network = "localnet" }, ErrInvalidNetwork},
		{"empty network", func(c *Config) { c.Network = "" }, ErrInvalidNetwork},
		{"empty network with servers", func(c *Config) {
			c.Network = ""
			c.LiteServerConfigURL = "http://127.0.0.1/global.config.json"
		}, ErrInvalidNetwork},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"mixed case log level", func(c *Config) { c.LogLevel = "DeBuG" }, nil},
		{"bad wallet version", func(c *Config) { c.WalletVersion = "v1r1" }, ErrInvalidWalletVersion},
		{"masterchain", func(c *Config) { c.Workchain = -1 }, nil},
		{"bad workchain", func(c *Config) { c.Workchain = 1 }, ErrInvalidWorkchain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = "/tmp/distributor"
			tc.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConfig: unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateConfig: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Manifest tests
// ---------------------------------------------------------------------------

func friendlyAddr(seed byte) string {
	data := make([]byte, 32)
	data[0] = seed
	data[31] = seed
	return address.NewAddress(0, 0, data).String()
}

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func halvesManifest() string {
	return "owner: " + friendlyAddr(1) + "\n" +
		"processing_price: \"0.01\"\n" +
		"seed: 7\n" +
		"code: distributor.boc\n" +
		"shares:\n" +
		"  - address: " + friendlyAddr(2) + "\n" +
		"    factor: 1\n" +
		"    base: 2\n" +
		"    comment: first half\n" +
		"  - address: " + friendlyAddr(3) + "\n" +
		"    factor: 1\n" +
		"    base: 2\n" +
		"    comment: second half\n"
}

func TestManifest_DistributorConfig(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, t.TempDir(), halvesManifest()))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	cfg, err := m.DistributorConfig()
	if err != nil {
		t.Fatalf("DistributorConfig: %v", err)
	}

	if cfg.Owner.String() != friendlyAddr(1) {
		t.Errorf("Owner = %s, want %s", cfg.Owner, friendlyAddr(1))
	}
	if cfg.ProcessingPrice.Int64() != 10_000_000 {
		t.Errorf("ProcessingPrice = %s, want 10000000", cfg.ProcessingPrice)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if len(cfg.Shares) != 2 {
		t.Fatalf("len(Shares) = %d, want 2", len(cfg.Shares))
	}
	if cfg.Shares[1].Comment != "second half" || cfg.Shares[1].Base != 2 {
		t.Errorf("Shares[1] = %+v", cfg.Shares[1])
	}

	// The manifest config must be encodable as contract data.
	if _, err := distributor.EncodeConfig(cfg); err != nil {
		t.Errorf("EncodeConfig: %v", err)
	}
}

func TestManifest_DistributorConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		also    error
	}{
		{"bad owner", "owner: nope\nprocessing_price: \"1\"\n", nil},
		{"bad price", "owner: " + friendlyAddr(1) + "\nprocessing_price: lots\n", nil},
		{"bad share address", "owner: " + friendlyAddr(1) + "\nprocessing_price: \"1\"\nshares:\n  - address: nope\n    factor: 1\n    base: 1\n", nil},
		{"shares short of one", "owner: " + friendlyAddr(1) + "\nprocessing_price: \"1\"\nshares:\n  - address: " + friendlyAddr(2) + "\n    factor: 1\n    base: 3\n", distributor.ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tc.content))
			if err != nil {
				t.Fatalf("ParseManifest: %v", err)
			}
			_, err = m.DistributorConfig()
			if !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("DistributorConfig: got %v, want ErrInvalidManifest", err)
			}
			if tc.also != nil && !errors.Is(err, tc.also) {
				t.Errorf("DistributorConfig: got %v, want it to wrap %v", err, tc.also)
			}
		})
	}
}

func TestManifest_DeployAmount(t *testing.T) {
	m := &Manifest{}
	amount, err := m.DeployAmount()
	if err != nil {
		t.Fatalf("DeployAmount: %v", err)
	}
	if amount.String() != "0.05" {
		t.Errorf("default DeployAmount = %s, want 0.05", amount)
	}

	m.DeployValue = "1.5"
	amount, err = m.DeployAmount()
	if err != nil {
		t.Fatalf("DeployAmount: %v", err)
	}
	if amount.String() != "1.5" {
		t.Errorf("DeployAmount = %s, want 1.5", amount)
	}

	m.DeployValue = "abc"
	if _, err := m.DeployAmount(); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("DeployAmount bad value: got %v, want ErrInvalidManifest", err)
	}
}

func TestManifest_LoadCodeRelativeToManifest(t *testing.T) {
	dir := t.TempDir()
	code := cell.BeginCell().MustStoreUInt(0xC0DE, 16).EndCell()
	if err := os.WriteFile(filepath.Join(dir, "distributor.boc"), code.ToBOC(), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(writeManifest(t, dir, halvesManifest()))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if got := m.CodePath(); got != filepath.Join(dir, "distributor.boc") {
		t.Errorf("CodePath = %q", got)
	}

	loaded, err := m.LoadCode()
	if err != nil {
		t.Fatalf("LoadCode: %v", err)
	}
	if !bytes.Equal(loaded.Hash(), code.Hash()) {
		t.Error("loaded code hash differs from written code")
	}
}

func TestManifest_LoadErrors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("LoadManifest missing: got %v, want ErrInvalidManifest", err)
	}

	_, err = ParseManifest([]byte("shares: {not: a list}"))
	if !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("ParseManifest bad shape: got %v, want ErrInvalidManifest", err)
	}

	if _, err := (&Manifest{}).LoadCode(); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("LoadCode empty path: got %v, want ErrInvalidManifest", err)
	}
}
