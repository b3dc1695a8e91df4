// Package vault is the business layer of the deploy tool. It owns the
// encrypted deployer wallet, the tool configuration and the local
// deployment registry, and drives Distributor contracts through a
// network.Service.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xssnick/tonutils-go/address"
	"go.uber.org/zap"

	"github.com/bitfsorg/distributor-go/config"
	"github.com/bitfsorg/distributor-go/network"
	"github.com/bitfsorg/distributor-go/storage"
	"github.com/bitfsorg/distributor-go/wallet"
)

const (
	// WalletFileName holds the encrypted deployer mnemonic inside the data directory.
	WalletFileName = "wallet.enc"

	lockFileName = "wallet.lock"
)

// Vault is the shared business logic layer. CLI commands call Vault methods
// to deploy and manage distributors.
type Vault struct {
	Words   []string         // deployer mnemonic
	Wallet  *address.Address // deployer wallet address
	Config  config.Config
	Store   *storage.BoltStore
	DataDir string
	Chain   network.Service // optional; nil = offline mode
	Log     *zap.Logger

	client *network.Client // set by Connect, closed by Close
	mu     sync.Mutex
}

// Result holds the output of a vault operation.
type Result struct {
	Address string // distributor address, user-friendly form
	Message string // human-readable summary
}

// Init creates the data directory with an encrypted wallet.enc for words and
// writes cfg as the configuration file. An existing wallet is never
// overwritten.
func Init(dataDir, password string, words []string, cfg config.Config) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("vault: create data directory: %w", err)
	}

	walletPath := filepath.Join(dataDir, WalletFileName)
	if _, err := os.Stat(walletPath); err == nil {
		return fmt.Errorf("%w: %s", ErrWalletExists, walletPath)
	}

	encrypted, err := wallet.EncryptMnemonic(words, password)
	if err != nil {
		return fmt.Errorf("vault: encrypt wallet: %w", err)
	}
	if err := os.WriteFile(walletPath, encrypted, 0600); err != nil {
		return fmt.Errorf("vault: write wallet: %w", err)
	}

	cfg.DataDir = dataDir
	if err := config.SaveConfig(config.ConfigPath(dataDir), cfg); err != nil {
		return fmt.Errorf("vault: write config: %w", err)
	}
	return nil
}

// New opens the vault in dataDir using the configuration file stored there
// (defaults when the file is missing). See NewWithConfig.
func New(dataDir, password string, log *zap.Logger) (*Vault, error) {
	cfg, err := config.LoadConfig(config.ConfigPath(dataDir))
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("vault: load config: %w", err)
	}
	cfg.DataDir = dataDir
	return NewWithConfig(cfg, password, log)
}

// NewWithConfig opens the vault in cfg.DataDir: it decrypts the wallet and
// opens the deployment registry. The vault starts offline; see Connect.
func NewWithConfig(cfg config.Config, password string, log *zap.Logger) (*Vault, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	dataDir := cfg.DataDir

	encrypted, err := os.ReadFile(filepath.Join(dataDir, WalletFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, dataDir)
		}
		return nil, fmt.Errorf("vault: read wallet: %w", err)
	}

	words, err := wallet.DecryptMnemonic(encrypted, password)
	if err != nil {
		return nil, fmt.Errorf("vault: decrypt wallet: %w", err)
	}

	addr, err := wallet.Address(words, cfg.WalletVersion)
	if err != nil {
		return nil, fmt.Errorf("vault: derive wallet: %w", err)
	}

	store, err := storage.OpenBoltStore(filepath.Join(dataDir, storage.DefaultFileName))
	if err != nil {
		return nil, fmt.Errorf("vault: open registry: %w", err)
	}

	return &Vault{
		Words:   words,
		Wallet:  addr,
		Config:  cfg,
		Store:   store,
		DataDir: dataDir,
		Log:     log,
	}, nil
}

// Connect dials the lite servers described by netCfg and binds the deployer
// wallet to them, switching the vault to online mode.
func (v *Vault) Connect(ctx context.Context, netCfg network.Config) error {
	client, api, err := network.Dial(ctx, netCfg, v.Log)
	if err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	w, err := wallet.Open(api, v.Words, v.Config.WalletVersion)
	if err != nil {
		client.Close()
		return fmt.Errorf("vault: open wallet: %w", err)
	}

	v.client = client.WithSender(w)
	v.Chain = v.client
	v.Log.Debug("wallet bound", zap.Stringer("wallet", w.WalletAddress()))
	return nil
}

// IsOnline returns true if a network service is configured.
func (v *Vault) IsOnline() bool {
	return v.Chain != nil
}

// Close releases the network connection and the registry.
func (v *Vault) Close() error {
	if v.client != nil {
		v.client.Close()
	}
	if v.Store != nil {
		return v.Store.Close()
	}
	return nil
}

// withWriteLock runs fn while holding the wallet lock, so sends from
// concurrent tool invocations cannot race on the wallet seqno.
func (v *Vault) withWriteLock(fn func() error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	path := filepath.Join(v.DataDir, lockFileName)
	fl, err := tryLockWallet(path)
	if errors.Is(err, ErrWalletBusy) {
		v.Log.Info("waiting for wallet lock", zap.String("lock", path))
		fl, err = lockWallet(path)
	}
	if err != nil {
		return err
	}
	defer unlockWallet(fl)
	return fn()
}

func (v *Vault) requireOnline() error {
	if v.Chain == nil {
		return ErrOffline
	}
	return nil
}
