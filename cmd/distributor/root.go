package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitfsorg/distributor-go/config"
	"github.com/bitfsorg/distributor-go/network"
	"github.com/bitfsorg/distributor-go/vault"
)

// EnvPassword holds the password protecting wallet.enc.
const EnvPassword = "DISTRIBUTOR_WALLET_PASSWORD"

type rootOptions struct {
	dataDir    string
	configPath string
	network    string
	liteConfig string
	logLevel   string
}

type app struct {
	opts rootOptions
	log  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "distributor",
		Short:         "Deploy and manage Distributor contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.dataDir, "datadir", "", "data directory (default ~/.distributor)")
	f.StringVar(&a.opts.configPath, "config", "", "configuration file (default <datadir>/config.yaml)")
	f.StringVar(&a.opts.network, "network", "", "network name: mainnet, testnet or a custom name with --liteserver-config")
	f.StringVar(&a.opts.liteConfig, "liteserver-config", "", "URL of the lite server global config")
	f.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.deployCmd(),
		a.infoCmd(),
		a.listCmd(),
		a.forgetCmd(),
		a.previewCmd(),
		a.topupCmd(),
		a.updateDataCmd(),
		a.updateCodeCmd(),
		a.walletCmd(),
	)
	return root
}

// loadConfig resolves the configuration: flags over the configuration file
// over defaults.
func (a *app) loadConfig() (config.Config, error) {
	dataDir := a.opts.dataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	path := a.opts.configPath
	if path == "" {
		path = config.ConfigPath(dataDir)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return cfg, err
	}
	if a.opts.dataDir != "" || a.opts.configPath == "" {
		cfg.DataDir = dataDir
	}

	if a.opts.network != "" {
		cfg.Network = a.opts.network
	}
	if a.opts.liteConfig != "" {
		cfg.LiteServerConfigURL = a.opts.liteConfig
	}
	if a.opts.logLevel != "" {
		cfg.LogLevel = a.opts.logLevel
	}

	if err := config.ValidateConfig(withEnvConfigURL(cfg)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// withEnvConfigURL fills an unset lite server URL from the environment.
// The result is for runtime use only: "wallet new" and "wallet import" save
// the config returned by loadConfig, and the environment must not leak into it.
func withEnvConfigURL(cfg config.Config) config.Config {
	if cfg.LiteServerConfigURL == "" {
		cfg.LiteServerConfigURL = os.Getenv(network.EnvConfigURL)
	}
	return cfg
}

// networkConfig picks the lite server config: --liteserver-config, then
// DISTRIBUTOR_LITESERVER_CONFIG, then the configuration file, then the
// network preset.
func (a *app) networkConfig(cfg config.Config) (*network.Config, error) {
	env := environ()
	flags := &network.Config{ConfigURL: a.opts.liteConfig}
	if flags.ConfigURL == "" && env[network.EnvConfigURL] == "" {
		flags.ConfigURL = cfg.LiteServerConfigURL
	}
	return network.ResolveConfig(flags, env, cfg.Network)
}

// openVault opens the vault and, when online is set, connects it to the network.
func (a *app) openVault(ctx context.Context, online bool) (*vault.Vault, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	v, err := vault.NewWithConfig(withEnvConfigURL(cfg), os.Getenv(EnvPassword), a.log)
	if err != nil {
		return nil, err
	}
	if !online {
		return v, nil
	}

	netCfg, err := a.networkConfig(cfg)
	if err != nil {
		v.Close()
		return nil, err
	}
	if err := v.Connect(ctx, *netCfg); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, level)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
