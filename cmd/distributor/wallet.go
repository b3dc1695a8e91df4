package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/distributor-go/vault"
	"github.com/bitfsorg/distributor-go/wallet"
)

func (a *app) walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the deployer wallet",
	}
	cmd.AddCommand(a.walletNewCmd(), a.walletImportCmd(), a.walletAddressCmd())
	return cmd
}

func (a *app) walletNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a wallet and print its mnemonic once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			words := wallet.NewMnemonic()
			if err := a.initWallet(cmd, words); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Write down the mnemonic, it is not shown again:")
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, " "))
			return nil
		},
	}
}

func (a *app) walletImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import a 24-word mnemonic read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && err != io.EOF {
				return fmt.Errorf("read mnemonic: %w", err)
			}
			words, err := wallet.ParseMnemonic(phrase)
			if err != nil {
				return err
			}
			return a.initWallet(cmd, words)
		},
	}
}

func (a *app) walletAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the deployer wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.openVault(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer v.Close()
			fmt.Fprintln(cmd.OutOrStdout(), v.Wallet.String())
			return nil
		},
	}
}

func (a *app) initWallet(cmd *cobra.Command, words []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := vault.Init(cfg.DataDir, os.Getenv(EnvPassword), words, cfg); err != nil {
		return err
	}
	addr, err := wallet.Address(words, cfg.WalletVersion)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wallet %s (%s) saved to %s\n", addr, cfg.WalletVersion, cfg.DataDir)
	return nil
}
