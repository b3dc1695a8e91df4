package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"

	"github.com/bitfsorg/distributor-go/config"
	"github.com/bitfsorg/distributor-go/distributor"
	"github.com/bitfsorg/distributor-go/vault"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <address>",
		Short: "Show owner, price, shares and balance of a distributor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddr(args[0])
			if err != nil {
				return err
			}
			v, err := a.openVault(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer v.Close()

			info, err := v.Info(cmd.Context(), addr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address:          %s\n", info.Address)
			fmt.Fprintf(out, "Owner:            %s\n", info.Owner)
			fmt.Fprintf(out, "Processing price: %s TON\n", tlb.FromNanoTON(info.ProcessingPrice))
			if info.Balance != nil {
				fmt.Fprintf(out, "Balance:          %s TON\n", info.Balance)
			}
			fmt.Fprintf(out, "Seed:             %d\n", info.Config.Seed)
			fmt.Fprintf(out, "Shares:\n")
			for _, s := range info.Config.Shares {
				fmt.Fprintf(out, "  %d/%d  %s  %q\n", s.Factor, s.Base, s.Address, s.Comment)
			}
			if info.Record != nil {
				fmt.Fprintf(out, "Deployed:         %s (%s)\n", info.Record.DeployedAt.Format(time.RFC3339), info.Record.Network)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List distributors deployed from this wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.openVault(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer v.Close()

			recs, err := v.List()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tNETWORK\tDEPLOYED\tUPDATED")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Address, r.Network,
					r.DeployedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

func (a *app) forgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <address>",
		Short: "Remove a distributor from the local registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddr(args[0])
			if err != nil {
				return err
			}
			v, err := a.openVault(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer v.Close()
			return v.Forget(addr)
		},
	}
}

func (a *app) topupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topup <address> <amount>",
		Short: "Send TON to a distributor without triggering a distribution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddr(args[0])
			if err != nil {
				return err
			}
			amount, err := tlb.FromTON(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			v, err := a.openVault(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer v.Close()

			res, err := v.Topup(cmd.Context(), &vault.TopupOpts{Address: addr, Amount: amount})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func (a *app) updateDataCmd() *cobra.Command {
	var manifestPath, value string
	cmd := &cobra.Command{
		Use:   "update-data <address>",
		Short: "Replace a distributor's configuration with a manifest's",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddr(args[0])
			if err != nil {
				return err
			}
			amount, err := parseValue(value)
			if err != nil {
				return err
			}
			m, err := config.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			v, err := a.openVault(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer v.Close()

			res, err := v.UpdateData(cmd.Context(), &vault.UpdateDataOpts{Address: addr, Manifest: m, Value: amount})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest with the new configuration (YAML)")
	cmd.Flags().StringVar(&value, "value", "", "TON attached to the message (default 0.05)")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func (a *app) updateCodeCmd() *cobra.Command {
	var codePath, value string
	cmd := &cobra.Command{
		Use:   "update-code <address>",
		Short: "Replace a distributor's code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddr(args[0])
			if err != nil {
				return err
			}
			amount, err := parseValue(value)
			if err != nil {
				return err
			}
			code, err := config.LoadCodeFile(codePath)
			if err != nil {
				return err
			}
			v, err := a.openVault(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer v.Close()

			res, err := v.UpdateCode(cmd.Context(), &vault.UpdateCodeOpts{Address: addr, Code: code, Value: amount})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&codePath, "code", "", "compiled contract code BOC")
	cmd.Flags().StringVar(&value, "value", "", "TON attached to the message (default 0.05)")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func parseAddr(s string) (*address.Address, error) {
	addr, err := address.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return addr, nil
}

func parseValue(s string) (*tlb.Coins, error) {
	if s == "" {
		return nil, nil
	}
	v, err := tlb.FromTON(s)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return &v, nil
}

func (a *app) previewCmd() *cobra.Command {
	var manifestPath string
	cmd := &cobra.Command{
		Use:   "preview <amount>",
		Short: "Estimate how a payment of <amount> TON is split by a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := tlb.FromTON(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			m, err := config.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			cfg, err := m.DistributorConfig()
			if err != nil {
				return err
			}
			split, err := distributor.EstimatePayouts(cfg, amount.Nano())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "processing fee\t%s\n", tlb.FromNanoTON(split.Fee))
			for _, p := range split.Payouts {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Address, tlb.FromNanoTON(p.Amount), p.Comment)
			}
			fmt.Fprintf(tw, "unassigned\t%s\n", tlb.FromNanoTON(split.Remainder))
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "deployment manifest (YAML)")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}
