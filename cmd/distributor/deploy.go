package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/bitfsorg/distributor-go/config"
	"github.com/bitfsorg/distributor-go/vault"
)

func (a *app) deployCmd() *cobra.Command {
	var (
		manifestPath string
		codePath     string
		dryRun       bool
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a distributor described by a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			var code *cell.Cell
			if codePath != "" {
				if code, err = config.LoadCodeFile(codePath); err != nil {
					return err
				}
			}

			v, err := a.openVault(cmd.Context(), !dryRun)
			if err != nil {
				return err
			}
			defer v.Close()

			res, err := v.Deploy(cmd.Context(), &vault.DeployOpts{Manifest: m, Code: code, DryRun: dryRun})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "deployment manifest (YAML)")
	cmd.Flags().StringVar(&codePath, "code", "", "compiled contract code BOC, overrides the manifest")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the contract address without sending")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}
