package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/zap"

	"github.com/bitfsorg/distributor-go/config"
	"github.com/bitfsorg/distributor-go/distributor"
	"github.com/bitfsorg/distributor-go/storage"
)

// DeployOpts holds options for the Deploy operation.
type DeployOpts struct {
	Manifest *config.Manifest
	Code     *cell.Cell // overrides the manifest's code path when set
	DryRun   bool       // derive the address without sending
}

// Deploy builds the distributor described by the manifest, sends the deploy
// message from the deployer wallet and records the contract in the registry.
func (v *Vault) Deploy(ctx context.Context, opts *DeployOpts) (*Result, error) {
	if opts == nil || opts.Manifest == nil {
		return nil, fmt.Errorf("vault: manifest is required")
	}

	cfg, err := opts.Manifest.DistributorConfig()
	if err != nil {
		return nil, err
	}
	code := opts.Code
	if code == nil {
		if code, err = opts.Manifest.LoadCode(); err != nil {
			return nil, err
		}
	}
	value, err := opts.Manifest.DeployAmount()
	if err != nil {
		return nil, err
	}

	contract, err := distributor.NewFromConfig(cfg, code, v.Config.Workchain)
	if err != nil {
		return nil, fmt.Errorf("vault: build contract: %w", err)
	}
	addr := contract.Address()

	if opts.DryRun {
		return &Result{
			Address: addr.String(),
			Message: fmt.Sprintf("Distributor would be deployed at %s", addr),
		}, nil
	}
	if err := v.requireOnline(); err != nil {
		return nil, err
	}

	err = v.withWriteLock(func() error {
		return contract.SendDeploy(ctx, v.Chain, value)
	})
	if err != nil {
		return nil, fmt.Errorf("vault: deploy: %w", err)
	}

	v.Log.Info("distributor is deployed",
		zap.Stringer("address", addr),
		zap.String("network", v.Config.Network),
		zap.String("value", value.String()))

	res := &Result{
		Address: addr.String(),
		Message: fmt.Sprintf("Deployed distributor %s with %s TON", addr, value),
	}

	// The message is already out; a registry failure must not invite a resend.
	now := time.Now().UTC()
	err = v.Store.Put(&storage.Deployment{
		Address:    addr.String(),
		Network:    v.Config.Network,
		Workchain:  v.Config.Workchain,
		ConfigBOC:  contract.StateInit().Data.ToBOC(),
		CodeHash:   code.Hash(),
		DeployedAt: now,
		UpdatedAt:  now,
	})
	if err != nil {
		v.Log.Warn("deployment not recorded", zap.Stringer("address", addr), zap.Error(err))
		res.Message += " (not recorded in the local registry: " + err.Error() + ")"
	}
	return res, nil
}
