package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/zap"

	"github.com/bitfsorg/distributor-go/config"
	"github.com/bitfsorg/distributor-go/distributor"
	"github.com/bitfsorg/distributor-go/storage"
)

// UpdateDataOpts holds options for the UpdateData operation.
type UpdateDataOpts struct {
	Address  *address.Address
	Manifest *config.Manifest
	Value    *tlb.Coins // nil uses distributor.DefaultUpdateValue
}

// UpdateCodeOpts holds options for the UpdateCode operation.
type UpdateCodeOpts struct {
	Address *address.Address
	Code    *cell.Cell
	Value   *tlb.Coins // nil uses distributor.DefaultUpdateValue
}

// TopupOpts holds options for the Topup operation.
type TopupOpts struct {
	Address *address.Address
	Amount  tlb.Coins
}

// UpdateData replaces the distributor's configuration with the manifest's.
// Only the contract owner's wallet is accepted by the contract.
func (v *Vault) UpdateData(ctx context.Context, opts *UpdateDataOpts) (*Result, error) {
	if opts == nil || opts.Address == nil || opts.Manifest == nil {
		return nil, fmt.Errorf("vault: address and manifest are required")
	}
	cfg, err := opts.Manifest.DistributorConfig()
	if err != nil {
		return nil, err
	}
	data, err := distributor.EncodeConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := v.requireOnline(); err != nil {
		return nil, err
	}

	contract := distributor.NewFromAddress(opts.Address)
	err = v.withWriteLock(func() error {
		return contract.SendUpdateData(ctx, v.Chain, data, valueOpts(opts.Value)...)
	})
	if err != nil {
		return nil, fmt.Errorf("vault: update data: %w", err)
	}
	v.touchRecord(opts.Address, func(rec *storage.Deployment) {
		rec.ConfigBOC = data.ToBOC()
	})

	v.Log.Info("distributor data updated",
		zap.Stringer("address", opts.Address), zap.Int("shares", len(cfg.Shares)))
	return &Result{
		Address: opts.Address.String(),
		Message: fmt.Sprintf("Sent update_data to %s (%d shares)", opts.Address, len(cfg.Shares)),
	}, nil
}

// UpdateCode replaces the distributor's code.
func (v *Vault) UpdateCode(ctx context.Context, opts *UpdateCodeOpts) (*Result, error) {
	if opts == nil || opts.Address == nil || opts.Code == nil {
		return nil, fmt.Errorf("vault: address and code are required")
	}
	if err := v.requireOnline(); err != nil {
		return nil, err
	}

	contract := distributor.NewFromAddress(opts.Address)
	err := v.withWriteLock(func() error {
		return contract.SendUpdateCode(ctx, v.Chain, opts.Code, valueOpts(opts.Value)...)
	})
	if err != nil {
		return nil, fmt.Errorf("vault: update code: %w", err)
	}
	v.touchRecord(opts.Address, func(rec *storage.Deployment) {
		rec.CodeHash = opts.Code.Hash()
	})

	v.Log.Info("distributor code updated", zap.Stringer("address", opts.Address))
	return &Result{
		Address: opts.Address.String(),
		Message: fmt.Sprintf("Sent update_code to %s", opts.Address),
	}, nil
}

// Topup sends coins to the distributor without triggering a distribution.
func (v *Vault) Topup(ctx context.Context, opts *TopupOpts) (*Result, error) {
	if opts == nil || opts.Address == nil {
		return nil, fmt.Errorf("vault: address is required")
	}
	if err := v.requireOnline(); err != nil {
		return nil, err
	}

	contract := distributor.NewFromAddress(opts.Address)
	err := v.withWriteLock(func() error {
		return contract.SendTopup(ctx, v.Chain, opts.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("vault: topup: %w", err)
	}

	v.Log.Info("distributor topped up",
		zap.Stringer("address", opts.Address), zap.String("amount", opts.Amount.String()))
	return &Result{
		Address: opts.Address.String(),
		Message: fmt.Sprintf("Topped up %s with %s TON", opts.Address, opts.Amount),
	}, nil
}

// touchRecord applies fn to the registry record for addr, if there is one.
// Contracts deployed elsewhere have no record and are left untracked. It runs
// after a successful send, so failures are logged rather than returned.
func (v *Vault) touchRecord(addr *address.Address, fn func(*storage.Deployment)) {
	rec, err := v.Store.Get(addr)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err == nil {
		fn(rec)
		rec.UpdatedAt = time.Now().UTC()
		err = v.Store.Put(rec)
	}
	if err != nil {
		v.Log.Warn("registry record not updated", zap.Stringer("address", addr), zap.Error(err))
	}
}

func valueOpts(value *tlb.Coins) []distributor.SendOption {
	if value == nil {
		return nil
	}
	return []distributor.SendOption{distributor.WithValue(*value)}
}
