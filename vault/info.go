package vault

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"

	"github.com/bitfsorg/distributor-go/distributor"
	"github.com/bitfsorg/distributor-go/storage"
)

// Info is the on-chain state of a distributor plus its registry record.
type Info struct {
	Address         *address.Address
	Owner           *address.Address
	ProcessingPrice *big.Int
	Config          *distributor.Config
	Balance         *tlb.Coins          // nil when the network cannot report balances
	Record          *storage.Deployment // nil when not deployed from this vault
}

// Info queries the distributor at addr.
func (v *Vault) Info(ctx context.Context, addr *address.Address) (*Info, error) {
	if addr == nil {
		return nil, fmt.Errorf("vault: address is required")
	}
	if err := v.requireOnline(); err != nil {
		return nil, err
	}

	contract := distributor.NewFromAddress(addr)
	info := &Info{Address: addr}

	var err error
	if info.Owner, err = contract.GetOwner(ctx, v.Chain); err != nil {
		return nil, fmt.Errorf("vault: info: %w", err)
	}
	if info.ProcessingPrice, err = contract.GetProcessingPrice(ctx, v.Chain); err != nil {
		return nil, fmt.Errorf("vault: info: %w", err)
	}
	if info.Config, err = contract.GetConfig(ctx, v.Chain); err != nil {
		return nil, fmt.Errorf("vault: info: %w", err)
	}

	balance, err := contract.GetBalance(ctx, v.Chain)
	switch {
	case err == nil:
		info.Balance = &balance
	case !errors.Is(err, distributor.ErrNotImplemented):
		return nil, fmt.Errorf("vault: info: %w", err)
	}

	rec, err := v.Store.Get(addr)
	switch {
	case err == nil:
		info.Record = rec
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("vault: info: %w", err)
	}
	return info, nil
}

// List returns the distributors deployed from this vault.
func (v *Vault) List() ([]*storage.Deployment, error) {
	recs, err := v.Store.List()
	if err != nil {
		return nil, fmt.Errorf("vault: list: %w", err)
	}
	return recs, nil
}

// Forget removes addr from the registry without touching the contract.
func (v *Vault) Forget(addr *address.Address) error {
	return v.Store.Delete(addr)
}
