package distributor

import (
	"fmt"
	"math/big"
)

// ShareTotal returns the exact sum of Factor/Base over shares.
func ShareTotal(shares []Share) (*big.Rat, error) {
	total := new(big.Rat)
	for i, s := range shares {
		if s.Base == 0 {
			return nil, fmt.Errorf("%w: share %d has zero base", ErrValidation, i)
		}
		total.Add(total, big.NewRat(int64(s.Factor), int64(s.Base)))
	}
	return total, nil
}

// ValidateShares checks that share fractions sum to exactly 1. The sum is
// computed with rationals, so thirds and other non-binary fractions add up
// without rounding.
func ValidateShares(shares []Share) error {
	total, err := ShareTotal(shares)
	if err != nil {
		return err
	}
	if total.Cmp(big.NewRat(1, 1)) != 0 {
		return fmt.Errorf("%w: total shares must be 1, got %s", ErrValidation, total.RatString())
	}
	return nil
}

// ValidateConfig checks every field EncodeConfig relies on.
func ValidateConfig(cfg Config) error {
	if cfg.Owner == nil {
		return fmt.Errorf("%w: owner address is required", ErrValidation)
	}
	if cfg.ProcessingPrice == nil || cfg.ProcessingPrice.Sign() < 0 {
		return fmt.Errorf("%w: processing price must be non-negative", ErrValidation)
	}
	for i, s := range cfg.Shares {
		if s.Address == nil {
			return fmt.Errorf("%w: share %d has no address", ErrValidation, i)
		}
	}
	return ValidateShares(cfg.Shares)
}
