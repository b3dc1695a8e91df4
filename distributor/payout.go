package distributor

import (
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
)

// Payout is the estimated amount one share receives.
type Payout struct {
	Address *address.Address
	Comment string
	Amount  *big.Int // nanotons
}

// Split is the estimated breakdown of one incoming payment.
type Split struct {
	Fee       *big.Int // processing price kept by the contract
	Payouts   []Payout // in share order
	Remainder *big.Int // rounding dust not assigned to any share
}

// EstimatePayouts splits amount nanotons the way cfg describes: the
// processing price is taken first and every share gets floor(net*factor/base).
// It is a client-side estimate; network fees are not included.
func EstimatePayouts(cfg Config, amount *big.Int) (*Split, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if amount == nil || amount.Cmp(cfg.ProcessingPrice) <= 0 {
		return nil, fmt.Errorf("%w: payment must exceed the processing price %s", ErrValidation, cfg.ProcessingPrice)
	}

	net := new(big.Int).Sub(amount, cfg.ProcessingPrice)
	split := &Split{
		Fee:     new(big.Int).Set(cfg.ProcessingPrice),
		Payouts: make([]Payout, len(cfg.Shares)),
	}

	distributed := new(big.Int)
	for i, s := range cfg.Shares {
		v := new(big.Int).Mul(net, big.NewInt(int64(s.Factor)))
		v.Quo(v, big.NewInt(int64(s.Base)))
		split.Payouts[i] = Payout{Address: s.Address, Comment: s.Comment, Amount: v}
		distributed.Add(distributed, v)
	}
	split.Remainder = net.Sub(net, distributed)
	return split, nil
}
