package distributor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePayouts_Halves(t *testing.T) {
	cfg := halfAndHalf()
	amount := new(big.Int).Add(cfg.ProcessingPrice, big.NewInt(1_000_000_000))

	split, err := EstimatePayouts(cfg, amount)
	require.NoError(t, err)
	assert.Equal(t, 0, split.Fee.Cmp(cfg.ProcessingPrice))
	require.Len(t, split.Payouts, 2)
	for i, p := range split.Payouts {
		assert.Equal(t, int64(500_000_000), p.Amount.Int64())
		assert.Equal(t, cfg.Shares[i].Comment, p.Comment)
	}
	assert.Equal(t, int64(0), split.Remainder.Int64())
}

func TestEstimatePayouts_ThirdsLeaveDust(t *testing.T) {
	cfg := halfAndHalf()
	cfg.ProcessingPrice = big.NewInt(0)
	cfg.Shares = []Share{
		{Address: makeAddr(2), Factor: 1, Base: 3},
		{Address: makeAddr(3), Factor: 1, Base: 3},
		{Address: makeAddr(4), Factor: 1, Base: 3},
	}

	split, err := EstimatePayouts(cfg, big.NewInt(100))
	require.NoError(t, err)

	total := new(big.Int).Set(split.Remainder)
	for _, p := range split.Payouts {
		assert.Equal(t, int64(33), p.Amount.Int64())
		total.Add(total, p.Amount)
	}
	assert.Equal(t, int64(1), split.Remainder.Int64())
	assert.Equal(t, int64(100), total.Int64(), "payouts plus dust must equal the net payment")
}

func TestEstimatePayouts_Errors(t *testing.T) {
	cfg := halfAndHalf()

	_, err := EstimatePayouts(cfg, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = EstimatePayouts(cfg, new(big.Int).Set(cfg.ProcessingPrice))
	assert.ErrorIs(t, err, ErrValidation)

	bad := halfAndHalf()
	bad.Shares = bad.Shares[:1]
	_, err = EstimatePayouts(bad, big.NewInt(1_000_000_000))
	assert.ErrorIs(t, err, ErrValidation)
}
