package distributor

import (
	"fmt"
	"sort"

	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	shareKeyBits = 32
	fractionBits = 16
	seedBits     = 16
)

// EncodeShare stores a share record into b:
//
//	address | factor:uint16 | base:uint16 | ^comment
//
// The comment lives in a referenced cell as a snake string.
func EncodeShare(b *cell.Builder, s Share) error {
	if err := b.StoreAddr(s.Address); err != nil {
		return fmt.Errorf("store share address: %w", err)
	}
	if err := b.StoreUInt(uint64(s.Factor), fractionBits); err != nil {
		return fmt.Errorf("store share factor: %w", err)
	}
	if err := b.StoreUInt(uint64(s.Base), fractionBits); err != nil {
		return fmt.Errorf("store share base: %w", err)
	}

	comment := cell.BeginCell()
	if err := comment.StoreStringSnake(s.Comment); err != nil {
		return fmt.Errorf("store share comment: %w", err)
	}
	if err := b.StoreRef(comment.EndCell()); err != nil {
		return fmt.Errorf("store share comment ref: %w", err)
	}
	return nil
}

// DecodeShare reads a share record written by EncodeShare.
func DecodeShare(s *cell.Slice) (Share, error) {
	addr, err := s.LoadAddr()
	if err != nil {
		return Share{}, fmt.Errorf("%w: load share address: %w", ErrMalformedData, err)
	}
	factor, err := s.LoadUInt(fractionBits)
	if err != nil {
		return Share{}, fmt.Errorf("%w: load share factor: %w", ErrMalformedData, err)
	}
	base, err := s.LoadUInt(fractionBits)
	if err != nil {
		return Share{}, fmt.Errorf("%w: load share base: %w", ErrMalformedData, err)
	}
	ref, err := s.LoadRef()
	if err != nil {
		return Share{}, fmt.Errorf("%w: load share comment ref: %w", ErrMalformedData, err)
	}
	comment, err := ref.LoadStringSnake()
	if err != nil {
		return Share{}, fmt.Errorf("%w: load share comment: %w", ErrMalformedData, err)
	}

	return Share{
		Address: addr,
		Factor:  uint16(factor),
		Base:    uint16(base),
		Comment: comment,
	}, nil
}

// EncodeConfig validates cfg and serializes it into the contract data cell:
//
//	owner | processing_price:Coins | shares:(HashmapE 32 Share) | seed:uint16
//
// Shares are keyed by their index in cfg.Shares.
func EncodeConfig(cfg Config) (*cell.Cell, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	shares := cell.NewDict(shareKeyBits)
	for i, s := range cfg.Shares {
		value := cell.BeginCell()
		if err := EncodeShare(value, s); err != nil {
			return nil, fmt.Errorf("%w: share %d: %w", ErrValidation, i, err)
		}
		key := cell.BeginCell().MustStoreUInt(uint64(i), shareKeyBits).EndCell()
		if err := shares.Set(key, value.EndCell()); err != nil {
			return nil, fmt.Errorf("%w: set share %d: %w", ErrValidation, i, err)
		}
	}

	b := cell.BeginCell()
	if err := b.StoreAddr(cfg.Owner); err != nil {
		return nil, fmt.Errorf("%w: store owner: %w", ErrValidation, err)
	}
	if err := b.StoreBigCoins(cfg.ProcessingPrice); err != nil {
		return nil, fmt.Errorf("%w: store processing price: %w", ErrValidation, err)
	}
	if err := b.StoreDict(shares); err != nil {
		return nil, fmt.Errorf("%w: store shares: %w", ErrValidation, err)
	}
	if err := b.StoreUInt(uint64(cfg.Seed), seedBits); err != nil {
		return nil, fmt.Errorf("%w: store seed: %w", ErrValidation, err)
	}
	return b.EndCell(), nil
}

// DecodeConfig parses a contract data cell produced by EncodeConfig. Shares
// come back in ascending key order.
func DecodeConfig(c *cell.Cell) (*Config, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil cell", ErrMalformedData)
	}
	s := c.BeginParse()

	owner, err := s.LoadAddr()
	if err != nil {
		return nil, fmt.Errorf("%w: load owner: %w", ErrMalformedData, err)
	}
	price, err := s.LoadBigCoins()
	if err != nil {
		return nil, fmt.Errorf("%w: load processing price: %w", ErrMalformedData, err)
	}
	dict, err := s.LoadDict(shareKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: load shares: %w", ErrMalformedData, err)
	}
	seed, err := s.LoadUInt(seedBits)
	if err != nil {
		return nil, fmt.Errorf("%w: load seed: %w", ErrMalformedData, err)
	}

	shares, err := decodeShares(dict)
	if err != nil {
		return nil, err
	}

	return &Config{
		Owner:           owner,
		ProcessingPrice: price,
		Shares:          shares,
		Seed:            uint16(seed),
	}, nil
}

func decodeShares(dict *cell.Dictionary) ([]Share, error) {
	if dict == nil || dict.IsEmpty() {
		return []Share{}, nil
	}
	kvs, err := dict.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read shares: %w", ErrMalformedData, err)
	}

	type keyed struct {
		key   uint64
		share Share
	}
	entries := make([]keyed, 0, len(kvs))
	for _, kv := range kvs {
		key, err := kv.Key.LoadUInt(shareKeyBits)
		if err != nil {
			return nil, fmt.Errorf("%w: load share key: %w", ErrMalformedData, err)
		}
		share, err := DecodeShare(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", key, err)
		}
		entries = append(entries, keyed{key: key, share: share})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	shares := make([]Share, len(entries))
	for i, e := range entries {
		shares[i] = e.share
	}
	return shares, nil
}

// ConfigToBOC encodes cfg and serializes the cell as a bag of cells.
func ConfigToBOC(cfg Config) ([]byte, error) {
	c, err := EncodeConfig(cfg)
	if err != nil {
		return nil, err
	}
	return c.ToBOC(), nil
}

// ConfigFromBOC parses a bag of cells holding a configuration cell.
func ConfigFromBOC(data []byte) (*Config, error) {
	c, err := cell.FromBOC(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse boc: %w", ErrMalformedData, err)
	}
	return DecodeConfig(c)
}

// CodeFromBOC loads compiled contract code from a bag of cells.
func CodeFromBOC(data []byte) (*cell.Cell, error) {
	c, err := cell.FromBOC(data)
	if err != nil {
		return nil, fmt.Errorf("distributor: parse code boc: %w", err)
	}
	return c, nil
}
