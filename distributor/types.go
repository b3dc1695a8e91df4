// Package distributor implements the client side of the TON Distributor
// contract: the persistent configuration codec and a contract handle that
// proxies sends and get methods to a provider.
//
// The contract splits incoming payments among a fixed list of recipients.
// Each recipient holds a Factor/Base fraction; the fractions of one
// configuration must sum to exactly 1.
package distributor

import (
	"bytes"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
)

// Share is one recipient's claim of Factor/Base on distributed funds.
type Share struct {
	Address *address.Address
	Factor  uint16
	Base    uint16
	Comment string
}

// Config is the full persistent state of one Distributor instance.
type Config struct {
	Owner           *address.Address
	ProcessingPrice *big.Int // nanotons
	Shares          []Share
	Seed            uint16
}

// Equal reports whether two shares hold the same recipient, fraction and comment.
func (s Share) Equal(o Share) bool {
	return sameAddress(s.Address, o.Address) &&
		s.Factor == o.Factor &&
		s.Base == o.Base &&
		s.Comment == o.Comment
}

// Equal compares configurations field by field. Addresses are compared by
// workchain and account id only, so bounceable/testnet flags of the textual
// form do not matter.
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !sameAddress(c.Owner, o.Owner) || c.Seed != o.Seed {
		return false
	}
	if (c.ProcessingPrice == nil) != (o.ProcessingPrice == nil) {
		return false
	}
	if c.ProcessingPrice != nil && c.ProcessingPrice.Cmp(o.ProcessingPrice) != 0 {
		return false
	}
	if len(c.Shares) != len(o.Shares) {
		return false
	}
	for i := range c.Shares {
		if !c.Shares[i].Equal(o.Shares[i]) {
			return false
		}
	}
	return true
}

func sameAddress(a, b *address.Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Workchain() == b.Workchain() && bytes.Equal(a.Data(), b.Data())
}
