// Package storage keeps a local registry of deployed distributors.
package storage

import (
	"time"

	"github.com/xssnick/tonutils-go/address"
)

// Deployment records one distributor deployed from this machine.
type Deployment struct {
	// Address is the user-friendly contract address.
	Address string
	// Network names the TON network the contract lives on.
	Network   string
	Workchain int8
	// ConfigBOC is the last configuration sent to the contract.
	ConfigBOC []byte
	// CodeHash is the hash of the code cell the contract was deployed or updated with.
	CodeHash   []byte
	DeployedAt time.Time
	UpdatedAt  time.Time
}

// DeploymentStore persists Deployment records keyed by contract address.
type DeploymentStore interface {
	// Put inserts or replaces the record for rec.Address.
	Put(rec *Deployment) error

	// Get returns the record for addr, or ErrNotFound.
	Get(addr *address.Address) (*Deployment, error)

	// Has reports whether a record exists for addr.
	Has(addr *address.Address) (bool, error)

	// List returns all records ordered by deployment time.
	List() ([]*Deployment, error)

	// Delete removes the record for addr, or returns ErrNotFound.
	Delete(addr *address.Address) error
}
