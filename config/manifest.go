package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"gopkg.in/yaml.v3"

	"github.com/bitfsorg/distributor-go/distributor"
)

// DefaultDeployValue is attached to the deploy message when the manifest
// does not set deploy_value.
const DefaultDeployValue = "0.05"

// ShareEntry is one payout share as written in a manifest.
type ShareEntry struct {
	Address string `yaml:"address"`
	Factor  uint16 `yaml:"factor"`
	Base    uint16 `yaml:"base"`
	Comment string `yaml:"comment"`
}

// Manifest describes one distributor to deploy or reconfigure.
//
//	owner: EQ...
//	processing_price: "0.01"
//	seed: 0
//	code: distributor.boc
//	shares:
//	  - address: EQ...
//	    factor: 1
//	    base: 2
//	    comment: first half
type Manifest struct {
	Owner           string       `yaml:"owner"`
	ProcessingPrice string       `yaml:"processing_price"`
	Seed            uint16       `yaml:"seed"`
	Shares          []ShareEntry `yaml:"shares"`
	Code            string       `yaml:"code"`
	DeployValue     string       `yaml:"deploy_value,omitempty"`

	// dir is the manifest's directory; relative code paths resolve against it.
	dir string
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrInvalidManifest, path)
		}
		return nil, fmt.Errorf("config: read manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes manifest YAML. Code paths resolve against the
// working directory.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return &m, nil
}

// DistributorConfig converts the manifest into a validated contract config.
func (m *Manifest) DistributorConfig() (distributor.Config, error) {
	owner, err := address.ParseAddr(m.Owner)
	if err != nil {
		return distributor.Config{}, fmt.Errorf("%w: owner %q: %w", ErrInvalidManifest, m.Owner, err)
	}

	price, err := tlb.FromTON(m.ProcessingPrice)
	if err != nil {
		return distributor.Config{}, fmt.Errorf("%w: processing_price %q: %w", ErrInvalidManifest, m.ProcessingPrice, err)
	}

	shares := make([]distributor.Share, 0, len(m.Shares))
	for i, e := range m.Shares {
		addr, err := address.ParseAddr(e.Address)
		if err != nil {
			return distributor.Config{}, fmt.Errorf("%w: share %d address %q: %w", ErrInvalidManifest, i, e.Address, err)
		}
		shares = append(shares, distributor.Share{
			Address: addr,
			Factor:  e.Factor,
			Base:    e.Base,
			Comment: e.Comment,
		})
	}

	cfg := distributor.Config{
		Owner:           owner,
		ProcessingPrice: price.Nano(),
		Shares:          shares,
		Seed:            m.Seed,
	}
	if err := distributor.ValidateConfig(cfg); err != nil {
		return distributor.Config{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return cfg, nil
}

// DeployAmount returns the value attached to the deploy message.
func (m *Manifest) DeployAmount() (tlb.Coins, error) {
	v := m.DeployValue
	if v == "" {
		v = DefaultDeployValue
	}
	amount, err := tlb.FromTON(v)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("%w: deploy_value %q: %w", ErrInvalidManifest, v, err)
	}
	return amount, nil
}

// CodePath returns the code BOC path, resolved against the manifest directory.
func (m *Manifest) CodePath() string {
	if m.Code == "" || filepath.IsAbs(m.Code) || m.dir == "" {
		return m.Code
	}
	return filepath.Join(m.dir, m.Code)
}

// LoadCode reads the compiled contract code referenced by the manifest.
func (m *Manifest) LoadCode() (*cell.Cell, error) {
	if m.Code == "" {
		return nil, fmt.Errorf("%w: code path is empty", ErrInvalidManifest)
	}
	return LoadCodeFile(m.CodePath())
}

// LoadCodeFile reads a compiled contract code BOC from path.
func LoadCodeFile(path string) (*cell.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read code %s: %w", path, err)
	}
	return distributor.CodeFromBOC(data)
}
