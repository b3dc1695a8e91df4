package storage

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xssnick/tonutils-go/address"
	"go.etcd.io/bbolt"
)

// DefaultFileName is the registry database inside the data directory.
const DefaultFileName = "deployments.db"

var bucketDeployments = []byte("deployments")

// BoltStore is a DeploymentStore backed by a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ DeploymentStore = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrIOFailure, err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt db: %w", ErrIOFailure, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDeployments)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", ErrIOFailure, err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Key returns the registry key for addr: its raw "workchain:hex" form, so
// bounceable and non-bounceable spellings of one address share a record.
func Key(addr *address.Address) []byte {
	return []byte(fmt.Sprintf("%d:%x", addr.Workchain(), addr.Data()))
}

// Put stores rec, replacing any record for the same address.
func (s *BoltStore) Put(rec *Deployment) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	addr, err := address.ParseAddr(rec.Address)
	if err != nil {
		return fmt.Errorf("%w: address %q: %w", ErrInvalidRecord, rec.Address, err)
	}

	data, err := encodeGob(rec)
	if err != nil {
		return fmt.Errorf("storage: encode deployment: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketDeployments).Put(Key(addr), data); err != nil {
			return fmt.Errorf("%w: put deployment: %w", ErrIOFailure, err)
		}
		return nil
	})
}

// Get returns the record for addr.
func (s *BoltStore) Get(addr *address.Address) (*Deployment, error) {
	var rec Deployment
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDeployments).Get(Key(addr))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, addr)
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("storage: decode deployment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Has reports whether addr is recorded.
func (s *BoltStore) Has(addr *address.Address) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketDeployments).Get(Key(addr)) != nil
		return nil
	})
	return found, err
}

// List returns every record, oldest deployment first.
func (s *BoltStore) List() ([]*Deployment, error) {
	var out []*Deployment
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeployments).ForEach(func(_, v []byte) error {
			var rec Deployment
			if err := decodeGob(v, &rec); err != nil {
				return fmt.Errorf("storage: decode deployment: %w", err)
			}
			out = append(out, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeployedAt.Before(out[j].DeployedAt)
	})
	return out, nil
}

// Delete removes the record for addr.
func (s *BoltStore) Delete(addr *address.Address) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDeployments)
		k := Key(addr)
		if b.Get(k) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, addr)
		}
		return b.Delete(k)
	})
}

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
