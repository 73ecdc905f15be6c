package watchdog

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	"github.com/vfirsov/kernel/contracts"
)

var restoreBucket = []byte("restore_points")

// BoltRestoreStore persists restore points to a bbolt file alongside
// the in-memory ring, so a process restart doesn't lose the most
// recent history. Purely additive: the Watchdog works without one.
type BoltRestoreStore struct {
	db *bbolt.DB
}

// NewBoltRestoreStore opens (creating if absent) a bbolt database at path.
func NewBoltRestoreStore(path string) (*BoltRestoreStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(restoreBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltRestoreStore{db: db}, nil
}

// Save writes rp keyed by its ID, overwriting a prior write with the
// same ID.
func (s *BoltRestoreStore) Save(rp contracts.RestorePoint) {
	payload, err := json.Marshal(rp)
	if err != nil {
		return
	}
	_ = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(restoreBucket).Put([]byte(rp.ID), payload)
	})
}

// Load reads back every durable restore point, in no particular order.
func (s *BoltRestoreStore) Load() ([]contracts.RestorePoint, error) {
	var out []contracts.RestorePoint
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(restoreBucket).ForEach(func(_, v []byte) error {
			var rp contracts.RestorePoint
			if err := json.Unmarshal(v, &rp); err != nil {
				return err
			}
			out = append(out, rp)
			return nil
		})
	})
	return out, err
}

// Close releases the underlying bbolt file handle.
func (s *BoltRestoreStore) Close() error {
	return s.db.Close()
}
