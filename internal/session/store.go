package session

import (
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketName = []byte("sessions")
	recordKey  = []byte("admin_session")
)

// BoltTokenStore persists the admin session blob in a local bbolt
// file, the service-side analogue of the browser's local storage.
type BoltTokenStore struct {
	db *bolt.DB
}

// OpenBoltTokenStore opens (or creates) the session store under the
// given data directory.
func OpenBoltTokenStore(datadir string) (*BoltTokenStore, error) {
	db, err := bolt.Open(filepath.Join(datadir, "session.db"), 0600,
		&bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltTokenStore{db: db}, nil
}

func (s *BoltTokenStore) Get() ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(recordKey)
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

func (s *BoltTokenStore) Set(data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(recordKey, data)
	})
}

func (s *BoltTokenStore) Delete() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete(recordKey)
	})
}

func (s *BoltTokenStore) Close() error {
	return s.db.Close()
}
