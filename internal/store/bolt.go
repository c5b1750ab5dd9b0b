package store

import (
	"encoding/json"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"
)

var walletBucket = []byte("wallet")

// Bolt persists records in a single-file embedded key-value database.
type Bolt struct {
	db *bolt.DB
}

func Open(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt{db: db}, nil
}

func (s *Bolt) Get(key string, dest any) bool {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(walletBucket).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		slog.Warn("store read failed", "key", key, "err", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// corrupt record reads as absent, never as a crash
		slog.Warn("store record corrupt", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Bolt) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("store marshal failed", "key", key, "err", err)
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletBucket).Put([]byte(key), raw)
	})
	if err != nil {
		slog.Warn("store write failed", "key", key, "err", err)
	}
}

func (s *Bolt) Remove(key string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletBucket).Delete([]byte(key))
	})
	if err != nil {
		slog.Warn("store delete failed", "key", key, "err", err)
	}
}

func (s *Bolt) Close() error { return s.db.Close() }
