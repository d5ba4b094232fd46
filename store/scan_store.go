package store

import (
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"
)

const scanCountsBucket = "scan_counts"

// ScanCounter counts how many times each profile has been scanned
// it lives in the presentation layer only, the scoring core never touches it
type ScanCounter interface {
	Increment(key string) (uint64, error)
	Get(key string) (uint64, error)
	Close() error
}

type boltScanCounter struct {
	db *bolt.DB
}

// NewScanCounter opens (or creates) the bbolt file backing the counters
func NewScanCounter(path string) (ScanCounter, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})

	if err != nil {
		return nil, err
	}

	return &boltScanCounter{db: db}, nil
}

// Increment bumps the counter for a key and returns the new value
func (s *boltScanCounter) Increment(key string) (uint64, error) {
	var count uint64

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(scanCountsBucket))
		if err != nil {
			return err
		}

		count = decodeCount(bucket.Get([]byte(key))) + 1

		return bucket.Put([]byte(key), encodeCount(count))
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}

// Get returns the current counter for a key, zero if never scanned
func (s *boltScanCounter) Get(key string) (uint64, error) {
	var count uint64

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(scanCountsBucket))
		if bucket == nil {
			return nil
		}

		count = decodeCount(bucket.Get([]byte(key)))
		return nil
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *boltScanCounter) Close() error {
	return s.db.Close()
}

func encodeCount(count uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, count)
	return buf
}

func decodeCount(raw []byte) uint64 {
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
