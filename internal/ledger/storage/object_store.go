// Package storage provides the file-backed stores the chain tool reads and writes:
// hash-keyed object stores, the chain head pointer file and the lane-sharded
// transaction store layout.
package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goodnatureofminers/chaintool/internal/codec"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	bolt "go.etcd.io/bbolt"
)

var bucketObjects = []byte("objects") // hash -> framed value

const (
	openTimeout = 5 * time.Second

	// flushThreshold bounds how many writes are buffered before an implicit flush.
	flushThreshold = 10_000
)

// ObjectStore is a hash-keyed store of T values backed by a single bbolt file.
// Writes are buffered until Flush. It is not safe for concurrent use.
type ObjectStore[T any] struct {
	db          *bolt.DB
	path        string
	readOnly    bool
	compression codec.CompressionTag
	pending     map[model.Hash]T
}

// Open opens an existing store read-only.
func Open[T any](path string) (*ObjectStore[T], error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat store %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return &ObjectStore[T]{db: db, path: path, readOnly: true}, nil
}

// Create creates an empty store at path, replacing any existing file.
func Create[T any](path string, compression codec.CompressionTag) (*ObjectStore[T], error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove existing store %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("create store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketObjects)
		return err
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("create bucket in %s: %w (additionally failed to close db: %v)", path, err, closeErr)
		}
		return nil, fmt.Errorf("create bucket in %s: %w", path, err)
	}
	return &ObjectStore[T]{
		db:          db,
		path:        path,
		compression: compression,
		pending:     make(map[model.Hash]T),
	}, nil
}

// Path returns the file backing the store.
func (s *ObjectStore[T]) Path() string {
	return s.path
}

// Size returns the number of committed objects plus buffered writes.
func (s *ObjectStore[T]) Size() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketObjects); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("stat store %s: %w", s.path, err)
	}
	return n + len(s.pending), nil
}

// Iterate calls fn for every committed object in key order. An error returned by
// fn stops the iteration and is returned unchanged.
func (s *ObjectStore[T]) Iterate(fn func(key model.Hash, value T) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketObjects)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			key, err := hashKey(k)
			if err != nil {
				return fmt.Errorf("iterate store %s: %w", s.path, err)
			}
			var value T
			if err := codec.Decode(v, &value); err != nil {
				return fmt.Errorf("decode object %s in %s: %w", key, s.path, err)
			}
			if err := fn(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the object stored under key.
func (s *ObjectStore[T]) Get(key model.Hash) (T, bool, error) {
	var value T
	if v, ok := s.pending[key]; ok {
		return v, true, nil
	}

	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketObjects)
		if b == nil {
			return nil
		}
		data := b.Get(key[:])
		if data == nil {
			return nil
		}
		found = true
		return codec.Decode(data, &value)
	})
	if err != nil {
		return value, false, fmt.Errorf("get object %s from %s: %w", key, s.path, err)
	}
	return value, found, nil
}

// Set buffers value under key.
func (s *ObjectStore[T]) Set(key model.Hash, value T) error {
	if s.readOnly {
		return fmt.Errorf("set object %s: store %s is read-only", key, s.path)
	}
	s.pending[key] = value
	if len(s.pending) >= flushThreshold {
		return s.Flush()
	}
	return nil
}

// Flush commits buffered writes in a single transaction.
func (s *ObjectStore[T]) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketObjects)
		for key, value := range s.pending {
			data, err := codec.Encode(value, s.compression)
			if err != nil {
				return fmt.Errorf("encode object %s: %w", key, err)
			}
			if err := b.Put(key[:], data); err != nil {
				return fmt.Errorf("put object %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("flush store %s: %w", s.path, err)
	}
	clear(s.pending)
	return nil
}

// Close flushes buffered writes and closes the file.
func (s *ObjectStore[T]) Close() error {
	flushErr := s.Flush()
	if err := s.db.Close(); err != nil {
		return errors.Join(flushErr, fmt.Errorf("close store %s: %w", s.path, err))
	}
	return flushErr
}

func hashKey(k []byte) (model.Hash, error) {
	var h model.Hash
	if len(k) != model.HashSize {
		return h, fmt.Errorf("invalid key length: got %d", len(k))
	}
	copy(h[:], k)
	return h, nil
}
