package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
)

const (
	// DefaultHeadFileName is the head pointer written next to chain.db.
	DefaultHeadFileName = "chain.head.db"
	// RepairedHeadFileName is the head pointer written next to the repaired block store.
	RepairedHeadFileName = "chain_repaired.head.db"
)

// ChainHeadStore is a file holding exactly one block hash: the node's current head.
type ChainHeadStore struct {
	path string
}

// NewChainHeadStore returns a head store backed by path. The file is not touched.
func NewChainHeadStore(path string) *ChainHeadStore {
	return &ChainHeadStore{path: path}
}

// Path returns the backing file.
func (s *ChainHeadStore) Path() string {
	return s.path
}

// Head returns the recorded head. A missing file or a file whose size is not
// exactly one hash yields ok == false.
func (s *ChainHeadStore) Head() (model.Hash, bool, error) {
	var head model.Hash
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return head, false, nil
		}
		return head, false, fmt.Errorf("read head %s: %w", s.path, err)
	}
	if len(data) != model.HashSize {
		return head, false, nil
	}
	copy(head[:], data)
	return head, true, nil
}

// Write replaces the recorded head. The file is swapped in by rename so a reader
// never observes a partial hash.
func (s *ChainHeadStore) Write(head []byte) error {
	if len(head) != model.HashSize {
		return fmt.Errorf("write head %s: invalid hash length %d", s.path, len(head))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp head for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(head); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp head %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp head %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp head %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename head %s: %w", s.path, err)
	}
	return nil
}
