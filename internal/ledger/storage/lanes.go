package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/goodnatureofminers/chaintool/internal/codec"
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"github.com/goodnatureofminers/chaintool/pkg/safe"
)

const (
	// DefaultBlockFileName is the node's block store.
	DefaultBlockFileName = "chain.db"
	// RepairedBlockFileName is the block store emitted by a repair run.
	RepairedBlockFileName = "chain_repaired.db"
)

// LaneRole distinguishes the source transaction files from the trimmed outputs.
type LaneRole string

const (
	LanePrimary LaneRole = ""
	LaneTrimmed LaneRole = "trimmed"
)

var laneFilePattern = regexp.MustCompile(`^node_storage_lane([0-9]+)_transaction\.db$`)

// TxStoreFileName returns the file name of a lane's transaction store.
func TxStoreFileName(lane uint64, role LaneRole) string {
	if role == LanePrimary {
		return fmt.Sprintf("node_storage_lane%03d_transaction.db", lane)
	}
	return fmt.Sprintf("node_storage_lane%03d_transaction_%s.db", lane, role)
}

// LaneLayout is the validated set of lane files found in a directory.
type LaneLayout struct {
	Dir       string
	Lanes     uint64
	Log2Lanes uint
}

// Path returns the path of a lane's store in the given role.
func (l LaneLayout) Path(lane uint64, role LaneRole) string {
	return filepath.Join(l.Dir, TxStoreFileName(lane, role))
}

// DiscoverLanes scans dir for primary lane files. Indices must be unique,
// contiguous from zero and their count a power of two.
func DiscoverLanes(dir string) (LaneLayout, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LaneLayout{}, fmt.Errorf("read dir %s: %w", dir, err)
	}

	seen := make(map[uint64]string)
	indices := make([]uint64, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := laneFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return LaneLayout{}, fault.Wrap(fault.CodeLaneGap, err, "parse lane index of %s", entry.Name())
		}
		if prev, ok := seen[idx]; ok {
			return LaneLayout{}, fault.Fatal(fault.CodeDuplicateLane, "lane %d found in both %s and %s", idx, prev, entry.Name())
		}
		seen[idx] = entry.Name()
		indices = append(indices, idx)
	}

	if len(indices) == 0 {
		return LaneLayout{}, fault.Fatal(fault.CodeLaneGap, "no lane files in %s", dir)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	for i, idx := range indices {
		want, err := safe.Uint64(i)
		if err != nil {
			return LaneLayout{}, fmt.Errorf("convert lane position: %w", err)
		}
		if idx != want {
			return LaneLayout{}, fault.Fatal(fault.CodeLaneGap, "lane %d is missing (next found is %d)", want, idx)
		}
	}

	lanes, err := safe.Uint64(len(indices))
	if err != nil {
		return LaneLayout{}, fmt.Errorf("convert lane count: %w", err)
	}
	if !safe.IsPowerOfTwo(lanes) {
		return LaneLayout{}, fault.Fatal(fault.CodeLaneCount, "lane count %d is not a power of two", lanes)
	}
	log2, err := safe.Log2(lanes)
	if err != nil {
		return LaneLayout{}, fault.Wrap(fault.CodeLaneCount, err, "lane count %d", lanes)
	}

	return LaneLayout{Dir: dir, Lanes: lanes, Log2Lanes: log2}, nil
}

// OpenTxStores opens every primary lane store read-only. On failure the stores
// already opened are closed.
func OpenTxStores(layout LaneLayout) ([]*ObjectStore[model.Transaction], error) {
	stores := make([]*ObjectStore[model.Transaction], 0, layout.Lanes)
	for lane := uint64(0); lane < layout.Lanes; lane++ {
		store, err := Open[model.Transaction](layout.Path(lane, LanePrimary))
		if err != nil {
			_ = CloseAll(stores)
			return nil, fmt.Errorf("open lane %d: %w", lane, err)
		}
		stores = append(stores, store)
	}
	return stores, nil
}

// CreateTrimmedTxStores creates an empty trimmed store per lane.
func CreateTrimmedTxStores(layout LaneLayout, compression codec.CompressionTag) ([]*ObjectStore[model.Transaction], error) {
	stores := make([]*ObjectStore[model.Transaction], 0, layout.Lanes)
	for lane := uint64(0); lane < layout.Lanes; lane++ {
		store, err := Create[model.Transaction](layout.Path(lane, LaneTrimmed), compression)
		if err != nil {
			_ = CloseAll(stores)
			return nil, fmt.Errorf("create trimmed lane %d: %w", lane, err)
		}
		stores = append(stores, store)
	}
	return stores, nil
}

// CloseAll closes every store and returns the first error.
func CloseAll[T any](stores []*ObjectStore[T]) error {
	var first error
	for _, store := range stores {
		if err := store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
