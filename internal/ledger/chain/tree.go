// Package chain rebuilds the block tree from a flat block store and derives the
// canonical chain from it.
package chain

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/goodnatureofminers/chaintool/internal/codec"
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"github.com/goodnatureofminers/chaintool/internal/utils"
	"go.uber.org/zap"
)

// Node is a tree entry. A node without block data is a phantom: it exists only
// because a stored block names it as its parent.
type Node struct {
	Record   model.BlockRecord
	HasBlock bool
	Children map[model.Hash]struct{}
}

// SortedChildren returns the child hashes in byte order.
func (n *Node) SortedChildren() []model.Hash {
	children := make([]model.Hash, 0, len(n.Children))
	for h := range n.Children {
		children = append(children, h)
	}
	sortHashes(children)
	return children
}

// Metadata summarises a built tree.
type Metadata struct {
	ExistingBlocks  uint64
	EmptyBlocks     uint64 // phantoms other than the zero hash
	DuplicateBlocks uint64
	Roots           []model.Hash
}

// Tree maps block hashes to nodes. Nodes refer to each other only by hash.
type Tree struct {
	nodes      map[model.Hash]*Node
	duplicates uint64
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[model.Hash]*Node)}
}

// Len returns the number of nodes, phantoms included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Node(key model.Hash) (*Node, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// Add inserts record under key and links it to its parent. A key that already
// holds different block data is reported as a duplicate and the incoming record
// is dropped.
func (t *Tree) Add(key model.Hash, record model.BlockRecord, report *fault.Report) error {
	node := t.node(key)
	if node.HasBlock {
		same, err := sameRecord(node.Record, record)
		if err != nil {
			return fmt.Errorf("compare duplicate block %s: %w", key, err)
		}
		if !same {
			t.duplicates++
			report.Add(fault.DuplicateBlock, "block hash stored twice with different data, keeping the first",
				zap.Stringer("hash", key),
				zap.Uint64("kept_number", node.Record.Block.BlockNumber),
				zap.Uint64("dropped_number", record.Block.BlockNumber),
			)
		}
		return nil
	}

	node.Record = record
	node.HasBlock = true

	parent := t.node(record.Block.PreviousHash)
	parent.Children[key] = struct{}{}
	return nil
}

func (t *Tree) node(key model.Hash) *Node {
	n, ok := t.nodes[key]
	if !ok {
		n = &Node{Children: make(map[model.Hash]struct{})}
		t.nodes[key] = n
	}
	return n
}

// Metadata counts block and phantom nodes and lists the roots in byte order.
func (t *Tree) Metadata() Metadata {
	meta := Metadata{DuplicateBlocks: t.duplicates}
	for key, n := range t.nodes {
		if n.HasBlock {
			meta.ExistingBlocks++
			continue
		}
		meta.Roots = append(meta.Roots, key)
		if key != model.ZeroHash {
			meta.EmptyBlocks++
		}
	}
	sortHashes(meta.Roots)
	return meta
}

// BuildTree reads every record of source into a new tree.
func BuildTree(source BlockSource, logger *zap.Logger, report *fault.Report) (*Tree, error) {
	size, err := source.Size()
	if err != nil {
		return nil, fmt.Errorf("size block store: %w", err)
	}
	total := uint64(0)
	if size > 0 {
		total = uint64(size)
	}

	logger.Info("reading block store", zap.Int("records", size))
	progress := utils.NewProgress(logger, "reading block store", total)

	tree := NewTree()
	err = source.Iterate(func(key model.Hash, record model.BlockRecord) error {
		progress.Step()
		return tree.Add(key, record, report)
	})
	if err != nil {
		return nil, fmt.Errorf("iterate block store: %w", err)
	}

	meta := tree.Metadata()
	logger.Info("block tree built",
		zap.Uint64("existing_blocks", meta.ExistingBlocks),
		zap.Uint64("empty_blocks", meta.EmptyBlocks),
		zap.Uint64("duplicate_blocks", meta.DuplicateBlocks),
		zap.Int("roots", len(meta.Roots)),
	)
	return tree, nil
}

func sameRecord(a, b model.BlockRecord) (bool, error) {
	ea, err := codec.Marshal(a)
	if err != nil {
		return false, err
	}
	eb, err := codec.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ea, eb), nil
}

func sortHashes(hashes []model.Hash) {
	slices.SortFunc(hashes, func(a, b model.Hash) int {
		return bytes.Compare(a[:], b[:])
	})
}
