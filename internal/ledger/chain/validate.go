package chain

import (
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
)

// WalkBackward calls fn for every stored block of c, from the leaf towards the
// root, stopping at the first node without block data.
func (t *Tree) WalkBackward(c Chain, fn func(key model.Hash, record *model.BlockRecord) error) error {
	key := c.Leaf
	for steps := 0; ; steps++ {
		if steps > len(t.nodes) {
			return fault.Fatal(fault.CodeTraversalDepth, "maximum traversal depth exceeded walking back from %s", c.Leaf)
		}
		node, ok := t.nodes[key]
		if !ok || !node.HasBlock {
			return nil
		}
		if err := fn(key, &node.Record); err != nil {
			return err
		}
		key = node.Record.Block.PreviousHash
	}
}

// Validate checks c from leaf to root: every stored hash matches its key, block
// numbers drop by exactly one per step, the walk ends at c.Root and the last
// stored block is genesis.
func (t *Tree) Validate(c Chain) error {
	var (
		prev    model.Hash
		prevNum uint64
		seen    bool
		last    = c.Leaf
	)
	err := t.WalkBackward(c, func(key model.Hash, record *model.BlockRecord) error {
		block := &record.Block
		if block.Hash != key {
			return fault.Fatal(fault.CodeStoreCorruption, "block stored under %s reports hash %s", key, block.Hash)
		}
		if seen && (prevNum == 0 || block.BlockNumber != prevNum-1) {
			return fault.Fatal(fault.CodeNonContiguous,
				"non-contiguous numbering: block %s number %d precedes block %s number %d",
				key, block.BlockNumber, prev, prevNum)
		}
		prev, prevNum, seen = key, block.BlockNumber, true
		last = block.PreviousHash
		return nil
	})
	if err != nil {
		return err
	}

	if last != c.Root {
		return fault.Fatal(fault.CodeRootMismatch, "chain from %s ends at %s, expected root %s", c.Leaf, last, c.Root)
	}
	if seen && prevNum != 0 {
		return fault.Fatal(fault.CodeRootNotGenesis, "root index not genesis: block %s has number %d", prev, prevNum)
	}
	return nil
}
