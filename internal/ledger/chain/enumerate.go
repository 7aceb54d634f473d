package chain

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"go.uber.org/zap"
)

// Chain describes one root-to-leaf path of the tree.
type Chain struct {
	Root        model.Hash
	Leaf        model.Hash
	TotalWeight uint64
	Length      uint64
	TxCount     uint64
}

func (c Chain) extend(key model.Hash, n *Node) Chain {
	c.Leaf = key
	if n.HasBlock {
		c.TotalWeight += n.Record.Block.Weight
		c.Length++
		c.TxCount += n.Record.Block.TxCount()
	}
	return c
}

type frame struct {
	children []model.Hash
	next     int
	chain    Chain
}

// ChainsFrom returns every chain that starts at root, one per reachable leaf.
// Traversal uses an explicit stack. Pushes and pops past the root are counted
// and the walk is aborted once they exceed twice the number of tree edges,
// which only happens when the graph has a cycle.
func (t *Tree) ChainsFrom(root model.Hash, report *fault.Report) ([]Chain, error) {
	rootNode, ok := t.nodes[root]
	if !ok {
		return nil, fmt.Errorf("root %s not in tree", root)
	}

	limit := 2 * (len(t.nodes) - 1)
	steps := 0
	step := func() error {
		steps++
		if steps > limit {
			return fault.Fatal(fault.CodeTraversalDepth,
				"maximum traversal depth exceeded from root %s after %d steps", root, limit)
		}
		return nil
	}

	var chains []Chain
	stack := []frame{{
		children: rootNode.SortedChildren(),
		chain:    Chain{Root: root}.extend(root, rootNode),
	}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.children) {
			child := top.children[top.next]
			top.next++

			node, ok := t.nodes[child]
			if !ok {
				report.Add(fault.MissingChild, "child referenced but not in tree",
					zap.Stringer("parent", top.chain.Leaf),
					zap.Stringer("child", child),
				)
				continue
			}
			if err := step(); err != nil {
				return nil, err
			}
			stack = append(stack, frame{
				children: node.SortedChildren(),
				chain:    top.chain.extend(child, node),
			})
			continue
		}

		if len(top.children) == 0 {
			chains = append(chains, top.chain)
		}
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			if err := step(); err != nil {
				return nil, err
			}
		}
	}
	return chains, nil
}

// FindChains enumerates the chains of every root and returns them ordered by
// total weight, then leaf hash.
func FindChains(tree *Tree, logger *zap.Logger, report *fault.Report) ([]Chain, error) {
	meta := tree.Metadata()

	var chains []Chain
	for _, root := range meta.Roots {
		found, err := tree.ChainsFrom(root, report)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			report.Add(fault.RootWithoutChains, "root yields no chain", zap.Stringer("root", root))
			continue
		}
		chains = append(chains, found...)
	}

	SortChains(chains)
	logger.Info("chains found", zap.Int("chains", len(chains)), zap.Int("roots", len(meta.Roots)))
	for _, c := range chains {
		logger.Info("chain",
			zap.Stringer("root", c.Root),
			zap.Stringer("leaf", c.Leaf),
			zap.Uint64("total_weight", c.TotalWeight),
			zap.Uint64("length", c.Length),
			zap.Uint64("tx_count", c.TxCount),
		)
	}
	return chains, nil
}

// SortChains orders chains by total weight, then leaf hash.
func SortChains(chains []Chain) {
	slices.SortFunc(chains, func(a, b Chain) int {
		switch {
		case a.TotalWeight < b.TotalWeight:
			return -1
		case a.TotalWeight > b.TotalWeight:
			return 1
		}
		return bytes.Compare(a.Leaf[:], b.Leaf[:])
	})
}
