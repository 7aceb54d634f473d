package chain

import (
	"fmt"

	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"go.uber.org/zap"
)

// Outcome records which rule picked the canonical chain.
type Outcome string

const (
	OutcomeHeadConfirmed  Outcome = "head_confirmed"
	OutcomeUniqueHeaviest Outcome = "unique_heaviest"
	OutcomeHeadRecovery   Outcome = "head_recovery"
)

type Selection struct {
	Chain         Chain
	Outcome       Outcome
	MaxWeight     uint64
	HeaviestCount int
	Head          model.Hash
	HeadFound     bool
}

// SelectHeaviest picks the canonical chain. The chain ending at the recorded
// head wins when it is among the heaviest; otherwise a unique heaviest chain
// wins. When several chains tie for heaviest the head chain is used as a
// recovery even if it is lighter, and without one the choice is ambiguous.
func SelectHeaviest(tree *Tree, chains []Chain, head HeadReader, logger *zap.Logger, report *fault.Report) (Selection, error) {
	var sel Selection
	if len(chains) == 0 {
		return sel, fault.Fatal(fault.CodeNoChains, "no chains found")
	}

	var heaviest *Chain
	for i := range chains {
		c := &chains[i]
		switch {
		case heaviest == nil || c.TotalWeight > sel.MaxWeight:
			sel.MaxWeight = c.TotalWeight
			sel.HeaviestCount = 1
			heaviest = c
		case c.TotalWeight == sel.MaxWeight:
			sel.HeaviestCount++
		}
	}

	headChain, err := resolveHead(tree, chains, head, &sel, logger, report)
	if err != nil {
		return sel, err
	}

	if sel.HeaviestCount > 1 {
		report.Add(fault.MultipleHeaviest, "several chains share the heaviest weight",
			zap.Uint64("weight", sel.MaxWeight),
			zap.Int("count", sel.HeaviestCount),
		)
	}

	switch {
	case headChain != nil && headChain.TotalWeight == sel.MaxWeight:
		sel.Chain = *headChain
		sel.Outcome = OutcomeHeadConfirmed
	case sel.HeaviestCount == 1:
		if headChain != nil {
			report.Add(fault.HeadNotHeaviest, "head is not heaviest",
				zap.Stringer("head", sel.Head),
				zap.Uint64("head_weight", headChain.TotalWeight),
				zap.Stringer("heaviest_leaf", heaviest.Leaf),
				zap.Uint64("heaviest_weight", sel.MaxWeight),
			)
		}
		sel.Chain = *heaviest
		sel.Outcome = OutcomeUniqueHeaviest
	case headChain != nil:
		report.AddError(fault.HeadRecovery, "heaviest chain is ambiguous, recovering with the lighter head chain",
			zap.Stringer("head", sel.Head),
			zap.Uint64("head_weight", headChain.TotalWeight),
			zap.Uint64("heaviest_weight", sel.MaxWeight),
			zap.Int("heaviest_count", sel.HeaviestCount),
		)
		sel.Chain = *headChain
		sel.Outcome = OutcomeHeadRecovery
	default:
		return sel, fault.Fatal(fault.CodeAmbiguousHeaviest,
			"ambiguous heaviest chain, no disambiguating head: %d chains weigh %d", sel.HeaviestCount, sel.MaxWeight)
	}

	logger.Info("canonical chain selected",
		zap.String("outcome", string(sel.Outcome)),
		zap.Stringer("root", sel.Chain.Root),
		zap.Stringer("leaf", sel.Chain.Leaf),
		zap.Uint64("total_weight", sel.Chain.TotalWeight),
		zap.Uint64("length", sel.Chain.Length),
	)
	return sel, nil
}

// resolveHead returns the chain whose leaf is the recorded head, or nil.
func resolveHead(tree *Tree, chains []Chain, head HeadReader, sel *Selection, logger *zap.Logger, report *fault.Report) (*Chain, error) {
	hash, ok, err := head.Head()
	if err != nil {
		return nil, fmt.Errorf("read head %s: %w", head.Path(), err)
	}
	if !ok {
		logger.Info("no head recorded", zap.String("path", head.Path()))
		return nil, nil
	}
	sel.Head = hash
	sel.HeadFound = true

	node, ok := tree.Node(hash)
	if !ok || !node.HasBlock {
		report.Add(fault.HeadUnresolved, "head does not name a stored block",
			zap.Stringer("head", hash),
			zap.String("path", head.Path()),
		)
		return nil, nil
	}
	for i := range chains {
		if chains[i].Leaf == hash {
			return &chains[i], nil
		}
	}
	report.Add(fault.HeadWithoutChain, "head block is not the leaf of any chain", zap.Stringer("head", hash))
	return nil, nil
}
