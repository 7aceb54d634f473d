package main

import (
	"fmt"
	"os"

	"github.com/goodnatureofminers/chaintool/internal/ledger/chain"
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/reconcile"
	"github.com/goodnatureofminers/chaintool/internal/ledger/service"
	"gopkg.in/yaml.v3"
)

type runReport struct {
	Status          string                `yaml:"status"`
	Code            int                   `yaml:"code"`
	Category        string                `yaml:"category"`
	Error           string                `yaml:"error,omitempty"`
	Tree            treeReport            `yaml:"tree"`
	Chains          []chainReport         `yaml:"chains"`
	Canonical       *canonicalReport      `yaml:"canonical,omitempty"`
	RepairedBlocks  uint64                `yaml:"repaired_blocks,omitempty"`
	Transactions    *reconcile.Summary    `yaml:"transactions,omitempty"`
	Inconsistencies []fault.Inconsistency `yaml:"inconsistencies"`
}

type treeReport struct {
	ExistingBlocks  uint64   `yaml:"existing_blocks"`
	EmptyBlocks     uint64   `yaml:"empty_blocks"`
	DuplicateBlocks uint64   `yaml:"duplicate_blocks"`
	Roots           []string `yaml:"roots"`
}

type chainReport struct {
	Root        string `yaml:"root"`
	Leaf        string `yaml:"leaf"`
	TotalWeight uint64 `yaml:"total_weight"`
	Length      uint64 `yaml:"length"`
	TxCount     uint64 `yaml:"tx_count"`
}

type canonicalReport struct {
	chainReport `yaml:",inline"`
	Outcome     string `yaml:"outcome"`
	Head        string `yaml:"head,omitempty"`
	Validated   bool   `yaml:"validated"`
}

func newChainReport(c chain.Chain) chainReport {
	return chainReport{
		Root:        c.Root.String(),
		Leaf:        c.Leaf.String(),
		TotalWeight: c.TotalWeight,
		Length:      c.Length,
		TxCount:     c.TxCount,
	}
}

func newRunReport(res *service.Result, runErr error) runReport {
	code := fault.CodeOf(runErr)
	rep := runReport{
		Status:   "ok",
		Code:     int(code),
		Category: code.String(),
	}
	if runErr != nil {
		rep.Status = "failed"
		rep.Error = runErr.Error()
	}
	if res == nil {
		return rep
	}

	rep.Tree = treeReport{
		ExistingBlocks:  res.Tree.ExistingBlocks,
		EmptyBlocks:     res.Tree.EmptyBlocks,
		DuplicateBlocks: res.Tree.DuplicateBlocks,
	}
	for _, root := range res.Tree.Roots {
		rep.Tree.Roots = append(rep.Tree.Roots, root.String())
	}
	for _, c := range res.Chains {
		rep.Chains = append(rep.Chains, newChainReport(c))
	}
	if sel := res.Selection; sel != nil {
		rep.Canonical = &canonicalReport{
			chainReport: newChainReport(sel.Chain),
			Outcome:     string(sel.Outcome),
			Validated:   res.Validated,
		}
		if sel.HeadFound {
			rep.Canonical.Head = sel.Head.String()
		}
	}
	rep.RepairedBlocks = res.RepairedBlocks
	rep.Transactions = res.Transactions
	rep.Inconsistencies = res.Inconsistencies
	return rep
}

func writeReport(path string, res *service.Result, runErr error) error {
	data, err := yaml.Marshal(newRunReport(res, runErr))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
