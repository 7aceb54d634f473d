// Package service runs the chain tool pipeline over a node's data directory.
package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/goodnatureofminers/chaintool/internal/codec"
	"github.com/goodnatureofminers/chaintool/internal/ledger/chain"
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"github.com/goodnatureofminers/chaintool/internal/ledger/reconcile"
	"github.com/goodnatureofminers/chaintool/internal/ledger/storage"
	"go.uber.org/zap"
)

const (
	phaseReadTree      = "read_tree"
	phaseFindChains    = "find_chains"
	phaseSelectChain   = "select_chain"
	phaseValidateChain = "validate_chain"
	phaseExportChain   = "export_chain"
	phaseOpenTxStores  = "open_tx_stores"
	phaseReconcileTxs  = "reconcile_txs"
)

type Config struct {
	Dir             string
	PrintMissingTxs bool
	RepairBlockDB   bool
	TrimTxDB        bool
	Compression     codec.CompressionTag
}

// Result is what a run found. It is returned even when the run fails, holding
// whatever the completed phases produced.
type Result struct {
	Tree            chain.Metadata
	Chains          []chain.Chain
	Selection       *chain.Selection
	Validated       bool
	RepairedBlocks  uint64
	Transactions    *reconcile.Summary
	Inconsistencies []fault.Inconsistency
}

type ChainTool struct {
	cfg     Config
	metrics Metrics
	logger  *zap.Logger
}

func NewChainTool(cfg Config, metrics Metrics, logger *zap.Logger) *ChainTool {
	return &ChainTool{cfg: cfg, metrics: metrics, logger: logger}
}

// Run reads the block tree, selects and validates the canonical chain, optionally
// exports it and reconciles its transactions against the lane stores. The
// context is only checked between phases.
func (s *ChainTool) Run(ctx context.Context) (res *Result, err error) {
	res = &Result{}
	report := fault.NewReport(s.logger.Named("report"))
	defer func() {
		res.Inconsistencies = report.Items()
		for _, item := range res.Inconsistencies {
			s.metrics.ObserveInconsistency(item.Kind)
		}
	}()

	phase := func(name string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		started := time.Now()
		err := fn()
		s.metrics.ObservePhase(name, err, started)
		return err
	}

	var tree *chain.Tree
	err = phase(phaseReadTree, func() error {
		tree, err = s.readTree(report)
		return err
	})
	if err != nil {
		return res, err
	}
	res.Tree = tree.Metadata()
	s.metrics.SetTree(res.Tree.ExistingBlocks, res.Tree.EmptyBlocks)

	err = phase(phaseFindChains, func() error {
		res.Chains, err = chain.FindChains(tree, s.logger.Named("chains"), report)
		return err
	})
	if err != nil {
		return res, err
	}
	s.metrics.SetChains(len(res.Chains))

	err = phase(phaseSelectChain, func() error {
		head := storage.NewChainHeadStore(s.path(storage.DefaultHeadFileName))
		sel, err := chain.SelectHeaviest(tree, res.Chains, head, s.logger.Named("selector"), report)
		if err != nil {
			return err
		}
		res.Selection = &sel
		return nil
	})
	if err != nil {
		return res, err
	}
	canonical := res.Selection.Chain
	s.metrics.SetCanonical(canonical.TotalWeight, canonical.Length)

	err = phase(phaseValidateChain, func() error {
		return tree.Validate(canonical)
	})
	if err != nil {
		return res, err
	}
	res.Validated = true
	s.logger.Info("canonical chain validated", zap.Stringer("leaf", canonical.Leaf))

	if s.cfg.RepairBlockDB {
		err = phase(phaseExportChain, func() error {
			res.RepairedBlocks, err = s.exportChain(tree, canonical)
			return err
		})
		if err != nil {
			return res, err
		}
	}

	var (
		sources []*storage.ObjectStore[model.Transaction]
		trimmed []*storage.ObjectStore[model.Transaction]
	)
	defer func() {
		if closeErr := storage.CloseAll(trimmed); closeErr != nil && err == nil {
			err = closeErr
		}
		if closeErr := storage.CloseAll(sources); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	err = phase(phaseOpenTxStores, func() error {
		sources, trimmed, err = s.openTxStores()
		return err
	})
	if err != nil {
		return res, err
	}

	err = phase(phaseReconcileTxs, func() error {
		r := reconcile.NewReconciler(s.logger.Named("reconciler"), report, s.cfg.PrintMissingTxs)
		res.Transactions, err = r.Reconcile(tree, canonical, s.txSources(sources), s.txSinks(trimmed))
		return err
	})
	if err != nil {
		return res, err
	}
	s.metrics.SetTransactions(res.Transactions.RequiredTxs, res.Transactions.StoredTxs, res.Transactions.TrimmedTxs)
	s.metrics.SetMissing(res.Transactions.MissingPerLane)

	s.logger.Info("chain tool finished",
		zap.Int("chains", len(res.Chains)),
		zap.String("outcome", string(res.Selection.Outcome)),
		zap.Uint64("missing_txs", res.Transactions.MissingTxs),
		zap.Int("inconsistencies", report.Len()),
	)
	return res, nil
}

func (s *ChainTool) path(name string) string {
	return filepath.Join(s.cfg.Dir, name)
}

func (s *ChainTool) readTree(report *fault.Report) (tree *chain.Tree, err error) {
	blocks, err := storage.Open[model.BlockRecord](s.path(storage.DefaultBlockFileName))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := blocks.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return chain.BuildTree(storage.NewObservedStore(blocks, s.storeObserver("blocks")), s.logger.Named("tree"), report)
}

func (s *ChainTool) exportChain(tree *chain.Tree, canonical chain.Chain) (written uint64, err error) {
	sink, err := storage.Create[model.BlockRecord](s.path(storage.RepairedBlockFileName), s.cfg.Compression)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	head := storage.NewChainHeadStore(s.path(storage.RepairedHeadFileName))
	observed := storage.NewObservedStore(sink, s.storeObserver("repaired_blocks"))
	return tree.Export(canonical, observed, head, s.logger.Named("exporter"))
}

func (s *ChainTool) openTxStores() (sources, trimmed []*storage.ObjectStore[model.Transaction], err error) {
	layout, err := storage.DiscoverLanes(s.cfg.Dir)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("transaction lanes found", zap.Uint64("lanes", layout.Lanes))

	sources, err = storage.OpenTxStores(layout)
	if err != nil {
		return nil, nil, err
	}
	if !s.cfg.TrimTxDB {
		return sources, nil, nil
	}
	trimmed, err = storage.CreateTrimmedTxStores(layout, s.cfg.Compression)
	if err != nil {
		return sources, nil, err
	}
	return sources, trimmed, nil
}

func (s *ChainTool) txSources(stores []*storage.ObjectStore[model.Transaction]) []reconcile.TxSource {
	out := make([]reconcile.TxSource, 0, len(stores))
	for _, store := range stores {
		out = append(out, storage.NewObservedStore(store, s.storeObserver("lane")))
	}
	return out
}

func (s *ChainTool) txSinks(stores []*storage.ObjectStore[model.Transaction]) []reconcile.TxSink {
	if stores == nil {
		return nil
	}
	out := make([]reconcile.TxSink, 0, len(stores))
	for _, store := range stores {
		out = append(out, storage.NewObservedStore(store, s.storeObserver("trimmed_lane")))
	}
	return out
}

func (s *ChainTool) storeObserver(store string) storeMetrics {
	return storeMetrics{metrics: s.metrics, store: store}
}

// storeMetrics labels store operations with the store they ran against.
type storeMetrics struct {
	metrics Metrics
	store   string
}

func (m storeMetrics) Observe(operation string, err error, started time.Time) {
	m.metrics.ObserveStore(m.store, operation, err, started)
}
