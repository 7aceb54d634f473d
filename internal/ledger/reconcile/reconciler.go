// Package reconcile checks that every transaction referenced by the canonical
// chain is present in the lane-sharded transaction store.
package reconcile

import (
	"fmt"

	"github.com/goodnatureofminers/chaintool/internal/ledger/chain"
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"github.com/goodnatureofminers/chaintool/internal/utils"
	"github.com/goodnatureofminers/chaintool/pkg/safe"
	"go.uber.org/zap"
)

type Summary struct {
	Lanes          uint64   `yaml:"lanes"`
	RequiredTxs    uint64   `yaml:"required_txs"`
	StoredTxs      uint64   `yaml:"stored_txs"`
	FoundTxs       uint64   `yaml:"found_txs"`
	MissingTxs     uint64   `yaml:"missing_txs"`
	CorruptTxs     uint64   `yaml:"corrupt_txs"`
	TrimmedTxs     uint64   `yaml:"trimmed_txs"`
	StoredPerLane  []uint64 `yaml:"stored_per_lane"`
	MissingPerLane []uint64 `yaml:"missing_per_lane"`
}

type Reconciler struct {
	logger       *zap.Logger
	report       *fault.Report
	printMissing bool
}

// NewReconciler returns a reconciler. With printMissing every missing
// transaction is reported with its block, slice and index.
func NewReconciler(logger *zap.Logger, report *fault.Report, printMissing bool) *Reconciler {
	return &Reconciler{logger: logger, report: report, printMissing: printMissing}
}

// Reconcile walks c backward and looks up every referenced transaction in the
// source store of its lane. Found transactions are copied to the matching trimmed
// sink when trimmed is not nil.
func (r *Reconciler) Reconcile(walker BlockWalker, c chain.Chain, sources []TxSource, trimmed []TxSink) (*Summary, error) {
	lanes, err := safe.Uint64(len(sources))
	if err != nil {
		return nil, fmt.Errorf("convert lane count: %w", err)
	}
	if !safe.IsPowerOfTwo(lanes) {
		return nil, fault.Fatal(fault.CodeLaneCount, "lane count %d is not a power of two", lanes)
	}
	if trimmed != nil && len(trimmed) != len(sources) {
		return nil, fault.Fatal(fault.CodeLaneCount, "%d trimmed stores for %d lanes", len(trimmed), lanes)
	}
	log2Lanes, err := safe.Log2(lanes)
	if err != nil {
		return nil, fault.Wrap(fault.CodeLaneCount, err, "lane count %d", lanes)
	}

	sum := &Summary{
		Lanes:          lanes,
		RequiredTxs:    c.TxCount,
		StoredPerLane:  make([]uint64, lanes),
		MissingPerLane: make([]uint64, lanes),
	}
	if err := r.countStored(sources, sum); err != nil {
		return nil, err
	}
	if sum.RequiredTxs > sum.StoredTxs {
		r.report.Add(fault.TransactionShortfall, "chain requires more transactions than the store holds",
			zap.Uint64("required", sum.RequiredTxs),
			zap.Uint64("stored", sum.StoredTxs),
		)
	}

	progress := utils.NewProgress(r.logger, "reconciling transactions", sum.RequiredTxs)
	err = walker.WalkBackward(c, func(key model.Hash, record *model.BlockRecord) error {
		for si, slice := range record.Block.Slices {
			for ti, layout := range slice {
				progress.Step()
				lane := model.Lane(layout.Digest, log2Lanes)
				if tx, ok := r.fetch(sources[lane], layout.Digest, lane, sum); ok {
					if trimmed != nil {
						if err := trimmed[lane].Set(layout.Digest, tx); err != nil {
							return fmt.Errorf("write trimmed tx %s to lane %d: %w", layout.Digest, lane, err)
						}
					}
					continue
				}
				sum.MissingTxs++
				sum.MissingPerLane[lane]++
				if r.printMissing {
					r.report.Add(fault.MissingTransaction, "transaction missing",
						zap.Stringer("block", key),
						zap.Uint64("block_number", record.Block.BlockNumber),
						zap.Int("slice", si),
						zap.Int("index", ti),
						zap.Uint64("lane", lane),
						zap.Stringer("digest", layout.Digest),
					)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk canonical chain: %w", err)
	}

	if trimmed != nil {
		if err := r.flushTrimmed(trimmed, sum); err != nil {
			return nil, err
		}
	}

	for lane, missing := range sum.MissingPerLane {
		if missing > 0 {
			r.report.Add(fault.LaneMissingTransactions, "lane is missing transactions",
				zap.Int("lane", lane),
				zap.Uint64("missing", missing),
			)
		}
	}

	r.logger.Info("transactions reconciled",
		zap.Uint64("required", sum.RequiredTxs),
		zap.Uint64("stored", sum.StoredTxs),
		zap.Uint64("found", sum.FoundTxs),
		zap.Uint64("missing", sum.MissingTxs),
		zap.Uint64("corrupt", sum.CorruptTxs),
		zap.Uint64("trimmed", sum.TrimmedTxs),
	)
	return sum, nil
}

// fetch returns the transaction stored under digest if it is present and intact.
func (r *Reconciler) fetch(source TxSource, digest model.Hash, lane uint64, sum *Summary) (model.Transaction, bool) {
	tx, ok, err := source.Get(digest)
	if err != nil {
		if r.printMissing {
			r.logger.Warn("fetch transaction failed",
				zap.Uint64("lane", lane),
				zap.Stringer("digest", digest),
				zap.Error(err),
			)
		}
		return tx, false
	}
	if !ok {
		return tx, false
	}

	actual, err := tx.Digest()
	if err != nil || actual != digest {
		sum.CorruptTxs++
		r.report.Add(fault.CorruptTransaction, "stored transaction does not match its digest",
			zap.Uint64("lane", lane),
			zap.Stringer("digest", digest),
			zap.Stringer("actual", actual),
		)
		return tx, false
	}
	sum.FoundTxs++
	return tx, true
}

func (r *Reconciler) countStored(sources []TxSource, sum *Summary) error {
	for lane, source := range sources {
		size, err := source.Size()
		if err != nil {
			return fmt.Errorf("size lane %d: %w", lane, err)
		}
		stored, err := safe.Uint64(size)
		if err != nil {
			return fmt.Errorf("size lane %d: %w", lane, err)
		}
		sum.StoredPerLane[lane] = stored
		sum.StoredTxs += stored
		r.logger.Info("lane transactions", zap.Int("lane", lane), zap.Uint64("stored", stored))
	}
	r.logger.Info("transactions stored", zap.Uint64("total", sum.StoredTxs), zap.Uint64("required", sum.RequiredTxs))
	return nil
}

func (r *Reconciler) flushTrimmed(trimmed []TxSink, sum *Summary) error {
	for lane, sink := range trimmed {
		if err := sink.Flush(); err != nil {
			return fmt.Errorf("flush trimmed lane %d: %w", lane, err)
		}
		size, err := sink.Size()
		if err != nil {
			return fmt.Errorf("size trimmed lane %d: %w", lane, err)
		}
		kept, err := safe.Uint64(size)
		if err != nil {
			return fmt.Errorf("size trimmed lane %d: %w", lane, err)
		}
		sum.TrimmedTxs += kept
		r.logger.Info("trimmed lane transactions", zap.Int("lane", lane), zap.Uint64("kept", kept))
	}
	return nil
}
