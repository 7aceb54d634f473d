// Package metrics exposes application metrics collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chaintool"

var (
	phaseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "phase_total",
		Help:      "Count of pipeline phases run.",
	}, []string{"phase", "status"})

	phaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "phase_duration_seconds",
		Help:      "Duration of pipeline phases.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms..~4.4m
	}, []string{"phase", "status"})

	inconsistenciesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inconsistencies_total",
		Help:      "Count of recoverable inconsistencies found.",
	}, []string{"kind"})

	chainsFound = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chains_found",
		Help:      "Number of root-to-leaf chains in the block tree.",
	})

	treeBlocks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tree_blocks",
		Help:      "Block tree nodes by state (existing or empty).",
	}, []string{"state"})

	canonicalWeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "canonical_chain_weight",
		Help:      "Total weight of the selected chain.",
	})

	canonicalLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "canonical_chain_length",
		Help:      "Number of blocks in the selected chain.",
	})

	transactions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "transactions",
		Help:      "Transactions required by the selected chain, stored in the source lanes and kept in trimmed lanes.",
	}, []string{"state"})

	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of object store operations.",
	}, []string{"store", "operation", "status"})

	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of object store operations.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12), // 10us..~42s
	}, []string{"store", "operation", "status"})

	missingTransactions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "missing_transactions",
		Help:      "Transactions referenced by the selected chain but absent from their lane.",
	}, []string{"lane"})
)

// ChainTool records metrics for a chain tool run.
type ChainTool struct{}

func NewChainTool() *ChainTool {
	return &ChainTool{}
}

// ObservePhase records a pipeline phase outcome and duration.
func (m ChainTool) ObservePhase(phase string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	phaseTotal.WithLabelValues(phase, status).Inc()
	phaseDuration.WithLabelValues(phase, status).Observe(time.Since(started).Seconds())
}

// ObserveStore records an object store operation outcome and duration.
func (m ChainTool) ObserveStore(store, operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeOperationsTotal.WithLabelValues(store, operation, status).Inc()
	storeOperationDuration.WithLabelValues(store, operation, status).Observe(time.Since(started).Seconds())
}

func (m ChainTool) ObserveInconsistency(kind fault.Kind) {
	inconsistenciesTotal.WithLabelValues(string(kind)).Inc()
}

func (m ChainTool) SetTree(existing, empty uint64) {
	treeBlocks.WithLabelValues("existing").Set(float64(existing))
	treeBlocks.WithLabelValues("empty").Set(float64(empty))
}

func (m ChainTool) SetChains(count int) {
	chainsFound.Set(float64(count))
}

func (m ChainTool) SetCanonical(weight, length uint64) {
	canonicalWeight.Set(float64(weight))
	canonicalLength.Set(float64(length))
}

func (m ChainTool) SetTransactions(required, stored, trimmed uint64) {
	transactions.WithLabelValues("required").Set(float64(required))
	transactions.WithLabelValues("stored").Set(float64(stored))
	transactions.WithLabelValues("trimmed").Set(float64(trimmed))
}

// SetMissing records the missing transaction count of every lane.
func (m ChainTool) SetMissing(perLane []uint64) {
	for lane, missing := range perLane {
		missingTransactions.WithLabelValues(strconv.Itoa(lane)).Set(float64(missing))
	}
}
