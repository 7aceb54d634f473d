package fault

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Kind names a recoverable inconsistency.
type Kind string

const (
	DuplicateBlock          Kind = "duplicate_block"
	MissingChild            Kind = "missing_child"
	RootWithoutChains       Kind = "root_without_chains"
	HeadUnresolved          Kind = "head_unresolved"
	HeadWithoutChain        Kind = "head_without_chain"
	HeadNotHeaviest         Kind = "head_not_heaviest"
	MultipleHeaviest        Kind = "multiple_heaviest"
	HeadRecovery            Kind = "head_recovery"
	MissingTransaction      Kind = "missing_transaction"
	CorruptTransaction      Kind = "corrupt_transaction"
	TransactionShortfall    Kind = "transaction_shortfall"
	LaneMissingTransactions Kind = "lane_missing_transactions"
)

// Inconsistency is one recoverable finding.
type Inconsistency struct {
	Kind    Kind           `yaml:"kind"`
	Message string         `yaml:"message"`
	Context map[string]any `yaml:"context,omitempty"`
}

// Report accumulates inconsistencies and logs each one as it is added. It is not
// safe for concurrent use.
type Report struct {
	logger *zap.Logger
	items  []Inconsistency
}

// NewReport creates a Report logging through logger.
func NewReport(logger *zap.Logger) *Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Report{logger: logger}
}

// Add records an inconsistency. Fields are logged and kept as its context.
func (r *Report) Add(kind Kind, msg string, fields ...zap.Field) {
	r.add(zapcore.WarnLevel, kind, msg, fields)
}

// AddError records an inconsistency that is logged at error level.
func (r *Report) AddError(kind Kind, msg string, fields ...zap.Field) {
	r.add(zapcore.ErrorLevel, kind, msg, fields)
}

func (r *Report) add(level zapcore.Level, kind Kind, msg string, fields []zap.Field) {
	var ctx map[string]any
	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		ctx = enc.Fields
	}

	r.items = append(r.items, Inconsistency{Kind: kind, Message: msg, Context: ctx})

	if ce := r.logger.Check(level, "inconsistency: "+msg); ce != nil {
		ce.Write(append(fields, zap.String("kind", string(kind)))...)
	}
}

// Items returns a copy of the recorded inconsistencies in insertion order.
func (r *Report) Items() []Inconsistency {
	out := make([]Inconsistency, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of recorded inconsistencies.
func (r *Report) Len() int {
	return len(r.items)
}

// Count returns how many inconsistencies of kind were recorded.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, item := range r.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}
