package storage

import (
	"time"

	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
)

type (
	OperationMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// ObservedStore times every operation of an ObjectStore.
type ObservedStore[T any] struct {
	store   *ObjectStore[T]
	metrics OperationMetrics
}

func NewObservedStore[T any](store *ObjectStore[T], metrics OperationMetrics) *ObservedStore[T] {
	return &ObservedStore[T]{
		store:   store,
		metrics: metrics,
	}
}

func (s *ObservedStore[T]) Size() (n int, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("size", err, started)
	}()
	return s.store.Size()
}

func (s *ObservedStore[T]) Iterate(fn func(key model.Hash, value T) error) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("iterate", err, started)
	}()
	return s.store.Iterate(fn)
}

func (s *ObservedStore[T]) Get(key model.Hash) (value T, found bool, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("get", err, started)
	}()
	return s.store.Get(key)
}

func (s *ObservedStore[T]) Set(key model.Hash, value T) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("set", err, started)
	}()
	return s.store.Set(key, value)
}

func (s *ObservedStore[T]) Flush() (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("flush", err, started)
	}()
	return s.store.Flush()
}
