package service

import (
	"time"

	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObservePhase(phase string, err error, started time.Time)
		ObserveStore(store, operation string, err error, started time.Time)
		ObserveInconsistency(kind fault.Kind)
		SetTree(existing, empty uint64)
		SetChains(count int)
		SetCanonical(weight, length uint64)
		SetTransactions(required, stored, trimmed uint64)
		SetMissing(perLane []uint64)
	}
)
