package reconcile

import (
	"github.com/goodnatureofminers/chaintool/internal/ledger/chain"
	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockWalker interface {
		WalkBackward(c chain.Chain, fn func(key model.Hash, record *model.BlockRecord) error) error
	}
	TxSource interface {
		Size() (int, error)
		Get(key model.Hash) (model.Transaction, bool, error)
	}
	TxSink interface {
		Size() (int, error)
		Set(key model.Hash, value model.Transaction) error
		Flush() error
	}
)
