package chain

import "github.com/goodnatureofminers/chaintool/internal/ledger/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource is the block store the tree is read from.
	BlockSource interface {
		Size() (int, error)
		Iterate(fn func(key model.Hash, value model.BlockRecord) error) error
	}
	// BlockSink is the block store a repaired chain is written to.
	BlockSink interface {
		Set(key model.Hash, value model.BlockRecord) error
		Flush() error
	}
	HeadReader interface {
		Head() (model.Hash, bool, error)
		Path() string
	}
	HeadWriter interface {
		Write(head []byte) error
	}
)
