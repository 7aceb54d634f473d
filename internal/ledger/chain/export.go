package chain

import (
	"fmt"

	"github.com/goodnatureofminers/chaintool/internal/ledger/model"
	"go.uber.org/zap"
)

// Export writes every stored block of c to sink, flushes it and records c.Leaf
// as the new head. It returns the number of blocks written.
func (t *Tree) Export(c Chain, sink BlockSink, head HeadWriter, logger *zap.Logger) (uint64, error) {
	var written uint64
	err := t.WalkBackward(c, func(key model.Hash, record *model.BlockRecord) error {
		if err := sink.Set(key, *record); err != nil {
			return fmt.Errorf("write block %s: %w", key, err)
		}
		written++
		return nil
	})
	if err != nil {
		return written, err
	}
	if err := sink.Flush(); err != nil {
		return written, fmt.Errorf("flush repaired blocks: %w", err)
	}
	if err := head.Write(c.Leaf[:]); err != nil {
		return written, fmt.Errorf("write repaired head: %w", err)
	}

	logger.Info("canonical chain exported", zap.Uint64("blocks", written), zap.Stringer("head", c.Leaf))
	return written, nil
}
