package utils

import "go.uber.org/zap"

// Progress logs msg at Info every time another tenth of total has been stepped.
type Progress struct {
	logger *zap.Logger
	msg    string
	total  uint64
	done   uint64
	next   uint64
}

func NewProgress(logger *zap.Logger, msg string, total uint64) *Progress {
	return &Progress{logger: logger, msg: msg, total: total, next: 10}
}

func (p *Progress) Step() {
	p.done++
	if p.total == 0 {
		return
	}
	pct := p.done * 100 / p.total
	if pct < p.next {
		return
	}
	pct -= pct % 10
	p.logger.Info(p.msg,
		zap.Uint64("percent", pct),
		zap.Uint64("done", p.done),
		zap.Uint64("total", p.total),
	)
	p.next = pct + 10
}

// Done returns how many steps were taken.
func (p *Progress) Done() uint64 {
	return p.done
}
