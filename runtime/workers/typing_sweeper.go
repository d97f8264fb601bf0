package workers

import (
	"context"
	"log/slog"
	"pair-chat/contract"
	"time"
)

var _ contract.Worker = (*TypingSweeper)(nil)

type Sweeper interface {
	Sweep(ctx context.Context) int
}

// TypingSweeper expires typing indicators nobody explicitly stopped.
type TypingSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	log      *slog.Logger
}

func NewTypingSweeper(sweeper Sweeper, interval time.Duration, log *slog.Logger) *TypingSweeper {
	return &TypingSweeper{sweeper: sweeper, interval: interval, log: log}
}

func (w *TypingSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := w.sweeper.Sweep(ctx); n > 0 {
				w.log.Debug("typing indicators expired", "count", n)
			}
		}
	}
}
