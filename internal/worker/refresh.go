package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

// * RefreshWorker periodically reloads the commit activity of the selected
// * repository, picking up statistics GitHub was still computing earlier
type RefreshWorker struct {
	refresher Refresher
	interval  time.Duration
}

func NewRefreshWorker(refresher Refresher, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		interval:  interval,
	}
}

func (w *RefreshWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresher.Refresh(ctx); err != nil {
				logger.Error("refresh failed: %v", err)
			} else {
				logger.Debug("refreshed selected repository")
			}

		case <-ctx.Done():
			logger.Info("stopping refresh worker")
			return
		}
	}
}
