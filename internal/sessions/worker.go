package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/ashureev/cemas/internal/store"
)

// WorkerConfig controls the background sweep.
type WorkerConfig struct {
	Interval time.Duration
	// Retention removes users, and their snapshots, unseen for this long.
	// Zero keeps them forever.
	Retention time.Duration
}

// StartWorker runs a background goroutine that evicts idle sessions from
// memory and, when retention is set, purges stale users from the store.
func StartWorker(ctx context.Context, mgr *Manager, repo store.Repository, cfg WorkerConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("session worker started", "interval", interval, "idle_ttl", mgr.idleTTL, "retention", cfg.Retention)

		for {
			select {
			case <-ticker.C:
				sweep(ctx, mgr, repo, cfg.Retention)
			case <-ctx.Done():
				slog.Info("session worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func sweep(ctx context.Context, mgr *Manager, repo store.Repository, retention time.Duration) {
	if n := mgr.EvictIdle(timeNow()); n > 0 {
		slog.Info("evicted idle sessions", "count", n, "remaining", mgr.Len())
	}
	if retention <= 0 || repo == nil {
		return
	}
	removed, err := repo.CleanupStaleUsers(ctx, retention)
	if err != nil {
		slog.Error("session worker failed to clean up stale users", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("removed stale users", "count", removed)
	}
}
