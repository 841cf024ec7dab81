package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiredSessionDeleter removes sessions past their expiry.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

const sweepTimeout = 30 * time.Second

// SweepSessions runs one cleanup pass.
func SweepSessions(ctx context.Context, store ExpiredSessionDeleter, logger *zap.Logger) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()
	n, err := store.DeleteExpired(ctx)
	if err != nil {
		logger.Warn("session sweep failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		logger.Info("expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

// StartSessionSweeper schedules SweepSessions on schedule. The caller stops
// the returned cron on shutdown.
func StartSessionSweeper(schedule string, store ExpiredSessionDeleter, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		_, _ = SweepSessions(context.Background(), store, logger)
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
