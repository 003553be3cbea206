package scheduler

import (
	"context"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/cart"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartCleanupScheduler prunes carts that have not been touched for longer
// than the retention period.
type CartCleanupScheduler struct {
	cron      *cron.Cron
	pruner    cart.StalePruner
	schedule  string
	retention time.Duration
	now       func() time.Time
}

func NewCartCleanupScheduler(pruner cart.StalePruner, schedule string, retention time.Duration) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:      cron.New(),
		pruner:    pruner,
		schedule:  schedule,
		retention: retention,
		now:       time.Now,
	}
}

// Start registers the cleanup job and starts the cron runner.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			logger.Error("Scheduled cart cleanup failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"schedule":  s.schedule,
		"retention": s.retention.String(),
	})
	return nil
}

// RunOnce deletes every cart last updated before now minus the retention.
func (s *CartCleanupScheduler) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	logger.Info("Starting cart cleanup", map[string]interface{}{
		"cutoff": cutoff.Format(time.RFC3339),
	})

	removed, err := s.pruner.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	logger.Info("Cart cleanup finished", map[string]interface{}{
		"removed": removed,
	})
	return removed, nil
}

// Stop waits for a running job to finish.
func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Cart cleanup scheduler stopped")
}
