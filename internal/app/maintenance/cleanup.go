package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gastropro/gastropro/internal/services"
	"github.com/gastropro/gastropro/pkg/logger"
)

const (
	defaultCleanupSpec = "@hourly"
	defaultSweepSpec   = "@every 30m"
)

// Cleaner coordinates background maintenance: purging expired and stale
// dismissed notifications, and sweeping the inventory for missed stock alerts.
type Cleaner struct {
	notifications *services.NotificationService
	inventory     services.InventoryLister
	cron          *cron.Cron
	log           *zap.Logger
	enabled       bool

	cleanupSchedule string
	sweepSchedule   string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithCleanupSchedule overrides the cron specification for notification cleanup.
func WithCleanupSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.cleanupSchedule = spec
		}
	}
}

// WithSweepSchedule overrides the cron specification for the inventory sweep.
func WithSweepSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.sweepSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil dependency
// results in the corresponding job being skipped.
func NewCleaner(notifications *services.NotificationService, inventory services.InventoryLister, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		notifications:   notifications,
		inventory:       inventory,
		cleanupSchedule: defaultCleanupSpec,
		sweepSchedule:   defaultSweepSpec,
		log:             logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	cleaner.enabled = cleaner.notifications != nil

	return cleaner
}

// Start registers the maintenance jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if !c.enabled {
		return nil
	}

	if _, err := c.cron.AddFunc(c.cleanupSchedule, func() {
		ctx := context.Background()
		if _, err := c.notifications.CleanupExpired(ctx); err != nil {
			c.log.Warn("notification cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	if c.inventory != nil {
		if _, err := c.cron.AddFunc(c.sweepSchedule, func() {
			ctx := context.Background()
			if _, err := c.notifications.CheckInventoryAndCreateAlerts(ctx, c.inventory); err != nil {
				c.log.Warn("inventory sweep failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured maintenance routines sequentially. Used in
// tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.notifications == nil {
		return nil
	}

	var errs error

	if _, err := c.notifications.CleanupExpired(ctx); err != nil {
		errs = multierr.Append(errs, err)
	}

	if c.inventory != nil {
		if _, err := c.notifications.CheckInventoryAndCreateAlerts(ctx, c.inventory); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
