package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lucassmelendez/ct-backend/internal/cache"
	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/logger"
)

const (
	defaultBindingSpec = "@every 1m"
	defaultCacheSpec   = "@every 5m"
)

// Cleaner coordinates background maintenance: sweeping expired binding codes
// and dropping stale entries from the in-process cache tier.
type Cleaner struct {
	bindings *services.BindingService
	cache    *cache.Manager
	cron     *cron.Cron
	log      *zap.Logger

	bindingSchedule string
	cacheSchedule   string
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

// WithBindingSchedule overrides the cron schedule for the binding-code sweep.
func WithBindingSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.bindingSchedule = spec
		}
	}
}

// WithCacheSchedule overrides the cron schedule for the cache sweep.
func WithCacheSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.cacheSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil dependency
// results in the corresponding sweep being skipped.
func NewCleaner(bindings *services.BindingService, cacheManager *cache.Manager, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		bindings:        bindings,
		cache:           cacheManager,
		bindingSchedule: defaultBindingSpec,
		cacheSchedule:   defaultCacheSpec,
		log:             logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the sweeps with the cron scheduler and launches it when at
// least one is enabled.
func (c *Cleaner) Start() error {
	if c.bindings == nil && c.cache == nil {
		return nil
	}

	if c.bindings != nil {
		if _, err := c.cron.AddFunc(c.bindingSchedule, func() {
			if removed := c.bindings.SweepExpired(); removed > 0 {
				c.log.Debug("binding codes swept", zap.Int("removed", removed))
			}
		}); err != nil {
			return err
		}
	}

	if c.cache != nil {
		if _, err := c.cron.AddFunc(c.cacheSchedule, func() {
			if removed := c.cache.Sweep(); removed > 0 {
				c.log.Debug("cache entries swept", zap.Int("removed", removed))
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

// RunOnce executes all configured sweeps sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce() (removed int) {
	if c.bindings != nil {
		removed += c.bindings.SweepExpired()
	}
	if c.cache != nil {
		removed += c.cache.Sweep()
	}
	return removed
}
