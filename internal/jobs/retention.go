package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"textinsight/internal/store"
)

// DefaultRetentionSchedule runs the pruner daily at 03:00.
const DefaultRetentionSchedule = "0 3 * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ParseSchedule parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(expr string) (cron.Schedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = DefaultRetentionSchedule
	}
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", expr, err)
	}
	return sched, nil
}

// RetentionPruner periodically deletes analyses older than maxAge.
type RetentionPruner struct {
	store    store.Pruner
	maxAge   time.Duration
	schedule cron.Schedule
	logger   *slog.Logger
	now      func() time.Time
}

// NewRetentionPruner creates a pruner keeping the last days of analyses.
func NewRetentionPruner(pruner store.Pruner, days int, schedule string, logger *slog.Logger) (*RetentionPruner, error) {
	if pruner == nil {
		return nil, errors.New("retention requires a store that supports pruning")
	}
	if days <= 0 {
		return nil, fmt.Errorf("retention days must be positive, got %d", days)
	}
	sched, err := ParseSchedule(schedule)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionPruner{
		store:    pruner,
		maxAge:   time.Duration(days) * 24 * time.Hour,
		schedule: sched,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start runs the pruner on its schedule until ctx is cancelled.
func (r *RetentionPruner) Start(ctx context.Context) {
	r.logger.Info("retention pruner started", "max_age", r.maxAge)

	for {
		now := r.now()
		next := r.schedule.Next(now)
		r.logger.Debug("next retention run", "at", next)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("retention pruner stopped")
			return
		case <-timer.C:
			if _, err := r.PruneOnce(ctx); err != nil {
				r.logger.Error("retention run failed", "error", err)
			}
		}
	}
}

// PruneOnce deletes analyses older than the retention window.
func (r *RetentionPruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := r.now().Add(-r.maxAge)
	deleted, err := r.store.DeleteAnalysesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		r.logger.Info("pruned old analyses", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
