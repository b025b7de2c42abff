package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crucial707/qa-forum/internal/metrics"
)

// Counter returns row counts keyed by entity name. *repo.StatsRepo satisfies it.
type Counter interface {
	Counts(ctx context.Context) (map[string]int, error)
}

// queryTimeout bounds one refresh so a slow database cannot pile up runs.
const queryTimeout = 10 * time.Second

// Refresh reads the counts once and publishes them to the forum_entities gauge.
func Refresh(ctx context.Context, stats Counter) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	counts, err := stats.Counts(ctx)
	if err != nil {
		return err
	}
	metrics.SetEntityCounts(counts)
	return nil
}

// Run refreshes entity counts immediately and then on schedule (a cron spec,
// e.g. "@every 1m") until ctx is cancelled. A failed refresh is logged and
// retried on the next tick.
func Run(ctx context.Context, schedule string, stats Counter) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	job := func() {
		if err := Refresh(ctx, stats); err != nil {
			slog.Error("scheduler: refresh forum stats", "error", err)
		}
	}

	if _, err := c.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", schedule, err)
	}
	slog.Info("scheduler: started", "job", "forum_stats", "schedule", schedule)

	job()
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
