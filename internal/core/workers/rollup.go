package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/toshitha/habithub/internal/core/domain"
)

type WeeklyComputer interface {
	ComputeWeekly(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPerformance, error)
}

// RollupWorker finalizes the weekly performance of every user. The
// scheduler fires it on the rollup day; a rerun overwrites the same week's
// rows, so restarts are safe.
type RollupWorker struct {
	users   UserLister
	reports WeeklyComputer
	metrics JobMetrics
	log     *zap.SugaredLogger
}

func NewRollupWorker(users UserLister, reports WeeklyComputer, metrics JobMetrics, log *zap.SugaredLogger) *RollupWorker {
	return &RollupWorker{
		users:   users,
		reports: reports,
		metrics: metrics,
		log:     log,
	}
}

// RunOnce rolls up the week containing now for all users. Per-user
// failures are logged and counted without stopping the batch.
func (w *RollupWorker) RunOnce(ctx context.Context, now time.Time) error {
	start := time.Now()
	defer func() {
		w.metrics.RecordJobDuration("rollup", time.Since(start))
	}()

	weekStart := domain.WeekStart(now)

	userIDs, err := w.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("rollup: listing users failed: %w", err)
	}

	failures := 0
	for _, userID := range userIDs {
		if _, err := w.reports.ComputeWeekly(ctx, userID, weekStart); err != nil {
			w.log.Errorw("rollup: weekly computation failed", "user_id", userID, "error", err)
			w.metrics.RecordRollupError()
			failures++
			continue
		}
		w.metrics.RecordRollupWritten()
	}

	w.log.Infow("weekly rollup finished",
		"week_start", weekStart.Format(domain.DateLayout),
		"users", len(userIDs),
		"failures", failures,
	)

	if failures > 0 {
		return fmt.Errorf("rollup: %d user(s) failed", failures)
	}
	return nil
}
