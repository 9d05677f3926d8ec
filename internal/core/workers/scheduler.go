package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toshitha/habithub/internal/core/domain"
)

type DailyJob interface {
	RunOnce(ctx context.Context, date time.Time) error
}

// Scheduler drives the background jobs from the process lifecycle. It
// polls a ticker and fires jobs off calendar predicates instead of cron
// expressions: the materializer when the calendar date changes (and once
// at startup), the rollup on the rollup day, each at most once per day.
// Both jobs are idempotent, so a restart mid-day simply retries.
type Scheduler struct {
	materializer DailyJob
	rollup       DailyJob
	tick         time.Duration
	log          *zap.SugaredLogger

	// now is swappable for tests.
	now func() time.Time

	lastMaterialized time.Time
	lastRollup       time.Time
}

func NewScheduler(materializer, rollup DailyJob, tick time.Duration, log *zap.SugaredLogger) *Scheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Scheduler{
		materializer: materializer,
		rollup:       rollup,
		tick:         tick,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start blocks until ctx is cancelled. Call it from its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Infow("scheduler started", "tick", s.tick.String())

	s.runDue(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

func (s *Scheduler) runDue(ctx context.Context) {
	today := domain.DateOnly(s.now())

	if !today.Equal(s.lastMaterialized) {
		if err := s.materializer.RunOnce(ctx, today); err != nil {
			s.log.Errorw("daily materialization reported failures", "error", err)
		}
		// Mark the day handled even on partial failure: every failed
		// item was logged, and EnsureLog keeps later user requests safe.
		s.lastMaterialized = today
	}

	if domain.IsRollupDay(today) && !today.Equal(s.lastRollup) {
		if err := s.rollup.RunOnce(ctx, today); err != nil {
			s.log.Errorw("weekly rollup reported failures", "error", err)
		}
		s.lastRollup = today
	}
}
