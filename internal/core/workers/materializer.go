package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/toshitha/habithub/internal/core/domain"
)

type UserLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type HabitLister interface {
	ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error)
}

type LogEnsurer interface {
	EnsureLog(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error)
}

type JobMetrics interface {
	RecordLogMaterialized()
	RecordMaterializeError()
	RecordRollupWritten()
	RecordRollupError()
	RecordJobDuration(job string, d time.Duration)
}

// Materializer makes sure every habit of every user has exactly one log
// row for the day. It is idempotent: EnsureLog resolves duplicates at the
// storage layer, so reruns and races with a user's today-status request
// are harmless.
type Materializer struct {
	users   UserLister
	habits  HabitLister
	logs    LogEnsurer
	metrics JobMetrics
	log     *zap.SugaredLogger
}

func NewMaterializer(users UserLister, habits HabitLister, logs LogEnsurer, metrics JobMetrics, log *zap.SugaredLogger) *Materializer {
	return &Materializer{
		users:   users,
		habits:  habits,
		logs:    logs,
		metrics: metrics,
		log:     log,
	}
}

// RunOnce materializes the logs for date. One habit failing never stops
// the batch; failures are logged, counted, and summarized in the returned
// error.
func (m *Materializer) RunOnce(ctx context.Context, date time.Time) error {
	start := time.Now()
	defer func() {
		m.metrics.RecordJobDuration("materializer", time.Since(start))
	}()

	date = domain.DateOnly(date)

	userIDs, err := m.users.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("materializer: listing users failed: %w", err)
	}

	failures := 0
	for _, userID := range userIDs {
		habits, err := m.habits.ListByUserID(ctx, userID)
		if err != nil {
			m.log.Errorw("materializer: listing habits failed", "user_id", userID, "error", err)
			m.metrics.RecordMaterializeError()
			failures++
			continue
		}

		for _, h := range habits {
			if _, err := m.logs.EnsureLog(ctx, h.ID, userID, date); err != nil {
				m.log.Errorw("materializer: ensure log failed",
					"habit_id", h.ID, "user_id", userID, "error", err)
				m.metrics.RecordMaterializeError()
				failures++
				continue
			}
			m.metrics.RecordLogMaterialized()
		}
	}

	m.log.Infow("daily materialization finished",
		"date", date.Format(domain.DateLayout),
		"users", len(userIDs),
		"failures", failures,
	)

	if failures > 0 {
		return fmt.Errorf("materializer: %d item(s) failed", failures)
	}
	return nil
}
