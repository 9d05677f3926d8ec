package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/toshitha/habithub/internal/core/domain"
)

type PostgresWeeklyRepository struct {
	db *sqlx.DB
}

func NewPostgresWeeklyRepository(db *sqlx.DB) *PostgresWeeklyRepository {
	return &PostgresWeeklyRepository{db: db}
}

// Upsert writes the rollup keyed by (user_id, week_start). Rerunning the
// rollup for the same week overwrites the previous numbers.
func (r *PostgresWeeklyRepository) Upsert(ctx context.Context, perf *domain.WeeklyPerformance) error {
	if perf.ID == "" {
		perf.ID = uuid.NewString()
	}

	query := `
		INSERT INTO weekly_performance (
			id, user_id, week_start, week_end,
			completion_pct, stars, total_habits, completed_habits, generated_at
		) VALUES (
			:id, :user_id, :week_start, :week_end,
			:completion_pct, :stars, :total_habits, :completed_habits, :generated_at
		)
		ON CONFLICT (user_id, week_start)
		DO UPDATE SET
			week_end = EXCLUDED.week_end,
			completion_pct = EXCLUDED.completion_pct,
			stars = EXCLUDED.stars,
			total_habits = EXCLUDED.total_habits,
			completed_habits = EXCLUDED.completed_habits,
			generated_at = EXCLUDED.generated_at`

	if _, err := r.db.NamedExecContext(ctx, query, perf); err != nil {
		return fmt.Errorf("weekly upsert failed: %w", err)
	}

	return nil
}

func (r *PostgresWeeklyRepository) GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPerformance, error) {
	var perf domain.WeeklyPerformance
	query := `SELECT * FROM weekly_performance WHERE user_id = $1 AND week_start = $2`

	if err := r.db.GetContext(ctx, &perf, query, userID, domain.DateOnly(weekStart)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("weekly read failed: %w", err)
	}

	return &perf, nil
}

func (r *PostgresWeeklyRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeeklyPerformance, error) {
	perfs := []*domain.WeeklyPerformance{}

	query := `
		SELECT * FROM weekly_performance
		WHERE user_id = $1
		ORDER BY week_start DESC`

	if err := r.db.SelectContext(ctx, &perfs, query, userID); err != nil {
		return nil, fmt.Errorf("weekly list failed: %w", err)
	}

	return perfs, nil
}
