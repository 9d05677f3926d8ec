package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/toshitha/habithub/internal/core/domain"
)

type PostgresHabitLogRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitLogRepository(db *sqlx.DB) *PostgresHabitLogRepository {
	return &PostgresHabitLogRepository{db: db}
}

// EnsureLog creates the (habit, date) log row if it does not exist and
// returns the row either way. The unique constraint on (habit_id, log_date)
// arbitrates concurrent creators: the loser's insert affects zero rows and
// falls through to the read.
func (r *PostgresHabitLogRepository) EnsureLog(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	log := domain.NewHabitLog(habitID, userID, date)
	log.ID = uuid.NewString()

	query := `
		INSERT INTO habit_logs (id, habit_id, user_id, log_date, completed, created_at, updated_at)
		VALUES (:id, :habit_id, :user_id, :log_date, :completed, :created_at, :updated_at)
		ON CONFLICT (habit_id, log_date) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("ensure log insert failed: %w", err)
	}

	return r.getByHabitAndDate(ctx, habitID, log.LogDate)
}

// MarkCompleted upserts the (habit, date) log with completed=true. A log
// already marked completed is left untouched; the call still succeeds.
func (r *PostgresHabitLogRepository) MarkCompleted(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	log := domain.NewHabitLog(habitID, userID, date)
	log.ID = uuid.NewString()
	log.Completed = true

	query := `
		INSERT INTO habit_logs (id, habit_id, user_id, log_date, completed, created_at, updated_at)
		VALUES (:id, :habit_id, :user_id, :log_date, :completed, :created_at, :updated_at)
		ON CONFLICT (habit_id, log_date)
		DO UPDATE SET completed = TRUE, updated_at = NOW()
		WHERE habit_logs.completed = FALSE`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("mark completed failed: %w", err)
	}

	return r.getByHabitAndDate(ctx, habitID, log.LogDate)
}

func (r *PostgresHabitLogRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.HabitLog, error) {
	logs := []*domain.HabitLog{}

	query := `
		SELECT * FROM habit_logs
		WHERE user_id = $1
		  AND log_date >= $2
		  AND log_date <= $3
		ORDER BY log_date ASC, habit_id ASC`

	if err := r.db.SelectContext(ctx, &logs, query, userID, domain.DateOnly(from), domain.DateOnly(to)); err != nil {
		return nil, fmt.Errorf("range query failed: %w", err)
	}

	return logs, nil
}

func (r *PostgresHabitLogRepository) ListByHabit(ctx context.Context, habitID string) ([]*domain.HabitLog, error) {
	logs := []*domain.HabitLog{}

	query := `
		SELECT * FROM habit_logs
		WHERE habit_id = $1
		ORDER BY log_date ASC`

	if err := r.db.SelectContext(ctx, &logs, query, habitID); err != nil {
		return nil, fmt.Errorf("habit log query failed: %w", err)
	}

	return logs, nil
}

func (r *PostgresHabitLogRepository) getByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*domain.HabitLog, error) {
	var log domain.HabitLog
	query := `SELECT * FROM habit_logs WHERE habit_id = $1 AND log_date = $2`

	if err := r.db.GetContext(ctx, &log, query, habitID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLogNotFound
		}
		return nil, fmt.Errorf("log read-back failed: %w", err)
	}

	return &log, nil
}
