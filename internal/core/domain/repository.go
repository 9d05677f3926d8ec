package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrLogNotFound   = errors.New("habit log not found")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Delete permanently removes a habit. All of its logs go with it
	// (ON DELETE CASCADE at the storage layer).
	Delete(ctx context.Context, id string) error
}

type HabitLogRepository interface {
	// EnsureLog returns the log for (habitID, date), creating an
	// uncompleted one if absent. Implementations must resolve concurrent
	// creation through the storage layer's unique constraint
	// (insert-on-conflict-do-nothing), never check-then-insert.
	EnsureLog(ctx context.Context, habitID, userID string, date time.Time) (*HabitLog, error)

	// MarkCompleted upserts the log for (habitID, date) with completed=true.
	// Idempotent: marking an already-completed log succeeds without side effects.
	MarkCompleted(ctx context.Context, habitID, userID string, date time.Time) (*HabitLog, error)

	// ListByUserAndRange retrieves a user's logs with log_date in
	// [from, to] inclusive, ascending by date.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*HabitLog, error)

	// ListByHabit retrieves every log of a single habit, ascending by date.
	ListByHabit(ctx context.Context, habitID string) ([]*HabitLog, error)
}

type WeeklyPerformanceRepository interface {
	// Upsert writes the rollup for (user, week_start), overwriting a
	// previous run for the same week.
	Upsert(ctx context.Context, perf *WeeklyPerformance) error

	// GetByUserAndWeek retrieves a finalized rollup, ErrReportNotFound if absent.
	GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*WeeklyPerformance, error)

	// ListByUser retrieves all of a user's rollups, most recent week first.
	ListByUser(ctx context.Context, userID string) ([]*WeeklyPerformance, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ListIDs returns the ids of every registered user. Used by the
	// background jobs to fan out per-user work.
	ListIDs(ctx context.Context) ([]string, error)
}
