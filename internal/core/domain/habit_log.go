package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidLog = errors.New("invalid habit log data")

// HabitLog records whether a given habit was completed on a given calendar date.
// Invariant: at most one log per (habit, date). The storage layer enforces this
// with a unique constraint; creation always goes through insert-on-conflict.
type HabitLog struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	LogDate   time.Time `json:"log_date" db:"log_date"`
	Completed bool      `json:"completed" db:"completed"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewHabitLog(habitID, userID string, date time.Time) *HabitLog {
	now := time.Now().UTC()

	return &HabitLog{
		HabitID:   habitID,
		UserID:    userID,
		LogDate:   DateOnly(date),
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (l *HabitLog) Validate() error {
	if strings.TrimSpace(l.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(l.UserID) == "" {
		return errors.New("user_id is required")
	}
	if l.LogDate.IsZero() {
		return errors.New("log_date is required")
	}
	return nil
}
