package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidTarget      = errors.New("target duration cannot be negative")
)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

// Habit is a standing user-defined activity to be repeated daily.
// It is a definition, never a per-day instance: day-level state lives in HabitLog.
type Habit struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description,omitempty" db:"description"`
	TargetMinutes *int      `json:"target_minutes,omitempty" db:"target_minutes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewHabit(userID, name, description string, targetMinutes *int) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrHabitNameTooLong
	}

	description = strings.TrimSpace(description)
	if len(description) > MaxDescLen {
		return nil, ErrHabitDescTooLong
	}

	if targetMinutes != nil && *targetMinutes < 0 {
		return nil, ErrInvalidTarget
	}

	now := time.Now().UTC()

	return &Habit{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Description:   description,
		TargetMinutes: targetMinutes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
