package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toshitha/habithub/internal/core/domain"
)

type LogService struct {
	logRepo   domain.HabitLogRepository
	habitRepo domain.HabitRepository
	log       *zap.SugaredLogger
}

func NewLogService(logRepo domain.HabitLogRepository, habitRepo domain.HabitRepository, log *zap.SugaredLogger) *LogService {
	return &LogService{
		logRepo:   logRepo,
		habitRepo: habitRepo,
		log:       log,
	}
}

// MarkCompleted flips today's log for the habit to completed, creating the
// log first when the daily job has not materialized it yet. Completion is a
// one-way ratchet: a second call on the same day is a no-op.
func (s *LogService) MarkCompleted(ctx context.Context, userID, habitID string, date time.Time) (*domain.HabitLog, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	return s.logRepo.MarkCompleted(ctx, habitID, userID, date)
}

type HabitStatus struct {
	Habit     *domain.Habit `json:"habit"`
	Completed bool          `json:"completed"`
	LogID     string        `json:"log_id,omitempty"`
}

type TodayStatus struct {
	Date            time.Time      `json:"date"`
	TotalHabits     int            `json:"total_habits"`
	CompletedHabits int            `json:"completed_habits"`
	Habits          []*HabitStatus `json:"habits"`
}

// TodayStatus ensures today's log exists for every habit the user owns,
// then reads the completion flags back. This performs the daily
// materializer's job lazily for one user, so the caller never observes a
// habit without a log row. A habit whose log cannot be ensured is reported
// uncompleted rather than failing the whole status.
func (s *LogService) TodayStatus(ctx context.Context, userID string, today time.Time) (*TodayStatus, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &TodayStatus{
		Date:        domain.DateOnly(today),
		TotalHabits: len(habits),
		Habits:      make([]*HabitStatus, 0, len(habits)),
	}

	for _, h := range habits {
		hs := &HabitStatus{Habit: h}

		log, err := s.logRepo.EnsureLog(ctx, h.ID, userID, today)
		if err != nil {
			s.log.Warnw("failed to ensure today's log", "habit_id", h.ID, "error", err)
		} else {
			hs.Completed = log.Completed
			hs.LogID = log.ID
			if log.Completed {
				status.CompletedHabits++
			}
		}

		status.Habits = append(status.Habits, hs)
	}

	return status, nil
}
