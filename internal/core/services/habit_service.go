package services

import (
	"context"

	"github.com/toshitha/habithub/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID        string
	Name          string
	Description   string
	TargetMinutes *int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Description, input.TargetMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	var habits []*domain.Habit
	err := withReadRetry(ctx, func() error {
		var innerErr error
		habits, innerErr = s.repo.ListByUserID(ctx, userID)
		return innerErr
	})
	return habits, err
}

// Delete removes a habit and, through the storage cascade, all of its logs.
// A habit owned by someone else is reported as not found, never as forbidden.
func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return err
	}

	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	return s.repo.Delete(ctx, habitID)
}
