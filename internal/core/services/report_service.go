package services

import (
	"context"
	"time"

	"github.com/toshitha/habithub/internal/core/domain"
)

const daysPerWeek = 7

type ReportService struct {
	habitRepo  domain.HabitRepository
	logRepo    domain.HabitLogRepository
	weeklyRepo domain.WeeklyPerformanceRepository
	scheme     domain.StarScheme
}

func NewReportService(
	habitRepo domain.HabitRepository,
	logRepo domain.HabitLogRepository,
	weeklyRepo domain.WeeklyPerformanceRepository,
	scheme domain.StarScheme,
) *ReportService {
	return &ReportService{
		habitRepo:  habitRepo,
		logRepo:    logRepo,
		weeklyRepo: weeklyRepo,
		scheme:     scheme,
	}
}

// ComputeWeekly aggregates one user's week and persists the result,
// overwriting a previous rollup for the same week.
//
// The denominator is deliberately simple: every current habit is expected
// every day of the week, regardless of when it was created. Habits added
// mid-week therefore count at their full weight, and logs of habits
// deleted since are excluded.
func (s *ReportService) ComputeWeekly(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPerformance, error) {
	weekStart = domain.WeekStart(weekStart)
	weekEnd := domain.WeekEnd(weekStart)

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	habitIDs := make(map[string]bool, len(habits))
	for _, h := range habits {
		habitIDs[h.ID] = true
	}

	totalExpected := len(habits) * daysPerWeek

	completed := 0
	if totalExpected > 0 {
		logs, err := s.logRepo.ListByUserAndRange(ctx, userID, weekStart, weekEnd)
		if err != nil {
			return nil, err
		}
		for _, l := range logs {
			if l.Completed && habitIDs[l.HabitID] {
				completed++
			}
		}
	}

	pct := 0.0
	if totalExpected > 0 {
		pct = float64(completed) / float64(totalExpected) * 100
	}

	perf := &domain.WeeklyPerformance{
		UserID:          userID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		CompletionPct:   pct,
		Stars:           domain.Stars(pct, s.scheme),
		TotalHabits:     len(habits),
		CompletedHabits: completed,
		GeneratedAt:     time.Now().UTC(),
	}

	if err := s.weeklyRepo.Upsert(ctx, perf); err != nil {
		return nil, err
	}

	return perf, nil
}

// WeeklyReport returns the finalized report for the week containing now.
// Before the rollup day it returns ErrReportNotReady: partial mid-week
// percentages would mislead, so the facade shows a placeholder instead.
// On the rollup day the report is recomputed fresh, so completions made
// during Sunday are reflected.
func (s *ReportService) WeeklyReport(ctx context.Context, userID string, now time.Time) (*domain.WeeklyPerformance, error) {
	if !domain.IsRollupDay(now) {
		return nil, domain.ErrReportNotReady
	}

	return s.ComputeWeekly(ctx, userID, domain.WeekStart(now))
}

// History lists every finalized weekly rollup for the user, newest first.
func (s *ReportService) History(ctx context.Context, userID string) ([]*domain.WeeklyPerformance, error) {
	var perfs []*domain.WeeklyPerformance
	err := withReadRetry(ctx, func() error {
		var innerErr error
		perfs, innerErr = s.weeklyRepo.ListByUser(ctx, userID)
		return innerErr
	})
	return perfs, err
}
