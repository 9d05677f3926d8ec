package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toshitha/habithub/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

type mockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
	failures      int // fail this many calls, then succeed
	calls         int
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{store: make(map[string]*domain.Habit)}
}

func (m *mockHabitRepo) fail() error {
	m.calls++
	if m.simulateError != nil && (m.failures == 0 || m.calls <= m.failures) {
		return m.simulateError
	}
	return nil
}

func (m *mockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if err := m.fail(); err != nil {
		return err
	}
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *mockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	h, ok := m.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *mockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID {
			clone := *h
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (m *mockHabitRepo) Delete(ctx context.Context, id string) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(m.store, id)
	return nil
}

type mockLogRepo struct {
	store         map[string]*domain.HabitLog // key habitID|date
	simulateError error

	mu sync.Mutex
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{store: make(map[string]*domain.HabitLog)}
}

func logKey(habitID string, date time.Time) string {
	return habitID + "|" + domain.DateOnly(date).Format(domain.DateLayout)
}

func (m *mockLogRepo) EnsureLog(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	k := logKey(habitID, date)
	if existing, ok := m.store[k]; ok {
		clone := *existing
		return &clone, nil
	}
	log := domain.NewHabitLog(habitID, userID, date)
	log.ID = uuid.NewString()
	m.store[k] = log
	clone := *log
	return &clone, nil
}

func (m *mockLogRepo) MarkCompleted(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	k := logKey(habitID, date)
	if existing, ok := m.store[k]; ok {
		existing.Completed = true
		clone := *existing
		return &clone, nil
	}
	log := domain.NewHabitLog(habitID, userID, date)
	log.ID = uuid.NewString()
	log.Completed = true
	m.store[k] = log
	clone := *log
	return &clone, nil
}

func (m *mockLogRepo) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.HabitLog, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	var logs []*domain.HabitLog
	for _, l := range m.store {
		if l.UserID == userID && !l.LogDate.Before(from) && !l.LogDate.After(to) {
			clone := *l
			logs = append(logs, &clone)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].LogDate.Before(logs[j].LogDate)
	})
	return logs, nil
}

func (m *mockLogRepo) ListByHabit(ctx context.Context, habitID string) ([]*domain.HabitLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var logs []*domain.HabitLog
	for _, l := range m.store {
		if l.HabitID == habitID {
			clone := *l
			logs = append(logs, &clone)
		}
	}
	return logs, nil
}

func (m *mockLogRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store)
}

type mockWeeklyRepo struct {
	store         map[string]*domain.WeeklyPerformance // key userID|weekStart
	upserts       int
	simulateError error
}

func newMockWeeklyRepo() *mockWeeklyRepo {
	return &mockWeeklyRepo{store: make(map[string]*domain.WeeklyPerformance)}
}

func weekKey(userID string, weekStart time.Time) string {
	return userID + "|" + domain.DateOnly(weekStart).Format(domain.DateLayout)
}

func (m *mockWeeklyRepo) Upsert(ctx context.Context, perf *domain.WeeklyPerformance) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if perf.ID == "" {
		perf.ID = uuid.NewString()
	}
	m.upserts++
	clone := *perf
	m.store[weekKey(perf.UserID, perf.WeekStart)] = &clone
	return nil
}

func (m *mockWeeklyRepo) GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPerformance, error) {
	perf, ok := m.store[weekKey(userID, weekStart)]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	clone := *perf
	return &clone, nil
}

func (m *mockWeeklyRepo) ListByUser(ctx context.Context, userID string) ([]*domain.WeeklyPerformance, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var perfs []*domain.WeeklyPerformance
	for _, p := range m.store {
		if p.UserID == userID {
			clone := *p
			perfs = append(perfs, &clone)
		}
	}
	sort.Slice(perfs, func(i, j int) bool {
		return perfs[i].WeekStart.After(perfs[j].WeekStart)
	})
	return perfs, nil
}
