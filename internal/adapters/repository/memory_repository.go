package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toshitha/habithub/internal/core/domain"
)

// In-memory adapters. They back the unit tests and local development
// without postgres, and mirror the relational semantics, including the
// at-most-one-log-per-(habit,date) guarantee (held under the mutex).

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.store, id)
	return nil
}

type logKey struct {
	habitID string
	date    string
}

type InMemoryHabitLogRepository struct {
	store map[logKey]*domain.HabitLog

	// Cascade wiring: deleting a habit in the habit repo does not touch
	// this store, so tests delete logs explicitly via DeleteByHabit.
	mu sync.RWMutex
}

func NewInMemoryHabitLogRepository() *InMemoryHabitLogRepository {
	return &InMemoryHabitLogRepository{
		store: make(map[logKey]*domain.HabitLog),
	}
}

func key(habitID string, date time.Time) logKey {
	return logKey{habitID: habitID, date: domain.DateOnly(date).Format(domain.DateLayout)}
}

func (r *InMemoryHabitLogRepository) EnsureLog(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(habitID, date)
	if existing, ok := r.store[k]; ok {
		clone := *existing
		return &clone, nil
	}

	log := domain.NewHabitLog(habitID, userID, date)
	log.ID = uuid.NewString()
	r.store[k] = log

	clone := *log
	return &clone, nil
}

func (r *InMemoryHabitLogRepository) MarkCompleted(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(habitID, date)
	if existing, ok := r.store[k]; ok {
		if !existing.Completed {
			existing.Completed = true
			existing.UpdatedAt = time.Now().UTC()
		}
		clone := *existing
		return &clone, nil
	}

	log := domain.NewHabitLog(habitID, userID, date)
	log.ID = uuid.NewString()
	log.Completed = true
	r.store[k] = log

	clone := *log
	return &clone, nil
}

func (r *InMemoryHabitLogRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.HabitLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	var logs []*domain.HabitLog
	for _, l := range r.store {
		if l.UserID != userID {
			continue
		}
		if l.LogDate.Before(from) || l.LogDate.After(to) {
			continue
		}
		clone := *l
		logs = append(logs, &clone)
	}

	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].LogDate.Equal(logs[j].LogDate) {
			return logs[i].LogDate.Before(logs[j].LogDate)
		}
		return logs[i].HabitID < logs[j].HabitID
	})

	return logs, nil
}

func (r *InMemoryHabitLogRepository) ListByHabit(ctx context.Context, habitID string) ([]*domain.HabitLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var logs []*domain.HabitLog
	for _, l := range r.store {
		if l.HabitID == habitID {
			clone := *l
			logs = append(logs, &clone)
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].LogDate.Before(logs[j].LogDate)
	})

	return logs, nil
}

// DeleteByHabit mimics the relational ON DELETE CASCADE for tests.
func (r *InMemoryHabitLogRepository) DeleteByHabit(habitID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, l := range r.store {
		if l.HabitID == habitID {
			delete(r.store, k)
		}
	}
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type InMemoryWeeklyRepository struct {
	store map[string]map[string]*domain.WeeklyPerformance

	mu sync.RWMutex
}

func NewInMemoryWeeklyRepository() *InMemoryWeeklyRepository {
	return &InMemoryWeeklyRepository{
		store: make(map[string]map[string]*domain.WeeklyPerformance),
	}
}

func (r *InMemoryWeeklyRepository) Upsert(ctx context.Context, perf *domain.WeeklyPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if perf.ID == "" {
		perf.ID = uuid.NewString()
	}

	weeks, ok := r.store[perf.UserID]
	if !ok {
		weeks = make(map[string]*domain.WeeklyPerformance)
		r.store[perf.UserID] = weeks
	}

	clone := *perf
	weeks[domain.DateOnly(perf.WeekStart).Format(domain.DateLayout)] = &clone
	return nil
}

func (r *InMemoryWeeklyRepository) GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	weeks, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}

	perf, ok := weeks[domain.DateOnly(weekStart).Format(domain.DateLayout)]
	if !ok {
		return nil, domain.ErrReportNotFound
	}

	clone := *perf
	return &clone, nil
}

func (r *InMemoryWeeklyRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeeklyPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var perfs []*domain.WeeklyPerformance
	for _, p := range r.store[userID] {
		clone := *p
		perfs = append(perfs, &clone)
	}

	sort.Slice(perfs, func(i, j int) bool {
		return perfs[i].WeekStart.After(perfs[j].WeekStart)
	})

	return perfs, nil
}
