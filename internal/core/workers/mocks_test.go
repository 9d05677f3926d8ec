package workers_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/toshitha/habithub/internal/core/domain"
)

type fakeUserLister struct {
	ids           []string
	simulateError error
}

func (f *fakeUserLister) ListIDs(ctx context.Context) ([]string, error) {
	if f.simulateError != nil {
		return nil, f.simulateError
	}
	return f.ids, nil
}

type fakeHabitLister struct {
	habits   map[string][]*domain.Habit // by user ID
	failFor  string
	listErrs int
}

func (f *fakeHabitLister) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if userID == f.failFor {
		f.listErrs++
		return nil, errors.New("storage unavailable")
	}
	return f.habits[userID], nil
}

type fakeLogEnsurer struct {
	mu      sync.Mutex
	ensured map[string]int // habitID|date -> call count
	failFor string         // habit ID that always errors
}

func newFakeLogEnsurer() *fakeLogEnsurer {
	return &fakeLogEnsurer{ensured: make(map[string]int)}
}

func (f *fakeLogEnsurer) EnsureLog(ctx context.Context, habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	if habitID == f.failFor {
		return nil, errors.New("storage unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := habitID + "|" + domain.DateOnly(date).Format(domain.DateLayout)
	f.ensured[key]++
	return &domain.HabitLog{HabitID: habitID, UserID: userID, LogDate: domain.DateOnly(date)}, nil
}

type fakeWeeklyComputer struct {
	computed   []string // user IDs in call order
	weekStarts []time.Time
	failFor    string
}

func (f *fakeWeeklyComputer) ComputeWeekly(ctx context.Context, userID string, weekStart time.Time) (*domain.WeeklyPerformance, error) {
	if userID == f.failFor {
		return nil, errors.New("storage unavailable")
	}
	f.computed = append(f.computed, userID)
	f.weekStarts = append(f.weekStarts, weekStart)
	return &domain.WeeklyPerformance{UserID: userID, WeekStart: weekStart}, nil
}

type fakeMetrics struct {
	materialized    int
	materializeErrs int
	rollups         int
	rollupErrs      int
	durationsByJob  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{durationsByJob: make(map[string]int)}
}

func (f *fakeMetrics) RecordLogMaterialized()  { f.materialized++ }
func (f *fakeMetrics) RecordMaterializeError() { f.materializeErrs++ }
func (f *fakeMetrics) RecordRollupWritten()    { f.rollups++ }
func (f *fakeMetrics) RecordRollupError()      { f.rollupErrs++ }
func (f *fakeMetrics) RecordJobDuration(job string, d time.Duration) {
	f.durationsByJob[job]++
}
