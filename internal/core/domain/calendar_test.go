package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/toshitha/habithub/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, time.March, 14, 23, 59, 58, 123, time.UTC)
	assert.Equal(t, date(2025, time.March, 14), domain.DateOnly(ts))
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2025, time.March, 10), date(2025, time.March, 10)},
		{"wednesday maps back to monday", date(2025, time.March, 12), date(2025, time.March, 10)},
		{"sunday belongs to the preceding monday", date(2025, time.March, 16), date(2025, time.March, 10)},
		{"time of day is ignored", time.Date(2025, time.March, 13, 18, 30, 0, 0, time.UTC), date(2025, time.March, 10)},
		{"month boundary", date(2025, time.April, 1), date(2025, time.March, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.WeekStart(tt.in))
		})
	}
}

func TestWeekEnd(t *testing.T) {
	end := domain.WeekEnd(date(2025, time.March, 10))
	assert.Equal(t, date(2025, time.March, 16), end)
	assert.Equal(t, time.Sunday, end.Weekday())
}

func TestIsRollupDay(t *testing.T) {
	assert.True(t, domain.IsRollupDay(date(2025, time.March, 16)))
	assert.False(t, domain.IsRollupDay(date(2025, time.March, 15)))
	assert.False(t, domain.IsRollupDay(date(2025, time.March, 10)))
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 14, 22, 0, 0, 0, time.UTC)
	assert.True(t, domain.SameDate(morning, evening))
	assert.False(t, domain.SameDate(morning, morning.AddDate(0, 0, 1)))
}
