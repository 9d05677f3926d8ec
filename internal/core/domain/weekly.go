package domain

import (
	"errors"
	"time"
)

var (
	// ErrReportNotReady is returned when the weekly report is requested
	// before the rollup day. Handlers translate it into a placeholder
	// response rather than an error status.
	ErrReportNotReady = errors.New("weekly report not yet available")

	ErrReportNotFound = errors.New("weekly performance not found")
)

// StarScheme maps a completion percentage to a 0-5 star rating.
type StarScheme string

const (
	// StarSchemeAsymmetric rewards near-completion forgivingly while still
	// requiring near-perfection for the top tier.
	StarSchemeAsymmetric StarScheme = "asymmetric"
	// StarSchemeLinear is a flat floor(pct/20).
	StarSchemeLinear StarScheme = "linear"
)

// WeeklyPerformance is the finalized rollup for one user and one week.
// Rows are keyed by (user, week_start) and recomputed-and-overwritten on
// each rollup run.
type WeeklyPerformance struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	WeekStart time.Time `json:"week_start" db:"week_start"`
	WeekEnd   time.Time `json:"week_end" db:"week_end"`

	CompletionPct   float64 `json:"completion_pct" db:"completion_pct"`
	Stars           int     `json:"stars" db:"stars"`
	TotalHabits     int     `json:"total_habits" db:"total_habits"`
	CompletedHabits int     `json:"completed_habits" db:"completed_habits"`

	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
}

// Stars derives the star rating for a completion percentage under the
// given scheme. Unknown schemes fall back to asymmetric.
func Stars(pct float64, scheme StarScheme) int {
	if scheme == StarSchemeLinear {
		stars := int(pct / 20)
		if stars < 0 {
			stars = 0
		}
		if stars > 5 {
			stars = 5
		}
		return stars
	}

	// Thresholds are strict: a week sitting exactly on a boundary earns
	// the lower tier.
	switch {
	case pct > 95:
		return 5
	case pct > 85:
		return 4
	case pct > 70:
		return 3
	case pct > 50:
		return 2
	case pct > 25:
		return 1
	default:
		return 0
	}
}
