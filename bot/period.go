package bot

import (
	"time"

	"github.com/mahdizzzz/finance-app/llm"
)

// periodWindow maps a period tag plus the current local instant to a
// half-open [start, end) window. A zero bound means unbounded on that side
// (all_time). Every handler that filters by period goes through here.
func periodWindow(period string, now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case llm.PeriodToday:
		return midnight, midnight.AddDate(0, 0, 1)
	case llm.PeriodWeek:
		return midnight.AddDate(0, 0, -6), midnight.AddDate(0, 0, 1)
	case llm.PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}
