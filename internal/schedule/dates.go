package schedule

import (
	"math"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
)

const day = 24 * time.Hour

// WeeksBetween returns the whole weeks from d1's calendar date to d2's,
// rounded down. The result is negative when d2 precedes d1.
func WeeksBetween(d1, d2 time.Time) int {
	u1 := time.Date(d1.Year(), d1.Month(), d1.Day(), 0, 0, 0, 0, time.UTC)
	u2 := time.Date(d2.Year(), d2.Month(), d2.Day(), 0, 0, 0, 0, time.UTC)
	days := float64(u2.Sub(u1) / day)
	return int(math.Floor(days / 7))
}

// PreviousMonday rewinds d to the Monday of its Monday-first week, keeping
// the time of day. A Monday is returned unchanged.
func PreviousMonday(d time.Time) time.Time {
	return d.AddDate(0, 0, -domain.DayIndex(d.Weekday()))
}

// ProjectWeekday moves now forward by weeks whole weeks and then onto
// target within that week. With weeks == 0 and a target earlier in the week
// than now, the result lies in the past.
func ProjectWeekday(now time.Time, target domain.Day, weeks int) time.Time {
	offset := target.Index() - domain.DayIndex(now.Weekday())
	return now.AddDate(0, 0, weeks*7+offset)
}
