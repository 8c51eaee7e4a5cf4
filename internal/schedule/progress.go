package schedule

import (
	"fmt"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
)

// WeekDifference counts the calendar weeks between the Monday on or before
// the plan start and today. An unstarted plan counts as starting today.
func WeekDifference(plan *domain.WorkoutPlan, today time.Time) int {
	start := today
	if plan.Start != nil {
		start = plan.Start.In(today.Location())
	}
	return WeeksBetween(PreviousMonday(start), today)
}

// IsCompleted reports whether diff lies past the plan's last calendar week.
func IsCompleted(plan *domain.WorkoutPlan, diff int) bool {
	if len(plan.Weeks) == 0 {
		return true
	}
	last := plan.Weeks[len(plan.Weeks)-1]
	return diff >= last.Position+last.Repeat
}

// CurrentWeekIndex returns the index of the week covering diff. Weeks must
// already be normalized. It panics when the plan is completed, since no
// week covers diff then.
func CurrentWeekIndex(plan *domain.WorkoutPlan, diff int) int {
	for i, w := range plan.Weeks {
		if w.Position+w.Repeat >= diff+1 {
			return i
		}
	}
	panic(fmt.Sprintf("schedule: no week covers week difference %d in plan %q", diff, plan.ID))
}
