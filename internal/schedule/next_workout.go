package schedule

import (
	"sort"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
)

// Terminal results of NextWorkout.
const (
	StatusCompleted            = "Completed"
	StatusAllWorkoutsCompleted = "All workouts in the plan have been completed."
)

// Result is either a workout with the date it falls on or a terminal Status.
type Result struct {
	Workout   *domain.Workout
	Date      time.Time
	WeekIndex int
	Status    string

	repeat int
}

// Terminal reports whether the result carries a status instead of a workout.
func (r Result) Terminal() bool {
	return r.Workout == nil
}

// Repeating reports whether the workout belongs to a week with repeats,
// which is when its targets are eligible for auto-increment.
func (r Result) Repeating() bool {
	return r.Workout != nil && r.repeat > 0
}

// NextWorkout finds the next workout in plan on or after now. Weeks are
// normalized in place first; the returned Workout points into plan so
// callers can adjust its exercises.
func NextWorkout(plan *domain.WorkoutPlan, now time.Time) Result {
	NormalizePositions(plan.Weeks)

	diff := WeekDifference(plan, now)
	if IsCompleted(plan, diff) {
		return Result{Status: StatusCompleted, WeekIndex: -1}
	}

	idx := CurrentWeekIndex(plan, diff)
	week := &plan.Weeks[idx]
	repeatsRemaining := week.Repeat + week.Position - diff - 1

	workouts := byWeekday(week)
	today := domain.DayIndex(now.Weekday())
	for _, w := range workouts {
		if w.DayOfWeek.Index() >= today {
			return found(w, ProjectWeekday(now, w.DayOfWeek, 0), idx, week)
		}
	}
	if repeatsRemaining != 0 && len(workouts) > 0 {
		w := workouts[0]
		return found(w, ProjectWeekday(now, w.DayOfWeek, 1), idx, week)
	}

	for j := idx + 1; j < len(plan.Weeks); j++ {
		next := &plan.Weeks[j]
		workouts := byWeekday(next)
		if len(workouts) == 0 {
			continue
		}
		w := workouts[0]
		return found(w, ProjectWeekday(now, w.DayOfWeek, next.Position-1-diff), j, next)
	}

	return Result{Status: StatusAllWorkoutsCompleted, WeekIndex: -1}
}

func found(w *domain.Workout, date time.Time, idx int, week *domain.Week) Result {
	return Result{Workout: w, Date: date, WeekIndex: idx, repeat: week.Repeat}
}

// byWeekday returns pointers to the week's workouts ordered Monday to
// Sunday. Workouts sharing a weekday keep their stored order.
func byWeekday(week *domain.Week) []*domain.Workout {
	out := make([]*domain.Workout, len(week.Workouts))
	for i := range week.Workouts {
		out[i] = &week.Workouts[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DayOfWeek.Index() < out[j].DayOfWeek.Index()
	})
	return out
}
