package schedule

import (
	"context"
	"math"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
)

// LogFinder looks up workout logs recorded for a workout within a window.
type LogFinder interface {
	FindByWorkoutAndWindow(ctx context.Context, workoutID string, from, to time.Time, allowedIDs []string) ([]*domain.WorkoutLog, error)
}

// Progression raises exercise targets when the same workout one week
// earlier met every target.
type Progression struct {
	logs LogFinder
}

func NewProgression(logs LogFinder) *Progression {
	return &Progression{logs: logs}
}

// PreviousCycleWindow returns the bounds of the local calendar day exactly
// one week before now.
func PreviousCycleWindow(now time.Time) (time.Time, time.Time) {
	d := now.AddDate(0, 0, -7)
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Millisecond)
	return from, to
}

// ApplyIncrements updates workout's exercises in place from the last log
// of the previous cycle among candidateLogIDs. It reports whether any
// target changed.
func (p *Progression) ApplyIncrements(ctx context.Context, workout *domain.Workout, now time.Time, candidateLogIDs []string) (bool, error) {
	from, to := PreviousCycleWindow(now)
	logs, err := p.logs.FindByWorkoutAndWindow(ctx, workout.ID, from, to, candidateLogIDs)
	if err != nil {
		return false, err
	}
	if len(logs) == 0 {
		return false, nil
	}

	last := logs[len(logs)-1]
	changed := false
	for _, logged := range last.Exercises {
		for i := range workout.Exercises {
			planned := &workout.Exercises[i]
			if planned.ID == "" || planned.ID != logged.ExerciseID || planned.AutoIncrement == nil {
				continue
			}
			if GoalMet(planned, &logged) && increment(planned, &logged) {
				changed = true
			}
		}
	}
	return changed, nil
}

// GoalMet reports whether logged reached every target of planned.
func GoalMet(planned *domain.PlannedExercise, logged *domain.LoggedExercise) bool {
	if len(logged.Sets) < planned.Sets {
		return false
	}
	for _, set := range logged.Sets {
		if set.Repetitions < planned.Repetitions || set.Weight < planned.Weight {
			return false
		}
	}
	return true
}

func increment(planned *domain.PlannedExercise, logged *domain.LoggedExercise) bool {
	inc := planned.AutoIncrement
	// plans stored before validation may carry zero target sets
	if len(logged.Sets) == 0 {
		return false
	}
	lastSet := logged.Sets[len(logged.Sets)-1]

	switch inc.Field {
	case domain.IncrementSets:
		next := len(logged.Sets) + wholeAmount(inc.Amount)
		if next > planned.Sets {
			planned.Sets = next
			return true
		}
	case domain.IncrementRepetitions:
		next := lastSet.Repetitions + wholeAmount(inc.Amount)
		if next > planned.Repetitions {
			planned.Repetitions = next
			return true
		}
	case domain.IncrementWeight:
		next := lastSet.Weight + inc.Amount
		if next > planned.Weight {
			planned.Weight = next
			return true
		}
	}
	return false
}

func wholeAmount(amount float64) int {
	return int(math.Round(amount))
}
