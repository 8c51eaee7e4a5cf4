package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoraaver/wlogger/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func assertSameDay(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.Equal(t, want.Format("2006-01-02"), got.Format("2006-01-02"))
}

func workout(id string, day domain.Day, exercises ...domain.PlannedExercise) domain.Workout {
	return domain.Workout{ID: id, DayOfWeek: day, Exercises: exercises}
}

// testPlan has three weeks: week 1 {Mon, Sun}, week 2 repeating twice
// {Tue, Thu, Fri} with auto-increments, week 3 {Wed, Sat}.
func testPlan(start time.Time) *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		ID:     "plan-1",
		Name:   "test plan",
		Status: domain.PlanInProgress,
		Start:  &start,
		Weeks: []domain.Week{
			{
				Position: 1,
				Workouts: []domain.Workout{
					workout("w1-mon", domain.Monday),
					workout("w1-sun", domain.Sunday),
				},
			},
			{
				Position: 2,
				Repeat:   2,
				Workouts: []domain.Workout{
					workout("w2-tue", domain.Tuesday, domain.PlannedExercise{
						ID: "ex-squat", Name: "Squat", Sets: 3, Repetitions: 5, Weight: 100, Unit: domain.Kilograms,
						AutoIncrement: &domain.AutoIncrement{Field: domain.IncrementSets, Amount: 2},
					}),
					workout("w2-thu", domain.Thursday, domain.PlannedExercise{
						ID: "ex-bench", Name: "Bench press", Sets: 3, Repetitions: 8, Weight: 60, Unit: domain.Kilograms,
						AutoIncrement: &domain.AutoIncrement{Field: domain.IncrementRepetitions, Amount: 1},
					}),
					workout("w2-fri", domain.Friday, domain.PlannedExercise{
						ID: "ex-deadlift", Name: "Deadlift", Sets: 2, Repetitions: 5, Weight: 120, Unit: domain.Kilograms,
						AutoIncrement: &domain.AutoIncrement{Field: domain.IncrementWeight, Amount: 2.5},
					}),
				},
			},
			{
				Position: 5,
				Workouts: []domain.Workout{
					workout("w3-wed", domain.Wednesday),
					workout("w3-sat", domain.Saturday),
				},
			},
		},
	}
}

func sets(n, reps int, weight float64) []domain.LoggedSet {
	out := make([]domain.LoggedSet, n)
	for i := range out {
		out[i] = domain.LoggedSet{Repetitions: reps, Weight: weight, Unit: domain.Kilograms}
	}
	return out
}

// memoryLogs filters logs the way the Mongo repository does.
type memoryLogs struct {
	logs  []*domain.WorkoutLog
	err   error
	calls int
}

func (m *memoryLogs) FindByWorkoutAndWindow(_ context.Context, workoutID string, from, to time.Time, allowedIDs []string) ([]*domain.WorkoutLog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	allowed := make(map[string]bool, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = true
	}
	var out []*domain.WorkoutLog
	for _, l := range m.logs {
		if l.WorkoutID != workoutID || !allowed[l.ID] {
			continue
		}
		if l.CreatedAt.Before(from) || l.CreatedAt.After(to) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
