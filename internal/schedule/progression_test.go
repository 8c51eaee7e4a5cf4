package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoraaver/wlogger/internal/domain"
)

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.Local)
}

func TestPreviousCycleWindow(t *testing.T) {
	from, to := PreviousCycleWindow(at(2021, 4, 27, 18, 45))

	assert.True(t, from.Equal(at(2021, 4, 20, 0, 0)))
	assert.True(t, to.Equal(at(2021, 4, 21, 0, 0).Add(-time.Millisecond)))
}

func TestApplyIncrements(t *testing.T) {
	// plan started Monday 2021-04-05, week two repeats through 2021-05-02
	tests := []struct {
		name        string
		workoutID   string
		logged      domain.LoggedExercise
		loggedAt    time.Time
		now         time.Time
		wantChanged bool
		want        func(t *testing.T, ex domain.PlannedExercise)
	}{
		{
			name:        "sets",
			workoutID:   "w2-tue",
			logged:      domain.LoggedExercise{ExerciseID: "ex-squat", Sets: sets(3, 5, 100)},
			loggedAt:    at(2021, 4, 20, 19, 0),
			now:         at(2021, 4, 27, 8, 0),
			wantChanged: true,
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 5, ex.Sets)
				assert.Equal(t, 5, ex.Repetitions)
				assert.Equal(t, 100.0, ex.Weight)
			},
		},
		{
			name:        "repetitions",
			workoutID:   "w2-thu",
			logged:      domain.LoggedExercise{ExerciseID: "ex-bench", Sets: sets(3, 8, 60)},
			loggedAt:    at(2021, 4, 22, 7, 30),
			now:         at(2021, 4, 29, 20, 0),
			wantChanged: true,
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 3, ex.Sets)
				assert.Equal(t, 9, ex.Repetitions)
			},
		},
		{
			name:        "weight",
			workoutID:   "w2-fri",
			logged:      domain.LoggedExercise{ExerciseID: "ex-deadlift", Sets: sets(2, 5, 120)},
			loggedAt:    at(2021, 4, 23, 0, 0),
			now:         at(2021, 4, 30, 12, 0),
			wantChanged: true,
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 122.5, ex.Weight)
			},
		},
		{
			name:      "weight from last logged set",
			workoutID: "w2-fri",
			logged: domain.LoggedExercise{ExerciseID: "ex-deadlift", Sets: []domain.LoggedSet{
				{Repetitions: 5, Weight: 120},
				{Repetitions: 5, Weight: 125},
			}},
			loggedAt:    at(2021, 4, 23, 18, 0),
			now:         at(2021, 4, 30, 12, 0),
			wantChanged: true,
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 127.5, ex.Weight)
			},
		},
		{
			name:      "one set short on repetitions",
			workoutID: "w2-thu",
			logged: domain.LoggedExercise{ExerciseID: "ex-bench", Sets: []domain.LoggedSet{
				{Repetitions: 8, Weight: 60},
				{Repetitions: 7, Weight: 60},
				{Repetitions: 8, Weight: 60},
			}},
			loggedAt: at(2021, 4, 22, 18, 0),
			now:      at(2021, 4, 29, 18, 0),
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 8, ex.Repetitions)
			},
		},
		{
			name:      "too few sets",
			workoutID: "w2-tue",
			logged:    domain.LoggedExercise{ExerciseID: "ex-squat", Sets: sets(2, 5, 100)},
			loggedAt:  at(2021, 4, 20, 18, 0),
			now:       at(2021, 4, 27, 18, 0),
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 3, ex.Sets)
			},
		},
		{
			name:      "lighter weight",
			workoutID: "w2-fri",
			logged:    domain.LoggedExercise{ExerciseID: "ex-deadlift", Sets: sets(2, 5, 117.5)},
			loggedAt:  at(2021, 4, 23, 18, 0),
			now:       at(2021, 4, 30, 18, 0),
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 120.0, ex.Weight)
			},
		},
		{
			name:      "log outside the window",
			workoutID: "w2-tue",
			logged:    domain.LoggedExercise{ExerciseID: "ex-squat", Sets: sets(3, 5, 100)},
			loggedAt:  at(2021, 4, 21, 0, 0),
			now:       at(2021, 4, 27, 18, 0),
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 3, ex.Sets)
			},
		},
		{
			name:      "different exercise identity",
			workoutID: "w2-tue",
			logged:    domain.LoggedExercise{ExerciseID: "ex-other", Sets: sets(3, 5, 100)},
			loggedAt:  at(2021, 4, 20, 18, 0),
			now:       at(2021, 4, 27, 18, 0),
			want: func(t *testing.T, ex domain.PlannedExercise) {
				assert.Equal(t, 3, ex.Sets)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testPlan(at(2021, 4, 5, 9, 0))
			w, _ := plan.FindWorkout(tt.workoutID)
			require.NotNil(t, w)

			logs := &memoryLogs{logs: []*domain.WorkoutLog{{
				ID:        "log-1",
				WorkoutID: tt.workoutID,
				CreatedAt: tt.loggedAt,
				Exercises: []domain.LoggedExercise{tt.logged},
			}}}

			changed, err := NewProgression(logs).ApplyIncrements(context.Background(), w, tt.now, []string{"log-1"})

			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			tt.want(t, w.Exercises[0])
		})
	}
}

func TestApplyIncrementsUsesLastLog(t *testing.T) {
	plan := testPlan(at(2021, 4, 5, 9, 0))
	w, _ := plan.FindWorkout("w2-fri")

	logs := &memoryLogs{logs: []*domain.WorkoutLog{
		{ID: "early", WorkoutID: "w2-fri", CreatedAt: at(2021, 4, 23, 7, 0),
			Exercises: []domain.LoggedExercise{{ExerciseID: "ex-deadlift", Sets: sets(2, 5, 130)}}},
		{ID: "late", WorkoutID: "w2-fri", CreatedAt: at(2021, 4, 23, 19, 0),
			Exercises: []domain.LoggedExercise{{ExerciseID: "ex-deadlift", Sets: sets(2, 4, 120)}}},
	}}

	changed, err := NewProgression(logs).ApplyIncrements(context.Background(), w, at(2021, 4, 30, 12, 0), []string{"early", "late"})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 120.0, w.Exercises[0].Weight)
}

func TestApplyIncrementsIgnoresForeignLogs(t *testing.T) {
	plan := testPlan(at(2021, 4, 5, 9, 0))
	w, _ := plan.FindWorkout("w2-tue")

	logs := &memoryLogs{logs: []*domain.WorkoutLog{
		{ID: "someone-else", WorkoutID: "w2-tue", CreatedAt: at(2021, 4, 20, 18, 0),
			Exercises: []domain.LoggedExercise{{ExerciseID: "ex-squat", Sets: sets(3, 5, 100)}}},
	}}

	changed, err := NewProgression(logs).ApplyIncrements(context.Background(), w, at(2021, 4, 27, 18, 0), []string{"mine"})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 3, w.Exercises[0].Sets)
}

func TestApplyIncrementsWithoutAutoIncrement(t *testing.T) {
	w := &domain.Workout{ID: "w", DayOfWeek: domain.Monday, Exercises: []domain.PlannedExercise{
		{ID: "ex", Name: "Row", Sets: 3, Repetitions: 10, Weight: 40},
	}}
	logs := &memoryLogs{logs: []*domain.WorkoutLog{
		{ID: "l", WorkoutID: "w", CreatedAt: at(2021, 4, 19, 18, 0),
			Exercises: []domain.LoggedExercise{{ExerciseID: "ex", Sets: sets(5, 12, 50)}}},
	}}

	changed, err := NewProgression(logs).ApplyIncrements(context.Background(), w, at(2021, 4, 26, 18, 0), []string{"l"})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.PlannedExercise{ID: "ex", Name: "Row", Sets: 3, Repetitions: 10, Weight: 40}, w.Exercises[0])
}

func TestApplyIncrementsPropagatesStoreErrors(t *testing.T) {
	plan := testPlan(at(2021, 4, 5, 9, 0))
	w, _ := plan.FindWorkout("w2-tue")
	storeErr := errors.New("connection reset")

	changed, err := NewProgression(&memoryLogs{err: storeErr}).ApplyIncrements(context.Background(), w, at(2021, 4, 27, 18, 0), nil)

	assert.ErrorIs(t, err, storeErr)
	assert.False(t, changed)
	assert.Equal(t, 3, w.Exercises[0].Sets)
}

func TestGoalMet(t *testing.T) {
	planned := &domain.PlannedExercise{Sets: 3, Repetitions: 5, Weight: 100}

	assert.True(t, GoalMet(planned, &domain.LoggedExercise{Sets: sets(3, 5, 100)}))
	assert.True(t, GoalMet(planned, &domain.LoggedExercise{Sets: sets(4, 6, 105)}))
	assert.False(t, GoalMet(planned, &domain.LoggedExercise{Sets: sets(2, 5, 100)}))
	assert.False(t, GoalMet(planned, &domain.LoggedExercise{Sets: sets(3, 4, 100)}))
	assert.False(t, GoalMet(planned, &domain.LoggedExercise{Sets: sets(3, 5, 97.5)}))
}
