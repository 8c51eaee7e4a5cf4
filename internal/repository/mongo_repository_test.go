package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupDB(t *testing.T) *mongo.Database {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	db, cleanup := testutil.SetupTestDB(t)
	t.Cleanup(cleanup)
	require.NoError(t, EnsureIndexes(context.Background(), db))
	return db
}

func TestMongoRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	users := NewMongoUserRepository(db)
	exercises := NewMongoExerciseRepository(db)
	plans := NewMongoWorkoutPlanRepository(db)
	logs := NewMongoWorkoutLogRepository(db)

	user := &domain.User{Email: "lifter@example.com", Name: "Lifter", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	t.Run("users", func(t *testing.T) {
		err := users.Create(ctx, &domain.User{Email: "lifter@example.com"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)

		got, err := users.GetByEmail(ctx, "lifter@example.com")
		require.NoError(t, err)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.Empty(t, got.WorkoutPlanIDs)

		_, err = users.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, domain.ErrInvalidID)

		_, err = users.GetByFirebaseUID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("exercises", func(t *testing.T) {
		require.NoError(t, exercises.Create(ctx, &domain.Exercise{UserID: user.ID, Name: "Squat"}))
		require.NoError(t, exercises.Create(ctx, &domain.Exercise{UserID: user.ID, Name: "Bench press"}))
		// same name for another user is fine
		require.NoError(t, exercises.Create(ctx, &domain.Exercise{UserID: "someone-else", Name: "Squat"}))

		err := exercises.Create(ctx, &domain.Exercise{UserID: user.ID, Name: "Squat"})
		assert.ErrorIs(t, err, domain.ErrDuplicateExercise)

		list, err := exercises.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Bench press", list[0].Name)

		ok, err := exercises.ExistsByName(ctx, user.ID, "Squat")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = exercises.ExistsByName(ctx, user.ID, "Deadlift")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("workout plans", func(t *testing.T) {
		plan := &domain.WorkoutPlan{
			UserID: user.ID,
			Name:   "Strength",
			Weeks: []domain.Week{{Position: 1, Repeat: 1, Workouts: []domain.Workout{{
				ID: "01HZX", DayOfWeek: domain.Monday,
				Exercises: []domain.PlannedExercise{{ID: "01HZY", Name: "Squat", Sets: 3, Repetitions: 5, Weight: 100, Unit: domain.Kilograms}},
			}}}},
		}
		require.NoError(t, plans.Create(ctx, plan))
		assert.Equal(t, domain.PlanNotStarted, plan.Status)

		require.NoError(t, users.AddWorkoutPlan(ctx, user.ID, plan.ID))
		require.NoError(t, users.SetCurrentWorkoutPlan(ctx, user.ID, plan.ID))

		start := time.Date(2021, 3, 25, 9, 0, 0, 0, time.UTC)
		require.NoError(t, plans.UpdateStatus(ctx, plan.ID, domain.PlanInProgress, &start, nil))

		got, err := plans.GetByID(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanInProgress, got.Status)
		require.NotNil(t, got.Start)
		assert.True(t, start.Equal(*got.Start))
		assert.Nil(t, got.End)
		assert.Equal(t, "01HZX", got.Weeks[0].Workouts[0].ID)

		got.Weeks[0].Workouts[0].Exercises[0].Weight = 102.5
		require.NoError(t, plans.Update(ctx, got))
		again, err := plans.GetByID(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 102.5, again.Weeks[0].Workouts[0].Exercises[0].Weight)

		summaries, err := plans.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Strength", summaries[0].Name)

		running, err := plans.ListInProgress(ctx)
		require.NoError(t, err)
		assert.Len(t, running, 1)

		require.NoError(t, users.RemoveWorkoutPlan(ctx, user.ID, plan.ID))
		require.NoError(t, plans.Delete(ctx, plan.ID))

		owner, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, owner.WorkoutPlanIDs)
		assert.Empty(t, owner.CurrentWorkoutPlanID)

		_, err = plans.GetByID(ctx, plan.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, plans.Delete(ctx, plan.ID), domain.ErrNotFound)
	})

	t.Run("workout logs", func(t *testing.T) {
		day := time.Date(2021, 4, 20, 0, 0, 0, 0, time.Local)
		mk := func(workoutID string, at time.Time) *domain.WorkoutLog {
			l := &domain.WorkoutLog{UserID: user.ID, WorkoutID: workoutID, CreatedAt: at,
				Exercises: []domain.LoggedExercise{{Name: "Squat", ExerciseID: "01HZY", Sets: []domain.LoggedSet{{Repetitions: 5, Weight: 100}}}}}
			require.NoError(t, logs.Create(ctx, l))
			require.NoError(t, users.AddWorkoutLog(ctx, user.ID, l.ID))
			return l
		}

		morning := mk("01HZX", day.Add(8*time.Hour))
		evening := mk("01HZX", day.Add(19*time.Hour))
		nextDay := mk("01HZX", day.Add(24*time.Hour))
		otherWorkout := mk("01HZZ", day.Add(12*time.Hour))
		foreign := &domain.WorkoutLog{UserID: "someone-else", WorkoutID: "01HZX", CreatedAt: day.Add(10 * time.Hour)}
		require.NoError(t, logs.Create(ctx, foreign))

		owner, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{otherWorkout.ID, nextDay.ID, evening.ID, morning.ID}, owner.WorkoutLogIDs)

		found, err := logs.FindByWorkoutAndWindow(ctx, "01HZX", day, day.Add(24*time.Hour-time.Millisecond), owner.WorkoutLogIDs)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, morning.ID, found[0].ID)
		assert.Equal(t, evening.ID, found[1].ID)

		listed, err := logs.ListByIDs(ctx, owner.WorkoutLogIDs)
		require.NoError(t, err)
		require.Len(t, listed, 4)
		assert.Equal(t, nextDay.ID, listed[0].ID)

		morning.Exercises[0].Sets[0].FormVideo = "videos/a.mp4"
		require.NoError(t, logs.Update(ctx, morning))
		got, err := logs.GetByID(ctx, morning.ID)
		require.NoError(t, err)
		assert.Equal(t, "videos/a.mp4", got.Exercises[0].Sets[0].FormVideo)

		require.NoError(t, users.RemoveWorkoutLog(ctx, user.ID, morning.ID))
		require.NoError(t, logs.Delete(ctx, morning.ID))
		_, err = logs.GetByID(ctx, morning.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
