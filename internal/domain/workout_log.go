package domain

import (
	"context"
	"time"
)

type LoggedSet struct {
	Repetitions  int        `json:"repetitions" bson:"repetitions" validate:"gte=0"`
	Weight       float64    `json:"weight" bson:"weight" validate:"gte=0"`
	Unit         WeightUnit `json:"unit" bson:"unit" validate:"omitempty,oneof=kg lb"`
	RestInterval float64    `json:"rest_interval,omitempty" bson:"rest_interval,omitempty" validate:"gte=0"`
	FormVideo    string     `json:"form_video,omitempty" bson:"form_video,omitempty"`
}

type LoggedExercise struct {
	Name       string      `json:"name" bson:"name" validate:"required"`
	ExerciseID string      `json:"exercise_id,omitempty" bson:"exercise_id,omitempty"`
	Sets       []LoggedSet `json:"sets" bson:"sets" validate:"dive"`
}

type WorkoutLog struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	UserID    string           `json:"user_id" bson:"user_id"`
	WorkoutID string           `json:"workout_id,omitempty" bson:"workout_id,omitempty"`
	Exercises []LoggedExercise `json:"exercises" bson:"exercises" validate:"dive"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// WorkoutLogHeader is the list view of a log.
type WorkoutLogHeader struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	SetCount      int       `json:"set_count"`
	ExerciseCount int       `json:"exercise_count"`
}

func (l *WorkoutLog) Header() WorkoutLogHeader {
	sets := 0
	for _, e := range l.Exercises {
		sets += len(e.Sets)
	}
	return WorkoutLogHeader{
		ID:            l.ID,
		CreatedAt:     l.CreatedAt,
		SetCount:      sets,
		ExerciseCount: len(l.Exercises),
	}
}

type WorkoutLogRepository interface {
	Create(ctx context.Context, log *WorkoutLog) error
	GetByID(ctx context.Context, id string) (*WorkoutLog, error)
	ListByIDs(ctx context.Context, ids []string) ([]*WorkoutLog, error)
	Update(ctx context.Context, log *WorkoutLog) error
	Delete(ctx context.Context, id string) error
	// FindByWorkoutAndWindow returns logs for workoutID created within
	// [from, to] whose ids are in allowedIDs, oldest first.
	FindByWorkoutAndWindow(ctx context.Context, workoutID string, from, to time.Time, allowedIDs []string) ([]*WorkoutLog, error)
}
