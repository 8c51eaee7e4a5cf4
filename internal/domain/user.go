package domain

import (
	"context"
	"time"
)

// User owns plans, logs and an exercise catalog
type User struct {
	ID                   string    `bson:"_id,omitempty" json:"id"`
	FirebaseUID          string    `bson:"firebase_uid,omitempty" json:"firebase_uid,omitempty"`
	Email                string    `bson:"email" json:"email"`
	Name                 string    `bson:"name" json:"name"`
	PasswordHash         string    `bson:"password_hash,omitempty" json:"-"`
	WorkoutPlanIDs       []string  `bson:"workout_plan_ids" json:"workout_plan_ids"`
	CurrentWorkoutPlanID string    `bson:"current_workout_plan_id,omitempty" json:"current_workout_plan_id,omitempty"`
	WorkoutLogIDs        []string  `bson:"workout_log_ids" json:"workout_log_ids"` // newest first
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}

// OwnsPlan reports whether planID is in the user's plan list.
func (u *User) OwnsPlan(planID string) bool {
	for _, id := range u.WorkoutPlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}

func (u *User) OwnsLog(logID string) bool {
	for _, id := range u.WorkoutLogIDs {
		if id == logID {
			return true
		}
	}
	return false
}

// UserRepository defines operations for managing users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*User, error)
	UpdateFirebaseUID(ctx context.Context, userID string, firebaseUID string) error

	AddWorkoutPlan(ctx context.Context, userID, planID string) error
	RemoveWorkoutPlan(ctx context.Context, userID, planID string) error
	SetCurrentWorkoutPlan(ctx context.Context, userID, planID string) error
	AddWorkoutLog(ctx context.Context, userID, logID string) error
	RemoveWorkoutLog(ctx context.Context, userID, logID string) error
}
