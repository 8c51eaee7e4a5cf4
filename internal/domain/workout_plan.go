package domain

import (
	"context"
	"time"
)

type PlanStatus string

const (
	PlanNotStarted PlanStatus = "Not started"
	PlanInProgress PlanStatus = "In progress"
	PlanCompleted  PlanStatus = "Completed"
)

// Day is a weekday name as stored on a workout.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the weekdays Monday first.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the Monday-first position of the day (Monday=0, Sunday=6),
// or -1 for an unknown name.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// DayIndex maps a time.Weekday onto the Monday-first ordering.
func DayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lb"
)

type IncrementField string

const (
	IncrementSets        IncrementField = "sets"
	IncrementRepetitions IncrementField = "repetitions"
	IncrementWeight      IncrementField = "weight"
)

type AutoIncrement struct {
	Field  IncrementField `json:"field" bson:"field" validate:"required,oneof=sets repetitions weight"`
	Amount float64        `json:"amount" bson:"amount" validate:"gte=0"`
}

// PlannedExercise is an exercise target inside a workout. Sets, Repetitions
// and Weight only ever increase once the plan is running.
type PlannedExercise struct {
	ID            string         `json:"id" bson:"id"`
	Name          string         `json:"name" bson:"name" validate:"required"`
	Sets          int            `json:"sets" bson:"sets" validate:"gte=1"`
	Repetitions   int            `json:"repetitions" bson:"repetitions" validate:"gte=0"`
	Weight        float64        `json:"weight" bson:"weight" validate:"gte=0"`
	Unit          WeightUnit     `json:"unit" bson:"unit" validate:"omitempty,oneof=kg lb"`
	RestInterval  float64        `json:"rest_interval" bson:"rest_interval" validate:"gte=0"`
	AutoIncrement *AutoIncrement `json:"auto_increment,omitempty" bson:"auto_increment,omitempty" validate:"omitempty"`
}

type Workout struct {
	ID        string            `json:"id" bson:"id"`
	DayOfWeek Day               `json:"day_of_week" bson:"day_of_week" validate:"required,weekday"`
	Exercises []PlannedExercise `json:"exercises" bson:"exercises" validate:"dive"`
}

type Week struct {
	Position int       `json:"position" bson:"position" validate:"gte=1"`
	Repeat   int       `json:"repeat" bson:"repeat" validate:"gte=0"`
	Workouts []Workout `json:"workouts" bson:"workouts" validate:"dive"`
}

type WorkoutPlan struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Name      string     `json:"name" bson:"name" validate:"required"`
	Status    PlanStatus `json:"status" bson:"status"`
	Start     *time.Time `json:"start,omitempty" bson:"start,omitempty"`
	End       *time.Time `json:"end,omitempty" bson:"end,omitempty"`
	Weeks     []Week     `json:"weeks" bson:"weeks" validate:"dive"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// WorkoutPlanSummary is the list view of a plan.
type WorkoutPlanSummary struct {
	ID     string     `json:"id" bson:"_id,omitempty"`
	Name   string     `json:"name" bson:"name"`
	Status PlanStatus `json:"status" bson:"status"`
	Start  *time.Time `json:"start,omitempty" bson:"start,omitempty"`
	End    *time.Time `json:"end,omitempty" bson:"end,omitempty"`
}

// FindWorkout returns the workout with the given id and the index of the
// week holding it.
func (p *WorkoutPlan) FindWorkout(workoutID string) (*Workout, int) {
	for i := range p.Weeks {
		for j := range p.Weeks[i].Workouts {
			if p.Weeks[i].Workouts[j].ID == workoutID {
				return &p.Weeks[i].Workouts[j], i
			}
		}
	}
	return nil, -1
}

type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *WorkoutPlan) error
	GetByID(ctx context.Context, id string) (*WorkoutPlan, error)
	ListByUser(ctx context.Context, userID string) ([]*WorkoutPlanSummary, error)
	Update(ctx context.Context, plan *WorkoutPlan) error
	UpdateStatus(ctx context.Context, id string, status PlanStatus, start, end *time.Time) error
	Delete(ctx context.Context, id string) error
	ListInProgress(ctx context.Context) ([]*WorkoutPlan, error)
}
