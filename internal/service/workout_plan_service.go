package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/schedule"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

type WorkoutPlanService struct {
	planRepo     domain.WorkoutPlanRepository
	userRepo     domain.UserRepository
	exerciseRepo domain.ExerciseRepository
	progression  *schedule.Progression
	clock        schedule.Clock

	increments metric.Int64Counter
}

func NewWorkoutPlanService(
	planRepo domain.WorkoutPlanRepository,
	userRepo domain.UserRepository,
	exerciseRepo domain.ExerciseRepository,
	logRepo domain.WorkoutLogRepository,
	clock schedule.Clock,
) *WorkoutPlanService {
	increments, _ := otel.Meter("wlogger/service").Int64Counter(
		"workout_plan.auto_increments",
		metric.WithDescription("Workouts whose targets were raised by auto-increment"),
	)
	return &WorkoutPlanService{
		planRepo:     planRepo,
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		progression:  schedule.NewProgression(logRepo),
		clock:        clock,
		increments:   increments,
	}
}

// StartResult is returned by the start transition
type StartResult struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
}

// NextWorkout is either a workout with its date or a terminal Status
type NextWorkout struct {
	Workout *domain.Workout
	Date    time.Time
	Status  string
}

// weeksEnvelope roots validation of a bare week list at "weeks"
type weeksEnvelope struct {
	Weeks []domain.Week `json:"weeks" validate:"dive"`
}

// Create validates and stores a plan for userID. When current is set the
// plan is started straight away and becomes the user's current plan.
func (s *WorkoutPlanService) Create(ctx context.Context, userID string, plan *domain.WorkoutPlan, current bool) (*domain.WorkoutPlan, error) {
	if err := validateStruct(plan); err != nil {
		return nil, err
	}
	if err := s.ValidateAndNormalizeWeeks(ctx, userID, plan.Weeks); err != nil {
		return nil, err
	}

	plan.UserID = userID
	plan.Status = domain.PlanNotStarted
	plan.Start = nil
	plan.End = nil

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddWorkoutPlan(ctx, userID, plan.ID); err != nil {
		return nil, err
	}

	if current {
		started, err := s.Start(ctx, userID, plan.ID)
		if err != nil {
			return nil, err
		}
		plan.Status = domain.PlanInProgress
		plan.Start = &started.Start
	}
	return plan, nil
}

func (s *WorkoutPlanService) List(ctx context.Context, userID string) ([]*domain.WorkoutPlanSummary, error) {
	return s.planRepo.ListByUser(ctx, userID)
}

// Get returns the plan when userID owns it
func (s *WorkoutPlanService) Get(ctx context.Context, userID, planID string) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

// Update replaces the name and weeks of a plan. Lifecycle fields are kept.
func (s *WorkoutPlanService) Update(ctx context.Context, userID, planID string, input *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.ValidateAndNormalizeWeeks(ctx, userID, input.Weeks); err != nil {
		return nil, err
	}

	plan.Name = input.Name
	plan.Weeks = input.Weeks
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes the plan and detaches it from its owner
func (s *WorkoutPlanService) Delete(ctx context.Context, userID, planID string) error {
	if _, err := s.Get(ctx, userID, planID); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.planRepo.Delete(gctx, planID)
	})
	g.Go(func() error {
		return s.userRepo.RemoveWorkoutPlan(gctx, userID, planID)
	})
	return g.Wait()
}

// Start makes planID the user's current plan and marks it In progress from
// now. A different plan that was current goes back to Not started and keeps
// its start and end dates.
func (s *WorkoutPlanService) Start(ctx context.Context, userID, planID string) (*StartResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, planID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	previous := user.CurrentWorkoutPlanID

	g, gctx := errgroup.WithContext(ctx)
	if previous != "" && previous != planID {
		g.Go(func() error {
			prev, err := s.planRepo.GetByID(gctx, previous)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return s.planRepo.UpdateStatus(gctx, prev.ID, domain.PlanNotStarted, prev.Start, prev.End)
		})
	}
	g.Go(func() error {
		return s.planRepo.UpdateStatus(gctx, planID, domain.PlanInProgress, &now, nil)
	})
	g.Go(func() error {
		return s.userRepo.SetCurrentWorkoutPlan(gctx, userID, planID)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to start workout plan: %w", err)
	}

	return &StartResult{ID: planID, Start: now}, nil
}

// Current returns the user's current plan, marking it Completed first if
// its last week has passed.
func (s *WorkoutPlanService) Current(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	_, plan, err := s.currentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.completeIfFinished(ctx, plan, s.clock.Now()); err != nil {
		return nil, err
	}
	return plan, nil
}

// NextWorkout resolves the next workout of the user's current plan. When
// the workout belongs to a repeating week, its targets are raised from the
// previous week's log before it is returned, and the plan is saved.
func (s *WorkoutPlanService) NextWorkout(ctx context.Context, userID string) (*NextWorkout, error) {
	ctx, span := otel.Tracer("wlogger/service").Start(ctx, "WorkoutPlanService.NextWorkout")
	defer span.End()

	now := s.clock.Now()
	user, plan, err := s.currentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("workout_plan.id", plan.ID))

	if err := s.completeIfFinished(ctx, plan, now); err != nil {
		return nil, err
	}

	res := schedule.NextWorkout(plan, now)
	if res.Terminal() {
		span.SetAttributes(attribute.String("workout_plan.next", res.Status))
		return &NextWorkout{Status: res.Status}, nil
	}

	if res.Repeating() {
		changed, err := s.progression.ApplyIncrements(ctx, res.Workout, now, user.WorkoutLogIDs)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if changed {
			if err := s.planRepo.Update(ctx, plan); err != nil {
				return nil, err
			}
			s.increments.Add(ctx, 1)
		}
		span.SetAttributes(attribute.Bool("workout_plan.incremented", changed))
	}

	return &NextWorkout{Workout: res.Workout, Date: res.Date}, nil
}

// ValidateAndNormalizeWeeks checks field constraints, week positions and
// that every exercise name is in the user's catalog, then fills in ids and
// default units and normalizes the positions.
func (s *WorkoutPlanService) ValidateAndNormalizeWeeks(ctx context.Context, userID string, weeks []domain.Week) error {
	if err := validateStruct(weeksEnvelope{Weeks: weeks}); err != nil {
		return err
	}
	if err := schedule.ValidatePositions(weeks); err != nil {
		return err
	}

	known := map[string]bool{}
	for i, week := range weeks {
		for j, workout := range week.Workouts {
			for k, ex := range workout.Exercises {
				ok, seen := known[ex.Name]
				if !seen {
					exists, err := s.exerciseRepo.ExistsByName(ctx, userID, ex.Name)
					if err != nil {
						return err
					}
					known[ex.Name] = exists
					ok = exists
				}
				if !ok {
					return domain.NewValidationError(
						fmt.Sprintf("weeks.%d.workouts.%d.exercises.%d.name", i, j, k),
						fmt.Sprintf("Exercise %s not found", ex.Name),
					)
				}
			}
		}
	}

	for i := range weeks {
		for j := range weeks[i].Workouts {
			for k := range weeks[i].Workouts[j].Exercises {
				if weeks[i].Workouts[j].Exercises[k].Unit == "" {
					weeks[i].Workouts[j].Exercises[k].Unit = domain.Kilograms
				}
			}
		}
	}
	assignIDs(weeks)
	schedule.NormalizePositions(weeks)
	return nil
}

// CompleteFinishedPlans marks every In progress plan whose last week has
// passed as Completed and returns how many were changed. With dryRun set
// the plans are counted but not written.
func (s *WorkoutPlanService) CompleteFinishedPlans(ctx context.Context, dryRun bool) (int, error) {
	plans, err := s.planRepo.ListInProgress(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	completed := 0
	for _, plan := range plans {
		if dryRun {
			schedule.NormalizePositions(plan.Weeks)
			if schedule.IsCompleted(plan, schedule.WeekDifference(plan, now)) {
				completed++
			}
			continue
		}
		if err := s.completeIfFinished(ctx, plan, now); err != nil {
			return completed, fmt.Errorf("failed to complete plan %s: %w", plan.ID, err)
		}
		if plan.Status == domain.PlanCompleted {
			completed++
		}
	}
	return completed, nil
}

func (s *WorkoutPlanService) currentPlan(ctx context.Context, userID string) (*domain.User, *domain.WorkoutPlan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user.CurrentWorkoutPlanID == "" {
		return nil, nil, domain.ErrNoCurrentPlan
	}

	plan, err := s.planRepo.GetByID(ctx, user.CurrentWorkoutPlanID)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidID) {
		return nil, nil, domain.ErrNoCurrentPlan
	}
	if err != nil {
		return nil, nil, err
	}
	return user, plan, nil
}

// completeIfFinished marks plan Completed with end = now once its last week
// is behind now. Plans already Completed are left alone.
func (s *WorkoutPlanService) completeIfFinished(ctx context.Context, plan *domain.WorkoutPlan, now time.Time) error {
	if plan.Status == domain.PlanCompleted {
		return nil
	}
	schedule.NormalizePositions(plan.Weeks)
	if !schedule.IsCompleted(plan, schedule.WeekDifference(plan, now)) {
		return nil
	}

	if err := s.planRepo.UpdateStatus(ctx, plan.ID, domain.PlanCompleted, plan.Start, &now); err != nil {
		return err
	}
	plan.Status = domain.PlanCompleted
	plan.End = &now
	return nil
}
