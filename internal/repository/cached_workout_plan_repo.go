package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
)

const (
	planByIDKeyPrefix   = "workout_plan:id:"
	planListKeyPrefix   = "workout_plan:user:"
	workoutPlanCacheTTL = 5 * time.Minute
)

// CachedWorkoutPlanRepository wraps MongoWorkoutPlanRepository with Redis caching
type CachedWorkoutPlanRepository struct {
	mongo *MongoWorkoutPlanRepository
	cache *RedisCacheRepository
}

func NewCachedWorkoutPlanRepository(mongo *MongoWorkoutPlanRepository, cache *RedisCacheRepository) *CachedWorkoutPlanRepository {
	return &CachedWorkoutPlanRepository{
		mongo: mongo,
		cache: cache,
	}
}

func planListKey(userID string) string {
	return fmt.Sprintf("%s%s:summaries", planListKeyPrefix, userID)
}

// GetByID retrieves a plan by id with caching
func (r *CachedWorkoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	key := planByIDKeyPrefix + id

	var plan domain.WorkoutPlan
	if err := r.cache.Get(ctx, key, &plan); err == nil {
		return &plan, nil
	}

	result, err := r.mongo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, workoutPlanCacheTTL)

	return result, nil
}

// ListByUser retrieves plan summaries with caching
func (r *CachedWorkoutPlanRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WorkoutPlanSummary, error) {
	key := planListKey(userID)

	var plans []*domain.WorkoutPlanSummary
	if err := r.cache.Get(ctx, key, &plans); err == nil {
		return plans, nil
	}

	result, err := r.mongo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, result, workoutPlanCacheTTL)

	return result, nil
}

// Create creates a plan and invalidates the owner's list
func (r *CachedWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if err := r.mongo.Create(ctx, plan); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, planListKey(plan.UserID))
	return nil
}

// Update updates a plan and invalidates caches
func (r *CachedWorkoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if err := r.mongo.Update(ctx, plan); err != nil {
		return err
	}
	r.invalidate(ctx, plan.ID, plan.UserID)
	return nil
}

// UpdateStatus updates lifecycle fields and invalidates caches
func (r *CachedWorkoutPlanRepository) UpdateStatus(ctx context.Context, id string, status domain.PlanStatus, start, end *time.Time) error {
	// Get plan first to know the owner for list invalidation
	plan, _ := r.mongo.GetByID(ctx, id)

	if err := r.mongo.UpdateStatus(ctx, id, status, start, end); err != nil {
		return err
	}

	userID := ""
	if plan != nil {
		userID = plan.UserID
	}
	r.invalidate(ctx, id, userID)
	return nil
}

// Delete deletes a plan and invalidates caches
func (r *CachedWorkoutPlanRepository) Delete(ctx context.Context, id string) error {
	plan, _ := r.mongo.GetByID(ctx, id)

	if err := r.mongo.Delete(ctx, id); err != nil {
		return err
	}

	userID := ""
	if plan != nil {
		userID = plan.UserID
	}
	r.invalidate(ctx, id, userID)
	return nil
}

func (r *CachedWorkoutPlanRepository) invalidate(ctx context.Context, id, userID string) {
	_ = r.cache.Delete(ctx, planByIDKeyPrefix+id)
	if userID != "" {
		_ = r.cache.Delete(ctx, planListKey(userID))
	} else {
		_ = r.cache.DeleteByPattern(ctx, planListKeyPrefix+"*")
	}
}

// === Pass-through methods (no caching) ===

func (r *CachedWorkoutPlanRepository) ListInProgress(ctx context.Context) ([]*domain.WorkoutPlan, error) {
	return r.mongo.ListInProgress(ctx)
}
