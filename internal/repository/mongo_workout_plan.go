package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkoutPlanRepository implements domain.WorkoutPlanRepository
type MongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutPlanRepository(db *mongo.Database) *MongoWorkoutPlanRepository {
	return &MongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlansCollection),
	}
}

func (r *MongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Status == "" {
		plan.Status = domain.PlanNotStarted
	}
	plan.ID = ""

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to create workout plan: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid.Hex()
	}
	return nil
}

func (r *MongoWorkoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var plan domain.WorkoutPlan
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workout plan: %w", err)
	}
	return &plan, nil
}

// ListByUser returns plan summaries, newest first
func (r *MongoWorkoutPlanRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WorkoutPlanSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"name": 1, "status": 1, "start": 1, "end": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout plans: %w", err)
	}
	defer cursor.Close(ctx)

	plans := []*domain.WorkoutPlanSummary{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update replaces the editable fields and the weeks of a plan
func (r *MongoWorkoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	plan.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":       plan.Name,
			"status":     plan.Status,
			"start":      plan.Start,
			"end":        plan.End,
			"weeks":      plan.Weeks,
			"updated_at": plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update workout plan: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus writes only the lifecycle fields
func (r *MongoWorkoutPlanRepository) UpdateStatus(ctx context.Context, id string, status domain.PlanStatus, start, end *time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"start":      start,
			"end":        end,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update workout plan status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoWorkoutPlanRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete workout plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListInProgress returns every plan currently marked In progress
func (r *MongoWorkoutPlanRepository) ListInProgress(ctx context.Context) ([]*domain.WorkoutPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": domain.PlanInProgress})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans in progress: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []*domain.WorkoutPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
