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

// MongoWorkoutLogRepository implements domain.WorkoutLogRepository
type MongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutLogRepository(db *mongo.Database) *MongoWorkoutLogRepository {
	return &MongoWorkoutLogRepository{
		collection: db.Collection(workoutLogsCollection),
	}
}

// Create stores the log. A zero CreatedAt is filled with the current time.
func (r *MongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	log.UpdatedAt = log.CreatedAt
	log.ID = ""

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to create workout log: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid.Hex()
	}
	return nil
}

func (r *MongoWorkoutLogRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var log domain.WorkoutLog
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&log); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workout log: %w", err)
	}
	return &log, nil
}

// ListByIDs returns the logs among ids, newest first
func (r *MongoWorkoutLogRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.WorkoutLog, error) {
	logs := []*domain.WorkoutLog{}
	oids := toObjectIDs(ids)
	if len(oids) == 0 {
		return logs, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout logs: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Update rewrites the logged exercises, including attached form videos
func (r *MongoWorkoutLogRepository) Update(ctx context.Context, log *domain.WorkoutLog) error {
	oid, err := primitive.ObjectIDFromHex(log.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	log.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"workout_id": log.WorkoutID,
			"exercises":  log.Exercises,
			"updated_at": log.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update workout log: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoWorkoutLogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete workout log: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByWorkoutAndWindow returns logs for workoutID created within
// [from, to] whose ids are in allowedIDs, oldest first
func (r *MongoWorkoutLogRepository) FindByWorkoutAndWindow(ctx context.Context, workoutID string, from, to time.Time, allowedIDs []string) ([]*domain.WorkoutLog, error) {
	oids := toObjectIDs(allowedIDs)
	if len(oids) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"workout_id": workoutID,
		"created_at": bson.M{"$gte": from, "$lte": to},
		"_id":        bson.M{"$in": oids},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find workout logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*domain.WorkoutLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// toObjectIDs converts hex ids, dropping any that are malformed
func toObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
