package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/zoraaver/wlogger/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepository implements domain.UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(usersCollection),
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	objID := primitive.NewObjectID()
	user.ID = objID.Hex()

	doc := bson.M{
		"_id":              objID,
		"email":            user.Email,
		"name":             user.Name,
		"workout_plan_ids": []string{},
		"workout_log_ids":  []string{},
		"created_at":       user.CreatedAt,
		"updated_at":       user.UpdatedAt,
	}

	if user.PasswordHash != "" {
		doc["password_hash"] = user.PasswordHash
	}
	if user.FirebaseUID != "" {
		doc["firebase_uid"] = user.FirebaseUID
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": uid})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.WorkoutPlanIDs == nil {
		user.WorkoutPlanIDs = []string{}
	}
	if user.WorkoutLogIDs == nil {
		user.WorkoutLogIDs = []string{}
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateFirebaseUID(ctx context.Context, userID string, firebaseUID string) error {
	return r.update(ctx, userID, bson.M{"$set": bson.M{"firebase_uid": firebaseUID}})
}

func (r *MongoUserRepository) AddWorkoutPlan(ctx context.Context, userID, planID string) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"workout_plan_ids": planID}})
}

// RemoveWorkoutPlan drops the plan from the user's list and clears the
// current plan pointer when it referenced planID
func (r *MongoUserRepository) RemoveWorkoutPlan(ctx context.Context, userID, planID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	if err := r.update(ctx, userID, bson.M{"$pull": bson.M{"workout_plan_ids": planID}}); err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "current_workout_plan_id": planID},
		bson.M{"$unset": bson.M{"current_workout_plan_id": ""}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear current workout plan: %w", err)
	}
	return nil
}

// SetCurrentWorkoutPlan points the user at planID, or clears the pointer
// when planID is empty
func (r *MongoUserRepository) SetCurrentWorkoutPlan(ctx context.Context, userID, planID string) error {
	if planID == "" {
		return r.update(ctx, userID, bson.M{"$unset": bson.M{"current_workout_plan_id": ""}})
	}
	return r.update(ctx, userID, bson.M{"$set": bson.M{"current_workout_plan_id": planID}})
}

// AddWorkoutLog prepends logID so the list stays newest first
func (r *MongoUserRepository) AddWorkoutLog(ctx context.Context, userID, logID string) error {
	return r.update(ctx, userID, bson.M{"$push": bson.M{
		"workout_log_ids": bson.M{"$each": []string{logID}, "$position": 0},
	}})
}

func (r *MongoUserRepository) RemoveWorkoutLog(ctx context.Context, userID, logID string) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"workout_log_ids": logID}})
}

func (r *MongoUserRepository) update(ctx context.Context, userID string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidID
	}

	set, ok := update["$set"].(bson.M)
	if !ok {
		set = bson.M{}
		update["$set"] = set
	}
	set["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
