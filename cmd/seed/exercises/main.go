// Command exercises seeds a user's exercise catalog with common lifts.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zoraaver/wlogger/internal/config"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/repository"
	"github.com/zoraaver/wlogger/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var defaultExercises = []domain.Exercise{
	// Legs
	{Name: "Barbell Squat", Categories: []string{"Legs", "Barbell"}},
	{Name: "Front Squat", Categories: []string{"Legs", "Barbell"}},
	{Name: "Leg Press", Categories: []string{"Legs", "Machine"}},
	{Name: "Romanian Deadlift", Categories: []string{"Legs", "Hamstrings", "Barbell"}},
	{Name: "Walking Lunge", Categories: []string{"Legs", "Dumbbell"}},
	{Name: "Calf Raise", Categories: []string{"Legs", "Calves"}},

	// Push
	{Name: "Barbell Bench Press", Categories: []string{"Chest", "Barbell"}},
	{Name: "Incline Dumbbell Press", Categories: []string{"Chest", "Dumbbell"}},
	{Name: "Overhead Press", Categories: []string{"Shoulders", "Barbell"}},
	{Name: "Dips", Categories: []string{"Chest", "Triceps", "Bodyweight"}},
	{Name: "Lateral Raise", Categories: []string{"Shoulders", "Dumbbell"}},

	// Pull
	{Name: "Deadlift", Categories: []string{"Back", "Legs", "Barbell"}},
	{Name: "Pull Up", Categories: []string{"Back", "Bodyweight"}},
	{Name: "Barbell Row", Categories: []string{"Back", "Barbell"}},
	{Name: "Lat Pulldown", Categories: []string{"Back", "Cable"}},
	{Name: "Face Pull", Categories: []string{"Shoulders", "Cable"}},

	// Arms and core
	{Name: "Barbell Curl", Categories: []string{"Biceps", "Barbell"}},
	{Name: "Tricep Pushdown", Categories: []string{"Triceps", "Cable"}},
	{Name: "Plank", Categories: []string{"Core", "Bodyweight"}},
	{Name: "Hanging Leg Raise", Categories: []string{"Core", "Bodyweight"}},
}

func main() {
	userID := flag.String("user", "", "User ID whose catalog is seeded (required)")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	if _, err := repository.NewMongoUserRepository(db).GetByID(ctx, *userID); err != nil {
		log.Fatalf("Cannot find user %s: %v", *userID, err)
	}
	exerciseService := service.NewExerciseService(repository.NewMongoExerciseRepository(db))

	created := 0
	for _, ex := range defaultExercises {
		ex := ex
		_, err := exerciseService.Create(ctx, *userID, &ex)
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Printf("Skipping %s: %s", ex.Name, verr.Message)
		case err != nil:
			log.Printf("Error creating %s: %v", ex.Name, err)
		default:
			created++
			log.Printf("Created: %s", ex.Name)
		}
	}
	log.Printf("✓ Seeded %d exercises", created)
}
