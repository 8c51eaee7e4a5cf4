// Command complete_plans marks In progress workout plans whose last week has
// passed as Completed. Users who never open their current plan would
// otherwise keep it In progress forever.
package main

import (
	"context"
	"flag"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zoraaver/wlogger/internal/config"
	"github.com/zoraaver/wlogger/internal/repository"
	"github.com/zoraaver/wlogger/internal/schedule"
	"github.com/zoraaver/wlogger/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Show what would be done without making changes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	planService := service.NewWorkoutPlanService(
		repository.NewMongoWorkoutPlanRepository(db),
		repository.NewMongoUserRepository(db),
		repository.NewMongoExerciseRepository(db),
		repository.NewMongoWorkoutLogRepository(db),
		schedule.SystemClock{},
	)

	if *dryRun {
		log.Println("🏃 DRY RUN - no plans will be changed")
	}

	n, err := planService.CompleteFinishedPlans(ctx, *dryRun)
	if err != nil {
		log.Fatalf("Failed after completing %d plans: %v", n, err)
	}
	log.Printf("✓ %d workout plans completed", n)
}
