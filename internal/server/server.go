package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/zoraaver/wlogger/internal/config"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/handler"
	"github.com/zoraaver/wlogger/internal/middleware"
	"github.com/zoraaver/wlogger/internal/repository"
	"github.com/zoraaver/wlogger/internal/schedule"
	"github.com/zoraaver/wlogger/internal/service"
	"github.com/zoraaver/wlogger/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
)

const idempotencyTTL = 24 * time.Hour

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	// AuthClient and FileRepo are optional; the routes that need them
	// answer 503 when they are nil.
	AuthClient service.FirebaseAuthClient
	FileRepo   domain.FileRepository
	// Clock defaults to the system clock
	Clock schedule.Clock
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	clock := deps.Clock
	if clock == nil {
		clock = schedule.SystemClock{}
	}

	// Initialize repositories
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	exerciseRepo := repository.NewMongoExerciseRepository(deps.MongoDB)
	logRepo := repository.NewMongoWorkoutLogRepository(deps.MongoDB)
	planRepo := repository.NewCachedWorkoutPlanRepository(
		repository.NewMongoWorkoutPlanRepository(deps.MongoDB),
		cacheRepo,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, deps.AuthClient, deps.Config.JWT.Secret, deps.Config.JWT.Duration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	planService := service.NewWorkoutPlanService(planRepo, userRepo, exerciseRepo, logRepo, clock)
	logService := service.NewWorkoutLogService(logRepo, planRepo, userRepo, deps.FileRepo, clock, deps.Config.S3.PresignTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	exerciseHandler := handler.NewExerciseHandler(exerciseService)
	planHandler := handler.NewWorkoutPlanHandler(planService)
	logHandler := handler.NewWorkoutLogHandler(logService, deps.Config.Server.MaxUploadSizeMB)

	app := fiber.New(fiber.Config{
		AppName:      "wlogger API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(telemetry.FiberMiddleware("/health"))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "wlogger",
		})
	})

	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/firebase", authHandler.Firebase)

	// Everything else needs a token. Idempotency keys are scoped per user,
	// so the middleware runs after VerifyToken.
	authenticated := []fiber.Handler{
		middleware.VerifyToken(deps.Config.JWT.Secret),
		middleware.IdempotencyMiddleware(deps.RedisClient, idempotencyTTL),
	}

	exercises := v1.Group("/exercises", authenticated...)
	exercises.Get("/", exerciseHandler.List)
	exercises.Post("/", exerciseHandler.Create)
	exercises.Delete("/:id", exerciseHandler.Delete)

	plans := v1.Group("/workout-plans", authenticated...)
	plans.Get("/", planHandler.List)
	plans.Post("/", planHandler.Create)
	plans.Get("/next", planHandler.Next)
	plans.Get("/current", planHandler.Current)
	plans.Get("/:id", planHandler.Get)
	plans.Put("/:id", planHandler.Update)
	plans.Delete("/:id", planHandler.Delete)
	plans.Patch("/:id/start", planHandler.Start)

	logs := v1.Group("/workout-logs", authenticated...)
	logs.Get("/", logHandler.List)
	logs.Post("/", logHandler.Create)
	logs.Get("/:id", logHandler.Get)
	logs.Delete("/:id", logHandler.Delete)
	logs.Post("/:id/exercises/:exercise/sets/:set/video", logHandler.UploadVideo)
	logs.Get("/:id/exercises/:exercise/sets/:set/video", logHandler.VideoURL)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
