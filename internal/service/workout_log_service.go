package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/schedule"
	"golang.org/x/sync/errgroup"
)

// ErrStorageDisabled is returned by video operations when no bucket is configured
var ErrStorageDisabled = errors.New("video storage is not configured")

// videoExtensions lists the accepted form video content types
var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/x-msvideo": ".avi",
}

type WorkoutLogService struct {
	logRepo    domain.WorkoutLogRepository
	planRepo   domain.WorkoutPlanRepository
	userRepo   domain.UserRepository
	files      domain.FileRepository
	clock      schedule.Clock
	presignTTL time.Duration
}

// NewWorkoutLogService creates the service. files may be nil, in which case
// form video operations return ErrStorageDisabled.
func NewWorkoutLogService(
	logRepo domain.WorkoutLogRepository,
	planRepo domain.WorkoutPlanRepository,
	userRepo domain.UserRepository,
	files domain.FileRepository,
	clock schedule.Clock,
	presignTTL time.Duration,
) *WorkoutLogService {
	return &WorkoutLogService{
		logRepo:    logRepo,
		planRepo:   planRepo,
		userRepo:   userRepo,
		files:      files,
		clock:      clock,
		presignTTL: presignTTL,
	}
}

// Create records a workout for userID, stamped with the current time. A
// workout_id must name a workout in one of the user's plans.
func (s *WorkoutLogService) Create(ctx context.Context, userID string, wl *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if err := validateStruct(wl); err != nil {
		return nil, err
	}
	if wl.WorkoutID != "" {
		if err := s.checkWorkout(ctx, userID, wl.WorkoutID); err != nil {
			return nil, err
		}
	}

	wl.UserID = userID
	wl.CreatedAt = s.clock.Now()
	for i := range wl.Exercises {
		for j := range wl.Exercises[i].Sets {
			set := &wl.Exercises[i].Sets[j]
			if set.Unit == "" {
				set.Unit = domain.Kilograms
			}
			// videos are attached through their own endpoint
			set.FormVideo = ""
		}
	}

	if err := s.logRepo.Create(ctx, wl); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddWorkoutLog(ctx, userID, wl.ID); err != nil {
		return nil, err
	}
	return wl, nil
}

// checkWorkout searches the user's plans for workoutID, current plan first.
func (s *WorkoutLogService) checkWorkout(ctx context.Context, userID, workoutID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	planIDs := make([]string, 0, len(user.WorkoutPlanIDs)+1)
	if user.CurrentWorkoutPlanID != "" {
		planIDs = append(planIDs, user.CurrentWorkoutPlanID)
	}
	for _, id := range user.WorkoutPlanIDs {
		if id != user.CurrentWorkoutPlanID {
			planIDs = append(planIDs, id)
		}
	}

	for _, planID := range planIDs {
		plan, err := s.planRepo.GetByID(ctx, planID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load workout plan %s: %w", planID, err)
		}
		if w, _ := plan.FindWorkout(workoutID); w != nil {
			return nil
		}
	}
	return domain.NewValidationError("workout_id", fmt.Sprintf("Workout %s not found", workoutID))
}

// List returns headers of the user's logs, newest first
func (s *WorkoutLogService) List(ctx context.Context, userID string) ([]domain.WorkoutLogHeader, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByIDs(ctx, user.WorkoutLogIDs)
	if err != nil {
		return nil, err
	}

	headers := make([]domain.WorkoutLogHeader, 0, len(logs))
	for _, l := range logs {
		headers = append(headers, l.Header())
	}
	return headers, nil
}

// Get returns the log when userID owns it
func (s *WorkoutLogService) Get(ctx context.Context, userID, logID string) (*domain.WorkoutLog, error) {
	wl, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if wl.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return wl, nil
}

// Delete removes the log, detaches it from the user and drops its videos
func (s *WorkoutLogService) Delete(ctx context.Context, userID, logID string) error {
	wl, err := s.Get(ctx, userID, logID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.logRepo.Delete(gctx, logID)
	})
	g.Go(func() error {
		return s.userRepo.RemoveWorkoutLog(gctx, userID, logID)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if s.files == nil {
		return nil
	}
	for _, ex := range wl.Exercises {
		for _, set := range ex.Sets {
			if set.FormVideo == "" {
				continue
			}
			if err := s.files.Delete(ctx, set.FormVideo); err != nil {
				log.WithError(err).WithField("key", set.FormVideo).Warn("failed to delete form video")
			}
		}
	}
	return nil
}

// AttachFormVideo uploads a video for one logged set and stores its key
func (s *WorkoutLogService) AttachFormVideo(ctx context.Context, userID, logID string, exerciseIdx, setIdx int, data []byte, contentType string) (*domain.WorkoutLog, error) {
	if s.files == nil {
		return nil, ErrStorageDisabled
	}
	ext, ok := videoExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFileType, contentType)
	}

	wl, err := s.Get(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	set, err := loggedSet(wl, exerciseIdx, setIdx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("form-videos/%s/%s/%d-%d-%s%s", userID, logID, exerciseIdx, setIdx, generateULID(), ext)
	if err := s.files.Upload(ctx, data, key, contentType); err != nil {
		return nil, err
	}

	previous := set.FormVideo
	set.FormVideo = key
	if err := s.logRepo.Update(ctx, wl); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := s.files.Delete(ctx, previous); err != nil {
			log.WithError(err).WithField("key", previous).Warn("failed to delete replaced form video")
		}
	}
	return wl, nil
}

// FormVideoURL returns a presigned download URL for a set's video
func (s *WorkoutLogService) FormVideoURL(ctx context.Context, userID, logID string, exerciseIdx, setIdx int) (string, error) {
	if s.files == nil {
		return "", ErrStorageDisabled
	}

	wl, err := s.Get(ctx, userID, logID)
	if err != nil {
		return "", err
	}
	set, err := loggedSet(wl, exerciseIdx, setIdx)
	if err != nil {
		return "", err
	}
	if set.FormVideo == "" {
		return "", domain.ErrNotFound
	}
	return s.files.PresignedURL(ctx, set.FormVideo, s.presignTTL)
}

func loggedSet(wl *domain.WorkoutLog, exerciseIdx, setIdx int) (*domain.LoggedSet, error) {
	if exerciseIdx < 0 || exerciseIdx >= len(wl.Exercises) {
		return nil, domain.ErrNotFound
	}
	sets := wl.Exercises[exerciseIdx].Sets
	if setIdx < 0 || setIdx >= len(sets) {
		return nil, domain.ErrNotFound
	}
	return &sets[setIdx], nil
}
