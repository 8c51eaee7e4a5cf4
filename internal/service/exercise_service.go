package service

import (
	"context"
	"errors"
	"strings"

	"github.com/zoraaver/wlogger/internal/domain"
)

// ExerciseService manages a user's exercise catalog
type ExerciseService struct {
	exerciseRepo domain.ExerciseRepository
}

func NewExerciseService(exerciseRepo domain.ExerciseRepository) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo}
}

func (s *ExerciseService) Create(ctx context.Context, userID string, ex *domain.Exercise) (*domain.Exercise, error) {
	ex.Name = strings.TrimSpace(ex.Name)
	if err := validateStruct(ex); err != nil {
		return nil, err
	}

	taken, err := s.exerciseRepo.ExistsByName(ctx, userID, ex.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewValidationError("name", "Name is already taken")
	}

	ex.UserID = userID
	if ex.Categories == nil {
		ex.Categories = []string{}
	}
	if err := s.exerciseRepo.Create(ctx, ex); err != nil {
		// lost a race with a concurrent create
		if errors.Is(err, domain.ErrDuplicateExercise) {
			return nil, domain.NewValidationError("name", "Name is already taken")
		}
		return nil, err
	}
	return ex, nil
}

func (s *ExerciseService) List(ctx context.Context, userID string) ([]*domain.Exercise, error) {
	return s.exerciseRepo.ListByUser(ctx, userID)
}

func (s *ExerciseService) Delete(ctx context.Context, userID, id string) error {
	ex, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ex.UserID != userID {
		return domain.ErrExerciseNotFound
	}
	return s.exerciseRepo.Delete(ctx, id)
}
