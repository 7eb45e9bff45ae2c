package service

import (
	"context"
	"errors"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrMuscleAlreadyExists = errors.New("muscle with this name already exists")

// --- Service Interface ---
type MuscleService interface {
	CreateMuscle(ctx context.Context, name, description string) (*domain.Muscle, error)
	GetMuscle(ctx context.Context, id primitive.ObjectID) (*domain.Muscle, error)
	GetMuscles(ctx context.Context) ([]domain.Muscle, error)
	UpdateMuscle(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Muscle, error)
	DeleteMuscle(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

// muscleService implements the MuscleService interface. The muscle
// catalog is shared; any authenticated user may maintain it.
type muscleService struct {
	muscleRepo repository.MuscleRepository
}

// NewMuscleService creates a new instance of muscleService.
func NewMuscleService(muscleRepo repository.MuscleRepository) MuscleService {
	return &muscleService{muscleRepo: muscleRepo}
}

// CreateMuscle adds a catalog entry.
func (s *muscleService) CreateMuscle(ctx context.Context, name, description string) (*domain.Muscle, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	muscle := &domain.Muscle{
		Name:        validName,
		Description: description,
	}

	muscleID, err := s.muscleRepo.Create(ctx, muscle)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrMuscleAlreadyExists
		}
		return nil, err
	}
	muscle.ID = muscleID
	return muscle, nil
}

// GetMuscle retrieves a single catalog entry.
func (s *muscleService) GetMuscle(ctx context.Context, id primitive.ObjectID) (*domain.Muscle, error) {
	muscle, err := s.muscleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleNotFound
		}
		return nil, err
	}
	return muscle, nil
}

// GetMuscles retrieves the full catalog.
func (s *muscleService) GetMuscles(ctx context.Context) ([]domain.Muscle, error) {
	return s.muscleRepo.GetAll(ctx)
}

// UpdateMuscle modifies a catalog entry.
func (s *muscleService) UpdateMuscle(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Muscle, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	muscle, err := s.muscleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleNotFound
		}
		return nil, err
	}

	muscle.Name = validName
	muscle.Description = description

	if err := s.muscleRepo.Update(ctx, muscle); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleNotFound
		}
		return nil, err
	}
	return muscle, nil
}

// DeleteMuscle removes a catalog entry. Exercises referencing it keep the
// dangling ID; clients treat unknown muscle IDs as unlabeled.
func (s *muscleService) DeleteMuscle(ctx context.Context, id primitive.ObjectID) error {
	if err := s.muscleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMuscleNotFound
		}
		return err
	}
	return nil
}
