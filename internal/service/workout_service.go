package service

import (
	"context"
	"errors"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access denied to modify this workout")
)

// --- Service Interface ---
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, name, notes string, isPublic bool) (*domain.Workout, error)
	// GetWorkout applies the visibility rule: the owner always sees the
	// workout, anyone else only if it is public. Invisible workouts read
	// as not found, never as forbidden.
	GetWorkout(ctx context.Context, requesterID, workoutID primitive.ObjectID) (*domain.Workout, error)
	GetUserWorkouts(ctx context.Context, userID primitive.ObjectID, skip, take int64) ([]domain.Workout, int64, error)
	UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, name, notes string, isPublic bool) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// CreateWorkout creates a new workout owned by the user.
func (s *workoutService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, name, notes string, isPublic bool) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:   userID,
		Name:     validName,
		Notes:    notes,
		IsPublic: isPublic,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	return workout, nil
}

// GetWorkout retrieves a workout the requester is allowed to see.
func (s *workoutService) GetWorkout(ctx context.Context, requesterID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != requesterID && !workout.IsPublic {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}

// GetUserWorkouts retrieves a page of the user's own workouts.
func (s *workoutService) GetUserWorkouts(ctx context.Context, userID primitive.ObjectID, skip, take int64) ([]domain.Workout, int64, error) {
	skip, take, err := domain.NewPagination(skip, take)
	if err != nil {
		return nil, 0, err
	}
	return s.workoutRepo.GetByUserID(ctx, userID, skip, take)
}

// UpdateWorkout modifies a workout after checking ownership.
func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, name, notes string, isPublic bool) (*domain.Workout, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}

	workout.Name = validName
	workout.Notes = notes
	workout.IsPublic = isPublic

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes a workout. The repository filter enforces
// ownership, so a foreign workout reads as not found.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}
