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
	ErrWorkoutExerciseNotFound     = errors.New("workout exercise not found")
	ErrWorkoutExerciseAccessDenied = errors.New("access denied to modify this workout exercise")
)

// --- Service Interface ---
type WorkoutExerciseService interface {
	// AddExerciseToWorkout creates a workout-exercise. A nil order is
	// auto-assigned at insert; an explicit order is persisted as given.
	AddExerciseToWorkout(ctx context.Context, userID, workoutID, exerciseID primitive.ObjectID, notes string, order *int) (*domain.WorkoutExercise, error)
	GetWorkoutExercise(ctx context.Context, requesterID, workoutExerciseID primitive.ObjectID) (*domain.WorkoutExercise, error)
	// GetWorkoutExercises lists a workout's exercises sorted by order
	// ascending, visible to the owner or anyone if the workout is public.
	GetWorkoutExercises(ctx context.Context, requesterID, workoutID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.WorkoutExercise, int64, error)
	UpdateWorkoutExercise(ctx context.Context, userID, workoutExerciseID primitive.ObjectID, exerciseID primitive.ObjectID, notes string, order *int) (*domain.WorkoutExercise, error)
	DeleteWorkoutExercise(ctx context.Context, userID, workoutExerciseID primitive.ObjectID) error
	// UpdateOrders applies a bulk reorder batch atomically; any failing
	// item aborts the whole batch.
	UpdateOrders(ctx context.Context, userID primitive.ObjectID, items []OrderItem) error
}

// --- Service Implementation ---

// workoutExerciseService implements the WorkoutExerciseService interface.
type workoutExerciseService struct {
	workoutExerciseRepo repository.WorkoutExerciseRepository
	workoutRepo         repository.WorkoutRepository
	exerciseRepo        repository.ExerciseRepository
	ownership           repository.OwnershipResolver
	reorder             *reorderCoordinator
}

// NewWorkoutExerciseService creates a new instance of workoutExerciseService.
func NewWorkoutExerciseService(
	workoutExerciseRepo repository.WorkoutExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	ownership repository.OwnershipResolver,
	tx repository.TxRunner,
) WorkoutExerciseService {
	return &workoutExerciseService{
		workoutExerciseRepo: workoutExerciseRepo,
		workoutRepo:         workoutRepo,
		exerciseRepo:        exerciseRepo,
		ownership:           ownership,
		reorder: &reorderCoordinator{
			tx:           tx,
			resolveOwner: ownership.ResolveWorkoutExerciseOwner,
			updateOrder:  workoutExerciseRepo.UpdateOrder,
		},
	}
}

// AddExerciseToWorkout places a catalog exercise inside a workout.
func (s *workoutExerciseService) AddExerciseToWorkout(ctx context.Context, userID, workoutID, exerciseID primitive.ObjectID, notes string, order *int) (*domain.WorkoutExercise, error) {
	if userID == primitive.NilObjectID || workoutID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return nil, errors.New("user ID, workout ID, and exercise ID are required")
	}
	if order != nil {
		if _, err := domain.NewOrderValue(*order); err != nil {
			return nil, err
		}
	}

	// Only the workout owner may add exercises to it.
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

	// Verify the referenced catalog exercise exists.
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	workoutExercise := &domain.WorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Notes:      notes,
		Order:      order, // nil means assign-on-insert
	}

	workoutExerciseID, err := s.workoutExerciseRepo.Create(ctx, workoutExercise)
	if err != nil {
		return nil, err
	}
	workoutExercise.ID = workoutExerciseID
	return workoutExercise, nil
}

// GetWorkoutExercise retrieves one workout-exercise the requester may see.
func (s *workoutExerciseService) GetWorkoutExercise(ctx context.Context, requesterID, workoutExerciseID primitive.ObjectID) (*domain.WorkoutExercise, error) {
	workoutExercise, err := s.workoutExerciseRepo.GetByID(ctx, workoutExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutExerciseNotFound
		}
		return nil, err
	}
	if err := s.checkVisibility(ctx, requesterID, workoutExercise.WorkoutID); err != nil {
		return nil, err
	}
	return workoutExercise, nil
}

// GetWorkoutExercises lists a workout's exercises ordered by their
// ordinal, paginated, with an optional exercise-name filter.
func (s *workoutExerciseService) GetWorkoutExercises(ctx context.Context, requesterID, workoutID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.WorkoutExercise, int64, error) {
	skip, take, err := domain.NewPagination(skip, take)
	if err != nil {
		return nil, 0, err
	}
	if err := s.checkVisibility(ctx, requesterID, workoutID); err != nil {
		return nil, 0, err
	}
	return s.workoutExerciseRepo.GetByWorkoutID(ctx, workoutID, nameFilter, skip, take)
}

// UpdateWorkoutExercise modifies a workout-exercise after checking
// ownership through the parent chain. An explicit order value here is a
// direct single-record reassignment, outside the bulk path.
func (s *workoutExerciseService) UpdateWorkoutExercise(ctx context.Context, userID, workoutExerciseID primitive.ObjectID, exerciseID primitive.ObjectID, notes string, order *int) (*domain.WorkoutExercise, error) {
	if order != nil {
		if _, err := domain.NewOrderValue(*order); err != nil {
			return nil, err
		}
	}

	owner, err := s.ownership.ResolveWorkoutExerciseOwner(ctx, workoutExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutExerciseNotFound
		}
		return nil, err
	}
	if owner != userID {
		return nil, ErrWorkoutExerciseAccessDenied
	}

	workoutExercise, err := s.workoutExerciseRepo.GetByID(ctx, workoutExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutExerciseNotFound
		}
		return nil, err
	}

	if exerciseID != primitive.NilObjectID {
		if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		workoutExercise.ExerciseID = exerciseID
	}
	workoutExercise.Notes = notes
	if order != nil {
		workoutExercise.Order = order
	}

	if err := s.workoutExerciseRepo.Update(ctx, workoutExercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutExerciseNotFound
		}
		return nil, err
	}
	return workoutExercise, nil
}

// DeleteWorkoutExercise removes a workout-exercise after checking
// ownership. Sibling order values are not renumbered.
func (s *workoutExerciseService) DeleteWorkoutExercise(ctx context.Context, userID, workoutExerciseID primitive.ObjectID) error {
	owner, err := s.ownership.ResolveWorkoutExerciseOwner(ctx, workoutExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutExerciseNotFound
		}
		return err
	}
	if owner != userID {
		return ErrWorkoutExerciseAccessDenied
	}

	if err := s.workoutExerciseRepo.Delete(ctx, workoutExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutExerciseNotFound
		}
		return err
	}
	return nil
}

// UpdateOrders applies a bulk reorder of workout-exercises.
func (s *workoutExerciseService) UpdateOrders(ctx context.Context, userID primitive.ObjectID, items []OrderItem) error {
	return s.reorder.Apply(ctx, userID, items)
}

// checkVisibility enforces the read-time rule: owner or public workout.
// Invisible reads as not found rather than forbidden.
func (s *workoutExerciseService) checkVisibility(ctx context.Context, requesterID, workoutID primitive.ObjectID) error {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if workout.UserID != requesterID && !workout.IsPublic {
		return ErrWorkoutNotFound
	}
	return nil
}
