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
	ErrSetNotFound     = errors.New("set not found")
	ErrSetAccessDenied = errors.New("access denied to modify this set")
)

// --- Service Interface ---
type SetService interface {
	// AddSet creates a set under a workout-exercise. A nil order is
	// auto-assigned at insert; an explicit order is persisted as given.
	AddSet(ctx context.Context, userID, workoutExerciseID primitive.ObjectID, reps int, weight float64, order *int) (*domain.Set, error)
	GetSet(ctx context.Context, requesterID, setID primitive.ObjectID) (*domain.Set, error)
	// GetSets lists a workout-exercise's sets sorted by order ascending,
	// visible to the owner or anyone if the root workout is public.
	GetSets(ctx context.Context, requesterID, workoutExerciseID primitive.ObjectID, skip, take int64) ([]domain.Set, int64, error)
	UpdateSet(ctx context.Context, userID, setID primitive.ObjectID, reps int, weight float64, order *int) (*domain.Set, error)
	DeleteSet(ctx context.Context, userID, setID primitive.ObjectID) error
	// UpdateOrders applies a bulk reorder batch atomically; any failing
	// item aborts the whole batch.
	UpdateOrders(ctx context.Context, userID primitive.ObjectID, items []OrderItem) error
}

// --- Service Implementation ---

// setService implements the SetService interface.
type setService struct {
	setRepo             repository.SetRepository
	workoutExerciseRepo repository.WorkoutExerciseRepository
	workoutRepo         repository.WorkoutRepository
	ownership           repository.OwnershipResolver
	reorder             *reorderCoordinator
}

// NewSetService creates a new instance of setService.
func NewSetService(
	setRepo repository.SetRepository,
	workoutExerciseRepo repository.WorkoutExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	ownership repository.OwnershipResolver,
	tx repository.TxRunner,
) SetService {
	return &setService{
		setRepo:             setRepo,
		workoutExerciseRepo: workoutExerciseRepo,
		workoutRepo:         workoutRepo,
		ownership:           ownership,
		reorder: &reorderCoordinator{
			tx:           tx,
			resolveOwner: ownership.ResolveSetOwner,
			updateOrder:  setRepo.UpdateOrder,
		},
	}
}

// AddSet records a performed set under a workout-exercise the user owns.
func (s *setService) AddSet(ctx context.Context, userID, workoutExerciseID primitive.ObjectID, reps int, weight float64, order *int) (*domain.Set, error) {
	if userID == primitive.NilObjectID || workoutExerciseID == primitive.NilObjectID {
		return nil, errors.New("user ID and workout exercise ID are required")
	}
	validReps, err := domain.NewSetReps(reps)
	if err != nil {
		return nil, err
	}
	validWeight, err := domain.NewSetWeight(weight)
	if err != nil {
		return nil, err
	}
	if order != nil {
		if _, err := domain.NewOrderValue(*order); err != nil {
			return nil, err
		}
	}

	// Only the owner of the root workout may add sets.
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

	set := &domain.Set{
		WorkoutExerciseID: workoutExerciseID,
		Reps:              validReps,
		Weight:            validWeight,
		Order:             order, // nil means assign-on-insert
	}

	setID, err := s.setRepo.Create(ctx, set)
	if err != nil {
		return nil, err
	}
	set.ID = setID
	return set, nil
}

// GetSet retrieves one set the requester may see.
func (s *setService) GetSet(ctx context.Context, requesterID, setID primitive.ObjectID) (*domain.Set, error) {
	set, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	if err := s.checkVisibility(ctx, requesterID, set.WorkoutExerciseID); err != nil {
		return nil, err
	}
	return set, nil
}

// GetSets lists a workout-exercise's sets ordered by their ordinal.
func (s *setService) GetSets(ctx context.Context, requesterID, workoutExerciseID primitive.ObjectID, skip, take int64) ([]domain.Set, int64, error) {
	skip, take, err := domain.NewPagination(skip, take)
	if err != nil {
		return nil, 0, err
	}
	if err := s.checkVisibility(ctx, requesterID, workoutExerciseID); err != nil {
		return nil, 0, err
	}
	return s.setRepo.GetByWorkoutExerciseID(ctx, workoutExerciseID, skip, take)
}

// UpdateSet modifies a set after checking ownership through the parent
// chain. An explicit order value here is a direct single-record
// reassignment, outside the bulk path.
func (s *setService) UpdateSet(ctx context.Context, userID, setID primitive.ObjectID, reps int, weight float64, order *int) (*domain.Set, error) {
	validReps, err := domain.NewSetReps(reps)
	if err != nil {
		return nil, err
	}
	validWeight, err := domain.NewSetWeight(weight)
	if err != nil {
		return nil, err
	}
	if order != nil {
		if _, err := domain.NewOrderValue(*order); err != nil {
			return nil, err
		}
	}

	owner, err := s.ownership.ResolveSetOwner(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	if owner != userID {
		return nil, ErrSetAccessDenied
	}

	set, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}

	set.Reps = validReps
	set.Weight = validWeight
	if order != nil {
		set.Order = order
	}

	if err := s.setRepo.Update(ctx, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return set, nil
}

// DeleteSet removes a set after checking ownership. Sibling order values
// are not renumbered.
func (s *setService) DeleteSet(ctx context.Context, userID, setID primitive.ObjectID) error {
	owner, err := s.ownership.ResolveSetOwner(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSetNotFound
		}
		return err
	}
	if owner != userID {
		return ErrSetAccessDenied
	}

	if err := s.setRepo.Delete(ctx, setID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSetNotFound
		}
		return err
	}
	return nil
}

// UpdateOrders applies a bulk reorder of sets.
func (s *setService) UpdateOrders(ctx context.Context, userID primitive.ObjectID, items []OrderItem) error {
	return s.reorder.Apply(ctx, userID, items)
}

// checkVisibility enforces the read-time rule through the set's parent
// chain: owner or public workout. Invisible reads as not found.
func (s *setService) checkVisibility(ctx context.Context, requesterID, workoutExerciseID primitive.ObjectID) error {
	workoutExercise, err := s.workoutExerciseRepo.GetByID(ctx, workoutExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutExerciseNotFound
		}
		return err
	}
	workout, err := s.workoutRepo.GetByID(ctx, workoutExercise.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if workout.UserID != requesterID && !workout.IsPublic {
		return ErrWorkoutExerciseNotFound
	}
	return nil
}
