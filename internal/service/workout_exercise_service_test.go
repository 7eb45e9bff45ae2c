package service

import (
	"context"
	"testing"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minimal fakes: embed the interface and override only what the test
// path touches. An unexpected call panics on the nil embed, which is the
// failure we want.

type fakeWorkoutRepo struct {
	repository.WorkoutRepository
	workouts map[primitive.ObjectID]*domain.Workout
}

func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return workout, nil
}

type fakeExerciseRepo struct {
	repository.ExerciseRepository
	exercises map[primitive.ObjectID]*domain.Exercise
}

func (f *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := f.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return exercise, nil
}

type fakeWorkoutExerciseRepo struct {
	repository.WorkoutExerciseRepository
	records map[primitive.ObjectID]*domain.WorkoutExercise
	created *domain.WorkoutExercise
}

func (f *fakeWorkoutExerciseRepo) Create(ctx context.Context, we *domain.WorkoutExercise) (primitive.ObjectID, error) {
	f.created = we
	return primitive.NewObjectID(), nil
}

func (f *fakeWorkoutExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutExercise, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return record, nil
}

func (f *fakeWorkoutExerciseRepo) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) (int64, error) {
	if _, ok := f.records[id]; !ok {
		return 0, nil
	}
	f.records[id].Order = &order
	return 1, nil
}

type fakeOwnershipResolver struct {
	owners map[primitive.ObjectID]primitive.ObjectID
}

func (f *fakeOwnershipResolver) ResolveWorkoutExerciseOwner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	owner, ok := f.owners[id]
	if !ok {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return owner, nil
}

func (f *fakeOwnershipResolver) ResolveSetOwner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	return f.ResolveWorkoutExerciseOwner(ctx, id)
}

// passthroughTxRunner runs the callback without transactional semantics;
// rollback behavior is covered by the coordinator tests.
type passthroughTxRunner struct{}

func (passthroughTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type serviceFixture struct {
	owner    primitive.ObjectID
	stranger primitive.ObjectID

	workoutRepo         *fakeWorkoutRepo
	exerciseRepo        *fakeExerciseRepo
	workoutExerciseRepo *fakeWorkoutExerciseRepo
	ownership           *fakeOwnershipResolver
	svc                 WorkoutExerciseService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		owner:               primitive.NewObjectID(),
		stranger:            primitive.NewObjectID(),
		workoutRepo:         &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)},
		exerciseRepo:        &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)},
		workoutExerciseRepo: &fakeWorkoutExerciseRepo{records: make(map[primitive.ObjectID]*domain.WorkoutExercise)},
		ownership:           &fakeOwnershipResolver{owners: make(map[primitive.ObjectID]primitive.ObjectID)},
	}
	f.svc = NewWorkoutExerciseService(f.workoutExerciseRepo, f.workoutRepo, f.exerciseRepo, f.ownership, passthroughTxRunner{})
	return f
}

func (f *serviceFixture) addWorkout(userID primitive.ObjectID, public bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.workoutRepo.workouts[id] = &domain.Workout{ID: id, UserID: userID, Name: "Push Day", IsPublic: public}
	return id
}

func (f *serviceFixture) addExercise() primitive.ObjectID {
	id := primitive.NewObjectID()
	f.exerciseRepo.exercises[id] = &domain.Exercise{ID: id, Name: "Bench Press"}
	return id
}

func (f *serviceFixture) addWorkoutExercise(workoutID, ownerID primitive.ObjectID, order int) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.workoutExerciseRepo.records[id] = &domain.WorkoutExercise{ID: id, WorkoutID: workoutID, Order: &order}
	f.ownership.owners[id] = ownerID
	return id
}

func TestAddExerciseToWorkout(t *testing.T) {
	ctx := context.Background()

	t.Run("nil order reaches the repository unassigned", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, false)
		exerciseID := f.addExercise()

		we, err := f.svc.AddExerciseToWorkout(ctx, f.owner, workoutID, exerciseID, "warm up first", nil)
		require.NoError(t, err)
		require.NotNil(t, f.workoutExerciseRepo.created)
		assert.Nil(t, f.workoutExerciseRepo.created.Order)
		assert.Equal(t, workoutID, we.WorkoutID)
		assert.False(t, we.ID.IsZero())
	})

	t.Run("explicit order is passed through untouched", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, false)
		exerciseID := f.addExercise()
		order := 7

		_, err := f.svc.AddExerciseToWorkout(ctx, f.owner, workoutID, exerciseID, "", &order)
		require.NoError(t, err)
		require.NotNil(t, f.workoutExerciseRepo.created.Order)
		assert.Equal(t, 7, *f.workoutExerciseRepo.created.Order)
	})

	t.Run("only the workout owner may add", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, true) // public, but still not writable
		exerciseID := f.addExercise()

		_, err := f.svc.AddExerciseToWorkout(ctx, f.stranger, workoutID, exerciseID, "", nil)
		assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
	})

	t.Run("unknown workout", func(t *testing.T) {
		f := newServiceFixture()
		exerciseID := f.addExercise()

		_, err := f.svc.AddExerciseToWorkout(ctx, f.owner, primitive.NewObjectID(), exerciseID, "", nil)
		assert.ErrorIs(t, err, ErrWorkoutNotFound)
	})

	t.Run("unknown catalog exercise", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, false)

		_, err := f.svc.AddExerciseToWorkout(ctx, f.owner, workoutID, primitive.NewObjectID(), "", nil)
		assert.ErrorIs(t, err, ErrExerciseNotFound)
	})

	t.Run("negative explicit order is rejected", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, false)
		exerciseID := f.addExercise()
		order := -1

		_, err := f.svc.AddExerciseToWorkout(ctx, f.owner, workoutID, exerciseID, "", &order)
		assert.ErrorIs(t, err, domain.ErrInvalidOrderValue)
	})
}

func TestGetWorkoutExerciseVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("owner reads a private workout's record", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, false)
		weID := f.addWorkoutExercise(workoutID, f.owner, 0)

		we, err := f.svc.GetWorkoutExercise(ctx, f.owner, weID)
		require.NoError(t, err)
		assert.Equal(t, weID, we.ID)
	})

	t.Run("stranger reads a public workout's record", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, true)
		weID := f.addWorkoutExercise(workoutID, f.owner, 0)

		_, err := f.svc.GetWorkoutExercise(ctx, f.stranger, weID)
		assert.NoError(t, err)
	})

	t.Run("private workout is invisible, not forbidden", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, false)
		weID := f.addWorkoutExercise(workoutID, f.owner, 0)

		_, err := f.svc.GetWorkoutExercise(ctx, f.stranger, weID)
		assert.ErrorIs(t, err, ErrWorkoutNotFound)
	})

	t.Run("unknown record", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.svc.GetWorkoutExercise(ctx, f.owner, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrWorkoutExerciseNotFound)
	})
}

func TestGetWorkoutExercisesPagination(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	workoutID := f.addWorkout(f.owner, false)

	_, _, err := f.svc.GetWorkoutExercises(ctx, f.owner, workoutID, "", -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)

	_, _, err = f.svc.GetWorkoutExercises(ctx, f.owner, workoutID, "", 0, 500)
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)
}

func TestDeleteWorkoutExerciseOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("stranger is forbidden even on a public workout", func(t *testing.T) {
		f := newServiceFixture()
		workoutID := f.addWorkout(f.owner, true)
		weID := f.addWorkoutExercise(workoutID, f.owner, 0)

		err := f.svc.DeleteWorkoutExercise(ctx, f.stranger, weID)
		assert.ErrorIs(t, err, ErrWorkoutExerciseAccessDenied)
	})

	t.Run("dangling record reads as not found", func(t *testing.T) {
		f := newServiceFixture()

		err := f.svc.DeleteWorkoutExercise(ctx, f.owner, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrWorkoutExerciseNotFound)
	})
}

func TestUpdateOrdersThroughService(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	workoutID := f.addWorkout(f.owner, false)
	first := f.addWorkoutExercise(workoutID, f.owner, 0)
	second := f.addWorkoutExercise(workoutID, f.owner, 1)

	err := f.svc.UpdateOrders(ctx, f.owner, []OrderItem{
		{ID: second.Hex(), Order: 0},
		{ID: first.Hex(), Order: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, *f.workoutExerciseRepo.records[second].Order)
	assert.Equal(t, 1, *f.workoutExerciseRepo.records[first].Order)
}
