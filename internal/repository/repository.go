package repository

import (
	"context"

	"dkovalev/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxRunner executes a callback inside one database transaction. Any error
// returned by the callback rolls the transaction back; nil commits it.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OwnershipResolver walks a child record's parent chain up to the owning
// Workout.UserID. Returns ErrNotFound if the child does not exist or any
// parent link is dangling. Pure read; the authorization decision (owner
// vs requester comparison) belongs to the caller.
type OwnershipResolver interface {
	ResolveWorkoutExerciseOwner(ctx context.Context, workoutExerciseID primitive.ObjectID) (primitive.ObjectID, error)
	ResolveSetOwner(ctx context.Context, setID primitive.ObjectID) (primitive.ObjectID, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// MuscleRepository defines the interface for the shared muscle catalog.
type MuscleRepository interface {
	Create(ctx context.Context, muscle *domain.Muscle) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Muscle, error)
	GetAll(ctx context.Context) ([]domain.Muscle, error)
	Update(ctx context.Context, muscle *domain.Muscle) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByOwnerID returns a page of the owner's exercises plus the total
	// count under the optional case-insensitive name filter.
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.Exercise, int64, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, skip, take int64) ([]domain.Workout, int64, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// WorkoutExerciseRepository manages the ordered collection of exercises
// under a workout. Create assigns Order when the caller left it nil.
type WorkoutExerciseRepository interface {
	Create(ctx context.Context, workoutExercise *domain.WorkoutExercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutExercise, error)
	// GetByWorkoutID returns a page sorted by order ascending plus the
	// total count. nameFilter matches the joined exercise name.
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.WorkoutExercise, int64, error)
	Update(ctx context.Context, workoutExercise *domain.WorkoutExercise) error
	// UpdateOrder writes a new order value and reports the matched-row
	// count so callers can detect writes that hit nothing.
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SetRepository manages the ordered collection of sets under a
// workout-exercise. Create assigns Order when the caller left it nil.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error)
	GetByWorkoutExerciseID(ctx context.Context, workoutExerciseID primitive.ObjectID, skip, take int64) ([]domain.Set, int64, error)
	Update(ctx context.Context, set *domain.Set) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
