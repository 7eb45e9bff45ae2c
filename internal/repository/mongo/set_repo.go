package mongo

import (
	"context"
	"errors"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const setCollectionName = "sets"

// mongoSetRepository implements repository.SetRepository
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new Set repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// Create inserts a new set. A nil Order is assigned max(siblings)+1
// immediately before the insert; if that scoping read fails, nothing is
// persisted.
func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.WorkoutExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set requires workoutExerciseId")
	}

	order, err := assignOrdinal(ctx, r.collection, "workoutExerciseId", set.WorkoutExerciseID, set.Order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	set.Order = &order

	set.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single set by its ID.
func (r *mongoSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error) {
	var set domain.Set
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

// GetByWorkoutExerciseID retrieves a page of a workout-exercise's sets
// sorted by order ascending (ties broken by _id to keep pagination
// stable) plus the total count.
func (r *mongoSetRepository) GetByWorkoutExerciseID(ctx context.Context, workoutExerciseID primitive.ObjectID, skip, take int64) ([]domain.Set, int64, error) {
	filter := bson.M{"workoutExerciseId": workoutExerciseID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(take)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var sets []domain.Set
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, 0, err
	}
	return sets, total, nil
}

// Update modifies a set's mutable fields. WorkoutExerciseID never changes.
func (r *mongoSetRepository) Update(ctx context.Context, set *domain.Set) error {
	if set.ID == primitive.NilObjectID {
		return errors.New("set ID is required for update")
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"reps":      set.Reps,
			"weight":    set.Weight,
			"order":     set.Order,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": set.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder writes a new order value and returns the matched count.
func (r *mongoSetRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) (int64, error) {
	updateDoc := bson.M{
		"$set": bson.M{
			"order":     order,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, updateDoc)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// Delete removes a set. Siblings keep their order values; gaps are
// permitted.
func (r *mongoSetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSetIndexes creates necessary indexes. Call during startup. Note:
// no unique index on (workoutExerciseId, order); sibling orders are
// ordering hints, not keys.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutExerciseId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
