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

const workoutExerciseCollectionName = "workout_exercises"

// mongoWorkoutExerciseRepository implements repository.WorkoutExerciseRepository
type mongoWorkoutExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutExerciseRepository creates a new WorkoutExercise repository.
func NewMongoWorkoutExerciseRepository(db *mongo.Database) repository.WorkoutExerciseRepository {
	return &mongoWorkoutExerciseRepository{
		collection: db.Collection(workoutExerciseCollectionName),
	}
}

// Create inserts a new workout-exercise. A nil Order is assigned
// max(siblings)+1 immediately before the insert; if that scoping read
// fails, nothing is persisted.
func (r *mongoWorkoutExerciseRepository) Create(ctx context.Context, workoutExercise *domain.WorkoutExercise) (primitive.ObjectID, error) {
	if workoutExercise.WorkoutID == primitive.NilObjectID || workoutExercise.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout exercise requires workoutId and exerciseId")
	}

	order, err := assignOrdinal(ctx, r.collection, "workoutId", workoutExercise.WorkoutID, workoutExercise.Order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	workoutExercise.Order = &order

	workoutExercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workoutExercise.CreatedAt = now
	workoutExercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workoutExercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout exercise ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout-exercise by its ID.
func (r *mongoWorkoutExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutExercise, error) {
	var workoutExercise domain.WorkoutExercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workoutExercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workoutExercise, nil
}

// GetByWorkoutID retrieves a page of a workout's exercises sorted by
// order ascending (ties broken by _id to keep pagination stable), with
// the exercise name joined in. nameFilter, when non-empty, matches the
// joined name case-insensitively. Also returns the total count under the
// filter.
func (r *mongoWorkoutExerciseRepository) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID, nameFilter string, skip, take int64) ([]domain.WorkoutExercise, int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"workoutId": workoutID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         exerciseCollectionName,
			"localField":   "exerciseId",
			"foreignField": "_id",
			"as":           "exercise",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$exercise",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
	if nameFilter != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"exercise.name": bson.M{"$regex": nameFilter, "$options": "i"},
		}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$addFields", Value: bson.M{"exerciseName": "$exercise.name"}}},
		bson.D{{Key: "$project", Value: bson.M{"exercise": 0}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"results": bson.A{
				bson.D{{Key: "$skip", Value: skip}},
				bson.D{{Key: "$limit", Value: take}},
			},
			"total": bson.A{
				bson.D{{Key: "$count", Value: "count"}},
			},
		}}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var facets []struct {
		Results []domain.WorkoutExercise `bson:"results"`
		Total   []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
	}
	if err = cursor.All(ctx, &facets); err != nil {
		return nil, 0, err
	}
	if len(facets) == 0 {
		return []domain.WorkoutExercise{}, 0, nil
	}

	var total int64
	if len(facets[0].Total) > 0 {
		total = facets[0].Total[0].Count
	}
	return facets[0].Results, total, nil
}

// Update modifies a workout-exercise's mutable fields. WorkoutID never
// changes; moving a record between workouts is not supported.
func (r *mongoWorkoutExerciseRepository) Update(ctx context.Context, workoutExercise *domain.WorkoutExercise) error {
	if workoutExercise.ID == primitive.NilObjectID {
		return errors.New("workout exercise ID is required for update")
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"exerciseId": workoutExercise.ExerciseID,
			"notes":      workoutExercise.Notes,
			"order":      workoutExercise.Order,
			"updatedAt":  time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workoutExercise.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder writes a new order value and returns the matched count.
func (r *mongoWorkoutExerciseRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) (int64, error) {
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

// Delete removes a workout-exercise. Siblings keep their order values;
// gaps are permitted.
func (r *mongoWorkoutExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutExerciseIndexes creates necessary indexes. Call during
// startup. Note: no unique index on (workoutId, order); sibling orders
// are ordering hints, not keys.
func EnsureWorkoutExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
