package mongo

import (
	"context"
	"errors"

	"dkovalev/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ownershipHop is one link in a parent chain: look the current ID up in
// collection and continue with the ObjectID stored in parentField. The
// final hop's parentField is the owning user ID itself.
type ownershipHop struct {
	collection  string
	parentField string
}

// Relation paths from each child entity to Workout.userId.
var (
	workoutExerciseOwnerPath = []ownershipHop{
		{workoutExerciseCollectionName, "workoutId"},
		{workoutCollectionName, "userId"},
	}
	setOwnerPath = []ownershipHop{
		{setCollectionName, "workoutExerciseId"},
		{workoutExerciseCollectionName, "workoutId"},
		{workoutCollectionName, "userId"},
	}
)

// mongoOwnershipResolver implements repository.OwnershipResolver by
// walking a relation path one FindOne at a time.
type mongoOwnershipResolver struct {
	db *mongo.Database
}

// NewMongoOwnershipResolver creates an OwnershipResolver over db.
func NewMongoOwnershipResolver(db *mongo.Database) repository.OwnershipResolver {
	return &mongoOwnershipResolver{db: db}
}

func (r *mongoOwnershipResolver) ResolveWorkoutExerciseOwner(ctx context.Context, workoutExerciseID primitive.ObjectID) (primitive.ObjectID, error) {
	return r.resolve(ctx, workoutExerciseID, workoutExerciseOwnerPath)
}

func (r *mongoOwnershipResolver) ResolveSetOwner(ctx context.Context, setID primitive.ObjectID) (primitive.ObjectID, error) {
	return r.resolve(ctx, setID, setOwnerPath)
}

// resolve walks hops from childID to the owning user. Any missing document
// or dangling parent link yields repository.ErrNotFound.
func (r *mongoOwnershipResolver) resolve(ctx context.Context, childID primitive.ObjectID, hops []ownershipHop) (primitive.ObjectID, error) {
	current := childID
	for _, hop := range hops {
		opts := options.FindOne().SetProjection(bson.M{hop.parentField: 1})

		var doc bson.M
		err := r.db.Collection(hop.collection).FindOne(ctx, bson.M{"_id": current}, opts).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, repository.ErrNotFound
		}
		if err != nil {
			return primitive.NilObjectID, err
		}

		next, ok := doc[hop.parentField].(primitive.ObjectID)
		if !ok || next == primitive.NilObjectID {
			// Dangling parent link; treat the chain as broken.
			return primitive.NilObjectID, repository.ErrNotFound
		}
		current = next
	}
	return current, nil
}
