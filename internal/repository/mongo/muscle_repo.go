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

const muscleCollectionName = "muscles"

// mongoMuscleRepository implements repository.MuscleRepository
type mongoMuscleRepository struct {
	collection *mongo.Collection
}

// NewMongoMuscleRepository creates a new Muscle repository.
func NewMongoMuscleRepository(db *mongo.Database) repository.MuscleRepository {
	return &mongoMuscleRepository{
		collection: db.Collection(muscleCollectionName),
	}
}

// Create inserts a new muscle catalog entry.
func (r *mongoMuscleRepository) Create(ctx context.Context, muscle *domain.Muscle) (primitive.ObjectID, error) {
	if muscle.Name == "" {
		return primitive.NilObjectID, errors.New("muscle requires a name")
	}
	muscle.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	muscle.CreatedAt = now
	muscle.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, muscle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted muscle ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single muscle by its ID.
func (r *mongoMuscleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Muscle, error) {
	var muscle domain.Muscle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&muscle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &muscle, nil
}

// GetAll retrieves the full muscle catalog, sorted by name.
func (r *mongoMuscleRepository) GetAll(ctx context.Context) ([]domain.Muscle, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var muscles []domain.Muscle
	if err = cursor.All(ctx, &muscles); err != nil {
		return nil, err
	}
	return muscles, nil
}

// Update modifies a muscle's name and description.
func (r *mongoMuscleRepository) Update(ctx context.Context, muscle *domain.Muscle) error {
	if muscle.ID == primitive.NilObjectID {
		return errors.New("muscle ID is required for update")
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"name":        muscle.Name,
			"description": muscle.Description,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": muscle.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a muscle from the catalog.
func (r *mongoMuscleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMuscleIndexes creates necessary indexes. Call during startup.
func EnsureMuscleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
