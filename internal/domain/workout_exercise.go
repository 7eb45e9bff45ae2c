package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExercise places a catalog exercise inside a workout. WorkoutID is
// fixed at creation; reordering never moves a record between workouts.
type WorkoutExercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID  primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	// Order is nil on a pending record; the repository assigns
	// max(siblings)+1 (or 0 for an empty workout) at insert time.
	Order     *int      `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// ExerciseName is populated only by joined list reads, never stored.
	ExerciseName string `bson:"exerciseName,omitempty" json:"exerciseName,omitempty"`
}
