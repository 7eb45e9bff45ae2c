package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Set records one performed set (reps at a weight) under a workout-exercise.
// WorkoutExerciseID is fixed at creation.
type Set struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutExerciseID primitive.ObjectID `bson:"workoutExerciseId" json:"workoutExerciseId"`
	Reps              int                `bson:"reps" json:"reps"`
	Weight            float64            `bson:"weight" json:"weight"` // Kilograms; 0 for bodyweight
	// Order is nil on a pending record; assigned at insert like
	// WorkoutExercise.Order.
	Order     *int      `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
