package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a catalog entry describing a movement. Workouts reference
// exercises through WorkoutExercise records rather than embedding them.
type Exercise struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID   `bson:"ownerId" json:"ownerId"` // User who created the entry
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	MuscleIDs   []primitive.ObjectID `bson:"muscleIds,omitempty" json:"muscleIds,omitempty"`
	// MediaObjectKey points at a demo image/video in object storage.
	// Empty until the owner attaches media via a presigned upload.
	MediaObjectKey string    `bson:"mediaObjectKey,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
