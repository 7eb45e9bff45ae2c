package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is the root of the ownership chain: every workout-exercise and
// set below it is authorized against this record's UserID.
type Workout struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Name   string             `bson:"name" json:"name"`
	Notes  string             `bson:"notes,omitempty" json:"notes,omitempty"`
	// IsPublic makes the workout (and its children) readable by any
	// authenticated user. Mutation still requires ownership.
	IsPublic  bool      `bson:"isPublic" json:"isPublic"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
