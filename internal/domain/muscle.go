package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Muscle is a shared catalog entry (e.g. "Chest", "Quadriceps") that
// exercises reference by ID.
type Muscle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // Unique within the catalog
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
