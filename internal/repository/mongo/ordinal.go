package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ordinal assignment for ordered child collections (workout_exercises
// under a workout, sets under a workout-exercise). A pending record with a
// nil Order gets max(siblings)+1, or 0 for an empty scope; an explicit
// Order from the caller is never overridden.
//
// Known race: two concurrent inserts into the same scope can read the same
// max and persist duplicate order values. There is no unique index on
// (scopeField, order); sibling orders are ordering hints, not keys, and
// duplicates merely make the relative display order of the two records
// unspecified until the next reorder.

// nextOrdinal decides the order value to persist for a pending record.
func nextOrdinal(requested *int, maxInScope *int) int {
	if requested != nil {
		return *requested
	}
	if maxInScope == nil {
		return 0
	}
	return *maxInScope + 1
}

// maxOrderInScope reads the highest order currently persisted among
// siblings sharing the parent-scope key. Returns nil when the scope is
// empty.
func maxOrderInScope(ctx context.Context, coll *mongo.Collection, scopeField string, scopeID primitive.ObjectID) (*int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})

	var sibling struct {
		Order *int `bson:"order"`
	}
	err := coll.FindOne(ctx, bson.M{scopeField: scopeID}, opts).Decode(&sibling)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sibling.Order, nil
}

// assignOrdinal resolves the order value for a record about to be
// inserted. Runs immediately before InsertOne; if the scoping read fails,
// the caller must fail the insert rather than persist an unassigned order.
func assignOrdinal(ctx context.Context, coll *mongo.Collection, scopeField string, scopeID primitive.ObjectID, requested *int) (int, error) {
	if requested != nil {
		// Explicit values skip the max-lookup entirely.
		return *requested, nil
	}
	max, err := maxOrderInScope(ctx, coll, scopeField, scopeID)
	if err != nil {
		return 0, err
	}
	return nextOrdinal(nil, max), nil
}
