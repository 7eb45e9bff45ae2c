package service

import (
	"context"
	"errors"
	"testing"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reorderFixture backs a coordinator with an in-memory store. Writes go
// through a snapshot that is discarded when the transaction callback
// fails, mirroring a rolled-back session.
type reorderFixture struct {
	owners  map[primitive.ObjectID]primitive.ObjectID
	orders  map[primitive.ObjectID]int
	commits int
	aborts  int

	resolveErr error
}

func newReorderFixture() *reorderFixture {
	return &reorderFixture{
		owners: make(map[primitive.ObjectID]primitive.ObjectID),
		orders: make(map[primitive.ObjectID]int),
	}
}

func (f *reorderFixture) add(owner primitive.ObjectID, order int) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.owners[id] = owner
	f.orders[id] = order
	return id
}

func (f *reorderFixture) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := make(map[primitive.ObjectID]int, len(f.orders))
	for id, order := range f.orders {
		snapshot[id] = order
	}
	if err := fn(ctx); err != nil {
		f.orders = snapshot
		f.aborts++
		return err
	}
	f.commits++
	return nil
}

func (f *reorderFixture) resolveOwner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	if f.resolveErr != nil {
		return primitive.NilObjectID, f.resolveErr
	}
	owner, ok := f.owners[id]
	if !ok {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return owner, nil
}

func (f *reorderFixture) updateOrder(ctx context.Context, id primitive.ObjectID, order int) (int64, error) {
	if _, ok := f.orders[id]; !ok {
		return 0, nil
	}
	f.orders[id] = order
	return 1, nil
}

func (f *reorderFixture) coordinator() *reorderCoordinator {
	return &reorderCoordinator{
		tx:           f,
		resolveOwner: f.resolveOwner,
		updateOrder:  f.updateOrder,
	}
}

func TestReorderCoordinatorApply(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	t.Run("applies every item in the batch", func(t *testing.T) {
		f := newReorderFixture()
		a := f.add(user, 0)
		b := f.add(user, 1)
		c := f.add(user, 2)

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: c.Hex(), Order: 0},
			{ID: a.Hex(), Order: 1},
			{ID: b.Hex(), Order: 2},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, f.commits)
		assert.Equal(t, 0, f.orders[c])
		assert.Equal(t, 1, f.orders[a])
		assert.Equal(t, 2, f.orders[b])
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := newReorderFixture()
		a := f.add(user, 0)
		b := f.add(user, 1)
		items := []OrderItem{
			{ID: b.Hex(), Order: 0},
			{ID: a.Hex(), Order: 1},
		}

		require.NoError(t, f.coordinator().Apply(ctx, user, items))
		require.NoError(t, f.coordinator().Apply(ctx, user, items))

		assert.Equal(t, 0, f.orders[b])
		assert.Equal(t, 1, f.orders[a])
	})

	t.Run("unknown id fails the whole batch", func(t *testing.T) {
		f := newReorderFixture()
		a := f.add(user, 0)
		missing := primitive.NewObjectID()

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: a.Hex(), Order: 5},
			{ID: missing.Hex(), Order: 6},
		})
		require.ErrorIs(t, err, ErrOrderTargetNotFound)
		assert.Contains(t, err.Error(), missing.Hex())

		// The earlier item's write must not survive the abort.
		assert.Equal(t, 0, f.orders[a])
		assert.Equal(t, 1, f.aborts)
		assert.Equal(t, 0, f.commits)
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		f := newReorderFixture()

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: "not-a-hex-object-id", Order: 0},
		})
		require.ErrorIs(t, err, ErrOrderTargetNotFound)
	})

	t.Run("foreign record fails the whole batch", func(t *testing.T) {
		f := newReorderFixture()
		mine := f.add(user, 0)
		theirs := f.add(stranger, 0)

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: mine.Hex(), Order: 1},
			{ID: theirs.Hex(), Order: 2},
		})
		require.ErrorIs(t, err, ErrOrderAccessDenied)
		assert.Contains(t, err.Error(), theirs.Hex())

		assert.Equal(t, 0, f.orders[mine])
		assert.Equal(t, 0, f.orders[theirs])
	})

	t.Run("negative order is rejected before any write", func(t *testing.T) {
		f := newReorderFixture()
		a := f.add(user, 0)

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: a.Hex(), Order: -1},
		})
		require.ErrorIs(t, err, domain.ErrInvalidOrderValue)
		assert.Equal(t, 0, f.orders[a])
	})

	t.Run("zero-match write surfaces as update failure", func(t *testing.T) {
		f := newReorderFixture()
		a := f.add(user, 0)
		// Ghost resolves an owner but has no row to write.
		ghost := primitive.NewObjectID()
		f.owners[ghost] = user

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: a.Hex(), Order: 3},
			{ID: ghost.Hex(), Order: 4},
		})
		require.ErrorIs(t, err, ErrOrderUpdateFailed)
		assert.Contains(t, err.Error(), ghost.Hex())
		assert.Equal(t, 0, f.orders[a])
	})

	t.Run("resolver infrastructure error passes through", func(t *testing.T) {
		f := newReorderFixture()
		a := f.add(user, 0)
		boom := errors.New("connection reset")
		f.resolveErr = boom

		err := f.coordinator().Apply(ctx, user, []OrderItem{
			{ID: a.Hex(), Order: 1},
		})
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrOrderTargetNotFound)
	})

	t.Run("empty batch commits without writes", func(t *testing.T) {
		f := newReorderFixture()
		require.NoError(t, f.coordinator().Apply(ctx, user, nil))
		assert.Equal(t, 1, f.commits)
	})
}
