package service

import (
	"context"
	"errors"
	"fmt"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrOrderTargetNotFound = errors.New("reorder target not found")
	ErrOrderAccessDenied   = errors.New("access denied to reorder this record")
	ErrOrderUpdateFailed   = errors.New("order update failed")
)

// OrderItem is one {id, order} reassignment in a bulk reorder call.
type OrderItem struct {
	ID    string
	Order int
}

// reorderCoordinator applies a batch of order reassignments as one
// all-or-nothing transaction. Instantiated once for workout-exercises and
// once for sets; the two differ only in how ownership is resolved and
// which collection the write targets.
//
// Per item, inside the transaction: resolve the owning user through the
// parent chain (not-found if the record or any link is missing), compare
// against the requester (forbidden on mismatch), then write the new order
// (update-failed if the write matches nothing). Items are validated
// independently; processing order across the batch does not affect the
// result. Any failure aborts the whole batch and the transaction rolls
// back, so a failed call leaves every persisted order untouched.
type reorderCoordinator struct {
	tx           repository.TxRunner
	resolveOwner func(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
	updateOrder  func(ctx context.Context, id primitive.ObjectID, order int) (int64, error)
}

// Apply runs the batch for the requesting user. Success means every item
// was applied; there is no partial-success outcome.
func (rc *reorderCoordinator) Apply(ctx context.Context, userID primitive.ObjectID, items []OrderItem) error {
	return rc.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			order, err := domain.NewOrderValue(item.Order)
			if err != nil {
				return fmt.Errorf("%w: %s", err, item.ID)
			}

			id, err := primitive.ObjectIDFromHex(item.ID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrOrderTargetNotFound, item.ID)
			}

			owner, err := rc.resolveOwner(txCtx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w: %s", ErrOrderTargetNotFound, item.ID)
				}
				return err
			}
			if owner != userID {
				return fmt.Errorf("%w: %s", ErrOrderAccessDenied, item.ID)
			}

			matched, err := rc.updateOrder(txCtx, id, order)
			if err != nil {
				return err
			}
			if matched == 0 {
				// The record resolved a moment ago; a zero-match write is
				// a store-level anomaly, not a caller mistake.
				return fmt.Errorf("%w: %s", ErrOrderUpdateFailed, item.ID)
			}
		}
		return nil
	})
}
