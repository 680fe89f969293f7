package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// CustomerOrderRepository provides access to customer orders
type CustomerOrderRepository interface {
	shared.Repository[CustomerOrder]
	// FindActiveInDispatchRange returns non-cancelled orders whose dispatch
	// date falls inside [from, to] (inclusive), with lines preloaded.
	FindActiveInDispatchRange(ctx context.Context, from, to time.Time) ([]CustomerOrder, error)
	// SumQuantityByProductInRange returns the total ordered quantity for a
	// product across non-cancelled orders dispatched inside [from, to].
	SumQuantityByProductInRange(ctx context.Context, productID uuid.UUID, from, to time.Time) (int64, error)
}
