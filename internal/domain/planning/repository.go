package planning

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// ProductionOrderRepository provides access to production orders
type ProductionOrderRepository interface {
	shared.Repository[ProductionOrder]
	// FindBySequence finds an order by its monotonic sequence number
	FindBySequence(ctx context.Context, sequence int64) (*ProductionOrder, error)
	// FindPriorActive returns all non-cancelled orders with a sequence lower
	// than the given one, ordered by sequence descending (newest first).
	FindPriorActive(ctx context.Context, beforeSequence int64) ([]ProductionOrder, error)
	// FindLaterExecutedOverlapping returns EXECUTED orders with a higher
	// sequence than the given order that share its dispatch range.
	FindLaterExecutedOverlapping(ctx context.Context, order *ProductionOrder) ([]ProductionOrder, error)
	// FindByIDs returns orders for the given ids, with lines preloaded
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductionOrder, error)
}

// ProductionOrderLineRepository provides access to per-product demand lines.
//
// Save takes an explicit skipDownstreamSync flag: the incremental demand
// computation writes lines with skipDownstreamSync=true so that the save does
// not re-trigger the source-order re-link synchronization while values are
// still being derived. Manual edits use skipDownstreamSync=false.
type ProductionOrderLineRepository interface {
	FindByOrder(ctx context.Context, productionOrderID uuid.UUID) ([]ProductionOrderLine, error)
	FindByOrderAndProduct(ctx context.Context, productionOrderID, productID uuid.UUID) (*ProductionOrderLine, error)
	Save(ctx context.Context, line *ProductionOrderLine, skipDownstreamSync bool) error
	DeleteByOrder(ctx context.Context, productionOrderID uuid.UUID) error
}

// CoverageSnapshotRepository is the append-only store of coverage facts.
// There is deliberately no update operation.
type CoverageSnapshotRepository interface {
	// AppendAll writes the snapshot rows taken at production-order creation
	AppendAll(ctx context.Context, snapshots []CoverageSnapshot) error
	FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) ([]CoverageSnapshot, error)
	// FindByProductionOrders returns snapshots grouped by production order id
	FindByProductionOrders(ctx context.Context, productionOrderIDs []uuid.UUID) (map[uuid.UUID][]CoverageSnapshot, error)
	// DeleteByProductionOrder cascade-deletes snapshots of a cancelled order
	DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error
}

// LineSyncHook is the downstream synchronization normally triggered by a line
// save. The gorm implementation re-links source order lines to the production
// order; the incremental computation path suppresses it via skipDownstreamSync.
type LineSyncHook interface {
	SyncOrderLinks(ctx context.Context, line *ProductionOrderLine) error
}
