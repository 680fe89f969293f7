package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// WarehouseStockRepository provides access to stock counters
type WarehouseStockRepository interface {
	shared.Repository[WarehouseStock]
	// FindByWarehouseAndProduct returns the counter for a pair, or
	// shared.ErrNotFound when the pair has never held stock.
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseStock, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseStock, error)
}

// StockMovementRepository is the append-only store of stock mutations
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
}

// WarehouseTransactionRepository provides access to batch stock transactions
type WarehouseTransactionRepository interface {
	shared.Repository[WarehouseTransaction]
	// FindByProductionOrder returns the transaction created for a production
	// order, with lines preloaded.
	FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) (*WarehouseTransaction, error)
	FindPending(ctx context.Context) ([]WarehouseTransaction, error)
}
