package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// Movements are an append-only audit trail.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append writes one movement row
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByWarehouseAndProduct returns the movement history of a stock pair,
// newest first
func (r *GormStockMovementRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID)

	for key, value := range filter.Filters {
		switch key {
		case "movement_type":
			query = query.Where("movement_type = ?", value)
		case "source_type":
			query = query.Where("source_type = ?", value)
		case "source_id":
			query = query.Where("source_id = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("moved_at DESC, created_at DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
