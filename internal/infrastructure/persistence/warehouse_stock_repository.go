package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWarehouseStockRepository implements WarehouseStockRepository using GORM
type GormWarehouseStockRepository struct {
	db *gorm.DB
}

// NewGormWarehouseStockRepository creates a new GormWarehouseStockRepository
func NewGormWarehouseStockRepository(db *gorm.DB) *GormWarehouseStockRepository {
	return &GormWarehouseStockRepository{db: db}
}

// FindByID finds a stock counter by its ID
func (r *GormWarehouseStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	if err := r.db.WithContext(ctx).First(&stock, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByWarehouseAndProduct returns the counter for a pair, or
// shared.ErrNotFound when the pair has never held stock
func (r *GormWarehouseStockRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByWarehouse returns all stock counters of one warehouse
func (r *GormWarehouseStockRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	var stocks []inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("product_id ASC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindAll finds all stock counters matching the filter
func (r *GormWarehouseStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.WarehouseStock, error) {
	var stocks []inventory.WarehouseStock
	query := r.db.WithContext(ctx).Model(&inventory.WarehouseStock{})

	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, WarehouseStockSortFields, "updated_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Save creates or updates a stock counter
func (r *GormWarehouseStockRepository) Save(ctx context.Context, stock *inventory.WarehouseStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// Delete deletes a stock counter
func (r *GormWarehouseStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.WarehouseStock{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stock counters matching the filter
func (r *GormWarehouseStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.WarehouseStock{})
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormWarehouseStockRepository implements WarehouseStockRepository
var _ inventory.WarehouseStockRepository = (*GormWarehouseStockRepository)(nil)
