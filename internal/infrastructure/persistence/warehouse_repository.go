package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Warehouse, error) {
	var warehouse catalog.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindDefault returns the default warehouse, or shared.ErrNotFound when none
// is flagged
func (r *GormWarehouseRepository) FindDefault(ctx context.Context) (*catalog.Warehouse, error) {
	var warehouse catalog.Warehouse
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAll finds all warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Warehouse, error) {
	var warehouses []catalog.Warehouse
	query := r.db.WithContext(ctx).Model(&catalog.Warehouse{})
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}
	if err := query.Order("is_default DESC, name ASC").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *catalog.Warehouse) error {
	return r.db.WithContext(ctx).Save(warehouse).Error
}

// Delete deletes a warehouse
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts warehouses matching the filter
func (r *GormWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Warehouse{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ catalog.WarehouseRepository = (*GormWarehouseRepository)(nil)
