package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWarehouseTransactionRepository implements WarehouseTransactionRepository
// using GORM
type GormWarehouseTransactionRepository struct {
	db *gorm.DB
}

// NewGormWarehouseTransactionRepository creates a new GormWarehouseTransactionRepository
func NewGormWarehouseTransactionRepository(db *gorm.DB) *GormWarehouseTransactionRepository {
	return &GormWarehouseTransactionRepository{db: db}
}

// FindByID finds a warehouse transaction by its ID with lines preloaded
func (r *GormWarehouseTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.WarehouseTransaction, error) {
	var tx inventory.WarehouseTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByProductionOrder returns the transaction created for a production
// order, with lines preloaded
func (r *GormWarehouseTransactionRepository) FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) (*inventory.WarehouseTransaction, error) {
	var tx inventory.WarehouseTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("production_order_id = ?", productionOrderID).
		Order("created_at DESC").
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindPending returns all PENDING transactions with lines preloaded
func (r *GormWarehouseTransactionRepository) FindPending(ctx context.Context) ([]inventory.WarehouseTransaction, error) {
	var txs []inventory.WarehouseTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ?", inventory.TransactionPending).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindAll finds all warehouse transactions matching the filter
func (r *GormWarehouseTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.WarehouseTransaction, error) {
	var txs []inventory.WarehouseTransaction
	query := r.db.WithContext(ctx).Model(&inventory.WarehouseTransaction{}).Preload("Lines")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "production_order_id":
			query = query.Where("production_order_id = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Save creates or updates a warehouse transaction
func (r *GormWarehouseTransactionRepository) Save(ctx context.Context, tx *inventory.WarehouseTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// Delete deletes a warehouse transaction
func (r *GormWarehouseTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.WarehouseTransaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts warehouse transactions matching the filter
func (r *GormWarehouseTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.WarehouseTransaction{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormWarehouseTransactionRepository implements WarehouseTransactionRepository
var _ inventory.WarehouseTransactionRepository = (*GormWarehouseTransactionRepository)(nil)
