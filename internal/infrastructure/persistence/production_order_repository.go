package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionOrderRepository implements ProductionOrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// FindByID finds a production order by its ID with demand lines preloaded
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.ProductionOrder, error) {
	var order planning.ProductionOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBySequence finds a production order by its monotonic sequence number
func (r *GormProductionOrderRepository) FindBySequence(ctx context.Context, sequence int64) (*planning.ProductionOrder, error) {
	var order planning.ProductionOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "sequence = ?", sequence).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindPriorActive returns non-cancelled orders with a lower sequence, newest
// first. Demand lines are not preloaded; coverage is read from snapshots.
func (r *GormProductionOrderRepository) FindPriorActive(ctx context.Context, beforeSequence int64) ([]planning.ProductionOrder, error) {
	var orders []planning.ProductionOrder
	if err := r.db.WithContext(ctx).
		Where("sequence < ? AND status <> ?", beforeSequence, planning.StatusCancelled).
		Order("sequence DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindLaterExecutedOverlapping returns EXECUTED orders with a higher sequence
// whose dispatch range overlaps the given order's range. The overlap predicate
// mirrors ProductionOrder.OverlapsRange.
func (r *GormProductionOrderRepository) FindLaterExecutedOverlapping(ctx context.Context, order *planning.ProductionOrder) ([]planning.ProductionOrder, error) {
	var orders []planning.ProductionOrder
	initial := order.InitialDispatchDate
	final := order.FinalDispatchDate
	if err := r.db.WithContext(ctx).
		Where("sequence > ? AND status = ?", order.Sequence, planning.StatusExecuted).
		Where(
			"(initial_dispatch_date BETWEEN ? AND ?) OR (final_dispatch_date BETWEEN ? AND ?) OR (initial_dispatch_date <= ? AND final_dispatch_date >= ?)",
			initial, final, initial, final, initial, final,
		).
		Order("sequence ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByIDs finds multiple production orders with demand lines preloaded
func (r *GormProductionOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]planning.ProductionOrder, error) {
	if len(ids) == 0 {
		return []planning.ProductionOrder{}, nil
	}

	var orders []planning.ProductionOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id IN ?", ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all production orders matching the filter
func (r *GormProductionOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.ProductionOrder, error) {
	var orders []planning.ProductionOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&planning.ProductionOrder{}).Preload("Lines"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a production order
func (r *GormProductionOrderRepository) Save(ctx context.Context, order *planning.ProductionOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete deletes a production order
func (r *GormProductionOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&planning.ProductionOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts production orders matching the filter
func (r *GormProductionOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&planning.ProductionOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProductionOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductionOrderSortFields, "sequence")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductionOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("notes ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "dispatch_from":
			query = query.Where("final_dispatch_date >= ?", value)
		case "dispatch_to":
			query = query.Where("initial_dispatch_date <= ?", value)
		}
	}

	return query
}

// Ensure GormProductionOrderRepository implements ProductionOrderRepository
var _ planning.ProductionOrderRepository = (*GormProductionOrderRepository)(nil)
