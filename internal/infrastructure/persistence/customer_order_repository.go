package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerOrderRepository implements CustomerOrderRepository using GORM
type GormCustomerOrderRepository struct {
	db *gorm.DB
}

// NewGormCustomerOrderRepository creates a new GormCustomerOrderRepository
func NewGormCustomerOrderRepository(db *gorm.DB) *GormCustomerOrderRepository {
	return &GormCustomerOrderRepository{db: db}
}

// FindByID finds a customer order by its ID with lines preloaded
func (r *GormCustomerOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.CustomerOrder, error) {
	var order ordering.CustomerOrder
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

// FindActiveInDispatchRange returns non-cancelled orders dispatched inside
// [from, to] inclusive, with lines preloaded
func (r *GormCustomerOrderRepository) FindActiveInDispatchRange(ctx context.Context, from, to time.Time) ([]ordering.CustomerOrder, error) {
	var orders []ordering.CustomerOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status <> ? AND dispatch_date BETWEEN ? AND ?", ordering.OrderStatusCancelled, from, to).
		Order("dispatch_date ASC, created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// SumQuantityByProductInRange returns the total ordered quantity for a product
// across non-cancelled orders dispatched inside [from, to]
func (r *GormCustomerOrderRepository) SumQuantityByProductInRange(ctx context.Context, productID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&ordering.OrderLine{}).
		Select("COALESCE(SUM(order_lines.quantity), 0)").
		Joins("JOIN customer_orders ON customer_orders.id = order_lines.customer_order_id").
		Where("order_lines.product_id = ?", productID).
		Where("customer_orders.status <> ? AND customer_orders.dispatch_date BETWEEN ? AND ?",
			ordering.OrderStatusCancelled, from, to).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// FindAll finds all customer orders matching the filter
func (r *GormCustomerOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.CustomerOrder, error) {
	var orders []ordering.CustomerOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ordering.CustomerOrder{}).Preload("Lines"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a customer order
func (r *GormCustomerOrderRepository) Save(ctx context.Context, order *ordering.CustomerOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete deletes a customer order
func (r *GormCustomerOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ordering.CustomerOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customer orders matching the filter
func (r *GormCustomerOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.CustomerOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCustomerOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CustomerOrderSortFields, "dispatch_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "dispatch_date":
			query = query.Where("dispatch_date = ?", value)
		}
	}
	return query
}

// Ensure GormCustomerOrderRepository implements CustomerOrderRepository
var _ ordering.CustomerOrderRepository = (*GormCustomerOrderRepository)(nil)
