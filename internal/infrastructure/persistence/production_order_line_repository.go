package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionOrderLineRepository implements ProductionOrderLineRepository
// using GORM. When a save is sync-enabled the configured LineSyncHook runs
// after the row is written; saves from the incremental demand computation pass
// skipDownstreamSync=true and leave downstream links untouched.
type GormProductionOrderLineRepository struct {
	db   *gorm.DB
	sync planning.LineSyncHook
}

// NewGormProductionOrderLineRepository creates a new GormProductionOrderLineRepository
func NewGormProductionOrderLineRepository(db *gorm.DB, sync planning.LineSyncHook) *GormProductionOrderLineRepository {
	return &GormProductionOrderLineRepository{db: db, sync: sync}
}

// FindByOrder returns all demand lines of a production order
func (r *GormProductionOrderLineRepository) FindByOrder(ctx context.Context, productionOrderID uuid.UUID) ([]planning.ProductionOrderLine, error) {
	var lines []planning.ProductionOrderLine
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ?", productionOrderID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByOrderAndProduct returns the demand line for one product of an order
func (r *GormProductionOrderLineRepository) FindByOrderAndProduct(ctx context.Context, productionOrderID, productID uuid.UUID) (*planning.ProductionOrderLine, error) {
	var line planning.ProductionOrderLine
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ? AND product_id = ?", productionOrderID, productID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// Save creates or updates a demand line. Manual edits save with
// skipDownstreamSync=false and trigger the order-link synchronization.
func (r *GormProductionOrderLineRepository) Save(ctx context.Context, line *planning.ProductionOrderLine, skipDownstreamSync bool) error {
	if err := r.db.WithContext(ctx).Save(line).Error; err != nil {
		return err
	}
	if skipDownstreamSync || r.sync == nil {
		return nil
	}
	return r.sync.SyncOrderLinks(ctx, line)
}

// DeleteByOrder deletes all demand lines of a production order
func (r *GormProductionOrderLineRepository) DeleteByOrder(ctx context.Context, productionOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&planning.ProductionOrderLine{}, "production_order_id = ?", productionOrderID).Error
}

// GormLineSyncHook re-links source order lines to the production demand line
// that covers them. For every non-cancelled customer order dispatched inside
// the production order's window, lines for the demand line's product get their
// back-link set.
type GormLineSyncHook struct {
	db *gorm.DB
}

// NewGormLineSyncHook creates a new GormLineSyncHook
func NewGormLineSyncHook(db *gorm.DB) *GormLineSyncHook {
	return &GormLineSyncHook{db: db}
}

// SyncOrderLinks updates the production-order-line back-link on all source
// order lines covered by the given demand line
func (h *GormLineSyncHook) SyncOrderLinks(ctx context.Context, line *planning.ProductionOrderLine) error {
	var order planning.ProductionOrder
	if err := h.db.WithContext(ctx).
		First(&order, "id = ?", line.ProductionOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	return h.db.WithContext(ctx).
		Exec(`UPDATE order_lines SET production_order_line_id = ?
		      WHERE product_id = ?
		        AND customer_order_id IN (
		          SELECT id FROM customer_orders
		          WHERE status <> ? AND dispatch_date BETWEEN ? AND ?
		        )`,
			line.ID, line.ProductID,
			"CANCELLED", order.InitialDispatchDate, order.FinalDispatchDate,
		).Error
}

// Ensure implementations satisfy the domain interfaces
var _ planning.ProductionOrderLineRepository = (*GormProductionOrderLineRepository)(nil)
var _ planning.LineSyncHook = (*GormLineSyncHook)(nil)
