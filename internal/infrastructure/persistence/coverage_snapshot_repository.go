package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/planning"
	"gorm.io/gorm"
)

// GormCoverageSnapshotRepository implements CoverageSnapshotRepository using
// GORM. Snapshots are append-only facts; there is no update path.
type GormCoverageSnapshotRepository struct {
	db *gorm.DB
}

// NewGormCoverageSnapshotRepository creates a new GormCoverageSnapshotRepository
func NewGormCoverageSnapshotRepository(db *gorm.DB) *GormCoverageSnapshotRepository {
	return &GormCoverageSnapshotRepository{db: db}
}

// AppendAll writes the snapshot rows taken at production-order creation
func (r *GormCoverageSnapshotRepository) AppendAll(ctx context.Context, snapshots []planning.CoverageSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&snapshots).Error
}

// FindByProductionOrder returns all snapshots of one production order
func (r *GormCoverageSnapshotRepository) FindByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) ([]planning.CoverageSnapshot, error) {
	var snapshots []planning.CoverageSnapshot
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ?", productionOrderID).
		Order("dispatch_date ASC, created_at ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// FindByProductionOrders returns snapshots grouped by production order id
func (r *GormCoverageSnapshotRepository) FindByProductionOrders(ctx context.Context, productionOrderIDs []uuid.UUID) (map[uuid.UUID][]planning.CoverageSnapshot, error) {
	grouped := make(map[uuid.UUID][]planning.CoverageSnapshot, len(productionOrderIDs))
	if len(productionOrderIDs) == 0 {
		return grouped, nil
	}

	var snapshots []planning.CoverageSnapshot
	if err := r.db.WithContext(ctx).
		Where("production_order_id IN ?", productionOrderIDs).
		Order("dispatch_date ASC, created_at ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}

	for _, snap := range snapshots {
		grouped[snap.ProductionOrderID] = append(grouped[snap.ProductionOrderID], snap)
	}
	return grouped, nil
}

// DeleteByProductionOrder cascade-deletes snapshots of a cancelled order
func (r *GormCoverageSnapshotRepository) DeleteByProductionOrder(ctx context.Context, productionOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&planning.CoverageSnapshot{}, "production_order_id = ?", productionOrderID).Error
}

// Ensure GormCoverageSnapshotRepository implements CoverageSnapshotRepository
var _ planning.CoverageSnapshotRepository = (*GormCoverageSnapshotRepository)(nil)
