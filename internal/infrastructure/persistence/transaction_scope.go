package persistence

import (
	"context"

	appinv "github.com/meridianfood/backend/internal/application/inventory"
	appplanning "github.com/meridianfood/backend/internal/application/planning"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/planning"
	"gorm.io/gorm"
)

// GormPlanningTransactionScope implements the planning TransactionScope using
// GORM transactions. All repository operations inside Execute share one
// database transaction: commit-all-or-rollback-all.
type GormPlanningTransactionScope struct {
	db *gorm.DB
}

// NewGormPlanningTransactionScope creates a new GormPlanningTransactionScope
func NewGormPlanningTransactionScope(db *gorm.DB) *GormPlanningTransactionScope {
	return &GormPlanningTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormPlanningTransactionScope) Execute(ctx context.Context, fn func(repos appplanning.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories scoped to one
// transaction. It satisfies both the planning and the inventory repository
// set; the inventory set is a subset.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the production order repository scoped to the transaction
func (r *gormTransactionalRepositories) Orders() planning.ProductionOrderRepository {
	return NewGormProductionOrderRepository(r.tx)
}

// Lines returns the demand line repository scoped to the transaction
func (r *gormTransactionalRepositories) Lines() planning.ProductionOrderLineRepository {
	return NewGormProductionOrderLineRepository(r.tx, NewGormLineSyncHook(r.tx))
}

// Snapshots returns the coverage snapshot repository scoped to the transaction
func (r *gormTransactionalRepositories) Snapshots() planning.CoverageSnapshotRepository {
	return NewGormCoverageSnapshotRepository(r.tx)
}

// CustomerOrders returns the customer order repository scoped to the transaction
func (r *gormTransactionalRepositories) CustomerOrders() ordering.CustomerOrderRepository {
	return NewGormCustomerOrderRepository(r.tx)
}

// Stocks returns the warehouse stock repository scoped to the transaction
func (r *gormTransactionalRepositories) Stocks() inventory.WarehouseStockRepository {
	return NewGormWarehouseStockRepository(r.tx)
}

// Movements returns the stock movement repository scoped to the transaction
func (r *gormTransactionalRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// WarehouseTransactions returns the warehouse transaction repository scoped to
// the transaction
func (r *gormTransactionalRepositories) WarehouseTransactions() inventory.WarehouseTransactionRepository {
	return NewGormWarehouseTransactionRepository(r.tx)
}

// Ensure the scopes implement their application interfaces
var _ appplanning.TransactionScope = (*GormPlanningTransactionScope)(nil)
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appplanning.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
