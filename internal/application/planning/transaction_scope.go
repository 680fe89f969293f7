package planning

import (
	"context"

	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/planning"
)

// TransactionScope runs a function within a database transaction. If the
// function returns an error the transaction is rolled back; otherwise it is
// committed. Partial state is never visible to other operations.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories touched by planning
// workflows, all scoped to the same database transaction.
type TransactionalRepositories interface {
	Orders() planning.ProductionOrderRepository
	Lines() planning.ProductionOrderLineRepository
	Snapshots() planning.CoverageSnapshotRepository
	CustomerOrders() ordering.CustomerOrderRepository
	Stocks() inventory.WarehouseStockRepository
	Movements() inventory.StockMovementRepository
	WarehouseTransactions() inventory.WarehouseTransactionRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests with in-memory repositories.
type NoOpTransactionScope struct {
	OrderRepo         planning.ProductionOrderRepository
	LineRepo          planning.ProductionOrderLineRepository
	SnapshotRepo      planning.CoverageSnapshotRepository
	CustomerOrderRepo ordering.CustomerOrderRepository
	StockRepo         inventory.WarehouseStockRepository
	MovementRepo      inventory.StockMovementRepository
	TxRepo            inventory.WarehouseTransactionRepository
}

// Execute runs the function directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the production order repository
func (s *NoOpTransactionScope) Orders() planning.ProductionOrderRepository { return s.OrderRepo }

// Lines returns the demand line repository
func (s *NoOpTransactionScope) Lines() planning.ProductionOrderLineRepository { return s.LineRepo }

// Snapshots returns the coverage snapshot repository
func (s *NoOpTransactionScope) Snapshots() planning.CoverageSnapshotRepository { return s.SnapshotRepo }

// CustomerOrders returns the customer order repository
func (s *NoOpTransactionScope) CustomerOrders() ordering.CustomerOrderRepository {
	return s.CustomerOrderRepo
}

// Stocks returns the warehouse stock repository
func (s *NoOpTransactionScope) Stocks() inventory.WarehouseStockRepository { return s.StockRepo }

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository { return s.MovementRepo }

// WarehouseTransactions returns the warehouse transaction repository
func (s *NoOpTransactionScope) WarehouseTransactions() inventory.WarehouseTransactionRepository {
	return s.TxRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
