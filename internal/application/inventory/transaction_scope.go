package inventory

import (
	"context"

	"github.com/meridianfood/backend/internal/domain/inventory"
)

// TransactionScope runs a function within a database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories touched by stock ledger
// operations, all scoped to the same database transaction.
type TransactionalRepositories interface {
	Stocks() inventory.WarehouseStockRepository
	Movements() inventory.StockMovementRepository
	WarehouseTransactions() inventory.WarehouseTransactionRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests with in-memory repositories.
type NoOpTransactionScope struct {
	StockRepo    inventory.WarehouseStockRepository
	MovementRepo inventory.StockMovementRepository
	TxRepo       inventory.WarehouseTransactionRepository
}

// Execute runs the function directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Stocks returns the warehouse stock repository
func (s *NoOpTransactionScope) Stocks() inventory.WarehouseStockRepository { return s.StockRepo }

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.MovementRepo
}

// WarehouseTransactions returns the warehouse transaction repository
func (s *NoOpTransactionScope) WarehouseTransactions() inventory.WarehouseTransactionRepository {
	return s.TxRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
