package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/shared"
)

// StockLedgerService exposes the warehouse stock ledger: counter reads,
// increments and decrements with movement records, and atomic inter-warehouse
// transfers.
type StockLedgerService struct {
	stockRepo    inventory.WarehouseStockRepository
	movementRepo inventory.StockMovementRepository
	txRepo       inventory.WarehouseTransactionRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewStockLedgerService creates a StockLedgerService
func NewStockLedgerService(
	stockRepo inventory.WarehouseStockRepository,
	movementRepo inventory.StockMovementRepository,
	txRepo inventory.WarehouseTransactionRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *StockLedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockLedgerService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		txRepo:       txRepo,
		scope:        scope,
		logger:       logger,
	}
}

// GetStock returns the current counter for a warehouse-product pair.
// A pair that has never held stock reads as zero.
func (s *StockLedgerService) GetStock(ctx context.Context, warehouseID, productID uuid.UUID) (int64, error) {
	stock, err := s.stockRepo.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return stock.Quantity, nil
}

// ListStock returns every stock counter held by a warehouse
func (s *StockLedgerService) ListStock(ctx context.Context, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	return s.stockRepo.FindByWarehouse(ctx, warehouseID)
}

// GetMovements returns the movement history for a warehouse-product pair
func (s *StockLedgerService) GetMovements(ctx context.Context, warehouseID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	return s.movementRepo.FindByWarehouseAndProduct(ctx, warehouseID, productID, filter)
}

// Increment adds quantity to a counter, creating it when absent, and appends
// an INCREMENT movement.
func (s *StockLedgerService) Increment(ctx context.Context, warehouseID, productID uuid.UUID, quantity int64, sourceType, sourceID string) (*inventory.WarehouseStock, error) {
	var result *inventory.WarehouseStock
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		stock, err := s.findOrCreate(ctx, repos, warehouseID, productID)
		if err != nil {
			return err
		}
		before := stock.Quantity
		if err := stock.Increase(quantity); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, stock); err != nil {
			return err
		}
		if err := s.appendMovement(ctx, repos, stock, inventory.MovementIncrement, quantity, before, sourceType, sourceID); err != nil {
			return err
		}
		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Decrement removes quantity from a counter and appends a DECREMENT movement.
// Returns shared.ErrInsufficientStock when the balance cannot cover it.
func (s *StockLedgerService) Decrement(ctx context.Context, warehouseID, productID uuid.UUID, quantity int64, sourceType, sourceID string) (*inventory.WarehouseStock, error) {
	var result *inventory.WarehouseStock
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		stock, err := repos.Stocks().FindByWarehouseAndProduct(ctx, warehouseID, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}
		before := stock.Quantity
		if err := stock.Decrease(quantity); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, stock); err != nil {
			return err
		}
		if err := s.appendMovement(ctx, repos, stock, inventory.MovementDecrement, quantity, before, sourceType, sourceID); err != nil {
			return err
		}
		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Transfer moves quantity between two warehouses atomically. Either both the
// outgoing and incoming legs land, with a movement record each, or neither does.
func (s *StockLedgerService) Transfer(ctx context.Context, productID, fromWarehouseID, toWarehouseID uuid.UUID, quantity int64) error {
	if fromWarehouseID == toWarehouseID {
		return shared.NewDomainError("INVALID_TRANSFER", "Source and destination warehouses must differ")
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.Stocks().FindByWarehouseAndProduct(ctx, fromWarehouseID, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}
		sourceBefore := source.Quantity
		if err := source.Decrease(quantity); err != nil {
			return err
		}

		dest, err := s.findOrCreate(ctx, repos, toWarehouseID, productID)
		if err != nil {
			return err
		}
		destBefore := dest.Quantity
		if err := dest.Increase(quantity); err != nil {
			return err
		}

		if err := repos.Stocks().Save(ctx, source); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, dest); err != nil {
			return err
		}

		sourceID := fromWarehouseID.String() + ">" + toWarehouseID.String()
		if err := s.appendMovement(ctx, repos, source, inventory.MovementTransferOut, quantity, sourceBefore, "TRANSFER", sourceID); err != nil {
			return err
		}
		return s.appendMovement(ctx, repos, dest, inventory.MovementTransferIn, quantity, destBefore, "TRANSFER", sourceID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("stock transferred",
		zap.String("product_id", productID.String()),
		zap.String("from_warehouse_id", fromWarehouseID.String()),
		zap.String("to_warehouse_id", toWarehouseID.String()),
		zap.Int64("quantity", quantity))
	return nil
}

// ExecuteTransaction applies a pending warehouse transaction to stock
func (s *StockLedgerService) ExecuteTransaction(ctx context.Context, transactionID uuid.UUID) (*inventory.WarehouseTransaction, error) {
	var tx *inventory.WarehouseTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tx, err = repos.WarehouseTransactions().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		applier := inventory.NewStockApplier(repos.Stocks(), repos.Movements())
		if err := applier.ApplyTransaction(ctx, tx); err != nil {
			return err
		}
		return repos.WarehouseTransactions().Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// CancelTransaction cancels a pending warehouse transaction without touching stock
func (s *StockLedgerService) CancelTransaction(ctx context.Context, transactionID uuid.UUID) (*inventory.WarehouseTransaction, error) {
	var tx *inventory.WarehouseTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tx, err = repos.WarehouseTransactions().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		applier := inventory.NewStockApplier(repos.Stocks(), repos.Movements())
		if err := applier.CancelTransaction(ctx, tx); err != nil {
			return err
		}
		return repos.WarehouseTransactions().Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ListPendingTransactions returns transactions awaiting execution
func (s *StockLedgerService) ListPendingTransactions(ctx context.Context) ([]inventory.WarehouseTransaction, error) {
	return s.txRepo.FindPending(ctx)
}

func (s *StockLedgerService) findOrCreate(ctx context.Context, repos TransactionalRepositories, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	stock, err := repos.Stocks().FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return inventory.NewWarehouseStock(warehouseID, productID, "")
}

func (s *StockLedgerService) appendMovement(ctx context.Context, repos TransactionalRepositories, stock *inventory.WarehouseStock, movementType inventory.MovementType, quantity, before int64, sourceType, sourceID string) error {
	movement, err := inventory.NewStockMovement(
		stock.WarehouseID, stock.ProductID,
		movementType,
		quantity, before, stock.Quantity,
		sourceType, sourceID,
	)
	if err != nil {
		return err
	}
	return repos.Movements().Append(ctx, movement)
}
