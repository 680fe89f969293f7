package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// StockApplier applies and reverts warehouse transactions against stock
// counters, appending one movement record per touched line. The caller is
// responsible for running it inside a transaction scope so that either every
// line is applied or none is.
type StockApplier struct {
	stocks    WarehouseStockRepository
	movements StockMovementRepository
}

// NewStockApplier creates a StockApplier over transaction-scoped repositories
func NewStockApplier(stocks WarehouseStockRepository, movements StockMovementRepository) *StockApplier {
	return &StockApplier{stocks: stocks, movements: movements}
}

// ApplyTransaction sets every line's StockAfter and marks the transaction executed
func (a *StockApplier) ApplyTransaction(ctx context.Context, tx *WarehouseTransaction) error {
	if err := tx.MarkExecuted(); err != nil {
		return err
	}
	for i := range tx.Lines {
		line := &tx.Lines[i]
		if err := a.applyLine(ctx, line, line.StockAfter, MovementTransactionExecute, tx.ID); err != nil {
			return err
		}
	}
	return nil
}

// CancelTransaction marks a pending transaction cancelled without touching stock
func (a *StockApplier) CancelTransaction(_ context.Context, tx *WarehouseTransaction) error {
	return tx.MarkCancelled()
}

// RevertTransaction restores every line's StockBefore on an executed transaction
func (a *StockApplier) RevertTransaction(ctx context.Context, tx *WarehouseTransaction) error {
	if err := tx.RevertExecution(); err != nil {
		return err
	}
	for i := range tx.Lines {
		line := &tx.Lines[i]
		if err := a.applyLine(ctx, line, line.StockBefore, MovementTransactionCancel, tx.ID); err != nil {
			return err
		}
	}
	return nil
}

func (a *StockApplier) applyLine(ctx context.Context, line *WarehouseTransactionLine, target int64, movementType MovementType, txID uuid.UUID) error {
	stock, err := a.stocks.FindByWarehouseAndProduct(ctx, line.WarehouseID, line.ProductID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		stock, err = NewWarehouseStock(line.WarehouseID, line.ProductID, "")
		if err != nil {
			return err
		}
	}

	before := stock.Quantity
	if err := stock.SetQuantity(target); err != nil {
		return err
	}
	if err := a.stocks.Save(ctx, stock); err != nil {
		return err
	}

	delta := target - before
	if delta < 0 {
		delta = -delta
	}
	movement, err := NewStockMovement(
		line.WarehouseID, line.ProductID,
		movementType,
		delta, before, target,
		"WAREHOUSE_TRANSACTION", txID.String(),
	)
	if err != nil {
		return err
	}
	return a.movements.Append(ctx, movement)
}
