package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// TransactionStatus is the lifecycle state of a warehouse transaction
type TransactionStatus string

const (
	// TransactionPending is a transaction whose lines are computed but not applied
	TransactionPending TransactionStatus = "PENDING"
	// TransactionExecuted is terminal: every line's StockAfter was applied
	TransactionExecuted TransactionStatus = "EXECUTED"
	// TransactionCancelled is terminal: every line's StockBefore was restored
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// IsValid returns true if the status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionExecuted, TransactionCancelled:
		return true
	}
	return false
}

// WarehouseTransaction is a production-order-triggered batch stock mutation.
// Lines carry precomputed before/after balances; executing applies every
// StockAfter, cancelling restores every StockBefore. Both paths are
// all-or-nothing: the caller runs them inside one transaction scope.
type WarehouseTransaction struct {
	shared.BaseAggregateRoot
	ProductionOrderID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status            TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ExecutedAt        *time.Time        `gorm:"type:timestamptz"`
	CancelledAt       *time.Time        `gorm:"type:timestamptz"`

	Lines []WarehouseTransactionLine `gorm:"foreignKey:WarehouseTransactionID;references:ID"`
}

// TableName returns the table name for GORM
func (WarehouseTransaction) TableName() string {
	return "warehouse_transactions"
}

// NewWarehouseTransaction creates a pending transaction for a production order
func NewWarehouseTransaction(productionOrderID uuid.UUID) (*WarehouseTransaction, error) {
	if productionOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Production order ID cannot be empty")
	}
	return &WarehouseTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductionOrderID: productionOrderID,
		Status:            TransactionPending,
		Lines:             make([]WarehouseTransactionLine, 0),
	}, nil
}

// AddLine appends a precomputed mutation for one warehouse-product pair
func (t *WarehouseTransaction) AddLine(warehouseID, productID uuid.UUID, quantity, stockBefore, stockAfter int64) error {
	if t.Status != TransactionPending {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added while the transaction is pending")
	}
	if warehouseID == uuid.Nil || productID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse and product IDs cannot be empty")
	}
	if stockAfter < 0 || stockBefore < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock balances cannot be negative")
	}

	t.Lines = append(t.Lines, WarehouseTransactionLine{
		BaseEntity:             shared.NewBaseEntity(),
		WarehouseTransactionID: t.ID,
		WarehouseID:            warehouseID,
		ProductID:              productID,
		Quantity:               quantity,
		StockBefore:            stockBefore,
		StockAfter:             stockAfter,
	})
	return nil
}

// MarkExecuted transitions PENDING -> EXECUTED
func (t *WarehouseTransaction) MarkExecuted() error {
	if t.Status != TransactionPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending transactions can be executed")
	}
	now := time.Now()
	t.Status = TransactionExecuted
	t.ExecutedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// MarkCancelled transitions PENDING -> CANCELLED
func (t *WarehouseTransaction) MarkCancelled() error {
	if t.Status != TransactionPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending transactions can be cancelled")
	}
	now := time.Now()
	t.Status = TransactionCancelled
	t.CancelledAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// RevertExecution transitions EXECUTED -> CANCELLED when an executed
// production order is cancelled: each line's StockBefore is restored.
func (t *WarehouseTransaction) RevertExecution() error {
	if t.Status != TransactionExecuted {
		return shared.NewDomainError("INVALID_STATE", "Only executed transactions can be reverted")
	}
	now := time.Now()
	t.Status = TransactionCancelled
	t.CancelledAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// IsTerminal returns true once the transaction was executed or cancelled
func (t *WarehouseTransaction) IsTerminal() bool {
	return t.Status == TransactionExecuted || t.Status == TransactionCancelled
}

// WarehouseTransactionLine is one precomputed balance change
type WarehouseTransactionLine struct {
	shared.BaseEntity
	WarehouseTransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID            uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity               int64     `gorm:"not null"`
	StockBefore            int64     `gorm:"not null"`
	StockAfter             int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WarehouseTransactionLine) TableName() string {
	return "warehouse_transaction_lines"
}
