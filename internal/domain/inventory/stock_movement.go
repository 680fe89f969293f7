package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// MovementType classifies a stock mutation
type MovementType string

const (
	// MovementIncrement is a plain stock increase
	MovementIncrement MovementType = "INCREMENT"
	// MovementDecrement is a plain stock decrease
	MovementDecrement MovementType = "DECREMENT"
	// MovementTransferIn is the receiving leg of a warehouse transfer
	MovementTransferIn MovementType = "TRANSFER_IN"
	// MovementTransferOut is the sending leg of a warehouse transfer
	MovementTransferOut MovementType = "TRANSFER_OUT"
	// MovementTransactionExecute applies a warehouse transaction line
	MovementTransactionExecute MovementType = "TRANSACTION_EXECUTE"
	// MovementTransactionCancel restores a warehouse transaction line
	MovementTransactionCancel MovementType = "TRANSACTION_CANCEL"
)

// IsValid returns true if the movement type is valid
func (m MovementType) IsValid() bool {
	switch m {
	case MovementIncrement, MovementDecrement, MovementTransferIn,
		MovementTransferOut, MovementTransactionExecute, MovementTransactionCancel:
		return true
	}
	return false
}

// StockMovement is an immutable audit record of one stock mutation. Once
// created it is never modified; corrections are new movements.
type StockMovement struct {
	shared.BaseEntity
	WarehouseID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	MovementType  MovementType `gorm:"type:varchar(30);not null;index"`
	Quantity      int64        `gorm:"not null"` // always positive; direction from type
	BalanceBefore int64        `gorm:"not null"`
	BalanceAfter  int64        `gorm:"not null"`
	SourceType    string       `gorm:"type:varchar(30);not null"`
	SourceID      string       `gorm:"type:varchar(50);not null;index"`
	MovedAt       time.Time    `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement record
func NewStockMovement(
	warehouseID, productID uuid.UUID,
	movementType MovementType,
	quantity, balanceBefore, balanceAfter int64,
	sourceType, sourceID string,
) (*StockMovement, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		WarehouseID:   warehouseID,
		ProductID:     productID,
		MovementType:  movementType,
		Quantity:      quantity,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		SourceType:    sourceType,
		SourceID:      sourceID,
		MovedAt:       time.Now(),
	}, nil
}
