package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// WarehouseStock is the per-(warehouse, product) stock counter. It is the only
// fine-grained shared mutable state in the system; every change goes through
// an atomic ledger operation that also stamps StockTakenAt.
type WarehouseStock struct {
	shared.BaseAggregateRoot
	WarehouseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:1"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:2"`
	Quantity     int64     `gorm:"not null;default:0"`
	Unit         string    `gorm:"type:varchar(20);not null;default:'UND'"`
	StockTakenAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (WarehouseStock) TableName() string {
	return "warehouse_stocks"
}

// NewWarehouseStock creates an empty stock row for a warehouse-product pair
func NewWarehouseStock(warehouseID, productID uuid.UUID, unit string) (*WarehouseStock, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if unit == "" {
		unit = "UND"
	}

	return &WarehouseStock{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		ProductID:         productID,
		Quantity:          0,
		Unit:              unit,
		StockTakenAt:      time.Now(),
	}, nil
}

// Increase adds quantity to the counter
func (s *WarehouseStock) Increase(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	s.Quantity += quantity
	s.touch()
	return nil
}

// Decrease removes quantity from the counter; the balance never goes negative
func (s *WarehouseStock) Decrease(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Quantity < quantity {
		return shared.ErrInsufficientStock
	}
	s.Quantity -= quantity
	s.touch()
	return nil
}

// SetQuantity forces the counter to a precomputed value (transaction
// execute/cancel applies StockAfter/StockBefore this way)
func (s *WarehouseStock) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}
	s.Quantity = quantity
	s.touch()
	return nil
}

// CanFulfill returns true if the counter can cover the requested quantity
func (s *WarehouseStock) CanFulfill(quantity int64) bool {
	return s.Quantity >= quantity
}

func (s *WarehouseStock) touch() {
	now := time.Now()
	s.StockTakenAt = now
	s.UpdatedAt = now
	s.IncrementVersion()
}
