package planning

import (
	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// ProductionOrderLine is the per-product demand row of a production order.
//
// OrderedQuantity is the raw sum over the source orders in the dispatch range.
// OrderedQuantityNew is the incremental share of it not already covered by an
// overlapping prior production order. ManualQuantity is an operator
// bring-forward override; when positive it replaces OrderedQuantityNew in the
// total-to-produce formula.
type ProductionOrderLine struct {
	shared.BaseEntity
	ProductionOrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_po_line_order_product,priority:1"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_po_line_order_product,priority:2"`
	OrderedQuantity    int64     `gorm:"not null;default:0"`
	OrderedQuantityNew int64     `gorm:"not null;default:0"`
	ManualQuantity     int64     `gorm:"not null;default:0"`
	TotalToProduce     int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductionOrderLine) TableName() string {
	return "production_order_lines"
}

// NewProductionOrderLine creates a demand line for a product
func NewProductionOrderLine(productionOrderID, productID uuid.UUID, orderedQuantity int64) (*ProductionOrderLine, error) {
	if productionOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Production order ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if orderedQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be negative")
	}

	return &ProductionOrderLine{
		BaseEntity:        shared.NewBaseEntity(),
		ProductionOrderID: productionOrderID,
		ProductID:         productID,
		OrderedQuantity:   orderedQuantity,
	}, nil
}

// EffectiveQuantity returns the quantity the production target is based on:
// the manual override when positive, otherwise the incremental ordered quantity.
func (l *ProductionOrderLine) EffectiveQuantity() int64 {
	if l.ManualQuantity > 0 {
		return l.ManualQuantity
	}
	return l.OrderedQuantityNew
}

// ApplyDemand sets the computed incremental quantity and recomputes the
// production target against the given initial inventory.
func (l *ProductionOrderLine) ApplyDemand(orderedQuantityNew, initialInventory int64) {
	if orderedQuantityNew < 0 {
		orderedQuantityNew = 0
	}
	l.OrderedQuantityNew = orderedQuantityNew
	l.recomputeTotal(initialInventory)
}

// SetManualQuantity records an operator override and recomputes the target
func (l *ProductionOrderLine) SetManualQuantity(manualQuantity, initialInventory int64) error {
	if manualQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Manual quantity cannot be negative")
	}
	l.ManualQuantity = manualQuantity
	l.recomputeTotal(initialInventory)
	return nil
}

func (l *ProductionOrderLine) recomputeTotal(initialInventory int64) {
	total := l.EffectiveQuantity() - initialInventory
	if total < 0 {
		total = 0
	}
	l.TotalToProduce = total
	l.Touch()
}
