package planning

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// CoverageSnapshot is an immutable fact: at creation time, a production order
// covered quantity_covered units of a product for one source order line.
// Rows are written once and never updated; this is what lets a later
// overlapping production run tell "late" orders (absent from every prior
// snapshot) from demand that was already produced. Rows are removed only by
// cascade when a cancelled production order is deleted.
//
// Dispatch date, branch and company are denormalized from the source order at
// snapshot time so that reporting reads historical facts, not live order data.
type CoverageSnapshot struct {
	shared.BaseEntity
	ProductionOrderID uuid.UUID `gorm:"type:uuid;not null;index:idx_coverage_order_product,priority:1;uniqueIndex:idx_coverage_order_line,priority:1"`
	CustomerOrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderLineID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coverage_order_line,priority:2"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;index:idx_coverage_order_product,priority:2"`
	QuantityCovered   int64     `gorm:"not null"`
	DispatchDate      time.Time `gorm:"type:date;not null;index"`
	BranchID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (CoverageSnapshot) TableName() string {
	return "coverage_snapshots"
}

// NewCoverageSnapshot freezes one source order line under a production order
func NewCoverageSnapshot(
	productionOrderID uuid.UUID,
	customerOrderID uuid.UUID,
	orderLineID uuid.UUID,
	productID uuid.UUID,
	quantityCovered int64,
	dispatchDate time.Time,
	branchID uuid.UUID,
	companyID uuid.UUID,
) (*CoverageSnapshot, error) {
	if productionOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Production order ID cannot be empty")
	}
	if customerOrderID == uuid.Nil || orderLineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source order and line IDs cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantityCovered <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Covered quantity must be positive")
	}

	return &CoverageSnapshot{
		BaseEntity:        shared.NewBaseEntity(),
		ProductionOrderID: productionOrderID,
		CustomerOrderID:   customerOrderID,
		OrderLineID:       orderLineID,
		ProductID:         productID,
		QuantityCovered:   quantityCovered,
		DispatchDate:      dispatchDate.Truncate(24 * time.Hour),
		BranchID:          branchID,
		CompanyID:         companyID,
	}, nil
}

// InWindow reports whether the snapshot's dispatch date falls inside
// [start, end], both inclusive.
func (s *CoverageSnapshot) InWindow(start, end time.Time) bool {
	return !s.DispatchDate.Before(start) && !s.DispatchDate.After(end)
}
