package ordering

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of a customer order
type OrderStatus string

const (
	// OrderStatusConfirmed is an order scheduled for dispatch
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusDispatched is an order already delivered to its branch
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	// OrderStatusCancelled is a cancelled order; it contributes no demand
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid returns true if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusDispatched, OrderStatusCancelled:
		return true
	}
	return false
}

// CustomerOrder is a source order: demand placed by a company for dispatch to
// a branch on a given date. Production orders consolidate these.
type CustomerOrder struct {
	shared.BaseAggregateRoot
	BranchID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	CompanyID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	DispatchDate time.Time   `gorm:"type:date;not null;index"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED'"`

	Lines []OrderLine `gorm:"foreignKey:CustomerOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (CustomerOrder) TableName() string {
	return "customer_orders"
}

// NewCustomerOrder creates a confirmed customer order
func NewCustomerOrder(branchID, companyID uuid.UUID, dispatchDate time.Time) (*CustomerOrder, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if dispatchDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Dispatch date cannot be empty")
	}

	return &CustomerOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		CompanyID:         companyID,
		DispatchDate:      dispatchDate.Truncate(24 * time.Hour),
		Status:            OrderStatusConfirmed,
		Lines:             make([]OrderLine, 0),
	}, nil
}

// AddLine appends a product line to the order
func (o *CustomerOrder) AddLine(productID uuid.UUID, quantity int64) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	line := OrderLine{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerOrderID: o.ID,
		ProductID:       productID,
		Quantity:        quantity,
	}
	o.Lines = append(o.Lines, line)
	o.IncrementVersion()
	return &o.Lines[len(o.Lines)-1], nil
}

// IsActive returns true if the order still contributes demand
func (o *CustomerOrder) IsActive() bool {
	return o.Status != OrderStatusCancelled
}

// OrderLine is one product position of a customer order.
//
// ProductionOrderLineID back-links the line to the production demand line that
// currently covers it. It is maintained by the re-link synchronization that
// fires on manual demand edits; the incremental demand computation suppresses
// the sync and leaves existing links untouched.
type OrderLine struct {
	shared.BaseEntity
	CustomerOrderID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity              int64      `gorm:"not null"`
	ProductionOrderLineID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}
