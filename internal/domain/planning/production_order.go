package planning

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// ProductionOrderStatus represents the lifecycle state of a production order
type ProductionOrderStatus string

const (
	// StatusDraft is a production order still being planned
	StatusDraft ProductionOrderStatus = "DRAFT"
	// StatusExecuted is a production order whose output was moved into stock
	StatusExecuted ProductionOrderStatus = "EXECUTED"
	// StatusCancelled is terminal; only cancelled orders may be deleted
	StatusCancelled ProductionOrderStatus = "CANCELLED"
)

// String returns the string representation of ProductionOrderStatus
func (s ProductionOrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s ProductionOrderStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusExecuted, StatusCancelled:
		return true
	}
	return false
}

// Typed errors for lifecycle guards, surfaced to callers as user-facing failures
var (
	// ErrOrderNotDeletable rejects deletion of any order that is not CANCELLED
	ErrOrderNotDeletable = shared.NewDomainError("ORDER_NOT_DELETABLE", "Only cancelled production orders can be deleted")
	// ErrOrderNotCancellable rejects cancellation when a later executed order shares the date range
	ErrOrderNotCancellable = shared.NewDomainError("ORDER_NOT_CANCELLABLE", "A later executed production order covers the same date range")
)

// ProductionOrder is a planned manufacturing run covering a dispatch date
// range. The DB-assigned Sequence is the creation-order proxy: an order with a
// lower sequence is considered "prior" regardless of its dates.
type ProductionOrder struct {
	shared.BaseAggregateRoot
	Sequence            int64                 `gorm:"autoIncrement;uniqueIndex"`
	Status              ProductionOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	InitialDispatchDate time.Time             `gorm:"type:date;not null;index"`
	FinalDispatchDate   time.Time             `gorm:"type:date;not null;index"`
	PreparationTime     time.Time             `gorm:"type:timestamptz;not null"`
	Notes               string                `gorm:"type:varchar(500)"`

	Lines []ProductionOrderLine `gorm:"foreignKey:ProductionOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionOrder) TableName() string {
	return "production_orders"
}

// NewProductionOrder creates a draft production order for a dispatch range
func NewProductionOrder(initialDispatch, finalDispatch time.Time, preparation time.Time) (*ProductionOrder, error) {
	if initialDispatch.IsZero() || finalDispatch.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Dispatch dates cannot be empty")
	}
	initial := initialDispatch.Truncate(24 * time.Hour)
	final := finalDispatch.Truncate(24 * time.Hour)
	if final.Before(initial) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Final dispatch date cannot precede initial dispatch date")
	}

	return &ProductionOrder{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		Status:              StatusDraft,
		InitialDispatchDate: initial,
		FinalDispatchDate:   final,
		PreparationTime:     preparation,
		Lines:               make([]ProductionOrderLine, 0),
	}, nil
}

// IsDraft returns true while the order is still being planned
func (o *ProductionOrder) IsDraft() bool {
	return o.Status == StatusDraft
}

// IsExecuted returns true once the order's output was moved into stock
func (o *ProductionOrder) IsExecuted() bool {
	return o.Status == StatusExecuted
}

// IsCancelled returns true when the order reached its terminal cancelled state
func (o *ProductionOrder) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// Execute transitions DRAFT -> EXECUTED. The caller is responsible for
// applying the matching warehouse transaction in the same unit of work.
func (o *ProductionOrder) Execute() error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft production orders can be executed")
	}
	o.Status = StatusExecuted
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewProductionOrderExecutedEvent(o))
	return nil
}

// Cancel transitions the order to its terminal CANCELLED state.
// laterExecutedOverlap must be true when any order with a higher sequence is
// EXECUTED and shares this order's dispatch range; cancellation is then
// rejected because the later run already consumed this order's snapshots.
func (o *ProductionOrder) Cancel(laterExecutedOverlap bool) error {
	if o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Production order is already cancelled")
	}
	if laterExecutedOverlap {
		return ErrOrderNotCancellable
	}
	wasExecuted := o.Status == StatusExecuted
	o.Status = StatusCancelled
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewProductionOrderCancelledEvent(o, wasExecuted))
	return nil
}

// EnsureDeletable guards deletion: only CANCELLED orders may be deleted
func (o *ProductionOrder) EnsureDeletable() error {
	if o.Status != StatusCancelled {
		return ErrOrderNotDeletable
	}
	return nil
}

// OverlapsRange reproduces the legacy three-case overlap test against another
// order's [initial, final] dispatch range:
//
//  1. this order's initial date falls inside the range,
//  2. this order's final date falls inside the range, or
//  3. this order fully contains the range.
//
// Touching boundaries count as overlap. Kept verbatim instead of the general
// max(starts) <= min(ends) form; see DESIGN.md before changing.
func (o *ProductionOrder) OverlapsRange(initial, final time.Time) bool {
	within := func(d, lo, hi time.Time) bool {
		return !d.Before(lo) && !d.After(hi)
	}
	if within(o.InitialDispatchDate, initial, final) {
		return true
	}
	if within(o.FinalDispatchDate, initial, final) {
		return true
	}
	return !o.InitialDispatchDate.After(initial) && !o.FinalDispatchDate.Before(final)
}

// OverlapWindow clamps this order's range to another order's range and
// reports whether the clamped window is non-empty.
func (o *ProductionOrder) OverlapWindow(initial, final time.Time) (time.Time, time.Time, bool) {
	start := o.InitialDispatchDate
	if initial.After(start) {
		start = initial
	}
	end := o.FinalDispatchDate
	if final.Before(end) {
		end = final
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// LineForProduct returns the demand line for a product, or nil
func (o *ProductionOrder) LineForProduct(productID uuid.UUID) *ProductionOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			return &o.Lines[i]
		}
	}
	return nil
}
