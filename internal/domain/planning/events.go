package planning

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// Event type constants for the planning domain
const (
	EventProductionOrderCreated   = "planning.production_order.created"
	EventProductionOrderExecuted  = "planning.production_order.executed"
	EventProductionOrderCancelled = "planning.production_order.cancelled"
	EventProductionOrderDeleted   = "planning.production_order.deleted"
)

const aggregateTypeProductionOrder = "ProductionOrder"

// ProductionOrderCreatedEvent is emitted when a draft order and its coverage
// snapshots have been written
type ProductionOrderCreatedEvent struct {
	shared.BaseDomainEvent
	Sequence            int64     `json:"sequence"`
	InitialDispatchDate time.Time `json:"initial_dispatch_date"`
	FinalDispatchDate   time.Time `json:"final_dispatch_date"`
	LineCount           int       `json:"line_count"`
}

// NewProductionOrderCreatedEvent creates a ProductionOrderCreatedEvent
func NewProductionOrderCreatedEvent(order *ProductionOrder) *ProductionOrderCreatedEvent {
	return &ProductionOrderCreatedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventProductionOrderCreated, aggregateTypeProductionOrder, order.ID),
		Sequence:            order.Sequence,
		InitialDispatchDate: order.InitialDispatchDate,
		FinalDispatchDate:   order.FinalDispatchDate,
		LineCount:           len(order.Lines),
	}
}

// ProductionOrderExecutedEvent is emitted on DRAFT -> EXECUTED; downstream
// listeners move the produced quantities into warehouse stock
type ProductionOrderExecutedEvent struct {
	shared.BaseDomainEvent
	Sequence int64 `json:"sequence"`
}

// NewProductionOrderExecutedEvent creates a ProductionOrderExecutedEvent
func NewProductionOrderExecutedEvent(order *ProductionOrder) *ProductionOrderExecutedEvent {
	return &ProductionOrderExecutedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionOrderExecuted, aggregateTypeProductionOrder, order.ID),
		Sequence:        order.Sequence,
	}
}

// ProductionOrderCancelledEvent is emitted when an order reaches its terminal state
type ProductionOrderCancelledEvent struct {
	shared.BaseDomainEvent
	Sequence    int64 `json:"sequence"`
	WasExecuted bool  `json:"was_executed"`
}

// NewProductionOrderCancelledEvent creates a ProductionOrderCancelledEvent.
// wasExecuted reports whether the order had reached EXECUTED before
// cancellation, meaning its warehouse transaction was reverted.
func NewProductionOrderCancelledEvent(order *ProductionOrder, wasExecuted bool) *ProductionOrderCancelledEvent {
	return &ProductionOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionOrderCancelled, aggregateTypeProductionOrder, order.ID),
		Sequence:        order.Sequence,
		WasExecuted:     wasExecuted,
	}
}

// ProductionOrderDeletedEvent is emitted after a cancelled order and its
// lines/snapshots were cascade-deleted
type ProductionOrderDeletedEvent struct {
	shared.BaseDomainEvent
	Sequence int64 `json:"sequence"`
}

// NewProductionOrderDeletedEvent creates a ProductionOrderDeletedEvent
func NewProductionOrderDeletedEvent(orderID uuid.UUID, sequence int64) *ProductionOrderDeletedEvent {
	return &ProductionOrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductionOrderDeleted, aggregateTypeProductionOrder, orderID),
		Sequence:        sequence,
	}
}
