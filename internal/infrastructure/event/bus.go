package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// InMemoryEventBus implements shared.EventBus with synchronous in-process
// dispatch. Handler errors are logged and do not stop delivery to the
// remaining handlers.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to every handler registered for their type
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. With no explicit event types the handler's
// own EventTypes() are used; an empty list subscribes it to all events.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from all event types
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
