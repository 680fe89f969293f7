package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// AuditLogger is a wildcard event handler that writes one structured log line
// per domain event, giving operators a trail of production-order lifecycle
// changes without a dedicated audit store.
type AuditLogger struct {
	logger *zap.Logger
}

// NewAuditLogger creates an AuditLogger
func NewAuditLogger(logger *zap.Logger) *AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogger{logger: logger}
}

// Handle logs the event
func (a *AuditLogger) Handle(ctx context.Context, event shared.DomainEvent) error {
	a.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil so the handler subscribes to all events
func (a *AuditLogger) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogger)(nil)
