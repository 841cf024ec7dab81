package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/observability"
)

// AuditLogger writes every portal audit event to the log and counts it.
type AuditLogger struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

func NewAuditLogger(logger *zap.Logger, metrics *observability.Metrics) *AuditLogger {
	return &AuditLogger{logger: logger, metrics: metrics}
}

func (a *AuditLogger) Handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("staff_id", event.Actor.StaffID),
		zap.String("role", string(event.Actor.Role)),
		zap.String("resource_id", event.ResourceID),
		zap.Any("payload", event.Payload))
	a.metrics.RecordAuditEvent(string(event.Type))
	return nil
}

// StartAuditWorkers registers the audit sinks. publisher may be nil when
// Kafka is not configured.
func StartAuditWorkers(dispatcher events.Dispatcher, audit *AuditLogger, publisher *events.KafkaPublisher) {
	if dispatcher == nil {
		return
	}
	if audit != nil {
		events.SubscribeAll(dispatcher, audit.Handle)
	}
	if publisher != nil {
		events.SubscribeAll(dispatcher, publisher.Handle)
	}
}
