package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
)

// KafkaPublisher forwards audit events to a Kafka topic. Writes are async;
// delivery failures are logged only.
type KafkaPublisher struct {
	w      *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher returns nil when no brokers are configured.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	p := &KafkaPublisher{logger: logger}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Transport: &kafka.Transport{
			ClientID:    cfg.ClientID,
			MetadataTTL: 10 * time.Second,
		},
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("audit events not delivered", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}
	return p
}

// Handle is an EventHandler that publishes event keyed by the acting staff id.
func (p *KafkaPublisher) Handle(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Actor.StaffID),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}
