// Package events publishes domain events to Kafka. Publishing is best-effort:
// an unconfigured publisher is a no-op and a failed publish never fails the
// operation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types emitted by the booking core.
const (
	TypeBookingCreated      = "booking.created"
	TypeAvailabilitySeeded  = "availability.seeded"
	TypeRoleApproved        = "role.approved"
	TypeParentStudentLinked = "parent_student.linked"
)

const headerEventType = "event-type"

// Publisher wraps a kafka-go writer. A nil Publisher or one built without
// brokers silently drops events.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher builds a publisher for the given brokers and topic. With no
// brokers configured it returns a disabled publisher.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{logger: logger}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by key keeps per-entity ordering
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Warn("kafka writer", zap.String("msg", fmt.Sprintf(msg, args...)))
		}),
	}

	return &Publisher{writer: writer, logger: logger}
}

// Enabled reports whether events actually reach a broker.
func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish sends one JSON-encoded event keyed by the entity ID. Errors are
// logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, eventType string, key uuid.UUID, payload any) {
	if !p.Enabled() {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("marshal event payload",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(eventType)},
		},
		Time: time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("publish event",
			zap.String("event_type", eventType),
			zap.String("key", key.String()),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("event published",
		zap.String("event_type", eventType),
		zap.String("key", key.String()),
	)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
