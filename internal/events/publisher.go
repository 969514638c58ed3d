package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types carried on the catalog topic.
const (
	CategoryCreated    = "category.created"
	CategoryUpdated    = "category.updated"
	CategoryDeleted    = "category.deleted"
	SubCategoryCreated = "subcategory.created"
	SubCategoryUpdated = "subcategory.updated"
	SubCategoryDeleted = "subcategory.deleted"
	ItemCreated        = "item.created"
	ItemUpdated        = "item.updated"
	ItemDeleted        = "item.deleted"
)

type CatalogEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type Config struct {
	Brokers []string
	Topic   string
}

// Publisher emits catalog change events to Kafka. A nil Publisher is valid
// and publishes nothing, so callers never need to branch on configuration.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(cfg *Config, log *zap.Logger) *Publisher {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: log,
	}
}

// Publish writes one event, best effort. Failures are logged and never
// propagate to the request that triggered them.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	if p == nil {
		return
	}

	event := CatalogEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal catalog event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	})
	if err != nil {
		p.logger.Error("failed to publish catalog event", zap.String("event_type", eventType), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
