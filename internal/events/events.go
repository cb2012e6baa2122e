// Package events publishes domain events after a write has committed.
// Publishing is fire-and-forget: failures are logged and never reach the caller.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"shop_backoffice/pkg/utils"

	"github.com/segmentio/kafka-go"
)

// Event types.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderDeleted       = "order.deleted"
	StockAdjusted      = "stock.adjusted"
	ProductCreated     = "product.created"
)

const publishTimeout = 5 * time.Second

// Event is the message envelope.
type Event struct {
	Type       string      `json:"type"`
	EntityID   int64       `json:"entityId"`
	ActorID    int64       `json:"actorId"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher writes events to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	return &kafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}

func toMessage(event Event) (kafka.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.EntityID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}

// Publish sends in the background, detached from the request context.
func (p *kafkaPublisher) Publish(ctx context.Context, event Event) {
	msg, err := toMessage(event)
	if err != nil {
		utils.LogError(err, "events: failed to encode "+event.Type)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			utils.LogError(err, "events: failed to publish "+event.Type)
		}
	}()
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. Used when kafka is not configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) {}

func (noopPublisher) Close() error { return nil }
