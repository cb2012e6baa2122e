package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs chan kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		w.msgs <- m
	}
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestToMessage(t *testing.T) {
	msg, err := toMessage(Event{Type: OrderCreated, EntityID: 12, ActorID: 3, Payload: map[string]string{"orderNumber": "ORD-1"}})
	if err != nil {
		t.Fatalf("toMessage: %v", err)
	}
	if string(msg.Key) != "12" {
		t.Errorf("key = %q", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != OrderCreated {
		t.Errorf("headers = %+v", msg.Headers)
	}

	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Type != OrderCreated || decoded.ActorID != 3 || decoded.OccurredAt.IsZero() {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPublishIsAsyncAndSwallowsErrors(t *testing.T) {
	w := &recordingWriter{msgs: make(chan kafka.Message, 1), err: errors.New("broker down")}
	p := &kafkaPublisher{writer: w}

	ctx, cancel := context.WithCancel(context.Background())
	p.Publish(ctx, Event{Type: StockAdjusted, EntityID: 5})
	cancel()

	select {
	case m := <-w.msgs:
		if string(m.Key) != "5" {
			t.Fatalf("key = %q", m.Key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message was not written")
	}
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	p.Publish(context.Background(), Event{Type: OrderDeleted})
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
