package events

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Topic carrying platform events for downstream consumers.
const Topic = "ridenbite.platform.events"

// Event is the wire shape of a platform event.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id,omitempty"`
	Restaurant uint      `json:"restaurant_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher writes platform events to Kafka. With no brokers configured every
// publish is a no-op, so single-node deployments need no broker at all.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a publisher from a comma-separated broker list.
func NewPublisher(brokersCSV string) *Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Enabled reports whether events actually leave the process.
func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish sends one event keyed by its type. Failures are logged, never
// propagated; event delivery is best-effort by design.
func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if !p.Enabled() {
		return
	}
	if ev.EventID == "" {
		ev.EventID = uuid.New().String()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: marshal %s: %v", ev.Type, err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Type),
		Value: payload,
	}); err != nil {
		log.Printf("events: publish %s: %v", ev.Type, err)
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
