// Package events publishes catalog change events to Kafka for downstream
// consumers (search indexers, cache invalidation).
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"bootfeed/internal/logger"
)

type Event struct {
	Type      string                 `json:"type"`
	ProductID string                 `json:"product_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	TypeProductTouched = "product.touched"
	TypeImportFinished = "import.finished"
)

type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher returns nil when brokers is empty; a nil Publisher drops every
// event, so callers never need to branch.
func NewPublisher(brokers, topic string, log *logger.Logger) *Publisher {
	if brokers == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, log: log}
}

func (p *Publisher) Publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal event: %v", err)
		return
	}
	msg := kafka.Message{Key: []byte(event.ProductID), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("publish %s: %v", event.Type, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.writer.Close()
}
