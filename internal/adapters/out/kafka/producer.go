// Package kafka publishes integration events with segmentio/kafka-go.
package kafka

import (
	"context"

	"trackmate/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*Producer)(nil)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Producer writes messages synchronously, so a nil error means the broker
// acknowledged them.
type Producer struct {
	w writer
}

func NewProducer(brokers []string) *Producer {
	return newProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newProducerWithWriter(w writer) *Producer {
	return &Producer{w: w}
}

// Publish sends one message. Messages with the same key land on the same
// partition, which keeps a parcel's status changes in order.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes and closes the underlying writer when it supports closing.
func (p *Producer) Close() error {
	c, ok := p.w.(interface{ Close() error })
	if !ok {
		return nil
	}
	return errors.Wrap(c.Close(), "kafka close")
}
