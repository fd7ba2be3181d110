package ports

import "context"

// EventPublisher delivers integration events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}
