package messaging

import "context"

// Broker publishes appointment lifecycle events to downstream consumers
// (record-keeping, billing).
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
