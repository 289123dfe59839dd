// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/life-planner/backend/internal/domain/state"
)

// QueuedDelta is a delta handed out by a DeltaQueue, together with its
// delivery bookkeeping.
type QueuedDelta struct {
	Delta    state.Delta
	Attempts int
	// Receipt identifies the delivery to the queue backend on Ack/Nack.
	Receipt string
}

// DeltaQueue defines the interface for the durable queue of pending deltas.
type DeltaQueue interface {
	// Publish appends deltas to the queue in order.
	Publish(ctx context.Context, deltas ...state.Delta) error

	// Consume takes up to max deltas off the queue. Taken deltas stay reserved
	// until they are acknowledged or rejected.
	Consume(ctx context.Context, max int) ([]QueuedDelta, error)

	// Ack removes processed deltas for good.
	Ack(ctx context.Context, msgs ...QueuedDelta) error

	// Nack returns a delta to the queue with its attempt count increased, or
	// moves it to the dead-letter queue once attempts are exhausted.
	Nack(ctx context.Context, msg QueuedDelta) error

	// Len returns the number of deltas waiting to be consumed.
	Len(ctx context.Context) (int64, error)

	// Close releases the backend connection.
	Close() error
}
