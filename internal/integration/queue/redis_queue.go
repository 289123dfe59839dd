// Package queue implements the durable delta queue on Redis and AMQP.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/state"
)

// envelope is the stored form of a queued delta.
type envelope struct {
	Delta    state.Delta `json:"delta"`
	Attempts int         `json:"attempts"`
}

// RedisQueue keeps pending deltas in a Redis list. Consumed deltas move to a
// processing list until acknowledged, so a crash between Consume and Ack
// loses nothing.
type RedisQueue struct {
	client      *redis.Client
	pending     string
	processing  string
	dead        string
	maxAttempts int
}

// NewRedisQueue creates a queue stored under key.
func NewRedisQueue(client *redis.Client, key string, maxAttempts int) *RedisQueue {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &RedisQueue{
		client:      client,
		pending:     key,
		processing:  key + ":processing",
		dead:        key + ":dead",
		maxAttempts: maxAttempts,
	}
}

// Publish appends deltas to the queue in order.
func (q *RedisQueue) Publish(ctx context.Context, deltas ...state.Delta) error {
	if len(deltas) == 0 {
		return nil
	}

	values := make([]any, len(deltas))
	for i, d := range deltas {
		body, err := json.Marshal(envelope{Delta: d})
		if err != nil {
			return fmt.Errorf("marshal delta: %w", err)
		}
		values[i] = body
	}

	// Consumers pop from the right, so the head of the list is the newest entry.
	if err := q.client.LPush(ctx, q.pending, values...).Err(); err != nil {
		return fmt.Errorf("push deltas: %w", err)
	}
	return nil
}

// Consume moves up to max deltas to the processing list and returns them.
func (q *RedisQueue) Consume(ctx context.Context, max int) ([]adapter.QueuedDelta, error) {
	var out []adapter.QueuedDelta
	for len(out) < max {
		raw, err := q.client.LMove(ctx, q.pending, q.processing, "RIGHT", "LEFT").Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("move delta to processing: %w", err)
		}

		var env envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			slog.Warn("Dropping malformed queue entry", "error", err)
			if err := q.bury(ctx, raw, raw); err != nil {
				return out, err
			}
			continue
		}

		out = append(out, adapter.QueuedDelta{
			Delta:    env.Delta,
			Attempts: env.Attempts,
			Receipt:  raw,
		})
	}
	return out, nil
}

// Ack removes processed deltas from the processing list.
func (q *RedisQueue) Ack(ctx context.Context, msgs ...adapter.QueuedDelta) error {
	if len(msgs) == 0 {
		return nil
	}
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range msgs {
			pipe.LRem(ctx, q.processing, 1, m.Receipt)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ack deltas: %w", err)
	}
	return nil
}

// Nack puts the delta back at the front of the queue, or buries it once its
// attempts are exhausted.
func (q *RedisQueue) Nack(ctx context.Context, msg adapter.QueuedDelta) error {
	body, err := json.Marshal(envelope{Delta: msg.Delta, Attempts: msg.Attempts + 1})
	if err != nil {
		return fmt.Errorf("marshal delta: %w", err)
	}

	if msg.Attempts+1 >= q.maxAttempts {
		slog.Warn("Delta moved to dead-letter list",
			"delta_id", msg.Delta.ID,
			"attempts", msg.Attempts+1,
		)
		return q.bury(ctx, msg.Receipt, string(body))
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, q.processing, 1, msg.Receipt)
		pipe.RPush(ctx, q.pending, body)
		return nil
	})
	if err != nil {
		return fmt.Errorf("requeue delta: %w", err)
	}
	return nil
}

// bury moves an entry from the processing list to the dead-letter list.
func (q *RedisQueue) bury(ctx context.Context, receipt, body string) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, q.processing, 1, receipt)
		pipe.LPush(ctx, q.dead, body)
		return nil
	})
	if err != nil {
		return fmt.Errorf("dead-letter delta: %w", err)
	}
	return nil
}

// Len returns the number of deltas waiting to be consumed.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.pending).Result()
	if err != nil {
		return 0, fmt.Errorf("queue length: %w", err)
	}
	return n, nil
}

// DeadLetters returns the number of buried deltas.
func (q *RedisQueue) DeadLetters(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.dead).Result()
}

// Recover returns deltas left in the processing list by a previous run to the
// front of the queue, oldest first.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, q.processing, q.pending, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("recover deltas: %w", err)
		}
		moved++
	}
}

// Close closes the Redis client.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

var _ adapter.DeltaQueue = (*RedisQueue)(nil)
