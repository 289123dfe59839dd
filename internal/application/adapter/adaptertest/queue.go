package adaptertest

import (
	"context"
	"strconv"
	"sync"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/state"
)

// Queue is an in-memory adapter.DeltaQueue.
type Queue struct {
	mu          sync.Mutex
	ready       []adapter.QueuedDelta
	reserved    map[string]adapter.QueuedDelta
	dead        []adapter.QueuedDelta
	seq         int
	MaxAttempts int
	// Err, when set, is returned by every call.
	Err error
}

// NewQueue creates an empty queue that dead-letters a delta after maxAttempts.
func NewQueue(maxAttempts int) *Queue {
	return &Queue{
		reserved:    make(map[string]adapter.QueuedDelta),
		MaxAttempts: maxAttempts,
	}
}

func (q *Queue) Publish(_ context.Context, deltas ...state.Delta) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	for _, d := range deltas {
		q.ready = append(q.ready, adapter.QueuedDelta{Delta: d})
	}
	return nil
}

func (q *Queue) Consume(_ context.Context, max int) ([]adapter.QueuedDelta, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return nil, q.Err
	}
	if max > len(q.ready) {
		max = len(q.ready)
	}
	out := make([]adapter.QueuedDelta, 0, max)
	for _, m := range q.ready[:max] {
		q.seq++
		m.Receipt = strconv.Itoa(q.seq)
		q.reserved[m.Receipt] = m
		out = append(out, m)
	}
	q.ready = q.ready[max:]
	return out, nil
}

func (q *Queue) Ack(_ context.Context, msgs ...adapter.QueuedDelta) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	for _, m := range msgs {
		delete(q.reserved, m.Receipt)
	}
	return nil
}

func (q *Queue) Nack(_ context.Context, msg adapter.QueuedDelta) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	delete(q.reserved, msg.Receipt)
	msg.Attempts++
	msg.Receipt = ""
	if q.MaxAttempts > 0 && msg.Attempts >= q.MaxAttempts {
		q.dead = append(q.dead, msg)
		return nil
	}
	q.ready = append(q.ready, msg)
	return nil
}

func (q *Queue) Len(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return 0, q.Err
	}
	return int64(len(q.ready)), nil
}

func (q *Queue) Close() error { return nil }

// Pending returns the deltas waiting to be consumed.
func (q *Queue) Pending() []state.Delta {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]state.Delta, len(q.ready))
	for i, m := range q.ready {
		out[i] = m.Delta
	}
	return out
}

// Reserved returns the number of consumed but unacknowledged deltas.
func (q *Queue) Reserved() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.reserved)
}

// DeadLetters returns the deltas that exhausted their attempts.
func (q *Queue) DeadLetters() []adapter.QueuedDelta {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]adapter.QueuedDelta(nil), q.dead...)
}

var _ adapter.DeltaQueue = (*Queue)(nil)
