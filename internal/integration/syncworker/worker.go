// Package syncworker drains the delta queue into the store.
package syncworker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// Worker consumes queued deltas and applies them to the store.
type Worker struct {
	queue        adapter.DeltaQueue
	apply        *replication.ApplyDeltaUseCase
	tracker      replication.StatusTracker
	pollInterval time.Duration
	batchSize    int
}

// Config holds configuration for the sync worker.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval: 2 * time.Second,
		BatchSize:    50,
	}
}

// recoverer is implemented by queues that can return deliveries left
// unacknowledged by a previous run.
type recoverer interface {
	Recover(ctx context.Context) (int, error)
}

// NewWorker creates a new sync worker.
func NewWorker(queue adapter.DeltaQueue, apply *replication.ApplyDeltaUseCase, tracker replication.StatusTracker, config Config) *Worker {
	defaults := DefaultConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &Worker{
		queue:        queue,
		apply:        apply,
		tracker:      tracker,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Sync worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	if r, ok := w.queue.(recoverer); ok {
		moved, err := r.Recover(ctx)
		if err != nil {
			slog.Error("Failed to recover unacknowledged deltas", "error", err)
		} else if moved > 0 {
			slog.Info("Recovered unacknowledged deltas", "count", moved)
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Sync worker shutting down")
			return
		case <-ticker.C:
			// Keep draining while full batches come back.
			for ctx.Err() == nil && w.processBatch(ctx) == w.batchSize {
			}
		}
	}
}

// processBatch consumes and applies one batch. It returns the number of
// deltas taken off the queue.
func (w *Worker) processBatch(ctx context.Context) int {
	msgs, err := w.queue.Consume(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to consume deltas", "error", err)
	}
	if len(msgs) == 0 {
		return 0
	}

	slog.Debug("Processing delta batch", "count", len(msgs))

	for _, msg := range msgs {
		select {
		case <-ctx.Done():
			// Unsettled deltas stay reserved and are redelivered on the next start.
			return len(msgs)
		default:
			w.processDelta(ctx, msg)
		}
	}
	return len(msgs)
}

// processDelta applies a single delta and settles it with the queue.
func (w *Worker) processDelta(ctx context.Context, msg adapter.QueuedDelta) {
	d := msg.Delta
	logger := slog.With(
		"delta_id", d.ID,
		"user_id", d.UserID,
		"op", d.Op,
		"kind", d.Kind,
		"record_id", d.RecordID,
		"attempts", msg.Attempts,
	)

	_, err := w.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: d})
	switch {
	case err == nil:
		w.ack(ctx, logger, msg)
		w.record(func(t replication.StatusTracker) { t.RecordApplied(d.UserID, time.Now().UTC()) })
		logger.Debug("Delta applied")
		return

	case errors.Is(err, domainerror.ErrStaleDelta):
		// A newer version is already stored; nothing left to do.
		w.ack(ctx, logger, msg)
		w.record(func(t replication.StatusTracker) { t.RecordStale(d.UserID) })
		logger.Info("Delta superseded by stored version")
		return
	}

	failure := replication.ClassifyFailure(d.ID, err)
	w.record(func(t replication.StatusTracker) { t.RecordFailure(d.UserID, failure) })

	if !failure.Retryable {
		logger.Warn("Delta rejected", "code", failure.Code, "error", err)
		w.ack(ctx, logger, msg)
		return
	}

	logger.Error("Failed to apply delta", "code", failure.Code, "error", err)
	if nackErr := w.queue.Nack(ctx, msg); nackErr != nil {
		logger.Error("Failed to return delta to queue", "error", nackErr)
	}
}

func (w *Worker) ack(ctx context.Context, logger *slog.Logger, msg adapter.QueuedDelta) {
	if err := w.queue.Ack(ctx, msg); err != nil {
		logger.Error("Failed to acknowledge delta", "error", err)
	}
}

func (w *Worker) record(fn func(replication.StatusTracker)) {
	if w.tracker != nil {
		fn(w.tracker)
	}
}

// ProcessNow processes one batch immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) int {
	return w.processBatch(ctx)
}

// Drain processes batches until the queue is empty or ctx is done.
func (w *Worker) Drain(ctx context.Context) {
	for ctx.Err() == nil && w.processBatch(ctx) > 0 {
	}
}
