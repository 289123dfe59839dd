package syncworker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter/adaptertest"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/domain/state"
)

type fixture struct {
	queue       *adaptertest.Queue
	habits      *adaptertest.HabitRepository
	completions *adaptertest.HabitCompletionRepository
	tracker     *replication.InMemoryStatusTracker
	worker      *Worker
}

func newFixture(maxAttempts int) *fixture {
	f := &fixture{
		queue:       adaptertest.NewQueue(maxAttempts),
		habits:      adaptertest.NewHabitRepository(),
		completions: adaptertest.NewHabitCompletionRepository(),
		tracker:     replication.NewInMemoryStatusTracker(),
	}
	apply := replication.NewApplyDeltaUseCase(
		adaptertest.NewTransactionRepository(),
		f.habits,
		f.completions,
		adaptertest.NewGoalRepository(),
	)
	f.worker = NewWorker(f.queue, apply, f.tracker, Config{PollInterval: 10 * time.Millisecond, BatchSize: 10})
	return f
}

func habitDelta(t *testing.T, h *entity.Habit) state.Delta {
	t.Helper()
	d, err := state.UpsertHabit(*h)
	if err != nil {
		t.Fatalf("failed to build delta: %v", err)
	}
	return d
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("applies and acknowledges", func(t *testing.T) {
		f := newFixture(3)
		habit := entity.NewHabit(userID, "Run", "Fitness")
		_ = f.queue.Publish(ctx, habitDelta(t, habit))

		if n := f.worker.ProcessNow(ctx); n != 1 {
			t.Fatalf("expected 1 delta processed, got %d", n)
		}
		if _, err := f.habits.FindByID(ctx, habit.ID); err != nil {
			t.Errorf("expected habit to be stored, got %v", err)
		}
		if f.queue.Reserved() != 0 || len(f.queue.Pending()) != 0 {
			t.Error("expected the queue to be settled")
		}
		if s := f.tracker.Status(userID); s.Applied != 1 || s.LastAppliedAt == nil {
			t.Errorf("unexpected status %+v", s)
		}
	})

	t.Run("acknowledges stale deltas", func(t *testing.T) {
		f := newFixture(3)
		habit := entity.NewHabit(userID, "Run", "Fitness")
		old := habitDelta(t, habit)

		newer := *habit
		newer.Name = "Run daily"
		newer.UpdatedAt = habit.UpdatedAt.Add(time.Minute)
		if err := f.habits.Upsert(ctx, &newer); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		_ = f.queue.Publish(ctx, old)
		f.worker.ProcessNow(ctx)

		stored, _ := f.habits.FindByID(ctx, habit.ID)
		if stored.Name != "Run daily" {
			t.Errorf("expected the newer name to be kept, got %q", stored.Name)
		}
		if f.queue.Reserved() != 0 || len(f.queue.DeadLetters()) != 0 {
			t.Error("expected the stale delta to be acknowledged")
		}
		if s := f.tracker.Status(userID); s.Stale != 1 || s.Failed != 0 {
			t.Errorf("unexpected status %+v", s)
		}
	})

	t.Run("drops rejected deltas", func(t *testing.T) {
		f := newFixture(3)
		orphan := entity.NewHabitCompletion(entity.NewHabit(userID, "Ghost", ""), time.Now(), true)
		d, err := state.UpsertCompletion(*orphan)
		if err != nil {
			t.Fatalf("failed to build delta: %v", err)
		}
		_ = f.queue.Publish(ctx, d)
		f.worker.ProcessNow(ctx)

		if len(f.queue.Pending()) != 0 || len(f.queue.DeadLetters()) != 0 {
			t.Error("expected the rejected delta to be acknowledged")
		}
		s := f.tracker.Status(userID)
		if s.Failed != 1 || s.LastFailure == nil {
			t.Fatalf("unexpected status %+v", s)
		}
		if s.LastFailure.Code != replication.FailureCodeRejected || s.LastFailure.Retryable {
			t.Errorf("unexpected failure %+v", s.LastFailure)
		}
		if s.LastFailure.DeltaID != d.ID {
			t.Errorf("expected failure for delta %s, got %s", d.ID, s.LastFailure.DeltaID)
		}
	})

	t.Run("retries store failures then dead-letters", func(t *testing.T) {
		f := newFixture(2)
		f.habits.Err = errors.New("connection reset")
		_ = f.queue.Publish(ctx, habitDelta(t, entity.NewHabit(userID, "Swim", "")))

		f.worker.ProcessNow(ctx)
		pending := f.queue.Pending()
		if len(pending) != 1 {
			t.Fatalf("expected the delta to be requeued, got %d pending", len(pending))
		}

		f.worker.ProcessNow(ctx)
		if dead := f.queue.DeadLetters(); len(dead) != 1 || dead[0].Attempts != 2 {
			t.Errorf("expected one dead letter after 2 attempts, got %+v", dead)
		}
		if s := f.tracker.Status(userID); s.Failed != 2 || !s.LastFailure.Retryable {
			t.Errorf("unexpected status %+v", s)
		}
	})

	t.Run("queue unavailable", func(t *testing.T) {
		f := newFixture(3)
		f.queue.Err = errors.New("redis down")
		if n := f.worker.ProcessNow(ctx); n != 0 {
			t.Errorf("expected nothing processed, got %d", n)
		}
	})
}

func TestWorker_Drain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(3)
	f.worker.batchSize = 2
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_ = f.queue.Publish(ctx, habitDelta(t, entity.NewHabit(userID, "Habit", "")))
	}
	f.worker.Drain(ctx)

	if s := f.tracker.Status(userID); s.Applied != 5 {
		t.Errorf("expected 5 applied, got %d", s.Applied)
	}
	habits, _ := f.habits.FindByUser(ctx, userID)
	if len(habits) != 5 {
		t.Errorf("expected 5 habits, got %d", len(habits))
	}
}

func TestWorker_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newFixture(3)
	userID := uuid.New()

	done := make(chan struct{})
	go func() {
		f.worker.Start(ctx)
		close(done)
	}()

	_ = f.queue.Publish(context.Background(), habitDelta(t, entity.NewHabit(userID, "Walk", "")))

	deadline := time.After(2 * time.Second)
	for f.tracker.Status(userID).Applied == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for the worker")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
