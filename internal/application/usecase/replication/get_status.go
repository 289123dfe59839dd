package replication

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// Failure codes recorded by the status tracker.
const (
	FailureCodeQueueUnavailable = "QUEUE_UNAVAILABLE"
	FailureCodeTimeout          = "TIMEOUT"
	FailureCodeRejected         = "REJECTED"
	FailureCodeUnknown          = "UNKNOWN"
)

// Failure describes why the last delta of a user could not be stored.
type Failure struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	DeltaID   uuid.UUID `json:"delta_id"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

// UserSyncStatus is the persistence progress of one user's deltas.
type UserSyncStatus struct {
	Applied       int        `json:"applied"`
	Stale         int        `json:"stale"`
	Failed        int        `json:"failed"`
	LastAppliedAt *time.Time `json:"last_applied_at,omitempty"`
	LastFailure   *Failure   `json:"last_failure,omitempty"`
}

// StatusTracker records per-user delta processing outcomes.
type StatusTracker interface {
	RecordApplied(userID uuid.UUID, at time.Time)
	RecordStale(userID uuid.UUID)
	RecordFailure(userID uuid.UUID, failure *Failure)
	Status(userID uuid.UUID) UserSyncStatus
}

// ClassifyFailure converts an apply error into a Failure. Validation and
// authorization failures are not retryable; infrastructure failures are.
func ClassifyFailure(deltaID uuid.UUID, err error) *Failure {
	f := &Failure{
		DeltaID:   deltaID,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}

	var (
		syncErr  *domainerror.SyncError
		txnErr   *domainerror.TransactionError
		habitErr *domainerror.HabitError
		goalErr  *domainerror.GoalError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		f.Code = FailureCodeTimeout
		f.Retryable = true
	case errors.Is(err, domainerror.ErrQueueUnavailable):
		f.Code = FailureCodeQueueUnavailable
		f.Retryable = true
	case errors.As(err, &syncErr), errors.As(err, &txnErr), errors.As(err, &habitErr), errors.As(err, &goalErr):
		f.Code = FailureCodeRejected
		f.Retryable = false
	default:
		f.Code = FailureCodeUnknown
		f.Retryable = true
	}
	return f
}

// InMemoryStatusTracker is a simple in-memory implementation of StatusTracker.
type InMemoryStatusTracker struct {
	mu     sync.RWMutex
	status map[uuid.UUID]*UserSyncStatus
}

// NewInMemoryStatusTracker creates a new in-memory status tracker.
func NewInMemoryStatusTracker() *InMemoryStatusTracker {
	return &InMemoryStatusTracker{
		status: make(map[uuid.UUID]*UserSyncStatus),
	}
}

func (t *InMemoryStatusTracker) entry(userID uuid.UUID) *UserSyncStatus {
	s, ok := t.status[userID]
	if !ok {
		s = &UserSyncStatus{}
		t.status[userID] = s
	}
	return s
}

// RecordApplied counts a stored delta.
func (t *InMemoryStatusTracker) RecordApplied(userID uuid.UUID, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.entry(userID)
	s.Applied++
	s.LastAppliedAt = &at
}

// RecordStale counts a delta superseded by a newer stored version.
func (t *InMemoryStatusTracker) RecordStale(userID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entry(userID).Stale++
}

// RecordFailure counts a failed delta and keeps it as the last failure.
func (t *InMemoryStatusTracker) RecordFailure(userID uuid.UUID, failure *Failure) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.entry(userID)
	s.Failed++
	s.LastFailure = failure
}

// Status returns a copy of the user's counters.
func (t *InMemoryStatusTracker) Status(userID uuid.UUID) UserSyncStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.status[userID]
	if !ok {
		return UserSyncStatus{}
	}
	return *s
}

// GetStatusInput represents the input for getting the sync status.
type GetStatusInput struct {
	UserID uuid.UUID
}

// GetStatusOutput represents the output of getting the sync status.
type GetStatusOutput struct {
	Pending int64          `json:"pending"`
	User    UserSyncStatus `json:"user"`
}

// GetStatusUseCase reports the queue backlog and the user's processing counters.
type GetStatusUseCase struct {
	queue   adapter.DeltaQueue
	tracker StatusTracker
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(queue adapter.DeltaQueue, tracker StatusTracker) *GetStatusUseCase {
	return &GetStatusUseCase{
		queue:   queue,
		tracker: tracker,
	}
}

// Execute retrieves the sync status for a user.
func (uc *GetStatusUseCase) Execute(ctx context.Context, input GetStatusInput) (*GetStatusOutput, error) {
	pending, err := uc.queue.Len(ctx)
	if err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeQueueUnavailable,
			"failed to read queue length",
			fmt.Errorf("%w: %w", domainerror.ErrQueueUnavailable, err),
		)
	}

	out := &GetStatusOutput{Pending: pending}
	if uc.tracker != nil {
		out.User = uc.tracker.Status(input.UserID)
	}
	return out, nil
}
