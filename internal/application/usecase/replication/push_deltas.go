package replication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// DefaultMaxBatchSize is the largest number of deltas accepted in one push.
const DefaultMaxBatchSize = 500

// PushDeltasInput represents the input for pushing a batch of deltas.
type PushDeltasInput struct {
	UserID uuid.UUID
	Deltas []state.Delta
}

// PushDeltasOutput represents the output of pushing a batch of deltas.
type PushDeltasOutput struct {
	Accepted int
	DeltaIDs []uuid.UUID
}

// PushDeltasUseCase validates a batch of client deltas and queues it for persistence.
type PushDeltasUseCase struct {
	queue        adapter.DeltaQueue
	maxBatchSize int
}

// NewPushDeltasUseCase creates a new PushDeltasUseCase instance.
// A non-positive maxBatchSize selects DefaultMaxBatchSize.
func NewPushDeltasUseCase(queue adapter.DeltaQueue, maxBatchSize int) *PushDeltasUseCase {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &PushDeltasUseCase{
		queue:        queue,
		maxBatchSize: maxBatchSize,
	}
}

// Execute validates every delta and enqueues the whole batch. Nothing is
// queued when any delta is invalid.
func (uc *PushDeltasUseCase) Execute(ctx context.Context, input PushDeltasInput) (*PushDeltasOutput, error) {
	if len(input.Deltas) == 0 {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeEmptyDeltaBatch,
			"deltas list cannot be empty",
			domainerror.ErrEmptyDeltaBatch,
		)
	}
	if len(input.Deltas) > uc.maxBatchSize {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeDeltaBatchTooLarge,
			fmt.Sprintf("at most %d deltas can be pushed at once", uc.maxBatchSize),
			domainerror.ErrDeltaBatchTooLarge,
		)
	}

	deltas, err := scopeDeltas(input.UserID, input.Deltas)
	if err != nil {
		return nil, err
	}

	if err := uc.queue.Publish(ctx, deltas...); err != nil {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeQueueUnavailable,
			"failed to queue deltas",
			fmt.Errorf("%w: %w", domainerror.ErrQueueUnavailable, err),
		)
	}

	ids := make([]uuid.UUID, len(deltas))
	for i, d := range deltas {
		ids[i] = d.ID
	}

	return &PushDeltasOutput{
		Accepted: len(deltas),
		DeltaIDs: ids,
	}, nil
}

// scopeDeltas binds client deltas to the authenticated user, assigns missing
// ids and validates each one.
func scopeDeltas(userID uuid.UUID, in []state.Delta) ([]state.Delta, error) {
	out := make([]state.Delta, len(in))
	for i, d := range in {
		d.UserID = userID
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		if _, err := d.Decode(); err != nil {
			syncErr := domainerror.SyncErrorFromValidation(err)
			syncErr.Message = fmt.Sprintf("delta %d: %s", i, syncErr.Message)
			return nil, syncErr
		}
		out[i] = d
	}
	return out, nil
}
