package replication

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// ReconcileInput represents a client replica sent for reconciliation, one
// delta per record version it holds.
type ReconcileInput struct {
	UserID   uuid.UUID
	Versions []state.Delta
}

// ReconcileOutput represents the merged state and the number of client
// versions queued because they were newer than the stored ones.
type ReconcileOutput struct {
	State  *state.State
	Queued int
}

// ReconcileUseCase merges a client replica with the stored state and queues
// the client versions that won.
type ReconcileUseCase struct {
	snapshot     *GetSnapshotUseCase
	queue        adapter.DeltaQueue
	maxBatchSize int
}

// NewReconcileUseCase creates a new ReconcileUseCase instance.
func NewReconcileUseCase(snapshot *GetSnapshotUseCase, queue adapter.DeltaQueue, maxBatchSize int) *ReconcileUseCase {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &ReconcileUseCase{
		snapshot:     snapshot,
		queue:        queue,
		maxBatchSize: maxBatchSize,
	}
}

// Execute performs the reconciliation.
func (uc *ReconcileUseCase) Execute(ctx context.Context, input ReconcileInput) (*ReconcileOutput, error) {
	if len(input.Versions) > uc.maxBatchSize {
		return nil, domainerror.NewSyncError(
			domainerror.ErrCodeDeltaBatchTooLarge,
			fmt.Sprintf("at most %d versions can be reconciled at once", uc.maxBatchSize),
			domainerror.ErrDeltaBatchTooLarge,
		)
	}

	versions, err := scopeDeltas(input.UserID, input.Versions)
	if err != nil {
		return nil, err
	}

	local := state.New(input.UserID)
	for _, d := range versions {
		if err := local.Apply(d); err != nil && !errors.Is(err, domainerror.ErrStaleDelta) {
			return nil, domainerror.SyncErrorFromValidation(err)
		}
	}

	remote, err := uc.snapshot.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	merged := state.Reconcile(local, remote)

	winners := state.Diff(remote, merged)
	deltas := make([]state.Delta, 0, len(winners))
	for _, v := range winners {
		d, err := v.ToDelta(input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to encode reconciled version: %w", err)
		}
		deltas = append(deltas, d)
	}

	if len(deltas) > 0 {
		if err := uc.queue.Publish(ctx, deltas...); err != nil {
			return nil, domainerror.NewSyncError(
				domainerror.ErrCodeQueueUnavailable,
				"failed to queue reconciled versions",
				fmt.Errorf("%w: %w", domainerror.ErrQueueUnavailable, err),
			)
		}
	}

	return &ReconcileOutput{
		State:  merged,
		Queued: len(deltas),
	}, nil
}
