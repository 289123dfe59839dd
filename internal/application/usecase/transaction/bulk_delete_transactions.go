package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// BulkDeleteTransactionsInput represents the input for bulk transaction deletion.
type BulkDeleteTransactionsInput struct {
	TransactionIDs []uuid.UUID
	UserID         uuid.UUID
}

// BulkDeleteTransactionsOutput represents the output of bulk transaction deletion.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int64
}

// BulkDeleteTransactionsUseCase handles bulk transaction deletion logic.
type BulkDeleteTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	apply           *replication.ApplyDeltaUseCase
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	apply *replication.ApplyDeltaUseCase,
) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{
		transactionRepo: transactionRepo,
		apply:           apply,
	}
}

// Execute verifies every transaction before deleting any of them. All
// tombstones share one timestamp.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"transaction IDs list cannot be empty",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	seen := make(map[uuid.UUID]bool, len(input.TransactionIDs))
	ids := make([]uuid.UUID, 0, len(input.TransactionIDs))
	for _, id := range input.TransactionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := findOwned(ctx, uc.transactionRepo, id, input.UserID); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	now := time.Now().UTC()
	var deleted int64
	for _, id := range ids {
		delta := state.Delete(input.UserID, state.KindTransaction, id, now)
		if _, err := uc.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: delta}); err != nil {
			return nil, err
		}
		deleted++
	}

	return &BulkDeleteTransactionsOutput{
		DeletedCount: deleted,
	}, nil
}
