package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// SettleTransactionInput represents the input for settling a debt.
type SettleTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// SettleTransactionOutput represents the output of settling a debt.
type SettleTransactionOutput struct {
	Transaction *entity.Transaction
}

// SettleTransactionUseCase marks a borrow or lend record as settled.
type SettleTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	apply           *replication.ApplyDeltaUseCase
}

// NewSettleTransactionUseCase creates a new SettleTransactionUseCase instance.
func NewSettleTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	apply *replication.ApplyDeltaUseCase,
) *SettleTransactionUseCase {
	return &SettleTransactionUseCase{
		transactionRepo: transactionRepo,
		apply:           apply,
	}
}

// Execute settles the debt. Settling an already settled debt is a no-op.
func (uc *SettleTransactionUseCase) Execute(ctx context.Context, input SettleTransactionInput) (*SettleTransactionOutput, error) {
	transaction, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if transaction.IsSettled() {
		return &SettleTransactionOutput{Transaction: transaction}, nil
	}

	if err := transaction.Settle(time.Now().UTC()); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeStatusOnNonDebt,
			"only borrow and lend records can be settled",
			err,
		)
	}

	if err := save(ctx, uc.apply, transaction); err != nil {
		return nil, err
	}

	return &SettleTransactionOutput{
		Transaction: transaction,
	}, nil
}
