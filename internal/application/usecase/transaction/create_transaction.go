package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	Category    string
	Status      entity.DebtStatus // Optional, debt kinds default to pending
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	apply *replication.ApplyDeltaUseCase
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(apply *replication.ApplyDeltaUseCase) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		apply: apply,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		input.Kind,
		input.Category,
	)
	if input.Status != entity.DebtStatusNone {
		transaction.Status = input.Status
	}

	if err := save(ctx, uc.apply, transaction); err != nil {
		return nil, err
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}
