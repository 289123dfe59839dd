package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Kind          *entity.TransactionKind
	Category      *string
	Status        *entity.DebtStatus
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	apply           *replication.ApplyDeltaUseCase
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	apply *replication.ApplyDeltaUseCase,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		apply:           apply,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Description != nil {
		transaction.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Category != nil {
		transaction.Category = strings.TrimSpace(*input.Category)
	}
	if input.Kind != nil && *input.Kind != transaction.Kind {
		transaction.Kind = *input.Kind
		// Status belongs to debt kinds only
		if !transaction.Kind.IsDebt() {
			transaction.Status = entity.DebtStatusNone
		}
	}
	if input.Status != nil {
		transaction.Status = *input.Status
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := save(ctx, uc.apply, transaction); err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: transaction,
	}, nil
}
