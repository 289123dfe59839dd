package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
)

// GetEntitiesInput represents the input for getting counterparty ledgers.
// An empty window covers every date.
type GetEntitiesInput struct {
	UserID uuid.UUID
	Window WindowInput
}

// GetEntitiesOutput represents the output of getting counterparty ledgers.
type GetEntitiesOutput struct {
	Window   *aggregation.Window
	Entities []aggregation.EntityLedger
}

// GetEntitiesUseCase groups the user's borrow and lend records by counterparty.
type GetEntitiesUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetEntitiesUseCase creates a new GetEntitiesUseCase instance.
func NewGetEntitiesUseCase(transactionRepo adapter.TransactionRepository) *GetEntitiesUseCase {
	return &GetEntitiesUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute groups the ledgers.
func (uc *GetEntitiesUseCase) Execute(ctx context.Context, input GetEntitiesInput) (*GetEntitiesOutput, error) {
	var window *aggregation.Window
	if !input.Window.IsEmpty() {
		w, err := ParseWindow(input.Window)
		if err != nil {
			return nil, err
		}
		window = &w
	}

	records, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, window,
		entity.TransactionKindBorrow, entity.TransactionKindLend)
	if err != nil {
		return nil, err
	}

	return &GetEntitiesOutput{
		Window:   window,
		Entities: aggregation.GroupEntities(records),
	}, nil
}
