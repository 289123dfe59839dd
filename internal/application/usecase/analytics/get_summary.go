package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
)

// GetSummaryInput represents the input for getting a period summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Window WindowInput
}

// GetSummaryOutput represents the output of getting a period summary.
type GetSummaryOutput struct {
	Summary aggregation.PeriodSummary
}

// GetSummaryUseCase computes the period summary of a window.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	window, err := ParseWindow(input.Window)
	if err != nil {
		return nil, err
	}

	records, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, &window)
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		Summary: aggregation.Summarize(records, window),
	}, nil
}
