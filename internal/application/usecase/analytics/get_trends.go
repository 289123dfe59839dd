package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
)

// GetTrendsInput represents the input for getting a cash-flow trend.
type GetTrendsInput struct {
	UserID uuid.UUID
	Window WindowInput
}

// GetTrendsOutput represents the output of getting a cash-flow trend.
type GetTrendsOutput struct {
	Window aggregation.Window
	Points []aggregation.TrendPoint
}

// GetTrendsUseCase builds the daily or monthly cash-flow series of a window.
type GetTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(transactionRepo adapter.TransactionRepository) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute builds the series.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	window, err := ParseWindow(input.Window)
	if err != nil {
		return nil, err
	}

	records, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, &window)
	if err != nil {
		return nil, err
	}

	return &GetTrendsOutput{
		Window: window,
		Points: aggregation.BuildTrendSeries(records, window),
	}, nil
}
