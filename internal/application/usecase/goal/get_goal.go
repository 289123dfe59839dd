package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
)

// GetGoalInput represents the input for getting a goal.
type GetGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetGoalOutput represents the output of getting a goal.
type GetGoalOutput struct {
	Goal *GoalOutput
}

// GetGoalUseCase handles getting a goal by ID.
type GetGoalUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, transactionRepo adapter.TransactionRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the goal retrieval.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := findOwned(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	window := currentWindow(goal.Period, time.Now().UTC())
	start, end := window.Bounds()
	transactions, err := uc.transactionRepo.FindByUser(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
		Kinds:     []entity.TransactionKind{entity.TransactionKindExpense},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spending: %w", err)
	}

	spent := aggregation.SumByKind(
		derefTransactions(transactions),
		aggregation.InCategory[entity.Transaction](goal.Category),
	)

	return &GetGoalOutput{
		Goal: &GoalOutput{
			Goal:          goal,
			Window:        window,
			CurrentAmount: spent,
			Percentage:    aggregation.Percentage(spent, goal.LimitAmount),
		},
	}, nil
}
