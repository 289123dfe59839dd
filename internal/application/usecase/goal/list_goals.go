package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*GoalOutput
}

// GoalOutput is a goal with its spending in the current period.
type GoalOutput struct {
	Goal          *entity.Goal
	Window        aggregation.Window
	CurrentAmount decimal.Decimal
	Percentage    int
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, transactionRepo adapter.TransactionRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	output := &ListGoalsOutput{
		Goals: make([]*GoalOutput, 0, len(goals)),
	}
	if len(goals) == 0 {
		return output, nil
	}

	// One query covers every period: yearly windows contain the current month.
	now := time.Now().UTC()
	yearStart, yearEnd := aggregation.YearWindow(now.Year()).Bounds()
	transactions, err := uc.transactionRepo.FindByUser(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &yearStart,
		EndDate:   &yearEnd,
		Kinds:     []entity.TransactionKind{entity.TransactionKindExpense},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spending: %w", err)
	}
	records := derefTransactions(transactions)

	for _, g := range goals {
		window := currentWindow(g.Period, now)
		spent := aggregation.SumByKind(
			aggregation.FilterByWindow(records, window),
			aggregation.And(
				aggregation.OfKind[entity.Transaction](string(entity.TransactionKindExpense)),
				aggregation.InCategory[entity.Transaction](g.Category),
			),
		)
		output.Goals = append(output.Goals, &GoalOutput{
			Goal:          g,
			Window:        window,
			CurrentAmount: spent,
			Percentage:    aggregation.Percentage(spent, g.LimitAmount),
		})
	}

	return output, nil
}

// currentWindow returns the window of the period containing now.
func currentWindow(period entity.GoalPeriod, now time.Time) aggregation.Window {
	if period == entity.GoalPeriodYearly {
		return aggregation.YearWindow(now.Year())
	}
	return aggregation.MonthWindow(now.Year(), now.Month())
}

func derefTransactions(in []*entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(in))
	for _, t := range in {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out
}
