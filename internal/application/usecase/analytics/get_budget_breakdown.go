package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
)

// GetBudgetBreakdownInput represents the input for getting the budget breakdown.
type GetBudgetBreakdownInput struct {
	UserID uuid.UUID
	Window WindowInput
}

// GetBudgetBreakdownOutput represents spending against the limit per expense category.
type GetBudgetBreakdownOutput struct {
	Window     aggregation.Window
	Categories []aggregation.CategoryPercentage
}

// GetBudgetBreakdownUseCase compares expenses with the category goals.
type GetBudgetBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
}

// NewGetBudgetBreakdownUseCase creates a new GetBudgetBreakdownUseCase instance.
func NewGetBudgetBreakdownUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
) *GetBudgetBreakdownUseCase {
	return &GetBudgetBreakdownUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
	}
}

// Execute computes the breakdown. Every goal limit is scaled to the window
// length. Goal categories outside the default expense set are reported after
// it, in name order.
func (uc *GetBudgetBreakdownUseCase) Execute(ctx context.Context, input GetBudgetBreakdownInput) (*GetBudgetBreakdownOutput, error) {
	window, err := ParseWindow(input.Window)
	if err != nil {
		return nil, err
	}

	records, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, &window, entity.TransactionKindExpense)
	if err != nil {
		return nil, err
	}

	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	return &GetBudgetBreakdownOutput{
		Window: window,
		Categories: aggregation.BudgetBreakdown(
			aggregation.FilterByWindow(records, window),
			goalLimits(goals, window.Months()),
			budgetCategories(goals),
		),
	}, nil
}

// goalLimits keys the scaled limits by normalized category. Replicas can
// hold goals whose categories differ only in case; the most recently updated
// one counts.
func goalLimits(goals []*entity.Goal, months int) map[string]decimal.Decimal {
	latest := make(map[string]*entity.Goal, len(goals))
	for _, g := range goals {
		key := strings.ToLower(strings.TrimSpace(g.Category))
		current, ok := latest[key]
		if !ok || g.UpdatedAt.After(current.UpdatedAt) ||
			(g.UpdatedAt.Equal(current.UpdatedAt) && g.ID.String() > current.ID.String()) {
			latest[key] = g
		}
	}

	limits := make(map[string]decimal.Decimal, len(latest))
	for key, g := range latest {
		limits[key] = g.LimitFor(months)
	}
	return limits
}

func budgetCategories(goals []*entity.Goal) []string {
	known := make(map[string]bool, len(aggregation.DefaultExpenseCategories))
	for _, c := range aggregation.DefaultExpenseCategories {
		known[strings.ToLower(c)] = true
	}

	var extra []string
	for _, g := range goals {
		key := strings.ToLower(strings.TrimSpace(g.Category))
		if key == "" || known[key] {
			continue
		}
		known[key] = true
		extra = append(extra, strings.TrimSpace(g.Category))
	}
	sort.Strings(extra)

	categories := make([]string, 0, len(aggregation.DefaultExpenseCategories)+len(extra))
	categories = append(categories, aggregation.DefaultExpenseCategories...)
	return append(categories, extra...)
}
