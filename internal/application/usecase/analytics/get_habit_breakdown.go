package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
)

// GetHabitBreakdownInput represents the input for getting the habit breakdown.
type GetHabitBreakdownInput struct {
	UserID uuid.UUID
	Window WindowInput
}

// GetHabitBreakdownOutput represents the completion rate per habit category.
type GetHabitBreakdownOutput struct {
	Window     aggregation.Window
	Categories []aggregation.CategoryPercentage
}

// GetHabitBreakdownUseCase computes completion rates per habit category.
type GetHabitBreakdownUseCase struct {
	completionRepo adapter.HabitCompletionRepository
}

// NewGetHabitBreakdownUseCase creates a new GetHabitBreakdownUseCase instance.
func NewGetHabitBreakdownUseCase(completionRepo adapter.HabitCompletionRepository) *GetHabitBreakdownUseCase {
	return &GetHabitBreakdownUseCase{
		completionRepo: completionRepo,
	}
}

// Execute computes the breakdown over the fixed habit categories.
func (uc *GetHabitBreakdownUseCase) Execute(ctx context.Context, input GetHabitBreakdownInput) (*GetHabitBreakdownOutput, error) {
	window, err := ParseWindow(input.Window)
	if err != nil {
		return nil, err
	}

	start, end := window.Bounds()
	found, err := uc.completionRepo.FindByUser(ctx, adapter.CompletionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load habit history: %w", err)
	}

	completions := make([]entity.HabitCompletion, 0, len(found))
	for _, c := range found {
		if c != nil {
			completions = append(completions, *c)
		}
	}

	return &GetHabitBreakdownOutput{
		Window: window,
		Categories: aggregation.HabitBreakdown(
			aggregation.FilterByWindow(completions, window),
			aggregation.DefaultHabitCategories,
		),
	}, nil
}
