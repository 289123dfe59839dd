package habit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
)

// ListHabitsInput represents the input for listing habits.
type ListHabitsInput struct {
	UserID uuid.UUID
	Window *aggregation.Window // Scopes the history, all dates when nil
}

// ListHabitsOutput represents the habits of a user with their history.
type ListHabitsOutput struct {
	Habits      []*entity.Habit
	Completions []*entity.HabitCompletion
}

// ListHabitsUseCase handles listing habits and their history.
type ListHabitsUseCase struct {
	habitRepo      adapter.HabitRepository
	completionRepo adapter.HabitCompletionRepository
}

// NewListHabitsUseCase creates a new ListHabitsUseCase instance.
func NewListHabitsUseCase(habitRepo adapter.HabitRepository, completionRepo adapter.HabitCompletionRepository) *ListHabitsUseCase {
	return &ListHabitsUseCase{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

// Execute lists the habits and their history.
func (uc *ListHabitsUseCase) Execute(ctx context.Context, input ListHabitsInput) (*ListHabitsOutput, error) {
	habits, err := uc.habitRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	filter := adapter.CompletionFilter{UserID: input.UserID}
	if input.Window != nil {
		start, end := input.Window.Bounds()
		filter.StartDate = &start
		filter.EndDate = &end
	}

	completions, err := uc.completionRepo.FindByUser(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit history: %w", err)
	}

	return &ListHabitsOutput{
		Habits:      habits,
		Completions: completions,
	}, nil
}
