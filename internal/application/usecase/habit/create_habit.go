// Package habit contains habit-related use cases.
package habit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// DefaultCategory is assigned to habits created without a category.
const DefaultCategory = "Other"

// CreateHabitInput represents the input for habit creation.
type CreateHabitInput struct {
	UserID   uuid.UUID
	Name     string
	Category string
}

// CreateHabitOutput represents the output of habit creation.
type CreateHabitOutput struct {
	Habit *entity.Habit
}

// CreateHabitUseCase handles habit creation logic.
type CreateHabitUseCase struct {
	apply *replication.ApplyDeltaUseCase
}

// NewCreateHabitUseCase creates a new CreateHabitUseCase instance.
func NewCreateHabitUseCase(apply *replication.ApplyDeltaUseCase) *CreateHabitUseCase {
	return &CreateHabitUseCase{
		apply: apply,
	}
}

// Execute performs the habit creation.
func (uc *CreateHabitUseCase) Execute(ctx context.Context, input CreateHabitInput) (*CreateHabitOutput, error) {
	habit := entity.NewHabit(input.UserID, input.Name, input.Category)
	if habit.Category == "" {
		habit.Category = DefaultCategory
	}

	if err := habit.Validate(); err != nil {
		return nil, domainerror.NewHabitError(
			domainerror.ErrCodeHabitNameRequired,
			"habit name is required",
			err,
		)
	}

	delta, err := state.UpsertHabit(*habit)
	if err != nil {
		return nil, err
	}
	if _, err := uc.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: delta}); err != nil {
		return nil, err
	}

	return &CreateHabitOutput{
		Habit: habit,
	}, nil
}

// findOwned loads a habit and checks that it belongs to userID.
func findOwned(ctx context.Context, repo adapter.HabitRepository, id, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrHabitNotFound) {
			return nil, domainerror.NewHabitError(
				domainerror.ErrCodeHabitNotFound,
				"habit not found",
				domainerror.ErrHabitNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	if habit.UserID != userID {
		return nil, domainerror.NewHabitError(
			domainerror.ErrCodeNotAuthorizedHabit,
			"not authorized to modify this habit",
			domainerror.ErrNotAuthorizedToModifyHabit,
		)
	}

	return habit, nil
}
