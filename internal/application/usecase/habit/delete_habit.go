package habit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/state"
)

// DeleteHabitInput represents the input for habit deletion.
type DeleteHabitInput struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
}

// DeleteHabitOutput represents the output of habit deletion.
type DeleteHabitOutput struct {
	Success bool
}

// DeleteHabitUseCase handles habit deletion logic. The habit's history is
// kept and still counts toward breakdowns.
type DeleteHabitUseCase struct {
	habitRepo adapter.HabitRepository
	apply     *replication.ApplyDeltaUseCase
}

// NewDeleteHabitUseCase creates a new DeleteHabitUseCase instance.
func NewDeleteHabitUseCase(habitRepo adapter.HabitRepository, apply *replication.ApplyDeltaUseCase) *DeleteHabitUseCase {
	return &DeleteHabitUseCase{
		habitRepo: habitRepo,
		apply:     apply,
	}
}

// Execute performs the habit deletion.
func (uc *DeleteHabitUseCase) Execute(ctx context.Context, input DeleteHabitInput) (*DeleteHabitOutput, error) {
	if _, err := findOwned(ctx, uc.habitRepo, input.HabitID, input.UserID); err != nil {
		return nil, err
	}

	delta := state.Delete(input.UserID, state.KindHabit, input.HabitID, time.Now().UTC())
	if _, err := uc.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: delta}); err != nil {
		return nil, err
	}

	return &DeleteHabitOutput{
		Success: true,
	}, nil
}
