package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/state"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteGoalOutput represents the output of goal deletion.
type DeleteGoalOutput struct {
	Success bool
}

// DeleteGoalUseCase handles goal deletion logic.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
	apply    *replication.ApplyDeltaUseCase
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, apply *replication.ApplyDeltaUseCase) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo: goalRepo,
		apply:    apply,
	}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) (*DeleteGoalOutput, error) {
	if _, err := findOwned(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return nil, err
	}

	delta := state.Delete(input.UserID, state.KindGoal, input.GoalID, time.Now().UTC())
	if _, err := uc.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: delta}); err != nil {
		return nil, err
	}

	return &DeleteGoalOutput{
		Success: true,
	}, nil
}
