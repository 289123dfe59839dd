// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// SetGoalInput represents the input for setting a category spending limit.
type SetGoalInput struct {
	UserID      uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Period      *entity.GoalPeriod // Optional, defaults to monthly
}

// SetGoalOutput represents the output of setting a category spending limit.
type SetGoalOutput struct {
	Goal    *entity.Goal
	Created bool
}

// SetGoalUseCase creates the goal of a category or replaces its limit.
type SetGoalUseCase struct {
	goalRepo adapter.GoalRepository
	apply    *replication.ApplyDeltaUseCase
}

// NewSetGoalUseCase creates a new SetGoalUseCase instance.
func NewSetGoalUseCase(goalRepo adapter.GoalRepository, apply *replication.ApplyDeltaUseCase) *SetGoalUseCase {
	return &SetGoalUseCase{
		goalRepo: goalRepo,
		apply:    apply,
	}
}

// Execute performs the upsert. A category has at most one goal.
func (uc *SetGoalUseCase) Execute(ctx context.Context, input SetGoalInput) (*SetGoalOutput, error) {
	period := entity.GoalPeriodMonthly
	if input.Period != nil {
		period = *input.Period
	}

	goal, err := uc.goalRepo.FindByUserAndCategory(ctx, input.UserID, input.Category)
	created := false
	switch {
	case err == nil:
		goal.LimitAmount = input.LimitAmount
		goal.Period = period
		goal.UpdatedAt = time.Now().UTC()
	case errors.Is(err, domainerror.ErrGoalNotFound):
		goal = entity.NewGoal(input.UserID, input.Category, input.LimitAmount, period)
		created = true
	default:
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if err := goal.Validate(); err != nil {
		return nil, goalValidationError(err)
	}

	delta, err := state.UpsertGoal(*goal)
	if err != nil {
		return nil, err
	}
	if _, err := uc.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: delta}); err != nil {
		return nil, err
	}

	return &SetGoalOutput{
		Goal:    goal,
		Created: created,
	}, nil
}

func goalValidationError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrGoalCategoryRequired):
		return domainerror.NewGoalError(domainerror.ErrCodeGoalCategoryRequired, "category is required", err)
	case errors.Is(err, domainerror.ErrInvalidLimitAmount):
		return domainerror.NewGoalError(domainerror.ErrCodeInvalidLimitAmount, "limit amount must not be negative", err)
	case errors.Is(err, domainerror.ErrInvalidGoalPeriod):
		return domainerror.NewGoalError(domainerror.ErrCodeInvalidGoalPeriod, "period must be 'monthly' or 'yearly'", err)
	}
	return domainerror.NewGoalError(domainerror.ErrCodeMissingGoalFields, "invalid goal", err)
}

// findOwned loads a goal and checks that it belongs to userID.
func findOwned(ctx context.Context, repo adapter.GoalRepository, id, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}
