package habit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// RecordCompletionInput represents the input for logging a habit day.
type RecordCompletionInput struct {
	UserID    uuid.UUID
	HabitID   uuid.UUID
	Date      time.Time
	Completed bool
}

// RecordCompletionOutput represents the output of logging a habit day.
type RecordCompletionOutput struct {
	Completion *entity.HabitCompletion
}

// RecordCompletionUseCase logs whether a habit was completed on a day. A habit
// has at most one entry per day; logging the same day again replaces it.
type RecordCompletionUseCase struct {
	habitRepo      adapter.HabitRepository
	completionRepo adapter.HabitCompletionRepository
	apply          *replication.ApplyDeltaUseCase
}

// NewRecordCompletionUseCase creates a new RecordCompletionUseCase instance.
func NewRecordCompletionUseCase(
	habitRepo adapter.HabitRepository,
	completionRepo adapter.HabitCompletionRepository,
	apply *replication.ApplyDeltaUseCase,
) *RecordCompletionUseCase {
	return &RecordCompletionUseCase{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		apply:          apply,
	}
}

// Execute performs the logging.
func (uc *RecordCompletionUseCase) Execute(ctx context.Context, input RecordCompletionInput) (*RecordCompletionOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewHabitError(
			domainerror.ErrCodeInvalidCompletionDate,
			"date is required",
			domainerror.ErrInvalidCompletionDate,
		)
	}

	habit, err := findOwned(ctx, uc.habitRepo, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	completion := entity.NewHabitCompletion(habit, input.Date, input.Completed)

	existing, err := uc.completionRepo.FindByHabitAndDate(ctx, habit.ID, completion.Date)
	switch {
	case err == nil:
		completion.ID = existing.ID
		completion.CreatedAt = existing.CreatedAt
	case errors.Is(err, domainerror.ErrHabitCompletionNotFound):
	default:
		return nil, fmt.Errorf("failed to find habit entry: %w", err)
	}

	delta, err := state.UpsertCompletion(*completion)
	if err != nil {
		return nil, err
	}
	if _, err := uc.apply.Execute(ctx, replication.ApplyDeltaInput{Delta: delta}); err != nil {
		return nil, err
	}

	return &RecordCompletionOutput{
		Completion: completion,
	}, nil
}
