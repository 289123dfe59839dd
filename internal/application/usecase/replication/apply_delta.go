// Package replication contains the use cases that move deltas between the
// client replicas, the delta queue and the store.
package replication

import (
	"context"
	"errors"
	"fmt"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
)

// ApplyDeltaInput represents the input for applying one delta.
type ApplyDeltaInput struct {
	Delta state.Delta
}

// ApplyDeltaOutput represents the output of applying one delta.
type ApplyDeltaOutput struct {
	Variant state.Variant
}

// ApplyDeltaUseCase writes a single delta to the store with last-writer-wins semantics.
type ApplyDeltaUseCase struct {
	transactionRepo adapter.TransactionRepository
	habitRepo       adapter.HabitRepository
	completionRepo  adapter.HabitCompletionRepository
	goalRepo        adapter.GoalRepository
}

// NewApplyDeltaUseCase creates a new ApplyDeltaUseCase instance.
func NewApplyDeltaUseCase(
	transactionRepo adapter.TransactionRepository,
	habitRepo adapter.HabitRepository,
	completionRepo adapter.HabitCompletionRepository,
	goalRepo adapter.GoalRepository,
) *ApplyDeltaUseCase {
	return &ApplyDeltaUseCase{
		transactionRepo: transactionRepo,
		habitRepo:       habitRepo,
		completionRepo:  completionRepo,
		goalRepo:        goalRepo,
	}
}

// Execute decodes and stores the delta. A delta older than the stored record
// fails with a SyncError carrying ErrStaleDelta.
func (uc *ApplyDeltaUseCase) Execute(ctx context.Context, input ApplyDeltaInput) (*ApplyDeltaOutput, error) {
	d := input.Delta

	v, err := d.Decode()
	if err != nil {
		return nil, domainerror.SyncErrorFromValidation(err)
	}

	if d.Kind == state.KindHabitCompletion && d.Op == state.OpUpsert {
		if err := uc.attachHabit(ctx, v); err != nil {
			return nil, err
		}
	}

	if err := uc.write(ctx, d, v); err != nil {
		return nil, writeError(d, err)
	}

	return &ApplyDeltaOutput{Variant: v}, nil
}

// attachHabit checks that the completion belongs to a habit of the same user
// and inherits the habit category when the entry carries none.
func (uc *ApplyDeltaUseCase) attachHabit(ctx context.Context, v state.Variant) error {
	habit, err := uc.habitRepo.FindByID(ctx, v.Completion.HabitID)
	if err != nil {
		if errors.Is(err, domainerror.ErrHabitNotFound) {
			return domainerror.NewHabitError(domainerror.ErrCodeHabitNotFound, "habit not found", err)
		}
		return fmt.Errorf("failed to find habit: %w", err)
	}
	if habit.UserID != v.Completion.UserID {
		return domainerror.NewHabitError(
			domainerror.ErrCodeNotAuthorizedHabit,
			"not authorized to modify habit",
			domainerror.ErrNotAuthorizedToModifyHabit,
		)
	}
	if v.Completion.Category == "" {
		v.Completion.Category = habit.Category
	}
	return nil
}

func (uc *ApplyDeltaUseCase) write(ctx context.Context, d state.Delta, v state.Variant) error {
	if d.Op == state.OpDelete {
		switch d.Kind {
		case state.KindTransaction:
			return uc.transactionRepo.Delete(ctx, d.UserID, d.RecordID, d.UpdatedAt)
		case state.KindHabit:
			return uc.habitRepo.Delete(ctx, d.UserID, d.RecordID, d.UpdatedAt)
		case state.KindHabitCompletion:
			return uc.completionRepo.Delete(ctx, d.UserID, d.RecordID, d.UpdatedAt)
		case state.KindGoal:
			return uc.goalRepo.Delete(ctx, d.UserID, d.RecordID, d.UpdatedAt)
		}
		return domainerror.ErrInvalidDeltaKind
	}

	switch d.Kind {
	case state.KindTransaction:
		return uc.transactionRepo.Upsert(ctx, v.Transaction)
	case state.KindHabit:
		return uc.habitRepo.Upsert(ctx, v.Habit)
	case state.KindHabitCompletion:
		return uc.completionRepo.Upsert(ctx, v.Completion)
	case state.KindGoal:
		return uc.goalRepo.Upsert(ctx, v.Goal)
	}
	return domainerror.ErrInvalidDeltaKind
}

// writeError maps repository sentinels to the coded error of their area.
func writeError(d state.Delta, err error) error {
	switch {
	case errors.Is(err, domainerror.ErrStaleDelta):
		return domainerror.NewSyncError(
			domainerror.ErrCodeStaleDelta,
			"a newer version of this record is already stored",
			err,
		)
	case errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			err,
		)
	case errors.Is(err, domainerror.ErrNotAuthorizedToModifyHabit):
		return domainerror.NewHabitError(
			domainerror.ErrCodeNotAuthorizedHabit,
			"not authorized to modify this habit",
			err,
		)
	case errors.Is(err, domainerror.ErrUnauthorizedGoalAccess):
		return domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to modify this goal",
			err,
		)
	}
	return fmt.Errorf("failed to apply %s %s delta: %w", d.Op, d.Kind, err)
}
