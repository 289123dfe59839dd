package replication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/state"
)

// GetSnapshotInput represents the input for loading a user's stored state.
type GetSnapshotInput struct {
	UserID uuid.UUID
}

// GetSnapshotOutput represents the output of loading a user's stored state.
type GetSnapshotOutput struct {
	State *state.State
}

// GetSnapshotUseCase loads every stored record and tombstone of a user so a
// client can reconcile its replica.
type GetSnapshotUseCase struct {
	transactionRepo adapter.TransactionRepository
	habitRepo       adapter.HabitRepository
	completionRepo  adapter.HabitCompletionRepository
	goalRepo        adapter.GoalRepository
}

// NewGetSnapshotUseCase creates a new GetSnapshotUseCase instance.
func NewGetSnapshotUseCase(
	transactionRepo adapter.TransactionRepository,
	habitRepo adapter.HabitRepository,
	completionRepo adapter.HabitCompletionRepository,
	goalRepo adapter.GoalRepository,
) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{
		transactionRepo: transactionRepo,
		habitRepo:       habitRepo,
		completionRepo:  completionRepo,
		goalRepo:        goalRepo,
	}
}

// Execute builds the user's state from the store.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	s, err := uc.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetSnapshotOutput{State: s}, nil
}

func (uc *GetSnapshotUseCase) load(ctx context.Context, userID uuid.UUID) (*state.State, error) {
	s := state.New(userID)

	transactions, err := uc.transactionRepo.FindByUser(ctx, adapter.TransactionFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, t := range transactions {
		_ = s.Put(state.FromTransaction(*t))
	}

	habits, err := uc.habitRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	for _, h := range habits {
		_ = s.Put(state.FromHabit(*h))
	}

	completions, err := uc.completionRepo.FindByUser(ctx, adapter.CompletionFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load habit completions: %w", err)
	}
	for _, c := range completions {
		_ = s.Put(state.FromCompletion(*c))
	}

	goals, err := uc.goalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	for _, g := range goals {
		_ = s.Put(state.FromGoal(*g))
	}

	tombstones := []struct {
		kind state.Kind
		find func(context.Context, uuid.UUID) ([]adapter.DeletedRecord, error)
	}{
		{state.KindTransaction, uc.transactionRepo.FindDeleted},
		{state.KindHabit, uc.habitRepo.FindDeleted},
		{state.KindHabitCompletion, uc.completionRepo.FindDeleted},
		{state.KindGoal, uc.goalRepo.FindDeleted},
	}
	for _, ts := range tombstones {
		deleted, err := ts.find(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load deleted %s records: %w", ts.kind, err)
		}
		for _, d := range deleted {
			_ = s.Put(state.Tombstone(ts.kind, d.ID, d.DeletedAt))
		}
	}

	return s, nil
}
