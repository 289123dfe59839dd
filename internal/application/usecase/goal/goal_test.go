package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter/adaptertest"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

type fixture struct {
	goals        *adaptertest.GoalRepository
	transactions *adaptertest.TransactionRepository
	apply        *replication.ApplyDeltaUseCase
}

func newFixture() *fixture {
	f := &fixture{
		goals:        adaptertest.NewGoalRepository(),
		transactions: adaptertest.NewTransactionRepository(),
	}
	f.apply = replication.NewApplyDeltaUseCase(
		f.transactions,
		adaptertest.NewHabitRepository(),
		adaptertest.NewHabitCompletionRepository(),
		f.goals,
	)
	return f
}

func goalCode(t *testing.T, err error) domainerror.GoalErrorCode {
	t.Helper()
	var goalErr *domainerror.GoalError
	if !errors.As(err, &goalErr) {
		t.Fatalf("expected GoalError, got %v", err)
	}
	return goalErr.Code
}

func TestSetGoalUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates then replaces", func(t *testing.T) {
		f := newFixture()
		uc := NewSetGoalUseCase(f.goals, f.apply)

		first, err := uc.Execute(ctx, SetGoalInput{UserID: userID, Category: "Food", LimitAmount: decimal.NewFromInt(200)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !first.Created || first.Goal.Period != entity.GoalPeriodMonthly {
			t.Errorf("expected new monthly goal, got %+v", first)
		}

		yearly := entity.GoalPeriodYearly
		second, err := uc.Execute(ctx, SetGoalInput{UserID: userID, Category: "food", LimitAmount: decimal.NewFromInt(2400), Period: &yearly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Created || second.Goal.ID != first.Goal.ID {
			t.Errorf("expected the existing goal to be replaced, got %+v", second)
		}

		goals, _ := f.goals.FindByUser(ctx, userID)
		if len(goals) != 1 || goals[0].Period != entity.GoalPeriodYearly {
			t.Errorf("expected a single yearly goal, got %+v", goals)
		}
	})

	tests := []struct {
		name  string
		input SetGoalInput
		code  domainerror.GoalErrorCode
	}{
		{"missing category", SetGoalInput{LimitAmount: decimal.NewFromInt(1)}, domainerror.ErrCodeGoalCategoryRequired},
		{"negative limit", SetGoalInput{Category: "Food", LimitAmount: decimal.NewFromInt(-1)}, domainerror.ErrCodeInvalidLimitAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.input.UserID = userID
			_, err := NewSetGoalUseCase(f.goals, f.apply).Execute(ctx, tt.input)
			if code := goalCode(t, err); code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, code)
			}
		})
	}

	t.Run("invalid period", func(t *testing.T) {
		f := newFixture()
		weekly := entity.GoalPeriod("weekly")
		_, err := NewSetGoalUseCase(f.goals, f.apply).Execute(ctx, SetGoalInput{
			UserID: userID, Category: "Food", LimitAmount: decimal.NewFromInt(1), Period: &weekly,
		})
		if code := goalCode(t, err); code != domainerror.ErrCodeInvalidGoalPeriod {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidGoalPeriod, code)
		}
	})
}

func TestListAndGetGoalUseCases(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	userID := uuid.New()
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	set, err := NewSetGoalUseCase(f.goals, f.apply).Execute(ctx, SetGoalInput{
		UserID: userID, Category: "Food", LimitAmount: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("failed to set goal: %v", err)
	}

	for _, amount := range []int64{30, 20} {
		txn := entity.NewTransaction(userID, today, "Groceries", decimal.NewFromInt(amount), entity.TransactionKindExpense, "Food")
		if err := f.transactions.Upsert(ctx, txn); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}
	other := entity.NewTransaction(userID, today, "Cinema", decimal.NewFromInt(99), entity.TransactionKindExpense, "Entertainment")
	if err := f.transactions.Upsert(ctx, other); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}

	listed, err := NewListGoalsUseCase(f.goals, f.transactions).Execute(ctx, ListGoalsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed.Goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(listed.Goals))
	}
	g := listed.Goals[0]
	if !g.CurrentAmount.Equal(decimal.NewFromInt(50)) || g.Percentage != 25 {
		t.Errorf("expected 50 spent at 25%%, got %s at %d%%", g.CurrentAmount, g.Percentage)
	}
	if g.Window != aggregation.MonthWindow(now.Year(), now.Month()) {
		t.Errorf("expected current month window, got %+v", g.Window)
	}

	got, err := NewGetGoalUseCase(f.goals, f.transactions).Execute(ctx, GetGoalInput{GoalID: set.Goal.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Goal.CurrentAmount.Equal(g.CurrentAmount) {
		t.Errorf("expected get and list to agree, got %s and %s", got.Goal.CurrentAmount, g.CurrentAmount)
	}

	t.Run("other user", func(t *testing.T) {
		_, err := NewGetGoalUseCase(f.goals, f.transactions).Execute(ctx, GetGoalInput{GoalID: set.Goal.ID, UserID: uuid.New()})
		if code := goalCode(t, err); code != domainerror.ErrCodeUnauthorizedGoalAccess {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnauthorizedGoalAccess, code)
		}
	})
}

func TestDeleteGoalUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	userID := uuid.New()

	set, err := NewSetGoalUseCase(f.goals, f.apply).Execute(ctx, SetGoalInput{
		UserID: userID, Category: "Food", LimitAmount: decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("failed to set goal: %v", err)
	}

	uc := NewDeleteGoalUseCase(f.goals, f.apply)
	if _, err := uc.Execute(ctx, DeleteGoalInput{GoalID: set.Goal.ID, UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.Execute(ctx, DeleteGoalInput{GoalID: set.Goal.ID, UserID: userID})
	if code := goalCode(t, err); code != domainerror.ErrCodeGoalNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeGoalNotFound, code)
	}
}
