package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter/adaptertest"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedTransaction(t *testing.T, repo *adaptertest.TransactionRepository, userID uuid.UUID, on time.Time, desc, amount string, kind entity.TransactionKind, category string) {
	t.Helper()
	txn := entity.NewTransaction(userID, on, desc, decimal.RequireFromString(amount), kind, category)
	if err := repo.Upsert(context.Background(), txn); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name     string
		input    WindowInput
		expected aggregation.Window
		code     domainerror.AnalyticsErrorCode
	}{
		{"month mode by default", WindowInput{Month: "March", Year: "2025"}, aggregation.MonthWindow(2025, time.March), ""},
		{"month name is case-insensitive", WindowInput{Mode: "month", Month: "march", Year: "2025"}, aggregation.MonthWindow(2025, time.March), ""},
		{"year mode ignores month", WindowInput{Mode: "year", Month: "Nope", Year: "2024"}, aggregation.YearWindow(2024), ""},
		{"unknown mode", WindowInput{Mode: "week", Year: "2025"}, aggregation.Window{}, domainerror.ErrCodeInvalidWindowMode},
		{"missing year", WindowInput{Mode: "year"}, aggregation.Window{}, domainerror.ErrCodeInvalidYear},
		{"short year", WindowInput{Mode: "year", Year: "25"}, aggregation.Window{}, domainerror.ErrCodeInvalidYear},
		{"non-numeric year", WindowInput{Mode: "year", Year: "20x5"}, aggregation.Window{}, domainerror.ErrCodeInvalidYear},
		{"missing month", WindowInput{Mode: "month", Year: "2025"}, aggregation.Window{}, domainerror.ErrCodeMissingMonth},
		{"abbreviated month", WindowInput{Month: "Mar", Year: "2025"}, aggregation.Window{}, domainerror.ErrCodeInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWindow(tt.input)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if w != tt.expected {
					t.Errorf("expected %+v, got %+v", tt.expected, w)
				}
				return
			}

			var analyticsErr *domainerror.AnalyticsError
			if !errors.As(err, &analyticsErr) {
				t.Fatalf("expected AnalyticsError, got %v", err)
			}
			if analyticsErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, analyticsErr.Code)
			}
		})
	}
}

func TestGetSummaryUseCase(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewTransactionRepository()
	userID := uuid.New()

	seedTransaction(t, repo, userID, date(2025, time.March, 1), "Salary", "1000", entity.TransactionKindIncome, "Salary")
	seedTransaction(t, repo, userID, date(2025, time.March, 2), "Groceries", "300", entity.TransactionKindExpense, "Food")
	seedTransaction(t, repo, userID, date(2025, time.April, 2), "Rent", "500", entity.TransactionKindExpense, "Housing")
	seedTransaction(t, repo, uuid.New(), date(2025, time.March, 3), "Other user", "999", entity.TransactionKindIncome, "Salary")

	uc := NewGetSummaryUseCase(repo)

	out, err := uc.Execute(ctx, GetSummaryInput{
		UserID: userID,
		Window: WindowInput{Month: "March", Year: "2025"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Summary.Count != 2 {
		t.Errorf("expected 2 records, got %d", out.Summary.Count)
	}
	if !out.Summary.TotalInflow.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected inflow 1000, got %s", out.Summary.TotalInflow)
	}
	if !out.Summary.Net.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected net 700, got %s", out.Summary.Net)
	}
	if out.Summary.SavingsRate != 70 {
		t.Errorf("expected savings rate 70, got %d", out.Summary.SavingsRate)
	}

	t.Run("invalid window", func(t *testing.T) {
		if _, err := uc.Execute(ctx, GetSummaryInput{UserID: userID, Window: WindowInput{Year: "2025"}}); !errors.Is(err, domainerror.ErrMissingMonth) {
			t.Errorf("expected ErrMissingMonth, got %v", err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		failing := adaptertest.NewTransactionRepository()
		failing.Err = errors.New("connection refused")
		if _, err := NewGetSummaryUseCase(failing).Execute(ctx, GetSummaryInput{
			UserID: userID,
			Window: WindowInput{Mode: "year", Year: "2025"},
		}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestGetTrendsUseCase(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewTransactionRepository()
	userID := uuid.New()

	seedTransaction(t, repo, userID, date(2024, time.January, 10), "Salary", "100", entity.TransactionKindIncome, "Salary")
	seedTransaction(t, repo, userID, date(2024, time.March, 5), "Dinner", "40", entity.TransactionKindExpense, "Food")

	out, err := NewGetTrendsUseCase(repo).Execute(ctx, GetTrendsInput{
		UserID: userID,
		Window: WindowInput{Mode: "year", Year: "2024"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(out.Points))
	}
	if !out.Points[11].Balance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected final balance 60, got %s", out.Points[11].Balance)
	}
}

func TestGetEntitiesUseCase(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewTransactionRepository()
	userID := uuid.New()

	seedTransaction(t, repo, userID, date(2024, time.May, 1), "Rahul: lunch", "200", entity.TransactionKindLend, "")
	seedTransaction(t, repo, userID, date(2025, time.May, 1), "rahul: cab", "50", entity.TransactionKindBorrow, "")
	seedTransaction(t, repo, userID, date(2025, time.May, 2), "Groceries", "80", entity.TransactionKindExpense, "Food")

	uc := NewGetEntitiesUseCase(repo)

	t.Run("all time", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetEntitiesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Window != nil {
			t.Errorf("expected no window, got %+v", out.Window)
		}
		if len(out.Entities) != 1 {
			t.Fatalf("expected 1 entity, got %d", len(out.Entities))
		}
		if !out.Entities[0].Net.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected net 150, got %s", out.Entities[0].Net)
		}
	})

	t.Run("windowed", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetEntitiesInput{UserID: userID, Window: WindowInput{Mode: "year", Year: "2025"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Entities) != 1 || !out.Entities[0].Net.Equal(decimal.NewFromInt(-50)) {
			t.Errorf("expected a single ledger with net -50, got %+v", out.Entities)
		}
	})
}

func TestGetHabitBreakdownUseCase(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewHabitCompletionRepository()
	userID := uuid.New()
	habit := entity.NewHabit(userID, "Run", "Health")

	for day, done := range map[int]bool{1: true, 2: false, 3: true, 4: true} {
		c := entity.NewHabitCompletion(habit, date(2025, time.June, day), done)
		if err := repo.Upsert(ctx, c); err != nil {
			t.Fatalf("failed to seed completion: %v", err)
		}
	}

	out, err := NewGetHabitBreakdownUseCase(repo).Execute(ctx, GetHabitBreakdownInput{
		UserID: userID,
		Window: WindowInput{Month: "June", Year: "2025"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Categories) != len(aggregation.DefaultHabitCategories) {
		t.Fatalf("expected %d categories, got %d", len(aggregation.DefaultHabitCategories), len(out.Categories))
	}
	for _, c := range out.Categories {
		if c.Category == "Health" && c.Percentage != 75 {
			t.Errorf("expected Health at 75%%, got %d", c.Percentage)
		}
	}
}

func TestGetBudgetBreakdownUseCase(t *testing.T) {
	ctx := context.Background()
	txRepo := adaptertest.NewTransactionRepository()
	goalRepo := adaptertest.NewGoalRepository()
	userID := uuid.New()

	seedTransaction(t, txRepo, userID, date(2025, time.July, 3), "Groceries", "50", entity.TransactionKindExpense, "Food")
	seedTransaction(t, txRepo, userID, date(2025, time.July, 4), "Flight", "300", entity.TransactionKindExpense, "Travel")

	for _, g := range []*entity.Goal{
		entity.NewGoal(userID, "Food", decimal.NewFromInt(200), entity.GoalPeriodMonthly),
		entity.NewGoal(userID, "Travel", decimal.NewFromInt(1200), entity.GoalPeriodYearly),
		entity.NewGoal(userID, "Pets", decimal.NewFromInt(10), entity.GoalPeriodMonthly),
	} {
		if err := goalRepo.Upsert(ctx, g); err != nil {
			t.Fatalf("failed to seed goal: %v", err)
		}
	}

	out, err := NewGetBudgetBreakdownUseCase(txRepo, goalRepo).Execute(ctx, GetBudgetBreakdownInput{
		UserID: userID,
		Window: WindowInput{Month: "July", Year: "2025"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byCategory := make(map[string]aggregation.CategoryPercentage)
	for _, c := range out.Categories {
		byCategory[c.Category] = c
	}

	if got := byCategory["Food"].Percentage; got != 25 {
		t.Errorf("expected Food at 25%%, got %d", got)
	}
	// 1200 a year is 100 for one month.
	if got := byCategory["Travel"].Percentage; got != 300 {
		t.Errorf("expected Travel at 300%%, got %d", got)
	}
	if _, ok := byCategory["Pets"]; !ok {
		t.Error("expected goal category outside the default set to be reported")
	}
	n := len(out.Categories)
	if out.Categories[n-2].Category != "Pets" || out.Categories[n-1].Category != "Travel" {
		t.Errorf("expected extra categories after the default set in name order, got %s, %s",
			out.Categories[n-2].Category, out.Categories[n-1].Category)
	}
}

func TestGetBudgetBreakdownUseCase_CaseVariantGoals(t *testing.T) {
	ctx := context.Background()
	txRepo := adaptertest.NewTransactionRepository()
	goalRepo := adaptertest.NewGoalRepository()
	userID := uuid.New()

	seedTransaction(t, txRepo, userID, date(2025, time.July, 3), "Groceries", "50", entity.TransactionKindExpense, "Food")

	older := entity.NewGoal(userID, "food", decimal.NewFromInt(400), entity.GoalPeriodMonthly)
	older.UpdatedAt = time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC)
	newer := entity.NewGoal(userID, "Food", decimal.NewFromInt(100), entity.GoalPeriodMonthly)
	newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)

	for _, g := range []*entity.Goal{older, newer} {
		if err := goalRepo.Upsert(ctx, g); err != nil {
			t.Fatalf("failed to seed goal: %v", err)
		}
	}

	uc := NewGetBudgetBreakdownUseCase(txRepo, goalRepo)
	for i := 0; i < 20; i++ {
		out, err := uc.Execute(ctx, GetBudgetBreakdownInput{
			UserID: userID,
			Window: WindowInput{Month: "July", Year: "2025"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var food []aggregation.CategoryPercentage
		for _, c := range out.Categories {
			if strings.EqualFold(c.Category, "food") {
				food = append(food, c)
			}
		}
		if len(food) != 1 {
			t.Fatalf("expected food to be reported once, got %+v", food)
		}
		if food[0].Percentage != 50 || !food[0].Denominator.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected the newest limit of 100 to count, got %+v", food[0])
		}
	}
}

func TestGetDataRangeUseCase(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewTransactionRepository()
	userID := uuid.New()
	uc := NewGetDataRangeUseCase(repo)

	t.Run("no data", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetDataRangeInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.HasData || out.OldestDate != nil || len(out.Years) != 0 {
			t.Errorf("expected empty range, got %+v", out)
		}
	})

	seedTransaction(t, repo, userID, date(2025, time.February, 1), "b", "1", entity.TransactionKindIncome, "")
	seedTransaction(t, repo, userID, date(2022, time.December, 31), "a", "1", entity.TransactionKindIncome, "")
	seedTransaction(t, repo, userID, date(2024, time.January, 1), "c", "1", entity.TransactionKindExpense, "")

	t.Run("with data", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetDataRangeInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.HasData || out.TotalTransactions != 3 {
			t.Fatalf("expected 3 transactions, got %+v", out)
		}
		if !out.OldestDate.Equal(date(2022, time.December, 31)) || !out.NewestDate.Equal(date(2025, time.February, 1)) {
			t.Errorf("unexpected range %s - %s", out.OldestDate, out.NewestDate)
		}
		want := []int{2022, 2024, 2025}
		if len(out.Years) != len(want) {
			t.Fatalf("expected years %v, got %v", want, out.Years)
		}
		for i := range want {
			if out.Years[i] != want[i] {
				t.Errorf("expected years %v, got %v", want, out.Years)
			}
		}
	})
}
