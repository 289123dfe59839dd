package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		num      decimal.Decimal
		den      decimal.Decimal
		expected int
	}{
		{"zero denominator", dec(5), dec(0), 0},
		{"zero over zero", dec(0), dec(0), 0},
		{"half", dec(1), dec(2), 50},
		{"rounds half up", dec(1), dec(8), 13},
		{"rounds down", dec(1), dec(3), 33},
		{"two thirds", dec(2), dec(3), 67},
		{"over limit", dec(150), dec(100), 150},
		{"negative", dec(-1), dec(4), -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.num, tt.den); got != tt.expected {
				t.Errorf("Percentage(%s, %s) = %d, want %d", tt.num, tt.den, got, tt.expected)
			}
		})
	}
}

func TestHabitBreakdown(t *testing.T) {
	completions := []entity.HabitCompletion{
		completion(day(2025, time.May, 1), "Health", true),
		completion(day(2025, time.May, 2), "health", true),
		completion(day(2025, time.May, 3), "Health", false),
		completion(day(2025, time.May, 1), "Learning", false),
		completion(day(2025, time.May, 1), "Gardening", true),
	}

	rows := HabitBreakdown(completions, DefaultHabitCategories)
	if len(rows) != len(DefaultHabitCategories) {
		t.Fatalf("expected %d rows, got %d", len(DefaultHabitCategories), len(rows))
	}

	byCategory := make(map[string]CategoryPercentage)
	for i, r := range rows {
		if r.Category != DefaultHabitCategories[i] {
			t.Errorf("row %d: expected %s, got %s", i, DefaultHabitCategories[i], r.Category)
		}
		byCategory[r.Category] = r
	}

	if got := byCategory["Health"]; got.Percentage != 67 || !got.Denominator.Equal(dec(3)) {
		t.Errorf("unexpected Health row %+v", got)
	}
	if got := byCategory["Learning"]; got.Percentage != 0 || !got.Denominator.Equal(dec(1)) {
		t.Errorf("unexpected Learning row %+v", got)
	}
	if got := byCategory["Fitness"]; got.Percentage != 0 || !got.Denominator.IsZero() {
		t.Errorf("expected empty category to report 0 without dividing, got %+v", got)
	}
}

func TestBudgetBreakdown(t *testing.T) {
	records := []entity.Transaction{
		txn(day(2025, time.March, 2), entity.TransactionKindExpense, 150, "Food"),
		txn(day(2025, time.March, 3), entity.TransactionKindExpense, 50, "FOOD"),
		txn(day(2025, time.March, 4), entity.TransactionKindIncome, 5000, "Food"),
		txn(day(2025, time.March, 5), entity.TransactionKindExpense, 300, "Transport"),
		txn(day(2025, time.March, 6), entity.TransactionKindExpense, 40, "Shopping"),
	}
	limits := map[string]decimal.Decimal{
		"food":      dec(400),
		"Transport": dec(200),
		"Shopping":  dec(0),
	}

	rows := BudgetBreakdown(records, limits, DefaultExpenseCategories)
	byCategory := make(map[string]CategoryPercentage)
	for _, r := range rows {
		byCategory[r.Category] = r
	}

	tests := []struct {
		category string
		spent    int64
		expected int
	}{
		{"Food", 200, 50},
		{"Transport", 300, 150},
		{"Shopping", 40, 0},
		{"Housing", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			row := byCategory[tt.category]
			if !row.Numerator.Equal(dec(tt.spent)) {
				t.Errorf("expected spent %d, got %s", tt.spent, row.Numerator)
			}
			if row.Percentage != tt.expected {
				t.Errorf("expected %d%%, got %d%%", tt.expected, row.Percentage)
			}
		})
	}
}
