package aggregation

import (
	"testing"
	"time"

	"github.com/life-planner/backend/internal/domain/entity"
)

func TestSummarize(t *testing.T) {
	records := []entity.Transaction{
		txn(day(2025, time.March, 1), entity.TransactionKindIncome, 4000, "Salary"),
		txn(day(2025, time.March, 2), entity.TransactionKindExpense, 600, "Food"),
		txn(day(2025, time.March, 3), entity.TransactionKindExpense, 400, "food"),
		txn(day(2025, time.March, 4), entity.TransactionKindInvestment, 1000, "Stocks"),
		txn(day(2025, time.March, 5), entity.TransactionKindEMIPayment, 1000, ""),
		debt("Rahul: Lunch", entity.TransactionKindBorrow, 500, entity.DebtStatusPending),
		debt("Rahul: Movie", entity.TransactionKindBorrow, 300, entity.DebtStatusSettled),
		debt("Priya: Rent", entity.TransactionKindLend, 250, entity.DebtStatusPending),
		txn(day(2025, time.April, 1), entity.TransactionKindExpense, 9999, "Food"),
	}

	s := Summarize(records, MonthWindow(2025, time.March))

	if s.Count != 8 {
		t.Errorf("expected 8 records in window, got %d", s.Count)
	}
	if !s.TotalInflow.Equal(dec(4000)) {
		t.Errorf("expected inflow 4000, got %s", s.TotalInflow)
	}
	if !s.TotalOutflow.Equal(dec(3000)) {
		t.Errorf("expected outflow 3000, got %s", s.TotalOutflow)
	}
	if !s.Net.Equal(dec(1000)) {
		t.Errorf("expected net 1000, got %s", s.Net)
	}
	if s.SavingsRate != 25 {
		t.Errorf("expected savings rate 25, got %d", s.SavingsRate)
	}
	if !s.OutstandingBorrowed.Equal(dec(500)) || !s.OutstandingLent.Equal(dec(250)) {
		t.Errorf("unexpected outstanding debt %s/%s", s.OutstandingBorrowed, s.OutstandingLent)
	}

	if len(s.ByKind) != len(entity.TransactionKinds) {
		t.Fatalf("expected every kind, got %d", len(s.ByKind))
	}
	for i, k := range s.ByKind {
		if k.Kind != entity.TransactionKinds[i] {
			t.Errorf("kind %d: expected %s, got %s", i, entity.TransactionKinds[i], k.Kind)
		}
	}
	if !s.ByKind[2].Total.Equal(dec(800)) {
		t.Errorf("expected borrow total 800 including settled, got %s", s.ByKind[2].Total)
	}

	expectedCategories := []struct {
		name  string
		total int64
		share int
		count int
	}{
		{"Food", 1000, 33, 2},
		{"Other", 1000, 33, 1},
		{"Stocks", 1000, 33, 1},
	}
	if len(s.ByCategory) != len(expectedCategories) {
		t.Fatalf("expected %d categories, got %d", len(expectedCategories), len(s.ByCategory))
	}
	for i, want := range expectedCategories {
		got := s.ByCategory[i]
		if got.Category != want.name || !got.Total.Equal(dec(want.total)) || got.Share != want.share || got.Count != want.count {
			t.Errorf("category %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, YearWindow(2025))

	if s.Count != 0 || s.SavingsRate != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
	if !s.TotalInflow.IsZero() || !s.TotalOutflow.IsZero() || !s.Net.IsZero() {
		t.Error("expected all totals to be zero")
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("expected no categories, got %d", len(s.ByCategory))
	}
}
