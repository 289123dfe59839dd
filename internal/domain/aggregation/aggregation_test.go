package aggregation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func txn(date time.Time, kind entity.TransactionKind, amount int64, category string) entity.Transaction {
	return entity.Transaction{
		ID:       uuid.New(),
		Date:     date,
		Amount:   decimal.NewFromInt(amount),
		Kind:     kind,
		Category: category,
	}
}

func debt(desc string, kind entity.TransactionKind, amount int64, status entity.DebtStatus) entity.Transaction {
	return entity.Transaction{
		ID:          uuid.New(),
		Date:        day(2025, time.March, 1),
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
		Kind:        kind,
		Status:      status,
	}
}

func completion(date time.Time, category string, completed bool) entity.HabitCompletion {
	return entity.HabitCompletion{
		ID:        uuid.New(),
		HabitID:   uuid.New(),
		Date:      date,
		Category:  category,
		Completed: completed,
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
