// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// GoalPeriod represents the period type for a spending goal.
type GoalPeriod string

const (
	GoalPeriodMonthly GoalPeriod = "monthly"
	GoalPeriodYearly  GoalPeriod = "yearly"
)

// Goal represents a spending limit for one expense category.
type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Period      GoalPeriod
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGoal creates a new Goal entity.
func NewGoal(userID uuid.UUID, category string, limitAmount decimal.Decimal, period GoalPeriod) *Goal {
	now := time.Now().UTC()

	if period == "" {
		period = GoalPeriodMonthly
	}

	return &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    strings.TrimSpace(category),
		LimitAmount: limitAmount,
		Period:      period,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the goal fields.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Category) == "" {
		return domainerror.ErrGoalCategoryRequired
	}
	if g.LimitAmount.IsNegative() {
		return domainerror.ErrInvalidLimitAmount
	}
	if g.Period != GoalPeriodMonthly && g.Period != GoalPeriodYearly {
		return domainerror.ErrInvalidGoalPeriod
	}
	return nil
}

// LimitFor returns the limit scaled to a window of the given length in months.
// A yearly limit spread over one month is divided by twelve.
func (g *Goal) LimitFor(months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	m := decimal.NewFromInt(int64(months))
	if g.Period == GoalPeriodYearly {
		return g.LimitAmount.Mul(m).Div(decimal.NewFromInt(12))
	}
	return g.LimitAmount.Mul(m)
}
