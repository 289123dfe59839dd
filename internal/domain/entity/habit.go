// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// Habit is a recurring activity the user tracks.
type Habit struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewHabit creates a new Habit entity.
func NewHabit(userID uuid.UUID, name, category string) *Habit {
	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Category:  strings.TrimSpace(category),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the habit fields.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return domainerror.ErrHabitNameRequired
	}
	return nil
}

// HabitCompletion is one day's entry in a habit's history.
type HabitCompletion struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	HabitID   uuid.UUID
	Date      time.Time
	Completed bool
	Category  string // Copied from the habit so history survives renames
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewHabitCompletion creates a history entry for the given habit and day.
func NewHabitCompletion(habit *Habit, date time.Time, completed bool) *HabitCompletion {
	now := time.Now().UTC()

	return &HabitCompletion{
		ID:        uuid.New(),
		UserID:    habit.UserID,
		HabitID:   habit.ID,
		Date:      truncateDay(date),
		Completed: completed,
		Category:  habit.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the completion fields.
func (c *HabitCompletion) Validate() error {
	if c.HabitID == uuid.Nil {
		return domainerror.ErrHabitNotFound
	}
	if c.Date.IsZero() {
		return domainerror.ErrInvalidCompletionDate
	}
	return nil
}

// RecordDate implements aggregation.Record.
func (c HabitCompletion) RecordDate() time.Time { return c.Date }

// RecordMeasure implements aggregation.Record. A completed entry counts as one.
func (c HabitCompletion) RecordMeasure() decimal.Decimal {
	if c.Completed {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// RecordCategory implements aggregation.Record.
func (c HabitCompletion) RecordCategory() string { return c.Category }

// RecordKind implements aggregation.Record. Habit entries have no kind.
func (c HabitCompletion) RecordKind() string { return "" }

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
