// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// HabitRepository defines the interface for habit persistence operations.
type HabitRepository interface {
	// Upsert inserts or replaces a habit.
	Upsert(ctx context.Context, habit *entity.Habit) error

	// Delete soft-deletes a habit, leaving a tombstone dated at.
	Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error

	// FindByID retrieves a live habit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)

	// FindByUser retrieves all live habits of a user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Habit, error)

	// FindDeleted retrieves the tombstones of a user's habits.
	FindDeleted(ctx context.Context, userID uuid.UUID) ([]DeletedRecord, error)
}

// CompletionFilter defines filter options for listing habit completions.
type CompletionFilter struct {
	UserID    uuid.UUID
	HabitID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// HabitCompletionRepository defines the interface for habit history persistence.
type HabitCompletionRepository interface {
	// Upsert inserts or replaces a completion entry.
	Upsert(ctx context.Context, completion *entity.HabitCompletion) error

	// Delete soft-deletes a completion entry, leaving a tombstone dated at.
	Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error

	// FindByHabitAndDate retrieves the live entry of a habit for one day.
	FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitCompletion, error)

	// FindByUser retrieves the live entries matching filter, ordered by date.
	FindByUser(ctx context.Context, filter CompletionFilter) ([]*entity.HabitCompletion, error)

	// FindDeleted retrieves the tombstones of a user's completion entries.
	FindDeleted(ctx context.Context, userID uuid.UUID) ([]DeletedRecord, error)
}
