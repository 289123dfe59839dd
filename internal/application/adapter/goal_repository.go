// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Upsert inserts or replaces a goal.
	Upsert(ctx context.Context, goal *entity.Goal) error

	// Delete soft-deletes a goal, leaving a tombstone dated at.
	Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error

	// FindByID retrieves a live goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves all live goals of a user, ordered by category.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// FindByUserAndCategory retrieves the live goal of one category, matched case-insensitively.
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Goal, error)

	// FindDeleted retrieves the tombstones of a user's goals.
	FindDeleted(ctx context.Context, userID uuid.UUID) ([]DeletedRecord, error)
}
