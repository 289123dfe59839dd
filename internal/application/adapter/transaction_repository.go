// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Kinds     []entity.TransactionKind
}

// DeletedRecord is the tombstone of a soft-deleted record.
type DeletedRecord struct {
	ID        uuid.UUID
	DeletedAt time.Time
}

// TransactionRepository defines the interface for transaction persistence operations.
//
// Writes are last-writer-wins: Upsert and Delete return domainerror.ErrStaleDelta
// when the stored row, live or deleted, carries a later UpdatedAt.
type TransactionRepository interface {
	// Upsert inserts or replaces a transaction.
	Upsert(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction, leaving a tombstone dated at.
	Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error

	// FindByID retrieves a live transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves the live transactions matching filter, ordered by date.
	FindByUser(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindDeleted retrieves the tombstones of a user's transactions.
	FindDeleted(ctx context.Context, userID uuid.UUID) ([]DeletedRecord, error)
}
