// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db  *gorm.DB
	lww lwwTable
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
		lww: lwwTable{
			table:         model.TransactionModel{}.TableName(),
			columns:       []string{"user_id", "date", "description", "amount", "kind", "category", "status", "updated_at", "deleted_at"},
			notAuthorized: domainerror.ErrNotAuthorizedToModifyTransaction,
		},
	}
}

// Upsert inserts or replaces a transaction.
func (r *transactionRepository) Upsert(ctx context.Context, transaction *entity.Transaction) error {
	m := model.TransactionFromEntity(transaction)
	return r.lww.upsert(ctx, r.db, m.ID, m.UserID, m.UpdatedAt, m)
}

// Delete soft-deletes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.lww.remove(ctx, r.db, id, userID, at, func(deletedAt gorm.DeletedAt) any {
		return &model.TransactionModel{
			ID:        id,
			UserID:    userID,
			CreatedAt: deletedAt.Time,
			UpdatedAt: deletedAt.Time,
			DeletedAt: deletedAt,
		}
	})
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByUser retrieves transactions based on filter criteria.
func (r *transactionRepository) FindByUser(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		query = query.Where("kind IN ?", kinds)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date ASC, created_at ASC, id ASC").Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// FindDeleted retrieves the tombstones of a user's transactions.
func (r *transactionRepository) FindDeleted(ctx context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.lww.deleted(ctx, r.db, userID)
}
