package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db  *gorm.DB
	lww lwwTable
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
		lww: lwwTable{
			table:         model.GoalModel{}.TableName(),
			columns:       []string{"user_id", "category", "limit_amount", "period", "updated_at", "deleted_at"},
			notAuthorized: domainerror.ErrUnauthorizedGoalAccess,
		},
	}
}

// Upsert inserts or replaces a goal.
func (r *goalRepository) Upsert(ctx context.Context, goal *entity.Goal) error {
	m := model.GoalFromEntity(goal)
	return r.lww.upsert(ctx, r.db, m.ID, m.UserID, m.UpdatedAt, m)
}

// Delete removes a goal from the database (soft delete).
func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.lww.remove(ctx, r.db, id, userID, at, func(deletedAt gorm.DeletedAt) any {
		return &model.GoalModel{
			ID:        id,
			UserID:    userID,
			Period:    string(entity.GoalPeriodMonthly),
			CreatedAt: deletedAt.Time,
			UpdatedAt: deletedAt.Time,
			DeletedAt: deletedAt,
		}
	})
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves all goals for a given user.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// FindByUserAndCategory retrieves a goal by user ID and category name.
func (r *goalRepository) FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(category) = ?", userID, strings.ToLower(strings.TrimSpace(category))).
		First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindDeleted retrieves the tombstones of a user's goals.
func (r *goalRepository) FindDeleted(ctx context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.lww.deleted(ctx, r.db, userID)
}
