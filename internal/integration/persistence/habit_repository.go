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

// habitRepository implements the adapter.HabitRepository interface.
type habitRepository struct {
	db  *gorm.DB
	lww lwwTable
}

// NewHabitRepository creates a new habit repository instance.
func NewHabitRepository(db *gorm.DB) adapter.HabitRepository {
	return &habitRepository{
		db: db,
		lww: lwwTable{
			table:         model.HabitModel{}.TableName(),
			columns:       []string{"user_id", "name", "category", "updated_at", "deleted_at"},
			notAuthorized: domainerror.ErrNotAuthorizedToModifyHabit,
		},
	}
}

// Upsert inserts or replaces a habit.
func (r *habitRepository) Upsert(ctx context.Context, habit *entity.Habit) error {
	m := model.HabitFromEntity(habit)
	return r.lww.upsert(ctx, r.db, m.ID, m.UserID, m.UpdatedAt, m)
}

// Delete soft-deletes a habit. Its history stays.
func (r *habitRepository) Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.lww.remove(ctx, r.db, id, userID, at, func(deletedAt gorm.DeletedAt) any {
		return &model.HabitModel{
			ID:        id,
			UserID:    userID,
			CreatedAt: deletedAt.Time,
			UpdatedAt: deletedAt.Time,
			DeletedAt: deletedAt,
		}
	})
}

// FindByID retrieves a habit by its ID.
func (r *habitRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var habitModel model.HabitModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&habitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHabitNotFound
		}
		return nil, result.Error
	}
	return habitModel.ToEntity(), nil
}

// FindByUser retrieves all habits for a given user.
func (r *habitRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Habit, error) {
	var habitModels []model.HabitModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&habitModels)
	if result.Error != nil {
		return nil, result.Error
	}

	habits := make([]*entity.Habit, len(habitModels))
	for i := range habitModels {
		habits[i] = habitModels[i].ToEntity()
	}
	return habits, nil
}

// FindDeleted retrieves the tombstones of a user's habits.
func (r *habitRepository) FindDeleted(ctx context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.lww.deleted(ctx, r.db, userID)
}

// habitCompletionRepository implements the adapter.HabitCompletionRepository interface.
type habitCompletionRepository struct {
	db  *gorm.DB
	lww lwwTable
}

// NewHabitCompletionRepository creates a new habit history repository instance.
func NewHabitCompletionRepository(db *gorm.DB) adapter.HabitCompletionRepository {
	return &habitCompletionRepository{
		db: db,
		lww: lwwTable{
			table:         model.HabitCompletionModel{}.TableName(),
			columns:       []string{"user_id", "habit_id", "date", "completed", "category", "updated_at", "deleted_at"},
			notAuthorized: domainerror.ErrNotAuthorizedToModifyHabit,
		},
	}
}

// Upsert inserts or replaces a completion entry.
func (r *habitCompletionRepository) Upsert(ctx context.Context, completion *entity.HabitCompletion) error {
	m := model.HabitCompletionFromEntity(completion)
	return r.lww.upsert(ctx, r.db, m.ID, m.UserID, m.UpdatedAt, m)
}

// Delete soft-deletes a completion entry.
func (r *habitCompletionRepository) Delete(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.lww.remove(ctx, r.db, id, userID, at, func(deletedAt gorm.DeletedAt) any {
		return &model.HabitCompletionModel{
			ID:        id,
			UserID:    userID,
			CreatedAt: deletedAt.Time,
			UpdatedAt: deletedAt.Time,
			DeletedAt: deletedAt,
		}
	})
}

// FindByHabitAndDate retrieves the entry of a habit for one day.
func (r *habitCompletionRepository) FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitCompletion, error) {
	var completionModel model.HabitCompletionModel
	result := r.db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitID, date).
		First(&completionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHabitCompletionNotFound
		}
		return nil, result.Error
	}
	return completionModel.ToEntity(), nil
}

// FindByUser retrieves completion entries based on filter criteria.
func (r *habitCompletionRepository) FindByUser(ctx context.Context, filter adapter.CompletionFilter) ([]*entity.HabitCompletion, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.HabitID != nil {
		query = query.Where("habit_id = ?", *filter.HabitID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var completionModels []model.HabitCompletionModel
	if err := query.Order("date ASC, id ASC").Find(&completionModels).Error; err != nil {
		return nil, err
	}

	completions := make([]*entity.HabitCompletion, len(completionModels))
	for i := range completionModels {
		completions[i] = completionModels[i].ToEntity()
	}
	return completions, nil
}

// FindDeleted retrieves the tombstones of a user's completion entries.
func (r *habitCompletionRepository) FindDeleted(ctx context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.lww.deleted(ctx, r.db, userID)
}
