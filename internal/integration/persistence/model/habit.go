package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/domain/entity"
)

// HabitModel represents the habits table in the database.
type HabitModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Category  string         `gorm:"type:varchar(50);not null;default:'Other'"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the HabitModel.
func (HabitModel) TableName() string {
	return "habits"
}

// ToEntity converts a HabitModel to a domain Habit entity.
func (m *HabitModel) ToEntity() *entity.Habit {
	return &entity.Habit{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Category:  m.Category,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// HabitFromEntity creates a HabitModel from a domain Habit entity.
func HabitFromEntity(habit *entity.Habit) *HabitModel {
	return &HabitModel{
		ID:        habit.ID,
		UserID:    habit.UserID,
		Name:      habit.Name,
		Category:  habit.Category,
		CreatedAt: Timestamp(habit.CreatedAt),
		UpdatedAt: Timestamp(habit.UpdatedAt),
	}
}

// HabitCompletionModel represents the habit_completions table in the database.
// Rows outlive their habit so history keeps counting in breakdowns.
type HabitCompletionModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	HabitID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_habit_completion_day"`
	Date      time.Time      `gorm:"type:date;not null;index:idx_habit_completion_day"`
	Completed bool           `gorm:"not null;default:false"`
	Category  string         `gorm:"type:varchar(50);not null;default:''"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the HabitCompletionModel.
func (HabitCompletionModel) TableName() string {
	return "habit_completions"
}

// ToEntity converts a HabitCompletionModel to a domain HabitCompletion entity.
func (m *HabitCompletionModel) ToEntity() *entity.HabitCompletion {
	return &entity.HabitCompletion{
		ID:        m.ID,
		UserID:    m.UserID,
		HabitID:   m.HabitID,
		Date:      m.Date.UTC(),
		Completed: m.Completed,
		Category:  m.Category,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// HabitCompletionFromEntity creates a HabitCompletionModel from a domain HabitCompletion entity.
func HabitCompletionFromEntity(completion *entity.HabitCompletion) *HabitCompletionModel {
	return &HabitCompletionModel{
		ID:        completion.ID,
		UserID:    completion.UserID,
		HabitID:   completion.HabitID,
		Date:      completion.Date,
		Completed: completion.Completed,
		Category:  completion.Category,
		CreatedAt: Timestamp(completion.CreatedAt),
		UpdatedAt: Timestamp(completion.UpdatedAt),
	}
}
