package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period      string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:          m.ID,
		UserID:      m.UserID,
		Category:    m.Category,
		LimitAmount: m.LimitAmount,
		Period:      entity.GoalPeriod(m.Period),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:          goal.ID,
		UserID:      goal.UserID,
		Category:    goal.Category,
		LimitAmount: goal.LimitAmount,
		Period:      string(goal.Period),
		CreatedAt:   Timestamp(goal.CreatedAt),
		UpdatedAt:   Timestamp(goal.UpdatedAt),
	}
}
