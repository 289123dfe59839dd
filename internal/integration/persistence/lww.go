package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

// lwwTable applies last-writer-wins writes to one soft-deletable table.
// Tombstones keep their updated_at so late writes cannot resurrect a record.
type lwwTable struct {
	table         string
	columns       []string // Columns replaced on conflict, updated_at and deleted_at included
	notAuthorized error
}

type rowVersion struct {
	UserID    uuid.UUID
	UpdatedAt time.Time
}

type tombstoneRow struct {
	ID        uuid.UUID
	DeletedAt time.Time
}

// check reports whether the row exists, live or deleted, and rejects writes
// from another user or older than the stored version.
func (t lwwTable) check(tx *gorm.DB, id, userID uuid.UUID, at time.Time) (bool, error) {
	var rows []rowVersion
	result := tx.Table(t.table).
		Select("user_id", "updated_at").
		Where("id = ?", id).
		Limit(1).
		Find(&rows)
	if result.Error != nil {
		return false, result.Error
	}
	if len(rows) == 0 {
		return false, nil
	}
	if rows[0].UserID != userID {
		return true, t.notAuthorized
	}
	if rows[0].UpdatedAt.After(at) {
		return true, domainerror.ErrStaleDelta
	}
	return true, nil
}

// upsert inserts value or replaces the stored row, clearing any tombstone.
func (t lwwTable) upsert(ctx context.Context, db *gorm.DB, id, userID uuid.UUID, at time.Time, value any) error {
	at = model.Timestamp(at)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := t.check(tx, id, userID, at); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(t.columns),
		}).Create(value).Error
	})
}

// remove turns the row into a tombstone dated at. A tombstone is inserted
// for records never seen so a late upsert of them stays stale.
func (t lwwTable) remove(ctx context.Context, db *gorm.DB, id, userID uuid.UUID, at time.Time, tombstone func(gorm.DeletedAt) any) error {
	at = model.Timestamp(at)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := t.check(tx, id, userID, at)
		if err != nil {
			return err
		}
		if !exists {
			return tx.Create(tombstone(gorm.DeletedAt{Time: at, Valid: true})).Error
		}
		return tx.Table(t.table).
			Where("id = ?", id).
			UpdateColumns(map[string]any{
				"updated_at": at,
				"deleted_at": at,
			}).Error
	})
}

// deleted lists the tombstones of a user.
func (t lwwTable) deleted(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	var rows []tombstoneRow
	result := db.WithContext(ctx).
		Table(t.table).
		Select("id", "deleted_at").
		Where("user_id = ? AND deleted_at IS NOT NULL", userID).
		Order("id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]adapter.DeletedRecord, len(rows))
	for i, r := range rows {
		out[i] = adapter.DeletedRecord{ID: r.ID, DeletedAt: r.DeletedAt.UTC()}
	}
	return out, nil
}
