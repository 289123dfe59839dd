// Package adaptertest provides in-memory implementations of the adapter
// interfaces for use case tests. They follow the same last-writer-wins rules
// as the database repositories.
package adaptertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

type row[T any] struct {
	value     T
	userID    uuid.UUID
	updatedAt time.Time
	deletedAt *time.Time
}

type table[T any] struct {
	mu            sync.RWMutex
	rows          map[uuid.UUID]*row[T]
	notFound      error
	notAuthorized error
	// Err, when set, is returned by every call.
	Err error
}

func newTable[T any](notFound, notAuthorized error) table[T] {
	return table[T]{
		rows:          make(map[uuid.UUID]*row[T]),
		notFound:      notFound,
		notAuthorized: notAuthorized,
	}
}

func (t *table[T]) check(id, userID uuid.UUID, at time.Time) (*row[T], error) {
	existing, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	if existing.userID != userID {
		return nil, t.notAuthorized
	}
	if existing.updatedAt.After(at) {
		return nil, domainerror.ErrStaleDelta
	}
	return existing, nil
}

func (t *table[T]) put(id, userID uuid.UUID, at time.Time, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	if _, err := t.check(id, userID, at); err != nil {
		return err
	}
	t.rows[id] = &row[T]{value: v, userID: userID, updatedAt: at}
	return nil
}

func (t *table[T]) remove(userID, id uuid.UUID, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	existing, err := t.check(id, userID, at)
	if err != nil {
		return err
	}
	if existing == nil {
		existing = &row[T]{userID: userID}
		t.rows[id] = existing
	}
	existing.updatedAt = at
	existing.deletedAt = &at
	return nil
}

func (t *table[T]) get(id uuid.UUID) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var zero T
	if t.Err != nil {
		return zero, t.Err
	}
	r, ok := t.rows[id]
	if !ok || r.deletedAt != nil {
		return zero, t.notFound
	}
	return r.value, nil
}

func (t *table[T]) live(userID uuid.UUID, keep func(T) bool) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.Err != nil {
		return nil, t.Err
	}
	var out []T
	for _, r := range t.rows {
		if r.userID != userID || r.deletedAt != nil {
			continue
		}
		if keep == nil || keep(r.value) {
			out = append(out, r.value)
		}
	}
	return out, nil
}

func (t *table[T]) deleted(userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.Err != nil {
		return nil, t.Err
	}
	var out []adapter.DeletedRecord
	for id, r := range t.rows {
		if r.userID == userID && r.deletedAt != nil {
			out = append(out, adapter.DeletedRecord{ID: id, DeletedAt: *r.deletedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func inRange(d time.Time, start, end *time.Time) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

// TransactionRepository is an in-memory adapter.TransactionRepository.
type TransactionRepository struct {
	table[entity.Transaction]
}

// NewTransactionRepository creates an empty repository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		table: newTable[entity.Transaction](
			domainerror.ErrTransactionNotFound,
			domainerror.ErrNotAuthorizedToModifyTransaction,
		),
	}
}

func (r *TransactionRepository) Upsert(_ context.Context, t *entity.Transaction) error {
	return r.put(t.ID, t.UserID, t.UpdatedAt, *t)
}

func (r *TransactionRepository) Delete(_ context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.remove(userID, id, at)
}

func (r *TransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) FindByUser(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	found, err := r.live(filter.UserID, func(t entity.Transaction) bool {
		if !inRange(t.Date, filter.StartDate, filter.EndDate) {
			return false
		}
		if len(filter.Kinds) == 0 {
			return true
		}
		for _, k := range filter.Kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(found, func(i, j int) bool {
		if !found[i].Date.Equal(found[j].Date) {
			return found[i].Date.Before(found[j].Date)
		}
		return found[i].CreatedAt.Before(found[j].CreatedAt)
	})
	out := make([]*entity.Transaction, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}

func (r *TransactionRepository) FindDeleted(_ context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.deleted(userID)
}

// HabitRepository is an in-memory adapter.HabitRepository.
type HabitRepository struct {
	table[entity.Habit]
}

// NewHabitRepository creates an empty repository.
func NewHabitRepository() *HabitRepository {
	return &HabitRepository{
		table: newTable[entity.Habit](
			domainerror.ErrHabitNotFound,
			domainerror.ErrNotAuthorizedToModifyHabit,
		),
	}
}

func (r *HabitRepository) Upsert(_ context.Context, h *entity.Habit) error {
	return r.put(h.ID, h.UserID, h.UpdatedAt, *h)
}

func (r *HabitRepository) Delete(_ context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.remove(userID, id, at)
}

func (r *HabitRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Habit, error) {
	h, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HabitRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Habit, error) {
	found, err := r.live(userID, nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	out := make([]*entity.Habit, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}

func (r *HabitRepository) FindDeleted(_ context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.deleted(userID)
}

// HabitCompletionRepository is an in-memory adapter.HabitCompletionRepository.
type HabitCompletionRepository struct {
	table[entity.HabitCompletion]
}

// NewHabitCompletionRepository creates an empty repository.
func NewHabitCompletionRepository() *HabitCompletionRepository {
	return &HabitCompletionRepository{
		table: newTable[entity.HabitCompletion](
			domainerror.ErrHabitCompletionNotFound,
			domainerror.ErrNotAuthorizedToModifyHabit,
		),
	}
}

func (r *HabitCompletionRepository) Upsert(_ context.Context, c *entity.HabitCompletion) error {
	return r.put(c.ID, c.UserID, c.UpdatedAt, *c)
}

func (r *HabitCompletionRepository) Delete(_ context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.remove(userID, id, at)
}

func (r *HabitCompletionRepository) FindByHabitAndDate(_ context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitCompletion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, row := range r.rows {
		c := row.value
		if row.deletedAt == nil && c.HabitID == habitID && c.Date.Equal(date) {
			return &c, nil
		}
	}
	return nil, domainerror.ErrHabitCompletionNotFound
}

func (r *HabitCompletionRepository) FindByUser(_ context.Context, filter adapter.CompletionFilter) ([]*entity.HabitCompletion, error) {
	found, err := r.live(filter.UserID, func(c entity.HabitCompletion) bool {
		if filter.HabitID != nil && c.HabitID != *filter.HabitID {
			return false
		}
		return inRange(c.Date, filter.StartDate, filter.EndDate)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].Date.Before(found[j].Date) })
	out := make([]*entity.HabitCompletion, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}

func (r *HabitCompletionRepository) FindDeleted(_ context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.deleted(userID)
}

// GoalRepository is an in-memory adapter.GoalRepository.
type GoalRepository struct {
	table[entity.Goal]
}

// NewGoalRepository creates an empty repository.
func NewGoalRepository() *GoalRepository {
	return &GoalRepository{
		table: newTable[entity.Goal](
			domainerror.ErrGoalNotFound,
			domainerror.ErrUnauthorizedGoalAccess,
		),
	}
}

func (r *GoalRepository) Upsert(_ context.Context, g *entity.Goal) error {
	return r.put(g.ID, g.UserID, g.UpdatedAt, *g)
}

func (r *GoalRepository) Delete(_ context.Context, userID, id uuid.UUID, at time.Time) error {
	return r.remove(userID, id, at)
}

func (r *GoalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	found, err := r.live(userID, nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Category < found[j].Category })
	out := make([]*entity.Goal, len(found))
	for i := range found {
		out[i] = &found[i]
	}
	return out, nil
}

func (r *GoalRepository) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category string) (*entity.Goal, error) {
	found, err := r.live(userID, func(g entity.Goal) bool {
		return strings.EqualFold(strings.TrimSpace(g.Category), strings.TrimSpace(category))
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domainerror.ErrGoalNotFound
	}
	return &found[0], nil
}

func (r *GoalRepository) FindDeleted(_ context.Context, userID uuid.UUID) ([]adapter.DeletedRecord, error) {
	return r.deleted(userID)
}

var (
	_ adapter.TransactionRepository     = (*TransactionRepository)(nil)
	_ adapter.HabitRepository           = (*HabitRepository)(nil)
	_ adapter.HabitCompletionRepository = (*HabitCompletionRepository)(nil)
	_ adapter.GoalRepository            = (*GoalRepository)(nil)
)
