// Package state holds the explicit per-user application state and the deltas
// that change it.
//
// Every user action is expressed as a Delta. Deltas are applied to a State with
// last-writer-wins semantics and queued for persistence; nothing is written as
// a side effect of reading or computing.
package state

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// Op is the operation a delta performs on its record.
type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
)

// IsValid reports whether o is a known operation.
func (o Op) IsValid() bool {
	return o == OpUpsert || o == OpDelete
}

// Kind identifies the record variant a delta targets.
type Kind string

const (
	KindTransaction     Kind = "transaction"
	KindHabit           Kind = "habit"
	KindHabitCompletion Kind = "habit_completion"
	KindGoal            Kind = "goal"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindTransaction, KindHabit, KindHabitCompletion, KindGoal}

// IsValid reports whether k is a known record kind.
func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// DateLayout is the wire format of calendar dates in payloads.
const DateLayout = "2006-01-02"

// Delta is a single upsert or delete of one record.
type Delta struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Op        Op              `json:"op"`
	Kind      Kind            `json:"kind"`
	RecordID  uuid.UUID       `json:"record_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Variant is the decoded record of a delta. Exactly one pointer matching Kind
// is set for upserts; deletes carry none.
type Variant struct {
	Kind        Kind
	Transaction *entity.Transaction
	Habit       *entity.Habit
	Completion  *entity.HabitCompletion
	Goal        *entity.Goal
}

// TransactionPayload is the wire shape of a transaction upsert.
type TransactionPayload struct {
	ID          uuid.UUID              `json:"id"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Kind        entity.TransactionKind `json:"kind"`
	Category    string                 `json:"category,omitempty"`
	Status      entity.DebtStatus      `json:"status,omitempty"`
}

// HabitPayload is the wire shape of a habit upsert.
type HabitPayload struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// CompletionPayload is the wire shape of a habit completion upsert.
type CompletionPayload struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Category  string    `json:"category"`
}

// GoalPayload is the wire shape of a goal upsert.
type GoalPayload struct {
	ID          uuid.UUID         `json:"id"`
	Category    string            `json:"category"`
	LimitAmount decimal.Decimal   `json:"limit_amount"`
	Period      entity.GoalPeriod `json:"period,omitempty"`
}

// Validate checks the envelope of the delta without decoding its payload.
func (d Delta) Validate() error {
	if !d.Op.IsValid() {
		return domainerror.ErrInvalidDeltaOp
	}
	if !d.Kind.IsValid() {
		return domainerror.ErrInvalidDeltaKind
	}
	if d.UpdatedAt.IsZero() {
		return domainerror.ErrMissingDeltaTimestamp
	}
	if d.RecordID == uuid.Nil {
		return domainerror.ErrDeltaRecordMismatch
	}
	return nil
}

// Decode validates the delta and returns its typed record. Entity validation
// failures are wrapped together with ErrInvalidDeltaPayload.
func (d Delta) Decode() (Variant, error) {
	if err := d.Validate(); err != nil {
		return Variant{}, err
	}

	v := Variant{Kind: d.Kind}
	if d.Op == OpDelete {
		return v, nil
	}
	if len(d.Payload) == 0 {
		return Variant{}, domainerror.ErrInvalidDeltaPayload
	}

	var err error
	switch d.Kind {
	case KindTransaction:
		v.Transaction, err = d.decodeTransaction()
	case KindHabit:
		v.Habit, err = d.decodeHabit()
	case KindHabitCompletion:
		v.Completion, err = d.decodeCompletion()
	case KindGoal:
		v.Goal, err = d.decodeGoal()
	}
	if err != nil {
		return Variant{}, err
	}
	return v, nil
}

func (d Delta) checkID(id uuid.UUID) error {
	if id != uuid.Nil && id != d.RecordID {
		return domainerror.ErrDeltaRecordMismatch
	}
	return nil
}

func invalidPayload(err error) error {
	return fmt.Errorf("%w: %w", domainerror.ErrInvalidDeltaPayload, err)
}

func (d Delta) decodeTransaction() (*entity.Transaction, error) {
	var p TransactionPayload
	if err := json.Unmarshal(d.Payload, &p); err != nil {
		return nil, invalidPayload(err)
	}
	if err := d.checkID(p.ID); err != nil {
		return nil, err
	}

	date, err := ParseDate(p.Date)
	if err != nil {
		return nil, invalidPayload(domainerror.ErrInvalidTransactionDate)
	}

	t := &entity.Transaction{
		ID:          d.RecordID,
		UserID:      d.UserID,
		Date:        date,
		Description: strings.TrimSpace(p.Description),
		Amount:      p.Amount,
		Kind:        p.Kind,
		Category:    strings.TrimSpace(p.Category),
		Status:      p.Status,
		CreatedAt:   d.UpdatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if err := t.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	return t, nil
}

func (d Delta) decodeHabit() (*entity.Habit, error) {
	var p HabitPayload
	if err := json.Unmarshal(d.Payload, &p); err != nil {
		return nil, invalidPayload(err)
	}
	if err := d.checkID(p.ID); err != nil {
		return nil, err
	}

	h := &entity.Habit{
		ID:        d.RecordID,
		UserID:    d.UserID,
		Name:      strings.TrimSpace(p.Name),
		Category:  strings.TrimSpace(p.Category),
		CreatedAt: d.UpdatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if err := h.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	return h, nil
}

func (d Delta) decodeCompletion() (*entity.HabitCompletion, error) {
	var p CompletionPayload
	if err := json.Unmarshal(d.Payload, &p); err != nil {
		return nil, invalidPayload(err)
	}
	if err := d.checkID(p.ID); err != nil {
		return nil, err
	}

	date, err := ParseDate(p.Date)
	if err != nil {
		return nil, invalidPayload(domainerror.ErrInvalidCompletionDate)
	}

	c := &entity.HabitCompletion{
		ID:        d.RecordID,
		UserID:    d.UserID,
		HabitID:   p.HabitID,
		Date:      date,
		Completed: p.Completed,
		Category:  strings.TrimSpace(p.Category),
		CreatedAt: d.UpdatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if err := c.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	return c, nil
}

func (d Delta) decodeGoal() (*entity.Goal, error) {
	var p GoalPayload
	if err := json.Unmarshal(d.Payload, &p); err != nil {
		return nil, invalidPayload(err)
	}
	if err := d.checkID(p.ID); err != nil {
		return nil, err
	}

	period := p.Period
	if period == "" {
		period = entity.GoalPeriodMonthly
	}
	g := &entity.Goal{
		ID:          d.RecordID,
		UserID:      d.UserID,
		Category:    strings.TrimSpace(p.Category),
		LimitAmount: p.LimitAmount,
		Period:      period,
		CreatedAt:   d.UpdatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if err := g.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	return g, nil
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns the
// calendar day at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// UpsertTransaction builds the delta that stores t.
func UpsertTransaction(t entity.Transaction) (Delta, error) {
	return newUpsert(t.UserID, KindTransaction, t.ID, t.UpdatedAt, TransactionPayload{
		ID:          t.ID,
		Date:        t.Date.Format(DateLayout),
		Description: t.Description,
		Amount:      t.Amount,
		Kind:        t.Kind,
		Category:    t.Category,
		Status:      t.Status,
	})
}

// UpsertHabit builds the delta that stores h.
func UpsertHabit(h entity.Habit) (Delta, error) {
	return newUpsert(h.UserID, KindHabit, h.ID, h.UpdatedAt, HabitPayload{
		ID:       h.ID,
		Name:     h.Name,
		Category: h.Category,
	})
}

// UpsertCompletion builds the delta that stores c.
func UpsertCompletion(c entity.HabitCompletion) (Delta, error) {
	return newUpsert(c.UserID, KindHabitCompletion, c.ID, c.UpdatedAt, CompletionPayload{
		ID:        c.ID,
		HabitID:   c.HabitID,
		Date:      c.Date.Format(DateLayout),
		Completed: c.Completed,
		Category:  c.Category,
	})
}

// UpsertGoal builds the delta that stores g.
func UpsertGoal(g entity.Goal) (Delta, error) {
	return newUpsert(g.UserID, KindGoal, g.ID, g.UpdatedAt, GoalPayload{
		ID:          g.ID,
		Category:    g.Category,
		LimitAmount: g.LimitAmount,
		Period:      g.Period,
	})
}

// Delete builds the tombstone delta for one record.
func Delete(userID uuid.UUID, kind Kind, recordID uuid.UUID, at time.Time) Delta {
	return Delta{
		ID:        uuid.New(),
		UserID:    userID,
		Op:        OpDelete,
		Kind:      kind,
		RecordID:  recordID,
		UpdatedAt: at,
	}
}

func newUpsert(userID uuid.UUID, kind Kind, recordID uuid.UUID, at time.Time, payload any) (Delta, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Delta{}, fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}
	return Delta{
		ID:        uuid.New(),
		UserID:    userID,
		Op:        OpUpsert,
		Kind:      kind,
		RecordID:  recordID,
		Payload:   raw,
		UpdatedAt: at,
	}, nil
}
