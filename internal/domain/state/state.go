package state

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// Key identifies one record across all kinds.
type Key struct {
	Kind Kind
	ID   uuid.UUID
}

// Versioned is the current version of one record. Deleted records are kept
// as tombstones so that older upserts cannot resurrect them.
type Versioned struct {
	Variant
	ID        uuid.UUID
	UpdatedAt time.Time
	Deleted   bool
}

// Key returns the record key of v.
func (v Versioned) Key() Key {
	return Key{Kind: v.Kind, ID: v.ID}
}

// State is the in-memory record set of one user.
//
// A State is not safe for concurrent use.
type State struct {
	UserID  uuid.UUID
	records map[Key]Versioned
}

// New returns an empty state for userID.
func New(userID uuid.UUID) *State {
	return &State{
		UserID:  userID,
		records: make(map[Key]Versioned),
	}
}

// Apply decodes d and applies it with last-writer-wins semantics. A delta
// older than the stored version is ignored and ErrStaleDelta is returned.
// Equal timestamps let the incoming delta win.
func (s *State) Apply(d Delta) error {
	v, err := d.Decode()
	if err != nil {
		return err
	}

	incoming := Versioned{
		Variant:   v,
		ID:        d.RecordID,
		UpdatedAt: d.UpdatedAt,
		Deleted:   d.Op == OpDelete,
	}
	return s.Put(incoming)
}

// Put stores v unless a newer version of the same record is already present.
func (s *State) Put(v Versioned) error {
	key := v.Key()
	if current, ok := s.records[key]; ok && v.UpdatedAt.Before(current.UpdatedAt) {
		return domainerror.ErrStaleDelta
	}
	if current, ok := s.records[key]; ok && !v.Deleted {
		preserveCreatedAt(&v, current)
	}
	s.records[key] = copyVersioned(v)
	return nil
}

// Get returns the stored version of a record, tombstones included.
func (s *State) Get(kind Kind, id uuid.UUID) (Versioned, bool) {
	v, ok := s.records[Key{Kind: kind, ID: id}]
	return v, ok
}

// Len returns the number of stored versions, tombstones included.
func (s *State) Len() int {
	return len(s.records)
}

// Versions returns every stored version ordered by kind, then id.
func (s *State) Versions() []Versioned {
	out := make([]Versioned, 0, len(s.records))
	for _, v := range s.records {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Transactions returns the live transactions ordered by date, then id.
func (s *State) Transactions() []entity.Transaction {
	out := make([]entity.Transaction, 0)
	for _, v := range s.live(KindTransaction) {
		out = append(out, *v.Transaction)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Habits returns the live habits ordered by name.
func (s *State) Habits() []entity.Habit {
	out := make([]entity.Habit, 0)
	for _, v := range s.live(KindHabit) {
		out = append(out, *v.Habit)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Completions returns the live habit completions ordered by date.
func (s *State) Completions() []entity.HabitCompletion {
	out := make([]entity.HabitCompletion, 0)
	for _, v := range s.live(KindHabitCompletion) {
		out = append(out, *v.Completion)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Goals returns the live goals ordered by category.
func (s *State) Goals() []entity.Goal {
	out := make([]entity.Goal, 0)
	for _, v := range s.live(KindGoal) {
		out = append(out, *v.Goal)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

func (s *State) live(kind Kind) []Versioned {
	var out []Versioned
	for _, v := range s.Versions() {
		if v.Kind == kind && !v.Deleted {
			out = append(out, v)
		}
	}
	return out
}

// FromTransaction wraps a stored transaction as a live version.
func FromTransaction(t entity.Transaction) Versioned {
	return Versioned{
		Variant:   Variant{Kind: KindTransaction, Transaction: &t},
		ID:        t.ID,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromHabit wraps a stored habit as a live version.
func FromHabit(h entity.Habit) Versioned {
	return Versioned{
		Variant:   Variant{Kind: KindHabit, Habit: &h},
		ID:        h.ID,
		UpdatedAt: h.UpdatedAt,
	}
}

// FromCompletion wraps a stored habit completion as a live version.
func FromCompletion(c entity.HabitCompletion) Versioned {
	return Versioned{
		Variant:   Variant{Kind: KindHabitCompletion, Completion: &c},
		ID:        c.ID,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromGoal wraps a stored goal as a live version.
func FromGoal(g entity.Goal) Versioned {
	return Versioned{
		Variant:   Variant{Kind: KindGoal, Goal: &g},
		ID:        g.ID,
		UpdatedAt: g.UpdatedAt,
	}
}

// Tombstone returns a deleted version of a record.
func Tombstone(kind Kind, id uuid.UUID, at time.Time) Versioned {
	return Versioned{
		Variant:   Variant{Kind: kind},
		ID:        id,
		UpdatedAt: at,
		Deleted:   true,
	}
}

// copyVersioned detaches v from the caller's pointers.
func copyVersioned(v Versioned) Versioned {
	switch {
	case v.Transaction != nil:
		t := *v.Transaction
		v.Transaction = &t
	case v.Habit != nil:
		h := *v.Habit
		v.Habit = &h
	case v.Completion != nil:
		c := *v.Completion
		v.Completion = &c
	case v.Goal != nil:
		g := *v.Goal
		v.Goal = &g
	}
	return v
}

func preserveCreatedAt(v *Versioned, current Versioned) {
	created := current.createdAt()
	if created.IsZero() {
		return
	}
	switch {
	case v.Transaction != nil:
		t := *v.Transaction
		t.CreatedAt = created
		v.Transaction = &t
	case v.Habit != nil:
		h := *v.Habit
		h.CreatedAt = created
		v.Habit = &h
	case v.Completion != nil:
		c := *v.Completion
		c.CreatedAt = created
		v.Completion = &c
	case v.Goal != nil:
		g := *v.Goal
		g.CreatedAt = created
		v.Goal = &g
	}
}

func (v Versioned) createdAt() time.Time {
	switch {
	case v.Transaction != nil:
		return v.Transaction.CreatedAt
	case v.Habit != nil:
		return v.Habit.CreatedAt
	case v.Completion != nil:
		return v.Completion.CreatedAt
	case v.Goal != nil:
		return v.Goal.CreatedAt
	}
	return time.Time{}
}
