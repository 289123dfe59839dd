package state

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestReconcile(t *testing.T) {
	userID := uuid.New()

	food := newGoal(userID, "Food", 400, baseTime)
	rent := newGoal(userID, "Housing", 1000, baseTime)
	fun := newGoal(userID, "Entertainment", 50, baseTime)
	onlyLocal := newGoal(userID, "Education", 10, baseTime)

	local := New(userID)
	remote := New(userID)

	// Local edited food later.
	localFood := food
	localFood.LimitAmount = decimal.NewFromInt(500)
	localFood.UpdatedAt = baseTime.Add(time.Hour)
	_ = local.Put(FromGoal(localFood))
	_ = remote.Put(FromGoal(food))

	// Same timestamp on both sides.
	localRent := rent
	localRent.LimitAmount = decimal.NewFromInt(1)
	_ = local.Put(FromGoal(localRent))
	_ = remote.Put(FromGoal(rent))

	// Remote deleted after the local edit.
	_ = local.Put(FromGoal(fun))
	_ = remote.Put(Tombstone(KindGoal, fun.ID, baseTime.Add(time.Minute)))

	_ = local.Put(FromGoal(onlyLocal))

	merged := Reconcile(local, remote)

	tests := []struct {
		name    string
		id      uuid.UUID
		limit   int64
		deleted bool
	}{
		{"later local edit wins", food.ID, 500, false},
		{"tie prefers remote", rent.ID, 1000, false},
		{"later tombstone wins", fun.ID, 0, true},
		{"local-only record kept", onlyLocal.ID, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := merged.Get(KindGoal, tt.id)
			if !ok {
				t.Fatal("expected record in merged state")
			}
			if v.Deleted != tt.deleted {
				t.Fatalf("expected deleted=%v, got %v", tt.deleted, v.Deleted)
			}
			if !tt.deleted && !v.Goal.LimitAmount.Equal(decimal.NewFromInt(tt.limit)) {
				t.Errorf("expected limit %d, got %s", tt.limit, v.Goal.LimitAmount)
			}
		})
	}

	t.Run("inputs are not modified", func(t *testing.T) {
		v, _ := local.Get(KindGoal, fun.ID)
		if v.Deleted {
			t.Error("local state was modified")
		}
		if remote.Len() != 3 {
			t.Errorf("remote state was modified, len %d", remote.Len())
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again := Reconcile(local, remote)
		a, b := merged.Versions(), again.Versions()
		if len(a) != len(b) {
			t.Fatal("expected same number of versions")
		}
		for i := range a {
			if a[i].ID != b[i].ID || a[i].Deleted != b[i].Deleted || !a[i].UpdatedAt.Equal(b[i].UpdatedAt) {
				t.Errorf("version %d differs between runs", i)
			}
		}
	})

	t.Run("diff against remote holds only local wins", func(t *testing.T) {
		diff := Diff(remote, merged)
		if len(diff) != 2 {
			t.Fatalf("expected 2 versions to push, got %d", len(diff))
		}
		for _, v := range diff {
			if v.ID != food.ID && v.ID != onlyLocal.ID {
				t.Errorf("unexpected version %s in diff", v.ID)
			}
		}
	})
}

func TestVersioned_ToDelta(t *testing.T) {
	userID := uuid.New()
	goal := newGoal(userID, "Food", 400, baseTime)

	d, err := FromGoal(goal).ToDelta(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Op != OpUpsert || d.RecordID != goal.ID || !d.UpdatedAt.Equal(baseTime) {
		t.Errorf("unexpected delta %+v", d)
	}

	s := New(userID)
	if err := s.Apply(d); err != nil {
		t.Fatalf("delta did not apply: %v", err)
	}

	tomb, err := Tombstone(KindGoal, goal.ID, baseTime.Add(time.Second)).ToDelta(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tomb.Op != OpDelete || len(tomb.Payload) != 0 {
		t.Errorf("unexpected tombstone delta %+v", tomb)
	}
}
