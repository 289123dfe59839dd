package state

import (
	"fmt"

	"github.com/google/uuid"
)

// Reconcile merges two replicas of the same user's state record by record.
// The version with the later UpdatedAt wins; tombstones compete like any other
// version. On equal timestamps the remote copy wins. Neither input is modified.
func Reconcile(local, remote *State) *State {
	userID := remote.UserID
	if userID == uuid.Nil {
		userID = local.UserID
	}
	merged := New(userID)

	for key, v := range local.records {
		merged.records[key] = copyVersioned(v)
	}
	for key, r := range remote.records {
		l, ok := merged.records[key]
		if ok && l.UpdatedAt.After(r.UpdatedAt) {
			continue
		}
		merged.records[key] = copyVersioned(r)
	}
	return merged
}

// Diff returns the versions of next that are absent from or newer than the
// corresponding versions of base, ordered like Versions.
func Diff(base, next *State) []Versioned {
	var out []Versioned
	for _, v := range next.Versions() {
		b, ok := base.records[v.Key()]
		if ok && !v.UpdatedAt.After(b.UpdatedAt) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ToDelta converts a stored version back into the delta that reproduces it.
func (v Versioned) ToDelta(userID uuid.UUID) (Delta, error) {
	if v.Deleted {
		return Delete(userID, v.Kind, v.ID, v.UpdatedAt), nil
	}

	var (
		d   Delta
		err error
	)
	switch {
	case v.Transaction != nil:
		d, err = UpsertTransaction(*v.Transaction)
	case v.Habit != nil:
		d, err = UpsertHabit(*v.Habit)
	case v.Completion != nil:
		d, err = UpsertCompletion(*v.Completion)
	case v.Goal != nil:
		d, err = UpsertGoal(*v.Goal)
	default:
		return Delta{}, fmt.Errorf("version %s of kind %s has no record", v.ID, v.Kind)
	}
	if err != nil {
		return Delta{}, err
	}
	d.UserID = userID
	d.UpdatedAt = v.UpdatedAt
	return d, nil
}
