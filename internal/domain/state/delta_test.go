package state

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/life-planner/backend/internal/domain/error"
)

var baseTime = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func rawDelta(kind Kind, payload string) Delta {
	return Delta{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Op:        OpUpsert,
		Kind:      kind,
		RecordID:  uuid.New(),
		Payload:   json.RawMessage(payload),
		UpdatedAt: baseTime,
	}
}

func TestDelta_Decode(t *testing.T) {
	tests := []struct {
		name      string
		delta     func() Delta
		expectErr error
		check     func(t *testing.T, v Variant)
	}{
		{
			name: "transaction",
			delta: func() Delta {
				return rawDelta(KindTransaction, `{"date":"2025-03-01","description":" Rahul: Lunch ","amount":"500","kind":"borrow"}`)
			},
			check: func(t *testing.T, v Variant) {
				if v.Transaction == nil {
					t.Fatal("expected transaction variant")
				}
				if v.Transaction.Status != "pending" {
					t.Errorf("expected debt to default to pending, got %q", v.Transaction.Status)
				}
				if v.Transaction.Description != "Rahul: Lunch" {
					t.Errorf("expected trimmed description, got %q", v.Transaction.Description)
				}
			},
		},
		{
			name: "transaction with numeric amount and timestamp date",
			delta: func() Delta {
				return rawDelta(KindTransaction, `{"date":"2025-03-01T18:30:00Z","amount":12.5,"kind":"expense","category":"Food"}`)
			},
			check: func(t *testing.T, v Variant) {
				if v.Transaction.Amount.String() != "12.5" {
					t.Errorf("unexpected amount %s", v.Transaction.Amount)
				}
				if v.Transaction.Date.Hour() != 0 || v.Transaction.Date.Day() != 1 {
					t.Errorf("expected date truncated to the day, got %v", v.Transaction.Date)
				}
			},
		},
		{
			name: "status on non-debt kind",
			delta: func() Delta {
				return rawDelta(KindTransaction, `{"date":"2025-03-01","amount":"5","kind":"expense","status":"settled"}`)
			},
			expectErr: domainerror.ErrStatusOnNonDebt,
		},
		{
			name: "unknown transaction kind",
			delta: func() Delta {
				return rawDelta(KindTransaction, `{"date":"2025-03-01","amount":"5","kind":"gift"}`)
			},
			expectErr: domainerror.ErrInvalidTransactionKind,
		},
		{
			name: "bad date",
			delta: func() Delta {
				return rawDelta(KindTransaction, `{"date":"March 1","amount":"5","kind":"expense"}`)
			},
			expectErr: domainerror.ErrInvalidTransactionDate,
		},
		{
			name:      "malformed json",
			delta:     func() Delta { return rawDelta(KindHabit, `{"name":`) },
			expectErr: domainerror.ErrInvalidDeltaPayload,
		},
		{
			name:      "habit without name",
			delta:     func() Delta { return rawDelta(KindHabit, `{"name":"  ","category":"Health"}`) },
			expectErr: domainerror.ErrHabitNameRequired,
		},
		{
			name: "completion",
			delta: func() Delta {
				return rawDelta(KindHabitCompletion, `{"habit_id":"`+uuid.NewString()+`","date":"2025-03-02","completed":true,"category":"Health"}`)
			},
			check: func(t *testing.T, v Variant) {
				if v.Completion == nil || !v.Completion.Completed {
					t.Errorf("unexpected completion %+v", v.Completion)
				}
			},
		},
		{
			name:      "completion without habit",
			delta:     func() Delta { return rawDelta(KindHabitCompletion, `{"date":"2025-03-02","completed":true}`) },
			expectErr: domainerror.ErrHabitNotFound,
		},
		{
			name: "goal defaults to monthly",
			delta: func() Delta {
				return rawDelta(KindGoal, `{"category":"Food","limit_amount":"400"}`)
			},
			check: func(t *testing.T, v Variant) {
				if v.Goal == nil || v.Goal.Period != "monthly" {
					t.Errorf("unexpected goal %+v", v.Goal)
				}
			},
		},
		{
			name: "payload id mismatch",
			delta: func() Delta {
				return rawDelta(KindGoal, `{"id":"`+uuid.NewString()+`","category":"Food","limit_amount":"400"}`)
			},
			expectErr: domainerror.ErrDeltaRecordMismatch,
		},
		{
			name: "upsert without payload",
			delta: func() Delta {
				d := rawDelta(KindGoal, ``)
				d.Payload = nil
				return d
			},
			expectErr: domainerror.ErrInvalidDeltaPayload,
		},
		{
			name: "unknown op",
			delta: func() Delta {
				d := rawDelta(KindGoal, `{}`)
				d.Op = "patch"
				return d
			},
			expectErr: domainerror.ErrInvalidDeltaOp,
		},
		{
			name:      "unknown kind",
			delta:     func() Delta { return rawDelta("note", `{}`) },
			expectErr: domainerror.ErrInvalidDeltaKind,
		},
		{
			name: "missing timestamp",
			delta: func() Delta {
				d := rawDelta(KindGoal, `{}`)
				d.UpdatedAt = time.Time{}
				return d
			},
			expectErr: domainerror.ErrMissingDeltaTimestamp,
		},
		{
			name: "delete needs no payload",
			delta: func() Delta {
				return Delete(uuid.New(), KindHabit, uuid.New(), baseTime)
			},
			check: func(t *testing.T, v Variant) {
				if v.Kind != KindHabit || v.Habit != nil {
					t.Errorf("unexpected delete variant %+v", v)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.delta().Decode()

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected error %v, got %v", tt.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-02-28", false},
		{"2025-02-28T23:59:59+05:30", false},
		{"2025-02-30", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
