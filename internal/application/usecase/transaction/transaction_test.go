package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter/adaptertest"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

type fixture struct {
	repo   *adaptertest.TransactionRepository
	apply  *replication.ApplyDeltaUseCase
	create *CreateTransactionUseCase
}

func newFixture() *fixture {
	repo := adaptertest.NewTransactionRepository()
	apply := replication.NewApplyDeltaUseCase(
		repo,
		adaptertest.NewHabitRepository(),
		adaptertest.NewHabitCompletionRepository(),
		adaptertest.NewGoalRepository(),
	)
	return &fixture{repo: repo, apply: apply, create: NewCreateTransactionUseCase(apply)}
}

func (f *fixture) mustCreate(t *testing.T, userID uuid.UUID, kind entity.TransactionKind, amount string) *entity.Transaction {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Description: "Rahul: lunch",
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Category:    "Food",
	})
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return out.Transaction
}

func txnCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	return txnErr.Code
}

func TestCreateTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("debt defaults to pending", func(t *testing.T) {
		f := newFixture()
		created := f.mustCreate(t, userID, entity.TransactionKindLend, "25")

		stored, err := f.repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected stored transaction: %v", err)
		}
		if stored.Status != entity.DebtStatusPending {
			t.Errorf("expected pending status, got %q", stored.Status)
		}
	})

	tests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name:  "negative amount",
			input: CreateTransactionInput{Date: time.Now(), Amount: decimal.NewFromInt(-1), Kind: entity.TransactionKindExpense},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "unknown kind",
			input: CreateTransactionInput{Date: time.Now(), Amount: decimal.NewFromInt(1), Kind: "gift"},
			code:  domainerror.ErrCodeInvalidTransactionKind,
		},
		{
			name:  "status on non-debt",
			input: CreateTransactionInput{Date: time.Now(), Amount: decimal.NewFromInt(1), Kind: entity.TransactionKindIncome, Status: entity.DebtStatusSettled},
			code:  domainerror.ErrCodeStatusOnNonDebt,
		},
		{
			name:  "description too long",
			input: CreateTransactionInput{Date: time.Now(), Amount: decimal.NewFromInt(1), Kind: entity.TransactionKindIncome, Description: strings.Repeat("a", MaxDescriptionLength+1)},
			code:  domainerror.ErrCodeDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.input.UserID = userID
			_, err := f.create.Execute(ctx, tt.input)
			if code := txnCode(t, err); code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, code)
			}
		})
	}
}

func TestUpdateTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("kind change clears debt status", func(t *testing.T) {
		f := newFixture()
		created := f.mustCreate(t, userID, entity.TransactionKindBorrow, "40")
		kind := entity.TransactionKindExpense

		out, err := NewUpdateTransactionUseCase(f.repo, f.apply).Execute(ctx, UpdateTransactionInput{
			TransactionID: created.ID,
			UserID:        userID,
			Kind:          &kind,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.Status != entity.DebtStatusNone {
			t.Errorf("expected status cleared, got %q", out.Transaction.Status)
		}
	})

	t.Run("other user", func(t *testing.T) {
		f := newFixture()
		created := f.mustCreate(t, userID, entity.TransactionKindExpense, "40")
		amount := decimal.NewFromInt(1)

		_, err := NewUpdateTransactionUseCase(f.repo, f.apply).Execute(ctx, UpdateTransactionInput{
			TransactionID: created.ID,
			UserID:        uuid.New(),
			Amount:        &amount,
		})
		if code := txnCode(t, err); code != domainerror.ErrCodeNotAuthorizedTransaction {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotAuthorizedTransaction, code)
		}
	})

	t.Run("missing transaction", func(t *testing.T) {
		f := newFixture()
		_, err := NewUpdateTransactionUseCase(f.repo, f.apply).Execute(ctx, UpdateTransactionInput{
			TransactionID: uuid.New(),
			UserID:        userID,
		})
		if code := txnCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionNotFound, code)
		}
	})
}

func TestSettleTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("settles debt once", func(t *testing.T) {
		f := newFixture()
		created := f.mustCreate(t, userID, entity.TransactionKindLend, "40")
		uc := NewSettleTransactionUseCase(f.repo, f.apply)

		for i := 0; i < 2; i++ {
			out, err := uc.Execute(ctx, SettleTransactionInput{TransactionID: created.ID, UserID: userID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Transaction.IsSettled() {
				t.Error("expected settled transaction")
			}
		}
	})

	t.Run("non-debt", func(t *testing.T) {
		f := newFixture()
		created := f.mustCreate(t, userID, entity.TransactionKindExpense, "40")

		_, err := NewSettleTransactionUseCase(f.repo, f.apply).Execute(ctx, SettleTransactionInput{TransactionID: created.ID, UserID: userID})
		if code := txnCode(t, err); code != domainerror.ErrCodeStatusOnNonDebt {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeStatusOnNonDebt, code)
		}
	})
}

func TestDeleteTransactionUseCases(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("single", func(t *testing.T) {
		f := newFixture()
		created := f.mustCreate(t, userID, entity.TransactionKindExpense, "40")

		out, err := NewDeleteTransactionUseCase(f.repo, f.apply).Execute(ctx, DeleteTransactionInput{TransactionID: created.ID, UserID: userID})
		if err != nil || !out.Success {
			t.Fatalf("unexpected result %+v, %v", out, err)
		}

		deleted, _ := f.repo.FindDeleted(ctx, userID)
		if len(deleted) != 1 || deleted[0].ID != created.ID {
			t.Errorf("expected one tombstone, got %+v", deleted)
		}
	})

	t.Run("bulk dedupes ids", func(t *testing.T) {
		f := newFixture()
		a := f.mustCreate(t, userID, entity.TransactionKindExpense, "1")
		b := f.mustCreate(t, userID, entity.TransactionKindExpense, "2")

		out, err := NewBulkDeleteTransactionsUseCase(f.repo, f.apply).Execute(ctx, BulkDeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{a.ID, b.ID, a.ID},
			UserID:         userID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.DeletedCount != 2 {
			t.Errorf("expected 2 deletions, got %d", out.DeletedCount)
		}
	})

	t.Run("bulk verifies before deleting", func(t *testing.T) {
		f := newFixture()
		a := f.mustCreate(t, userID, entity.TransactionKindExpense, "1")

		_, err := NewBulkDeleteTransactionsUseCase(f.repo, f.apply).Execute(ctx, BulkDeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{a.ID, uuid.New()},
			UserID:         userID,
		})
		if code := txnCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionNotFound, code)
		}
		if _, err := f.repo.FindByID(ctx, a.ID); err != nil {
			t.Errorf("expected transaction to survive, got %v", err)
		}
	})

	t.Run("bulk empty", func(t *testing.T) {
		f := newFixture()
		_, err := NewBulkDeleteTransactionsUseCase(f.repo, f.apply).Execute(ctx, BulkDeleteTransactionsInput{UserID: userID})
		if code := txnCode(t, err); code != domainerror.ErrCodeEmptyTransactionIDs {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmptyTransactionIDs, code)
		}
	})
}

func TestListTransactionsUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	userID := uuid.New()

	f.mustCreate(t, userID, entity.TransactionKindExpense, "1")
	f.mustCreate(t, userID, entity.TransactionKindIncome, "2")
	f.mustCreate(t, uuid.New(), entity.TransactionKindIncome, "3")

	uc := NewListTransactionsUseCase(f.repo)

	march := aggregation.MonthWindow(2025, time.March)
	out, err := uc.Execute(ctx, ListTransactionsInput{UserID: userID, Window: &march})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Transactions) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(out.Transactions))
	}

	april := aggregation.MonthWindow(2025, time.April)
	out, _ = uc.Execute(ctx, ListTransactionsInput{UserID: userID, Window: &april})
	if len(out.Transactions) != 0 {
		t.Errorf("expected no transactions in April, got %d", len(out.Transactions))
	}

	out, _ = uc.Execute(ctx, ListTransactionsInput{UserID: userID, Kinds: []entity.TransactionKind{entity.TransactionKindIncome}})
	if len(out.Transactions) != 1 {
		t.Errorf("expected 1 income, got %d", len(out.Transactions))
	}
}
