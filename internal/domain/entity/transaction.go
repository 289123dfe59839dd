// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// TransactionKind represents the subtype of a financial record.
type TransactionKind string

const (
	TransactionKindIncome     TransactionKind = "income"
	TransactionKindExpense    TransactionKind = "expense"
	TransactionKindBorrow     TransactionKind = "borrow"
	TransactionKindLend       TransactionKind = "lend"
	TransactionKindInvestment TransactionKind = "investment"
	TransactionKindEMIPayment TransactionKind = "emi_payment"
)

// TransactionKinds lists every supported kind in display order.
var TransactionKinds = []TransactionKind{
	TransactionKindIncome,
	TransactionKindExpense,
	TransactionKindBorrow,
	TransactionKindLend,
	TransactionKindInvestment,
	TransactionKindEMIPayment,
}

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	for _, known := range TransactionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsDebt reports whether the kind tracks money owed to or by a counterparty.
func (k TransactionKind) IsDebt() bool {
	return k == TransactionKindBorrow || k == TransactionKindLend
}

// IsInflow reports whether the kind adds to the user's cash flow.
func (k TransactionKind) IsInflow() bool {
	return k == TransactionKindIncome
}

// IsOutflow reports whether the kind takes from the user's cash flow.
func (k TransactionKind) IsOutflow() bool {
	return k == TransactionKindExpense ||
		k == TransactionKindInvestment ||
		k == TransactionKindEMIPayment
}

// DebtStatus is the lifecycle flag carried by borrow/lend records only.
type DebtStatus string

const (
	DebtStatusNone    DebtStatus = ""
	DebtStatusPending DebtStatus = "pending"
	DebtStatusSettled DebtStatus = "settled"
)

// Transaction represents a dated financial record.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Always non-negative; the kind carries the direction
	Kind        TransactionKind
	Category    string
	Status      DebtStatus // Only meaningful for debt kinds
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	kind TransactionKind,
	category string,
) *Transaction {
	now := time.Now().UTC()

	t := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Kind:        kind,
		Category:    strings.TrimSpace(category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if kind.IsDebt() {
		t.Status = DebtStatusPending
	}
	return t
}

// Validate enforces the per-kind field rules. Debt records without a status
// default to pending.
func (t *Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return domainerror.ErrInvalidTransactionKind
	}
	if t.Amount.IsNegative() {
		return domainerror.ErrInvalidTransactionAmount
	}
	if t.Date.IsZero() {
		return domainerror.ErrInvalidTransactionDate
	}

	if !t.Kind.IsDebt() {
		if t.Status != DebtStatusNone {
			return domainerror.ErrStatusOnNonDebt
		}
		return nil
	}

	switch t.Status {
	case DebtStatusNone:
		t.Status = DebtStatusPending
	case DebtStatusPending, DebtStatusSettled:
	default:
		return domainerror.ErrInvalidDebtStatus
	}
	return nil
}

// IsSettled reports whether a debt record has been cleared.
func (t Transaction) IsSettled() bool {
	return t.Status == DebtStatusSettled
}

// Settle marks a debt record as settled.
func (t *Transaction) Settle(at time.Time) error {
	if !t.Kind.IsDebt() {
		return domainerror.ErrStatusOnNonDebt
	}
	t.Status = DebtStatusSettled
	t.UpdatedAt = at
	return nil
}

// RecordDate implements aggregation.Record.
func (t Transaction) RecordDate() time.Time { return t.Date }

// RecordMeasure implements aggregation.Record.
func (t Transaction) RecordMeasure() decimal.Decimal { return t.Amount }

// RecordCategory implements aggregation.Record.
func (t Transaction) RecordCategory() string { return t.Category }

// RecordKind implements aggregation.Record.
func (t Transaction) RecordKind() string { return string(t.Kind) }
