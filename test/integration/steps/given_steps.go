package steps

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/domain/state"
	"github.com/life-planner/backend/internal/integration/adapters"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

const tokenLifetime = 15 * time.Minute

func (t *testContext) signToken(email string, key []byte, expiresAt time.Time) (string, error) {
	userID, ok := t.users[email]
	if !ok {
		userID = uuid.New()
		t.users[email] = userID
	}
	t.currentUserID = userID

	now := t.timeMock.Now()
	claims := &adapters.IdentityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func (t *testContext) iAmAuthenticatedAs(email string) error {
	token, err := t.signToken(email, []byte(testJWTSecret), t.timeMock.Now().Add(tokenLifetime))
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) currentEmail() (string, error) {
	for email, id := range t.users {
		if id == t.currentUserID {
			return email, nil
		}
	}
	return "", fmt.Errorf("no authenticated user")
}

func (t *testContext) myTokenHasExpired() error {
	email, err := t.currentEmail()
	if err != nil {
		return err
	}
	token, err := t.signToken(email, []byte(testJWTSecret), t.timeMock.Now().Add(-time.Minute))
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) myTokenIsSignedWithAnotherKey() error {
	email, err := t.currentEmail()
	if err != nil {
		return err
	}
	token, err := t.signToken(email, []byte("some-other-secret"), t.timeMock.Now().Add(tokenLifetime))
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(current)
	return nil
}

// theFollowingTransactionsExist seeds rows straight into the store for the
// current user. Columns: date, description, amount, kind and optionally
// category and status. Cells may use request placeholders such as {{today}}.
func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if t.currentUserID == uuid.Nil {
		return fmt.Errorf("seeding transactions requires an authenticated user")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table has no rows")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	now := model.Timestamp(t.timeMock.Now())
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i]] = t.replaceTokenPlaceholders(cell.Value)
		}

		date, err := state.ParseDate(values["date"])
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", values["date"], err)
		}
		amount, err := decimal.NewFromString(values["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", values["amount"], err)
		}

		kind := entity.TransactionKind(values["kind"])
		status := values["status"]
		if status == "" && kind.IsDebt() {
			status = string(entity.DebtStatusPending)
		}

		transaction := &model.TransactionModel{
			ID:          uuid.New(),
			UserID:      t.currentUserID,
			Date:        date,
			Description: values["description"],
			Amount:      amount,
			Kind:        string(kind),
			Category:    values["category"],
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.db.DbConn.Create(transaction).Error; err != nil {
			return err
		}
		t.lastTransactionID = transaction.ID
		t.transactionIDs = append(t.transactionIDs, transaction.ID)
	}
	return nil
}

func (t *testContext) aHabitExistsInCategory(name, category string) error {
	if t.currentUserID == uuid.Nil {
		return fmt.Errorf("seeding habits requires an authenticated user")
	}

	now := model.Timestamp(t.timeMock.Now())
	habit := &model.HabitModel{
		ID:        uuid.New(),
		UserID:    t.currentUserID,
		Name:      name,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(habit).Error; err != nil {
		return err
	}
	t.lastHabitID = habit.ID
	return nil
}
