// Package error defines domain-specific errors for the Life Planner application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionKind is returned when the transaction kind is unknown.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrStatusOnNonDebt is returned when a settlement status is set on a non-debt record.
	ErrStatusOnNonDebt = errors.New("status is only allowed on borrow and lend records")

	// ErrInvalidDebtStatus is returned when a debt status is unknown.
	ErrInvalidDebtStatus = errors.New("invalid debt status")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrEmptyTransactionIDs is returned when a bulk operation has no transaction IDs.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionKind   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeStatusOnNonDebt          TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidDebtStatus        TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeEmptyTransactionIDs      TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"

	// Internal errors (99XXXX)
	ErrCodeTransactionInternalError TransactionErrorCode = "TXN-990001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// TransactionErrorFromValidation maps an entity validation sentinel to a coded error.
func TransactionErrorFromValidation(err error) *TransactionError {
	switch {
	case errors.Is(err, ErrInvalidTransactionKind):
		return NewTransactionError(ErrCodeInvalidTransactionKind,
			"kind must be one of: income, expense, borrow, lend, investment, emi_payment", err)
	case errors.Is(err, ErrInvalidTransactionAmount):
		return NewTransactionError(ErrCodeInvalidTransactionAmount, "amount must not be negative", err)
	case errors.Is(err, ErrInvalidTransactionDate):
		return NewTransactionError(ErrCodeInvalidTransactionDate, "date is required", err)
	case errors.Is(err, ErrStatusOnNonDebt):
		return NewTransactionError(ErrCodeStatusOnNonDebt, "status is only allowed on borrow and lend records", err)
	case errors.Is(err, ErrInvalidDebtStatus):
		return NewTransactionError(ErrCodeInvalidDebtStatus, "status must be pending or settled", err)
	default:
		return NewTransactionError(ErrCodeMissingTransactionFields, "invalid transaction", err)
	}
}
