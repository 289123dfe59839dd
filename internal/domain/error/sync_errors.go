// Package error defines domain-specific errors for the Life Planner application.
package error

import "errors"

// Sync domain errors.
var (
	// ErrInvalidDeltaOp is returned when a delta operation is unknown.
	ErrInvalidDeltaOp = errors.New("op must be: upsert or delete")

	// ErrInvalidDeltaKind is returned when a delta targets an unknown record kind.
	ErrInvalidDeltaKind = errors.New("kind must be: transaction, habit, habit_completion or goal")

	// ErrInvalidDeltaPayload is returned when an upsert payload cannot be decoded.
	ErrInvalidDeltaPayload = errors.New("invalid delta payload")

	// ErrMissingDeltaTimestamp is returned when a delta has no updated_at.
	ErrMissingDeltaTimestamp = errors.New("updated_at is required")

	// ErrDeltaRecordMismatch is returned when the payload id differs from the delta record id.
	ErrDeltaRecordMismatch = errors.New("payload id does not match record_id")

	// ErrEmptyDeltaBatch is returned when a push contains no deltas.
	ErrEmptyDeltaBatch = errors.New("deltas list cannot be empty")

	// ErrDeltaBatchTooLarge is returned when a push exceeds the batch limit.
	ErrDeltaBatchTooLarge = errors.New("too many deltas in one push")

	// ErrStaleDelta is returned when a delta is older than the stored record.
	ErrStaleDelta = errors.New("delta is older than the stored record")

	// ErrQueueUnavailable is returned when the delta queue cannot be reached.
	ErrQueueUnavailable = errors.New("delta queue unavailable")
)

// SyncErrorCode defines error codes for sync errors.
// Format: SYN-XXYYYY where XX is category and YYYY is specific error.
type SyncErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDeltaOp        SyncErrorCode = "SYN-010001"
	ErrCodeInvalidDeltaKind      SyncErrorCode = "SYN-010002"
	ErrCodeInvalidDeltaPayload   SyncErrorCode = "SYN-010003"
	ErrCodeMissingDeltaTimestamp SyncErrorCode = "SYN-010004"
	ErrCodeDeltaRecordMismatch   SyncErrorCode = "SYN-010005"
	ErrCodeEmptyDeltaBatch       SyncErrorCode = "SYN-010006"
	ErrCodeDeltaBatchTooLarge    SyncErrorCode = "SYN-010007"

	// Conflict errors (02XXXX)
	ErrCodeStaleDelta SyncErrorCode = "SYN-020001"

	// Infrastructure errors (03XXXX)
	ErrCodeQueueUnavailable SyncErrorCode = "SYN-030001"
)

// SyncError represents a sync error with code and message.
type SyncError struct {
	Code    SyncErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError with the given code and message.
func NewSyncError(code SyncErrorCode, message string, err error) *SyncError {
	return &SyncError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// SyncErrorFromValidation maps a delta validation sentinel to a coded error.
func SyncErrorFromValidation(err error) *SyncError {
	switch {
	case errors.Is(err, ErrInvalidDeltaOp):
		return NewSyncError(ErrCodeInvalidDeltaOp, ErrInvalidDeltaOp.Error(), err)
	case errors.Is(err, ErrInvalidDeltaKind):
		return NewSyncError(ErrCodeInvalidDeltaKind, ErrInvalidDeltaKind.Error(), err)
	case errors.Is(err, ErrMissingDeltaTimestamp):
		return NewSyncError(ErrCodeMissingDeltaTimestamp, ErrMissingDeltaTimestamp.Error(), err)
	case errors.Is(err, ErrDeltaRecordMismatch):
		return NewSyncError(ErrCodeDeltaRecordMismatch, ErrDeltaRecordMismatch.Error(), err)
	default:
		return NewSyncError(ErrCodeInvalidDeltaPayload, "invalid delta payload", err)
	}
}
