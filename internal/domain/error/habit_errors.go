// Package error defines domain-specific errors for the Life Planner application.
package error

import "errors"

// Habit domain errors.
var (
	// ErrHabitNotFound is returned when a habit is not found in the system.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrHabitCompletionNotFound is returned when a habit has no entry for a day.
	ErrHabitCompletionNotFound = errors.New("habit entry not found")

	// ErrHabitNameRequired is returned when a habit has no name.
	ErrHabitNameRequired = errors.New("habit name is required")

	// ErrInvalidCompletionDate is returned when a completion has no date.
	ErrInvalidCompletionDate = errors.New("invalid completion date")

	// ErrNotAuthorizedToModifyHabit is returned when the habit belongs to another user.
	ErrNotAuthorizedToModifyHabit = errors.New("not authorized to modify habit")
)

// HabitErrorCode defines error codes for habit errors.
// Format: HAB-XXYYYY where XX is category and YYYY is specific error.
type HabitErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeHabitNotFound         HabitErrorCode = "HAB-010001"
	ErrCodeHabitNameRequired     HabitErrorCode = "HAB-010002"
	ErrCodeInvalidCompletionDate HabitErrorCode = "HAB-010003"
	ErrCodeNotAuthorizedHabit    HabitErrorCode = "HAB-010004"
	ErrCodeMissingHabitFields    HabitErrorCode = "HAB-010005"
)

// HabitError represents a habit error with code and message.
type HabitError struct {
	Code    HabitErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HabitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HabitError) Unwrap() error {
	return e.Err
}

// NewHabitError creates a new HabitError with the given code and message.
func NewHabitError(code HabitErrorCode, message string, err error) *HabitError {
	return &HabitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
