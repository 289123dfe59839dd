// Package error defines domain-specific errors for the Life Planner application.
package error

import "errors"

// Analytics domain errors. These only come from parsing a window at the API
// boundary; the aggregation itself never fails.
var (
	// ErrInvalidWindowMode is returned when mode is neither month nor year.
	ErrInvalidWindowMode = errors.New("mode must be: month or year")

	// ErrInvalidMonth is returned when the month is not a canonical month name.
	ErrInvalidMonth = errors.New("month must be a full English month name")

	// ErrMissingMonth is returned when month mode is requested without a month.
	ErrMissingMonth = errors.New("month is required in month mode")

	// ErrInvalidYear is returned when the year is not a four-digit number.
	ErrInvalidYear = errors.New("year must be a four-digit number")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWindowMode AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidMonth      AnalyticsErrorCode = "ANL-010002"
	ErrCodeMissingMonth      AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidYear       AnalyticsErrorCode = "ANL-010004"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
