package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrMailItemNotFound indicates the mail item was not found
	ErrMailItemNotFound = errors.New("mail item not found")

	// ErrEmployeeNotFound indicates the employee was not found
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrNotificationNotFound indicates the notification was not found
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrValidation indicates a missing or malformed field at creation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates the target status is not a legal
	// successor of the item's current status
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidQuery indicates a malformed search filter
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrDuplicateEntry indicates a unique constraint violation
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates forbidden access
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidQuery      = "INVALID_QUERY"
	CodeDuplicateEntry    = "DUPLICATE_ENTRY"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// NewValidationError creates an AppError for a missing or malformed field
func NewValidationError(field, reason string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("%s %s", field, reason),
		Code:    CodeValidation,
	}
}

// NewInvalidTransitionError creates an AppError describing an illegal
// lifecycle transition for a mail item
func NewInvalidTransitionError(itemID, from, target string) *AppError {
	return &AppError{
		Err:     ErrInvalidTransition,
		Message: fmt.Sprintf("mail item %s cannot transition from '%s' to '%s'", itemID, from, target),
		Code:    CodeInvalidTransition,
	}
}

// NewInvalidQueryError creates an AppError for a malformed search filter
func NewInvalidQueryError(reason string) *AppError {
	return &AppError{
		Err:     ErrInvalidQuery,
		Message: reason,
		Code:    CodeInvalidQuery,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMailItemNotFound) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidTransition checks if the error is an invalid transition error
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsInvalidQuery checks if the error is an invalid query error
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

// IsDuplicateEntry checks if the error is a duplicate entry error
func IsDuplicateEntry(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}

	switch {
	case IsNotFound(err):
		return CodeNotFound
	case IsValidation(err):
		return CodeValidation
	case IsInvalidTransition(err):
		return CodeInvalidTransition
	case IsInvalidQuery(err):
		return CodeInvalidQuery
	case IsDuplicateEntry(err):
		return CodeDuplicateEntry
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternalError
	}
}
