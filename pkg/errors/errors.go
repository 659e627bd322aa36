package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodePersistence   ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeNotification  ErrorCode = "NOTIFICATION_ERROR"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the error code of err, or ErrCodeInternalError when err is
// not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool {
	return is(err, ErrCodeNotFound)
}

// IsConflict checks if error is Conflict
func IsConflict(err error) bool {
	return is(err, ErrCodeConflict)
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return is(err, ErrCodeUnauthorized)
}

// IsValidation checks if error is a validation error
func IsValidation(err error) bool {
	return is(err, ErrCodeValidation)
}

// IsPersistence checks if error is a persistence error
func IsPersistence(err error) bool {
	return is(err, ErrCodePersistence)
}

// IsNotification checks if error is a notification error
func IsNotification(err error) bool {
	return is(err, ErrCodeNotification)
}
