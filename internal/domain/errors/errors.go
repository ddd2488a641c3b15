// Package errors defines the application error taxonomy: each error carries
// an HTTP status, a stable business code and a user-facing message.
package errors

import (
	"net/http"

	"frishta/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Registration validation errors. Deterministic: the caller can fix the
	// input and resubmit.
	ErrMissingFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_FIELDS",
		"Missing fields",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Invalid role",
		"",
	)

	ErrInvalidGender = NewBaseError(
		http.StatusBadRequest,
		"INVALID_GENDER",
		"Invalid gender",
		"",
	)

	ErrInvalidAge = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AGE",
		"Invalid age",
		"",
	)

	ErrInvalidPhone = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PHONE",
		"Invalid phone number",
		"",
	)

	ErrMissingCountryState = NewBaseError(
		http.StatusBadRequest,
		"MISSING_COUNTRY_STATE",
		"Country and state are required",
		"",
	)

	ErrInvalidCategory = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CATEGORY",
		"One or more categories are invalid",
		"",
	)

	ErrCategoryCount = NewBaseError(
		http.StatusBadRequest,
		"CATEGORY_COUNT",
		"Please select exactly 3 categories",
		"",
	)

	ErrDuplicateCategories = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_CATEGORIES",
		"Duplicate categories are not allowed",
		"",
	)

	// Conflict errors
	ErrAlreadyRegistered = NewBaseError(
		http.StatusConflict,
		"ALREADY_REGISTERED",
		"Email already registered",
		"",
	)

	ErrAlreadyVerified = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_VERIFIED",
		"Email is already verified",
		"",
	)

	// Not-found errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// OTP errors
	ErrOtpInvalid = NewBaseError(
		http.StatusBadRequest,
		"OTP_INVALID",
		"Invalid OTP",
		"",
	)

	ErrOtpInvalidOrExpired = NewBaseError(
		http.StatusBadRequest,
		"OTP_INVALID_OR_EXPIRED",
		"OTP not found or expired",
		"",
	)

	ErrTooManyAttempts = NewBaseError(
		http.StatusTooManyRequests,
		"TOO_MANY_ATTEMPTS",
		"Too many attempts",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrEmailNotVerified = NewBaseError(
		http.StatusForbidden,
		"EMAIL_NOT_VERIFIED",
		"Email not verified",
		"",
	)

	ErrInvalidSession = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_SESSION",
		"Invalid session",
		"",
	)

	// Dependency errors. Store failures are fatal to the request and are
	// surfaced with a generic message only.
	ErrDatabase = NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		"Server error",
		"",
	)
)

// NewDatabaseExecuteError wraps a raw database error behind the generic
// server-error message so no storage detail leaks to the caller.
func NewDatabaseExecuteError(err error, details string) *BaseError {
	return ErrDatabase.WithDetails(details + ": " + err.Error())
}
