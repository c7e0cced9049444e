package errors

import (
	"net/http"

	"lapak/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// FieldError is implemented by errors that attach to a specific input field
// instead of a generic form-level message.
type FieldError interface {
	AppError
	Field() string
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	field     string
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

// Field returns the input field this error attaches to, empty for form-level errors
func (e *BaseError) Field() string {
	return e.field
}

// Is matches by business error code so detail-annotated clones still compare
// equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	base, ok := target.(*BaseError)

	return ok && e.errorCode == base.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	clone := *e
	clone.details = details

	return &clone
}

// WithField binds the error to a specific input field
func (e *BaseError) WithField(field string) *BaseError {
	clone := *e
	clone.field = field

	return &clone
}

// Predefined error types
var (
	// Validation-related errors; resolved locally, never reach the store
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Authorization-related errors; abort before any side effect
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"you do not have permission to perform this action",
		"",
	)

	ErrUserBlocked = NewBaseError(
		http.StatusForbidden,
		"USER_BLOCKED",
		"this account has been blocked",
		"",
	)

	// Entity lookup errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrRoomNotFound = NewBaseError(
		http.StatusNotFound,
		"CHAT_ROOM_NOT_FOUND",
		"chat room not found",
		"",
	)

	ErrReportNotFound = NewBaseError(
		http.StatusNotFound,
		"REPORT_NOT_FOUND",
		"report not found",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// Order state machine errors
	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_ORDER_TRANSITION",
		"order status transition not permitted",
		"",
	)

	ErrOrderNotAssigned = NewBaseError(
		http.StatusForbidden,
		"ORDER_NOT_ASSIGNED",
		"order is handled by another pengelola",
		"",
	)

	// Auth collaborator errors
	ErrReauthFailed = NewBaseError(
		http.StatusUnauthorized,
		"REAUTH_FAILED",
		"email or password is incorrect",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"invalid or expired token",
		"",
	)

	// EmailInUse is field-routed to the email input rather than a generic toast
	ErrEmailInUse = NewBaseError(
		http.StatusConflict,
		"EMAIL_IN_USE",
		"email already in use",
		"",
	).WithField("email")

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)
)

// StoreExecuteError represents a document store execution error, implementing
// the AppError interface. The backend-provided message surfaces verbatim as a
// transient notification; no automatic retry.
type StoreExecuteError struct {
	err     error
	details string
}

// NewStoreExecuteError creates a store-related error
func NewStoreExecuteError(err error, details string) AppError {
	return &StoreExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreExecuteError) Error() string {
	return errors.Wrap(e.err, "store execution failed").Error()
}

// Unwrap exposes the underlying store error
func (e *StoreExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreExecuteError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *StoreExecuteError) ErrorCode() string {
	return "STORE_EXECUTE_FAILED"
}

// Message returns the backend-provided error message verbatim
func (e *StoreExecuteError) Message() string {
	if e.err != nil {
		return e.err.Error()
	}

	return "store execution failed"
}

// Details returns detailed error information
func (e *StoreExecuteError) Details() string {
	return e.details
}
