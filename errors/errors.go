// Package errors provides the unified error type for the service.
// Every operation returns a typed outcome; edge handlers map the embedded
// HTTP status and code verbatim onto the response.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is the machine-readable error code sent to clients.
	Code ErrorCode `json:"code"`
	// Message is a human-readable description, used in logs only.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// --- Common Error Constructors ---

// InvalidPayload creates an AppError for a request body or parameter that
// fails validation.
func InvalidPayload(reason string) *AppError {
	if reason == "" {
		reason = "request payload is invalid"
	}
	return &AppError{
		Code: CodeInvalidPayload, Message: reason,
		HTTPStatus: http.StatusBadRequest,
	}
}

// EmailExists creates an AppError for a registration with an already-taken email.
func EmailExists() *AppError {
	return &AppError{
		Code: CodeEmailExists, Message: "an account with this email already exists",
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidCredentials creates an AppError for a failed login. The same error
// is returned for an unknown email and for a wrong password so that the
// response does not reveal which accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: CodeInvalidCredentials, Message: "invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Unauthorized creates an AppError for a request that failed the bearer-token
// gate. All gate failures share this single undifferentiated error.
func Unauthorized() *AppError {
	return &AppError{
		Code: CodeUnauthorized, Message: "authentication required",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound creates an AppError for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidID creates an AppError for a path id that cannot be parsed.
func InvalidID() *AppError {
	return &AppError{
		Code: CodeInvalidID, Message: "identifier is not valid",
		HTTPStatus: http.StatusBadRequest,
	}
}

// DBUnavailable creates an AppError for a store that is not connected or
// not configured.
func DBUnavailable() *AppError {
	return &AppError{
		Code: CodeDBUnavailable, Message: "database is not available",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// DBError creates an AppError for a store operation that failed unexpectedly.
func DBError(cause error) *AppError {
	return &AppError{
		Code: CodeDBError, Message: "database operation failed",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// AuthError creates an AppError for a token that could not be minted.
func AuthError(cause error) *AppError {
	return &AppError{
		Code: CodeAuthError, Message: "failed to issue session token",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// CatalogKeyMissing creates an AppError for a missing upstream catalog API key.
func CatalogKeyMissing() *AppError {
	return &AppError{
		Code: CodeCatalogKeyMissing, Message: "catalog API key is not configured",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// ExternalAPI creates an AppError for a failed upstream catalog call.
func ExternalAPI(cause error) *AppError {
	return &AppError{
		Code: CodeExternalAPI, Message: "upstream catalog request failed",
		HTTPStatus: http.StatusBadGateway, Cause: cause,
	}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: CodeInternal, Message: "an unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
