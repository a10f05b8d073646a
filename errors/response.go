package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON body sent to clients for every failed request.
// The body is intentionally flat: it carries the code and nothing else, so
// distinct internal failure modes stay indistinguishable on the wire.
type ErrorResponse struct {
	Error ErrorCode `json:"error"`
}

// ToResponse converts an AppError to its wire representation.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Code}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
