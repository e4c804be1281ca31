package errors

import "fmt"

// ErrorCode represents a strata error code.
type ErrorCode string

const (
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"   // 400: prompt text missing or blank
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400: bad parameters
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for missing or blank prompt text.
// This is the only fatal condition around the pipeline; everything else
// degrades into defaults and a low confidence score.
func NewInvalidInput(msg string) *Error {
	return &Error{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a record cannot be found.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("record not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *Error {
	return &Error{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a strata Error with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*Error); ok {
		return sErr.Code == code
	}
	return false
}
