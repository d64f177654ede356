package errors

import (
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes. The clinical codes mirror the engine taxonomy:
// invalid input, unknown lookup key, and the terminal-ladder condition,
// all recoverable by the caller.
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrInvalidInput
	ErrUnknownCondition
	ErrDrugNotFound
	ErrTerminalLadder
	ErrConflict
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func InvalidInput(message string, err error) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: message,
		Err:     err,
	}
}

func UnknownCondition(condition string, err error) *AppError {
	return &AppError{
		Code:    ErrUnknownCondition,
		Message: fmt.Sprintf("unknown condition: %s", condition),
		Err:     err,
	}
}

func DrugNotFound(drug string, err error) *AppError {
	return &AppError{
		Code:    ErrDrugNotFound,
		Message: fmt.Sprintf("drug not found: %s", drug),
		Err:     err,
	}
}

// TerminalLadder marks escalation past the last defined therapy line. A
// normal terminal condition: the caller handles it by offering referral.
func TerminalLadder(condition string, err error) *AppError {
	return &AppError{
		Code:    ErrTerminalLadder,
		Message: fmt.Sprintf("escalation ladder exhausted for %s", condition),
		Err:     err,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}
