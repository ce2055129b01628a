package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrConflict
	ErrParse
	ErrEmptyMessage
	ErrNoRecipients
	ErrDispatchFailure
	ErrSendInProgress
)

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

// StatusCode maps an application error code to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrParse, ErrEmptyMessage, ErrNoRecipients:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict, ErrSendInProgress:
		return http.StatusConflict
	case ErrDispatchFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

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

func NewUnauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// NewParseError reports a malformed spreadsheet. Ingestion is aborted and no
// partial collection is produced.
func NewParseError(err error) *AppError {
	return &AppError{
		Code:    ErrParse,
		Message: fmt.Sprintf("failed to parse spreadsheet: %v", err),
	}
}

func NewEmptyMessage() *AppError {
	return &AppError{
		Code:    ErrEmptyMessage,
		Message: "message must not be empty",
	}
}

func NewNoRecipients() *AppError {
	return &AppError{
		Code:    ErrNoRecipients,
		Message: "at least one contact must be selected",
	}
}

func NewDispatchFailure(err error) *AppError {
	return &AppError{
		Code:    ErrDispatchFailure,
		Message: "failed to deliver messages",
		Err:     err,
	}
}

func NewSendInProgress() *AppError {
	return &AppError{
		Code:    ErrSendInProgress,
		Message: "a send is already in progress",
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
