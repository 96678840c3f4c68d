package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeSourceAccess   = "SOURCE_ACCESS"
	ErrCodeObjectNotFound = "OBJECT_NOT_FOUND"
	ErrCodeTimeout        = "TIMEOUT"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// SourceFailure classifies an error from fetching the managed-object graph.
func SourceFailure(err error) *CommonError {
	var common *CommonError
	if errors.As(err, &common) {
		return common
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrCodeTimeout, "UDisks2 did not answer in time", err)
	}

	if errors.Is(err, types.ErrSourceUnavailable) {
		return NewError(ErrCodeSourceAccess, "message bus unavailable", err)
	}
	return NewError(ErrCodeSourceAccess, "failed to read managed objects", err)
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var common *CommonError
	if !errors.As(err, &common) {
		return 1
	}
	switch common.Code {
	case ErrCodeInvalidInput:
		return 2
	case ErrCodeObjectNotFound:
		return 3
	case ErrCodeSourceAccess, ErrCodeTimeout:
		return 4
	default:
		return 1
	}
}
