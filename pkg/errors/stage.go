package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrorCode represents a classified pipeline stage failure.
type ErrorCode string

const (
	CodeParse         ErrorCode = "parse_error"
	CodeConfiguration ErrorCode = "configuration_error"
	CodeIO            ErrorCode = "io_error"
	CodePublish       ErrorCode = "publish_error"
	CodeCancelled     ErrorCode = "context_cancelled"
	CodeProcessing    ErrorCode = "processing_error"
)

// StageError is a structured error for a failed pipeline stage.
type StageError struct {
	Code    ErrorCode
	Stage   string
	Message string
	Cause   error
}

func (e *StageError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// ClassifyError inspects an error and returns a *StageError with the appropriate code.
// If the error doesn't match any known pattern, it returns a StageError with CodeProcessing.
func ClassifyError(err error, stage string) *StageError {
	if err == nil {
		return nil
	}

	var existing *StageError
	if errors.As(err, &existing) {
		return existing
	}

	se := &StageError{
		Stage:   stage,
		Message: err.Error(),
		Cause:   err,
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		se.Code = CodeCancelled
		se.Message = "operation cancelled"
	case errors.Is(err, ErrConfiguration):
		se.Code = CodeConfiguration
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		se.Code = CodeIO
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrValidation):
		se.Code = CodeParse
	default:
		lower := strings.ToLower(err.Error())
		switch {
		case strings.Contains(lower, "connection refused"), strings.Contains(lower, "publish"):
			se.Code = CodePublish
		case strings.Contains(lower, "token too long"):
			se.Code = CodeParse
		default:
			se.Code = CodeProcessing
		}
	}

	return se
}

// CodeOf returns the classified code of err, or "" when err is not a StageError.
func CodeOf(err error) ErrorCode {
	var se *StageError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
