package svtests

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit
// code 2: missing directories, unreadable tag databases, bad flags.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// ReportError represents a failure to produce the final report artifacts
// (exit code 1): render or export errors, insufficient merged data.
type ReportError struct {
	Err error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError
func NewReportError(err error) *ReportError {
	return &ReportError{Err: err}
}

// IsReportError checks if the error is or wraps a ReportError
func IsReportError(err error) bool {
	var reportErr *ReportError
	return err != nil && errors.As(err, &reportErr)
}
