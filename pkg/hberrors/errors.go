// Package hberrors provides structured error types for the floorplanner.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core tree, the anneal driver, and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - UNKNOWN_*: a referenced module/node/group is not registered
//   - INVALID_*: input validation failures (parser, config)
//   - INFEASIBLE_*: a structural constraint no longer holds after a perturbation
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := hberrors.New(hberrors.ErrCodeUnknownModule, "module %q not registered", name)
//	if hberrors.Is(err, hberrors.ErrCodeUnknownModule) {
//	    // reject the perturbation
//	}
package hberrors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Unknown-reference errors (§7: UnknownModule / UnknownNode / UnknownGroup).
	ErrCodeUnknownModule Code = "UNKNOWN_MODULE"
	ErrCodeUnknownNode   Code = "UNKNOWN_NODE"
	ErrCodeUnknownGroup  Code = "UNKNOWN_GROUP"

	// Structural-feasibility errors.
	ErrCodeInfeasibleSymmetry Code = "INFEASIBLE_SYMMETRY"
	ErrCodeEmptyTree          Code = "EMPTY_TREE"

	// Input validation errors.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain to the first *Error and compares that error's
// code; an *Error wrapped inside it is not consulted.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
