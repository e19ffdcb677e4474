package syntax

import (
	"errors"
	"fmt"
)

// ConstructError represents a fatal construction failure: the node is never
// created. Construction failures are single-attempt; there are no retry
// semantics.
//
// Fatal conditions are:
//   - Unknown argument kind or instruction category
//   - Function argument constructed without an argument sequence
//   - Value argument constructed without a literal payload
//   - flow/clamp instruction constructed without arguments
//   - A custom Validator rejecting a name or argument sequence
type ConstructError struct {
	// Code identifies the violated invariant.
	Code ConstructErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending field or tag, when known.
	Field string

	// Err is the underlying validator error, if any.
	Err error
}

// ConstructErrorCode categorizes fatal construction failures.
type ConstructErrorCode string

const (
	// ErrCodeUnknownArgKind indicates an unrecognized argument kind tag.
	ErrCodeUnknownArgKind ConstructErrorCode = "UNKNOWN_ARG_KIND"

	// ErrCodeUnknownCategory indicates an unrecognized instruction category tag.
	ErrCodeUnknownCategory ConstructErrorCode = "UNKNOWN_CATEGORY"

	// ErrCodeArgsRequired indicates a missing argument sequence where one
	// is mandatory. An empty but non-nil sequence satisfies the requirement.
	ErrCodeArgsRequired ConstructErrorCode = "ARGS_REQUIRED"

	// ErrCodeValueRequired indicates a value argument without a literal payload.
	ErrCodeValueRequired ConstructErrorCode = "VALUE_REQUIRED"

	// ErrCodeNameRejected indicates the Validator rejected an identifier.
	ErrCodeNameRejected ConstructErrorCode = "NAME_REJECTED"

	// ErrCodeArgsRejected indicates the Validator rejected an argument sequence.
	ErrCodeArgsRejected ConstructErrorCode = "ARGS_REJECTED"
)

// Error implements the error interface.
func (e *ConstructError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying validator error, if any.
func (e *ConstructError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ConstructErrorCode from an error.
// Returns the empty code if the error is not a ConstructError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ConstructErrorCode {
	var ce *ConstructError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsArgsRequired reports whether err is a missing-argument-sequence failure.
func IsArgsRequired(err error) bool {
	return CodeOf(err) == ErrCodeArgsRequired
}

// IsValueRequired reports whether err is a missing-literal failure.
func IsValueRequired(err error) bool {
	return CodeOf(err) == ErrCodeValueRequired
}

func newUnknownArgKind(kind ArgKind) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeUnknownArgKind,
		Message: fmt.Sprintf("unknown arg kind %q", string(kind)),
		Field:   "argKind",
	}
}

func newUnknownCategory(category Category) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeUnknownCategory,
		Message: fmt.Sprintf("unknown category %q", string(category)),
		Field:   "category",
	}
}

func newArgsRequired(field string) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeArgsRequired,
		Message: "arguments required",
		Field:   field,
	}
}

func newValueRequired() *ConstructError {
	return &ConstructError{
		Code:    ErrCodeValueRequired,
		Message: "value required",
		Field:   "value",
	}
}

func newNameRejected(name string, err error) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeNameRejected,
		Message: fmt.Sprintf("name %q rejected by validator", name),
		Field:   "name",
		Err:     err,
	}
}

func newArgsRejected(err error) *ConstructError {
	return &ConstructError{
		Code:    ErrCodeArgsRejected,
		Message: "argument sequence rejected by validator",
		Field:   "args",
		Err:     err,
	}
}
