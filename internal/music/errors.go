package music

import (
	"errors"
	"fmt"
)

// PitchError reports a failed tuning or scale computation, such as a
// lookup of a note name that the temperament does not define.
type PitchError struct {
	// Code identifies the failure class.
	Code PitchErrorCode

	// Message is a human-readable description.
	Message string
}

// PitchErrorCode categorizes tuning and scale failures.
type PitchErrorCode string

const (
	// ErrCodeUnknownTemperament indicates an unrecognized temperament name.
	ErrCodeUnknownTemperament PitchErrorCode = "UNKNOWN_TEMPERAMENT"

	// ErrCodeUnknownKey indicates a key that no notation accepts.
	ErrCodeUnknownKey PitchErrorCode = "UNKNOWN_KEY"

	// ErrCodeUnknownMode indicates an unrecognized mode name.
	ErrCodeUnknownMode PitchErrorCode = "UNKNOWN_MODE"

	// ErrCodeInvalidMode indicates a malformed half-step pattern.
	ErrCodeInvalidMode PitchErrorCode = "INVALID_MODE"

	// ErrCodeInvalidInterval indicates a custom temperament interval
	// without a matching ratio.
	ErrCodeInvalidInterval PitchErrorCode = "INVALID_INTERVAL"

	// ErrCodeNoteNotFound indicates a pitch name that cannot be resolved
	// in the current temperament or scale.
	ErrCodeNoteNotFound PitchErrorCode = "NOTE_NOT_FOUND"

	// ErrCodeInvalidNoteNames indicates a note-name list whose length
	// does not match the scale or temperament.
	ErrCodeInvalidNoteNames PitchErrorCode = "INVALID_NOTE_NAMES"

	// ErrCodeInvalidAccidental indicates an accidental adjustment that
	// cannot be expressed in the target notation.
	ErrCodeInvalidAccidental PitchErrorCode = "INVALID_ACCIDENTAL"
)

// Error implements the error interface.
func (e *PitchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// PitchErrorCodeOf extracts the PitchErrorCode from an error.
// Returns the empty code if the error is not a PitchError.
func PitchErrorCodeOf(err error) PitchErrorCode {
	var pe *PitchError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsNoteNotFound reports whether err is a failed note lookup.
func IsNoteNotFound(err error) bool {
	return PitchErrorCodeOf(err) == ErrCodeNoteNotFound
}

func newUnknownTemperament(name string) *PitchError {
	return &PitchError{
		Code:    ErrCodeUnknownTemperament,
		Message: fmt.Sprintf("unknown temperament %q", name),
	}
}

func newUnknownKey(key string) *PitchError {
	return &PitchError{
		Code:    ErrCodeUnknownKey,
		Message: fmt.Sprintf("unknown key %q", key),
	}
}

func newUnknownMode(mode string) *PitchError {
	return &PitchError{
		Code:    ErrCodeUnknownMode,
		Message: fmt.Sprintf("unknown mode %q", mode),
	}
}

func newInvalidMode(msg string) *PitchError {
	return &PitchError{Code: ErrCodeInvalidMode, Message: msg}
}

func newInvalidInterval(interval string) *PitchError {
	return &PitchError{
		Code:    ErrCodeInvalidInterval,
		Message: fmt.Sprintf("no ratio defined for interval %q", interval),
	}
}

func newNoteNotFound(name string) *PitchError {
	return &PitchError{
		Code:    ErrCodeNoteNotFound,
		Message: fmt.Sprintf("note %q not found", name),
	}
}

func newInvalidNoteNames(msg string) *PitchError {
	return &PitchError{Code: ErrCodeInvalidNoteNames, Message: msg}
}

func newInvalidAccidental(delta int, name string) *PitchError {
	return &PitchError{
		Code:    ErrCodeInvalidAccidental,
		Message: fmt.Sprintf("cannot apply accidental offset %d to %q", delta, name),
	}
}
