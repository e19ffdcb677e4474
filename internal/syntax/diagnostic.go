package syntax

import "fmt"

// Diagnostic reports a recoverable input problem tolerated during
// construction. Diagnostics are returned alongside the constructed node and
// are purely informational: construction proceeds with the documented
// corrected or defaulted value, and a diagnostic never escalates to a
// fatal error.
type Diagnostic struct {
	// Code identifies the tolerated condition.
	Code DiagnosticCode `json:"code"`

	// Field names the affected field.
	Field string `json:"field"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// DiagnosticCode categorizes tolerated construction conditions.
type DiagnosticCode string

const (
	// DiagValueDiscarded indicates a literal supplied to a function argument
	// was dropped.
	DiagValueDiscarded DiagnosticCode = "VALUE_DISCARDED"

	// DiagArgsDiscarded indicates an argument sequence supplied where the
	// variant forbids one was dropped.
	DiagArgsDiscarded DiagnosticCode = "ARGS_DISCARDED"

	// DiagChildDiscarded indicates a child stack supplied where the variant
	// forbids one was dropped.
	DiagChildDiscarded DiagnosticCode = "CHILD_DISCARDED"

	// DiagChildDefaulted indicates a missing child stack was defaulted to an
	// empty stack.
	DiagChildDefaulted DiagnosticCode = "CHILD_DEFAULTED"

	// DiagNameCoerced indicates a start/action instruction name was replaced
	// by the fixed category literal.
	DiagNameCoerced DiagnosticCode = "NAME_COERCED"
)

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Field, d.Message)
}

func diagValueDiscarded(name string) Diagnostic {
	return Diagnostic{
		Code:    DiagValueDiscarded,
		Field:   "value",
		Message: fmt.Sprintf("literal value ignored for function argument %q", name),
	}
}

func diagArgsDiscarded(name string) Diagnostic {
	return Diagnostic{
		Code:    DiagArgsDiscarded,
		Field:   "args",
		Message: fmt.Sprintf("argument sequence ignored for %q", name),
	}
}

func diagChildDiscarded(name string) Diagnostic {
	return Diagnostic{
		Code:    DiagChildDiscarded,
		Field:   "childStack",
		Message: fmt.Sprintf("child stack ignored for %q", name),
	}
}

func diagChildDefaulted(name string) Diagnostic {
	return Diagnostic{
		Code:    DiagChildDefaulted,
		Field:   "childStack",
		Message: fmt.Sprintf("missing child stack for %q defaulted to an empty stack", name),
	}
}

func diagNameCoerced(given string, category Category) Diagnostic {
	return Diagnostic{
		Code:    DiagNameCoerced,
		Field:   "instruction",
		Message: fmt.Sprintf("instruction name %q replaced by %q", given, string(category)),
	}
}
