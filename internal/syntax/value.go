package syntax

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface representing literal argument payloads.
// Only String, Number, and Bool implement it. A nil Value means the
// payload is absent; a constructed ValueArg never holds a nil Value.
type Value interface {
	value() // sealed
}

// String represents a string literal.
type String string

func (String) value() {}

// Number represents a numeric literal.
type Number float64

func (Number) value() {}

// Bool represents a boolean literal.
type Bool bool

func (Bool) value() {}

// FormatValue renders a literal for diagnostics and tooling output.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(val))
	default:
		return fmt.Sprintf("<unknown value %T>", v)
	}
}
