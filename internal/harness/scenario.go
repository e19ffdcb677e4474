// Package harness provides a data-driven conformance harness for the syntax
// core. Scenarios describe instruction trees as YAML, the harness constructs
// them through the public builder, and golden files capture the exposed
// props trees and diagnostics. Conformance cases live as data instead of
// hand-written construction code.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stave/internal/syntax"
)

// Scenario defines a conformance scenario: a list of construction cases
// executed against a fresh registry.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cases lists the construction cases, executed in order.
	Cases []Case `yaml:"cases"`
}

// Case describes one instruction tree to construct, with optional
// expectations about the outcome.
type Case struct {
	// Name identifies the case within the scenario.
	Name string `yaml:"name"`

	// Register optionally registers the constructed instruction as a
	// single-instruction stack: "start" or "action".
	Register string `yaml:"register,omitempty"`

	// Instruction is the root of the tree to construct.
	Instruction InstructionCase `yaml:"instruction"`

	// Expect holds outcome expectations. If nil, the case only has to
	// construct without a fatal error.
	Expect *Expect `yaml:"expect,omitempty"`
}

// InstructionCase describes one instruction node.
// A nil Args or ChildStack means the field is absent; an empty YAML
// sequence ([]) means present but empty, mirroring the builder contract.
type InstructionCase struct {
	Category    string            `yaml:"category"`
	Instruction string            `yaml:"instruction"`
	Args        []ArgCase         `yaml:"args,omitempty"`
	ChildStack  []InstructionCase `yaml:"childStack,omitempty"`
}

// ArgCase describes one argument node.
type ArgCase struct {
	Kind    string    `yaml:"kind"`
	Returns string    `yaml:"returns,omitempty"`
	Name    string    `yaml:"name"`
	Args    []ArgCase `yaml:"args,omitempty"`
	Value   *Literal  `yaml:"value,omitempty"`
}

// Literal is a YAML scalar decoded into a syntax literal value.
type Literal struct {
	val syntax.Value
}

// UnmarshalYAML decodes a scalar into the matching literal variant.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("literal must be a scalar, got kind %v", node.Kind)
	}
	switch node.Tag {
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		l.val = syntax.Number(f)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		l.val = syntax.Bool(b)
	case "!!str":
		l.val = syntax.String(node.Value)
	default:
		return fmt.Errorf("unsupported literal tag %q", node.Tag)
	}
	return nil
}

// Value returns the decoded literal, or nil for an absent one.
func (l *Literal) Value() syntax.Value {
	if l == nil {
		return nil
	}
	return l.val
}

// Expect specifies the expected construction outcome for a case.
type Expect struct {
	// Error is the expected fatal ConstructErrorCode. When set, the case
	// must fail with this code and produce no node.
	Error string `yaml:"error,omitempty"`

	// Diagnostics lists expected diagnostics in emission order. Each entry
	// is either a bare code ("CHILD_DEFAULTED") or "path: CODE"
	// ("args[0]: VALUE_DISCARDED") for an exact position match.
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected to catch typos; required fields are validated.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

var knownErrorCodes = map[string]bool{
	string(syntax.ErrCodeUnknownArgKind):  true,
	string(syntax.ErrCodeUnknownCategory): true,
	string(syntax.ErrCodeArgsRequired):    true,
	string(syntax.ErrCodeValueRequired):   true,
	string(syntax.ErrCodeNameRejected):    true,
	string(syntax.ErrCodeArgsRejected):    true,
}

// validateScenario checks required fields.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		switch c.Register {
		case "", "start", "action":
		default:
			return fmt.Errorf("cases[%d]: register must be \"start\" or \"action\", got %q", i, c.Register)
		}
		if c.Instruction.Category == "" {
			return fmt.Errorf("cases[%d]: instruction.category is required", i)
		}
		if c.Expect != nil && c.Expect.Error != "" && !knownErrorCodes[c.Expect.Error] {
			return fmt.Errorf("cases[%d]: unknown expected error code %q", i, c.Expect.Error)
		}
	}
	return nil
}
