package syntax

// Validator is the injectable capability for semantic validity rules.
// The structural rules (which fields a variant may hold) are always enforced
// by construction itself; a Validator decides whether the *content* of a node
// is acceptable: identifier validity, argument-shape rules, and which
// instruction names are legal for a category.
//
// Permissive is the default. A rejecting Validator surfaces its error to the
// caller as a fatal ConstructError (NAME_REJECTED or ARGS_REJECTED) wrapping
// the validator's error; the node is never created.
type Validator interface {
	// ValidateArgName checks an argument or function identifier.
	ValidateArgName(name string) error

	// ValidateArgs checks an argument sequence before it is accepted into a
	// function argument or an instruction.
	ValidateArgs(args []Arg) error

	// ValidateInstructionName checks an instruction identifier against its
	// category. Called for the flow and clamp categories; start and action
	// names are fixed literals and bypass the check.
	ValidateInstructionName(category Category, name string) error
}

// Permissive is the default Validator. It accepts everything.
type Permissive struct{}

// ValidateArgName accepts any name.
func (Permissive) ValidateArgName(string) error { return nil }

// ValidateArgs accepts any sequence.
func (Permissive) ValidateArgs([]Arg) error { return nil }

// ValidateInstructionName accepts any name for any category.
func (Permissive) ValidateInstructionName(Category, string) error { return nil }
