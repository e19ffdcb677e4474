package syntax

import "slices"

// ArgKind tags the two argument variants for tag-driven construction.
type ArgKind string

const (
	// ArgKindFunction marks a computed argument with ordered sub-arguments.
	ArgKindFunction ArgKind = "function"

	// ArgKindValue marks a literal argument.
	ArgKindValue ArgKind = "value"
)

// ReturnKind classifies what type of result an argument yields. The domain
// of valid kinds is defined by the consumer; this package treats it as an
// opaque tag.
type ReturnKind string

// Props is the exposed state of a node. Keys for fields the node does not
// hold are omitted entirely, never present with a nil value, so the exposed
// shape mirrors the populated-field invariant.
type Props map[string]any

// Arg is a sealed interface over the two argument variants.
// Only *FuncArg and *ValueArg implement it.
//
// Exactly one payload is populated per variant: a FuncArg holds an argument
// sequence (possibly empty, never nil) and no literal; a ValueArg holds a
// literal and no argument sequence.
type Arg interface {
	arg() // sealed

	// Kind returns the variant tag.
	Kind() ArgKind

	// Name returns the argument identifier.
	Name() string

	// Returns returns the result classification tag.
	Returns() ReturnKind

	// Props exposes the node state with absent fields omitted.
	Props() Props
}

// FuncArg is a computed argument: a function identifier applied to an
// ordered sequence of sub-arguments.
type FuncArg struct {
	name    string
	returns ReturnKind
	args    []Arg
}

func (*FuncArg) arg() {}

// Kind returns ArgKindFunction.
func (*FuncArg) Kind() ArgKind { return ArgKindFunction }

// Name returns the function identifier.
func (a *FuncArg) Name() string { return a.name }

// Returns returns the result classification tag.
func (a *FuncArg) Returns() ReturnKind { return a.returns }

// Args returns the ordered sub-argument sequence. It is never nil, may be
// empty, and must not be modified by the caller.
func (a *FuncArg) Args() []Arg { return a.args }

// Props exposes {argName, args}. The args key is always present because a
// constructed FuncArg always holds a sequence.
func (a *FuncArg) Props() Props {
	return Props{"argName": a.name, "args": a.args}
}

// ValueArg is a literal argument.
type ValueArg struct {
	name    string
	returns ReturnKind
	val     Value
}

func (*ValueArg) arg() {}

// Kind returns ArgKindValue.
func (*ValueArg) Kind() ArgKind { return ArgKindValue }

// Name returns the argument identifier.
func (a *ValueArg) Name() string { return a.name }

// Returns returns the result classification tag.
func (a *ValueArg) Returns() ReturnKind { return a.returns }

// Value returns the literal payload. It is never nil.
func (a *ValueArg) Value() Value { return a.val }

// Props exposes {argName, value}. The value key is always present because a
// constructed ValueArg always holds a literal.
func (a *ValueArg) Props() Props {
	return Props{"argName": a.name, "value": a.val}
}

// ArgSpec carries the caller-supplied fields for argument construction.
// Args and Value distinguish absent (nil) from present: an empty but
// non-nil Args sequence satisfies the function-argument requirement.
type ArgSpec struct {
	Name  string
	Args  []Arg
	Value Value
}

// Builder constructs syntax nodes. The zero value uses the Permissive
// validator; callers inject semantic rules by setting Validator.
type Builder struct {
	Validator Validator
}

func (b Builder) validator() Validator {
	if b.Validator == nil {
		return Permissive{}
	}
	return b.Validator
}

// NewArg constructs an argument from a variant tag. External builders that
// hold string tags (a block serializer, a front end) use this entry point;
// code that knows the variant statically should call FuncArg or ValueArg
// directly. An unknown kind is a fatal error.
func (b Builder) NewArg(kind ArgKind, returns ReturnKind, spec ArgSpec) (Arg, []Diagnostic, error) {
	switch kind {
	case ArgKindFunction:
		return b.FuncArg(returns, spec)
	case ArgKindValue:
		return b.ValueArg(returns, spec)
	default:
		return nil, nil, newUnknownArgKind(kind)
	}
}

// FuncArg constructs a computed argument.
//
// spec.Args is required: a nil sequence is a fatal ARGS_REQUIRED error,
// while an empty non-nil sequence is accepted. A literal supplied in
// spec.Value is discarded with a diagnostic.
func (b Builder) FuncArg(returns ReturnKind, spec ArgSpec) (*FuncArg, []Diagnostic, error) {
	v := b.validator()
	if err := v.ValidateArgName(spec.Name); err != nil {
		return nil, nil, newNameRejected(spec.Name, err)
	}
	if spec.Args == nil {
		return nil, nil, newArgsRequired("args")
	}
	if err := v.ValidateArgs(spec.Args); err != nil {
		return nil, nil, newArgsRejected(err)
	}

	var diags []Diagnostic
	if spec.Value != nil {
		diags = append(diags, diagValueDiscarded(spec.Name))
	}

	return &FuncArg{
		name:    spec.Name,
		returns: returns,
		args:    slices.Clone(spec.Args),
	}, diags, nil
}

// ValueArg constructs a literal argument.
//
// spec.Value is required: a nil literal is a fatal VALUE_REQUIRED error.
// An argument sequence supplied in spec.Args is discarded with a diagnostic.
func (b Builder) ValueArg(returns ReturnKind, spec ArgSpec) (*ValueArg, []Diagnostic, error) {
	if err := b.validator().ValidateArgName(spec.Name); err != nil {
		return nil, nil, newNameRejected(spec.Name, err)
	}
	if spec.Value == nil {
		return nil, nil, newValueRequired()
	}

	var diags []Diagnostic
	if spec.Args != nil {
		diags = append(diags, diagArgsDiscarded(spec.Name))
	}

	return &ValueArg{
		name:    spec.Name,
		returns: returns,
		val:     spec.Value,
	}, diags, nil
}
