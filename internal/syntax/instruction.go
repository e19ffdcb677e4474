package syntax

import "slices"

// Category tags the instruction variants for tag-driven construction.
type Category string

const (
	// CategoryStart marks a program entry instruction: no arguments, a child
	// stack. The instruction name is the fixed literal "start".
	CategoryStart Category = "start"

	// CategoryAction marks an independently-triggered flow head: arguments
	// and a child stack. The instruction name is the fixed literal "action".
	CategoryAction Category = "action"

	// CategoryFlow marks an instruction with arguments and no child stack.
	CategoryFlow Category = "flow"

	// CategoryFlowNoArgs marks an instruction with neither arguments nor a
	// child stack.
	CategoryFlowNoArgs Category = "flow-no-args"

	// CategoryClamp marks a container instruction: arguments and a child
	// stack wrapping a sub-program.
	CategoryClamp Category = "clamp"

	// CategoryClampNoArgs marks a container instruction without arguments.
	CategoryClampNoArgs Category = "clamp-no-args"
)

// Stack is an ordered sequence of instructions forming one flow.
type Stack []Instruction

// Instruction is a sealed interface over the six instruction variants.
//
// Presence of the argument sequence and the child stack is a pure function
// of the variant: Args is nil exactly for the variants that forbid
// arguments, and Child is nil exactly for the variants that forbid a child
// stack. No other combination is constructible.
type Instruction interface {
	instruction() // sealed

	// Category returns the variant tag.
	Category() Category

	// Name returns the instruction identifier.
	Name() string

	// Args returns the argument sequence, or nil when the variant forbids
	// arguments. A returned sequence must not be modified by the caller.
	Args() []Arg

	// Child returns the nested child stack, or nil when the variant forbids
	// one. Variants that hold a child stack always return a non-nil stack,
	// possibly empty.
	Child() Stack

	// Props exposes the node state with absent fields omitted.
	Props() Props
}

// instrProps assembles the exposed state shared by all variants.
func instrProps(name string, args []Arg, child Stack) Props {
	p := Props{"instruction": name}
	if args != nil {
		p["args"] = args
	}
	if child != nil {
		p["childStack"] = child
	}
	return p
}

// StartInstruction is a program entry point. Its name is always "start" and
// it carries only a child stack.
type StartInstruction struct {
	child Stack
}

func (*StartInstruction) instruction() {}

// Category returns CategoryStart.
func (*StartInstruction) Category() Category { return CategoryStart }

// Name returns the fixed literal "start".
func (*StartInstruction) Name() string { return string(CategoryStart) }

// Args returns nil: start instructions never carry arguments.
func (*StartInstruction) Args() []Arg { return nil }

// Child returns the nested stack. Never nil.
func (i *StartInstruction) Child() Stack { return i.child }

// Props exposes {instruction, childStack}.
func (i *StartInstruction) Props() Props { return instrProps(i.Name(), nil, i.child) }

// ActionInstruction heads an independently-triggered flow. Its name is
// always "action" and it carries arguments and a child stack.
type ActionInstruction struct {
	args  []Arg
	child Stack
}

func (*ActionInstruction) instruction() {}

// Category returns CategoryAction.
func (*ActionInstruction) Category() Category { return CategoryAction }

// Name returns the fixed literal "action".
func (*ActionInstruction) Name() string { return string(CategoryAction) }

// Args returns the argument sequence. Never nil.
func (i *ActionInstruction) Args() []Arg { return i.args }

// Child returns the nested stack. Never nil.
func (i *ActionInstruction) Child() Stack { return i.child }

// Props exposes {instruction, args, childStack}.
func (i *ActionInstruction) Props() Props { return instrProps(i.Name(), i.args, i.child) }

// FlowInstruction is a statement with arguments and no nested stack.
type FlowInstruction struct {
	name string
	args []Arg
}

func (*FlowInstruction) instruction() {}

// Category returns CategoryFlow.
func (*FlowInstruction) Category() Category { return CategoryFlow }

// Name returns the instruction identifier.
func (i *FlowInstruction) Name() string { return i.name }

// Args returns the argument sequence. Never nil.
func (i *FlowInstruction) Args() []Arg { return i.args }

// Child returns nil: flow instructions never nest a stack.
func (*FlowInstruction) Child() Stack { return nil }

// Props exposes {instruction, args}.
func (i *FlowInstruction) Props() Props { return instrProps(i.name, i.args, nil) }

// FlowNoArgsInstruction is a bare statement: no arguments, no nested stack.
type FlowNoArgsInstruction struct {
	name string
}

func (*FlowNoArgsInstruction) instruction() {}

// Category returns CategoryFlowNoArgs.
func (*FlowNoArgsInstruction) Category() Category { return CategoryFlowNoArgs }

// Name returns the instruction identifier.
func (i *FlowNoArgsInstruction) Name() string { return i.name }

// Args returns nil.
func (*FlowNoArgsInstruction) Args() []Arg { return nil }

// Child returns nil.
func (*FlowNoArgsInstruction) Child() Stack { return nil }

// Props exposes {instruction}.
func (i *FlowNoArgsInstruction) Props() Props { return instrProps(i.name, nil, nil) }

// ClampInstruction wraps a nested stack and carries arguments, the shape of
// loops and conditionals.
type ClampInstruction struct {
	name  string
	args  []Arg
	child Stack
}

func (*ClampInstruction) instruction() {}

// Category returns CategoryClamp.
func (*ClampInstruction) Category() Category { return CategoryClamp }

// Name returns the instruction identifier.
func (i *ClampInstruction) Name() string { return i.name }

// Args returns the argument sequence. Never nil.
func (i *ClampInstruction) Args() []Arg { return i.args }

// Child returns the nested stack. Never nil.
func (i *ClampInstruction) Child() Stack { return i.child }

// Props exposes {instruction, args, childStack}.
func (i *ClampInstruction) Props() Props { return instrProps(i.name, i.args, i.child) }

// ClampNoArgsInstruction wraps a nested stack without arguments.
type ClampNoArgsInstruction struct {
	name  string
	child Stack
}

func (*ClampNoArgsInstruction) instruction() {}

// Category returns CategoryClampNoArgs.
func (*ClampNoArgsInstruction) Category() Category { return CategoryClampNoArgs }

// Name returns the instruction identifier.
func (i *ClampNoArgsInstruction) Name() string { return i.name }

// Args returns nil.
func (*ClampNoArgsInstruction) Args() []Arg { return nil }

// Child returns the nested stack. Never nil.
func (i *ClampNoArgsInstruction) Child() Stack { return i.child }

// Props exposes {instruction, childStack}.
func (i *ClampNoArgsInstruction) Props() Props { return instrProps(i.name, nil, i.child) }

// InstructionSpec carries the caller-supplied fields for instruction
// construction. Args and Child distinguish absent (nil) from present: an
// empty but non-nil Args sequence satisfies an argument requirement.
type InstructionSpec struct {
	Name  string
	Args  []Arg
	Child Stack
}

// NewInstruction constructs an instruction from a category tag. External
// builders that hold string tags use this entry point; code that knows the
// variant statically should call the typed constructor directly. An unknown
// category is a fatal error.
func (b Builder) NewInstruction(category Category, spec InstructionSpec) (Instruction, []Diagnostic, error) {
	switch category {
	case CategoryStart:
		return b.Start(spec)
	case CategoryAction:
		return b.Action(spec)
	case CategoryFlow:
		return b.Flow(spec)
	case CategoryFlowNoArgs:
		return b.FlowNoArgs(spec)
	case CategoryClamp:
		return b.Clamp(spec)
	case CategoryClampNoArgs:
		return b.ClampNoArgs(spec)
	default:
		return nil, nil, newUnknownCategory(category)
	}
}

// Start constructs a start instruction.
//
// Arguments are forbidden and discarded with a diagnostic. A missing child
// stack defaults to an empty stack with a diagnostic. A name other than
// "start" is replaced with a diagnostic.
func (b Builder) Start(spec InstructionSpec) (*StartInstruction, []Diagnostic, error) {
	diags := coerceNameDiags(spec.Name, CategoryStart)
	diags = discardArgsDiags(diags, spec, CategoryStart)
	child, diags := defaultedChild(diags, spec.Child, string(CategoryStart))
	return &StartInstruction{child: child}, diags, nil
}

// Action constructs an action instruction.
//
// Arguments are required: a nil sequence is a fatal ARGS_REQUIRED error. A
// missing child stack defaults to an empty stack with a diagnostic. A name
// other than "action" is replaced with a diagnostic.
func (b Builder) Action(spec InstructionSpec) (*ActionInstruction, []Diagnostic, error) {
	diags := coerceNameDiags(spec.Name, CategoryAction)
	args, err := b.requiredArgs(spec)
	if err != nil {
		return nil, nil, err
	}
	child, diags := defaultedChild(diags, spec.Child, string(CategoryAction))
	return &ActionInstruction{args: args, child: child}, diags, nil
}

// Flow constructs a flow instruction.
//
// Arguments are required: a nil sequence is a fatal ARGS_REQUIRED error. A
// child stack is forbidden and discarded with a diagnostic.
func (b Builder) Flow(spec InstructionSpec) (*FlowInstruction, []Diagnostic, error) {
	if err := b.validator().ValidateInstructionName(CategoryFlow, spec.Name); err != nil {
		return nil, nil, newNameRejected(spec.Name, err)
	}
	args, err := b.requiredArgs(spec)
	if err != nil {
		return nil, nil, err
	}
	var diags []Diagnostic
	if spec.Child != nil {
		diags = append(diags, diagChildDiscarded(spec.Name))
	}
	return &FlowInstruction{name: spec.Name, args: args}, diags, nil
}

// FlowNoArgs constructs a bare flow instruction.
//
// Both arguments and a child stack are forbidden; either is discarded with
// a diagnostic.
func (b Builder) FlowNoArgs(spec InstructionSpec) (*FlowNoArgsInstruction, []Diagnostic, error) {
	if err := b.validator().ValidateInstructionName(CategoryFlowNoArgs, spec.Name); err != nil {
		return nil, nil, newNameRejected(spec.Name, err)
	}
	var diags []Diagnostic
	if spec.Args != nil {
		diags = append(diags, diagArgsDiscarded(spec.Name))
	}
	if spec.Child != nil {
		diags = append(diags, diagChildDiscarded(spec.Name))
	}
	return &FlowNoArgsInstruction{name: spec.Name}, diags, nil
}

// Clamp constructs a clamp instruction.
//
// Arguments are required: a nil sequence is a fatal ARGS_REQUIRED error. A
// missing child stack defaults to an empty stack with a diagnostic.
func (b Builder) Clamp(spec InstructionSpec) (*ClampInstruction, []Diagnostic, error) {
	if err := b.validator().ValidateInstructionName(CategoryClamp, spec.Name); err != nil {
		return nil, nil, newNameRejected(spec.Name, err)
	}
	args, err := b.requiredArgs(spec)
	if err != nil {
		return nil, nil, err
	}
	child, diags := defaultedChild(nil, spec.Child, spec.Name)
	return &ClampInstruction{name: spec.Name, args: args, child: child}, diags, nil
}

// ClampNoArgs constructs a clamp instruction without arguments.
//
// Arguments are forbidden and discarded with a diagnostic. A missing child
// stack defaults to an empty stack with a diagnostic.
func (b Builder) ClampNoArgs(spec InstructionSpec) (*ClampNoArgsInstruction, []Diagnostic, error) {
	if err := b.validator().ValidateInstructionName(CategoryClampNoArgs, spec.Name); err != nil {
		return nil, nil, newNameRejected(spec.Name, err)
	}
	var diags []Diagnostic
	if spec.Args != nil {
		diags = append(diags, diagArgsDiscarded(spec.Name))
	}
	child, diags := defaultedChild(diags, spec.Child, spec.Name)
	return &ClampNoArgsInstruction{name: spec.Name, child: child}, diags, nil
}

// requiredArgs validates and copies a mandatory argument sequence.
// An empty non-nil sequence is accepted; only nil fails.
func (b Builder) requiredArgs(spec InstructionSpec) ([]Arg, error) {
	if spec.Args == nil {
		return nil, newArgsRequired("args")
	}
	if err := b.validator().ValidateArgs(spec.Args); err != nil {
		return nil, newArgsRejected(err)
	}
	return slices.Clone(spec.Args), nil
}

// coerceNameDiags reports the name mismatch for the fixed-name categories.
// The coerced value is the category literal itself; the given name is only
// echoed in the diagnostic.
func coerceNameDiags(given string, category Category) []Diagnostic {
	if given != "" && given != string(category) {
		return []Diagnostic{diagNameCoerced(given, category)}
	}
	return nil
}

// discardArgsDiags reports an argument sequence supplied to an argument-free
// fixed-name category.
func discardArgsDiags(diags []Diagnostic, spec InstructionSpec, category Category) []Diagnostic {
	if spec.Args != nil {
		diags = append(diags, diagArgsDiscarded(string(category)))
	}
	return diags
}

// defaultedChild clones a supplied child stack or defaults a missing one to
// an empty stack with a diagnostic.
func defaultedChild(diags []Diagnostic, child Stack, name string) (Stack, []Diagnostic) {
	if child == nil {
		return Stack{}, append(diags, diagChildDefaulted(name))
	}
	return slices.Clone(child), diags
}
