package syntax

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildArgs(t *testing.T) []Arg {
	t.Helper()
	arg, _, err := Builder{}.ValueArg("number", ArgSpec{Name: "times", Value: Number(4)})
	require.NoError(t, err)
	return []Arg{arg}
}

func buildChild(t *testing.T) Stack {
	t.Helper()
	instr, _, err := Builder{}.FlowNoArgs(InstructionSpec{Name: "break"})
	require.NoError(t, err)
	return Stack{instr}
}

// TestCategoryShapeMatrix drives every category with both optional fields
// supplied and checks that the constructed node holds exactly the fields
// its category allows, with the rest discarded.
func TestCategoryShapeMatrix(t *testing.T) {
	tests := []struct {
		category  Category
		wantArgs  bool
		wantChild bool
		wantDiags []DiagnosticCode
	}{
		{CategoryStart, false, true, []DiagnosticCode{DiagNameCoerced, DiagArgsDiscarded}},
		{CategoryAction, true, true, []DiagnosticCode{DiagNameCoerced}},
		{CategoryFlow, true, false, []DiagnosticCode{DiagChildDiscarded}},
		{CategoryFlowNoArgs, false, false, []DiagnosticCode{DiagArgsDiscarded, DiagChildDiscarded}},
		{CategoryClamp, true, true, nil},
		{CategoryClampNoArgs, false, true, []DiagnosticCode{DiagArgsDiscarded}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			instr, diags, err := Builder{}.NewInstruction(tt.category, InstructionSpec{
				Name:  "repeat",
				Args:  buildArgs(t),
				Child: buildChild(t),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.category, instr.Category())

			if tt.wantArgs {
				assert.NotNil(t, instr.Args())
				assert.Contains(t, instr.Props(), "args")
			} else {
				assert.Nil(t, instr.Args())
				assert.NotContains(t, instr.Props(), "args")
			}
			if tt.wantChild {
				assert.NotNil(t, instr.Child())
				assert.Contains(t, instr.Props(), "childStack")
			} else {
				assert.Nil(t, instr.Child())
				assert.NotContains(t, instr.Props(), "childStack")
			}

			codes := make([]DiagnosticCode, 0, len(diags))
			for _, d := range diags {
				codes = append(codes, d.Code)
			}
			assert.ElementsMatch(t, tt.wantDiags, codes)
		})
	}
}

func TestStartCoercesName(t *testing.T) {
	instr, diags, err := Builder{}.Start(InstructionSpec{Name: "begin", Child: Stack{}})

	require.NoError(t, err)
	assert.Equal(t, "start", instr.Name())
	require.Len(t, diags, 1)
	assert.Equal(t, DiagNameCoerced, diags[0].Code)
}

func TestStartAcceptsOwnName(t *testing.T) {
	instr, diags, err := Builder{}.Start(InstructionSpec{Name: "start", Child: Stack{}})

	require.NoError(t, err)
	assert.Equal(t, "start", instr.Name())
	assert.Empty(t, diags)
}

func TestActionDefaultsChild(t *testing.T) {
	instr, diags, err := Builder{}.Action(InstructionSpec{Name: "action", Args: buildArgs(t)})

	require.NoError(t, err)
	require.NotNil(t, instr.Child())
	assert.Empty(t, instr.Child())
	require.Len(t, diags, 1)
	assert.Equal(t, DiagChildDefaulted, diags[0].Code)
}

func TestFlowNoArgsIgnoresExtraFields(t *testing.T) {
	instr, _, err := Builder{}.NewInstruction(CategoryFlowNoArgs, InstructionSpec{
		Name:  "break",
		Args:  buildArgs(t),
		Child: buildChild(t),
	})

	require.NoError(t, err)
	assert.Nil(t, instr.Args())
	assert.Nil(t, instr.Child())
	assert.Equal(t, Props{"instruction": "break"}, instr.Props())
}

func TestMissingRequiredArgsIsFatal(t *testing.T) {
	tests := []struct {
		category Category
	}{
		{CategoryAction},
		{CategoryFlow},
		{CategoryClamp},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			instr, diags, err := Builder{}.NewInstruction(tt.category, InstructionSpec{Name: "repeat"})
			require.Error(t, err)
			assert.Nil(t, instr)
			assert.Empty(t, diags)
			assert.True(t, IsArgsRequired(err))
		})
	}
}

func TestEmptyArgsSequenceSatisfiesRequirement(t *testing.T) {
	instr, _, err := Builder{}.Flow(InstructionSpec{Name: "rest", Args: []Arg{}})

	require.NoError(t, err)
	assert.NotNil(t, instr.Args())
	assert.Empty(t, instr.Args())
}

func TestUnknownCategoryIsFatal(t *testing.T) {
	instr, diags, err := Builder{}.NewInstruction("block", InstructionSpec{Name: "x"})

	require.Error(t, err)
	assert.Nil(t, instr)
	assert.Empty(t, diags)
	assert.Equal(t, ErrCodeUnknownCategory, CodeOf(err))
}

func TestValidatorGatesInstructionNames(t *testing.T) {
	sentinel := fmt.Errorf("not a flow instruction")
	b := Builder{Validator: errValidator{err: sentinel}}

	for _, category := range []Category{CategoryFlow, CategoryFlowNoArgs, CategoryClamp, CategoryClampNoArgs} {
		t.Run(string(category), func(t *testing.T) {
			instr, _, err := b.NewInstruction(category, InstructionSpec{Name: "bogus", Args: []Arg{}})
			require.Error(t, err)
			assert.Nil(t, instr)
			assert.Equal(t, ErrCodeNameRejected, CodeOf(err))
		})
	}
}

func TestNestedClamp(t *testing.T) {
	inner := buildChild(t)
	clamp, _, err := Builder{}.Clamp(InstructionSpec{Name: "repeat", Args: buildArgs(t), Child: inner})
	require.NoError(t, err)

	outer, _, err := Builder{}.Clamp(InstructionSpec{
		Name:  "repeat",
		Args:  buildArgs(t),
		Child: Stack{clamp},
	})
	require.NoError(t, err)

	require.Len(t, outer.Child(), 1)
	nested, ok := outer.Child()[0].(*ClampInstruction)
	require.True(t, ok)
	assert.Equal(t, inner, nested.Child())
}

func TestInstructionPropsRoundTrip(t *testing.T) {
	mk := func(category Category, spec InstructionSpec) Instruction {
		instr, _, err := Builder{}.NewInstruction(category, spec)
		require.NoError(t, err)
		return instr
	}

	tests := []struct {
		name string
		node Instruction
	}{
		{"start", mk(CategoryStart, InstructionSpec{Name: "start", Child: buildChild(t)})},
		{"action", mk(CategoryAction, InstructionSpec{Name: "action", Args: buildArgs(t), Child: Stack{}})},
		{"flow", mk(CategoryFlow, InstructionSpec{Name: "setdrum", Args: buildArgs(t)})},
		{"flow-no-args", mk(CategoryFlowNoArgs, InstructionSpec{Name: "break"})},
		{"clamp", mk(CategoryClamp, InstructionSpec{Name: "repeat", Args: buildArgs(t), Child: buildChild(t)})},
		{"clamp-no-args", mk(CategoryClampNoArgs, InstructionSpec{Name: "settimbre", Child: buildChild(t)})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := tt.node.Props()
			spec := InstructionSpec{Name: props["instruction"].(string)}
			if args, ok := props["args"].([]Arg); ok {
				spec.Args = args
			}
			if child, ok := props["childStack"].(Stack); ok {
				spec.Child = child
			}

			rebuilt, diags, err := Builder{}.NewInstruction(tt.node.Category(), spec)
			require.NoError(t, err)
			assert.Empty(t, diags)
			assert.Equal(t, props, rebuilt.Props())
		})
	}
}
