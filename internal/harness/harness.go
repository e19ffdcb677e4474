package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/stave/internal/syntax"
)

// Result captures the outcome of running a scenario: one entry per case,
// in order. Results marshal to deterministic JSON for golden comparison.
type Result struct {
	ScenarioName string       `json:"scenario_name"`
	Cases        []CaseResult `json:"cases"`
}

// CaseResult captures one construction case.
type CaseResult struct {
	Name string `json:"name"`

	// Error is the fatal ConstructErrorCode, empty on success.
	Error string `json:"error,omitempty"`

	// Diagnostics lists emitted diagnostics bottom-up as "path: CODE"
	// entries (bare "CODE" for the root node).
	Diagnostics []string `json:"diagnostics,omitempty"`

	// Props is the rendered props tree of the constructed node.
	Props map[string]any `json:"props,omitempty"`

	// Token is the registry stack token when the case registered its node.
	Token string `json:"token,omitempty"`
}

// Run executes a scenario against a fresh registry with deterministic stack
// tokens and verifies each case's expectations. An expectation mismatch is
// returned as an error naming the case.
func Run(scenario *Scenario) (*Result, error) {
	registry := syntax.NewRegistryWithGenerator(caseTokens(scenario))
	builder := syntax.Builder{}

	result := &Result{ScenarioName: scenario.Name}
	for _, c := range scenario.Cases {
		cr, err := runCase(builder, registry, c)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		result.Cases = append(result.Cases, *cr)
	}
	return result, nil
}

// caseTokens builds a fixed token generator with one deterministic token
// per registering case.
func caseTokens(scenario *Scenario) *syntax.FixedGenerator {
	var tokens []syntax.StackToken
	for i, c := range scenario.Cases {
		if c.Register != "" {
			tokens = append(tokens, syntax.StackToken(fmt.Sprintf("stack-%d", i+1)))
		}
	}
	return syntax.NewFixedGenerator(tokens...)
}

func runCase(builder syntax.Builder, registry *syntax.Registry, c Case) (*CaseResult, error) {
	cr := &CaseResult{Name: c.Name}

	instr, diags, err := buildInstruction(builder, c.Instruction, "")
	if err != nil {
		code := string(syntax.CodeOf(err))
		if c.Expect == nil || c.Expect.Error == "" {
			return nil, fmt.Errorf("unexpected fatal error: %w", err)
		}
		if c.Expect.Error != code {
			return nil, fmt.Errorf("expected error %s, got %s", c.Expect.Error, code)
		}
		cr.Error = code
		return cr, nil
	}
	if c.Expect != nil && c.Expect.Error != "" {
		return nil, fmt.Errorf("expected error %s, construction succeeded", c.Expect.Error)
	}

	cr.Diagnostics = diags
	cr.Props = renderProps(instr.Props())

	if c.Expect != nil {
		if err := matchDiagnostics(c.Expect.Diagnostics, diags); err != nil {
			return nil, err
		}
	}

	switch c.Register {
	case "start":
		cr.Token = string(registry.AppendStartStack(syntax.Stack{instr}))
	case "action":
		cr.Token = string(registry.AppendActionStack(syntax.Stack{instr}))
	}
	return cr, nil
}

// buildInstruction constructs an instruction tree bottom-up, collecting
// nested diagnostics with their tree path.
func buildInstruction(builder syntax.Builder, ic InstructionCase, path string) (syntax.Instruction, []string, error) {
	var diags []string

	var args []syntax.Arg
	if ic.Args != nil {
		args = make([]syntax.Arg, 0, len(ic.Args))
		for i, ac := range ic.Args {
			arg, argDiags, err := buildArg(builder, ac, childPath(path, "args", i))
			if err != nil {
				return nil, nil, err
			}
			diags = append(diags, argDiags...)
			args = append(args, arg)
		}
	}

	var child syntax.Stack
	if ic.ChildStack != nil {
		child = make(syntax.Stack, 0, len(ic.ChildStack))
		for i, cc := range ic.ChildStack {
			nested, nestedDiags, err := buildInstruction(builder, cc, childPath(path, "childStack", i))
			if err != nil {
				return nil, nil, err
			}
			diags = append(diags, nestedDiags...)
			child = append(child, nested)
		}
	}

	instr, ownDiags, err := builder.NewInstruction(syntax.Category(ic.Category), syntax.InstructionSpec{
		Name:  ic.Instruction,
		Args:  args,
		Child: child,
	})
	if err != nil {
		return nil, nil, err
	}
	for _, d := range ownDiags {
		diags = append(diags, diagEntry(path, d))
	}
	return instr, diags, nil
}

// buildArg constructs an argument tree bottom-up.
func buildArg(builder syntax.Builder, ac ArgCase, path string) (syntax.Arg, []string, error) {
	var diags []string

	var args []syntax.Arg
	if ac.Args != nil {
		args = make([]syntax.Arg, 0, len(ac.Args))
		for i, sub := range ac.Args {
			nested, nestedDiags, err := buildArg(builder, sub, childPath(path, "args", i))
			if err != nil {
				return nil, nil, err
			}
			diags = append(diags, nestedDiags...)
			args = append(args, nested)
		}
	}

	arg, ownDiags, err := builder.NewArg(syntax.ArgKind(ac.Kind), syntax.ReturnKind(ac.Returns), syntax.ArgSpec{
		Name:  ac.Name,
		Args:  args,
		Value: ac.Value.Value(),
	})
	if err != nil {
		return nil, nil, err
	}
	for _, d := range ownDiags {
		diags = append(diags, diagEntry(path, d))
	}
	return arg, diags, nil
}

func childPath(path, field string, i int) string {
	if path == "" {
		return fmt.Sprintf("%s[%d]", field, i)
	}
	return fmt.Sprintf("%s.%s[%d]", path, field, i)
}

func diagEntry(path string, d syntax.Diagnostic) string {
	if path == "" {
		return string(d.Code)
	}
	return fmt.Sprintf("%s: %s", path, d.Code)
}

// matchDiagnostics compares expected entries against emitted ones, in
// order. A bare code matches any path; a "path: CODE" entry matches
// exactly.
func matchDiagnostics(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected %d diagnostics %v, got %d %v", len(want), want, len(got), got)
	}
	for i, w := range want {
		g := got[i]
		if strings.Contains(w, ": ") {
			if w != g {
				return fmt.Errorf("diagnostic %d: expected %q, got %q", i, w, g)
			}
			continue
		}
		code := g
		if idx := strings.LastIndex(g, ": "); idx >= 0 {
			code = g[idx+2:]
		}
		if w != code {
			return fmt.Errorf("diagnostic %d: expected code %q, got %q", i, w, g)
		}
	}
	return nil
}

// renderProps converts a props map into a JSON-safe tree.
func renderProps(p syntax.Props) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		switch val := v.(type) {
		case string:
			out[k] = val
		case []syntax.Arg:
			list := make([]any, len(val))
			for i, a := range val {
				list[i] = renderProps(a.Props())
			}
			out[k] = list
		case syntax.Stack:
			list := make([]any, len(val))
			for i, instr := range val {
				list[i] = renderProps(instr.Props())
			}
			out[k] = list
		case syntax.Value:
			out[k] = renderValue(val)
		default:
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

func renderValue(v syntax.Value) any {
	switch val := v.(type) {
	case syntax.String:
		return string(val)
	case syntax.Number:
		return float64(val)
	case syntax.Bool:
		return bool(val)
	default:
		return syntax.FormatValue(v)
	}
}
