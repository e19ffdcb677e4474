package syntax

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStartStack(t *testing.T) Stack {
	t.Helper()
	start, _, err := Builder{}.Start(InstructionSpec{Name: "start", Child: buildChild(t)})
	require.NoError(t, err)
	return Stack{start}
}

func TestDefaultRegistryIdentity(t *testing.T) {
	t.Cleanup(Default().Reset)

	first := Default()
	second := Default()
	assert.Same(t, first, second)

	// A stack registered through one reference is visible through any other.
	first.AppendStartStack(buildStartStack(t))
	assert.Len(t, second.StartStacks(), 1)
}

func TestRegistryStartsEmpty(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.StartStacks())
	assert.Empty(t, r.ActionStacks())
}

func TestRegistryIsolation(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.AppendStartStack(buildStartStack(t))

	assert.Len(t, a.StartStacks(), 1)
	assert.Empty(t, b.StartStacks())
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistryWithGenerator(NewFixedGenerator("s-1", "s-2", "a-1"))

	first := buildStartStack(t)
	second := buildStartStack(t)
	require.Equal(t, StackToken("s-1"), r.AppendStartStack(first))
	require.Equal(t, StackToken("s-2"), r.AppendStartStack(second))
	require.Equal(t, StackToken("a-1"), r.AppendActionStack(buildStartStack(t)))

	starts := r.StartStacks()
	require.Len(t, starts, 2)
	assert.Equal(t, first, starts[0])
	assert.Equal(t, second, starts[1])
	assert.Len(t, r.ActionStacks(), 1)
}

func TestRegistryStackLookup(t *testing.T) {
	r := NewRegistryWithGenerator(NewFixedGenerator("s-1", "a-1"))

	start := buildStartStack(t)
	startTok := r.AppendStartStack(start)
	actionTok := r.AppendActionStack(buildStartStack(t))

	got, ok := r.Stack(startTok)
	require.True(t, ok)
	assert.Equal(t, start, got)

	_, ok = r.Stack(actionTok)
	assert.True(t, ok)

	_, ok = r.Stack("missing")
	assert.False(t, ok)
}

func TestRegistryCopySemantics(t *testing.T) {
	r := NewRegistry()

	stack := buildStartStack(t)
	r.AppendStartStack(stack)

	// Caller mutation of the appended slice does not reach the registry.
	stack[0] = nil
	require.NotNil(t, r.StartStacks()[0][0])

	// Mutation of a read snapshot does not reach the registry either.
	snap := r.StartStacks()
	snap[0] = nil
	assert.NotNil(t, r.StartStacks()[0])
}

func TestRegistryUUIDTokens(t *testing.T) {
	r := NewRegistry()

	tok1 := r.AppendStartStack(buildStartStack(t))
	tok2 := r.AppendStartStack(buildStartStack(t))

	assert.NotEmpty(t, tok1)
	assert.NotEqual(t, tok1, tok2)
}

func TestRegistryConcurrentAppend(t *testing.T) {
	r := NewRegistry()
	stack := buildStartStack(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.AppendActionStack(stack)
		}()
	}
	wg.Wait()

	assert.Len(t, r.ActionStacks(), 16)
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.AppendStartStack(buildStartStack(t))
	r.AppendActionStack(buildStartStack(t))

	r.Reset()

	assert.Empty(t, r.StartStacks())
	assert.Empty(t, r.ActionStacks())
}
