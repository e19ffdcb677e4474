package syntax

import (
	"sync"

	"github.com/google/uuid"
)

// StackToken identifies a registered stack.
type StackToken string

// StackTokenGenerator produces tokens for registered stacks.
type StackTokenGenerator interface {
	Generate() StackToken
}

// UUIDv7Generator generates time-sortable UUIDv7 stack tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so tokens sort by
// registration time, which is helpful when inspecting a registry.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 token.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() StackToken {
	return StackToken(uuid.Must(uuid.NewV7()).String())
}

// FixedGenerator returns predetermined stack tokens for testing.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal
// mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []StackToken
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
//
// Example:
//
//	gen := NewFixedGenerator("stack-1", "stack-2")
//	gen.Generate() // "stack-1"
//	gen.Generate() // "stack-2"
//	gen.Generate() // panic: all tokens exhausted
func NewFixedGenerator(tokens ...StackToken) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
// Panics if all tokens have been consumed, failing fast on test
// misconfiguration.
func (g *FixedGenerator) Generate() StackToken {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// registeredStack pairs a stack with its token.
type registeredStack struct {
	token StackToken
	stack Stack
}

// Registry is pure storage for the top-level stacks of a program: the
// ordered start stacks (program entry flows) and action stacks
// (independently-triggered flows). No validation happens here.
//
// Stacks are registered through the append operations and read back through
// copy-on-read accessors; the registry never hands out its backing storage.
// All operations are fenced by an internal mutex, so a registry is safe for
// concurrent use, though tree building is conventionally a single-writer
// pass.
//
// Most programs use the process-wide Default registry. NewRegistry creates
// an independent registry for callers that build multiple trees or need
// test isolation.
type Registry struct {
	mu     sync.Mutex
	tokens StackTokenGenerator
	start  []registeredStack
	action []registeredStack
}

// NewRegistry creates an empty caller-owned registry using UUIDv7 stack
// tokens.
func NewRegistry() *Registry {
	return NewRegistryWithGenerator(UUIDv7Generator{})
}

// NewRegistryWithGenerator creates an empty registry using the given token
// generator. Tests use this with a FixedGenerator for deterministic tokens.
func NewRegistryWithGenerator(gen StackTokenGenerator) *Registry {
	return &Registry{tokens: gen}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry. The first call creates it;
// every later call returns the same instance, so a stack registered through
// one reference is visible through any other.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// AppendStartStack registers a stack as a program entry flow and returns
// its token. The stack is copied in; later caller mutations of the slice do
// not affect the registry.
func (r *Registry) AppendStartStack(s Stack) StackToken {
	return r.append(&r.start, s)
}

// AppendActionStack registers a stack as an independently-triggered flow
// and returns its token.
func (r *Registry) AppendActionStack(s Stack) StackToken {
	return r.append(&r.action, s)
}

func (r *Registry) append(dst *[]registeredStack, s Stack) StackToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := r.tokens.Generate()
	stack := make(Stack, len(s))
	copy(stack, s)
	*dst = append(*dst, registeredStack{token: token, stack: stack})
	return token
}

// StartStacks returns the registered start stacks in registration order.
// The returned slice is a copy.
func (r *Registry) StartStacks() []Stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.start)
}

// ActionStacks returns the registered action stacks in registration order.
// The returned slice is a copy.
func (r *Registry) ActionStacks() []Stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.action)
}

// Stack returns the registered stack with the given token.
func (r *Registry) Stack(token StackToken) (Stack, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rs := range r.start {
		if rs.token == token {
			return rs.stack, true
		}
	}
	for _, rs := range r.action {
		if rs.token == token {
			return rs.stack, true
		}
	}
	return nil, false
}

// Reset drops every registered stack. Intended for test isolation when the
// Default registry is in play.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = nil
	r.action = nil
}

func snapshot(src []registeredStack) []Stack {
	out := make([]Stack, len(src))
	for i, rs := range src {
		out[i] = rs.stack
	}
	return out
}
