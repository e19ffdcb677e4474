// Package syntax provides the in-memory representation of a block program.
//
// A program is a set of stacks: ordered sequences of instructions, where
// each instruction may carry argument expressions and, for container
// categories, a nested child stack. The package contains construction logic
// and structural validation only. All other packages import syntax; syntax
// imports nothing internal, keeping it the foundational layer.
//
// Key design constraints:
//   - Nodes are immutable once constructed and safe to share for reads
//   - Structural legality (which fields a node may hold) is a pure function
//     of the node's variant and is enforced at construction time
//   - Construction is pure: recoverable input problems are reported as
//     Diagnostic values returned with the node, never logged as a side effect
//   - Semantic validity (name and argument-shape rules) is an injectable
//     Validator capability; the default accepts everything
package syntax
