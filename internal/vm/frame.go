package vm

import "ember/internal/object"

// CallFrame is one active invocation: a closure, an instruction pointer
// into that closure's function's chunk, and the stack slot its locals
// start at. Slot Base holds the callable itself (plain functions) or
// `this` (methods/initializers), per spec.md §4.2.
type CallFrame struct {
	Closure *object.Closure
	IP      int
	Base    int
}
