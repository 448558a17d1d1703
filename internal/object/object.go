// Package object holds the heap object variants that sit above
// package value in the dependency graph: those whose state needs the
// bytecode container (package chunk) or the open-addressed table
// (package table). Keeping them out of package value is what lets
// package table depend only on value, and package chunk depend on
// nothing runtime-specific at all (see chunk.Chunk's doc comment).
package object

import (
	"ember/internal/chunk"
	"ember/internal/table"
	"ember/internal/value"
)

// Function is a compiled function: arity, captured-upvalue count, its
// own chunk, and an optional name (nil for the implicit top-level
// script function).
type Function struct {
	value.ObjHeader
	Arity      int
	UpvalCount int
	Chunk      *chunk.Chunk
	Name       *value.String
}

func NewFunction() *Function {
	return &Function{ObjHeader: value.NewHeader(value.FunctionKind), Chunk: chunk.New()}
}

// NativeFn is the signature every built-in native function implements.
// It receives the VM-supplied argument slice and returns either a
// result or a runtime error.
type NativeFn func(argc int, args []value.Value) (value.Value, error)

// Native wraps a Go function exposed to ember programs under a name.
type Native struct {
	value.ObjHeader
	Name string
	Fn   NativeFn
}

func NewNative(name string, fn NativeFn) *Native {
	return &Native{ObjHeader: value.NewHeader(value.NativeKind), Name: name, Fn: fn}
}

// Upvalue is a reference to a variable local to an outer function: open
// while Location points into the VM's value stack, closed once Location
// points at this Upvalue's own Closed field (spec.md Invariant 5). The
// VM tracks open upvalues by stack slot in a map rather than threading
// an intrusive descending-address list through them (clox's open-list);
// slot-keyed lookup gives the same "at most one upvalue per slot"
// invariant without pointer arithmetic into the stack array.
type Upvalue struct {
	value.ObjHeader
	Location *value.Value
	Closed   value.Value
}

func NewUpvalue(slot *value.Value) *Upvalue {
	return &Upvalue{ObjHeader: value.NewHeader(value.UpvalueKind), Location: slot}
}

// Close moves the referenced value into this upvalue's own storage and
// redirects Location at it, detaching from the stack slot.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}

// Closure bundles a Function with the Upvalues it captured at creation.
type Closure struct {
	value.ObjHeader
	Function *Function
	Upvalues []*Upvalue
}

func NewClosure(fn *Function) *Closure {
	return &Closure{
		ObjHeader: value.NewHeader(value.ClosureKind),
		Function:  fn,
		Upvalues:  make([]*Upvalue, fn.UpvalCount),
	}
}

// Class is a named type with a method table and a cached initializer
// value, found by name once at INHERIT/METHOD time rather than looked
// up by name on every call (spec.md §4.5 callValue).
type Class struct {
	value.ObjHeader
	Name    *value.String
	Methods *table.Table
	Init    value.Value
}

func NewClass(name *value.String) *Class {
	return &Class{ObjHeader: value.NewHeader(value.ClassKind), Name: name, Methods: table.New(), Init: value.NilValue}
}

// Instance is an object of a Class with its own field table.
type Instance struct {
	value.ObjHeader
	Class  *Class
	Fields *table.Table
}

func NewInstance(class *Class) *Instance {
	return &Instance{ObjHeader: value.NewHeader(value.InstanceKind), Class: class, Fields: table.New()}
}

// BoundMethod is the first-class result of reading a method off an
// instance: it remembers the receiver alongside the method closure.
type BoundMethod struct {
	value.ObjHeader
	Receiver value.Value
	Method   *Closure
}

func NewBoundMethod(receiver value.Value, method *Closure) *BoundMethod {
	return &BoundMethod{ObjHeader: value.NewHeader(value.BoundMethodKind), Receiver: receiver, Method: method}
}
