// Package vm implements the stack-based bytecode interpreter spec.md
// §4.5 describes: a call-frame stack, a value stack, method dispatch,
// and up-value capture/close, driven by the shared allocator in
// internal/gc.
package vm

import (
	"fmt"
	"io"
	"strconv"

	"ember/internal/config"
	"ember/internal/gc"
	"ember/internal/object"
	"ember/internal/table"
	"ember/internal/value"
)

// VM holds everything one interpretation needs: the value stack, the
// call-frame stack, open up-values, globals, and the heap that backs
// every allocation this VM makes. Nothing here is package-level or
// shared across VM instances (spec.md §9's Design Notes flag the
// original's global-singleton VM as something a language-neutral
// design should avoid; this repo passes *VM explicitly instead).
type VM struct {
	stack    []value.Value
	stackTop int

	frames     []CallFrame
	frameCount int

	openUpvalues map[int]*object.Upvalue

	Globals *table.Table

	heap *gc.Heap
	out  io.Writer

	framesMax int
}

// New returns a VM ready to run compiled functions. out receives
// whatever the program's `print` statements write (spec.md §4.1 PRINT).
func New(cfg config.Config, heap *gc.Heap, out io.Writer) *VM {
	vm := &VM{
		stack:        make([]value.Value, cfg.VM.FramesMax*cfg.VM.StackPerFrame),
		frames:       make([]CallFrame, cfg.VM.FramesMax),
		openUpvalues: make(map[int]*object.Upvalue),
		Globals:      table.New(),
		heap:         heap,
		out:          out,
		framesMax:    cfg.VM.FramesMax,
	}
	heap.SetRootMarker(vm.markRoots)
	vm.defineNatives()
	return vm
}

// Close releases the VM's references to the heap's root-marker hook.
// Idiomatic counterpart of the original's freeVM: there is nothing to
// free explicitly in Go, but detaching the callback means a
// already-finished VM can be garbage collected even while its heap
// lingers (e.g. held by an "ember inspect" snapshot).
func (vm *VM) Close() {
	vm.heap.SetRootMarker(nil)
}

// Run wraps script in a closure, pushes it, and executes it to
// completion. Returns a *RuntimeError on failure; nil on success.
func (vm *VM) Run(script *object.Function) error {
	vm.resetStack()
	vm.heap.SetRootMarker(vm.markRoots)
	closure := vm.heap.AllocClosure(script)
	vm.push(value.ObjValue(closure))
	if err := vm.call(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = make(map[int]*object.Upvalue)
}

func (vm *VM) frame() *CallFrame { return &vm.frames[vm.frameCount-1] }

func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	frames := make([]Frame, 0, vm.frameCount)
	for i := vm.frameCount - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fn := fr.Closure.Function
		line := fn.Chunk.GetLine(fr.IP - 1)
		name := ""
		if fn.Name != nil {
			name = fn.Name.Chars + "()"
		}
		frames = append(frames, Frame{Function: name, Line: line})
	}
	vm.resetStack()
	return &RuntimeError{Message: msg, Frames: frames}
}

// markRoots is installed on the heap as its root-marker callback
// (spec.md §4.6 step 1 / §9's "pass context explicitly" note — the
// callback IS that explicit context, just inverted so gc never imports
// vm).
func (vm *VM) markRoots(h *gc.Heap) {
	for i := 0; i < vm.stackTop; i++ {
		h.MarkValue(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		h.MarkObject(vm.frames[i].Closure)
	}
	for _, uv := range vm.openUpvalues {
		h.MarkObject(uv)
	}
	h.MarkTable(vm.Globals)
	h.MarkObject(h.InitString)
}

// captureUpvalue returns the open up-value for slot, creating one if
// none exists yet (spec.md §4.5 captureUpvalue, §3 Invariant 4).
func (vm *VM) captureUpvalue(slot int) *object.Upvalue {
	if uv, ok := vm.openUpvalues[slot]; ok {
		return uv
	}
	uv := vm.heap.AllocUpvalue(&vm.stack[slot])
	vm.openUpvalues[slot] = uv
	return uv
}

// closeUpvalues closes every open up-value at or above slot from, per
// spec.md §4.5 closeUpvalues.
func (vm *VM) closeUpvalues(from int) {
	for slot, uv := range vm.openUpvalues {
		if slot >= from {
			uv.Close()
			delete(vm.openUpvalues, slot)
		}
	}
}

// stringify renders v the way PRINT and the str() native format a
// value.
func (vm *VM) stringify(v value.Value) string {
	switch {
	case v.IsNil():
		return "nil"
	case v.IsBool():
		if v.AsBool() {
			return "true"
		}
		return "false"
	case v.IsNumber():
		return strconv.FormatFloat(v.AsNumber(), 'g', -1, 64)
	case v.IsString():
		return v.AsString().Chars
	case v.IsObj():
		switch o := v.AsObj().(type) {
		case *object.Function:
			if o.Name == nil {
				return "<script>"
			}
			return "<fn " + o.Name.Chars + ">"
		case *object.Native:
			return "<native fn " + o.Name + ">"
		case *object.Closure:
			return vm.stringify(value.ObjValue(o.Function))
		case *object.Class:
			return o.Name.Chars
		case *object.Instance:
			return o.Class.Name.Chars + " instance"
		case *object.BoundMethod:
			return vm.stringify(value.ObjValue(o.Method.Function))
		}
	}
	return "nil"
}

// typeName implements the type() native: the runtime type name of v.
func (vm *VM) typeName(v value.Value) string {
	switch {
	case v.IsNil():
		return "nil"
	case v.IsBool():
		return "bool"
	case v.IsNumber():
		return "number"
	case v.IsString():
		return "string"
	case v.IsObj():
		switch v.AsObj().(type) {
		case *object.Function, *object.Closure:
			return "function"
		case *object.Native:
			return "native"
		case *object.Class:
			return "class"
		case *object.Instance:
			return "instance"
		case *object.BoundMethod:
			return "bound_method"
		}
	}
	return "nil"
}
