// Package ember is the public entry point: compile and run one source
// program on a fresh VM, per spec.md §6.
package ember

import (
	"io"
	"os"

	"ember/internal/compiler"
	"ember/internal/config"
	"ember/internal/diag"
	"ember/internal/gc"
	"ember/internal/vm"
)

// Result is the outcome of Interpret, per spec.md §6's
// "Ok | CompileError | RuntimeError" taxonomy.
type Result int

const (
	Ok Result = iota
	CompileError
	RuntimeError
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "Ok"
	case CompileError:
		return "CompileError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "Unknown"
	}
}

// VM is a single interpreter instance: its own heap, globals, and
// value stack, bracketing usage the way initVM/freeVM do in the
// source this was ported from.
type VM struct {
	heap *gc.Heap
	vm   *vm.VM
	cfg  config.Config
	out  io.Writer
}

// NewVM constructs a VM with cfg's tuning (config.Default() if the zero
// value). out receives everything the program prints; it defaults to
// os.Stdout if nil.
func NewVM(cfg config.Config, out io.Writer) *VM {
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	heap := gc.New(gc.Config{
		InitialHeapBytes: cfg.GC.InitialHeapBytes,
		GrowFactor:       cfg.GC.GrowFactor,
		Stress:           cfg.GC.Stress,
	})
	return &VM{
		heap: heap,
		vm:   vm.New(cfg, heap, out),
		cfg:  cfg,
		out:  out,
	}
}

// Close releases this VM's hold on its heap's GC hooks.
func (v *VM) Close() { v.vm.Close() }

// Heap exposes the underlying heap for introspection (ember inspect,
// ember gc-monitor).
func (v *VM) Heap() *gc.Heap { return v.heap }

// Interpret compiles and runs source text on this VM. The returned bag
// holds the compiler's diagnostics; every diagnostic the compiler reports
// is an error, so the bag is non-empty only when the Result is
// CompileError.
func (v *VM) Interpret(source string) (Result, *diag.Bag, error) {
	bag := diag.NewBag(v.cfg.Diag.MaxDiagnostics)
	fn, ok := compiler.Compile(source, v.heap, bag)
	if !ok {
		return CompileError, bag, nil
	}
	if err := v.vm.Run(fn); err != nil {
		return RuntimeError, bag, err
	}
	return Ok, bag, nil
}

// Interpret is the one-shot convenience form of spec.md §6's public
// entry: construct a throwaway VM, run source once, tear it down.
func Interpret(source string, out io.Writer) (Result, *diag.Bag, error) {
	v := NewVM(config.Default(), out)
	defer v.Close()
	return v.Interpret(source)
}
