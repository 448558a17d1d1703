package vm

import (
	"fortio.org/safecast"

	"ember/internal/value"
)

// opAdd implements ADD: number+number, or string+string concatenation
// (spec.md §4.1, §4.5 "String concatenation"). Both operands are peeked
// before any allocation so the GC cannot collect them mid-build.
func (vm *VM) opAdd() error {
	b, a := vm.peek(0), vm.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(value.NumberValue(a.AsNumber() + b.AsNumber()))
		return nil
	case a.IsString() && b.IsString():
		combined := a.AsString().Chars + b.AsString().Chars
		result := vm.heap.TakeString(combined)
		vm.pop()
		vm.pop()
		vm.push(value.ObjValue(result))
		return nil
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

// binaryArith implements SUBTRACT/MULTIPLY: both operands must be
// numbers.
func (vm *VM) binaryArith(op func(a, b float64) float64) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	vm.push(value.NumberValue(op(a, b)))
	return nil
}

// opDivide implements DIVIDE; spec.md §7 calls out divide-by-zero as a
// runtime error rather than letting it through as IEEE Inf/NaN.
func (vm *VM) opDivide() error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	if b == 0 {
		return vm.runtimeError("Division by zero.")
	}
	vm.push(value.NumberValue(a / b))
	return nil
}

// opModulus implements MODULUS. spec.md §4.1 requires integral
// operands; §9's Open Question leaves negative-operand behavior
// implementation-defined, so only the positive-integer case is relied
// on by tests. Both operands are narrowed to int64 with
// fortio.org/safecast.Convert, which fails the conversion whenever the
// float isn't exactly representable as an int64 — that rejection is
// how "integral operands" gets enforced, instead of a separate
// math.Trunc comparison.
func (vm *VM) opModulus() error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	bf := vm.peek(0).AsNumber()
	af := vm.peek(1).AsNumber()
	ai, aErr := safecast.Convert[int64](af)
	bi, bErr := safecast.Convert[int64](bf)
	if aErr != nil || bErr != nil {
		return vm.runtimeError("Operands to '%%' must be integers.")
	}
	if bi == 0 {
		return vm.runtimeError("Modulo by zero.")
	}
	vm.pop()
	vm.pop()
	vm.push(value.NumberValue(float64(ai % bi)))
	return nil
}
