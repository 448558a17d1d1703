package vm

import "ember/internal/value"

// binaryCompare implements GREATER and LESS (EQUAL uses value.Equal
// directly since it applies to all types, not just numbers).
// GREATER_EQUAL/LESS_EQUAL/BANG_EQUAL have no dedicated opcodes; the
// compiler folds them into LESS/GREATER/EQUAL plus NOT, per
// original_source/compiler.c's binary().
func (vm *VM) binaryCompare(op func(a, b float64) bool) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	vm.push(value.BoolValue(op(a, b)))
	return nil
}
