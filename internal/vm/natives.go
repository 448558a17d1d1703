package vm

import (
	"errors"
	"time"

	"ember/internal/object"
	"ember/internal/value"
)

var startTime = time.Now()

// defineNatives installs the built-in native functions spec.md §6
// names (clock, deleteField) plus the two SPEC_FULL-supplemented ones
// (type, str), matching the native-table convention the Go Lox ports in
// the reference pack use.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", vm.nativeClock)
	vm.defineNative("deleteField", vm.nativeDeleteField)
	vm.defineNative("type", vm.nativeType)
	vm.defineNative("str", vm.nativeStr)
}

func (vm *VM) defineNative(name string, fn object.NativeFn) {
	native := vm.heap.AllocNative(name, fn)
	nameStr := vm.heap.InternString(name)
	vm.Globals.Set(nameStr, value.ObjValue(native))
}

func (vm *VM) nativeClock(argc int, args []value.Value) (value.Value, error) {
	return value.NumberValue(time.Since(startTime).Seconds()), nil
}

// nativeDeleteField removes a field from an instance; a no-op (not an
// error) if the receiver isn't an instance or lacks the field, per
// spec.md §6.
func (vm *VM) nativeDeleteField(argc int, args []value.Value) (value.Value, error) {
	if argc != 2 {
		return value.NilValue, errors.New("deleteField() takes 2 arguments.")
	}
	inst, ok := args[0].AsObj().(*object.Instance)
	if !ok || !args[1].IsString() {
		return value.NilValue, nil
	}
	inst.Fields.Delete(args[1].AsString())
	return value.NilValue, nil
}

func (vm *VM) nativeType(argc int, args []value.Value) (value.Value, error) {
	if argc != 1 {
		return value.NilValue, errors.New("type() takes 1 argument.")
	}
	return value.ObjValue(vm.heap.InternString(vm.typeName(args[0]))), nil
}

func (vm *VM) nativeStr(argc int, args []value.Value) (value.Value, error) {
	if argc != 1 {
		return value.NilValue, errors.New("str() takes 1 argument.")
	}
	if args[0].IsString() {
		return args[0], nil
	}
	return value.ObjValue(vm.heap.InternString(vm.stringify(args[0]))), nil
}
