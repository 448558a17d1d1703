package vm

import (
	"ember/internal/object"
	"ember/internal/value"
)

// callValue reacts to callee's variant, per spec.md §4.5 callValue.
func (vm *VM) callValue(callee value.Value, argc int) error {
	if callee.IsObj() {
		switch o := callee.AsObj().(type) {
		case *object.Closure:
			return vm.call(o, argc)
		case *object.Native:
			return vm.callNative(o, argc)
		case *object.Class:
			return vm.callClass(o, argc)
		case *object.BoundMethod:
			vm.stack[vm.stackTop-argc-1] = o.Receiver
			return vm.call(o.Method, argc)
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

func (vm *VM) call(closure *object.Closure, argc int) error {
	if argc != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argc)
	}
	if vm.frameCount >= vm.framesMax {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames[vm.frameCount] = CallFrame{
		Closure: closure,
		IP:      0,
		Base:    vm.stackTop - argc - 1,
	}
	vm.frameCount++
	return nil
}

func (vm *VM) callNative(n *object.Native, argc int) error {
	args := vm.stack[vm.stackTop-argc : vm.stackTop]
	result, err := n.Fn(argc, args)
	if err != nil {
		return vm.runtimeError("%s", err.Error())
	}
	vm.stackTop -= argc + 1
	vm.push(result)
	return nil
}

func (vm *VM) callClass(class *object.Class, argc int) error {
	inst := vm.heap.AllocInstance(class)
	vm.stack[vm.stackTop-argc-1] = value.ObjValue(inst)
	if !class.Init.IsNil() {
		initClosure := class.Init.AsObj().(*object.Closure)
		return vm.call(initClosure, argc)
	}
	if argc != 0 {
		return vm.runtimeError("Expected 0 arguments but got %d.", argc)
	}
	return nil
}

// bindMethod looks up name on class, binds it to the current receiver
// (peek(0)), and replaces the receiver on the stack with the bound
// method. Reports whether the method was found.
func (vm *VM) bindMethod(class *object.Class, name *value.String) bool {
	methodVal, ok := class.Methods.Get(name)
	if !ok {
		return false
	}
	method := methodVal.AsObj().(*object.Closure)
	bound := vm.heap.AllocBoundMethod(vm.peek(0), method)
	vm.pop()
	vm.push(value.ObjValue(bound))
	return true
}

// invoke implements the INVOKE fast path: property-get + call without
// allocating an intermediate BoundMethod (spec.md §4.5).
func (vm *VM) invoke(name *value.String, argc int) error {
	receiver := vm.peek(argc)
	if !receiver.IsObj() {
		return vm.runtimeError("Only instances have methods.")
	}
	inst, ok := receiver.AsObj().(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have methods.")
	}
	if field, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argc-1] = field
		return vm.callValue(field, argc)
	}
	return vm.invokeFromClass(inst.Class, name, argc)
}

func (vm *VM) invokeFromClass(class *object.Class, name *value.String, argc int) error {
	methodVal, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.call(methodVal.AsObj().(*object.Closure), argc)
}

// superInvoke is SUPER_INVOKE: resolve name on superclass, call
// directly, skipping the instance's own class.
func (vm *VM) superInvoke(name *value.String, argc int) error {
	superclass := vm.pop().AsObj().(*object.Class)
	return vm.invokeFromClass(superclass, name, argc)
}
