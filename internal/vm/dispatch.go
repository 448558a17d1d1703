package vm

import (
	"ember/internal/chunk"
	"ember/internal/object"
	"ember/internal/value"
)

func (vm *VM) readByte() byte {
	f := vm.frame()
	b := f.Closure.Function.Chunk.Code[f.IP]
	f.IP++
	return b
}

// readShort reads a 2-byte big-endian jump offset (spec.md §4.1).
func (vm *VM) readShort() int {
	f := vm.frame()
	code := f.Closure.Function.Chunk.Code
	hi, lo := code[f.IP], code[f.IP+1]
	f.IP += 2
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	idx := int(vm.readByte())
	return vm.frame().Closure.Function.Chunk.Constants[idx].(value.Value)
}

func (vm *VM) readConstantLong() value.Value {
	f := vm.frame()
	code := f.Closure.Function.Chunk.Code
	idx := int(code[f.IP]) | int(code[f.IP+1])<<8 | int(code[f.IP+2])<<16
	f.IP += 3
	return f.Closure.Function.Chunk.Constants[idx].(value.Value)
}

// run is the fetch-decode-dispatch loop (spec.md §4.5 Execution loop).
func (vm *VM) run() error {
	for {
		switch chunk.Op(vm.readByte()) {
		case chunk.OpConstant:
			vm.push(vm.readConstant())
		case chunk.OpConstantLong:
			vm.push(vm.readConstantLong())
		case chunk.OpNil:
			vm.push(value.NilValue)
		case chunk.OpTrue:
			vm.push(value.BoolValue(true))
		case chunk.OpFalse:
			vm.push(value.BoolValue(false))
		case chunk.OpPop:
			vm.pop()
		case chunk.OpPopN:
			n := int(vm.readByte())
			vm.stackTop -= n
		case chunk.OpDup:
			vm.push(vm.peek(0))

		case chunk.OpGetLocal:
			slot := int(vm.readByte())
			vm.push(vm.stack[vm.frame().Base+slot])
		case chunk.OpSetLocal:
			slot := int(vm.readByte())
			vm.stack[vm.frame().Base+slot] = vm.peek(0)

		case chunk.OpGetGlobal:
			name := vm.readConstant().AsString()
			val, ok := vm.Globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(val)
		case chunk.OpDefineGlobal:
			name := vm.readConstant().AsString()
			vm.Globals.Set(name, vm.pop())
		case chunk.OpSetGlobal:
			name := vm.readConstant().AsString()
			if vm.Globals.Set(name, vm.peek(0)) {
				vm.Globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case chunk.OpGetUpvalue:
			idx := int(vm.readByte())
			vm.push(*vm.frame().Closure.Upvalues[idx].Location)
		case chunk.OpSetUpvalue:
			idx := int(vm.readByte())
			*vm.frame().Closure.Upvalues[idx].Location = vm.peek(0)

		case chunk.OpGetProperty:
			if err := vm.opGetProperty(); err != nil {
				return err
			}
		case chunk.OpSetProperty:
			if err := vm.opSetProperty(); err != nil {
				return err
			}
		case chunk.OpGetSuper:
			name := vm.readConstant().AsString()
			super := vm.pop().AsObj().(*object.Class)
			if !vm.bindMethod(super, name) {
				return vm.runtimeError("Undefined property '%s'.", name.Chars)
			}

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.BoolValue(value.Equal(a, b)))
		case chunk.OpGreater:
			if err := vm.binaryCompare(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.binaryCompare(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.opAdd(); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := vm.binaryArith(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := vm.binaryArith(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := vm.opDivide(); err != nil {
				return err
			}
		case chunk.OpModulus:
			if err := vm.opModulus(); err != nil {
				return err
			}
		case chunk.OpNot:
			vm.push(value.BoolValue(vm.pop().IsFalsey()))
		case chunk.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.NumberValue(-vm.pop().AsNumber()))

		case chunk.OpPrint:
			vm.out.Write([]byte(vm.stringify(vm.pop()) + "\n"))

		case chunk.OpJump:
			offset := vm.readShort()
			vm.frame().IP += offset
		case chunk.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.frame().IP += offset
			}
		case chunk.OpLoop:
			offset := vm.readShort()
			vm.frame().IP -= offset

		case chunk.OpCall:
			argc := int(vm.readByte())
			if err := vm.callValue(vm.peek(argc), argc); err != nil {
				return err
			}
		case chunk.OpInvoke:
			name := vm.readConstant().AsString()
			argc := int(vm.readByte())
			if err := vm.invoke(name, argc); err != nil {
				return err
			}
		case chunk.OpSuperInvoke:
			name := vm.readConstant().AsString()
			argc := int(vm.readByte())
			if err := vm.superInvoke(name, argc); err != nil {
				return err
			}

		case chunk.OpClosure:
			if err := vm.opClosure(); err != nil {
				return err
			}
		case chunk.OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case chunk.OpReturn:
			result := vm.pop()
			base := vm.frame().Base
			vm.closeUpvalues(base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = base
			vm.push(result)

		case chunk.OpClass:
			name := vm.readConstant().AsString()
			vm.push(value.ObjValue(vm.heap.AllocClass(name)))
		case chunk.OpInherit:
			if err := vm.opInherit(); err != nil {
				return err
			}
		case chunk.OpMethod:
			name := vm.readConstant().AsString()
			vm.opMethod(name)

		case chunk.OpConditional:
			elseVal := vm.pop()
			thenVal := vm.pop()
			cond := vm.pop()
			if cond.IsFalsey() {
				vm.push(elseVal)
			} else {
				vm.push(thenVal)
			}

		default:
			return vm.runtimeError("Unknown opcode.")
		}
	}
}

func (vm *VM) opGetProperty() error {
	name := vm.readConstant().AsString()
	if !vm.peek(0).IsObj() {
		return vm.runtimeError("Only instances have properties.")
	}
	inst, ok := vm.peek(0).AsObj().(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have properties.")
	}
	if val, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(val)
		return nil
	}
	if !vm.bindMethod(inst.Class, name) {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return nil
}

func (vm *VM) opSetProperty() error {
	name := vm.readConstant().AsString()
	if !vm.peek(1).IsObj() {
		return vm.runtimeError("Only instances have fields.")
	}
	inst, ok := vm.peek(1).AsObj().(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have fields.")
	}
	inst.Fields.Set(name, vm.peek(0))
	val := vm.pop()
	vm.pop()
	vm.push(val)
	return nil
}

func (vm *VM) opClosure() error {
	fn := vm.readConstant().AsObj().(*object.Function)
	closure := vm.heap.AllocClosure(fn)
	for i := 0; i < fn.UpvalCount; i++ {
		isLocal := vm.readByte()
		index := int(vm.readByte())
		if isLocal != 0 {
			closure.Upvalues[i] = vm.captureUpvalue(vm.frame().Base + index)
		} else {
			closure.Upvalues[i] = vm.frame().Closure.Upvalues[index]
		}
	}
	vm.push(value.ObjValue(closure))
	return nil
}

func (vm *VM) opInherit() error {
	superVal := vm.peek(1)
	superClass, ok := asClass(superVal)
	if !ok {
		return vm.runtimeError("Superclass must be a class.")
	}
	sub := vm.peek(0).AsObj().(*object.Class)
	superClass.Methods.Each(func(name *value.String, val value.Value) {
		sub.Methods.Set(name, val)
	})
	sub.Init = superClass.Init
	vm.pop() // discard the subclass operand; the superclass stays bound as local "super"
	return nil
}

func asClass(v value.Value) (*object.Class, bool) {
	if !v.IsObj() {
		return nil, false
	}
	c, ok := v.AsObj().(*object.Class)
	return c, ok
}

func (vm *VM) opMethod(name *value.String) {
	methodVal := vm.peek(0)
	class := vm.peek(1).AsObj().(*object.Class)
	class.Methods.Set(name, methodVal)
	if name.Chars == "init" {
		class.Init = methodVal
	}
	vm.pop()
}
