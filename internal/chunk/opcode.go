// Package chunk implements the compiled-bytecode container: an
// instruction stream, a constants pool, and a run-length line table
// (spec.md §4.1, §4.7).
//
// Constants are stored as `any` rather than `value.Value` so that this
// package imports no runtime package at all; package object, which holds
// a Function's Chunk, depends on chunk rather than the other way round.
// Compiler and VM, which both already import value, do the single type
// assertion back to value.Value at the point of use.
package chunk

// Op is a single-byte instruction opcode.
type Op byte

const (
	OpConstant Op = iota
	OpConstantLong
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpPopN
	OpDup
	OpGetLocal
	OpSetLocal
	OpGetGlobal
	OpDefineGlobal
	OpSetGlobal
	OpGetUpvalue
	OpSetUpvalue
	OpGetProperty
	OpSetProperty
	OpGetSuper
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulus
	OpNot
	OpNegate
	OpPrint
	OpJump
	OpJumpIfFalse
	OpLoop
	OpCall
	OpInvoke
	OpSuperInvoke
	OpClosure
	OpCloseUpvalue
	OpReturn
	OpClass
	OpInherit
	OpMethod
	OpConditional
)

var names = [...]string{
	OpConstant: "OP_CONSTANT", OpConstantLong: "OP_CONSTANT_LONG",
	OpNil: "OP_NIL", OpTrue: "OP_TRUE", OpFalse: "OP_FALSE",
	OpPop: "OP_POP", OpPopN: "OP_POP_N", OpDup: "OP_DUP",
	OpGetLocal: "OP_GET_LOCAL", OpSetLocal: "OP_SET_LOCAL",
	OpGetGlobal: "OP_GET_GLOBAL", OpDefineGlobal: "OP_DEFINE_GLOBAL", OpSetGlobal: "OP_SET_GLOBAL",
	OpGetUpvalue: "OP_GET_UPVALUE", OpSetUpvalue: "OP_SET_UPVALUE",
	OpGetProperty: "OP_GET_PROPERTY", OpSetProperty: "OP_SET_PROPERTY", OpGetSuper: "OP_GET_SUPER",
	OpEqual: "OP_EQUAL", OpGreater: "OP_GREATER", OpLess: "OP_LESS",
	OpAdd: "OP_ADD", OpSubtract: "OP_SUBTRACT", OpMultiply: "OP_MULTIPLY",
	OpDivide: "OP_DIVIDE", OpModulus: "OP_MODULUS",
	OpNot: "OP_NOT", OpNegate: "OP_NEGATE", OpPrint: "OP_PRINT",
	OpJump: "OP_JUMP", OpJumpIfFalse: "OP_JUMP_IF_FALSE", OpLoop: "OP_LOOP",
	OpCall: "OP_CALL", OpInvoke: "OP_INVOKE", OpSuperInvoke: "OP_SUPER_INVOKE",
	OpClosure: "OP_CLOSURE", OpCloseUpvalue: "OP_CLOSE_UPVALUE", OpReturn: "OP_RETURN",
	OpClass: "OP_CLASS", OpInherit: "OP_INHERIT", OpMethod: "OP_METHOD",
	OpConditional: "OP_CONDITIONAL",
}

func (op Op) String() string {
	if int(op) < len(names) && names[op] != "" {
		return names[op]
	}
	return "OP_UNKNOWN"
}
