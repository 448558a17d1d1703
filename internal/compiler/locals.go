package compiler

import (
	"ember/internal/chunk"
	"ember/internal/token"
	"ember/internal/value"
)

// maxLocals matches GET_LOCAL/SET_LOCAL's 1-byte slot operand.
const maxLocals = 256

func (c *Compiler) beginScope() { c.current.scopeDepth++ }

// endScope pops locals going out of scope. Trailing runs of
// non-captured locals are batched into a single POP_N instead of one
// POP per local — spec.md's supplemented OP_POP_N redesign — with
// CLOSE_UPVALUE still emitted individually for captured locals.
func (c *Compiler) endScope() {
	c.current.scopeDepth--
	pending := 0
	flush := func() {
		switch {
		case pending == 0:
		case pending == 1:
			c.emitOp(chunk.OpPop)
		default:
			c.emitOp(chunk.OpPopN)
			c.emitByte(byte(pending))
		}
		pending = 0
	}
	locals := c.current.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.current.scopeDepth {
		last := locals[len(locals)-1]
		if last.captured {
			flush()
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			pending++
		}
		locals = locals[:len(locals)-1]
	}
	flush()
	c.current.locals = locals
}

func (c *Compiler) declareVariable(name token.Token) {
	if c.current.scopeDepth == 0 {
		return
	}
	c.addLocal(name.Lexeme)
}

func (c *Compiler) addLocal(name string) {
	if len(c.current.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	for i := len(c.current.locals) - 1; i >= 0; i-- {
		l := c.current.locals[i]
		if l.depth != -1 && l.depth < c.current.scopeDepth {
			break
		}
		if l.name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.current.locals = append(c.current.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	if c.current.scopeDepth == 0 {
		return
	}
	c.current.locals[len(c.current.locals)-1].depth = c.current.scopeDepth
}

func (c *Compiler) defineVariable(name token.Token) {
	if c.current.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	nameStr := c.heap.InternString(name.Lexeme)
	idx := c.chunk().AddConstant(value.ObjValue(nameStr))
	c.emitGlobalOp(chunk.OpDefineGlobal, idx)
}

// emitGlobalOp emits one of the globals-table opcodes, which take a
// 1-byte constant index per spec.md §4.1 (no CONSTANT_LONG-style
// variant for these three).
func (c *Compiler) emitGlobalOp(op chunk.Op, idx int) {
	if idx > 255 {
		c.error("Too many global variables in one chunk.")
	}
	c.emitOp(op)
	c.emitByte(byte(idx))
}

// resolveLocal scans fc's locals from innermost outward for name,
// erroring if it's found still mid-declaration (self-referencing
// initializer, e.g. `var a = a;`).
func (c *Compiler) resolveLocal(fc *funcCompiler, name string) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name == name {
			if fc.locals[i].depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

type varKind int

const (
	varLocal varKind = iota
	varUpvalue
	varGlobal
)

func (c *Compiler) resolveVariable(name token.Token) (varKind, int) {
	if slot := c.resolveLocal(c.current, name.Lexeme); slot != -1 {
		return varLocal, slot
	}
	if idx := c.resolveUpvalue(c.current, name.Lexeme); idx != -1 {
		return varUpvalue, idx
	}
	nameStr := c.heap.InternString(name.Lexeme)
	idx := c.chunk().AddConstant(value.ObjValue(nameStr))
	return varGlobal, idx
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	kind, arg := c.resolveVariable(name)
	if canAssign && c.match(token.Equal) {
		c.expression()
		switch kind {
		case varLocal:
			c.emitOp(chunk.OpSetLocal)
			c.emitByte(byte(arg))
		case varUpvalue:
			c.emitOp(chunk.OpSetUpvalue)
			c.emitByte(byte(arg))
		case varGlobal:
			c.emitGlobalOp(chunk.OpSetGlobal, arg)
		}
		return
	}
	switch kind {
	case varLocal:
		c.emitOp(chunk.OpGetLocal)
		c.emitByte(byte(arg))
	case varUpvalue:
		c.emitOp(chunk.OpGetUpvalue)
		c.emitByte(byte(arg))
	case varGlobal:
		c.emitGlobalOp(chunk.OpGetGlobal, arg)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.prev, canAssign)
}
