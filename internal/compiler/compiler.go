// Package compiler implements the single-pass Pratt compiler spec.md
// §4.2 describes: it runs once over the token stream and emits bytecode
// directly, resolving locals, up-value captures, and class/inheritance
// structure as it goes.
package compiler

import (
	"ember/internal/chunk"
	"ember/internal/diag"
	"ember/internal/gc"
	"ember/internal/lexer"
	"ember/internal/object"
	"ember/internal/token"
	"ember/internal/value"
)

// FuncKind distinguishes the four shapes of code a funcCompiler can be
// compiling, which changes how slot 0 and `return` are treated.
type FuncKind int

const (
	FuncScript FuncKind = iota
	FuncFunction
	FuncMethod
	FuncInitializer
)

type local struct {
	name     string
	depth    int // -1 while being declared, not yet initialized
	captured bool
}

type upvalueDesc struct {
	index   int
	isLocal bool
}

// funcCompiler is one link in the chain of per-function compiler state
// spec.md §4.2 describes: locals, up-value descriptors, scope depth, and
// function kind, one per function currently being compiled.
type funcCompiler struct {
	enclosing *funcCompiler
	function  *object.Function
	kind      FuncKind

	locals     []local
	scopeDepth int
	upvalues   []upvalueDesc

	loopStart int // chunk offset `continue` loops back to (the condition, or a for loop's increment); -1 outside a loop
	loopDepth int // scopeDepth at that loop's entry
}

func newFuncCompiler(enclosing *funcCompiler, kind FuncKind, heap *gc.Heap) *funcCompiler {
	fn := heap.AllocFunction()
	fc := &funcCompiler{enclosing: enclosing, function: fn, kind: kind, loopStart: -1}
	slot0 := ""
	if kind == FuncMethod || kind == FuncInitializer {
		slot0 = "this"
	}
	fc.locals = append(fc.locals, local{name: slot0, depth: 0})
	return fc
}

// classCompiler is one link in the nested class-compiler stack spec.md
// §4.2 mentions, tracking whether the class being compiled has a
// superclass (so `super` can be rejected otherwise).
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// Compiler holds parser state (current/previous token, error flags) plus
// the function- and class-compiler chains.
type Compiler struct {
	lx      *lexer.Lexer
	heap    *gc.Heap
	bag     *diag.Bag
	current *funcCompiler
	class   *classCompiler

	prev, cur token.Token
	hadError  bool
	panicMode bool
}

// Compile compiles src into a top-level script Function. The caller's
// bag accumulates every diagnostic reported; ok is false if compilation
// failed (the function is still returned, fully emitted, since panic-mode
// recovery keeps going after an error — callers discard it on failure).
func Compile(src string, heap *gc.Heap, bag *diag.Bag) (fn *object.Function, ok bool) {
	c := &Compiler{lx: lexer.New(src), heap: heap, bag: bag}
	heap.SetRootMarker(c.markRoots)
	c.current = newFuncCompiler(nil, FuncScript, heap)

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	fn = c.endCompiler()
	return fn, !c.hadError
}

// markRoots marks every function currently mid-compile, per spec.md
// §4.6's "compiler roots" root category.
func (c *Compiler) markRoots(h *gc.Heap) {
	for fc := c.current; fc != nil; fc = fc.enclosing {
		h.MarkObject(fc.function)
	}
}

func (c *Compiler) chunk() *chunk.Chunk { return c.current.function.Chunk }

func (c *Compiler) advance() {
	c.prev = c.cur
	for {
		c.cur = c.lx.Next()
		if c.cur.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.cur.Lexeme)
	}
}

func (c *Compiler) check(k token.Kind) bool { return c.cur.Kind == k }

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, msg string) {
	if c.cur.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Line:     tok.Line,
		Lexeme:   tok.Lexeme,
		AtEnd:    tok.Kind == token.EOF,
		Message:  msg,
	})
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.cur, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.prev, msg) }

// synchronize discards tokens until a likely statement boundary, per
// spec.md §4.2's error-recovery description.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.cur.Kind != token.EOF {
		if c.prev.Kind == token.Semicolon {
			return
		}
		switch c.cur.Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

func (c *Compiler) emitByte(b byte)    { c.chunk().Write(b, c.prev.Line) }
func (c *Compiler) emitOp(op chunk.Op) { c.emitByte(byte(op)) }

func (c *Compiler) emitConstant(v value.Value) {
	idx := c.chunk().AddConstant(v)
	c.chunk().WriteConstant(idx, c.prev.Line)
}

// emitConstIndexedOp emits op followed by a 1-byte constant-pool index,
// used by the instructions spec.md §4.1 lists as taking a "1-byte
// const-index" rather than a full CONSTANT/CONSTANT_LONG pair.
func (c *Compiler) emitConstIndexedOp(op chunk.Op, idx int) {
	if idx > 255 {
		c.error("Too many constants in one chunk.")
	}
	c.emitOp(op)
	c.emitByte(byte(idx))
}

func (c *Compiler) emitJump(op chunk.Op) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk().Code) - offset - 2
	if jump > 0xffff {
		c.error("Too much code to jump over.")
	}
	c.chunk().Code[offset] = byte((jump >> 8) & 0xff)
	c.chunk().Code[offset+1] = byte(jump & 0xff)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.OpLoop)
	offset := len(c.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("Loop body too large.")
	}
	c.emitByte(byte((offset >> 8) & 0xff))
	c.emitByte(byte(offset & 0xff))
}

func (c *Compiler) emitReturn() {
	if c.current.kind == FuncInitializer {
		c.emitOp(chunk.OpGetLocal)
		c.emitByte(0)
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.emitOp(chunk.OpReturn)
}

func (c *Compiler) beginFuncCompiler(kind FuncKind, name string) {
	fc := newFuncCompiler(c.current, kind, c.heap)
	if name != "" {
		fc.function.Name = c.heap.InternString(name)
	}
	c.current = fc
}

func (c *Compiler) endFuncCompiler() (*object.Function, []upvalueDesc) {
	c.emitReturn()
	fn := c.current.function
	fn.UpvalCount = len(c.current.upvalues)
	upvals := c.current.upvalues
	c.current = c.current.enclosing
	return fn, upvals
}

func (c *Compiler) endCompiler() *object.Function {
	c.emitReturn()
	return c.current.function
}

// emitClosure emits CLOSURE for fn plus the (isLocal, index) pair for
// every up-value it captures (spec.md §4.1 CLOSURE, §4.2 Closures).
func (c *Compiler) emitClosure(fn *object.Function, upvals []upvalueDesc) {
	idx := c.chunk().AddConstant(value.ObjValue(fn))
	c.emitConstIndexedOp(chunk.OpClosure, idx)
	for _, uv := range upvals {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(uv.index))
	}
}
