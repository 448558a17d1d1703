package compiler

import (
	"ember/internal/chunk"
	"ember/internal/token"
	"ember/internal/value"
)

// classDeclaration compiles `class Name [< Super] { method* }`, per
// spec.md §4.2 Classes.
func (c *Compiler) classDeclaration() {
	c.consume(token.Identifier, "Expect class name.")
	nameTok := c.prev
	c.declareVariable(nameTok)

	nameStr := c.heap.InternString(nameTok.Lexeme)
	nameIdx := c.chunk().AddConstant(value.ObjValue(nameStr))
	c.emitConstIndexedOp(chunk.OpClass, nameIdx)
	c.defineVariable(nameTok)

	cc := &classCompiler{enclosing: c.class}
	c.class = cc

	if c.match(token.Less) {
		c.consume(token.Identifier, "Expect superclass name.")
		if c.prev.Lexeme == nameTok.Lexeme {
			c.error("A class can't inherit from itself.")
		}
		c.variable(false) // push the superclass value

		c.beginScope()
		c.addLocal("super")
		c.markInitialized()

		c.namedVariable(nameTok, false) // push the class being declared
		c.emitOp(chunk.OpInherit)
		cc.hasSuperclass = true
	}

	c.namedVariable(nameTok, false) // push the class for method definitions
	c.consume(token.LeftBrace, "Expect '{' before class body.")
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RightBrace, "Expect '}' after class body.")
	c.emitOp(chunk.OpPop) // the class pushed for method defs

	if cc.hasSuperclass {
		c.endScope()
	}
	c.class = c.class.enclosing
}

func (c *Compiler) method() {
	c.consume(token.Identifier, "Expect method name.")
	nameTok := c.prev
	nameStr := c.heap.InternString(nameTok.Lexeme)
	nameIdx := c.chunk().AddConstant(value.ObjValue(nameStr))

	kind := FuncMethod
	if nameTok.Lexeme == "init" {
		kind = FuncInitializer
	}
	c.function(kind, nameTok.Lexeme)
	c.emitConstIndexedOp(chunk.OpMethod, nameIdx)
}
