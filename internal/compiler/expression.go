package compiler

import (
	"strconv"
	"strings"

	"ember/internal/chunk"
	"ember/internal/token"
	"ember/internal/value"
)

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	opType := c.prev.Kind
	c.parsePrecedence(PrecUnary)
	switch opType {
	case token.Bang:
		c.emitOp(chunk.OpNot)
	case token.Minus:
		c.emitOp(chunk.OpNegate)
	}
}

// binary compiles the right operand then emits the opcode for the
// operator just consumed. GREATER_EQUAL, LESS_EQUAL, and BANG_EQUAL
// have no dedicated opcode; they fold to their complement plus NOT,
// exactly as original_source/compiler.c's binary() does.
func (c *Compiler) binary(canAssign bool) {
	opType := c.prev.Kind
	rule := c.rule(opType)
	c.parsePrecedence(rule.precedence + 1)
	switch opType {
	case token.BangEqual:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.EqualEqual:
		c.emitOp(chunk.OpEqual)
	case token.Greater:
		c.emitOp(chunk.OpGreater)
	case token.GreaterEqual:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.Less:
		c.emitOp(chunk.OpLess)
	case token.LessEqual:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	case token.Plus:
		c.emitOp(chunk.OpAdd)
	case token.Minus:
		c.emitOp(chunk.OpSubtract)
	case token.Star:
		c.emitOp(chunk.OpMultiply)
	case token.Slash:
		c.emitOp(chunk.OpDivide)
	case token.Percent:
		c.emitOp(chunk.OpModulus)
	}
}

func (c *Compiler) literal(canAssign bool) {
	switch c.prev.Kind {
	case token.False:
		c.emitOp(chunk.OpFalse)
	case token.Nil:
		c.emitOp(chunk.OpNil)
	case token.True:
		c.emitOp(chunk.OpTrue)
	}
}

func (c *Compiler) number(canAssign bool) {
	n, _ := strconv.ParseFloat(c.prev.Lexeme, 64)
	c.emitConstant(value.NumberValue(n))
}

func (c *Compiler) stringLit(canAssign bool) {
	raw := c.prev.Lexeme[1 : len(c.prev.Lexeme)-1]
	raw = strings.ReplaceAll(raw, `\"`, `"`)
	s := c.heap.InternString(raw)
	c.emitConstant(value.ObjValue(s))
}

func (c *Compiler) and_(canAssign bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or_(canAssign bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)
	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(canAssign bool) {
	argc := c.argumentList()
	c.emitOp(chunk.OpCall)
	c.emitByte(byte(argc))
}

func (c *Compiler) argumentList() int {
	argc := 0
	if !c.check(token.RightParen) {
		for {
			c.expression()
			if argc == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			argc++
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after arguments.")
	return argc
}

func (c *Compiler) dot(canAssign bool) {
	c.consume(token.Identifier, "Expect property name after '.'.")
	name := c.heap.InternString(c.prev.Lexeme)
	nameIdx := c.chunk().AddConstant(value.ObjValue(name))

	switch {
	case canAssign && c.match(token.Equal):
		c.expression()
		c.emitConstIndexedOp(chunk.OpSetProperty, nameIdx)
	case c.match(token.LeftParen):
		argc := c.argumentList()
		c.emitConstIndexedOp(chunk.OpInvoke, nameIdx)
		c.emitByte(byte(argc))
	default:
		c.emitConstIndexedOp(chunk.OpGetProperty, nameIdx)
	}
}

func (c *Compiler) this_(canAssign bool) {
	if c.class == nil {
		c.error("Can't use 'this' outside of a class.")
		return
	}
	c.namedVariable(c.prev, false)
}

func (c *Compiler) super_(canAssign bool) {
	if c.class == nil {
		c.error("Can't use 'super' outside of a class.")
	} else if !c.class.hasSuperclass {
		c.error("Can't use 'super' in a class with no superclass.")
	}
	c.consume(token.Dot, "Expect '.' after 'super'.")
	c.consume(token.Identifier, "Expect superclass method name.")
	name := c.heap.InternString(c.prev.Lexeme)
	nameIdx := c.chunk().AddConstant(value.ObjValue(name))

	c.namedVariable(syntheticToken("this"), false)
	if c.match(token.LeftParen) {
		argc := c.argumentList()
		c.namedVariable(syntheticToken("super"), false)
		c.emitConstIndexedOp(chunk.OpSuperInvoke, nameIdx)
		c.emitByte(byte(argc))
	} else {
		c.namedVariable(syntheticToken("super"), false)
		c.emitConstIndexedOp(chunk.OpGetSuper, nameIdx)
	}
}

func syntheticToken(text string) token.Token {
	return token.Token{Kind: token.Identifier, Lexeme: text}
}
