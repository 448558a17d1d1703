package compiler

import "ember/internal/token"

// Precedence levels, low to high, per spec.md §4.2.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecConditional
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
	token.LeftParen: {(*Compiler).grouping, (*Compiler).call, PrecCall},
	token.Dot:       {nil, (*Compiler).dot, PrecCall},
	token.Minus:     {(*Compiler).unary, (*Compiler).binary, PrecTerm},
	token.Plus:      {nil, (*Compiler).binary, PrecTerm},
	token.Percent:   {nil, (*Compiler).binary, PrecTerm},
	token.Slash:     {nil, (*Compiler).binary, PrecFactor},
	token.Star:      {nil, (*Compiler).binary, PrecFactor},
	token.Question:  {nil, (*Compiler).conditional, PrecConditional},

	token.Bang:         {(*Compiler).unary, nil, PrecNone},
	token.BangEqual:    {nil, (*Compiler).binary, PrecEquality},
	token.EqualEqual:   {nil, (*Compiler).binary, PrecEquality},
	token.Greater:      {nil, (*Compiler).binary, PrecComparison},
	token.GreaterEqual: {nil, (*Compiler).binary, PrecComparison},
	token.Less:         {nil, (*Compiler).binary, PrecComparison},
	token.LessEqual:    {nil, (*Compiler).binary, PrecComparison},

	token.Identifier: {(*Compiler).variable, nil, PrecNone},
	token.String:      {(*Compiler).stringLit, nil, PrecNone},
	token.Number:      {(*Compiler).number, nil, PrecNone},

	token.And:   {nil, (*Compiler).and_, PrecAnd},
	token.Or:    {nil, (*Compiler).or_, PrecOr},
	token.False: {(*Compiler).literal, nil, PrecNone},
	token.Nil:   {(*Compiler).literal, nil, PrecNone},
	token.True:  {(*Compiler).literal, nil, PrecNone},
	token.This:  {(*Compiler).this_, nil, PrecNone},
	token.Super: {(*Compiler).super_, nil, PrecNone},
	}
}

func (c *Compiler) rule(k token.Kind) parseRule { return rules[k] }

// parsePrecedence is precedence-climbing Pratt parsing, grounded
// directly on original_source/compiler.c's parsePrecedence: advance,
// invoke the prefix rule for the token just consumed, then keep
// consuming and invoking infix rules while the next token binds at
// least as tightly as prec.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	rule := c.rule(c.prev.Kind)
	if rule.prefix == nil {
		c.error("Expect expression.")
		return
	}
	canAssign := prec <= PrecAssignment
	rule.prefix(c, canAssign)

	for prec <= c.rule(c.cur.Kind).precedence {
		c.advance()
		infix := c.rule(c.prev.Kind).infix
		infix(c, canAssign)
	}
}

// expression parses a full assignment-precedence expression. A `=` left
// over afterward means the parsed expression wasn't an L-value (e.g.
// `1 = 2;` or `a + b = c;`) — spec.md §4.2's "Assignment context"
// calls this the invalid-assignment-target error; only namedVariable
// and dot ever consume `=` themselves, so anything still sitting on it
// here is a misplaced target.
func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
	if c.check(token.Equal) {
		c.errorAtCurrent("Invalid assignment target.")
		c.advance()
		c.parsePrecedence(PrecAssignment)
	}
}
