package compiler

import (
	"ember/internal/chunk"
	"ember/internal/token"
)

// conditional compiles `cond ? then : else`. Both branches are parsed
// unconditionally, one after the other, with no jump between them;
// CONDITIONAL folds all three stacked values into one at runtime
// (original_source/compiler.c's conditional(), spec.md §4.1 CONDITIONAL
// "ternary fold"). This means both branches always evaluate — a
// deliberate quirk of the source this was ported from, not a bug.
func (c *Compiler) conditional(canAssign bool) {
	c.parsePrecedence(PrecConditional)
	c.consume(token.Colon, "Expect ':' after then branch of conditional expression.")
	c.parsePrecedence(PrecAssignment)
	c.emitOp(chunk.OpConditional)
}
