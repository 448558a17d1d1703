package compiler

import (
	"ember/internal/chunk"
	"ember/internal/token"
)

// maxSwitchCases matches the other "too many X" caps in this package
// (maxLocals, maxUpvalues): each case emits a jump that caseEnds tracks
// for patching, so an unbounded count is an unbounded compile-time slice,
// not a VM operand-width limit like the others.
const maxSwitchCases = 256

// switchStatement implements the 0/1/2 state machine spec.md §4.2
// describes: 0 before any case, 1 after a case header, 2 after default.
// Each case DUPs the subject and tests equality; a non-matching case
// jumps to the next case header, a matching one falls into its body and
// then jumps past every remaining case to the statement's end.
func (c *Compiler) switchStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'switch'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after switch subject.")
	c.consume(token.LeftBrace, "Expect '{' before switch body.")

	state := 0
	var caseEnds []int
	previousCaseSkip := -1
	caseCount := 0

	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		if c.check(token.Case) || c.check(token.Default) {
			isDefault := c.check(token.Default)
			c.advance()

			if state == 2 {
				c.error("Can't have another case or default after the default case.")
			}
			if state == 1 {
				caseEnds = append(caseEnds, c.emitJump(chunk.OpJump))
				c.patchJump(previousCaseSkip)
				c.emitOp(chunk.OpPop)
			}

			if !isDefault {
				caseCount++
				if caseCount > maxSwitchCases {
					c.error("Too many cases in switch statement.")
				}
				state = 1
				c.emitOp(chunk.OpDup)
				c.expression()
				c.consume(token.Colon, "Expect ':' after case value.")
				c.emitOp(chunk.OpEqual)
				previousCaseSkip = c.emitJump(chunk.OpJumpIfFalse)
				c.emitOp(chunk.OpPop)
			} else {
				state = 2
				c.consume(token.Colon, "Expect ':' after 'default'.")
				previousCaseSkip = -1
			}
			continue
		}

		if state == 0 {
			c.error("Can't have statements before any case.")
		}
		c.statement()
	}

	if state == 1 {
		caseEnds = append(caseEnds, c.emitJump(chunk.OpJump))
		c.patchJump(previousCaseSkip)
		c.emitOp(chunk.OpPop)
	}
	for _, end := range caseEnds {
		c.patchJump(end)
	}

	c.consume(token.RightBrace, "Expect '}' after switch body.")
	c.emitOp(chunk.OpPop) // the subject
}
