// Package debug implements the chunk disassembler spec.md §4.7
// describes: a human-readable listing of a chunk's instruction stream,
// one line per instruction, annotated with the source line it came
// from via chunk.Chunk.GetLine's run-length lookup.
package debug

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"ember/internal/chunk"
	"ember/internal/object"
	"ember/internal/value"
)

// padOp right-pads an opcode's name to a fixed display width, the same
// display-width-aware padding internal/ui uses for its own tables —
// opcode names are ASCII today, but formatConstant below can embed a
// multi-byte string constant in the same line, so the column math has
// to be rune-width aware rather than byte-count `%-16s`.
func padOp(op chunk.Op) string {
	return runewidth.FillRight(op.String(), 16)
}

// DisassembleChunk writes name followed by every instruction in c to w.
func DisassembleChunk(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = DisassembleInstruction(w, c, offset)
	}
}

// DisassembleFunction writes fn's chunk, then recurses into every
// function stored in its constants pool, the way the original
// compiler's DEBUG_PRINT_CODE build dumps one function at a time as
// endCompiler pops back out of nested function bodies.
func DisassembleFunction(w io.Writer, fn *object.Function) {
	name := "<script>"
	if fn.Name != nil {
		name = fn.Name.Chars
	}
	DisassembleChunk(w, fn.Chunk, name)
	for _, c := range fn.Chunk.Constants {
		v, ok := c.(value.Value)
		if !ok || !v.IsObj() {
			continue
		}
		if nested, ok := v.AsObj().(*object.Function); ok {
			fmt.Fprintln(w)
			DisassembleFunction(w, nested)
		}
	}
}

// DisassembleInstruction writes one instruction at offset to w and
// returns the offset of the next instruction.
func DisassembleInstruction(w io.Writer, c *chunk.Chunk, offset int) int {
	line := c.GetLine(offset)
	fmt.Fprintf(w, "%04d %4d  ", offset, line)

	op := chunk.Op(c.Code[offset])
	switch op {
	case chunk.OpConstant:
		return constantInstruction(w, c, op, offset)
	case chunk.OpConstantLong:
		return constantLongInstruction(w, c, op, offset)
	case chunk.OpGetLocal, chunk.OpSetLocal, chunk.OpGetUpvalue, chunk.OpSetUpvalue,
		chunk.OpCall, chunk.OpPopN:
		return byteInstruction(w, c, op, offset)
	case chunk.OpGetGlobal, chunk.OpDefineGlobal, chunk.OpSetGlobal,
		chunk.OpGetProperty, chunk.OpSetProperty, chunk.OpGetSuper,
		chunk.OpClass, chunk.OpMethod:
		return constantInstruction(w, c, op, offset)
	case chunk.OpInvoke, chunk.OpSuperInvoke:
		return invokeInstruction(w, c, op, offset)
	case chunk.OpJump, chunk.OpJumpIfFalse:
		return jumpInstruction(w, c, op, offset, 1)
	case chunk.OpLoop:
		return jumpInstruction(w, c, op, offset, -1)
	case chunk.OpClosure:
		return closureInstruction(w, c, offset)
	default:
		return simpleInstruction(w, op, offset)
	}
}

func simpleInstruction(w io.Writer, op chunk.Op, offset int) int {
	fmt.Fprintf(w, "%s\n", op)
	return offset + 1
}

func byteInstruction(w io.Writer, c *chunk.Chunk, op chunk.Op, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%s %4d\n", padOp(op), slot)
	return offset + 2
}

func jumpInstruction(w io.Writer, c *chunk.Chunk, op chunk.Op, offset, sign int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	fmt.Fprintf(w, "%s %4d -> %d\n", padOp(op), offset, offset+3+sign*jump)
	return offset + 3
}

func constantInstruction(w io.Writer, c *chunk.Chunk, op chunk.Op, offset int) int {
	index := int(c.Code[offset+1])
	fmt.Fprintf(w, "%s %4d '%s'\n", padOp(op), index, formatConstant(c.Constants[index]))
	return offset + 2
}

// constantLongInstruction decodes the supplemented 24-bit operand
// OP_CONSTANT_LONG emits once a chunk's pool crosses 256 entries.
func constantLongInstruction(w io.Writer, c *chunk.Chunk, op chunk.Op, offset int) int {
	index := int(c.Code[offset+1]) | int(c.Code[offset+2])<<8 | int(c.Code[offset+3])<<16
	fmt.Fprintf(w, "%s %4d '%s'\n", padOp(op), index, formatConstant(c.Constants[index]))
	return offset + 4
}

func invokeInstruction(w io.Writer, c *chunk.Chunk, op chunk.Op, offset int) int {
	index := int(c.Code[offset+1])
	argCount := int(c.Code[offset+2])
	fmt.Fprintf(w, "%s (%d args) %4d '%s'\n", padOp(op), argCount, index, formatConstant(c.Constants[index]))
	return offset + 3
}

func closureInstruction(w io.Writer, c *chunk.Chunk, offset int) int {
	index := int(c.Code[offset+1])
	var fn *object.Function
	if v, ok := c.Constants[index].(value.Value); ok && v.IsObj() {
		fn, _ = v.AsObj().(*object.Function)
	}
	fmt.Fprintf(w, "%s %4d '%s'\n", padOp(chunk.OpClosure), index, formatConstant(c.Constants[index]))
	offset += 2
	if fn == nil {
		return offset
	}
	for i := 0; i < fn.UpvalCount; i++ {
		isLocal := c.Code[offset]
		slot := c.Code[offset+1]
		kind := "upvalue"
		if isLocal != 0 {
			kind = "local"
		}
		fmt.Fprintf(w, "%04d      |                     %s %d\n", offset, kind, slot)
		offset += 2
	}
	return offset
}

// formatConstant renders a constants-pool entry. Most entries are
// value.Value already unwrapped by the compiler; nested functions show
// their own name rather than their whole chunk.
func formatConstant(c any) string {
	v, ok := c.(value.Value)
	if !ok {
		return fmt.Sprintf("%v", c)
	}
	switch {
	case v.IsNil():
		return "nil"
	case v.IsBool():
		if v.AsBool() {
			return "true"
		}
		return "false"
	case v.IsNumber():
		return fmt.Sprintf("%g", v.AsNumber())
	case v.IsString():
		return v.AsString().Chars
	case v.IsObj():
		if fn, ok := v.AsObj().(*object.Function); ok {
			if fn.Name == nil {
				return "<script>"
			}
			return "<fn " + fn.Name.Chars + ">"
		}
		return "<obj>"
	default:
		return "<obj>"
	}
}
