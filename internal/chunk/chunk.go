package chunk

import "fortio.org/safecast"

// lineRun is one run-length entry: every instruction byte at offsets
// [Offset, next run's Offset) was emitted from source Line.
type lineRun struct {
	Offset int
	Line   int
}

// Chunk is a compiled unit: a byte-coded instruction stream, its
// constants pool, and a side table mapping instruction offsets back to
// source lines.
type Chunk struct {
	Code      []byte
	Constants []any
	lines     []lineRun
}

// New returns an empty chunk.
func New() *Chunk {
	return &Chunk{}
}

// Write appends one instruction byte, recorded as emitted from line.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.recordLine(line)
}

// recordLine appends a new run only when line differs from the last
// recorded one, per spec.md §4.7.
func (c *Chunk) recordLine(line int) {
	if len(c.lines) > 0 && c.lines[len(c.lines)-1].Line == line {
		return
	}
	c.lines = append(c.lines, lineRun{Offset: len(c.Code) - 1, Line: line})
}

// AddConstant appends v to the constants pool and returns its index.
func (c *Chunk) AddConstant(v any) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// WriteConstant emits the correct get-constant instruction for index: a
// 1-byte OP_CONSTANT when index narrows losslessly to a byte, otherwise
// a 3-byte OP_CONSTANT_LONG (spec.md §4 supplemented feature 1).
// safecast.Conv reports the narrowing failure instead of a plain
// `index < 256` comparison, the same checked-conversion discipline
// internal/lexer uses for its own index-width check.
func (c *Chunk) WriteConstant(index int, line int) {
	if b, err := safecast.Conv[uint8](index); err == nil {
		c.Write(byte(OpConstant), line)
		c.Write(b, line)
		return
	}
	c.Write(byte(OpConstantLong), line)
	c.Write(byte(index&0xff), line)
	c.Write(byte((index>>8)&0xff), line)
	c.Write(byte((index>>16)&0xff), line)
}

// GetLine performs the binary search described in spec.md §4.7: find the
// last run whose Offset <= instruction offset, and return its Line.
func (c *Chunk) GetLine(offset int) int {
	lo, hi := 0, len(c.lines)-1
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if c.lines[mid].Offset <= offset {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if len(c.lines) == 0 {
		return 0
	}
	return c.lines[best].Line
}
