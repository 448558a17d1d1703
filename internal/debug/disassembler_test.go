package debug_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ember/internal/chunk"
	"ember/internal/debug"
	"ember/internal/value"
)

func TestDisassembleChunkSimpleInstruction(t *testing.T) {
	c := chunk.New()
	idx := c.AddConstant(value.NumberValue(1.2))
	c.WriteConstant(idx, 123)
	c.Write(byte(chunk.OpReturn), 123)

	var buf bytes.Buffer
	debug.DisassembleChunk(&buf, c, "test chunk")

	out := buf.String()
	require.Contains(t, out, "== test chunk ==")
	require.Contains(t, out, "OP_CONSTANT")
	require.Contains(t, out, "1.2")
	require.Contains(t, out, "OP_RETURN")
}

func TestDisassembleChunkConstantLong(t *testing.T) {
	c := chunk.New()
	var idx int
	for i := 0; i < 300; i++ {
		idx = c.AddConstant(value.NumberValue(float64(i)))
	}
	c.WriteConstant(idx, 1)

	var buf bytes.Buffer
	debug.DisassembleChunk(&buf, c, "long pool")
	require.Contains(t, buf.String(), "OP_CONSTANT_LONG")
}

func TestDisassembleChunkJumpShowsTarget(t *testing.T) {
	c := chunk.New()
	c.Write(byte(chunk.OpJump), 1)
	c.Write(0, 1)
	c.Write(2, 1)
	c.Write(byte(chunk.OpReturn), 1)

	var buf bytes.Buffer
	debug.DisassembleChunk(&buf, c, "jump")
	lines := strings.Split(buf.String(), "\n")
	require.True(t, len(lines) >= 2)
	require.Contains(t, lines[1], "OP_JUMP")
	require.Contains(t, lines[1], "-> 5")
}
