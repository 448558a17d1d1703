package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ember/internal/chunk"
)

func TestWriteConstantUsesShortFormBelow256(t *testing.T) {
	c := chunk.New()
	idx := c.AddConstant("a")
	c.WriteConstant(idx, 1)
	require.Equal(t, []byte{byte(chunk.OpConstant), byte(idx)}, c.Code)
}

func TestWriteConstantUsesLongFormAt256(t *testing.T) {
	c := chunk.New()
	var idx int
	for i := 0; i < 300; i++ {
		idx = c.AddConstant(i)
	}
	c.WriteConstant(idx, 1)

	require.Equal(t, byte(chunk.OpConstantLong), c.Code[0])
	decoded := int(c.Code[1]) | int(c.Code[2])<<8 | int(c.Code[3])<<16
	require.Equal(t, idx, decoded)
}

func TestGetLineRunLengthLookup(t *testing.T) {
	c := chunk.New()
	c.Write(1, 10)
	c.Write(2, 10)
	c.Write(3, 11)
	c.Write(4, 11)
	c.Write(5, 15)

	require.Equal(t, 10, c.GetLine(0))
	require.Equal(t, 10, c.GetLine(1))
	require.Equal(t, 11, c.GetLine(2))
	require.Equal(t, 11, c.GetLine(3))
	require.Equal(t, 15, c.GetLine(4))
}

func TestGetLineOnEmptyChunk(t *testing.T) {
	c := chunk.New()
	require.Equal(t, 0, c.GetLine(0))
}

func TestOpStringNamesKnownOpcodes(t *testing.T) {
	require.Equal(t, "OP_RETURN", chunk.OpReturn.String())
	require.Equal(t, "OP_CONSTANT_LONG", chunk.OpConstantLong.String())
}

func TestOpStringUnknownOpcode(t *testing.T) {
	require.Equal(t, "OP_UNKNOWN", chunk.Op(255).String())
}
