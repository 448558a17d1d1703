package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ember/internal/value"
)

func TestFalsiness(t *testing.T) {
	require.True(t, value.NilValue.IsFalsey())
	require.True(t, value.BoolValue(false).IsFalsey())
	require.False(t, value.BoolValue(true).IsFalsey())
	require.False(t, value.NumberValue(0).IsFalsey())
	require.False(t, value.NumberValue(1).IsFalsey())
}

func TestEqualTypeStrict(t *testing.T) {
	require.True(t, value.Equal(value.NumberValue(1), value.NumberValue(1)))
	require.False(t, value.Equal(value.NumberValue(1), value.BoolValue(true)))
	require.False(t, value.Equal(value.NilValue, value.BoolValue(false)))
	require.True(t, value.Equal(value.NilValue, value.NilValue))
}

func TestEqualStringsByIdentity(t *testing.T) {
	a := value.NewString("hi", 1)
	b := value.NewString("hi", 1)
	require.False(t, value.Equal(value.ObjValue(a), value.ObjValue(b)), "distinct allocations must not compare equal without interning")
	require.True(t, value.Equal(value.ObjValue(a), value.ObjValue(a)))
}

func TestIsStringOnlyForStringKind(t *testing.T) {
	s := value.NewString("x", 42)
	v := value.ObjValue(s)
	require.True(t, v.IsString())
	require.Equal(t, s, v.AsString())
	require.False(t, value.NumberValue(1).IsString())
}

func TestObjHeaderMarking(t *testing.T) {
	s := value.NewString("x", 1)
	require.False(t, s.Marked())
	s.SetMarked(true)
	require.True(t, s.Marked())
	require.Equal(t, value.StringKind, s.ObjKind())
}
