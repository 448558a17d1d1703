package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ember/internal/table"
	"ember/internal/value"
)

func key(s string) *value.String {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return value.NewString(s, h)
}

func TestSetAndGet(t *testing.T) {
	tb := table.New()
	k := key("x")
	require.True(t, tb.Set(k, value.NumberValue(1)))

	v, ok := tb.Get(k)
	require.True(t, ok)
	require.Equal(t, 1.0, v.AsNumber())
}

func TestSetOverwriteReportsNotNew(t *testing.T) {
	tb := table.New()
	k := key("x")
	tb.Set(k, value.NumberValue(1))
	isNew := tb.Set(k, value.NumberValue(2))
	require.False(t, isNew)

	v, _ := tb.Get(k)
	require.Equal(t, 2.0, v.AsNumber())
}

func TestGetMissingKey(t *testing.T) {
	tb := table.New()
	_, ok := tb.Get(key("missing"))
	require.False(t, ok)
}

func TestDeleteThenLookupMiss(t *testing.T) {
	tb := table.New()
	k := key("x")
	tb.Set(k, value.NumberValue(1))
	require.True(t, tb.Delete(k))
	_, ok := tb.Get(k)
	require.False(t, ok)
}

func TestDeleteLeavesTombstoneForProbing(t *testing.T) {
	tb := table.New()
	a, b := key("a"), key("b")
	tb.Set(a, value.NumberValue(1))
	tb.Set(b, value.NumberValue(2))
	tb.Delete(a)

	v, ok := tb.Get(b)
	require.True(t, ok, "probing past a tombstone must still find later keys")
	require.Equal(t, 2.0, v.AsNumber())
}

func TestGrowthPreservesAllEntries(t *testing.T) {
	tb := table.New()
	keys := make([]*value.String, 0, 50)
	for i := 0; i < 50; i++ {
		k := key(string(rune('a' + i%26)) + string(rune(i)))
		keys = append(keys, k)
		tb.Set(k, value.NumberValue(float64(i)))
	}
	for i, k := range keys {
		v, ok := tb.Get(k)
		require.True(t, ok)
		require.Equal(t, float64(i), v.AsNumber())
	}
	require.Equal(t, 50, tb.Count())
}

func TestFindStringDedupsByContent(t *testing.T) {
	tb := table.New()
	k := key("shared")
	tb.Set(k, value.NilValue)

	found := tb.FindString("shared", k.Hash)
	require.Same(t, k, found)

	require.Nil(t, tb.FindString("absent", key("absent").Hash))
}

func TestRemoveWhiteDropsUnmarkedKeys(t *testing.T) {
	tb := table.New()
	marked := key("kept")
	unmarked := key("swept")
	marked.SetMarked(true)
	tb.Set(marked, value.NilValue)
	tb.Set(unmarked, value.NilValue)

	tb.RemoveWhite()

	_, ok := tb.Get(marked)
	require.True(t, ok)
	_, ok = tb.Get(unmarked)
	require.False(t, ok)
}

func TestEachVisitsEveryLiveEntry(t *testing.T) {
	tb := table.New()
	a, b := key("a"), key("b")
	tb.Set(a, value.NumberValue(1))
	tb.Set(b, value.NumberValue(2))

	seen := map[string]float64{}
	tb.Each(func(k *value.String, v value.Value) {
		seen[k.Chars] = v.AsNumber()
	})
	require.Equal(t, map[string]float64{"a": 1, "b": 2}, seen)
}
