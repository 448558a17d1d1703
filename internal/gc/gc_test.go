package gc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ember/internal/gc"
	"ember/internal/value"
)

// ample keeps allocation under the collection threshold for tests that
// need to set up state before triggering Collect() themselves; New's
// zero-value InitialHeapBytes would otherwise GC on the very first
// tracked allocation.
const ample = 1 << 20

func TestInternStringDedups(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample})
	a := h.InternString("hello")
	b := h.InternString("hello")
	require.Same(t, a, b)
}

func TestCollectSweepsUnreachableObjects(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample})
	s := h.AllocString("garbage")
	require.False(t, s.Marked())

	h.Collect()

	require.Equal(t, 0, h.Stats().ObjectCount, "an object with no root marker reaching it must be swept")
}

func TestCollectKeepsRootedObjects(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample})
	s := h.AllocString("kept")
	h.SetRootMarker(func(hp *gc.Heap) {
		hp.MarkObject(s)
	})

	h.Collect()

	require.Equal(t, 1, h.Stats().ObjectCount)
	require.False(t, s.Marked(), "sweep must clear the mark bit for the next cycle")
}

func TestInternedStringSurvivesOnlyWhileRooted(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample})
	h.InternString("ephemeral")
	h.Collect()

	require.Nil(t, h.Strings.FindString("ephemeral", gc.HashString("ephemeral")),
		"an interned string with no other root must be removed from the intern table at sweep")
}

func TestStressModeCollectsOnEveryAllocation(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample, Stress: true})
	cycles := 0
	h.SetCollectHook(func(gc.Stats) { cycles++ })

	h.AllocString("a")
	h.AllocString("b")
	h.AllocString("c")

	require.Equal(t, 3, cycles)
}

func TestClosureBlackensFunctionAndUpvalues(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample})
	fn := h.AllocFunction()
	fn.UpvalCount = 1
	closure := h.AllocClosure(fn)
	slot := value.NumberValue(1)
	uv := h.AllocUpvalue(&slot)
	closure.Upvalues[0] = uv

	h.SetRootMarker(func(hp *gc.Heap) {
		hp.MarkObject(closure)
	})
	h.Collect()

	require.Equal(t, 3, h.Stats().ObjectCount, "closure, function, and upvalue must all survive via blacken")
}

func TestNextGCGrowsByGrowFactorAfterCollect(t *testing.T) {
	h := gc.New(gc.Config{InitialHeapBytes: ample, GrowFactor: 2.0})
	h.AllocString("x")
	h.Collect()
	require.Equal(t, int64(0), h.Stats().NextGC, "sweeping everything unreachable leaves 0 bytes live, so nextGC is 0")
}
