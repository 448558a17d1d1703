// Package gc implements the tri-color mark-sweep collector spec.md
// §4.6 describes: an allocation-accounting counter drives collection,
// marking walks a gray worklist, and sweep unlinks unmarked objects.
//
// Objects are tracked in a flat slice rather than through clox's
// intrusive Obj.next pointer chain — spec.md §9's Design Notes call this
// out explicitly as the idiomatic substitute ("Represent objects as
// indices into arenas... the header/mark-bit/next-link held
// out-of-line") for a language, like Go, where every heap reference
// already is a safe, GC-visible pointer and there is no payoff to
// hand-rolling a second linked list through it.
package gc

import (
	"ember/internal/object"
	"ember/internal/table"
	"ember/internal/value"
)

// GrowFactor is spec.md's GC_HEAP_GROW_FACTOR.
const GrowFactor = 2.0

// Stats is a point-in-time summary of heap state, used both for the
// "ember gc-monitor" live dashboard and "ember inspect" snapshots.
type Stats struct {
	BytesAllocated int64
	NextGC         int64
	ObjectCount    int
	Cycles         int
	CountByKind    map[value.ObjKind]int
}

type record struct {
	obj  value.Obj
	size int64
}

// Heap owns every object allocated during a program's lifetime, the
// string intern table, and the allocation-accounting counters that
// drive collection.
type Heap struct {
	records        []record
	bytesAllocated int64
	nextGC         int64
	growFactor     float64
	stress         bool

	gray []value.Obj

	// Strings is the intern table. It is deliberately never marked as a
	// GC root: spec.md §4.4/§4.6 hold it as a weak map from content to
	// canonical String, cleaned up by RemoveWhite after tracing so an
	// interned string with no other reference can still be collected.
	Strings *table.Table

	// InitString is the cached canonical "init" string (spec.md §4.5);
	// it IS a root, marked by the VM's root callback like any other.
	InitString *value.String

	markRoots func(h *Heap)
	onCollect func(Stats)
	cycles    int
}

// Config carries the tunable knobs New needs (mirrors config.GC without
// importing package config, which would pull in github.com/BurntSushi/toml
// here for no reason).
type Config struct {
	InitialHeapBytes int64
	GrowFactor       float64
	Stress           bool
}

// New returns a Heap with its intern table ready and InitString interned.
func New(cfg Config) *Heap {
	if cfg.GrowFactor == 0 {
		cfg.GrowFactor = GrowFactor
	}
	h := &Heap{
		nextGC:     cfg.InitialHeapBytes,
		growFactor: cfg.GrowFactor,
		stress:     cfg.Stress,
		Strings:    table.New(),
	}
	h.InitString = h.InternString("init")
	return h
}

// SetRootMarker installs the callback the collector invokes at the start
// of every cycle to mark the VM's roots (stack, frames, open upvalues,
// globals, compiler chain). Kept as a callback rather than an interface
// so package gc never imports package vm.
func (h *Heap) SetRootMarker(fn func(*Heap)) { h.markRoots = fn }

// SetCollectHook installs a callback invoked after every completed
// collection cycle, used by the "gc-monitor" dashboard and logging.
func (h *Heap) SetCollectHook(fn func(Stats)) { h.onCollect = fn }

// Stats returns a snapshot of current heap accounting.
func (h *Heap) Stats() Stats {
	byKind := make(map[value.ObjKind]int)
	for _, r := range h.records {
		byKind[r.obj.ObjKind()]++
	}
	return Stats{
		BytesAllocated: h.bytesAllocated,
		NextGC:         h.nextGC,
		ObjectCount:    len(h.records),
		Cycles:         h.cycles,
		CountByKind:    byKind,
	}
}

func (h *Heap) track(o value.Obj, size int64) {
	h.records = append(h.records, record{obj: o, size: size})
	h.bytesAllocated += size
	if h.stress || h.bytesAllocated > h.nextGC {
		h.Collect()
	}
}

// MarkValue marks v's object, if any, gray.
func (h *Heap) MarkValue(v value.Value) {
	if v.IsObj() {
		h.MarkObject(v.AsObj())
	}
}

// MarkObject marks o gray (pushes it on the worklist) unless it is
// already marked, per spec.md §4.6 step 1.
func (h *Heap) MarkObject(o value.Obj) {
	if o == nil || o.Marked() {
		return
	}
	o.SetMarked(true)
	h.gray = append(h.gray, o)
}

// MarkTable marks every key and value the table holds reachable — used
// by the VM's root callback for the globals table, and by blacken for
// class method tables and instance field tables.
func (h *Heap) MarkTable(t *table.Table) {
	if t == nil {
		return
	}
	t.Each(func(key *value.String, val value.Value) {
		h.MarkObject(key)
		h.MarkValue(val)
	})
}

// Collect runs one full mark-sweep cycle (spec.md §4.6 steps 1-5).
func (h *Heap) Collect() {
	if h.markRoots != nil {
		h.markRoots(h)
	}
	h.trace()
	if h.Strings != nil {
		h.Strings.RemoveWhite()
	}
	h.sweep()
	h.nextGC = int64(float64(h.bytesAllocated) * h.growFactor)
	h.cycles++
	if h.onCollect != nil {
		h.onCollect(h.Stats())
	}
}

func (h *Heap) trace() {
	for len(h.gray) > 0 {
		o := h.gray[len(h.gray)-1]
		h.gray = h.gray[:len(h.gray)-1]
		h.blacken(o)
	}
}

// blacken marks o's children, per the type-by-type rules spec.md §4.6
// step 2 lists.
func (h *Heap) blacken(o value.Obj) {
	switch v := o.(type) {
	case *value.String:
		// no children
	case *object.Native:
		// no children
	case *object.Function:
		if v.Name != nil {
			h.MarkObject(v.Name)
		}
		for _, c := range v.Chunk.Constants {
			if cv, ok := c.(value.Value); ok {
				h.MarkValue(cv)
			}
		}
	case *object.Closure:
		h.MarkObject(v.Function)
		for _, uv := range v.Upvalues {
			if uv != nil {
				h.MarkObject(uv)
			}
		}
	case *object.Upvalue:
		h.MarkValue(v.Closed)
	case *object.Class:
		if v.Name != nil {
			h.MarkObject(v.Name)
		}
		h.MarkTable(v.Methods)
		h.MarkValue(v.Init)
	case *object.Instance:
		h.MarkObject(v.Class)
		h.MarkTable(v.Fields)
	case *object.BoundMethod:
		h.MarkValue(v.Receiver)
		h.MarkObject(v.Method)
	}
}

func (h *Heap) sweep() {
	survivors := h.records[:0]
	for _, r := range h.records {
		if r.obj.Marked() {
			r.obj.SetMarked(false)
			survivors = append(survivors, r)
		} else {
			h.bytesAllocated -= r.size
		}
	}
	h.records = survivors
}
