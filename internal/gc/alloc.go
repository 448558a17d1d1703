package gc

import (
	"ember/internal/object"
	"ember/internal/value"
)

// HashString computes clox's FNV-1a 32-bit hash of s.
func HashString(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}

// Rough per-object byte estimates for the allocation-accounting counter.
// clox accounts exact malloc sizes; Go has no portable sizeof, so these
// are stand-ins good enough to drive the same threshold/grow behavior.
const (
	sizeStringBase = 24
	sizeFunction   = 64
	sizeNative     = 32
	sizeUpvalue    = 32
	sizeClosure    = 40
	sizeClass      = 56
	sizeInstance   = 40
	sizeBoundMeth  = 32
)

// AllocString allocates a new, uninterned String. Callers that want
// interning semantics should use InternString instead.
func (h *Heap) AllocString(chars string) *value.String {
	s := value.NewString(chars, HashString(chars))
	h.track(s, sizeStringBase+int64(len(chars)))
	return s
}

// InternString returns the canonical String for chars, allocating and
// registering a new one only if an equal string isn't already interned
// (spec.md Invariant 3, §4.4 findString).
func (h *Heap) InternString(chars string) *value.String {
	hash := HashString(chars)
	if existing := h.Strings.FindString(chars, hash); existing != nil {
		return existing
	}
	s := value.NewString(chars, hash)
	h.track(s, sizeStringBase+int64(len(chars)))
	h.Strings.Set(s, value.NilValue)
	return s
}

// TakeString is InternString's "owning" counterpart for results of
// computation (e.g. string concatenation, spec.md §4.5): if an
// identical string is already interned, the freshly built one is
// discarded in favor of the canonical instance. In Go there is no
// buffer to free, but the dedup behavior — and the allocation-sequence
// discipline it implies — is preserved.
func (h *Heap) TakeString(chars string) *value.String {
	return h.InternString(chars)
}

func (h *Heap) AllocFunction() *object.Function {
	f := object.NewFunction()
	h.track(f, sizeFunction)
	return f
}

func (h *Heap) AllocNative(name string, fn object.NativeFn) *object.Native {
	n := object.NewNative(name, fn)
	h.track(n, sizeNative)
	return n
}

func (h *Heap) AllocUpvalue(slot *value.Value) *object.Upvalue {
	u := object.NewUpvalue(slot)
	h.track(u, sizeUpvalue)
	return u
}

func (h *Heap) AllocClosure(fn *object.Function) *object.Closure {
	c := object.NewClosure(fn)
	h.track(c, sizeClosure)
	return c
}

func (h *Heap) AllocClass(name *value.String) *object.Class {
	c := object.NewClass(name)
	h.track(c, sizeClass)
	return c
}

func (h *Heap) AllocInstance(class *object.Class) *object.Instance {
	i := object.NewInstance(class)
	h.track(i, sizeInstance)
	return i
}

func (h *Heap) AllocBoundMethod(receiver value.Value, method *object.Closure) *object.BoundMethod {
	b := object.NewBoundMethod(receiver, method)
	h.track(b, sizeBoundMeth)
	return b
}
