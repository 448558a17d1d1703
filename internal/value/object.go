package value

// ObjKind tags the concrete type of a heap object.
type ObjKind uint8

const (
	StringKind ObjKind = iota
	FunctionKind
	NativeKind
	ClosureKind
	UpvalueKind
	ClassKind
	InstanceKind
	BoundMethodKind
)

// Obj is the interface every heap entity satisfies: a variant tag and a
// GC mark bit. Every concrete variant (defined here and in package
// object) embeds ObjHeader to pick up these methods, the way clox gives
// every Obj the same three-field header — tag, mark bit, intrusive next
// link — translated into Go's embedding instead of a leading C struct
// field. The "next" intrusive link itself is not part of this interface:
// the GC's object list is a flat slice the heap owns (spec.md §9's
// arena-of-handles alternative), not a pointer chase through the heap.
type Obj interface {
	ObjKind() ObjKind
	Marked() bool
	SetMarked(bool)
}

// ObjHeader is the common header embedded by every concrete object type.
type ObjHeader struct {
	kind   ObjKind
	marked bool
}

func NewHeader(k ObjKind) ObjHeader { return ObjHeader{kind: k} }

func (h *ObjHeader) ObjKind() ObjKind    { return h.kind }
func (h *ObjHeader) Marked() bool        { return h.marked }
func (h *ObjHeader) SetMarked(m bool)    { h.marked = m }

// String is an immutable interned byte sequence with a precomputed hash.
// It lives in package value rather than package object because the
// open-addressed table (package table) keys entries by *String and must
// not import package object to avoid a cycle through ObjFunction's
// chunk-holding siblings.
type String struct {
	ObjHeader
	Chars string
	Hash  uint32
}

// NewString constructs a String object with the given precomputed hash.
// It does not intern — interning is the VM's job via the intern table.
func NewString(chars string, hash uint32) *String {
	return &String{ObjHeader: NewHeader(StringKind), Chars: chars, Hash: hash}
}
