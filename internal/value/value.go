// Package value implements the runtime Value representation (spec.md
// §4.3) and the heap object variants it can point to (spec.md §3). The
// only encoding is a tagged struct; nanbox.go is a placeholder that holds
// no NaN-boxed implementation.
package value

// Type tags the variant held by a Value.
type Type uint8

const (
	Nil Type = iota
	Bool
	Number
	ObjVal
)

// Value is a uniform runtime datum. Only the field matching Type is
// meaningful; this mirrors clox's tagged union translated into Go's
// idiom of a small struct instead of a C union, since Go has no
// portable reinterpret-cast between an 8-byte float and a pointer.
type Value struct {
	Type Type
	num  float64
	obj  Obj
	b    bool
}

// NilValue is the singleton nil Value.
var NilValue = Value{Type: Nil}

// BoolValue constructs a boolean Value.
func BoolValue(b bool) Value { return Value{Type: Bool, b: b} }

// NumberValue constructs a numeric Value.
func NumberValue(n float64) Value { return Value{Type: Number, num: n} }

// ObjValue constructs an object-reference Value.
func ObjValue(o Obj) Value { return Value{Type: ObjVal, obj: o} }

func (v Value) IsNil() bool    { return v.Type == Nil }
func (v Value) IsBool() bool   { return v.Type == Bool }
func (v Value) IsNumber() bool { return v.Type == Number }
func (v Value) IsObj() bool    { return v.Type == ObjVal }

func (v Value) AsBool() bool      { return v.b }
func (v Value) AsNumber() float64 { return v.num }
func (v Value) AsObj() Obj        { return v.obj }

// IsString reports whether v holds a *String.
func (v Value) IsString() bool {
	return v.Type == ObjVal && v.obj.ObjKind() == StringKind
}

// AsString asserts v holds a *String and returns it.
func (v Value) AsString() *String { return v.obj.(*String) }

// IsFalsey implements spec.md §4.3 falsiness: nil and false are falsey,
// everything else is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements spec.md §4.3 type-strict equality: no coercion between
// variants; strings and other objects compare by pointer identity
// (interning makes string identity equivalent to content equality).
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case Nil:
		return true
	case Bool:
		return a.AsBool() == b.AsBool()
	case Number:
		return a.AsNumber() == b.AsNumber()
	case ObjVal:
		return a.AsObj() == b.AsObj()
	default:
		return false
	}
}
