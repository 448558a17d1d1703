//go:build nanbox

package value

// This file is a design placeholder for the NaN-boxed encoding spec.md
// §4.3 allows as a drop-in alternative to the tagged Value struct in
// value.go. It is excluded from normal builds (build tag "nanbox") since
// Go's interface-typed Obj field (used so table/object/compiler stay
// decoupled from unsafe pointer tricks) cannot be packed into the
// mantissa of a float64 without an unsafe.Pointer round trip through a
// concrete pointer type — which in turn would force every object
// variant back onto a single concrete *Obj header type, undoing the
// interface-based split that keeps package value acyclic with package
// table and package object (see object.go's Obj-interface comment).
//
// A from-scratch NaN-boxed build would give Value the shape:
//
//	type Value uint64
//
//	const (
//		signBit = uint64(1) << 63
//		qnan    = uint64(0x7ffc000000000000)
//		tagNil  = 1
//		tagFalse = 2
//		tagTrue  = 3
//	)
//
//	func NumberValue(n float64) Value { return Value(math.Float64bits(n)) }
//	func (v Value) IsNumber() bool    { return uint64(v)&qnan != qnan }
//	func (v Value) AsNumber() float64 { return math.Float64frombits(uint64(v)) }
//
// with object references packed as `qnan | signBit | uintptr(objPtr)`
// and unwrapped via unsafe.Pointer. Implementing this fully would also
// require every object variant to share one concrete struct type (no
// interface indirection) so the pointer stored in the low 48 bits can be
// cast back unambiguously — a larger restructuring than this build tag
// stub attempts. DESIGN.md records this as the one Open Question
// resolved in favor of the tagged-struct encoding for the shipped build.
