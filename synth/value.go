package synth

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kael-ip/hexgl/capability"
)

// Value is the uniform argument and result representation: a kind tag and
// up to 64 bits of payload.
//
// The payload is kept normalized for its kind (sign-extended for signed
// integers, zero-extended otherwise, IEEE bits for floats), so the low
// Size() bytes are exactly the native little-endian encoding. The zero
// Value is the void value.
type Value struct {
	kind capability.Kind
	bits uint64
}

// FromBits builds a Value of kind k from a raw register-sized payload,
// discarding the bits that do not belong to k.
func FromBits(k capability.Kind, raw uint64) Value {
	var bits uint64
	switch k {
	case capability.Bool:
		if raw&0xff != 0 {
			bits = 1
		}
	case capability.Int8:
		bits = uint64(int64(int8(raw)))
	case capability.Int16:
		bits = uint64(int64(int16(raw)))
	case capability.Int32:
		bits = uint64(int64(int32(raw)))
	case capability.Int64, capability.Uint64, capability.Float64:
		bits = raw
	case capability.Uint8:
		bits = raw & 0xff
	case capability.Uint16:
		bits = raw & 0xffff
	case capability.Uint32, capability.Float32:
		bits = raw & 0xffffffff
	case capability.Pointer:
		bits = raw
		if strconv.IntSize == 32 {
			bits &= 0xffffffff
		}
	default:
		k = capability.Void
	}
	return Value{kind: k, bits: bits}
}

// BoolValue returns a Bool value.
func BoolValue(b bool) Value {
	if b {
		return Value{kind: capability.Bool, bits: 1}
	}
	return Value{kind: capability.Bool}
}

// Int8Value returns an Int8 value.
func Int8Value(v int8) Value { return FromBits(capability.Int8, uint64(v)) }

// Int16Value returns an Int16 value.
func Int16Value(v int16) Value { return FromBits(capability.Int16, uint64(v)) }

// Int32Value returns an Int32 value.
func Int32Value(v int32) Value { return FromBits(capability.Int32, uint64(v)) }

// Int64Value returns an Int64 value.
func Int64Value(v int64) Value { return FromBits(capability.Int64, uint64(v)) }

// Uint8Value returns a Uint8 value.
func Uint8Value(v uint8) Value { return FromBits(capability.Uint8, uint64(v)) }

// Uint16Value returns a Uint16 value.
func Uint16Value(v uint16) Value { return FromBits(capability.Uint16, uint64(v)) }

// Uint32Value returns a Uint32 value.
func Uint32Value(v uint32) Value { return FromBits(capability.Uint32, uint64(v)) }

// Uint64Value returns a Uint64 value.
func Uint64Value(v uint64) Value { return FromBits(capability.Uint64, v) }

// Float32Value returns a Float32 value.
func Float32Value(f float32) Value {
	return Value{kind: capability.Float32, bits: uint64(math.Float32bits(f))}
}

// Float64Value returns a Float64 value.
func Float64Value(f float64) Value {
	return Value{kind: capability.Float64, bits: math.Float64bits(f)}
}

// PointerValue returns a Pointer value holding addr.
func PointerValue(addr uintptr) Value { return FromBits(capability.Pointer, uint64(addr)) }

// Kind returns the value's kind.
func (v Value) Kind() capability.Kind { return v.kind }

// IsVoid reports whether v carries no value.
func (v Value) IsVoid() bool { return v.kind == capability.Void }

// Bits returns the normalized payload.
func (v Value) Bits() uint64 { return v.bits }

// Int returns the payload as a signed integer.
func (v Value) Int() int64 { return int64(v.bits) }

// Uint returns the payload as an unsigned integer.
func (v Value) Uint() uint64 { return v.bits }

// Float returns the payload as a float. Non-float kinds convert from their
// integer value.
func (v Value) Float() float64 {
	switch v.kind {
	case capability.Float32:
		return float64(math.Float32frombits(uint32(v.bits)))
	case capability.Float64:
		return math.Float64frombits(v.bits)
	}
	if v.kind.Signed() {
		return float64(int64(v.bits))
	}
	return float64(v.bits)
}

// Bool reports whether the payload is non-zero.
func (v Value) Bool() bool { return v.bits != 0 }

// Pointer returns the payload as an address.
func (v Value) Pointer() uintptr { return uintptr(v.bits) }

// String formats the value for logs and test failures.
func (v Value) String() string {
	switch v.kind.Class() {
	case capability.ClassVoid:
		return "void"
	case capability.ClassBool:
		return strconv.FormatBool(v.Bool())
	case capability.ClassFloat:
		return fmt.Sprintf("%s(%g)", v.kind, v.Float())
	case capability.ClassPointer:
		return fmt.Sprintf("pointer(%#x)", v.bits)
	}
	if v.kind.Signed() {
		return fmt.Sprintf("%s(%d)", v.kind, v.Int())
	}
	return fmt.Sprintf("%s(%d)", v.kind, v.bits)
}
