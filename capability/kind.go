package capability

import "strconv"

// Kind identifies the native representation of a parameter or return value.
//
// Only scalar and pointer-sized values are representable. Each kind has a
// fixed native width so the call layer can build the exact ABI shape.
type Kind uint8

// Value kinds.
const (
	// Void marks a method without a result. It is never a valid parameter.
	Void Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	// Pointer is an address-sized value (C pointers, handles, sizes).
	Pointer

	kindCount
)

// Class is the value category of a Kind.
type Class uint8

// Value classes.
const (
	ClassVoid Class = iota
	ClassBool
	ClassInteger
	ClassFloat
	ClassPointer
)

var kindNames = [kindCount]string{
	Void:    "void",
	Bool:    "bool",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Pointer: "pointer",
}

// String returns the lower-case kind name used in signature listings.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Class returns the value category of k.
func (k Kind) Class() Class {
	switch k {
	case Bool:
		return ClassBool
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return ClassInteger
	case Float32, Float64:
		return ClassFloat
	case Pointer:
		return ClassPointer
	default:
		return ClassVoid
	}
}

// Signed reports whether k is a signed integer kind.
func (k Kind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// Size returns the native width of k in bytes. Void has size 0.
// Bool is one byte wide, matching GLboolean.
func (k Kind) Size() int {
	switch k {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Pointer:
		return strconv.IntSize / 8
	default:
		return 0
	}
}

// ParseKind returns the Kind named s, as printed by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Void, false
}
