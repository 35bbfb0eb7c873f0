package gl

import (
	"strings"
	"unsafe"
)

// maxStringLen bounds GoString scans of driver-owned memory.
const maxStringLen = 1 << 20

// Str returns a pointer to a NUL-terminated copy of s. The memory stays
// valid while the pointer is reachable, which covers any entry point call
// it is passed to.
func Str(s string) *uint8 {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// Strs returns a pointer to an array of NUL-terminated copies of ss,
// suitable for ShaderSource. It returns nil when ss is empty.
func Strs(ss ...string) **uint8 {
	if len(ss) == 0 {
		return nil
	}
	ptrs := make([]*uint8, len(ss))
	for i, s := range ss {
		ptrs[i] = Str(s)
	}
	return &ptrs[0]
}

// GoString copies the NUL-terminated string at p, as returned by
// GetString. A zero pointer yields "".
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	base := *(*unsafe.Pointer)(unsafe.Pointer(&p))
	n := 0
	for n < maxStringLen && *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

// GoStringN returns the text of an info log buffer up to its first NUL.
func GoStringN(buf []byte) string {
	s, _, _ := strings.Cut(string(buf), "\x00")
	return s
}
