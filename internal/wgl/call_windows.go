//go:build windows

package wgl

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"

	"github.com/kael-ip/hexgl/capability"
	"github.com/kael-ip/hexgl/synth"
)

// typeFor maps a value kind to its native call descriptor.
func typeFor(k capability.Kind) (*types.TypeDescriptor, error) {
	switch k {
	case capability.Void:
		return types.VoidTypeDescriptor, nil
	case capability.Bool, capability.Uint8:
		return types.UInt8TypeDescriptor, nil
	case capability.Int8:
		return types.SInt8TypeDescriptor, nil
	case capability.Int16:
		return types.SInt16TypeDescriptor, nil
	case capability.Uint16:
		return types.UInt16TypeDescriptor, nil
	case capability.Int32:
		return types.SInt32TypeDescriptor, nil
	case capability.Uint32:
		return types.UInt32TypeDescriptor, nil
	case capability.Int64:
		return types.SInt64TypeDescriptor, nil
	case capability.Uint64:
		return types.UInt64TypeDescriptor, nil
	case capability.Float32:
		return types.FloatTypeDescriptor, nil
	case capability.Float64:
		return types.DoubleTypeDescriptor, nil
	case capability.Pointer:
		return types.PointerTypeDescriptor, nil
	}
	return nil, fmt.Errorf("wgl: no native type for kind %s", k)
}

// proc is a native function with a prepared call interface. The call
// interface is read-only after preparation, so one proc may be called from
// several goroutines.
type proc struct {
	name  string
	fn    unsafe.Pointer
	cif   types.CallInterface
	ret   capability.Kind
	arity int
}

func newProc(addr uintptr, d *synth.Descriptor) (*proc, error) {
	ret, err := typeFor(d.Return())
	if err != nil {
		return nil, err
	}
	args := make([]*types.TypeDescriptor, d.Arity())
	for i := range args {
		if args[i], err = typeFor(d.Param(i)); err != nil {
			return nil, err
		}
	}

	p := &proc{
		name:  d.Name(),
		fn:    *(*unsafe.Pointer)(unsafe.Pointer(&addr)),
		ret:   d.Return(),
		arity: d.Arity(),
	}
	if err := ffi.PrepareCallInterface(&p.cif, types.DefaultCall, ret, args); err != nil {
		return nil, fmt.Errorf("wgl: prepare %s: %w", d.Name(), err)
	}
	return p, nil
}

// Call implements platform.Proc. Each argument occupies one 64-bit slot
// holding its normalized little-endian bits; the callee reads as many
// bytes as its declared type needs.
func (p *proc) Call(args []synth.Value) (synth.Value, error) {
	if len(args) != p.arity {
		return synth.Value{}, fmt.Errorf("wgl: %s takes %d arguments, got %d", p.name, p.arity, len(args))
	}
	slots := make([]uint64, len(args))
	avalue := make([]unsafe.Pointer, len(args))
	for i, a := range args {
		slots[i] = a.Bits()
		avalue[i] = unsafe.Pointer(&slots[i])
	}

	var ret uint64
	var rvalue unsafe.Pointer
	if p.ret != capability.Void {
		rvalue = unsafe.Pointer(&ret)
	}
	if err := ffi.CallFunction(&p.cif, p.fn, rvalue, avalue); err != nil {
		return synth.Value{}, fmt.Errorf("wgl: call %s: %w", p.name, err)
	}
	return synth.FromBits(p.ret, ret), nil
}
