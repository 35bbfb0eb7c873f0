//go:build windows

package wgl

import (
	"testing"

	"github.com/go-webgpu/goffi/types"

	"github.com/kael-ip/hexgl/capability"
	"github.com/kael-ip/hexgl/platform"
	"github.com/kael-ip/hexgl/synth"
)

func TestTypeFor(t *testing.T) {
	tests := []struct {
		kind capability.Kind
		want *types.TypeDescriptor
	}{
		{capability.Void, types.VoidTypeDescriptor},
		{capability.Bool, types.UInt8TypeDescriptor},
		{capability.Int8, types.SInt8TypeDescriptor},
		{capability.Uint16, types.UInt16TypeDescriptor},
		{capability.Int32, types.SInt32TypeDescriptor},
		{capability.Uint32, types.UInt32TypeDescriptor},
		{capability.Int64, types.SInt64TypeDescriptor},
		{capability.Float32, types.FloatTypeDescriptor},
		{capability.Float64, types.DoubleTypeDescriptor},
		{capability.Pointer, types.PointerTypeDescriptor},
	}
	for _, tt := range tests {
		got, err := typeFor(tt.kind)
		if err != nil || got != tt.want {
			t.Errorf("typeFor(%v) = %v, %v", tt.kind, got, err)
		}
	}
	if _, err := typeFor(capability.Kind(200)); err == nil {
		t.Error("typeFor accepted an invalid kind")
	}
}

func TestRegistered(t *testing.T) {
	p := platform.Get(Name)
	if p == nil || p.Name() != Name {
		t.Fatalf("platform.Get(%q) = %v", Name, p)
	}
	best, err := platform.Default()
	if err != nil || best.Name() != Name {
		t.Errorf("platform.Default() = %v, %v", best, err)
	}
}

func TestModuleExports(t *testing.T) {
	p := New()
	if addr := p.GetModuleProcAddress("glGetString"); addr == 0 {
		t.Error("opengl32.dll does not export glGetString")
	}
	if addr := p.GetModuleProcAddress("glNoSuchFunction"); addr != 0 {
		t.Errorf("GetModuleProcAddress(glNoSuchFunction) = %#x", addr)
	}
}

func TestBindPreparesCallInterface(t *testing.T) {
	iface := capability.MustNew("T", "", capability.Sig("ClearColor", capability.Void,
		capability.Float32, capability.Float32, capability.Float32, capability.Float32))
	stubs, err := synth.Synthesize(iface)
	if err != nil {
		t.Fatal(err)
	}
	p := New()
	addr := p.GetModuleProcAddress("glClearColor")
	if addr == 0 {
		t.Skip("glClearColor not exported")
	}
	proc, err := p.Bind(addr, stubs.Descriptor(0))
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if _, err := proc.Call([]synth.Value{synth.Float32Value(1)}); err == nil {
		t.Error("Call() with wrong arity succeeded")
	}
}
