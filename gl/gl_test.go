package gl

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"unsafe"

	"github.com/kael-ip/hexgl"
	"github.com/kael-ip/hexgl/capability"
	"github.com/kael-ip/hexgl/internal/fakeplatform"
	"github.com/kael-ip/hexgl/synth"
)

func TestBindingCoversEveryField(t *testing.T) {
	b, err := Binding()
	if err != nil {
		t.Fatalf("Binding() error = %v", err)
	}
	iface := b.Interface()
	if n := reflect.TypeFor[Functions]().NumField(); iface.Len() != n {
		t.Errorf("interface has %d methods, Functions has %d fields", iface.Len(), n)
	}
	again, _ := Binding()
	if again != b {
		t.Error("Binding() is not cached")
	}
}

func TestBindingSignatures(t *testing.T) {
	sizeKind := capability.Int64
	if strconv.IntSize == 32 {
		sizeKind = capability.Int32
	}
	tests := []struct {
		name   string
		ret    capability.Kind
		params []capability.Kind
	}{
		{"GetError", capability.Uint32, nil},
		{"GetString", capability.Pointer, []capability.Kind{capability.Uint32}},
		{"ClearColor", capability.Void, []capability.Kind{capability.Float32, capability.Float32, capability.Float32, capability.Float32}},
		{"ClearDepth", capability.Void, []capability.Kind{capability.Float64}},
		{"BufferData", capability.Void, []capability.Kind{capability.Uint32, sizeKind, capability.Pointer, capability.Uint32}},
		{"UniformMatrix4fv", capability.Void, []capability.Kind{capability.Int32, capability.Int32, capability.Uint8, capability.Pointer}},
		{"GetUniformLocation", capability.Int32, []capability.Kind{capability.Uint32, capability.Pointer}},
		{"CheckFramebufferStatus", capability.Uint32, []capability.Kind{capability.Uint32}},
		{"BindVertexArray", capability.Void, []capability.Kind{capability.Uint32}},
	}

	b, err := Binding()
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := b.Interface().Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if sig.Return != tt.ret {
				t.Errorf("return = %v, want %v", sig.Return, tt.ret)
			}
			if len(sig.Params) != len(tt.params) {
				t.Fatalf("params = %v, want %v", sig.Params, tt.params)
			}
			for i := range tt.params {
				if sig.Params[i] != tt.params[i] {
					t.Errorf("param %d = %v, want %v", i, sig.Params[i], tt.params[i])
				}
			}
		})
	}
}

func codes(seq ...Enum) func() Enum {
	return func() Enum {
		if len(seq) == 0 {
			return NO_ERROR
		}
		c := seq[0]
		seq = seq[1:]
		return c
	}
}

func TestCheckError(t *testing.T) {
	f := &Functions{GetError: codes()}
	if err := CheckError(f); err != nil {
		t.Errorf("CheckError() = %v, want nil", err)
	}

	f.GetError = codes(INVALID_OPERATION)
	err := CheckError(f)
	var ne *hexgl.NativeError
	if !errors.As(err, &ne) || ne.Code != INVALID_OPERATION {
		t.Fatalf("CheckError() = %v, want INVALID_OPERATION", err)
	}
	if !errors.Is(err, hexgl.ErrNative) {
		t.Error("error does not match ErrNative")
	}
	if ne.Message() != "invalid operation" {
		t.Errorf("Message() = %q", ne.Message())
	}
}

func TestDrainErrors(t *testing.T) {
	f := &Functions{GetError: codes(INVALID_ENUM, OUT_OF_MEMORY)}
	err := DrainErrors(f)
	if err == nil {
		t.Fatal("DrainErrors() = nil")
	}
	want := []string{"invalid enum", "out of memory"}
	for _, w := range want {
		if !strings.Contains(err.Error(), w) {
			t.Errorf("DrainErrors() = %q, missing %q", err, w)
		}
	}
	if err := DrainErrors(f); err != nil {
		t.Errorf("second DrainErrors() = %v", err)
	}

	stuck := &Functions{GetError: func() Enum { return INVALID_VALUE }}
	calls := 0
	inner := stuck.GetError
	stuck.GetError = func() Enum { calls++; return inner() }
	_ = DrainErrors(stuck)
	if calls != maxErrorPolls {
		t.Errorf("stuck driver polled %d times, want %d", calls, maxErrorPolls)
	}
}

func TestStr(t *testing.T) {
	p := Str("abc")
	got := unsafe.Slice(p, 4)
	if string(got) != "abc\x00" {
		t.Errorf("Str(abc) = %q", got)
	}
	if *Str("") != 0 {
		t.Error("Str(\"\") is not an empty C string")
	}
}

func TestStrs(t *testing.T) {
	if Strs() != nil {
		t.Error("Strs() != nil")
	}
	pp := Strs("a", "bc")
	ptrs := unsafe.Slice(pp, 2)
	if string(unsafe.Slice(ptrs[0], 2)) != "a\x00" || string(unsafe.Slice(ptrs[1], 3)) != "bc\x00" {
		t.Error("Strs() produced wrong strings")
	}
}

func TestGoString(t *testing.T) {
	buf := []byte("4.6.0 NVIDIA\x00garbage")
	if got := GoString(uintptr(unsafe.Pointer(&buf[0]))); got != "4.6.0 NVIDIA" {
		t.Errorf("GoString() = %q", got)
	}
	if got := GoString(0); got != "" {
		t.Errorf("GoString(0) = %q", got)
	}
}

func TestGoStringN(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("error: x\x00\x00\x00"), "error: x"},
		{[]byte("no terminator"), "no terminator"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := GoStringN(tt.in); got != tt.want {
			t.Errorf("GoStringN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		in           string
		major, minor int
	}{
		{"4.6.0 NVIDIA 551.23", 4, 6},
		{"2.1", 2, 1},
		{"1.1.0", 1, 1},
		{"OpenGL ES 3.0", 0, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		major, minor := Version(tt.in)
		if major != tt.major || minor != tt.minor {
			t.Errorf("Version(%q) = %d.%d, want %d.%d", tt.in, major, minor, tt.major, tt.minor)
		}
	}
}

// driverStrings backs the fake glGetString; it must outlive the test.
var driverStrings = map[Enum][]byte{
	VENDOR:                   []byte("hexgl\x00"),
	RENDERER:                 []byte("fake renderer\x00"),
	VERSION:                  []byte("2.1 fake\x00"),
	SHADING_LANGUAGE_VERSION: []byte("1.20\x00"),
	EXTENSIONS:               []byte("GL_ARB_vertex_buffer_object GL_EXT_framebuffer_object\x00"),
}

func newFake() *fakeplatform.Platform {
	fp := fakeplatform.New()
	fp.Define("glGetError", func([]synth.Value) (synth.Value, error) {
		return synth.Uint32Value(NO_ERROR), nil
	})
	fp.Define("glGetString", func(args []synth.Value) (synth.Value, error) {
		b, ok := driverStrings[Enum(args[0].Uint())]
		if !ok {
			return synth.PointerValue(0), nil
		}
		return synth.PointerValue(uintptr(unsafe.Pointer(&b[0]))), nil
	})
	fp.Define("glClear", func([]synth.Value) (synth.Value, error) { return synth.Value{}, nil })
	return fp
}

func TestQueryInfoThroughContext(t *testing.T) {
	fp := newFake()
	ctx, err := Create(0x1, hexgl.WithPlatform(fp))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer ctx.Dispose()

	var info Info
	err = ctx.Execute(func(f *Functions) error {
		f.Clear(COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT)
		var err error
		info, err = QueryInfo(f)
		return err
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := Info{
		Vendor:                 "hexgl",
		Renderer:               "fake renderer",
		Version:                "2.1 fake",
		ShadingLanguageVersion: "1.20",
		Extensions:             []string{"GL_ARB_vertex_buffer_object", "GL_EXT_framebuffer_object"},
	}
	if !reflect.DeepEqual(info, want) {
		t.Errorf("QueryInfo() = %+v, want %+v", info, want)
	}
	calls := fp.Calls()
	if len(calls) == 0 || calls[0].Symbol != "glClear" || calls[0].Args[0].Uint() != uint64(COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT) {
		t.Errorf("first call = %+v", calls)
	}
}

func TestOptionalEntryPointMissing(t *testing.T) {
	fp := newFake()
	ctx, err := Create(0x1, hexgl.WithPlatform(fp))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Dispose()

	err = ctx.Execute(func(f *Functions) error {
		var vao uint32
		if err := f.GenVertexArrays(1, &vao); !errors.Is(err, hexgl.ErrUnsupportedCapability) {
			t.Errorf("GenVertexArrays() error = %v, want unsupported", err)
		}
		if _, err := f.CheckFramebufferStatus(FRAMEBUFFER); !errors.Is(err, hexgl.ErrUnsupportedCapability) {
			t.Errorf("CheckFramebufferStatus() error = %v, want unsupported", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestRequiredEntryPointMissing(t *testing.T) {
	fp := newFake()
	ctx, err := Create(0x1, hexgl.WithPlatform(fp))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Dispose()

	err = ctx.Execute(func(f *Functions) error {
		f.Flush()
		t.Error("Flush returned without a native implementation")
		return nil
	})
	var ce *synth.CallError
	if !errors.As(err, &ce) || ce.Method != "Flush" {
		t.Fatalf("Execute() error = %v, want CallError for Flush", err)
	}
	if !errors.Is(err, hexgl.ErrUnsupportedCapability) {
		t.Errorf("error %v does not match ErrUnsupportedCapability", err)
	}
}
