package synth

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/kael-ip/hexgl/capability"
)

type testFuncs struct {
	GetError  func() uint32
	Finish    func()
	GetString func(name uint32) uintptr
}

type echoFuncs struct {
	Echo      func(v int32) int32
	Scale     func(v float32, by float64) float64
	IsEnabled func(cap uint32) bool
	Buffer    func(data unsafe.Pointer, n int) int
	Fallible  func() (uint32, error)
	Quiet     func() error

	Renamed func() `hexgl:"glRenamed"`
	Skipped func() `hexgl:"-"`
	private func()
}

type badField struct {
	Count int
}

type badResult struct {
	Get func() *byte
}

type collision struct {
	A func() `hexgl:"Same"`
	B func() `hexgl:"Same"`
}

func TestForDerivesInterface(t *testing.T) {
	iface, err := Declare[testFuncs]()
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	want := []capability.Signature{
		capability.Sig("GetError", capability.Uint32),
		capability.Sig("Finish", capability.Void),
		capability.Sig("GetString", capability.Pointer, capability.Uint32),
	}
	if iface.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", iface.Len(), len(want))
	}
	for i, w := range want {
		if got := iface.Method(i).String(); got != w.String() {
			t.Errorf("Method(%d) = %s, want %s", i, got, w)
		}
	}
}

func TestForIsCached(t *testing.T) {
	a, err := For[testFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	b, err := For[testFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("For returned different bindings for the same type")
	}
}

func TestBindingEndToEnd(t *testing.T) {
	b, err := For[testFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{results: map[string]Value{"GetString": PointerValue(0xDEADBEEF)}}
	fns, im := b.New(rec)

	if got := fns.GetString(0x1F00); got != 0xDEADBEEF {
		t.Errorf("GetString() = %#x, want 0xdeadbeef", got)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("provider saw %d calls, want 1", len(rec.calls))
	}
	d, _ := b.Stubs().Lookup("GetString")
	if rec.calls[0].desc != d {
		t.Errorf("descriptor = %v, want GetString", rec.calls[0].desc)
	}
	if args := rec.calls[0].args; len(args) != 1 || args[0] != Uint32Value(0x1F00) {
		t.Errorf("args = %v", args)
	}

	fns.Finish()
	if got := rec.calls[1]; got.desc.Name() != "Finish" || len(got.args) != 0 {
		t.Errorf("Finish call = %v %v", got.desc, got.args)
	}
	if im.Provider() != rec {
		t.Error("Provider() did not return the bound provider")
	}
}

func TestBindingRoundTrip(t *testing.T) {
	b, err := For[echoFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	fns, _ := b.New(ProviderFunc(func(d *Descriptor, args []Value) (Value, error) {
		names = append(names, d.Name())
		switch d.Name() {
		case "Echo":
			return args[0], nil
		case "Scale":
			return Float64Value(args[0].Float() * args[1].Float()), nil
		case "IsEnabled":
			return BoolValue(args[0].Uint() == 0x0B71), nil
		case "Buffer":
			if args[0].Pointer() == 0 {
				return Int64Value(-1), nil
			}
			return args[1], nil
		}
		return Value{}, nil
	}))

	if got := fns.Echo(42); got != 42 {
		t.Errorf("Echo(42) = %d", got)
	}
	if got := fns.Echo(-42); got != -42 {
		t.Errorf("Echo(-42) = %d", got)
	}
	if got := fns.Scale(1.5, 4); got != 6 {
		t.Errorf("Scale(1.5, 4) = %g", got)
	}
	if !fns.IsEnabled(0x0B71) || fns.IsEnabled(0) {
		t.Error("IsEnabled returned the wrong value")
	}
	buf := make([]byte, 16)
	if got := fns.Buffer(unsafe.Pointer(&buf[0]), len(buf)); got != 16 {
		t.Errorf("Buffer() = %d, want 16", got)
	}
	if got := fns.Buffer(nil, 3); got != -1 {
		t.Errorf("Buffer(nil) = %d, want -1", got)
	}
	fns.Renamed()
	if last := names[len(names)-1]; last != "glRenamed" {
		t.Errorf("tagged field bound as %q", last)
	}
	if fns.Skipped != nil {
		t.Error("skipped field was bound")
	}
	if _, ok := b.Interface().Lookup("Skipped"); ok {
		t.Error("skipped field declared")
	}
}

func TestBindingFallibleMethods(t *testing.T) {
	b, err := For[echoFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("unsupported")
	fns, _ := b.New(ProviderFunc(func(*Descriptor, []Value) (Value, error) {
		return Uint32Value(7), boom
	}))

	v, err := fns.Fallible()
	if !errors.Is(err, boom) || v != 0 {
		t.Errorf("Fallible() = %d, %v", v, err)
	}
	if err := fns.Quiet(); !errors.Is(err, boom) {
		t.Errorf("Quiet() = %v", err)
	}

	defer func() {
		r := recover()
		ce, ok := r.(*CallError)
		if !ok {
			t.Fatalf("panic value = %#v, want *CallError", r)
		}
		if ce.Method != "Echo" || !errors.Is(ce, boom) {
			t.Errorf("CallError = %v", ce)
		}
	}()
	fns.Echo(1)
	t.Error("Echo did not panic")
}

func TestBindingOptional(t *testing.T) {
	b, err := For[echoFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]bool{
		"Fallible":  true,
		"Quiet":     true,
		"Echo":      false,
		"glRenamed": false,
		"Missing":   false,
	}
	for name, want := range tests {
		if got := b.Optional(name); got != want {
			t.Errorf("Optional(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestBindingFallibleSuccess(t *testing.T) {
	b, err := For[echoFuncs]()
	if err != nil {
		t.Fatal(err)
	}
	fns, _ := b.New(ProviderFunc(func(*Descriptor, []Value) (Value, error) {
		return Uint32Value(7), nil
	}))
	if v, err := fns.Fallible(); err != nil || v != 7 {
		t.Errorf("Fallible() = %d, %v", v, err)
	}
	if err := fns.Quiet(); err != nil {
		t.Errorf("Quiet() = %v", err)
	}
}

func TestForRejectsUnsupported(t *testing.T) {
	if _, err := For[badField](); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("non-func field error = %v", err)
	}
	if _, err := For[badResult](); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("pointer result error = %v", err)
	}
	if _, err := For[int](); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("non-struct error = %v", err)
	}
	if _, err := For[collision](); !errors.Is(err, ErrDuplicateMethod) {
		t.Errorf("collision error = %v", err)
	}
}
