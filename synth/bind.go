package synth

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"sync"

	"github.com/kael-ip/hexgl/capability"
)

// TagName is the struct tag that renames or skips a func field.
//
//	type Functions struct {
//	    GetString func(name uint32) uintptr
//	    Uniform4f func(loc int32, x, y, z, w float32) `hexgl:"Uniform4f"`
//	    Helper    func() `hexgl:"-"`
//	}
const TagName = "hexgl"

var errorType = reflect.TypeFor[error]()

// method is one func field of a capability struct.
type method struct {
	field    int
	name     string
	typ      reflect.Type
	params   []capability.Kind
	ret      capability.Kind
	fallible bool
}

// Binding is the synthesized form of a capability struct T. T is a struct
// whose exported fields are funcs; each field becomes one method named after
// the field (or its hexgl tag) with parameter and result kinds derived from
// the Go types.
//
// A method whose last result is error reports provider failures through it.
// Any other method panics with *CallError.
type Binding[T any] struct {
	stubs   *Stubs
	methods []method
}

type bindingEntry struct {
	once sync.Once
	val  any
	err  error
}

// bindings caches one Binding per struct type for the life of the process.
var bindings sync.Map

// For returns the Binding for T, synthesizing it on first use. Later calls
// for the same T return the same Binding.
func For[T any]() (*Binding[T], error) {
	t := reflect.TypeFor[T]()
	v, _ := bindings.LoadOrStore(t, &bindingEntry{})
	e := v.(*bindingEntry)
	e.once.Do(func() {
		e.val, e.err = bind[T](t)
	})
	if e.err != nil {
		return nil, e.err
	}
	return e.val.(*Binding[T]), nil
}

// Declare returns the capability interface derived from T.
func Declare[T any]() (*capability.Interface, error) {
	b, err := For[T]()
	if err != nil {
		return nil, err
	}
	return b.stubs.iface, nil
}

func bind[T any](t reflect.Type) (*Binding[T], error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupportedType, t)
	}
	var (
		methods []method
		sigs    []capability.Signature
		seen    = make(map[string]string)
	)
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup(TagName); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if f.Type.Kind() != reflect.Func {
			return nil, fmt.Errorf("%w: field %s.%s is %s, not a func", ErrUnsupportedType, t, f.Name, f.Type)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s.%s and %s.%s both bind %q", ErrDuplicateMethod, t, prev, t, f.Name, name)
		}
		seen[name] = f.Name

		m, err := newMethod(i, name, f.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		methods = append(methods, m)
		sigs = append(sigs, capability.Sig(name, m.ret, m.params...))
	}

	iface, err := capability.New(t.String(), "", sigs...)
	if err != nil {
		return nil, err
	}
	stubs, err := Synthesize(iface)
	if err != nil {
		return nil, err
	}
	return &Binding[T]{stubs: stubs, methods: methods}, nil
}

func newMethod(field int, name string, ft reflect.Type) (method, error) {
	if ft.IsVariadic() {
		return method{}, fmt.Errorf("%w: variadic func", ErrUnsupportedType)
	}
	m := method{field: field, name: name, typ: ft, ret: capability.Void}
	for i := range ft.NumIn() {
		k, err := paramKind(ft.In(i))
		if err != nil {
			return method{}, err
		}
		m.params = append(m.params, k)
	}

	nout := ft.NumOut()
	if nout > 0 && ft.Out(nout-1) == errorType {
		m.fallible = true
		nout--
	}
	switch nout {
	case 0:
	case 1:
		k, err := resultKind(ft.Out(0))
		if err != nil {
			return method{}, err
		}
		m.ret = k
	default:
		return method{}, fmt.Errorf("%w: %d results", ErrUnsupportedType, ft.NumOut())
	}
	return m, nil
}

func paramKind(t reflect.Type) (capability.Kind, error) {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return capability.Pointer, nil
	}
	return resultKind(t)
}

func resultKind(t reflect.Type) (capability.Kind, error) {
	switch t.Kind() {
	case reflect.Bool:
		return capability.Bool, nil
	case reflect.Int8:
		return capability.Int8, nil
	case reflect.Int16:
		return capability.Int16, nil
	case reflect.Int32:
		return capability.Int32, nil
	case reflect.Int64:
		return capability.Int64, nil
	case reflect.Int:
		if strconv.IntSize == 32 {
			return capability.Int32, nil
		}
		return capability.Int64, nil
	case reflect.Uint8:
		return capability.Uint8, nil
	case reflect.Uint16:
		return capability.Uint16, nil
	case reflect.Uint32:
		return capability.Uint32, nil
	case reflect.Uint64:
		return capability.Uint64, nil
	case reflect.Uint:
		if strconv.IntSize == 32 {
			return capability.Uint32, nil
		}
		return capability.Uint64, nil
	case reflect.Uintptr:
		return capability.Pointer, nil
	case reflect.Float32:
		return capability.Float32, nil
	case reflect.Float64:
		return capability.Float64, nil
	}
	return capability.Void, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// Stubs returns the shared stubs.
func (b *Binding[T]) Stubs() *Stubs { return b.stubs }

// Interface returns the derived capability interface.
func (b *Binding[T]) Interface() *capability.Interface { return b.stubs.iface }

// Optional reports whether the named method returns provider failures as an
// error instead of panicking.
func (b *Binding[T]) Optional(name string) bool {
	for i := range b.methods {
		if b.methods[i].name == name {
			return b.methods[i].fallible
		}
	}
	return false
}

// New returns a T whose func fields forward to p, together with the
// underlying implementor.
func (b *Binding[T]) New(p Provider) (*T, *Implementor) {
	im := b.stubs.New(p)
	out := new(T)
	rv := reflect.ValueOf(out).Elem()
	for i := range b.methods {
		m := &b.methods[i]
		rv.Field(m.field).Set(reflect.MakeFunc(m.typ, m.forward(im.entries[i])))
	}
	return out, im
}

func (m *method) forward(e *Entry) func([]reflect.Value) []reflect.Value {
	return func(in []reflect.Value) []reflect.Value {
		args := make([]Value, len(in))
		for i, v := range in {
			args[i] = pack(m.params[i], v)
		}
		res, err := e.invoke(args)
		// Pointer arguments must outlive the native call.
		runtime.KeepAlive(in)
		return m.results(res, err)
	}
}

func (m *method) results(res Value, err error) []reflect.Value {
	out := make([]reflect.Value, 0, 2)
	if m.ret != capability.Void {
		rt := m.typ.Out(0)
		if err != nil {
			out = append(out, reflect.Zero(rt))
		} else {
			out = append(out, unpack(res, rt))
		}
	}
	if m.fallible {
		if err != nil {
			out = append(out, reflect.ValueOf(&err).Elem())
		} else {
			out = append(out, reflect.Zero(errorType))
		}
		return out
	}
	if err != nil {
		panic(&CallError{Method: m.name, Err: err})
	}
	return out
}

func pack(k capability.Kind, v reflect.Value) Value {
	switch v.Kind() {
	case reflect.Bool:
		return BoolValue(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromBits(k, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FromBits(k, v.Uint())
	case reflect.Float32:
		return Float32Value(float32(v.Float()))
	case reflect.Float64:
		return Float64Value(v.Float())
	case reflect.Pointer, reflect.UnsafePointer:
		return PointerValue(v.Pointer())
	}
	return Value{}
}

func unpack(res Value, rt reflect.Type) reflect.Value {
	out := reflect.New(rt).Elem()
	switch rt.Kind() {
	case reflect.Bool:
		out.SetBool(res.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.SetInt(res.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		out.SetUint(res.Uint())
	case reflect.Float32, reflect.Float64:
		out.SetFloat(res.Float())
	}
	return out
}
