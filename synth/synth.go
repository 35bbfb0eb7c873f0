package synth

import (
	"errors"
	"fmt"

	"github.com/kael-ip/hexgl/capability"
)

// Synthesis and call errors.
var (
	// ErrNilInterface is returned when Synthesize is given no interface.
	ErrNilInterface = errors.New("synth: nil interface")

	// ErrDuplicateMethod is returned when two methods resolve to the same
	// native name.
	ErrDuplicateMethod = errors.New("synth: duplicate method")

	// ErrArity is returned when a call supplies the wrong number of arguments.
	ErrArity = errors.New("synth: wrong argument count")

	// ErrKindMismatch is returned when an argument's kind differs from the
	// declared parameter kind.
	ErrKindMismatch = errors.New("synth: argument kind mismatch")

	// ErrUnsupportedType is returned when a Go type has no native kind.
	ErrUnsupportedType = errors.New("synth: unsupported type")

	// ErrUnknownMethod is returned by Implementor.Call for a name the
	// interface does not declare.
	ErrUnknownMethod = errors.New("synth: unknown method")
)

// Descriptor is the static metadata of one method. It is created once per
// signature during synthesis and never changes afterwards, so its pointer is
// a stable identity suitable as a cache key.
type Descriptor struct {
	iface string
	index int
	sig   capability.Signature
}

// Name returns the method name.
func (d *Descriptor) Name() string { return d.sig.Name }

// Index returns the method's position in its interface.
func (d *Descriptor) Index() int { return d.index }

// Interface returns the name of the declaring interface.
func (d *Descriptor) Interface() string { return d.iface }

// Return returns the declared return kind.
func (d *Descriptor) Return() capability.Kind { return d.sig.Return }

// Arity returns the number of parameters.
func (d *Descriptor) Arity() int { return len(d.sig.Params) }

// Param returns the kind of the i-th parameter.
func (d *Descriptor) Param(i int) capability.Kind { return d.sig.Params[i] }

// Params returns a copy of the parameter kinds.
func (d *Descriptor) Params() []capability.Kind {
	out := make([]capability.Kind, len(d.sig.Params))
	copy(out, d.sig.Params)
	return out
}

// Signature returns a copy of the method signature.
func (d *Descriptor) Signature() capability.Signature {
	return capability.Sig(d.sig.Name, d.sig.Return, d.Params()...)
}

func (d *Descriptor) String() string { return d.sig.String() }

// Provider supplies the behavior behind every synthesized method. Invoke
// receives the method's descriptor and its arguments packed in declaration
// order, and returns the result (ignored for void methods).
//
// Invoke is called on the caller's goroutine; any thread requirements are
// the provider's concern.
type Provider interface {
	Invoke(d *Descriptor, args []Value) (Value, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(d *Descriptor, args []Value) (Value, error)

// Invoke calls f.
func (f ProviderFunc) Invoke(d *Descriptor, args []Value) (Value, error) { return f(d, args) }

// Stubs is the synthesized form of a capability interface: one descriptor
// per method. Stubs are built once and shared by every implementor.
type Stubs struct {
	iface  *capability.Interface
	descs  []*Descriptor
	byName map[string]*Descriptor
}

// Synthesize builds the descriptors for iface. Synthesis is deterministic;
// the descriptors follow the interface's declaration order.
func Synthesize(iface *capability.Interface) (*Stubs, error) {
	if iface == nil {
		return nil, ErrNilInterface
	}
	s := &Stubs{
		iface:  iface,
		descs:  make([]*Descriptor, iface.Len()),
		byName: make(map[string]*Descriptor, iface.Len()),
	}
	for i, sig := range iface.Methods() {
		if err := sig.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byName[sig.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMethod, sig.Name)
		}
		d := &Descriptor{iface: iface.Name(), index: i, sig: sig}
		s.descs[i] = d
		s.byName[sig.Name] = d
	}
	return s, nil
}

// Interface returns the interface the stubs were built from.
func (s *Stubs) Interface() *capability.Interface { return s.iface }

// Len returns the number of methods.
func (s *Stubs) Len() int { return len(s.descs) }

// Descriptor returns the i-th descriptor.
func (s *Stubs) Descriptor(i int) *Descriptor { return s.descs[i] }

// Lookup returns the descriptor for the named method.
func (s *Stubs) Lookup(name string) (*Descriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// New binds the stubs to a provider.
func (s *Stubs) New(p Provider) *Implementor {
	im := &Implementor{stubs: s, provider: p, entries: make([]*Entry, len(s.descs))}
	for i, d := range s.descs {
		im.entries[i] = &Entry{desc: d, provider: p}
	}
	return im
}

// Implementor is an instance of synthesized stubs forwarding every method
// to one Provider.
type Implementor struct {
	stubs    *Stubs
	provider Provider
	entries  []*Entry
}

// Provider returns the bound provider.
func (im *Implementor) Provider() Provider { return im.provider }

// Stubs returns the shared stubs.
func (im *Implementor) Stubs() *Stubs { return im.stubs }

// Entries returns the bound methods in declaration order.
func (im *Implementor) Entries() []*Entry {
	out := make([]*Entry, len(im.entries))
	copy(out, im.entries)
	return out
}

// Entry returns the bound method with the given name.
func (im *Implementor) Entry(name string) (*Entry, bool) {
	d, ok := im.stubs.byName[name]
	if !ok {
		return nil, false
	}
	return im.entries[d.index], true
}

// Call invokes the named method.
func (im *Implementor) Call(name string, args ...Value) (Value, error) {
	e, ok := im.Entry(name)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return e.Call(args...)
}

// Entry is one bound method.
type Entry struct {
	desc     *Descriptor
	provider Provider
}

// Descriptor returns the method's descriptor.
func (e *Entry) Descriptor() *Descriptor { return e.desc }

// Call checks the arguments against the signature and forwards them to the
// provider. The result is cast to the declared return kind; void methods
// return the zero Value.
func (e *Entry) Call(args ...Value) (Value, error) {
	if len(args) != e.desc.Arity() {
		return Value{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, e.desc.Name(), e.desc.Arity(), len(args))
	}
	for i, a := range args {
		if want := e.desc.sig.Params[i]; a.kind != want {
			return Value{}, fmt.Errorf("%w: %s parameter %d is %s, got %s", ErrKindMismatch, e.desc.Name(), i, want, a.kind)
		}
	}
	vec := make([]Value, len(args))
	copy(vec, args)
	return e.invoke(vec)
}

// invoke forwards an already checked argument vector.
func (e *Entry) invoke(args []Value) (Value, error) {
	res, err := e.provider.Invoke(e.desc, args)
	if err != nil {
		return Value{}, err
	}
	if e.desc.sig.Return == capability.Void {
		return Value{}, nil
	}
	return FromBits(e.desc.sig.Return, res.bits), nil
}

// CallError reports a provider failure raised from a method whose Go
// signature has no error result. It is delivered as a panic value.
type CallError struct {
	Method string
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("synth: %s: %v", e.Method, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
