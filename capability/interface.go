package capability

import (
	"errors"
	"fmt"
	"strings"
)

// Declaration errors.
var (
	// ErrDuplicateMethod is returned when two signatures share a name.
	ErrDuplicateMethod = errors.New("capability: duplicate method")

	// ErrInvalidSignature is returned for an empty name, an unknown kind,
	// or a void parameter.
	ErrInvalidSignature = errors.New("capability: invalid signature")
)

// Signature describes one native entry point: its name, return kind and
// ordered parameter kinds.
type Signature struct {
	Name   string
	Return Kind
	Params []Kind
}

// Sig is shorthand for building a Signature.
//
//	capability.Sig("GetString", capability.Pointer, capability.Uint32)
func Sig(name string, ret Kind, params ...Kind) Signature {
	return Signature{Name: name, Return: ret, Params: params}
}

// Arity returns the number of parameters.
func (s Signature) Arity() int { return len(s.Params) }

// IsVoid reports whether the signature has no result.
func (s Signature) IsVoid() bool { return s.Return == Void }

// Validate checks that the signature is well formed.
func (s Signature) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSignature)
	}
	if !s.Return.Valid() {
		return fmt.Errorf("%w: %s returns %s", ErrInvalidSignature, s.Name, s.Return)
	}
	for i, p := range s.Params {
		if !p.Valid() || p == Void {
			return fmt.Errorf("%w: %s parameter %d is %s", ErrInvalidSignature, s.Name, i, p)
		}
	}
	return nil
}

// String formats the signature as "Name(k1, k2) ret".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if s.Return != Void {
		b.WriteByte(' ')
		b.WriteString(s.Return.String())
	}
	return b.String()
}

// clone returns a copy that does not share the parameter slice.
func (s Signature) clone() Signature {
	params := make([]Kind, len(s.Params))
	copy(params, s.Params)
	return Signature{Name: s.Name, Return: s.Return, Params: params}
}

// Interface is a static, ordered list of method signatures. It is the only
// input to stub synthesis. An Interface built by New is immutable.
type Interface struct {
	name    string
	version string
	methods []Signature
	index   map[string]int
}

// New validates the signatures and returns an Interface. Any invalid or
// duplicate signature fails the whole declaration.
func New(name, version string, methods ...Signature) (*Interface, error) {
	iface := &Interface{
		name:    name,
		version: version,
		methods: make([]Signature, 0, len(methods)),
		index:   make(map[string]int, len(methods)),
	}
	for _, m := range methods {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := iface.index[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMethod, m.Name)
		}
		iface.index[m.Name] = len(iface.methods)
		iface.methods = append(iface.methods, m.clone())
	}
	return iface, nil
}

// MustNew is like New but panics on error. Intended for package-level
// declarations.
func MustNew(name, version string, methods ...Signature) *Interface {
	iface, err := New(name, version, methods...)
	if err != nil {
		panic(err)
	}
	return iface
}

// Name returns the interface name.
func (i *Interface) Name() string { return i.name }

// Version returns the declared version string.
func (i *Interface) Version() string { return i.version }

// Len returns the number of methods.
func (i *Interface) Len() int { return len(i.methods) }

// Method returns the i-th signature in declaration order.
func (i *Interface) Method(n int) Signature { return i.methods[n].clone() }

// Lookup returns the signature with the given name.
func (i *Interface) Lookup(name string) (Signature, bool) {
	n, ok := i.index[name]
	if !ok {
		return Signature{}, false
	}
	return i.methods[n].clone(), true
}

// Methods returns a copy of all signatures in declaration order.
func (i *Interface) Methods() []Signature {
	out := make([]Signature, len(i.methods))
	for n, m := range i.methods {
		out[n] = m.clone()
	}
	return out
}
