// Package synth turns a capability interface into callable stubs.
//
// Synthesis produces one immutable [Descriptor] per method. Binding the
// stubs to a [Provider] yields an [Implementor] whose methods pack their
// arguments into a []Value in declaration order and call
// Provider.Invoke(descriptor, args). Results are cast back to the declared
// return kind.
//
// The typed entry point is [For]: given a struct of func fields it derives
// the interface, synthesizes it once per process, and fills a fresh struct
// with forwarding funcs built by reflect.MakeFunc.
//
//	b, err := synth.For[gl.Functions]()
//	fns, _ := b.New(provider)
//	fns.Finish()
//
// Synthesis knows nothing about native libraries; resolving and calling
// entry points is entirely the provider's job.
package synth
