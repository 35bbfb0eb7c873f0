// Package capability declares the native entry points a rendering context
// can bind to.
//
// A capability [Interface] is an ordered, versioned list of [Signature]
// values. Each signature names one entry point and gives its return [Kind]
// and parameter kinds. Kinds are limited to scalars and pointer-sized
// values:
//
//	iface := capability.MustNew("GL", "2.0",
//	    capability.Sig("GetError", capability.Uint32),
//	    capability.Sig("Finish", capability.Void),
//	    capability.Sig("GetString", capability.Pointer, capability.Uint32),
//	)
//
// Interfaces are usually not written by hand; package synth derives them
// from a struct of func fields such as gl.Functions.
package capability
