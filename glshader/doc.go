// Package glshader turns WGSL into GLSL with naga and builds GL programs
// through a bound *gl.Functions.
//
// The helpers hold no state: nothing is cached and no uniform or attribute
// values are tracked. Everything except Translate must run inside
// Context.Execute.
package glshader
