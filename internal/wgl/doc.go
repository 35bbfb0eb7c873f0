// Package wgl implements platform.Platform on Windows.
//
// Device contexts and windows come from user32, pixel formats and buffer
// swaps from gdi32, and rendering contexts from the wgl* functions of
// opengl32. Entry points found through wglGetProcAddress or the static
// exports of opengl32.dll are called through goffi with a call interface
// built from the method's parameter and return kinds, so float arguments
// and results travel in the registers the native ABI expects.
//
// The package registers itself as "wgl" on Windows and is empty elsewhere.
package wgl

// Name is the registry name of the platform.
const Name = "wgl"
