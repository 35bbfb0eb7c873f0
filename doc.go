// Package hexgl calls native OpenGL entry points through a typed Go value
// without linking against them at build time.
//
// # Overview
//
// A capability is declared once as a struct of func fields (see package gl).
// hexgl synthesizes forwarding stubs for every field, creates a native
// rendering context for a window, and resolves each entry point the first
// time it is called while that context is current:
//
//	ctx, err := hexgl.Create[gl.Functions](hwnd)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Dispose()
//
//	err = ctx.Execute(func(f *gl.Functions) error {
//	    f.ClearColor(0, 0, 0, 1)
//	    f.Clear(gl.COLOR_BUFFER_BIT)
//	    return gl.CheckError(f)
//	})
//	ctx.SwapBuffers()
//
// # Current context
//
// Native GL contexts are bound to one OS thread at a time. Execute locks
// the calling goroutine to its thread, makes the context current, runs the
// callback and releases the context on every exit path. Only one context
// in the process is current at a time; a second Execute fails with
// *InvalidUseError instead of waiting. Calling an entry point outside
// Execute fails the same way.
//
// # Entry point resolution
//
// The native symbol of a method is the symbol prefix ("gl" by default)
// followed by the method name. The extension lookup is tried first; if it
// returns a sentinel address (0, 1, 2, 3 or -1) the GL library's static
// exports are tried. Each resolved entry point is cached for the life of
// the context. An entry point that cannot be found reports
// *UnsupportedCapabilityError and is looked up again on the next call.
//
// # Pixel formats
//
// By default the platform picks the format closest to a hardware
// accelerated RGBA request. With PixelFormatConfig.Manual every format is
// scanned in order and the first one meeting the minimums is used.
//
// # Logging
//
// hexgl is silent by default. SetLogger enables structured logging through
// log/slog.
package hexgl
