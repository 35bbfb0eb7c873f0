// Package gl declares the OpenGL entry points hexgl binds at runtime.
//
// Functions covers the OpenGL 2.0 core profile subset used by typical
// renderers together with the OpenGL 3.0 vertex array and framebuffer
// object calls. Nothing is linked at build time: Create resolves each
// field through the platform the first time it is called.
//
//	ctx, err := gl.Create(hwnd)
//	if err != nil {
//		return err
//	}
//	defer ctx.Dispose()
//
//	err = ctx.Execute(func(f *gl.Functions) error {
//		f.ClearColor(0, 0, 0, 1)
//		f.Clear(gl.COLOR_BUFFER_BIT)
//		return gl.CheckError(f)
//	})
//
// Enum names follow the native spelling without the GL_ prefix.
package gl
