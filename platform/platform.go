package platform

import (
	"errors"
	"slices"

	"github.com/gogpu/gpucontext"

	"github.com/kael-ip/hexgl/synth"
)

// ErrNoPlatform is returned when no platform is registered for the running
// operating system.
var ErrNoPlatform = errors.New("platform: no native platform available")

// Handle is an opaque native handle (window, device context, GL context,
// module).
type Handle uintptr

// Proc is a native entry point bound to one call shape. Call passes args in
// order and returns the result cast to the descriptor's return kind.
type Proc interface {
	Call(args []synth.Value) (synth.Value, error)
}

// ProcFunc adapts a function to the Proc interface.
type ProcFunc func(args []synth.Value) (synth.Value, error)

// Call calls f.
func (f ProcFunc) Call(args []synth.Value) (synth.Value, error) { return f(args) }

// Platform is the native windowing-system GL binding: device contexts,
// pixel formats, rendering contexts and entry point lookup.
//
// Methods that select or create state report failure through their error.
// Lookups return 0 (or another sentinel) when the symbol is absent; the
// caller decides what counts as a usable address.
type Platform interface {
	// Name returns the platform identifier (e.g. "wgl").
	Name() string

	// GetDC returns the device context of a window.
	GetDC(hwnd Handle) (Handle, error)

	// ReleaseDC releases a device context obtained from GetDC.
	ReleaseDC(hwnd, hdc Handle) error

	// ChoosePixelFormat returns the 1-based index of the format closest to
	// the request.
	ChoosePixelFormat(hdc Handle, pfd *PixelFormatDescriptor) (int, error)

	// DescribePixelFormat fills pfd for the 1-based index and returns the
	// number of formats the device supports. Index 0 only reports the count.
	DescribePixelFormat(hdc Handle, index int, pfd *PixelFormatDescriptor) (int, error)

	// SetPixelFormat selects the pixel format of the device context. It can
	// only succeed once per window.
	SetPixelFormat(hdc Handle, index int, pfd *PixelFormatDescriptor) error

	// CreateContext creates a rendering context for hdc.
	CreateContext(hdc Handle) (Handle, error)

	// DeleteContext destroys a rendering context.
	DeleteContext(hglrc Handle) error

	// MakeCurrent binds hglrc to hdc on the calling OS thread. Passing two
	// zero handles unbinds the current context.
	MakeCurrent(hdc, hglrc Handle) error

	// SwapBuffers presents the back buffer of hdc.
	SwapBuffers(hdc Handle) error

	// GetProcAddress looks up an extension-style entry point. The result is
	// only meaningful while a context is current.
	GetProcAddress(symbol string) uintptr

	// GetModuleProcAddress looks up an export of the GL library itself.
	GetModuleProcAddress(symbol string) uintptr

	// Bind prepares a callable for the native function at addr with the
	// call shape of d.
	Bind(addr uintptr, d *synth.Descriptor) (Proc, error)
}

// WindowFactory is implemented by platforms that can create hidden windows,
// used to probe pixel formats without a caller-supplied window.
type WindowFactory interface {
	CreateWindow() (Handle, error)
	DestroyWindow(hwnd Handle) error
}

var registry = gpucontext.NewRegistry[Platform](gpucontext.WithPriority("wgl"))

// Register adds a platform factory under name. Platform packages call it
// from init. Registering an existing name replaces it.
func Register(name string, factory func() Platform) {
	registry.Register(name, factory)
}

// Unregister removes the named platform.
func Unregister(name string) {
	registry.Unregister(name)
}

// Get returns a new instance of the named platform, or nil.
func Get(name string) Platform {
	return registry.Get(name)
}

// Available returns the registered platform names in sorted order.
func Available() []string {
	names := registry.Available()
	slices.Sort(names)
	return names
}

// DefaultName returns the name Default would pick, or "" when none is
// registered.
func DefaultName() string {
	return registry.BestName()
}

// Default returns the highest-priority registered platform.
func Default() (Platform, error) {
	p := registry.Best()
	if p == nil {
		return nil, ErrNoPlatform
	}
	return p, nil
}
