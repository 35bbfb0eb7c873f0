//go:build windows

package wgl

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"golang.org/x/sys/windows"

	"github.com/kael-ip/hexgl/platform"
	"github.com/kael-ip/hexgl/synth"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	opengl32 = windows.NewLazySystemDLL("opengl32.dll")

	procGetDC               = user32.NewProc("GetDC")
	procReleaseDC           = user32.NewProc("ReleaseDC")
	procCreateWindowExW     = user32.NewProc("CreateWindowExW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	procSetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers         = gdi32.NewProc("SwapBuffers")
	procCreateContext       = opengl32.NewProc("wglCreateContext")
	procDeleteContext       = opengl32.NewProc("wglDeleteContext")
	procMakeCurrent         = opengl32.NewProc("wglMakeCurrent")
	procGetProcAddress      = opengl32.NewProc("wglGetProcAddress")
	procFinish              = opengl32.NewProc("glFinish")
)

// Window styles of the hidden probe window.
const (
	wsOverlappedWindow = 0x00CF0000
	wsClipSiblings     = 0x04000000
	wsClipChildren     = 0x02000000
)

const moduleName = "opengl32.dll"

// module is the goffi handle of opengl32.dll, loaded on first use.
var module struct {
	once   sync.Once
	handle unsafe.Pointer
	err    error
}

func moduleHandle() (unsafe.Pointer, error) {
	module.once.Do(func() {
		module.handle, module.err = ffi.LoadLibrary(moduleName)
		if module.err != nil {
			slogger().Warn("wgl: load library failed", "name", moduleName, "err", module.err)
		}
	})
	return module.handle, module.err
}

// warmUp calls glFinish once before the first context is created, which
// makes opengl32 load the installable client driver early.
var warmUp sync.Once

func init() {
	platform.Register(Name, func() platform.Platform { return New() })
}

// Platform is the WGL binding. It holds no per-instance state; all
// instances share the process-wide library handles.
type Platform struct{}

// New returns the WGL platform.
func New() *Platform { return &Platform{} }

// Name implements platform.Platform.
func (*Platform) Name() string { return Name }

// SetLogger sets the logger used by this package.
func (*Platform) SetLogger(l *slog.Logger) { setLogger(l) }

// lastError returns err, or a generic error naming op when the native call
// did not set one.
func lastError(op string, err error) error {
	if err == nil || errors.Is(err, windows.ERROR_SUCCESS) {
		return fmt.Errorf("wgl: %s failed", op)
	}
	return fmt.Errorf("wgl: %s: %w", op, err)
}

// GetDC implements platform.Platform.
func (*Platform) GetDC(hwnd platform.Handle) (platform.Handle, error) {
	r, _, err := procGetDC.Call(uintptr(hwnd))
	if r == 0 {
		return 0, lastError("GetDC", err)
	}
	return platform.Handle(r), nil
}

// ReleaseDC implements platform.Platform.
func (*Platform) ReleaseDC(hwnd, hdc platform.Handle) error {
	r, _, _ := procReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
	if r == 0 {
		return errors.New("wgl: ReleaseDC: device context not released")
	}
	return nil
}

// ChoosePixelFormat implements platform.Platform.
func (*Platform) ChoosePixelFormat(hdc platform.Handle, pfd *platform.PixelFormatDescriptor) (int, error) {
	r, _, err := procChoosePixelFormat.Call(uintptr(hdc), uintptr(unsafe.Pointer(pfd)))
	if r == 0 {
		return 0, lastError("ChoosePixelFormat", err)
	}
	return int(r), nil
}

// DescribePixelFormat implements platform.Platform. Index 0 queries the
// format count without filling pfd.
func (*Platform) DescribePixelFormat(hdc platform.Handle, index int, pfd *platform.PixelFormatDescriptor) (int, error) {
	var ptr uintptr
	if index != 0 && pfd != nil {
		ptr = uintptr(unsafe.Pointer(pfd))
	}
	r, _, err := procDescribePixelFormat.Call(uintptr(hdc), uintptr(index), platform.PixelFormatDescriptorSize, ptr)
	if r == 0 {
		return 0, lastError("DescribePixelFormat", err)
	}
	return int(r), nil
}

// SetPixelFormat implements platform.Platform.
func (*Platform) SetPixelFormat(hdc platform.Handle, index int, pfd *platform.PixelFormatDescriptor) error {
	r, _, err := procSetPixelFormat.Call(uintptr(hdc), uintptr(index), uintptr(unsafe.Pointer(pfd)))
	if r == 0 {
		return lastError("SetPixelFormat", err)
	}
	return nil
}

// CreateContext implements platform.Platform.
func (*Platform) CreateContext(hdc platform.Handle) (platform.Handle, error) {
	warmUp.Do(func() {
		if err := procFinish.Find(); err != nil {
			slogger().Warn("wgl: glFinish not found", "err", err)
			return
		}
		_, _, _ = procFinish.Call()
	})
	r, _, err := procCreateContext.Call(uintptr(hdc))
	if r == 0 {
		return 0, lastError("wglCreateContext", err)
	}
	slogger().Debug("wgl: context created", "hdc", fmt.Sprintf("%#x", hdc), "hglrc", fmt.Sprintf("%#x", r))
	return platform.Handle(r), nil
}

// DeleteContext implements platform.Platform.
func (*Platform) DeleteContext(hglrc platform.Handle) error {
	r, _, err := procDeleteContext.Call(uintptr(hglrc))
	if r == 0 {
		return lastError("wglDeleteContext", err)
	}
	return nil
}

// MakeCurrent implements platform.Platform.
func (*Platform) MakeCurrent(hdc, hglrc platform.Handle) error {
	r, _, err := procMakeCurrent.Call(uintptr(hdc), uintptr(hglrc))
	if r == 0 {
		return lastError("wglMakeCurrent", err)
	}
	return nil
}

// SwapBuffers implements platform.Platform.
func (*Platform) SwapBuffers(hdc platform.Handle) error {
	r, _, err := procSwapBuffers.Call(uintptr(hdc))
	if r == 0 {
		return lastError("SwapBuffers", err)
	}
	return nil
}

// GetProcAddress implements platform.Platform. The result may be one of
// the sentinel values some drivers return for unknown names.
func (*Platform) GetProcAddress(symbol string) uintptr {
	name, err := windows.BytePtrFromString(symbol)
	if err != nil {
		return 0
	}
	r, _, _ := procGetProcAddress.Call(uintptr(unsafe.Pointer(name)))
	return r
}

// GetModuleProcAddress implements platform.Platform.
func (*Platform) GetModuleProcAddress(symbol string) uintptr {
	h, err := moduleHandle()
	if err != nil {
		return 0
	}
	addr, err := ffi.GetSymbol(h, symbol)
	if err != nil {
		return 0
	}
	return uintptr(addr)
}

// Bind implements platform.Platform.
func (*Platform) Bind(addr uintptr, d *synth.Descriptor) (platform.Proc, error) {
	return newProc(addr, d)
}

// CreateWindow implements platform.WindowFactory. The window is never
// shown; it exists only to own a device context.
func (*Platform) CreateWindow() (platform.Handle, error) {
	class, err := windows.UTF16PtrFromString("STATIC")
	if err != nil {
		return 0, err
	}
	title, err := windows.UTF16PtrFromString("hexgl")
	if err != nil {
		return 0, err
	}
	r, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(class)),
		uintptr(unsafe.Pointer(title)),
		wsOverlappedWindow|wsClipSiblings|wsClipChildren,
		0, 0, 1, 1,
		0, 0, 0, 0,
	)
	if r == 0 {
		return 0, lastError("CreateWindowExW", err)
	}
	return platform.Handle(r), nil
}

// DestroyWindow implements platform.WindowFactory.
func (*Platform) DestroyWindow(hwnd platform.Handle) error {
	r, _, err := procDestroyWindow.Call(uintptr(hwnd))
	if r == 0 {
		return lastError("DestroyWindow", err)
	}
	return nil
}

var (
	_ platform.Platform      = (*Platform)(nil)
	_ platform.WindowFactory = (*Platform)(nil)
)
