package hexgl

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kael-ip/hexgl/platform"
	"github.com/kael-ip/hexgl/synth"
)

// State is the lifecycle state of a Context.
type State int32

// Context states.
const (
	StateUninitialized State = iota
	StateInitialized
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// slot identifies a context in the process-wide current slot.
type slot struct {
	id uuid.UUID
}

// current holds the slot of the context whose native handle is current.
// At most one context is current per process.
var current atomic.Pointer[slot]

// CurrentID returns the ID of the current context, or uuid.Nil.
func CurrentID() uuid.UUID {
	if s := current.Load(); s != nil {
		return s.id
	}
	return uuid.Nil
}

// Context owns a native rendering context for one window together with the
// entry points bound to it. T is the capability struct, typically
// gl.Functions.
//
// Entry points may only be called inside Execute, which makes the context
// current for the duration of the callback.
type Context[T any] struct {
	slot  *slot
	state atomic.Int32

	// busy is held for the whole of Execute and Dispose.
	busy sync.Mutex

	platform   platform.Platform
	hwnd       platform.Handle
	ownsWindow bool
	hdc        platform.Handle
	hglrc      platform.Handle
	format     PixelFormat

	fns         *T
	implementor *synth.Implementor
	provider    *procProvider
}

// Create creates a rendering context for the window hwnd.
//
// The platform is the one given by WithPlatform, else the registered
// platform named by WithPlatformName, else the best registered platform.
// Any failure is reported as *InitializationError and releases whatever was
// acquired before it.
func Create[T any](hwnd platform.Handle, opts ...Option) (*Context[T], error) {
	return create[T](hwnd, false, opts)
}

// CreateHidden is like Create but renders into a hidden window owned by the
// context. The platform must implement platform.WindowFactory.
func CreateHidden[T any](opts ...Option) (*Context[T], error) {
	return create[T](0, true, opts)
}

func create[T any](hwnd platform.Handle, hidden bool, opts []Option) (*Context[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	binding, err := synth.For[T]()
	if err != nil {
		return nil, &InitializationError{Stage: StageBinding, Err: err}
	}

	p, err := selectPlatform(o)
	if err != nil {
		return nil, &InitializationError{Stage: StagePlatform, Err: err}
	}
	propagateLogger(p, Logger())

	c := &Context[T]{
		slot:     &slot{id: uuid.New()},
		platform: p,
		hwnd:     hwnd,
	}

	if hidden {
		wf, ok := p.(platform.WindowFactory)
		if !ok {
			return nil, &InitializationError{Stage: StageWindow, Err: fmt.Errorf("platform %s cannot create windows", p.Name())}
		}
		if c.hwnd, err = wf.CreateWindow(); err != nil {
			return nil, &InitializationError{Stage: StageWindow, Err: err}
		}
		c.ownsWindow = true
	}

	if c.hdc, err = p.GetDC(c.hwnd); err != nil {
		c.releaseAll()
		return nil, &InitializationError{Stage: StageDeviceContext, Err: err}
	}
	if c.format, err = negotiatePixelFormat(p, c.hdc, o.pixelFormat); err != nil {
		c.releaseAll()
		return nil, &InitializationError{Stage: StagePixelFormat, Err: err}
	}
	if c.hglrc, err = p.CreateContext(c.hdc); err != nil {
		c.releaseAll()
		return nil, &InitializationError{Stage: StageRenderContext, Err: err}
	}

	c.provider = newProcProvider(c.slot, p, o.symbolPrefix)
	c.fns, c.implementor = binding.New(c.provider)
	c.state.Store(int32(StateInitialized))
	livePlatforms.Store(c.slot, p)

	Logger().Info("hexgl: context created",
		"id", c.slot.id, "platform", p.Name(), "pixel_format", c.format.Index,
		"double_buffered", c.format.DoubleBuffered)
	return c, nil
}

func selectPlatform(o options) (platform.Platform, error) {
	if o.platform != nil {
		return o.platform, nil
	}
	if o.platformName != "" {
		if p := platform.Get(o.platformName); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("platform %q is not registered", o.platformName)
	}
	return platform.Default()
}

// ID returns the context's unique identifier.
func (c *Context[T]) ID() uuid.UUID { return c.slot.id }

// State returns the lifecycle state.
func (c *Context[T]) State() State { return State(c.state.Load()) }

// IsInitialized reports whether the context can be used.
func (c *Context[T]) IsInitialized() bool { return c.State() == StateInitialized }

// IsCurrent reports whether this context holds the current slot.
func (c *Context[T]) IsCurrent() bool { return current.Load() == c.slot }

// PixelFormat returns the negotiated pixel format.
func (c *Context[T]) PixelFormat() PixelFormat { return c.format }

// Platform returns the native platform the context was created on.
func (c *Context[T]) Platform() platform.Platform { return c.platform }

// Implementor returns the dynamic view of the bound entry points.
func (c *Context[T]) Implementor() *synth.Implementor { return c.implementor }

// ResolvedCount returns how many entry points have been resolved so far.
func (c *Context[T]) ResolvedCount() int { return c.provider.stats().Len }

// Execute makes the context current on the calling OS thread, runs fn with
// the bound entry points, and releases the context again.
//
// The context is released on every exit path, including a panic in fn.
// Provider failures raised as *synth.CallError panics by entry points
// without an error result are recovered and returned. Execute fails with
// *InvalidUseError if the context is not initialized, is already executing,
// or another context is current.
func (c *Context[T]) Execute(fn func(*T) error) (err error) {
	if fn == nil {
		return &InvalidUseError{Op: "Execute", Reason: "nil callback"}
	}
	if !c.busy.TryLock() {
		return &InvalidUseError{Op: "Execute", Reason: "context is already current"}
	}
	defer c.busy.Unlock()

	if s := c.State(); s != StateInitialized {
		return &InvalidUseError{Op: "Execute", Reason: "context is " + s.String()}
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !current.CompareAndSwap(nil, c.slot) {
		return &InvalidUseError{Op: "Execute", Reason: "another context is current"}
	}
	defer current.Store(nil)

	defer func() {
		if rerr := c.platform.MakeCurrent(0, 0); rerr != nil {
			Logger().Warn("hexgl: release current context failed", "id", c.slot.id, "err", rerr)
			err = errors.Join(err, fmt.Errorf("hexgl: release current context: %w", rerr))
		}
	}()
	if err := c.platform.MakeCurrent(c.hdc, c.hglrc); err != nil {
		return fmt.Errorf("hexgl: make current: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*synth.CallError)
			if !ok {
				panic(r)
			}
			err = ce
		}
	}()
	return fn(c.fns)
}

// Resolve resolves the named entry point without calling it. It must be
// called inside Execute.
func (c *Context[T]) Resolve(name string) error {
	e, ok := c.implementor.Entry(name)
	if !ok {
		return fmt.Errorf("%w: %s", synth.ErrUnknownMethod, name)
	}
	_, err := c.provider.lookup(e.Descriptor())
	return err
}

// SwapBuffers presents the back buffer. It does nothing for single-buffered
// formats.
func (c *Context[T]) SwapBuffers() error {
	if s := c.State(); s != StateInitialized {
		return &InvalidUseError{Op: "SwapBuffers", Reason: "context is " + s.String()}
	}
	if !c.format.DoubleBuffered {
		return nil
	}
	if err := c.platform.SwapBuffers(c.hdc); err != nil {
		return fmt.Errorf("hexgl: swap buffers: %w", err)
	}
	return nil
}

// Dispose releases the native context and device context. It fails while
// the context is current and is a no-op once disposed.
func (c *Context[T]) Dispose() error {
	if !c.busy.TryLock() {
		return &InvalidUseError{Op: "Dispose", Reason: "context is current"}
	}
	defer c.busy.Unlock()

	if c.State() == StateDisposed {
		return nil
	}
	err := c.releaseAll()
	c.state.Store(int32(StateDisposed))
	livePlatforms.Delete(c.slot)

	Logger().Info("hexgl: context disposed", "id", c.slot.id)
	return err
}

// releaseAll frees the native handles acquired so far, in reverse order.
func (c *Context[T]) releaseAll() error {
	var errs []error
	if c.hglrc != 0 {
		if err := c.platform.DeleteContext(c.hglrc); err != nil {
			Logger().Warn("hexgl: delete context failed", "id", c.slot.id, "err", err)
			errs = append(errs, fmt.Errorf("hexgl: delete context: %w", err))
		}
		c.hglrc = 0
	}
	if c.hdc != 0 {
		if err := c.platform.ReleaseDC(c.hwnd, c.hdc); err != nil {
			Logger().Warn("hexgl: release device context failed", "id", c.slot.id, "err", err)
			errs = append(errs, fmt.Errorf("hexgl: release device context: %w", err))
		}
		c.hdc = 0
	}
	if c.ownsWindow {
		if wf, ok := c.platform.(platform.WindowFactory); ok {
			if err := wf.DestroyWindow(c.hwnd); err != nil {
				Logger().Warn("hexgl: destroy window failed", "id", c.slot.id, "err", err)
				errs = append(errs, fmt.Errorf("hexgl: destroy window: %w", err))
			}
		}
		c.ownsWindow = false
	}
	return errors.Join(errs...)
}
