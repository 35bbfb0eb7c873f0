// Package fakeplatform provides an in-memory platform.Platform that records
// every native interaction. It backs the tests of hexgl and its CLI.
package fakeplatform

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/kael-ip/hexgl/platform"
	"github.com/kael-ip/hexgl/synth"
)

// Stage names a Platform operation that can be made to fail.
type Stage string

// Injectable failure points.
const (
	StageGetDC         Stage = "GetDC"
	StageReleaseDC     Stage = "ReleaseDC"
	StageChoose        Stage = "ChoosePixelFormat"
	StageDescribe      Stage = "DescribePixelFormat"
	StageSetFormat     Stage = "SetPixelFormat"
	StageCreateContext Stage = "CreateContext"
	StageDeleteContext Stage = "DeleteContext"
	StageMakeCurrent   Stage = "MakeCurrent"
	StageSwapBuffers   Stage = "SwapBuffers"
	StageCreateWindow  Stage = "CreateWindow"
	StageBind          Stage = "Bind"
)

// Name is the name the fake reports.
const Name = "fake"

// Func implements one native entry point.
type Func func(args []synth.Value) (synth.Value, error)

// Call records one invocation of a bound entry point.
type Call struct {
	Symbol string
	Args   []synth.Value
}

// Platform is a recording test double. The zero value is not usable; call New.
type Platform struct {
	mu sync.Mutex

	formats   []platform.PixelFormatDescriptor
	chosen    int
	countSkew bool

	funcs      map[string]Func
	addrs      map[string]uintptr
	symbols    map[uintptr]string
	extAddr    map[string]uintptr
	moduleAddr map[string]uintptr
	moduleOnly map[string]bool

	fail map[Stage]error

	extLookups    map[string]int
	moduleLookups map[string]int
	calls         []Call
	makeCurrent   [][2]platform.Handle
	current       [2]platform.Handle
	selected      int
	describes     int
	swaps         int
	deleted       []platform.Handle
	released      []platform.Handle
	windows       map[platform.Handle]bool
	nextHandle    platform.Handle
	logger        *slog.Logger
}

// New returns a fake with one standard double-buffered RGBA format.
func New() *Platform {
	return &Platform{
		formats:       []platform.PixelFormatDescriptor{StandardFormat()},
		chosen:        1,
		funcs:         make(map[string]Func),
		addrs:         make(map[string]uintptr),
		symbols:       make(map[uintptr]string),
		extAddr:       make(map[string]uintptr),
		moduleAddr:    make(map[string]uintptr),
		moduleOnly:    make(map[string]bool),
		fail:          make(map[Stage]error),
		extLookups:    make(map[string]int),
		moduleLookups: make(map[string]int),
		windows:       make(map[platform.Handle]bool),
		nextHandle:    0x100,
	}
}

// StandardFormat returns a hardware 32-bit RGBA, 24/8 depth-stencil,
// double-buffered format.
func StandardFormat() platform.PixelFormatDescriptor {
	pfd := platform.NewPixelFormatDescriptor()
	pfd.Flags = platform.PFDDrawToWindow | platform.PFDSupportOpenGL | platform.PFDDoubleBuffer | platform.PFDSwapExchange
	pfd.PixelType = platform.PFDTypeRGBA
	pfd.ColorBits = 32
	pfd.RedBits, pfd.RedShift = 8, 16
	pfd.GreenBits, pfd.GreenShift = 8, 8
	pfd.BlueBits, pfd.BlueShift = 8, 0
	pfd.AlphaBits, pfd.AlphaShift = 8, 24
	pfd.DepthBits = 24
	pfd.StencilBits = 8
	return pfd
}

// SetFormats replaces the format list. Format i is reported at index i+1.
func (p *Platform) SetFormats(formats ...platform.PixelFormatDescriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.formats = append([]platform.PixelFormatDescriptor(nil), formats...)
}

// SetChosenFormat sets the index ChoosePixelFormat returns.
func (p *Platform) SetChosenFormat(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chosen = index
}

// SkewFormatCount makes every DescribePixelFormat call report a different
// format count.
func (p *Platform) SkewFormatCount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.countSkew = true
}

// Define registers the implementation of a native symbol (e.g. "glFinish").
// The symbol resolves through both lookups unless overridden.
func (p *Platform) Define(symbol string, fn Func) {
	p.mu.Lock()
	defer p.mu.Unlock()
	addr, ok := p.addrs[symbol]
	if !ok {
		addr = uintptr(0x10000 + 0x10*len(p.addrs))
		p.addrs[symbol] = addr
		p.symbols[addr] = symbol
	}
	p.funcs[symbol] = fn
}

// DefineModuleOnly registers a symbol that only the module lookup finds, the
// way core GL 1.1 exports behave on Windows.
func (p *Platform) DefineModuleOnly(symbol string, fn Func) {
	p.Define(symbol, fn)
	p.mu.Lock()
	p.moduleOnly[symbol] = true
	p.mu.Unlock()
}

// SetExtensionAddress forces the value GetProcAddress returns for symbol,
// e.g. one of the sentinel addresses some drivers report.
func (p *Platform) SetExtensionAddress(symbol string, addr uintptr) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.extAddr[symbol] = addr
}

// SetModuleAddress forces the value GetModuleProcAddress returns for symbol.
func (p *Platform) SetModuleAddress(symbol string, addr uintptr) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.moduleAddr[symbol] = addr
}

// FailOn makes the given stage return err. A nil err clears the failure.
func (p *Platform) FailOn(stage Stage, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.fail, stage)
		return
	}
	p.fail[stage] = err
}

func (p *Platform) failure(stage Stage) error {
	return p.fail[stage]
}

func (p *Platform) handle() platform.Handle {
	p.nextHandle += 0x10
	return p.nextHandle
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return Name }

// SetLogger records the logger propagated by hexgl.SetLogger.
func (p *Platform) SetLogger(l *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = l
}

// Logger returns the last propagated logger.
func (p *Platform) Logger() *slog.Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logger
}

// GetDC implements platform.Platform.
func (p *Platform) GetDC(hwnd platform.Handle) (platform.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageGetDC); err != nil {
		return 0, err
	}
	if hwnd == 0 {
		return 0, errors.New("fakeplatform: null window")
	}
	return p.handle(), nil
}

// ReleaseDC implements platform.Platform.
func (p *Platform) ReleaseDC(hwnd, hdc platform.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released = append(p.released, hdc)
	return p.failure(StageReleaseDC)
}

// ChoosePixelFormat implements platform.Platform.
func (p *Platform) ChoosePixelFormat(hdc platform.Handle, pfd *platform.PixelFormatDescriptor) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageChoose); err != nil {
		return 0, err
	}
	return p.chosen, nil
}

// DescribePixelFormat implements platform.Platform.
func (p *Platform) DescribePixelFormat(hdc platform.Handle, index int, pfd *platform.PixelFormatDescriptor) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageDescribe); err != nil {
		return 0, err
	}
	count := len(p.formats)
	if p.countSkew {
		count += p.describes
	}
	p.describes++
	if index == 0 {
		return count, nil
	}
	if index < 0 || index > len(p.formats) {
		return 0, fmt.Errorf("fakeplatform: pixel format %d out of range", index)
	}
	if pfd != nil {
		*pfd = p.formats[index-1]
	}
	return count, nil
}

// SetPixelFormat implements platform.Platform.
func (p *Platform) SetPixelFormat(hdc platform.Handle, index int, pfd *platform.PixelFormatDescriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageSetFormat); err != nil {
		return err
	}
	if index < 1 || index > len(p.formats) {
		return fmt.Errorf("fakeplatform: pixel format %d out of range", index)
	}
	p.selected = index
	return nil
}

// CreateContext implements platform.Platform.
func (p *Platform) CreateContext(hdc platform.Handle) (platform.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageCreateContext); err != nil {
		return 0, err
	}
	return p.handle(), nil
}

// DeleteContext implements platform.Platform.
func (p *Platform) DeleteContext(hglrc platform.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, hglrc)
	return p.failure(StageDeleteContext)
}

// MakeCurrent implements platform.Platform.
func (p *Platform) MakeCurrent(hdc, hglrc platform.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.makeCurrent = append(p.makeCurrent, [2]platform.Handle{hdc, hglrc})
	if hglrc != 0 {
		if err := p.failure(StageMakeCurrent); err != nil {
			return err
		}
	}
	p.current = [2]platform.Handle{hdc, hglrc}
	return nil
}

// SwapBuffers implements platform.Platform.
func (p *Platform) SwapBuffers(hdc platform.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageSwapBuffers); err != nil {
		return err
	}
	p.swaps++
	return nil
}

// GetProcAddress implements platform.Platform.
func (p *Platform) GetProcAddress(symbol string) uintptr {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.extLookups[symbol]++
	if addr, ok := p.extAddr[symbol]; ok {
		return addr
	}
	if p.moduleOnly[symbol] {
		return 0
	}
	return p.addrs[symbol]
}

// GetModuleProcAddress implements platform.Platform.
func (p *Platform) GetModuleProcAddress(symbol string) uintptr {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.moduleLookups[symbol]++
	if addr, ok := p.moduleAddr[symbol]; ok {
		return addr
	}
	return p.addrs[symbol]
}

// Bind implements platform.Platform.
func (p *Platform) Bind(addr uintptr, d *synth.Descriptor) (platform.Proc, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageBind); err != nil {
		return nil, err
	}
	symbol, ok := p.symbols[addr]
	if !ok {
		return nil, fmt.Errorf("fakeplatform: no function at %#x", addr)
	}
	ret := d.Return()
	return platform.ProcFunc(func(args []synth.Value) (synth.Value, error) {
		p.mu.Lock()
		fn := p.funcs[symbol]
		p.calls = append(p.calls, Call{Symbol: symbol, Args: append([]synth.Value(nil), args...)})
		p.mu.Unlock()

		res, err := fn(args)
		if err != nil {
			return synth.Value{}, err
		}
		return synth.FromBits(ret, res.Bits()), nil
	}), nil
}

// CreateWindow implements platform.WindowFactory.
func (p *Platform) CreateWindow() (platform.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failure(StageCreateWindow); err != nil {
		return 0, err
	}
	h := p.handle()
	p.windows[h] = true
	return h, nil
}

// DestroyWindow implements platform.WindowFactory.
func (p *Platform) DestroyWindow(hwnd platform.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.windows[hwnd] {
		return fmt.Errorf("fakeplatform: unknown window %#x", hwnd)
	}
	delete(p.windows, hwnd)
	return nil
}

// ExtensionLookups returns how often GetProcAddress was asked for symbol.
func (p *Platform) ExtensionLookups(symbol string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.extLookups[symbol]
}

// ModuleLookups returns how often GetModuleProcAddress was asked for symbol.
func (p *Platform) ModuleLookups(symbol string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.moduleLookups[symbol]
}

// Calls returns the recorded entry point invocations.
func (p *Platform) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallCount returns how often symbol was invoked.
func (p *Platform) CallCount(symbol string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c.Symbol == symbol {
			n++
		}
	}
	return n
}

// MakeCurrentCalls returns the (hdc, hglrc) pairs passed to MakeCurrent.
func (p *Platform) MakeCurrentCalls() [][2]platform.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][2]platform.Handle(nil), p.makeCurrent...)
}

// Current returns the pair bound by the last successful MakeCurrent.
func (p *Platform) Current() (hdc, hglrc platform.Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current[0], p.current[1]
}

// SelectedFormat returns the index passed to the last successful
// SetPixelFormat, or 0.
func (p *Platform) SelectedFormat() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Swaps returns the number of successful SwapBuffers calls.
func (p *Platform) Swaps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps
}

// Deleted returns the rendering contexts passed to DeleteContext.
func (p *Platform) Deleted() []platform.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.Handle(nil), p.deleted...)
}

// Released returns the device contexts passed to ReleaseDC.
func (p *Platform) Released() []platform.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.Handle(nil), p.released...)
}

// OpenWindows returns the windows created and not yet destroyed.
func (p *Platform) OpenWindows() []platform.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]platform.Handle, 0, len(p.windows))
	for h := range p.windows {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	_ platform.Platform      = (*Platform)(nil)
	_ platform.WindowFactory = (*Platform)(nil)
)
