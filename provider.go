package hexgl

import (
	"fmt"

	"github.com/kael-ip/hexgl/internal/cache"
	"github.com/kael-ip/hexgl/platform"
	"github.com/kael-ip/hexgl/synth"
)

// IsSentinelAddress reports whether addr is one of the values a native
// extension lookup returns instead of a usable function pointer: 0, 1, 2, 3
// or all bits set.
func IsSentinelAddress(addr uintptr) bool {
	return addr <= 3 || addr == ^uintptr(0)
}

// Resolution sources, reported in debug logs.
const (
	sourceExtension = "extension"
	sourceModule    = "module"
)

// procProvider resolves and invokes native entry points for one Context.
// Resolved procedures are cached for the provider's lifetime; failed
// resolutions are not.
type procProvider struct {
	owner    *slot
	platform platform.Platform
	prefix   string
	procs    *cache.Cache[*synth.Descriptor, platform.Proc]
}

func newProcProvider(owner *slot, p platform.Platform, prefix string) *procProvider {
	return &procProvider{
		owner:    owner,
		platform: p,
		prefix:   prefix,
		procs:    cache.New[*synth.Descriptor, platform.Proc](func(d *synth.Descriptor) string { return d.Name() }),
	}
}

// Invoke implements synth.Provider.
func (p *procProvider) Invoke(d *synth.Descriptor, args []synth.Value) (synth.Value, error) {
	proc, err := p.lookup(d)
	if err != nil {
		return synth.Value{}, err
	}
	return proc.Call(args)
}

// lookup returns the bound procedure for d, resolving it on first use.
func (p *procProvider) lookup(d *synth.Descriptor) (platform.Proc, error) {
	if current.Load() != p.owner {
		return nil, &InvalidUseError{Op: d.Name(), Reason: "context is not current"}
	}
	return p.procs.GetOrFill(d, func() (platform.Proc, error) {
		return p.resolve(d)
	})
}

// resolve locates the native symbol for d and binds it to d's call shape.
func (p *procProvider) resolve(d *synth.Descriptor) (platform.Proc, error) {
	symbol := p.prefix + d.Name()

	source := sourceExtension
	addr := p.platform.GetProcAddress(symbol)
	if IsSentinelAddress(addr) {
		source = sourceModule
		addr = p.platform.GetModuleProcAddress(symbol)
		if IsSentinelAddress(addr) {
			Logger().Debug("hexgl: entry point not found", "symbol", symbol)
			return nil, &UnsupportedCapabilityError{Symbol: symbol}
		}
	}

	proc, err := p.platform.Bind(addr, d)
	if err != nil {
		return nil, fmt.Errorf("hexgl: bind %s: %w", symbol, err)
	}
	Logger().Debug("hexgl: entry point resolved",
		"symbol", symbol, "source", source, "addr", fmt.Sprintf("%#x", addr))
	return proc, nil
}

// stats returns the resolution cache counters.
func (p *procProvider) stats() cache.Stats {
	return p.procs.Stats()
}
