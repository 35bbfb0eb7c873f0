package hexgl

import "github.com/kael-ip/hexgl/platform"

// DefaultSymbolPrefix is prepended to every method name to form the native
// symbol name.
const DefaultSymbolPrefix = "gl"

// Option configures a Context during creation.
// Use functional options to customize Create behavior.
//
// Example:
//
//	// Automatic pixel format on the default platform
//	ctx, err := hexgl.Create[gl.Functions](hwnd)
//
//	// Manual selection with a stencil buffer
//	ctx, err := hexgl.Create[gl.Functions](hwnd, hexgl.WithPixelFormat(hexgl.PixelFormatConfig{
//	    Manual:         true,
//	    MinDepthBits:   24,
//	    MinStencilBits: 8,
//	}))
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	platform     platform.Platform
	platformName string
	symbolPrefix string
	pixelFormat  PixelFormatConfig
}

// defaultOptions returns the default context options.
func defaultOptions() options {
	return options{
		symbolPrefix: DefaultSymbolPrefix,
	}
}

// WithPlatform sets the native platform directly, bypassing the registry.
// Use this for dependency injection of test doubles or custom bindings.
func WithPlatform(p platform.Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithPlatformName selects a registered platform by name.
// Ignored when WithPlatform is also given.
func WithPlatformName(name string) Option {
	return func(o *options) {
		o.platformName = name
	}
}

// WithPixelFormat sets the pixel format selection parameters.
func WithPixelFormat(cfg PixelFormatConfig) Option {
	return func(o *options) {
		o.pixelFormat = cfg
	}
}

// WithSymbolPrefix sets the prefix prepended to method names when resolving
// native symbols. An empty prefix resolves method names as-is.
func WithSymbolPrefix(prefix string) Option {
	return func(o *options) {
		o.symbolPrefix = prefix
	}
}

// WithConfig applies a loaded Config. Options listed after it override the
// fields it sets.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.Platform != "" {
			o.platformName = cfg.Platform
		}
		if cfg.SymbolPrefix != "" {
			o.symbolPrefix = cfg.SymbolPrefix
		}
		o.pixelFormat = cfg.PixelFormat
	}
}
