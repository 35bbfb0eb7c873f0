package hexgl

// Config is the serializable form of the creation options. The koanf tags
// match the keys of the hexglinfo configuration file.
type Config struct {
	// Platform names a registered platform. Empty selects the best one.
	Platform string `koanf:"platform" json:"platform" yaml:"platform"`

	// SymbolPrefix overrides DefaultSymbolPrefix when non-empty.
	SymbolPrefix string `koanf:"symbol_prefix" json:"symbol_prefix" yaml:"symbol_prefix"`

	PixelFormat PixelFormatConfig `koanf:"pixel_format" json:"pixel_format" yaml:"pixel_format"`
}

// PixelFormatConfig selects how the pixel format is negotiated.
//
// In automatic mode (Manual false) the platform picks the format closest to
// a fixed hardware-accelerated RGBA request and the minimum-bit fields are
// ignored. In manual mode every format is scanned in index order and the
// first one meeting all criteria is used.
type PixelFormatConfig struct {
	Manual         bool  `koanf:"manual" json:"manual" yaml:"manual"`
	MinColorBits   uint8 `koanf:"min_color_bits" json:"min_color_bits" yaml:"min_color_bits"`
	MinAlphaBits   uint8 `koanf:"min_alpha_bits" json:"min_alpha_bits" yaml:"min_alpha_bits"`
	MinDepthBits   uint8 `koanf:"min_depth_bits" json:"min_depth_bits" yaml:"min_depth_bits"`
	MinStencilBits uint8 `koanf:"min_stencil_bits" json:"min_stencil_bits" yaml:"min_stencil_bits"`

	// SwapExchange requires a double-buffered format that swaps by exchange.
	SwapExchange bool `koanf:"swap_exchange" json:"swap_exchange" yaml:"swap_exchange"`

	// SwapCopy requires a double-buffered format that swaps by copy.
	SwapCopy bool `koanf:"swap_copy" json:"swap_copy" yaml:"swap_copy"`
}

// DefaultConfig returns the configuration equivalent to calling Create
// without options.
func DefaultConfig() Config {
	return Config{SymbolPrefix: DefaultSymbolPrefix}
}
