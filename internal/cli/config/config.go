// Package config loads hexglinfo settings.
//
// Sources are layered, later ones winning: built-in defaults, the YAML file
// (hexgl.yaml in the working directory unless --config names one),
// HEXGL_* environment variables, and flags set on the command line.
// Nested keys are separated by "." in files and by "__" in environment
// variable names, so HEXGL_CONTEXT__PIXEL_FORMAT__MANUAL=true sets
// context.pixel_format.manual.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/kael-ip/hexgl"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "hexgl.yaml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HEXGL_"

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the settings of one hexglinfo run.
type Config struct {
	Output   string       `koanf:"output" json:"output" yaml:"output"`
	Verbose  bool         `koanf:"verbose" json:"verbose" yaml:"verbose"`
	LogLevel string       `koanf:"log_level" json:"log_level" yaml:"log_level"`
	Context  hexgl.Config `koanf:"context" json:"context" yaml:"context"`

	// File is the configuration file that was read, if any.
	File string `koanf:"-" json:"-" yaml:"-"`
}

// flagKeys maps flag names to configuration keys where the two differ.
var flagKeys = map[string]string{
	"platform":         "context.platform",
	"symbol-prefix":    "context.symbol_prefix",
	"manual":           "context.pixel_format.manual",
	"min-color-bits":   "context.pixel_format.min_color_bits",
	"min-alpha-bits":   "context.pixel_format.min_alpha_bits",
	"min-depth-bits":   "context.pixel_format.min_depth_bits",
	"min-stencil-bits": "context.pixel_format.min_stencil_bits",
	"swap-exchange":    "context.pixel_format.swap_exchange",
	"swap-copy":        "context.pixel_format.swap_copy",
	"log-level":        "log_level",
}

func defaults() map[string]any {
	return map[string]any{
		"output":                "table",
		"verbose":               false,
		"log_level":             "info",
		"context.platform":      "",
		"context.symbol_prefix": hexgl.DefaultSymbolPrefix,
	}
}

// Load reads the configuration. path names the YAML file; when empty,
// DefaultFile is read if it exists. flags may be nil; only flags changed
// on the command line override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	used := path
	if used == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			used = DefaultFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns HEXGL_CONTEXT__SYMBOL_PREFIX into context.symbol_prefix.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output %q (want table, json or yaml)", ErrInvalid, c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	pf := c.Context.PixelFormat
	if pf.SwapCopy && pf.SwapExchange {
		return fmt.Errorf("%w: swap_copy and swap_exchange are exclusive", ErrInvalid)
	}
	return nil
}

// Level returns the slog level named by LogLevel. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Options returns the context creation options the configuration selects.
func (c *Config) Options() []hexgl.Option {
	return []hexgl.Option{hexgl.WithConfig(c.Context)}
}
