// Package cli implements the hexglinfo command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kael-ip/hexgl"
	"github.com/kael-ip/hexgl/internal/cli/config"
	"github.com/kael-ip/hexgl/platform"
)

// Version information, set at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type configKey struct{}

// NewRootCmd returns the hexglinfo root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "hexglinfo",
		Short: "Inspect OpenGL drivers through hexgl",
		Long: `hexglinfo loads the OpenGL entry points hexgl binds at runtime and
reports what the native platform provides: pixel formats, driver strings,
which entry points resolve, and how WGSL shaders translate to GLSL.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			hexgl.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			if cfg.File != "" {
				hexgl.Logger().Debug("hexglinfo: using config file", "path", cfg.File)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			hexgl.SetLogger(nil)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}} (" + GitCommit + ")\n")

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	pf.StringP("output", "o", config.OutputTable, "output format (table|json|yaml)")
	pf.BoolP("verbose", "v", false, "log debug messages to stderr")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")
	pf.String("platform", "", "native platform (default: best registered)")
	pf.String("symbol-prefix", hexgl.DefaultSymbolPrefix, "prefix prepended to entry point names")
	pf.Bool("manual", false, "select the pixel format by scanning instead of ChoosePixelFormat")
	pf.Uint8("min-color-bits", 0, "minimum color bits in manual mode")
	pf.Uint8("min-alpha-bits", 0, "minimum alpha bits in manual mode")
	pf.Uint8("min-depth-bits", 0, "minimum depth bits in manual mode")
	pf.Uint8("min-stencil-bits", 0, "minimum stencil bits in manual mode")
	pf.Bool("swap-exchange", false, "require a format that swaps by exchange")
	pf.Bool("swap-copy", false, "require a format that swaps by copy")

	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputJSON, config.OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("platform", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return platform.Available(), cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newSignaturesCmd(),
		newFormatsCmd(),
		newInfoCmd(),
		newShaderCmd(),
		newPlatformsCmd(),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// configFrom returns the configuration loaded by the root command.
func configFrom(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Output: config.OutputTable, LogLevel: "info", Context: hexgl.DefaultConfig()}
}

// resolvePlatform returns the named platform, or the default one when name
// is empty.
func resolvePlatform(name string) (platform.Platform, error) {
	if name == "" {
		return platform.Default()
	}
	p := platform.Get(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", platform.ErrNoPlatform, name, strings.Join(platform.Available(), ", "))
	}
	return p, nil
}
