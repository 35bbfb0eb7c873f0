package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gogpu/naga/glsl"
	"github.com/spf13/cobra"

	"github.com/kael-ip/hexgl"
	"github.com/kael-ip/hexgl/gl"
	"github.com/kael-ip/hexgl/glshader"
	"github.com/kael-ip/hexgl/internal/cli/config"
)

var glslVersions = map[string]glsl.Version{
	"330":   glsl.Version330,
	"400":   glsl.Version400,
	"410":   glsl.Version410,
	"420":   glsl.Version420,
	"430":   glsl.Version430,
	"450":   glsl.Version450,
	"460":   glsl.Version460,
	"300es": glsl.VersionES300,
	"310es": glsl.VersionES310,
	"320es": glsl.VersionES320,
}

func glslVersionNames() []string {
	names := make([]string, 0, len(glslVersions))
	for name := range glslVersions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func parseGLSLVersion(s string) (glsl.Version, error) {
	v, ok := glslVersions[strings.ToLower(strings.ReplaceAll(s, " ", ""))]
	if !ok {
		return glsl.Version{}, fmt.Errorf("unknown GLSL version %q (want one of %s)", s, strings.Join(glslVersionNames(), ", "))
	}
	return v, nil
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

type shaderReport struct {
	Sources []glshader.Source `json:"sources" yaml:"sources"`
	Program uint32            `json:"program,omitempty" yaml:"program,omitempty"`
}

// compileSources builds the translated sources into a program inside a
// hidden context and deletes it again.
func compileSources(opts []hexgl.Option, sources []glshader.Source) (program uint32, err error) {
	ctx, err := gl.CreateHidden(opts...)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = errors.Join(err, ctx.Dispose())
	}()
	err = ctx.Execute(func(f *gl.Functions) error {
		p, err := glshader.BuildProgram(f, sources)
		if err != nil {
			return err
		}
		program = p
		f.DeleteProgram(p)
		return nil
	})
	return program, err
}

func newShaderCmd() *cobra.Command {
	var (
		version string
		entries []string
		compile bool
	)
	cmd := &cobra.Command{
		Use:   "shader FILE",
		Short: "Translate a WGSL shader to GLSL",
		Long: `Translate the entry points of a WGSL shader to GLSL sources for the
requested version. FILE may be - to read standard input. With --compile the
sources are compiled and linked in a hidden context to check that the driver
accepts them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			v, err := parseGLSLVersion(version)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			sources, err := glshader.Translate(src, glshader.Options{Version: v, EntryPoints: entries})
			if err != nil {
				return err
			}
			report := shaderReport{Sources: sources}
			if compile {
				p, err := resolvePlatform(cfg.Context.Platform)
				if err != nil {
					return err
				}
				if report.Program, err = compileSources(append(cfg.Options(), hexgl.WithPlatform(p)), sources); err != nil {
					return err
				}
				hexgl.Logger().Info("hexglinfo: program linked", "program", report.Program, "stages", len(sources))
			}
			if cfg.Output != config.OutputTable {
				return render(cmd.OutOrStdout(), cfg.Output, report, nil)
			}
			w := cmd.OutOrStdout()
			for i, s := range sources {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "// %s %s\n%s", s.Stage, s.EntryPoint, s.Code)
				if !strings.HasSuffix(s.Code, "\n") {
					fmt.Fprintln(w)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "glsl", "330", "target GLSL version ("+strings.Join(glslVersionNames(), "|")+")")
	cmd.Flags().StringSliceVar(&entries, "entry", nil, "entry points to translate (default: all vertex and fragment)")
	cmd.Flags().BoolVar(&compile, "compile", false, "compile and link the result in a hidden context")
	_ = cmd.RegisterFlagCompletionFunc("glsl", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return glslVersionNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
