package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kael-ip/hexgl"
	"github.com/kael-ip/hexgl/gl"
)

type infoReport struct {
	Context     string   `json:"context" yaml:"context"`
	Platform    string   `json:"platform" yaml:"platform"`
	PixelFormat string   `json:"pixel_format" yaml:"pixel_format"`
	Resolved    int      `json:"resolved" yaml:"resolved"`
	Unsupported []string `json:"unsupported,omitempty" yaml:"unsupported,omitempty"`
	gl.Info     `yaml:",inline"`
}

type infoOptions struct {
	resolveAll bool
	extensions bool
}

func queryInfo(opts []hexgl.Option, o infoOptions) (report infoReport, err error) {
	ctx, err := gl.CreateHidden(opts...)
	if err != nil {
		return report, err
	}
	defer func() {
		err = errors.Join(err, ctx.Dispose())
	}()

	err = ctx.Execute(func(f *gl.Functions) error {
		info, err := gl.QueryInfo(f)
		if err != nil {
			return err
		}
		report.Info = info
		if !o.resolveAll {
			return nil
		}
		for _, e := range ctx.Implementor().Entries() {
			name := e.Descriptor().Name()
			if err := ctx.Resolve(name); err != nil {
				if !errors.Is(err, hexgl.ErrUnsupportedCapability) {
					return err
				}
				report.Unsupported = append(report.Unsupported, name)
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	if !o.extensions {
		report.Extensions = nil
	}
	report.Context = ctx.ID().String()
	report.Platform = ctx.Platform().Name()
	report.PixelFormat = ctx.PixelFormat().String()
	report.Resolved = ctx.ResolvedCount()
	return report, nil
}

func newInfoCmd() *cobra.Command {
	var o infoOptions
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report the OpenGL driver behind a hidden context",
		Long: `Create a hidden window and context, make it current, and report the
driver strings. With --resolve-all every entry point of gl.Functions is
resolved and the ones the driver lacks are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			p, err := resolvePlatform(cfg.Context.Platform)
			if err != nil {
				return err
			}
			report, err := queryInfo(append(cfg.Options(), hexgl.WithPlatform(p)), o)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), cfg.Output, report, func(t table.Writer) {
				t.AppendRows([]table.Row{
					{"Context", report.Context},
					{"Platform", report.Platform},
					{"Pixel format", report.PixelFormat},
					{"Vendor", report.Vendor},
					{"Renderer", report.Renderer},
					{"Version", report.Version},
					{"GLSL version", report.ShadingLanguageVersion},
					{"Resolved", report.Resolved},
				})
				if o.resolveAll {
					t.AppendRow(table.Row{"Unsupported", fmt.Sprintf("%d %s", len(report.Unsupported), strings.Join(report.Unsupported, " "))})
				}
				if o.extensions {
					t.AppendRow(table.Row{"Extensions", strings.Join(report.Extensions, "\n")})
				}
			})
		},
	}
	cmd.Flags().BoolVar(&o.resolveAll, "resolve-all", false, "resolve every entry point and list the unsupported ones")
	cmd.Flags().BoolVar(&o.extensions, "extensions", false, "include the extension list")
	return cmd
}
