package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kael-ip/hexgl"
	"github.com/kael-ip/hexgl/platform"
)

type formatRow struct {
	Index              int      `json:"index" yaml:"index"`
	Selected           bool     `json:"selected" yaml:"selected"`
	RGBA               bool     `json:"rgba" yaml:"rgba"`
	ColorBits          uint8    `json:"color_bits" yaml:"color_bits"`
	AlphaBits          uint8    `json:"alpha_bits" yaml:"alpha_bits"`
	DepthBits          uint8    `json:"depth_bits" yaml:"depth_bits"`
	StencilBits        uint8    `json:"stencil_bits" yaml:"stencil_bits"`
	DoubleBuffered     bool     `json:"double_buffered" yaml:"double_buffered"`
	ColorFormat        string   `json:"color_format" yaml:"color_format"`
	DepthStencilFormat string   `json:"depth_stencil_format" yaml:"depth_stencil_format"`
	Flags              []string `json:"flags" yaml:"flags"`
}

func newFormatRow(f hexgl.PixelFormat, selected int) formatRow {
	d := f.Descriptor
	return formatRow{
		Index:              f.Index,
		Selected:           f.Index == selected,
		RGBA:               d.PixelType == platform.PFDTypeRGBA,
		ColorBits:          d.ColorBits,
		AlphaBits:          d.AlphaBits,
		DepthBits:          d.DepthBits,
		StencilBits:        d.StencilBits,
		DoubleBuffered:     f.DoubleBuffered,
		ColorFormat:        f.ColorFormat().String(),
		DepthStencilFormat: f.DepthStencilFormat().String(),
		Flags:              platform.FlagNames(d.Flags),
	}
}

// probeFormats lists the pixel formats of a hidden window's device context
// and the index the configured selection would pick, or 0 if none matches.
func probeFormats(p platform.Platform, cfg hexgl.PixelFormatConfig) (formats []hexgl.PixelFormat, selected int, err error) {
	wf, ok := p.(platform.WindowFactory)
	if !ok {
		return nil, 0, fmt.Errorf("platform %s cannot create windows", p.Name())
	}
	hwnd, err := wf.CreateWindow()
	if err != nil {
		return nil, 0, fmt.Errorf("create window: %w", err)
	}
	defer func() {
		err = errors.Join(err, wf.DestroyWindow(hwnd))
	}()
	hdc, err := p.GetDC(hwnd)
	if err != nil {
		return nil, 0, fmt.Errorf("get device context: %w", err)
	}
	defer func() {
		err = errors.Join(err, p.ReleaseDC(hwnd, hdc))
	}()

	formats, err = hexgl.EnumeratePixelFormats(p, hdc)
	if err != nil {
		return nil, 0, err
	}
	sel, serr := hexgl.SelectPixelFormat(p, hdc, cfg)
	switch {
	case serr == nil:
		selected = sel.Index
	case errors.Is(serr, hexgl.ErrNoPixelFormat):
	default:
		return nil, 0, serr
	}
	return formats, selected, nil
}

func newFormatsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the pixel formats of the native platform",
		Long: `Create a hidden window, enumerate the pixel formats of its device context,
and mark the one the configured selection (automatic or --manual with its
minimum-bit flags) would use. Only OpenGL-capable formats are listed unless
--all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			p, err := resolvePlatform(cfg.Context.Platform)
			if err != nil {
				return err
			}
			formats, selected, err := probeFormats(p, cfg.Context.PixelFormat)
			if err != nil {
				return err
			}
			rows := make([]formatRow, 0, len(formats))
			for _, f := range formats {
				if !all && !f.Descriptor.Has(platform.PFDSupportOpenGL) {
					continue
				}
				rows = append(rows, newFormatRow(f, selected))
			}
			return render(cmd.OutOrStdout(), cfg.Output, rows, func(t table.Writer) {
				t.AppendHeader(table.Row{"", "Index", "Color", "Alpha", "Depth", "Stencil", "Double", "Color format", "Depth format", "Flags"})
				for _, r := range rows {
					mark := ""
					if r.Selected {
						mark = "*"
					}
					t.AppendRow(table.Row{mark, r.Index, r.ColorBits, r.AlphaBits, r.DepthBits, r.StencilBits,
						r.DoubleBuffered, r.ColorFormat, r.DepthStencilFormat, strings.Join(r.Flags, " ")})
				}
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include formats without OpenGL support")
	return cmd
}
