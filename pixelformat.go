package hexgl

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/kael-ip/hexgl/platform"
)

// PixelFormat is a pixel format selected for a device context.
type PixelFormat struct {
	// Index is the 1-based native format index.
	Index int

	Descriptor platform.PixelFormatDescriptor

	// DoubleBuffered gates SwapBuffers.
	DoubleBuffered bool
}

func newPixelFormat(index int, pfd platform.PixelFormatDescriptor) PixelFormat {
	return PixelFormat{
		Index:          index,
		Descriptor:     pfd,
		DoubleBuffered: pfd.Has(platform.PFDDoubleBuffer),
	}
}

// ColorFormat returns the texture format equivalent to the color buffer, or
// TextureFormatUndefined when the layout has no WebGPU counterpart.
func (f PixelFormat) ColorFormat() gputypes.TextureFormat {
	d := &f.Descriptor
	if d.PixelType != platform.PFDTypeRGBA || d.RedBits != 8 || d.GreenBits != 8 || d.BlueBits != 8 {
		return gputypes.TextureFormatUndefined
	}
	if d.AlphaBits != 0 && d.AlphaBits != 8 {
		return gputypes.TextureFormatUndefined
	}
	if d.RedShift > d.BlueShift {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// DepthStencilFormat returns the texture format equivalent to the depth and
// stencil buffers, or TextureFormatUndefined when there are none.
func (f PixelFormat) DepthStencilFormat() gputypes.TextureFormat {
	depth, stencil := f.Descriptor.DepthBits, f.Descriptor.StencilBits
	switch {
	case depth >= 24 && stencil >= 8:
		return gputypes.TextureFormatDepth24PlusStencil8
	case depth >= 24:
		return gputypes.TextureFormatDepth24Plus
	case depth >= 16:
		return gputypes.TextureFormatDepth16Unorm
	case stencil >= 8:
		return gputypes.TextureFormatStencil8
	}
	return gputypes.TextureFormatUndefined
}

func (f PixelFormat) String() string {
	return fmt.Sprintf("#%d %s", f.Index, f.Descriptor.String())
}

// autoRequest is the descriptor handed to ChoosePixelFormat in automatic
// mode.
func autoRequest() platform.PixelFormatDescriptor {
	pfd := platform.NewPixelFormatDescriptor()
	pfd.Flags = platform.PFDSupportOpenGL | platform.PFDGenericAccelerated | platform.PFDStereoDontCare
	pfd.PixelType = platform.PFDTypeRGBA
	pfd.ColorBits = 24
	pfd.DepthBits = 32
	pfd.LayerType = platform.PFDMainPlane
	return pfd
}

// Matches reports whether pfd satisfies the manual selection criteria.
func (cfg PixelFormatConfig) Matches(pfd *platform.PixelFormatDescriptor) bool {
	if !pfd.Has(platform.PFDSupportOpenGL) || pfd.PixelType != platform.PFDTypeRGBA {
		return false
	}
	if pfd.DepthBits < cfg.MinDepthBits || pfd.StencilBits < cfg.MinStencilBits {
		return false
	}
	if pfd.ColorBits < cfg.MinColorBits || pfd.AlphaBits < cfg.MinAlphaBits {
		return false
	}
	if (cfg.SwapExchange || cfg.SwapCopy) && !pfd.Has(platform.PFDDoubleBuffer) {
		return false
	}
	if cfg.SwapExchange && !pfd.Has(platform.PFDSwapExchange) {
		return false
	}
	if cfg.SwapCopy && !pfd.Has(platform.PFDSwapCopy) {
		return false
	}
	return true
}

// SelectPixelFormat picks a pixel format for hdc without applying it.
func SelectPixelFormat(p platform.Platform, hdc platform.Handle, cfg PixelFormatConfig) (PixelFormat, error) {
	if cfg.Manual {
		return selectManual(p, hdc, cfg)
	}
	return selectAuto(p, hdc)
}

func selectAuto(p platform.Platform, hdc platform.Handle) (PixelFormat, error) {
	req := autoRequest()
	index, err := p.ChoosePixelFormat(hdc, &req)
	if err != nil {
		return PixelFormat{}, fmt.Errorf("choose pixel format: %w", err)
	}
	if index <= 0 {
		return PixelFormat{}, ErrNoPixelFormat
	}
	pfd := platform.NewPixelFormatDescriptor()
	if _, err := p.DescribePixelFormat(hdc, index, &pfd); err != nil {
		return PixelFormat{}, fmt.Errorf("describe pixel format %d: %w", index, err)
	}
	Logger().Debug("hexgl: pixel format chosen", "index", index, "format", pfd.String())
	return newPixelFormat(index, pfd), nil
}

func selectManual(p platform.Platform, hdc platform.Handle, cfg PixelFormatConfig) (PixelFormat, error) {
	pfd := platform.NewPixelFormatDescriptor()
	count, err := p.DescribePixelFormat(hdc, 0, &pfd)
	if err != nil {
		return PixelFormat{}, fmt.Errorf("count pixel formats: %w", err)
	}
	for i := 1; i <= count; i++ {
		n, err := p.DescribePixelFormat(hdc, i, &pfd)
		if err != nil {
			return PixelFormat{}, fmt.Errorf("describe pixel format %d: %w", i, err)
		}
		if n != count {
			return PixelFormat{}, fmt.Errorf("pixel format count changed from %d to %d", count, n)
		}
		if cfg.Matches(&pfd) {
			Logger().Debug("hexgl: pixel format matched", "index", i, "of", count, "format", pfd.String())
			return newPixelFormat(i, pfd), nil
		}
	}
	Logger().Debug("hexgl: no pixel format matched", "scanned", count)
	return PixelFormat{}, ErrNoPixelFormat
}

// EnumeratePixelFormats describes every pixel format of hdc in index order.
func EnumeratePixelFormats(p platform.Platform, hdc platform.Handle) ([]PixelFormat, error) {
	pfd := platform.NewPixelFormatDescriptor()
	count, err := p.DescribePixelFormat(hdc, 0, &pfd)
	if err != nil {
		return nil, fmt.Errorf("count pixel formats: %w", err)
	}
	formats := make([]PixelFormat, 0, count)
	for i := 1; i <= count; i++ {
		if _, err := p.DescribePixelFormat(hdc, i, &pfd); err != nil {
			return nil, fmt.Errorf("describe pixel format %d: %w", i, err)
		}
		formats = append(formats, newPixelFormat(i, pfd))
	}
	return formats, nil
}

// negotiatePixelFormat selects a format and applies it to hdc.
func negotiatePixelFormat(p platform.Platform, hdc platform.Handle, cfg PixelFormatConfig) (PixelFormat, error) {
	f, err := SelectPixelFormat(p, hdc, cfg)
	if err != nil {
		return PixelFormat{}, err
	}
	if err := p.SetPixelFormat(hdc, f.Index, &f.Descriptor); err != nil {
		return PixelFormat{}, fmt.Errorf("set pixel format %d: %w", f.Index, err)
	}
	return f, nil
}
