package hexgl

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/kael-ip/hexgl/internal/fakeplatform"
	"github.com/kael-ip/hexgl/platform"
)

func TestPixelFormatConfigMatches(t *testing.T) {
	std := fakeplatform.StandardFormat()
	withFlags := func(set, clear uint32) platform.PixelFormatDescriptor {
		pfd := fakeplatform.StandardFormat()
		pfd.Flags = pfd.Flags&^clear | set
		return pfd
	}
	colorIndex := fakeplatform.StandardFormat()
	colorIndex.PixelType = platform.PFDTypeColorIndex

	tests := []struct {
		name string
		cfg  PixelFormatConfig
		pfd  platform.PixelFormatDescriptor
		want bool
	}{
		{"standard", PixelFormatConfig{}, std, true},
		{"no opengl", PixelFormatConfig{}, withFlags(0, platform.PFDSupportOpenGL), false},
		{"color index", PixelFormatConfig{}, colorIndex, false},
		{"depth ok", PixelFormatConfig{MinDepthBits: 24}, std, true},
		{"depth short", PixelFormatConfig{MinDepthBits: 32}, std, false},
		{"stencil short", PixelFormatConfig{MinStencilBits: 16}, std, false},
		{"color short", PixelFormatConfig{MinColorBits: 48}, std, false},
		{"alpha short", PixelFormatConfig{MinAlphaBits: 16}, std, false},
		{"exchange", PixelFormatConfig{SwapExchange: true}, std, true},
		{"exchange single", PixelFormatConfig{SwapExchange: true}, withFlags(0, platform.PFDDoubleBuffer), false},
		{"exchange missing", PixelFormatConfig{SwapExchange: true}, withFlags(0, platform.PFDSwapExchange), false},
		{"copy missing", PixelFormatConfig{SwapCopy: true}, std, false},
		{"copy", PixelFormatConfig{SwapCopy: true}, withFlags(platform.PFDSwapCopy, 0), true},
		{"copy single", PixelFormatConfig{SwapCopy: true}, withFlags(platform.PFDSwapCopy, platform.PFDDoubleBuffer), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Matches(&tt.pfd); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPixelFormatTextureFormats(t *testing.T) {
	bgra := fakeplatform.StandardFormat()
	rgba := fakeplatform.StandardFormat()
	rgba.RedShift, rgba.BlueShift = 0, 16
	rgb565 := fakeplatform.StandardFormat()
	rgb565.RedBits, rgb565.GreenBits, rgb565.BlueBits = 5, 6, 5
	depthOnly := fakeplatform.StandardFormat()
	depthOnly.StencilBits = 0
	depth16 := fakeplatform.StandardFormat()
	depth16.DepthBits, depth16.StencilBits = 16, 0
	stencilOnly := fakeplatform.StandardFormat()
	stencilOnly.DepthBits = 0
	none := fakeplatform.StandardFormat()
	none.DepthBits, none.StencilBits = 0, 0

	tests := []struct {
		name         string
		pfd          platform.PixelFormatDescriptor
		color, depth gputypes.TextureFormat
	}{
		{"bgra d24s8", bgra, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatDepth24PlusStencil8},
		{"rgba", rgba, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatDepth24PlusStencil8},
		{"565", rgb565, gputypes.TextureFormatUndefined, gputypes.TextureFormatDepth24PlusStencil8},
		{"depth only", depthOnly, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatDepth24Plus},
		{"depth16", depth16, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatDepth16Unorm},
		{"stencil only", stencilOnly, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatStencil8},
		{"none", none, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPixelFormat(1, tt.pfd)
			if got := f.ColorFormat(); got != tt.color {
				t.Errorf("ColorFormat() = %v, want %v", got, tt.color)
			}
			if got := f.DepthStencilFormat(); got != tt.depth {
				t.Errorf("DepthStencilFormat() = %v, want %v", got, tt.depth)
			}
		})
	}
}

func TestAutoRequest(t *testing.T) {
	req := autoRequest()
	want := platform.PFDSupportOpenGL | platform.PFDGenericAccelerated | platform.PFDStereoDontCare
	if req.Flags != want {
		t.Errorf("Flags = %#x, want %#x", req.Flags, want)
	}
	if req.PixelType != platform.PFDTypeRGBA || req.ColorBits != 24 || req.DepthBits != 32 {
		t.Errorf("request = %v", &req)
	}
	if req.LayerType != platform.PFDMainPlane || req.Size != platform.PixelFormatDescriptorSize {
		t.Errorf("request header = %+v", req)
	}
}

func TestSelectAutoIgnoresMinimums(t *testing.T) {
	fp := fakeplatform.New()
	f, err := SelectPixelFormat(fp, 0x10, PixelFormatConfig{MinStencilBits: 64})
	if err != nil {
		t.Fatalf("SelectPixelFormat() error = %v", err)
	}
	if f.Index != 1 {
		t.Errorf("Index = %d, want 1", f.Index)
	}
	if fp.SelectedFormat() != 0 {
		t.Error("SelectPixelFormat applied the format")
	}
}

func TestEnumeratePixelFormats(t *testing.T) {
	fp := fakeplatform.New()
	single := fakeplatform.StandardFormat()
	single.Flags &^= platform.PFDDoubleBuffer
	fp.SetFormats(fakeplatform.StandardFormat(), single)

	formats, err := EnumeratePixelFormats(fp, 0x10)
	if err != nil {
		t.Fatalf("EnumeratePixelFormats() error = %v", err)
	}
	if len(formats) != 2 {
		t.Fatalf("len = %d, want 2", len(formats))
	}
	if formats[0].Index != 1 || !formats[0].DoubleBuffered {
		t.Errorf("formats[0] = %v", formats[0])
	}
	if formats[1].Index != 2 || formats[1].DoubleBuffered {
		t.Errorf("formats[1] = %v", formats[1])
	}
}
