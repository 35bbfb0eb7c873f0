package platform

import (
	"fmt"
	"strings"
	"unsafe"
)

// Pixel format flags (PIXELFORMATDESCRIPTOR.dwFlags).
const (
	PFDDoubleBuffer         uint32 = 0x00000001
	PFDStereo               uint32 = 0x00000002
	PFDDrawToWindow         uint32 = 0x00000004
	PFDDrawToBitmap         uint32 = 0x00000008
	PFDSupportGDI           uint32 = 0x00000010
	PFDSupportOpenGL        uint32 = 0x00000020
	PFDGenericFormat        uint32 = 0x00000040
	PFDNeedPalette          uint32 = 0x00000080
	PFDNeedSystemPalette    uint32 = 0x00000100
	PFDSwapExchange         uint32 = 0x00000200
	PFDSwapCopy             uint32 = 0x00000400
	PFDSwapLayerBuffers     uint32 = 0x00000800
	PFDGenericAccelerated   uint32 = 0x00001000
	PFDSupportDirectDraw    uint32 = 0x00002000
	PFDDepthDontCare        uint32 = 0x20000000
	PFDDoubleBufferDontCare uint32 = 0x40000000
	PFDStereoDontCare       uint32 = 0x80000000
)

// Pixel types.
const (
	PFDTypeRGBA       uint8 = 0
	PFDTypeColorIndex uint8 = 1
)

// Layer types.
const (
	PFDMainPlane     uint8 = 0
	PFDOverlayPlane  uint8 = 1
	PFDUnderlayPlane uint8 = 255
)

// PixelFormatDescriptorSize is the native size of PixelFormatDescriptor.
const PixelFormatDescriptorSize = 40

// PixelFormatDescriptor mirrors the native PIXELFORMATDESCRIPTOR record.
// Its memory layout matches the native one and may be passed by address.
type PixelFormatDescriptor struct {
	Size           uint16
	Version        uint16
	Flags          uint32
	PixelType      uint8
	ColorBits      uint8
	RedBits        uint8
	RedShift       uint8
	GreenBits      uint8
	GreenShift     uint8
	BlueBits       uint8
	BlueShift      uint8
	AlphaBits      uint8
	AlphaShift     uint8
	AccumBits      uint8
	AccumRedBits   uint8
	AccumGreenBits uint8
	AccumBlueBits  uint8
	AccumAlphaBits uint8
	DepthBits      uint8
	StencilBits    uint8
	AuxBuffers     uint8
	LayerType      uint8
	Reserved       uint8
	LayerMask      uint32
	VisibleMask    uint32
	DamageMask     uint32
}

var _ [PixelFormatDescriptorSize]byte = [unsafe.Sizeof(PixelFormatDescriptor{})]byte{}

// NewPixelFormatDescriptor returns a descriptor with Size and Version
// filled in, ready to be passed to DescribePixelFormat.
func NewPixelFormatDescriptor() PixelFormatDescriptor {
	return PixelFormatDescriptor{Size: PixelFormatDescriptorSize, Version: 1}
}

// Has reports whether all of flags are set.
func (d *PixelFormatDescriptor) Has(flags uint32) bool {
	return d.Flags&flags == flags
}

var flagNames = []struct {
	flag uint32
	name string
}{
	{PFDDoubleBuffer, "DOUBLEBUFFER"},
	{PFDStereo, "STEREO"},
	{PFDDrawToWindow, "DRAW_TO_WINDOW"},
	{PFDDrawToBitmap, "DRAW_TO_BITMAP"},
	{PFDSupportGDI, "SUPPORT_GDI"},
	{PFDSupportOpenGL, "SUPPORT_OPENGL"},
	{PFDGenericFormat, "GENERIC_FORMAT"},
	{PFDNeedPalette, "NEED_PALETTE"},
	{PFDNeedSystemPalette, "NEED_SYSTEM_PALETTE"},
	{PFDSwapExchange, "SWAP_EXCHANGE"},
	{PFDSwapCopy, "SWAP_COPY"},
	{PFDSwapLayerBuffers, "SWAP_LAYER_BUFFERS"},
	{PFDGenericAccelerated, "GENERIC_ACCELERATED"},
	{PFDSupportDirectDraw, "SUPPORT_DIRECTDRAW"},
	{PFDDepthDontCare, "DEPTH_DONTCARE"},
	{PFDDoubleBufferDontCare, "DOUBLEBUFFER_DONTCARE"},
	{PFDStereoDontCare, "STEREO_DONTCARE"},
}

// FlagNames returns the names of the set flags, lowest bit first.
func FlagNames(flags uint32) []string {
	var names []string
	for _, f := range flagNames {
		if flags&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	return names
}

func (d *PixelFormatDescriptor) pixelTypeName() string {
	switch d.PixelType {
	case PFDTypeRGBA:
		return "RGBA"
	case PFDTypeColorIndex:
		return "COLORINDEX"
	}
	return fmt.Sprintf("type(%d)", d.PixelType)
}

// String summarizes the descriptor on one line.
func (d *PixelFormatDescriptor) String() string {
	return fmt.Sprintf("%s color=%d(r%d@%d g%d@%d b%d@%d a%d@%d) depth=%d stencil=%d accum=%d aux=%d [%s]",
		d.pixelTypeName(), d.ColorBits,
		d.RedBits, d.RedShift, d.GreenBits, d.GreenShift, d.BlueBits, d.BlueShift, d.AlphaBits, d.AlphaShift,
		d.DepthBits, d.StencilBits, d.AccumBits, d.AuxBuffers,
		strings.Join(FlagNames(d.Flags), "|"))
}
