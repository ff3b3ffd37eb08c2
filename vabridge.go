// Package vabridge translates parsed H.264 bitstream syntax into the
// parameter records a VA-API driver consumes, and negotiates output
// format and geometry for hardware post-processing.
//
// The root package holds the types shared by the decode bridge
// (codec/h264, va) and the post-processing engine (vpp): pixel format
// descriptions, orientation transforms and exact fraction arithmetic.
package vabridge

// PixelFormat identifies a raw video pixel format.
type PixelFormat uint8

// Constants representing the pixel formats the bridge can negotiate.
const (
	FormatUnknown PixelFormat = iota
	FormatNV12                // two-plane 8-bit YUV 4:2:0
	FormatNV21                // NV12 with swapped chroma order
	FormatI420                // three-plane 8-bit YUV 4:2:0
	FormatYV12                // I420 with swapped chroma planes
	FormatYUY2                // packed 8-bit YUV 4:2:2
	FormatUYVY                // packed 8-bit YUV 4:2:2, chroma first
	FormatY42B                // three-plane 8-bit YUV 4:2:2
	FormatY41B                // three-plane 8-bit YUV 4:1:1
	FormatY444                // three-plane 8-bit YUV 4:4:4
	FormatAYUV                // packed 8-bit YUV 4:4:4 with alpha
	FormatVUYA                // packed 8-bit YUV 4:4:4 with alpha, reversed
	FormatP010                // two-plane 10-bit YUV 4:2:0, little endian
	FormatGRAY8               // 8-bit luma only
	FormatRGBA                // packed 8-bit RGB with alpha
	FormatBGRA                // packed 8-bit BGR with alpha
	FormatARGB                // packed 8-bit RGB with leading alpha
	FormatABGR                // packed 8-bit BGR with leading alpha
	FormatRGBx                // packed 8-bit RGB, padding byte
	FormatBGRx                // packed 8-bit BGR, padding byte
	FormatRGB16               // packed 5-6-5 RGB
	FormatRGB8P               // 8-bit paletted RGB
)

// FormatFlags describes loss-relevant properties of a pixel format.
type FormatFlags uint8

// Bitwise flags for pixel format properties.
const (
	FlagYUV     = FormatFlags(1 << iota) // colorspace is YUV
	FlagRGB                              // colorspace is RGB
	FlagGray                             // single luma component
	FlagAlpha                            // carries an alpha component
	FlagPalette                          // samples index a palette
	FlagLE                               // little-endian sample layout
	FlagComplex                          // no simple per-pixel layout
)

// FormatInfo captures the properties of a pixel format that matter
// for conversion loss scoring.
type FormatInfo struct {
	Name       string      // canonical format name
	Flags      FormatFlags // colorspace class, alpha, palette
	Bits       uint8       // bit depth per component
	ChromaWSub uint8       // log2 horizontal chroma subsampling
	ChromaHSub uint8       // log2 vertical chroma subsampling
}

// formatInfos is indexed by PixelFormat.
var formatInfos = [...]FormatInfo{
	FormatUnknown: {Name: "UNKNOWN"},
	FormatNV12:    {Name: "NV12", Flags: FlagYUV, Bits: 8, ChromaWSub: 1, ChromaHSub: 1},
	FormatNV21:    {Name: "NV21", Flags: FlagYUV, Bits: 8, ChromaWSub: 1, ChromaHSub: 1},
	FormatI420:    {Name: "I420", Flags: FlagYUV, Bits: 8, ChromaWSub: 1, ChromaHSub: 1},
	FormatYV12:    {Name: "YV12", Flags: FlagYUV, Bits: 8, ChromaWSub: 1, ChromaHSub: 1},
	FormatYUY2:    {Name: "YUY2", Flags: FlagYUV, Bits: 8, ChromaWSub: 1},
	FormatUYVY:    {Name: "UYVY", Flags: FlagYUV, Bits: 8, ChromaWSub: 1},
	FormatY42B:    {Name: "Y42B", Flags: FlagYUV, Bits: 8, ChromaWSub: 1},
	FormatY41B:    {Name: "Y41B", Flags: FlagYUV, Bits: 8, ChromaWSub: 2},
	FormatY444:    {Name: "Y444", Flags: FlagYUV, Bits: 8},
	FormatAYUV:    {Name: "AYUV", Flags: FlagYUV | FlagAlpha, Bits: 8},
	FormatVUYA:    {Name: "VUYA", Flags: FlagYUV | FlagAlpha, Bits: 8},
	FormatP010:    {Name: "P010_10LE", Flags: FlagYUV | FlagLE, Bits: 10, ChromaWSub: 1, ChromaHSub: 1},
	FormatGRAY8:   {Name: "GRAY8", Flags: FlagGray, Bits: 8},
	FormatRGBA:    {Name: "RGBA", Flags: FlagRGB | FlagAlpha, Bits: 8},
	FormatBGRA:    {Name: "BGRA", Flags: FlagRGB | FlagAlpha, Bits: 8},
	FormatARGB:    {Name: "ARGB", Flags: FlagRGB | FlagAlpha, Bits: 8},
	FormatABGR:    {Name: "ABGR", Flags: FlagRGB | FlagAlpha, Bits: 8},
	FormatRGBx:    {Name: "RGBx", Flags: FlagRGB, Bits: 8},
	FormatBGRx:    {Name: "BGRx", Flags: FlagRGB, Bits: 8},
	FormatRGB16:   {Name: "RGB16", Flags: FlagRGB, Bits: 5},
	FormatRGB8P:   {Name: "RGB8P", Flags: FlagRGB | FlagPalette | FlagComplex, Bits: 8},
}

// Info returns the loss-scoring properties of the format.
func (f PixelFormat) Info() FormatInfo {
	if int(f) >= len(formatInfos) {
		return formatInfos[FormatUnknown]
	}
	return formatInfos[f]
}

// String returns the canonical name of the pixel format.
func (f PixelFormat) String() string {
	return f.Info().Name
}
