package va

import (
	"github.com/hwpipe/vabridge"
)

// BufferType identifies the kind of parameter buffer submitted to the
// driver, matching the driver ABI values.
type BufferType int32

// Buffer types used by the decode bridge.
const (
	PictureParameterBufferType BufferType = 0
	IQMatrixBufferType         BufferType = 1
	SliceParameterBufferType   BufferType = 4
	SliceDataBufferType        BufferType = 5
)

// Decoder is the capability query and submission interface a VA
// decode driver exposes. Implementations wrap an opened device; the
// bridge itself performs no hardware access.
type Decoder interface {
	// HasProfile reports whether the device can decode profile p.
	HasProfile(p Profile) bool
	// IsConfigEqual reports whether the currently opened configuration
	// matches the given profile, render-target format and coded size.
	IsConfigEqual(p Profile, rt RTFormat, width, height int) bool
	// Open (re)configures the device for a profile and render-target
	// format. The decoder must be closed first if already open.
	Open(p Profile, rt RTFormat) error
	// IsOpen reports whether a configuration is currently open.
	IsOpen() bool
	// Close releases the current configuration.
	Close() error
	// SetFrameSize sets the coded surface size.
	SetFrameSize(width, height int) error
	// AddParamBuffer submits one fixed-layout parameter record for the
	// picture being decoded on the given surface.
	AddParamBuffer(surface SurfaceID, typ BufferType, param any) error
	// AddSliceBuffer submits one slice parameter record together with
	// the slice's raw byte range.
	AddSliceBuffer(surface SurfaceID, param *SliceParameterBufferH264, data []byte) error
	// Decode executes the decode of all submitted buffers for surface.
	Decode(surface SurfaceID) error
}

// FilterType identifies a post-processing filter, matching the driver
// ABI values.
type FilterType int32

// Post-processing filter types used by the vpp engine.
const (
	ProcFilterNoiseReduction      FilterType = 1
	ProcFilterSharpening          FilterType = 3
	ProcFilterColorBalance        FilterType = 4
	ProcFilterSkinToneEnhancement FilterType = 5
)

// ColorBalanceType identifies one color balance control.
type ColorBalanceType int32

// Color balance attributes, matching the driver ABI values.
const (
	ColorBalanceHue            ColorBalanceType = 1
	ColorBalanceSaturation     ColorBalanceType = 2
	ColorBalanceBrightness     ColorBalanceType = 3
	ColorBalanceContrast       ColorBalanceType = 4
	ColorBalanceAutoSaturation ColorBalanceType = 5
	ColorBalanceAutoBrightness ColorBalanceType = 6
	ColorBalanceAutoContrast   ColorBalanceType = 7
)

// FilterValueRange describes the accepted values of one filter control.
type FilterValueRange struct {
	Min     float32
	Max     float32
	Default float32
	Step    float32
}

// FilterCap describes one supported filter.
type FilterCap struct {
	Type  FilterType
	Range FilterValueRange
}

// ColorBalanceCap describes one supported color balance control.
type ColorBalanceCap struct {
	Attrib ColorBalanceType
	Range  FilterValueRange
}

// ProcFilterParameterBuffer is the parameter record of a scalar filter.
type ProcFilterParameterBuffer struct {
	Type  FilterType
	Value float32
}

// ProcFilterParameterBufferColorBalance is the parameter record of one
// color balance control.
type ProcFilterParameterBufferColorBalance struct {
	Type   FilterType
	Attrib ColorBalanceType
	Value  float32
}

// Filter is the post-processing interface a VA driver exposes.
type Filter interface {
	// FilterCap returns the capability of a scalar filter, if supported.
	FilterCap(t FilterType) (FilterCap, bool)
	// ColorBalanceCaps returns the supported color balance controls.
	ColorBalanceCaps() []ColorBalanceCap
	// SetOrientation requests an orientation transform; it returns an
	// error when the driver cannot apply it.
	SetOrientation(o vabridge.Orientation) error
	// Orientation returns the active orientation transform.
	Orientation() vabridge.Orientation
	// AddFilterBuffer appends one filter parameter record to the
	// processing context.
	AddFilterBuffer(param any) error
	// DropFilterBuffers removes all queued filter parameter records.
	DropFilterBuffers()
	// Process runs the queued filters from src to dst.
	Process(src, dst SurfaceID) error
}
