// Package h264 translates parsed H.264 bitstream syntax into the
// fixed-layout parameter records a VA-API driver consumes. The header
// structures below are the contract with the bitstream parser: every
// field arrives already decoded, inferred defaults included; nothing
// is reparsed here.
package h264

// Profile IDC values signaled in the SPS (Annex A).
const (
	ProfileIDCBaseline         = 66
	ProfileIDCMain             = 77
	ProfileIDCScalableBaseline = 83
	ProfileIDCScalableHigh     = 86
	ProfileIDCExtended         = 88
	ProfileIDCHigh             = 100
	ProfileIDCHigh10           = 110
	ProfileIDCMultiviewHigh    = 118
	ProfileIDCHigh422          = 122
	ProfileIDCStereoHigh       = 128
	ProfileIDCHigh444          = 244
)

// Chroma formats as defined in section 6.2, table 6-1.
const (
	ChromaMonochrome = iota
	Chroma420
	Chroma422
	Chroma444
)

// SliceType is the slice_type syntax element. Values 5..9 carry the
// same coding type as value-5 with an "all slices equal" promise; Base
// folds them.
type SliceType uint8

// Slice types as defined by table 7-6.
const (
	SliceP SliceType = iota
	SliceB
	SliceI
	SliceSP
	SliceSI
)

// Base returns the slice coding type with the 5..9 aliases folded.
func (t SliceType) Base() SliceType {
	return t % 5
}

// IsP reports whether the slice is predictive-coded.
func (t SliceType) IsP() bool { return t.Base() == SliceP }

// IsB reports whether the slice is bi-predictive-coded.
func (t SliceType) IsB() bool { return t.Base() == SliceB }

// IsSP reports whether the slice is switching-predictive-coded.
func (t SliceType) IsSP() bool { return t.Base() == SliceSP }

// SPS carries the sequence parameter set fields the bridge consumes.
type SPS struct {
	ProfileIDC uint8
	LevelIDC   uint8

	ConstraintSet0Flag bool
	ConstraintSet1Flag bool
	ConstraintSet2Flag bool

	ChromaFormatIDC         uint8
	SeparateColourPlaneFlag bool
	BitDepthLumaMinus8      uint8
	BitDepthChromaMinus8    uint8

	Log2MaxFrameNumMinus4       uint8
	PicOrderCntType             uint8
	Log2MaxPicOrderCntLsbMinus4 uint8
	DeltaPicOrderAlwaysZeroFlag bool

	MaxNumRefFrames                uint8
	GapsInFrameNumValueAllowedFlag bool

	PicWidthInMBsMinus1       uint16
	PicHeightInMapUnitsMinus1 uint16
	FrameMBsOnlyFlag          bool
	MBAdaptiveFrameFieldFlag  bool
	Direct8x8InferenceFlag    bool

	// Coded size and cropping rectangle, derived by the parser.
	Width  int
	Height int

	FrameCroppingFlag bool
	CropRectX         int
	CropRectY         int
	CropRectWidth     int
	CropRectHeight    int

	// NumViews is taken from the MVC extension; 1 when absent.
	NumViews int
}

// ChromaArrayType implements equation 7-25: zero when the colour
// planes are coded separately.
func (s *SPS) ChromaArrayType() uint8 {
	if s.SeparateColourPlaneFlag {
		return 0
	}
	return s.ChromaFormatIDC
}

// PPS carries the picture parameter set fields the bridge consumes.
// Scaling lists are in bitstream zigzag order, fallback rules already
// applied by the parser.
type PPS struct {
	SPS *SPS

	EntropyCodingModeFlag              bool
	PicOrderPresentFlag                bool
	WeightedPredFlag                   bool
	WeightedBipredIDC                  uint8
	PicInitQPMinus26                   int8
	PicInitQSMinus26                   int8
	ChromaQPIndexOffset                int8
	SecondChromaQPIndexOffset          int8
	DeblockingFilterControlPresentFlag bool
	ConstrainedIntraPredFlag           bool
	RedundantPicCntPresentFlag         bool
	Transform8x8ModeFlag               bool

	ScalingLists4x4 [6][16]uint8
	ScalingLists8x8 [6][64]uint8
}

// PredWeightTable carries the 7.4.3.2 prediction weights with all
// inferred (default, non-signaled) entries already resolved upstream.
type PredWeightTable struct {
	LumaLog2WeightDenom   uint8
	ChromaLog2WeightDenom uint8

	LumaWeightL0   [32]int16
	LumaOffsetL0   [32]int16
	ChromaWeightL0 [32][2]int16
	ChromaOffsetL0 [32][2]int16

	LumaWeightL1   [32]int16
	LumaOffsetL1   [32]int16
	ChromaWeightL1 [32][2]int16
	ChromaOffsetL1 [32][2]int16
}

// SliceHeader carries the parsed slice header fields the bridge consumes.
type SliceHeader struct {
	PPS *PPS

	Type           SliceType
	FirstMBInSlice uint32
	FrameNum       uint16

	FieldPicFlag    bool
	BottomFieldFlag bool

	NumRefIdxL0ActiveMinus1 uint8
	NumRefIdxL1ActiveMinus1 uint8

	CabacInitIDC               uint8
	SliceQPDelta               int8
	DisableDeblockingFilterIDC uint8
	SliceAlphaC0OffsetDiv2     int8
	SliceBetaOffsetDiv2        int8
	DirectSpatialMVPredFlag    bool

	PredWeightTable PredWeightTable

	// HeaderSizeBits is the parsed header size in bits, counted over the
	// escaped bitstream; EmulationPreventionBytes is how many escape
	// bytes that span contained.
	HeaderSizeBits           uint32
	EmulationPreventionBytes int
}

// NALUnit is one network abstraction layer unit as delivered by the
// parser: raw escaped bytes, header already split off.
type NALUnit struct {
	Type        uint8
	RefIDC      uint8
	HeaderBytes int    // NAL header size, extensions included
	Data        []byte // complete escaped unit, header included
}

// Slice bundles a slice header with the NAL unit that carried it.
type Slice struct {
	Header SliceHeader
	NALU   NALUnit
}
