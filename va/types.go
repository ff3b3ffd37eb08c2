// Package va defines the fixed-layout parameter records and driver
// contracts of the VA-API submission boundary. Builders elsewhere in
// the module fill these records with named fields; the packed hardware
// bit layout is produced only at submission time (see pack.go).
package va

// SurfaceID identifies a hardware decode surface.
type SurfaceID uint32

// InvalidSurfaceID marks an absent surface in a reference slot.
const InvalidSurfaceID SurfaceID = 0xffffffff

// Picture flags of the PictureH264 record.
const (
	PictureInvalid            = 0x00000001
	PictureTopField           = 0x00000002
	PictureBottomField        = 0x00000004
	PictureShortTermReference = 0x00000008
	PictureLongTermReference  = 0x00000010
)

// SliceDataFlagAll submits a whole slice in one buffer.
const SliceDataFlagAll = 0x00

// PictureH264 is the hardware-visible record of one reference picture.
type PictureH264 struct {
	PictureID           SurfaceID
	FrameIdx            uint32
	Flags               uint32
	TopFieldOrderCnt    int32
	BottomFieldOrderCnt int32
}

// InvalidPictureH264 returns the sentinel record marking an empty
// reference slot. Reference arrays are always fully populated; unused
// slots hold exactly this record.
func InvalidPictureH264() PictureH264 {
	return PictureH264{
		PictureID: InvalidSurfaceID,
		Flags:     PictureInvalid,
	}
}

// SeqFieldsH264 is the sequence-level flag group of the picture
// parameter record, kept as named fields until packing.
type SeqFieldsH264 struct {
	ChromaFormatIDC             uint8
	ResidualColourTransformFlag bool
	GapsInFrameNumValueAllowed  bool
	FrameMBsOnlyFlag            bool
	MBAdaptiveFrameFieldFlag    bool
	Direct8x8InferenceFlag      bool
	MinLumaBiPredSize8x8        bool
	Log2MaxFrameNumMinus4       uint8
	PicOrderCntType             uint8
	Log2MaxPicOrderCntLsbMinus4 uint8
	DeltaPicOrderAlwaysZeroFlag bool
}

// PicFieldsH264 is the picture-level flag group of the picture
// parameter record.
type PicFieldsH264 struct {
	EntropyCodingModeFlag          bool
	WeightedPredFlag               bool
	WeightedBipredIDC              uint8
	Transform8x8ModeFlag           bool
	FieldPicFlag                   bool
	ConstrainedIntraPredFlag       bool
	PicOrderPresentFlag            bool
	DeblockingFilterControlPresent bool
	RedundantPicCntPresentFlag     bool
	ReferencePicFlag               bool
}

// PictureParameterBufferH264 is the per-picture parameter record.
type PictureParameterBufferH264 struct {
	CurrPic                   PictureH264
	ReferenceFrames           [16]PictureH264
	PictureWidthInMBsMinus1   uint16
	PictureHeightInMBsMinus1  uint16
	BitDepthLumaMinus8        uint8
	BitDepthChromaMinus8      uint8
	NumRefFrames              uint8
	SeqFields                 SeqFieldsH264
	PicInitQPMinus26          int8
	PicInitQSMinus26          int8
	ChromaQPIndexOffset       int8
	SecondChromaQPIndexOffset int8
	PicFields                 PicFieldsH264
	FrameNum                  uint16
}

// SliceParameterBufferH264 is the per-slice parameter record.
type SliceParameterBufferH264 struct {
	SliceDataSize      uint32
	SliceDataOffset    uint32
	SliceDataFlag      uint32
	SliceDataBitOffset uint16

	FirstMBInSlice             uint16
	SliceType                  uint8
	DirectSpatialMVPredFlag    uint8
	NumRefIdxL0ActiveMinus1    uint8
	NumRefIdxL1ActiveMinus1    uint8
	CabacInitIDC               uint8
	SliceQPDelta               int8
	DisableDeblockingFilterIDC uint8
	SliceAlphaC0OffsetDiv2     int8
	SliceBetaOffsetDiv2        int8

	RefPicList0 [32]PictureH264
	RefPicList1 [32]PictureH264

	LumaLog2WeightDenom   uint8
	ChromaLog2WeightDenom uint8
	LumaWeightL0Flag      uint8
	LumaWeightL0          [32]int16
	LumaOffsetL0          [32]int16
	ChromaWeightL0Flag    uint8
	ChromaWeightL0        [32][2]int16
	ChromaOffsetL0        [32][2]int16
	LumaWeightL1Flag      uint8
	LumaWeightL1          [32]int16
	LumaOffsetL1          [32]int16
	ChromaWeightL1Flag    uint8
	ChromaWeightL1        [32][2]int16
	ChromaOffsetL1        [32][2]int16
}

// IQMatrixBufferH264 carries the scaling matrices in raster order.
// Entries 2..5 of ScalingList8x8 are consumed only for 4:4:4 content.
type IQMatrixBufferH264 struct {
	ScalingList4x4 [6][16]uint8
	ScalingList8x8 [6][64]uint8
}
