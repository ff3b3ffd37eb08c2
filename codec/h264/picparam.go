package h264

import (
	"github.com/hwpipe/vabridge/va"
)

// mbHeightMinus1 derives the picture height in macroblocks. Map units
// are field-sized when the sequence allows field coding, so the height
// doubles unless the stream is frame-only.
func mbHeightMinus1(sps *SPS) uint16 {
	shift := 1
	if sps.FrameMBsOnlyFlag {
		shift = 0
	}
	return uint16((int(sps.PicHeightInMapUnitsMinus1)+1)<<shift - 1)
}

// BuildPictureParameters translates the current picture and its active
// parameter sets into the driver's picture parameter record. The
// current-picture record never merges fields; the reference snapshot
// comes from the store.
func BuildPictureParameters(pic *Picture, h *SliceHeader, store RefStore) *va.PictureParameterBufferH264 {
	pps := h.PPS
	sps := pps.SPS

	pp := &va.PictureParameterBufferH264{
		PictureWidthInMBsMinus1:  sps.PicWidthInMBsMinus1,
		PictureHeightInMBsMinus1: mbHeightMinus1(sps),
		BitDepthLumaMinus8:       sps.BitDepthLumaMinus8,
		BitDepthChromaMinus8:     sps.BitDepthChromaMinus8,
		NumRefFrames:             sps.MaxNumRefFrames,

		SeqFields: va.SeqFieldsH264{
			ChromaFormatIDC:             sps.ChromaFormatIDC,
			ResidualColourTransformFlag: sps.SeparateColourPlaneFlag,
			GapsInFrameNumValueAllowed:  sps.GapsInFrameNumValueAllowedFlag,
			FrameMBsOnlyFlag:            sps.FrameMBsOnlyFlag,
			MBAdaptiveFrameFieldFlag:    sps.MBAdaptiveFrameFieldFlag,
			Direct8x8InferenceFlag:      sps.Direct8x8InferenceFlag,
			MinLumaBiPredSize8x8:        sps.LevelIDC >= 31,
			Log2MaxFrameNumMinus4:       sps.Log2MaxFrameNumMinus4,
			PicOrderCntType:             sps.PicOrderCntType,
			Log2MaxPicOrderCntLsbMinus4: sps.Log2MaxPicOrderCntLsbMinus4,
			DeltaPicOrderAlwaysZeroFlag: sps.DeltaPicOrderAlwaysZeroFlag,
		},

		PicInitQPMinus26:          pps.PicInitQPMinus26,
		PicInitQSMinus26:          pps.PicInitQSMinus26,
		ChromaQPIndexOffset:       pps.ChromaQPIndexOffset,
		SecondChromaQPIndexOffset: pps.SecondChromaQPIndexOffset,

		PicFields: va.PicFieldsH264{
			EntropyCodingModeFlag:          pps.EntropyCodingModeFlag,
			WeightedPredFlag:               pps.WeightedPredFlag,
			WeightedBipredIDC:              pps.WeightedBipredIDC,
			Transform8x8ModeFlag:           pps.Transform8x8ModeFlag,
			FieldPicFlag:                   h.FieldPicFlag,
			ConstrainedIntraPredFlag:       pps.ConstrainedIntraPredFlag,
			PicOrderPresentFlag:            pps.PicOrderPresentFlag,
			DeblockingFilterControlPresent: pps.DeblockingFilterControlPresentFlag,
			RedundantPicCntPresentFlag:     pps.RedundantPicCntPresentFlag,
			ReferencePicFlag:               pic.NalRefIDC != 0,
		},

		FrameNum: h.FrameNum,
	}

	pp.CurrPic = PictureRecord(pic, false, store)
	FillReferenceFrames(&pp.ReferenceFrames, store)

	return pp
}
