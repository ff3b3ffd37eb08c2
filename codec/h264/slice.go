package h264

import (
	"github.com/hwpipe/vabridge/va"
)

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// sliceDataBitOffset locates the first bit of slice data inside the
// escaped NAL unit: header bytes plus parsed header bits, minus the
// escape bytes the parser consumed transparently.
func sliceDataBitOffset(h *SliceHeader, nalHeaderBytes int) uint16 {
	return uint16(8*nalHeaderBytes + int(h.HeaderSizeBits) - 8*h.EmulationPreventionBytes)
}

// BuildSliceParameters translates one parsed slice into the driver's
// slice parameter record. refList0 and refList1 are the modified
// reference lists for the slice; either may be empty.
func BuildSliceParameters(slice *Slice, pic *Picture, refList0, refList1 []*Picture,
	store RefStore) *va.SliceParameterBufferH264 {
	h := &slice.Header

	sp := &va.SliceParameterBufferH264{
		SliceDataSize:      uint32(len(slice.NALU.Data)),
		SliceDataOffset:    0,
		SliceDataFlag:      va.SliceDataFlagAll,
		SliceDataBitOffset: sliceDataBitOffset(h, slice.NALU.HeaderBytes),

		FirstMBInSlice:             uint16(h.FirstMBInSlice),
		SliceType:                  uint8(h.Type.Base()),
		DirectSpatialMVPredFlag:    b2u8(h.DirectSpatialMVPredFlag),
		NumRefIdxL0ActiveMinus1:    h.NumRefIdxL0ActiveMinus1,
		NumRefIdxL1ActiveMinus1:    h.NumRefIdxL1ActiveMinus1,
		CabacInitIDC:               h.CabacInitIDC,
		SliceQPDelta:               h.SliceQPDelta,
		DisableDeblockingFilterIDC: h.DisableDeblockingFilterIDC,
		SliceAlphaC0OffsetDiv2:     h.SliceAlphaC0OffsetDiv2,
		SliceBetaOffsetDiv2:        h.SliceBetaOffsetDiv2,
	}

	FillSliceRefList(&sp.RefPicList0, refList0, pic, store)
	FillSliceRefList(&sp.RefPicList1, refList1, pic, store)
	fillPredWeightTable(h, sp)

	return sp
}

// fillPredWeightTable copies the explicit prediction weights into the
// slice record. One table applies to weighted P/SP slices, two to B
// slices under explicit bi-prediction; otherwise the record keeps its
// zero weights and the flags stay clear.
func fillPredWeightTable(h *SliceHeader, sp *va.SliceParameterBufferH264) {
	pps := h.PPS
	sps := pps.SPS

	numWeightTables := 0
	switch {
	case pps.WeightedPredFlag && (h.Type.IsP() || h.Type.IsSP()):
		numWeightTables = 1
	case pps.WeightedBipredIDC == 1 && h.Type.IsB():
		numWeightTables = 2
	default:
		return
	}

	wt := &h.PredWeightTable
	sp.LumaLog2WeightDenom = wt.LumaLog2WeightDenom
	sp.ChromaLog2WeightDenom = wt.ChromaLog2WeightDenom

	sp.LumaWeightL0Flag = 1
	for i := 0; i <= int(sp.NumRefIdxL0ActiveMinus1); i++ {
		sp.LumaWeightL0[i] = wt.LumaWeightL0[i]
		sp.LumaOffsetL0[i] = wt.LumaOffsetL0[i]
	}

	if sps.ChromaArrayType() != 0 {
		sp.ChromaWeightL0Flag = 1
		for i := 0; i <= int(sp.NumRefIdxL0ActiveMinus1); i++ {
			for j := 0; j < 2; j++ {
				sp.ChromaWeightL0[i][j] = wt.ChromaWeightL0[i][j]
				sp.ChromaOffsetL0[i][j] = wt.ChromaOffsetL0[i][j]
			}
		}
	}

	if numWeightTables != 2 {
		return
	}

	sp.LumaWeightL1Flag = 1
	for i := 0; i <= int(sp.NumRefIdxL1ActiveMinus1); i++ {
		sp.LumaWeightL1[i] = wt.LumaWeightL1[i]
		sp.LumaOffsetL1[i] = wt.LumaOffsetL1[i]
	}

	if sps.ChromaArrayType() != 0 {
		sp.ChromaWeightL1Flag = 1
		for i := 0; i <= int(sp.NumRefIdxL1ActiveMinus1); i++ {
			for j := 0; j < 2; j++ {
				sp.ChromaWeightL1[i][j] = wt.ChromaWeightL1[i][j]
				sp.ChromaOffsetL1[i][j] = wt.ChromaOffsetL1[i][j]
			}
		}
	}
}
