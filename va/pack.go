package va

// Bitfield packing for the submission boundary. The builders keep flag
// groups as named fields; drivers consume the packed words produced
// here, laid out LSB first in ABI declaration order.

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Pack returns the sequence flag group as the hardware bitfield word.
func (s SeqFieldsH264) Pack() uint32 {
	var v uint32
	v |= uint32(s.ChromaFormatIDC&0x3) << 0
	v |= b2u(s.ResidualColourTransformFlag) << 2
	v |= b2u(s.GapsInFrameNumValueAllowed) << 3
	v |= b2u(s.FrameMBsOnlyFlag) << 4
	v |= b2u(s.MBAdaptiveFrameFieldFlag) << 5
	v |= b2u(s.Direct8x8InferenceFlag) << 6
	v |= b2u(s.MinLumaBiPredSize8x8) << 7
	v |= uint32(s.Log2MaxFrameNumMinus4&0xf) << 8
	v |= uint32(s.PicOrderCntType&0x3) << 12
	v |= uint32(s.Log2MaxPicOrderCntLsbMinus4&0xf) << 14
	v |= b2u(s.DeltaPicOrderAlwaysZeroFlag) << 18
	return v
}

// Pack returns the picture flag group as the hardware bitfield word.
func (p PicFieldsH264) Pack() uint32 {
	var v uint32
	v |= b2u(p.EntropyCodingModeFlag) << 0
	v |= b2u(p.WeightedPredFlag) << 1
	v |= uint32(p.WeightedBipredIDC&0x3) << 2
	v |= b2u(p.Transform8x8ModeFlag) << 4
	v |= b2u(p.FieldPicFlag) << 5
	v |= b2u(p.ConstrainedIntraPredFlag) << 6
	v |= b2u(p.PicOrderPresentFlag) << 7
	v |= b2u(p.DeblockingFilterControlPresent) << 8
	v |= b2u(p.RedundantPicCntPresentFlag) << 9
	v |= b2u(p.ReferencePicFlag) << 10
	return v
}
