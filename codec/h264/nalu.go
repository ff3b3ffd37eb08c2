package h264

import (
	"github.com/hwpipe/vabridge/utils/nal"
)

// NAL unit types carrying an extended (3 byte) header.
const (
	naluPrefix         = 14
	naluSliceExtension = 20
)

// NewNALUnit wraps one escaped NAL unit, splitting off the header
// fields. Prefix and slice extension units carry the 3 byte MVC header.
func NewNALUnit(data []byte) NALUnit {
	u := NALUnit{
		Type:        nal.Type(data),
		RefIDC:      nal.RefIDC(data),
		HeaderBytes: 1,
		Data:        data,
	}
	if u.Type == naluPrefix || u.Type == naluSliceExtension {
		u.HeaderBytes = 3
	}
	return u
}

// SplitUnits splits an access unit buffer in raw, length-prefixed or
// start-code separated layout into its NAL units.
func SplitUnits(b []byte) []NALUnit {
	raw, _ := nal.Split(b)
	units := make([]NALUnit, 0, len(raw))
	for _, r := range raw {
		if len(r) == 0 {
			continue
		}
		units = append(units, NewNALUnit(r))
	}
	return units
}

// HeaderEmulationPreventionBytes counts the escape bytes inside the
// slice header span, given the parsed header size in bits counted over
// the escaped bitstream.
func (u NALUnit) HeaderEmulationPreventionBytes(headerSizeBits uint32) int {
	end := u.HeaderBytes + int(headerSizeBits+7)/8
	if end > len(u.Data) {
		end = len(u.Data)
	}
	if u.HeaderBytes >= end {
		return 0
	}
	return nal.EmulationPreventionBytes(u.Data[u.HeaderBytes:end])
}
