// Package nal splits H.264 elementary-stream buffers into NAL units and
// accounts for the emulation-prevention bytes the entropy decoder must
// skip. The bridge needs both to hand raw slice byte ranges and exact
// bit offsets to the hardware.
package nal

import (
	"github.com/hwpipe/vabridge/utils/bits/pio"
)

// Constants for different NALU (Network Abstraction Layer Unit) formats.
const (
	FormatRaw    = iota // single raw NALU
	FormatAVCC          // length-prefixed NALUs
	FormatAnnexB        // start-code separated NALUs
)

// MinNaluSize is the minimum size of a Network Abstraction Layer Unit (NALU).
const MinNaluSize = 4

// RefIDC extracts the nal_ref_idc field of a NAL unit header.
func RefIDC(nalu []byte) uint8 {
	if len(nalu) == 0 {
		return 0
	}
	return (nalu[0] >> 5) & 0x3
}

// Type extracts the nal_unit_type field of a NAL unit header.
func Type(nalu []byte) uint8 {
	if len(nalu) == 0 {
		return 0
	}
	return nalu[0] & 0x1f
}

// EmulationPreventionBytes counts the 0x03 bytes inserted after two
// consecutive zero bytes. The hardware receives the escaped payload
// verbatim, so header bit offsets must subtract these.
func EmulationPreventionBytes(b []byte) (n int) {
	zeros := 0
	for _, c := range b {
		switch {
		case c == 0x03 && zeros >= 2:
			n++
			zeros = 0
		case c == 0x00:
			zeros++
		default:
			zeros = 0
		}
	}
	return n
}

// isStartCode checks if there's a NALU start code (0x000001 or 0x00000001) at the given position
// and returns the type of start code found (3-byte or 4-byte) and whether a start code was found.
func isStartCode(b []byte, pos int) (startCodeLength int, found bool) {
	if pos+2 >= len(b) || b[pos] != 0 {
		return 0, false
	}

	val3 := pio.U24BE(b[pos:])
	if val3 == 1 {
		return 3, true //nolint:mnd
	}

	if val3 == 0 && pos+3 < len(b) && b[pos+3] == 1 {
		return 4, true //nolint:mnd
	}

	return 0, false
}

// parseAnnexB parses a byte slice in Annex-B format and returns the NALUs.
func parseAnnexB(b []byte, val3, val4 uint32) [][]byte {
	var nalus [][]byte
	_val3 := val3
	_val4 := val4
	start := 0
	pos := 0
	for {
		if start != pos {
			nalus = append(nalus, b[start:pos])
		}
		if _val3 == 1 {
			pos += 3
		} else if _val4 == 1 {
			pos += 4
		}
		start = pos
		if start == len(b) {
			break
		}
		_val3 = 0
		_val4 = 0
		for pos < len(b) {
			startCodeLength, found := isStartCode(b, pos)
			if found {
				if startCodeLength == 3 { //nolint:mnd
					_val3 = 1
				} else {
					_val4 = 1
				}
				break
			}
			pos++
		}
	}
	return nalus
}

// Split splits a byte slice into Network Abstraction Layer Units (NALUs)
// based on different formats (raw, AVCC, or Annex-B) and returns the
// NALUs and the format type.
func Split(b []byte) (nalus [][]byte, typ int) {
	// If the byte slice is smaller than the minimum NALU size, consider it as a single raw NALU.
	if len(b) < MinNaluSize {
		return [][]byte{b}, FormatRaw
	}

	// Check for Annex-B format first: a start code prefix would also
	// pass the AVCC length check below.
	val4 := pio.U32BE(b)
	val3 := pio.U24BE(b)
	if val3 == 1 || val4 == 1 {
		return parseAnnexB(b, val3, val4), FormatAnnexB
	}

	// Check for AVCC format.
	if val4 <= uint32(len(b)) { //nolint:gosec
		_val4 := val4
		_b := b[MinNaluSize:]
		nalus = [][]byte{}
		for {
			if _val4 > uint32(len(_b)) { //nolint:gosec
				// For corrupted streams, try to salvage partial NALUs
				if len(_b) > 0 {
					nalus = append(nalus, _b)
				}
				break
			}
			if _val4 > 0 {
				nalus = append(nalus, _b[:_val4])
			}
			_b = _b[_val4:]
			if len(_b) < MinNaluSize {
				break
			}
			_val4 = pio.U32BE(_b)
			_b = _b[MinNaluSize:]
			if _val4 > uint32(len(_b)) { //nolint:gosec
				// For corrupted streams, try to salvage partial NALUs
				if len(_b) > 0 {
					nalus = append(nalus, _b)
				}
				break
			}
		}
		if len(_b) == 0 || len(nalus) > 0 {
			return nalus, FormatAVCC
		}
	}

	// If none of the formats match, consider it as a single raw NALU.
	return [][]byte{b}, FormatRaw
}
