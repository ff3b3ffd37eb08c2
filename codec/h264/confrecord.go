package h264

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hwpipe/vabridge/utils"
	"github.com/hwpipe/vabridge/utils/bits/pio"
)

// NAL unit types delivered out of band.
const (
	NALUSliceIDR = 5
	NALUSPS      = 7
	NALUPPS      = 8
)

const (
	confRecordHeaderLen = 7
	confRecordLengthLen = 2

	maskLengthSize    = 0x03
	maskSPSCount      = 0x1f
	maskLengthSizeInv = 0xfc
	maskSPSCountInv   = 0xe0
)

// ConfRecord is the AVCDecoderConfigurationRecord carried out of band by
// containers and transports. It holds the raw SPS and PPS NAL units the
// host parser feeds from before any slice arrives.
type ConfRecord struct {
	ProfileIndication    uint8    // profile_idc of the first SPS.
	ProfileCompatibility uint8    // constraint_set flags byte.
	LevelIndication      uint8    // level_idc of the first SPS.
	LengthSizeMinusOne   uint8    // NALU length prefix size minus one.
	SPS                  [][]byte // raw SPS NAL units.
	PPS                  [][]byte // raw PPS NAL units.
}

// NewConfRecord builds a record around single raw SPS and PPS NAL units,
// lifting the profile, compatibility and level bytes out of the SPS.
func NewConfRecord(sps, pps []byte) (ConfRecord, error) {
	if len(sps) < 4 || len(pps) == 0 {
		return ConfRecord{}, errors.WithStack(utils.InvalidConfRecordError{})
	}
	return ConfRecord{
		ProfileIndication:    sps[1],
		ProfileCompatibility: sps[2],
		LevelIndication:      sps[3],
		LengthSizeMinusOne:   3,
		SPS:                  [][]byte{sps},
		PPS:                  [][]byte{pps},
	}, nil
}

// Unmarshal decodes the record from b. The SPS and PPS slices alias b.
// It returns the number of bytes consumed.
func (rec *ConfRecord) Unmarshal(b []byte) (n int, err error) {
	if len(b) < confRecordHeaderLen {
		return 0, errors.WithStack(utils.InvalidConfRecordError{})
	}

	rec.ProfileIndication = b[1]
	rec.ProfileCompatibility = b[2]
	rec.LevelIndication = b[3]
	rec.LengthSizeMinusOne = b[4] & maskLengthSize
	spsCount := int(b[5] & maskSPSCount)
	n = 6

	for i := 0; i < spsCount; i++ {
		if len(b) < n+confRecordLengthLen {
			return n, errors.WithStack(utils.InvalidConfRecordError{})
		}
		size := int(pio.U16BE(b[n:]))
		n += confRecordLengthLen

		if len(b) < n+size {
			return n, errors.WithStack(utils.InvalidConfRecordError{})
		}
		rec.SPS = append(rec.SPS, b[n:n+size])
		n += size
	}

	if len(b) < n+1 {
		return n, errors.WithStack(utils.InvalidConfRecordError{})
	}
	ppsCount := int(b[n])
	n++

	for i := 0; i < ppsCount; i++ {
		if len(b) < n+confRecordLengthLen {
			return n, errors.WithStack(utils.InvalidConfRecordError{})
		}
		size := int(pio.U16BE(b[n:]))
		n += confRecordLengthLen

		if len(b) < n+size {
			return n, errors.WithStack(utils.InvalidConfRecordError{})
		}
		rec.PPS = append(rec.PPS, b[n:n+size])
		n += size
	}

	return n, nil
}

// Len returns the encoded size of the record.
func (rec *ConfRecord) Len() (n int) {
	n = confRecordHeaderLen
	for _, sps := range rec.SPS {
		n += confRecordLengthLen + len(sps)
	}
	for _, pps := range rec.PPS {
		n += confRecordLengthLen + len(pps)
	}
	return n
}

// Marshal encodes the record into b, which must be at least Len() bytes.
// It returns the number of bytes written.
func (rec *ConfRecord) Marshal(b []byte) (n int) {
	b[0] = 1
	b[1] = rec.ProfileIndication
	b[2] = rec.ProfileCompatibility
	b[3] = rec.LevelIndication
	b[4] = rec.LengthSizeMinusOne | maskLengthSizeInv
	b[5] = uint8(len(rec.SPS)) | maskSPSCountInv
	n = 6

	for _, sps := range rec.SPS {
		pio.PutU16BE(b[n:], uint16(len(sps)))
		n += confRecordLengthLen
		copy(b[n:], sps)
		n += len(sps)
	}

	b[n] = uint8(len(rec.PPS))
	n++

	for _, pps := range rec.PPS {
		pio.PutU16BE(b[n:], uint16(len(pps)))
		n += confRecordLengthLen
		copy(b[n:], pps)
		n += len(pps)
	}

	return n
}

// Tag returns the RFC 6381 codec string of the record.
func (rec *ConfRecord) Tag() string {
	return fmt.Sprintf("avc1.%02X%02X%02X",
		rec.ProfileIndication, rec.ProfileCompatibility, rec.LevelIndication)
}
