package h264

import (
	"github.com/pkg/errors"

	"github.com/hwpipe/vabridge/utils"
	"github.com/hwpipe/vabridge/va"
)

// Direct profile translations. Anything else relies on the constraint
// fallbacks below.
var profileMap = []struct {
	idc     uint8
	profile va.Profile
}{
	{ProfileIDCMain, va.ProfileH264Main},
	{ProfileIDCHigh, va.ProfileH264High},
	{ProfileIDCMultiviewHigh, va.ProfileH264MultiviewHigh},
	{ProfileIDCStereoHigh, va.ProfileH264StereoHigh},
}

// SelectProfile builds the candidate list for the signaled profile and
// returns the first candidate the driver accepts. Baseline content
// constrained by any of the first three flags may decode as
// constrained-baseline or main; extended with constraint one as main;
// two-view multiview as stereo-high. An empty or fully rejected list
// fails the stream.
func SelectProfile(sps *SPS, maxDPBSize int, hasProfile func(va.Profile) bool) (va.Profile, error) {
	candidates := make([]va.Profile, 0, 4)

	for _, m := range profileMap {
		if m.idc == sps.ProfileIDC {
			candidates = append(candidates, m.profile)
			break
		}
	}

	switch sps.ProfileIDC {
	case ProfileIDCBaseline:
		if sps.ConstraintSet0Flag || sps.ConstraintSet1Flag || sps.ConstraintSet2Flag {
			candidates = append(candidates,
				va.ProfileH264ConstrainedBaseline, va.ProfileH264Main)
		}
	case ProfileIDCExtended:
		if sps.ConstraintSet1Flag {
			candidates = append(candidates, va.ProfileH264Main)
		}
	case ProfileIDCMultiviewHigh:
		if sps.NumViews == 2 {
			candidates = append(candidates, va.ProfileH264StereoHigh)
		}
		if maxDPBSize <= maxDPBSlots {
			candidates = append(candidates, va.ProfileH264MultiviewHigh)
		}
	}

	for _, p := range candidates {
		if hasProfile(p) {
			return p, nil
		}
	}

	return va.ProfileNone, errors.WithStack(utils.UnsupportedProfileError{ProfileIDC: sps.ProfileIDC})
}

// Bit depths a render-target format exists for.
const (
	bitDepth8  = 8
	bitDepth10 = 10
)

// rtFormat maps the stream's bit depth and chroma format to the
// hardware render-target format.
func rtFormat(sps *SPS) (va.RTFormat, error) {
	bitDepth := sps.BitDepthLumaMinus8 + 8

	switch bitDepth {
	case bitDepth10:
		switch sps.ChromaFormatIDC {
		case Chroma444:
			return va.RTFormatYUV44410, nil
		case Chroma422:
			return va.RTFormatYUV42210, nil
		default:
			return va.RTFormatYUV42010, nil
		}
	case bitDepth8:
		switch sps.ChromaFormatIDC {
		case Chroma444:
			return va.RTFormatYUV444, nil
		case Chroma422:
			return va.RTFormatYUV422, nil
		default:
			return va.RTFormatYUV420, nil
		}
	}

	return 0, errors.WithStack(utils.UnsupportedFormatError{
		ChromaFormatIDC: sps.ChromaFormatIDC,
		BitDepthLuma:    bitDepth,
	})
}
