package h264

import (
	"github.com/pkg/errors"

	"github.com/hwpipe/vabridge"
	"github.com/hwpipe/vabridge/utils"
	"github.com/hwpipe/vabridge/utils/logger"
	"github.com/hwpipe/vabridge/va"
)

// extraSurfaces is how many surfaces a downstream consumer holds on
// top of the DPB.
const extraSurfaces = 4

// Padding is the right/bottom alignment a cropped stream leaves on the
// coded surface.
type Padding struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Decoder drives a VA decode device through the per-sequence and
// per-picture phases of an H.264 stream. It owns negotiation state;
// the DPB and reference lists are managed by the caller and passed in
// per picture.
type Decoder struct {
	drv va.Decoder

	profile    va.Profile
	rtFormat   va.RTFormat
	dpbSize    int
	minBuffers int

	codedWidth  int
	codedHeight int
	width       int
	height      int
	padding     Padding
	interlaced  bool

	preferredFormat vabridge.PixelFormat
	needNegotiation bool
}

// NewDecoder wraps a decode device.
func NewDecoder(drv va.Decoder) *Decoder {
	return &Decoder{drv: drv}
}

func (d *Decoder) String() string {
	return "h264dec"
}

// Profile returns the negotiated decode profile.
func (d *Decoder) Profile() va.Profile { return d.profile }

// RTFormat returns the negotiated render-target format.
func (d *Decoder) RTFormat() va.RTFormat { return d.rtFormat }

// DPBSize returns the negotiated decoded-picture-buffer size.
func (d *Decoder) DPBSize() int { return d.dpbSize }

// MinBuffers returns how many surfaces the stream needs allocated.
func (d *Decoder) MinBuffers() int { return d.minBuffers }

// DisplaySize returns the cropped output size.
func (d *Decoder) DisplaySize() (width, height int) { return d.width, d.height }

// CodedSize returns the surface size before cropping.
func (d *Decoder) CodedSize() (width, height int) { return d.codedWidth, d.codedHeight }

// DisplayPadding returns the crop margins on the coded surface.
func (d *Decoder) DisplayPadding() Padding { return d.padding }

// Interlaced reports whether the sequence allows field coding.
func (d *Decoder) Interlaced() bool { return d.interlaced }

// PreferredFormat returns the output pixel format matching the
// negotiated render-target format.
func (d *Decoder) PreferredFormat() vabridge.PixelFormat { return d.preferredFormat }

// NewSequence processes an activated SPS: picks the decode profile and
// render-target format, derives display geometry and buffer needs, and
// renegotiates the device when any of it changed.
func (d *Decoder) NewSequence(sps *SPS, maxDPBSize int) error {
	profile, err := SelectProfile(sps, maxDPBSize, d.drv.HasProfile)
	if err != nil {
		return err
	}

	rt, err := rtFormat(sps)
	if err != nil {
		return err
	}

	dpbSize := maxDPBSize
	if d.dpbSize > dpbSize {
		dpbSize = d.dpbSize
	}

	if !d.drv.IsConfigEqual(profile, rt, sps.Width, sps.Height) {
		d.profile = profile
		d.rtFormat = rt
		d.codedWidth = sps.Width
		d.codedHeight = sps.Height
		d.needNegotiation = true
		logger.Infof(d, "format changed to %s [%s] (%dx%d)",
			profile, rt, d.codedWidth, d.codedHeight)
	}

	if sps.FrameCroppingFlag {
		if d.width != sps.CropRectWidth || d.height != sps.CropRectHeight {
			d.width = sps.CropRectWidth
			d.height = sps.CropRectHeight
			d.needNegotiation = true
			logger.Infof(d, "display resolution changed to %dx%d", d.width, d.height)
		}
		d.padding = Padding{
			Left:   sps.CropRectX,
			Top:    sps.CropRectY,
			Right:  d.codedWidth - d.width - sps.CropRectX,
			Bottom: d.codedHeight - d.height - sps.CropRectY,
		}
	} else if d.width != sps.Width || d.height != sps.Height {
		d.width = sps.Width
		d.height = sps.Height
		d.needNegotiation = true
		logger.Infof(d, "display resolution changed to %dx%d", d.width, d.height)
	}

	if interlaced := !sps.FrameMBsOnlyFlag; d.interlaced != interlaced {
		d.interlaced = interlaced
		d.needNegotiation = true
		logger.Infof(d, "interlaced mode changed to %t", interlaced)
	}

	if d.dpbSize < dpbSize {
		d.needNegotiation = true
	}
	d.dpbSize = dpbSize
	d.minBuffers = dpbSize + extraSurfaces

	return d.negotiate()
}

// negotiate reopens the device under the pending configuration. A
// no-op when nothing changed since the last call.
func (d *Decoder) negotiate() error {
	if !d.needNegotiation {
		return nil
	}
	d.needNegotiation = false

	if d.drv.IsOpen() {
		if err := d.drv.Close(); err != nil {
			return err
		}
	}
	if err := d.drv.Open(d.profile, d.rtFormat); err != nil {
		return err
	}
	if err := d.drv.SetFrameSize(d.codedWidth, d.codedHeight); err != nil {
		return err
	}

	d.preferredFormat = preferredFormat(d.rtFormat)
	return nil
}

// preferredFormat picks the output pixel format a render-target format
// maps to.
func preferredFormat(rt va.RTFormat) vabridge.PixelFormat {
	switch rt {
	case va.RTFormatYUV420:
		return vabridge.FormatNV12
	case va.RTFormatYUV42010:
		return vabridge.FormatP010
	case va.RTFormatYUV422:
		return vabridge.FormatYUY2
	case va.RTFormatYUV444:
		return vabridge.FormatVUYA
	}
	return vabridge.FormatUnknown
}

// StartPicture submits the picture-level parameter and scaling-matrix
// buffers for the picture's surface.
func (d *Decoder) StartPicture(pic *Picture, h *SliceHeader, store RefStore) error {
	pp := BuildPictureParameters(pic, h, store)
	if err := d.drv.AddParamBuffer(pic.Surface, va.PictureParameterBufferType, pp); err != nil {
		return errors.WithStack(utils.SubmissionError{Reason: err})
	}

	iq := BuildIQMatrix(h.PPS)
	if err := d.drv.AddParamBuffer(pic.Surface, va.IQMatrixBufferType, iq); err != nil {
		return errors.WithStack(utils.SubmissionError{Reason: err})
	}

	return nil
}

// DecodeSlice submits one slice's parameter record and raw bytes.
func (d *Decoder) DecodeSlice(pic *Picture, slice *Slice,
	refList0, refList1 []*Picture, store RefStore) error {
	sp := BuildSliceParameters(slice, pic, refList0, refList1, store)
	if err := d.drv.AddSliceBuffer(pic.Surface, sp, slice.NALU.Data); err != nil {
		return errors.WithStack(utils.SubmissionError{Reason: err})
	}
	return nil
}

// EndPicture executes the decode of everything submitted for the
// picture.
func (d *Decoder) EndPicture(pic *Picture) error {
	logger.Tracef(d, "decode picture %d (frame_num %d)", pic.ID(), pic.FrameNum)
	if err := d.drv.Decode(pic.Surface); err != nil {
		return errors.WithStack(utils.SubmissionError{Reason: err})
	}
	return nil
}
