package h264

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hwpipe/vabridge"
	"github.com/hwpipe/vabridge/utils"
	"github.com/hwpipe/vabridge/va"
)

type capturedParam struct {
	surface va.SurfaceID
	typ     va.BufferType
	param   any
}

type capturedSlice struct {
	surface va.SurfaceID
	param   *va.SliceParameterBufferH264
	data    []byte
}

// fakeDriver records every call a Decoder makes against the device.
type fakeDriver struct {
	profiles map[va.Profile]bool

	open    bool
	profile va.Profile
	rt      va.RTFormat
	width   int
	height  int

	opens   int
	closes  int
	params  []capturedParam
	slices  []capturedSlice
	decoded []va.SurfaceID

	submitErr error
}

func newFakeDriver(profiles ...va.Profile) *fakeDriver {
	d := &fakeDriver{profiles: make(map[va.Profile]bool, len(profiles))}
	for _, p := range profiles {
		d.profiles[p] = true
	}
	return d
}

func (d *fakeDriver) HasProfile(p va.Profile) bool { return d.profiles[p] }

func (d *fakeDriver) IsConfigEqual(p va.Profile, rt va.RTFormat, width, height int) bool {
	return d.open && d.profile == p && d.rt == rt && d.width == width && d.height == height
}

func (d *fakeDriver) Open(p va.Profile, rt va.RTFormat) error {
	d.open = true
	d.profile = p
	d.rt = rt
	d.opens++
	return nil
}

func (d *fakeDriver) IsOpen() bool { return d.open }

func (d *fakeDriver) Close() error {
	d.open = false
	d.closes++
	return nil
}

func (d *fakeDriver) SetFrameSize(width, height int) error {
	d.width = width
	d.height = height
	return nil
}

func (d *fakeDriver) AddParamBuffer(surface va.SurfaceID, typ va.BufferType, param any) error {
	if d.submitErr != nil {
		return d.submitErr
	}
	d.params = append(d.params, capturedParam{surface: surface, typ: typ, param: param})
	return nil
}

func (d *fakeDriver) AddSliceBuffer(surface va.SurfaceID, param *va.SliceParameterBufferH264,
	data []byte) error {
	if d.submitErr != nil {
		return d.submitErr
	}
	d.slices = append(d.slices, capturedSlice{surface: surface, param: param, data: data})
	return nil
}

func (d *fakeDriver) Decode(surface va.SurfaceID) error {
	if d.submitErr != nil {
		return d.submitErr
	}
	d.decoded = append(d.decoded, surface)
	return nil
}

func TestNewSequenceNegotiates(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	sps := testSPS()
	sps.FrameCroppingFlag = true
	sps.CropRectWidth = 1920
	sps.CropRectHeight = 1080

	require.NoError(t, dec.NewSequence(sps, 4))

	require.Equal(t, 1, drv.opens)
	require.Equal(t, va.ProfileH264High, drv.profile)
	require.Equal(t, va.RTFormatYUV420, drv.rt)
	require.Equal(t, 1920, drv.width)
	require.Equal(t, 1088, drv.height)

	w, h := dec.DisplaySize()
	require.Equal(t, 1920, w)
	require.Equal(t, 1080, h)
	require.Equal(t, Padding{Bottom: 8}, dec.DisplayPadding())

	require.Equal(t, 4, dec.DPBSize())
	require.Equal(t, 8, dec.MinBuffers())
	require.False(t, dec.Interlaced())
	require.Equal(t, vabridge.FormatNV12, dec.PreferredFormat())
}

func TestNewSequenceSkipsRedundantNegotiation(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	sps := testSPS()
	require.NoError(t, dec.NewSequence(sps, 4))
	require.NoError(t, dec.NewSequence(sps, 4))

	require.Equal(t, 1, drv.opens)
	require.Zero(t, drv.closes)
}

func TestNewSequenceReopensOnChange(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	sps := testSPS()
	require.NoError(t, dec.NewSequence(sps, 4))

	bigger := testSPS()
	bigger.Width = 3840
	bigger.Height = 2176
	require.NoError(t, dec.NewSequence(bigger, 4))

	require.Equal(t, 2, drv.opens)
	require.Equal(t, 1, drv.closes, "the old configuration closes before reopening")
	require.Equal(t, 3840, drv.width)
}

func TestNewSequenceDPBNeverShrinks(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	require.NoError(t, dec.NewSequence(testSPS(), 8))
	require.Equal(t, 8, dec.DPBSize())

	require.NoError(t, dec.NewSequence(testSPS(), 4))
	require.Equal(t, 8, dec.DPBSize())
}

func TestNewSequenceInterlaced(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	sps := testSPS()
	sps.FrameMBsOnlyFlag = false
	require.NoError(t, dec.NewSequence(sps, 4))
	require.True(t, dec.Interlaced())
}

func TestNewSequenceUnsupportedProfile(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver() // supports nothing
	dec := NewDecoder(drv)

	err := dec.NewSequence(testSPS(), 4)
	require.ErrorAs(t, err, &utils.UnsupportedProfileError{})
	require.Zero(t, drv.opens)
}

func TestStartPictureSubmitsParamBuffers(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	pic := NewPicture(42)
	h := &SliceHeader{PPS: testPPS()}

	require.NoError(t, dec.StartPicture(pic, h, NewDPB()))
	require.Len(t, drv.params, 2)

	require.Equal(t, va.SurfaceID(42), drv.params[0].surface)
	require.Equal(t, va.PictureParameterBufferType, drv.params[0].typ)
	require.IsType(t, &va.PictureParameterBufferH264{}, drv.params[0].param)

	require.Equal(t, va.IQMatrixBufferType, drv.params[1].typ)
	require.IsType(t, &va.IQMatrixBufferH264{}, drv.params[1].param)
}

func TestDecodeSliceSubmitsSliceBuffer(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	dec := NewDecoder(drv)

	pic := NewPicture(42)
	slice := &Slice{
		Header: SliceHeader{PPS: testPPS(), Type: SliceI},
		NALU:   NALUnit{HeaderBytes: 1, Data: []byte{0x65, 0x88, 0x84}},
	}

	require.NoError(t, dec.DecodeSlice(pic, slice, nil, nil, NewDPB()))
	require.Len(t, drv.slices, 1)
	require.Equal(t, va.SurfaceID(42), drv.slices[0].surface)
	require.Equal(t, slice.NALU.Data, drv.slices[0].data)

	require.NoError(t, dec.EndPicture(pic))
	require.Equal(t, []va.SurfaceID{42}, drv.decoded)
}

func TestSubmissionErrorsWrapDriverError(t *testing.T) {
	t.Parallel()

	drv := newFakeDriver(va.ProfileH264High)
	drv.submitErr = errors.New("out of memory")
	dec := NewDecoder(drv)

	pic := NewPicture(1)
	h := &SliceHeader{PPS: testPPS()}

	err := dec.StartPicture(pic, h, NewDPB())
	require.ErrorAs(t, err, &utils.SubmissionError{})
	require.ErrorContains(t, err, "out of memory")

	err = dec.EndPicture(pic)
	require.ErrorAs(t, err, &utils.SubmissionError{})
}
