package h264

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwpipe/vabridge/va"
)

func TestPictureRecordSentinel(t *testing.T) {
	t.Parallel()

	store := NewDPB()

	require.Equal(t, va.InvalidPictureH264(), PictureRecord(nil, false, store))

	noSurface := NewPicture(va.InvalidSurfaceID)
	require.Equal(t, va.InvalidPictureH264(), PictureRecord(noSurface, true, store))
}

func TestPictureRecordFrame(t *testing.T) {
	t.Parallel()

	pic := NewPicture(7)
	pic.FrameNum = 12
	pic.Reference = RefShortTerm
	pic.TopFieldOrderCnt = 20
	pic.BottomFieldOrderCnt = 21

	rec := PictureRecord(pic, false, NewDPB())

	require.Equal(t, va.SurfaceID(7), rec.PictureID)
	require.Equal(t, uint32(12), rec.FrameIdx)
	require.Equal(t, uint32(va.PictureShortTermReference), rec.Flags)
	require.Equal(t, int32(20), rec.TopFieldOrderCnt)
	require.Equal(t, int32(21), rec.BottomFieldOrderCnt)
}

func TestPictureRecordNonReferenceFrame(t *testing.T) {
	t.Parallel()

	pic := NewPicture(3)
	pic.FrameNum = 5

	rec := PictureRecord(pic, false, NewDPB())

	require.Zero(t, rec.Flags)
	require.Equal(t, uint32(5), rec.FrameIdx)
}

func TestPictureRecordLongTerm(t *testing.T) {
	t.Parallel()

	pic := NewPicture(9)
	pic.FrameNum = 30
	pic.LongTermFrameIdx = 2
	pic.Reference = RefLongTerm

	rec := PictureRecord(pic, false, NewDPB())

	require.Equal(t, uint32(va.PictureLongTermReference), rec.Flags)
	require.Equal(t, uint32(2), rec.FrameIdx, "long-term index replaces the frame number")
}

func TestPictureRecordFieldMerge(t *testing.T) {
	t.Parallel()

	dpb := NewDPB()

	top := NewPicture(1)
	top.Field = FieldTop
	top.Reference = RefShortTerm
	top.TopFieldOrderCnt = 10

	bottom := NewPicture(1)
	bottom.Field = FieldBottom
	bottom.Reference = RefShortTerm
	bottom.BottomFieldOrderCnt = 11

	dpb.Add(top)
	dpb.Add(bottom)
	dpb.PairFields(top, bottom)

	merged := PictureRecord(top, true, dpb)
	require.Equal(t, uint32(va.PictureShortTermReference), merged.Flags)
	require.Equal(t, int32(10), merged.TopFieldOrderCnt)
	require.Equal(t, int32(11), merged.BottomFieldOrderCnt, "merged record carries the pair's count")

	single := PictureRecord(top, false, dpb)
	require.NotZero(t, single.Flags&va.PictureTopField)
	require.Equal(t, int32(10), single.TopFieldOrderCnt)
	require.Zero(t, single.BottomFieldOrderCnt)
}

func TestPictureRecordBottomFieldMerge(t *testing.T) {
	t.Parallel()

	dpb := NewDPB()

	top := NewPicture(2)
	top.Field = FieldTop
	top.TopFieldOrderCnt = 40

	bottom := NewPicture(2)
	bottom.Field = FieldBottom
	bottom.BottomFieldOrderCnt = 41

	dpb.Add(top)
	dpb.Add(bottom)
	dpb.PairFields(top, bottom)

	merged := PictureRecord(bottom, true, dpb)
	require.Equal(t, int32(40), merged.TopFieldOrderCnt)
	require.Equal(t, int32(41), merged.BottomFieldOrderCnt)
	require.Zero(t, merged.Flags&va.PictureBottomField)
}

func TestPictureRecordEvictedOtherField(t *testing.T) {
	t.Parallel()

	dpb := NewDPB()

	top := NewPicture(4)
	top.Field = FieldTop
	top.TopFieldOrderCnt = 8

	bottom := NewPicture(4)
	bottom.Field = FieldBottom

	dpb.Add(top)
	dpb.Add(bottom)
	dpb.PairFields(top, bottom)
	dpb.Remove(bottom.ID())

	// The pair is gone from the store, so merging degrades to the
	// single-field form instead of reading stale state.
	rec := PictureRecord(top, true, dpb)
	require.NotZero(t, rec.Flags&va.PictureTopField)
	require.Zero(t, rec.BottomFieldOrderCnt)
}
