package h264

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDPBMaxSizeClamped(t *testing.T) {
	t.Parallel()

	dpb := NewDPB()
	require.Equal(t, 16, dpb.MaxSize())

	dpb.SetMaxSize(32)
	require.Equal(t, 16, dpb.MaxSize())

	dpb.SetMaxSize(4)
	require.Equal(t, 4, dpb.MaxSize())
}

func TestDPBLookupAndRemove(t *testing.T) {
	t.Parallel()

	dpb := NewDPB()
	pic := NewPicture(1)
	dpb.Add(pic)

	require.Same(t, pic, dpb.Lookup(pic.ID()))
	require.Equal(t, 1, dpb.Size())

	dpb.Remove(pic.ID())
	require.Nil(t, dpb.Lookup(pic.ID()))
	require.Zero(t, dpb.Size())

	dpb.Remove(pic.ID()) // absent id is a no-op
}

func TestDPBReferenceEnumeration(t *testing.T) {
	t.Parallel()

	dpb := NewDPB()

	short1 := NewPicture(1)
	short1.Reference = RefShortTerm

	long1 := NewPicture(2)
	long1.Reference = RefLongTerm

	short2 := NewPicture(3)
	short2.Reference = RefShortTerm

	gap := NewPicture(4)
	gap.Reference = RefShortTerm
	gap.NonExisting = true

	topField := NewPicture(5)
	topField.Field = FieldTop
	topField.Reference = RefShortTerm

	bottomField := NewPicture(5)
	bottomField.Field = FieldBottom
	bottomField.Reference = RefShortTerm

	for _, pic := range []*Picture{short1, long1, short2, gap, topField, bottomField} {
		dpb.Add(pic)
	}
	dpb.PairFields(topField, bottomField)

	// Decode order, second fields and gap placeholders excluded.
	require.Equal(t, []*Picture{short1, short2, topField}, dpb.ShortTermRefs())
	require.Equal(t, []*Picture{long1}, dpb.LongTermRefs())

	dpb.MarkAllUnusedForReference()
	require.Empty(t, dpb.ShortTermRefs())
	require.Empty(t, dpb.LongTermRefs())
	require.Len(t, dpb.Unused(), 6)

	dpb.Clear()
	require.Zero(t, dpb.Size())
	require.Nil(t, dpb.Lookup(short1.ID()))
}
