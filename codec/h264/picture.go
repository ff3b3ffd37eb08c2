package h264

import (
	"sync/atomic"

	"github.com/hwpipe/vabridge/va"
)

// PictureID identifies a decode picture for the lifetime of the stream.
// The zero value is never assigned.
type PictureID uint64

// InvalidPictureID marks an absent picture reference.
const InvalidPictureID PictureID = 0

var nextPictureID atomic.Uint64

// FieldKind tells whether a picture codes a full frame or one field of
// an interlaced pair.
type FieldKind uint8

// Field kinds of a decoded picture.
const (
	FieldFrame FieldKind = iota
	FieldTop
	FieldBottom
)

// RefKind is the reference marking of a picture in the DPB.
type RefKind uint8

// Reference markings of a decoded picture.
const (
	RefNone RefKind = iota
	RefShortTerm
	RefLongTerm
)

// Picture is one decoded picture: the decoder-side state the reference
// machinery reads when translating to driver records. A picture holds
// its complementary field by id, never by pointer, so a field whose
// pair was already evicted simply resolves to nothing.
type Picture struct {
	id PictureID

	// Surface is the hardware surface the picture decodes into.
	// va.InvalidSurfaceID when none is attached.
	Surface va.SurfaceID

	FrameNum         uint16
	LongTermFrameIdx uint16
	NalRefIDC        uint8

	Field     FieldKind
	Reference RefKind

	TopFieldOrderCnt    int32
	BottomFieldOrderCnt int32
	PicOrderCnt         int32

	OtherFieldID PictureID
	SecondField  bool

	// NonExisting marks pictures synthesized for frame_num gaps.
	NonExisting bool
}

// NewPicture allocates a picture backed by the given surface.
func NewPicture(surface va.SurfaceID) *Picture {
	return &Picture{
		id:      PictureID(nextPictureID.Add(1)),
		Surface: surface,
	}
}

// ID returns the stream-unique identity of the picture.
func (p *Picture) ID() PictureID {
	return p.id
}

// IsFrame reports whether the picture codes a full frame.
func (p *Picture) IsFrame() bool {
	return p.Field == FieldFrame
}

// IsShortTermRef reports whether the picture is marked used for
// short-term reference.
func (p *Picture) IsShortTermRef() bool {
	return p.Reference == RefShortTerm
}

// IsLongTermRef reports whether the picture is marked used for
// long-term reference.
func (p *Picture) IsLongTermRef() bool {
	return p.Reference == RefLongTerm
}

func (p *Picture) otherField(store RefStore) *Picture {
	if p.OtherFieldID == InvalidPictureID || store == nil {
		return nil
	}
	return store.Lookup(p.OtherFieldID)
}

// RefStore resolves picture identities and enumerates reference
// pictures. *DPB is the one real implementation; tests substitute
// their own.
type RefStore interface {
	Lookup(id PictureID) *Picture
	ShortTermRefs() []*Picture
	LongTermRefs() []*Picture
}

// PictureRecord translates a picture into the driver's record form.
//
// A nil picture or one with no attached surface yields the invalid
// sentinel. Long-term references expose their long-term frame index,
// everything else the frame number. For a single field,
// mergeOtherField folds the complementary field's order count into the
// record instead of flagging the missing parity; frame pictures carry
// both counts regardless.
func PictureRecord(pic *Picture, mergeOtherField bool, store RefStore) va.PictureH264 {
	if pic == nil || pic.Surface == va.InvalidSurfaceID {
		return va.InvalidPictureH264()
	}

	rec := va.PictureH264{PictureID: pic.Surface}

	if pic.IsLongTermRef() {
		rec.Flags |= va.PictureLongTermReference
		rec.FrameIdx = uint32(pic.LongTermFrameIdx)
	} else {
		if pic.IsShortTermRef() {
			rec.Flags |= va.PictureShortTermReference
		}
		rec.FrameIdx = uint32(pic.FrameNum)
	}

	switch pic.Field {
	case FieldFrame:
		rec.TopFieldOrderCnt = pic.TopFieldOrderCnt
		rec.BottomFieldOrderCnt = pic.BottomFieldOrderCnt
	case FieldTop:
		if other := pic.otherField(store); mergeOtherField && other != nil {
			rec.BottomFieldOrderCnt = other.BottomFieldOrderCnt
		} else {
			rec.Flags |= va.PictureTopField
			rec.BottomFieldOrderCnt = 0
		}
		rec.TopFieldOrderCnt = pic.TopFieldOrderCnt
	case FieldBottom:
		if other := pic.otherField(store); mergeOtherField && other != nil {
			rec.TopFieldOrderCnt = other.TopFieldOrderCnt
		} else {
			rec.Flags |= va.PictureBottomField
			rec.TopFieldOrderCnt = 0
		}
		rec.BottomFieldOrderCnt = pic.BottomFieldOrderCnt
	}

	return rec
}
