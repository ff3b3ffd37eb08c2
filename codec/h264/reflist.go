package h264

import (
	"github.com/hwpipe/vabridge/va"
)

// FillSliceRefList translates one modified reference list into the
// 32-slot form of a slice parameter buffer. Entries merge their
// complementary field only when the current picture codes a frame;
// holes and the tail pad out with the invalid sentinel.
func FillSliceRefList(dst *[32]va.PictureH264, list []*Picture, cur *Picture, store RefStore) {
	n := len(list)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		if pic := list[i]; pic != nil {
			dst[i] = PictureRecord(pic, cur.IsFrame(), store)
		} else {
			dst[i] = va.InvalidPictureH264()
		}
	}
	for i := n; i < len(dst); i++ {
		dst[i] = va.InvalidPictureH264()
	}
}

// FillReferenceFrames snapshots the store into the 16-slot picture
// parameter form: short-term references first, then long-term, both in
// decode order, truncated at capacity and padded with the invalid
// sentinel. Field pairs always merge here.
func FillReferenceFrames(dst *[16]va.PictureH264, store RefStore) {
	i := 0
	for _, pic := range store.ShortTermRefs() {
		if i >= len(dst) {
			break
		}
		dst[i] = PictureRecord(pic, true, store)
		i++
	}
	for _, pic := range store.LongTermRefs() {
		if i >= len(dst) {
			break
		}
		dst[i] = PictureRecord(pic, true, store)
		i++
	}
	for ; i < len(dst); i++ {
		dst[i] = va.InvalidPictureH264()
	}
}
