package h264

// maxDPBSlots is the hard limit on decoded picture buffer slots (A.3.1).
const maxDPBSlots = 16

// DPB is the decoded picture buffer: pictures in decode order, indexed
// by identity. It is the reference store the parameter builders
// snapshot from.
type DPB struct {
	pictures []*Picture
	byID     map[PictureID]*Picture
	maxSize  int
}

// NewDPB returns an empty decoded picture buffer with the maximum
// allowed size.
func NewDPB() *DPB {
	return &DPB{
		byID:    make(map[PictureID]*Picture),
		maxSize: maxDPBSlots,
	}
}

// SetMaxSize bounds the buffer to n slots, clamped to the codec limit.
func (d *DPB) SetMaxSize(n int) {
	if n > maxDPBSlots {
		n = maxDPBSlots
	}
	d.maxSize = n
}

// MaxSize returns the current slot bound.
func (d *DPB) MaxSize() int {
	return d.maxSize
}

// Size returns the number of stored pictures.
func (d *DPB) Size() int {
	return len(d.pictures)
}

// Add stores a picture in decode order.
func (d *DPB) Add(pic *Picture) {
	d.pictures = append(d.pictures, pic)
	d.byID[pic.ID()] = pic
}

// Remove drops the picture with the given identity, if present.
func (d *DPB) Remove(id PictureID) {
	if _, ok := d.byID[id]; !ok {
		return
	}
	delete(d.byID, id)
	for i, pic := range d.pictures {
		if pic.ID() == id {
			d.pictures = append(d.pictures[:i], d.pictures[i+1:]...)
			break
		}
	}
}

// Clear empties the buffer.
func (d *DPB) Clear() {
	d.pictures = d.pictures[:0]
	for id := range d.byID {
		delete(d.byID, id)
	}
}

// Lookup resolves a picture identity; nil when absent or evicted.
func (d *DPB) Lookup(id PictureID) *Picture {
	return d.byID[id]
}

// PairFields links the two fields of a complementary pair and marks
// the later one as the second field.
func (d *DPB) PairFields(first, second *Picture) {
	first.OtherFieldID = second.ID()
	second.OtherFieldID = first.ID()
	second.SecondField = true
}

// ShortTermRefs returns the short-term reference pictures in decode
// order, skipping second fields and gap placeholders.
func (d *DPB) ShortTermRefs() []*Picture {
	var refs []*Picture
	for _, pic := range d.pictures {
		if pic.IsShortTermRef() && !pic.SecondField && !pic.NonExisting {
			refs = append(refs, pic)
		}
	}
	return refs
}

// LongTermRefs returns the long-term reference pictures in decode
// order, skipping second fields.
func (d *DPB) LongTermRefs() []*Picture {
	var refs []*Picture
	for _, pic := range d.pictures {
		if pic.IsLongTermRef() && !pic.SecondField {
			refs = append(refs, pic)
		}
	}
	return refs
}

// MarkAllUnusedForReference clears the reference marking of every
// stored picture.
func (d *DPB) MarkAllUnusedForReference() {
	for _, pic := range d.pictures {
		pic.Reference = RefNone
	}
}

// Unused returns the pictures no longer marked for reference, decode
// order preserved. Callers evict these once their surfaces are
// displayed.
func (d *DPB) Unused() []*Picture {
	var out []*Picture
	for _, pic := range d.pictures {
		if pic.Reference == RefNone {
			out = append(out, pic)
		}
	}
	return out
}
