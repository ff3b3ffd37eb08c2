package vpp

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/hwpipe/vabridge"
	"github.com/hwpipe/vabridge/utils"
	"github.com/hwpipe/vabridge/utils/logger"
	"github.com/hwpipe/vabridge/va"
)

// Conversions that disable passthrough.
const (
	convertSize = 1 << iota
	convertFormat
	convertFilters
	convertDirection
	convertFeature
	convertCrop
	convertDummy
)

// FrameInfo is the negotiated description of one side of the
// post-processor.
type FrameInfo struct {
	Format vabridge.PixelFormat
	Width  int
	Height int

	// VAMemory is set when the frames live in driver surfaces rather
	// than system memory.
	VAMemory bool
}

// Sample is one input frame handed to the post-processor.
type Sample struct {
	Surface va.SurfaceID

	// HasCrop is set when the frame carries a crop rectangle to honor.
	HasCrop bool
}

// PostProc drives a VA post-processing filter. The property set may be
// mutated from any goroutine concurrently with the processing thread:
// a single mutex guards the properties and the operation flags, and a
// separate atomic flag tells the hot path whether the driver's filter
// buffers must be rebuilt before the next frame.
type PostProc struct {
	flt va.Filter

	mu sync.Mutex // guards every field below

	denoise    float32
	sharpen    float32
	skintone   float32
	brightness float32
	contrast   float32
	hue        float32
	saturation float32

	autoContrast   bool
	autoBrightness bool
	autoSaturation bool

	direction     vabridge.Orientation
	prevDirection vabridge.Orientation
	tagDirection  vabridge.Orientation

	opFlags     uint32
	passthrough bool
	negotiated  bool

	rebuildFilters atomic.Bool
}

// NewPostProc wraps a post-processing filter. Every property starts at
// the driver's own default, so a freshly created instance is
// passthrough.
func NewPostProc(flt va.Filter) *PostProc {
	p := &PostProc{flt: flt, passthrough: true}

	if fcap, ok := flt.FilterCap(va.ProcFilterNoiseReduction); ok {
		p.denoise = fcap.Range.Default
	}
	if fcap, ok := flt.FilterCap(va.ProcFilterSharpening); ok {
		p.sharpen = fcap.Range.Default
	}
	if fcap, ok := flt.FilterCap(va.ProcFilterSkinToneEnhancement); ok {
		p.skintone = fcap.Range.Default
	}
	for _, cb := range flt.ColorBalanceCaps() {
		switch cb.Attrib {
		case va.ColorBalanceHue:
			p.hue = cb.Range.Default
		case va.ColorBalanceSaturation:
			p.saturation = cb.Range.Default
		case va.ColorBalanceBrightness:
			p.brightness = cb.Range.Default
		case va.ColorBalanceContrast:
			p.contrast = cb.Range.Default
		case va.ColorBalanceAutoSaturation:
			p.autoSaturation = cb.Range.Default != 0
		case va.ColorBalanceAutoBrightness:
			p.autoBrightness = cb.Range.Default != 0
		case va.ColorBalanceAutoContrast:
			p.autoContrast = cb.Range.Default != 0
		}
	}

	return p
}

func (p *PostProc) String() string {
	return "postproc"
}

func (p *PostProc) setFloat(dst *float32, v float32) {
	p.mu.Lock()
	*dst = v
	p.rebuildFilters.Store(true)
	p.updateDirectionLocked()
	p.mu.Unlock()

	p.updatePassthrough()
}

func (p *PostProc) setBool(dst *bool, v bool) {
	p.mu.Lock()
	*dst = v
	p.rebuildFilters.Store(true)
	p.updateDirectionLocked()
	p.mu.Unlock()

	p.updatePassthrough()
}

// SetDenoise sets the noise reduction gain.
func (p *PostProc) SetDenoise(v float32) { p.setFloat(&p.denoise, v) }

// SetSharpen sets the sharpening gain.
func (p *PostProc) SetSharpen(v float32) { p.setFloat(&p.sharpen, v) }

// SetSkinTone sets the skin tone enhancement gain.
func (p *PostProc) SetSkinTone(v float32) { p.setFloat(&p.skintone, v) }

// SetBrightness sets the color balance brightness.
func (p *PostProc) SetBrightness(v float32) { p.setFloat(&p.brightness, v) }

// SetContrast sets the color balance contrast.
func (p *PostProc) SetContrast(v float32) { p.setFloat(&p.contrast, v) }

// SetHue sets the color balance hue.
func (p *PostProc) SetHue(v float32) { p.setFloat(&p.hue, v) }

// SetSaturation sets the color balance saturation.
func (p *PostProc) SetSaturation(v float32) { p.setFloat(&p.saturation, v) }

// SetAutoSaturation toggles automatic saturation.
func (p *PostProc) SetAutoSaturation(v bool) { p.setBool(&p.autoSaturation, v) }

// SetAutoBrightness toggles automatic brightness.
func (p *PostProc) SetAutoBrightness(v bool) { p.setBool(&p.autoBrightness, v) }

// SetAutoContrast toggles automatic contrast.
func (p *PostProc) SetAutoContrast(v bool) { p.setBool(&p.autoContrast, v) }

// SetDirection requests an orientation transform. OrientAuto follows
// the stream's orientation tag instead.
func (p *PostProc) SetDirection(dir vabridge.Orientation) {
	p.mu.Lock()
	if dir == vabridge.OrientAuto {
		p.prevDirection = p.tagDirection
	} else {
		p.prevDirection = p.direction
	}
	p.direction = dir
	p.updateDirectionLocked()
	p.mu.Unlock()

	p.updatePassthrough()
}

// SetTagDirection feeds the stream's orientation tag, honored while
// the requested direction is OrientAuto.
func (p *PostProc) SetTagDirection(dir vabridge.Orientation) {
	p.mu.Lock()
	p.tagDirection = dir
	p.updateDirectionLocked()
	p.mu.Unlock()

	p.updatePassthrough()
}

// SetDisablePassthrough forces processing even when every other
// conversion is a no-op.
func (p *PostProc) SetDisablePassthrough(disable bool) {
	p.mu.Lock()
	if disable {
		p.opFlags |= convertDummy
	} else {
		p.opFlags &^= convertDummy
	}
	p.updateDirectionLocked()
	p.mu.Unlock()

	p.updatePassthrough()
}

// Denoise returns the noise reduction gain.
func (p *PostProc) Denoise() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.denoise }

// Sharpen returns the sharpening gain.
func (p *PostProc) Sharpen() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.sharpen }

// SkinTone returns the skin tone enhancement gain.
func (p *PostProc) SkinTone() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.skintone }

// Brightness returns the color balance brightness.
func (p *PostProc) Brightness() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.brightness }

// Contrast returns the color balance contrast.
func (p *PostProc) Contrast() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.contrast }

// Hue returns the color balance hue.
func (p *PostProc) Hue() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.hue }

// Saturation returns the color balance saturation.
func (p *PostProc) Saturation() float32 { p.mu.Lock(); defer p.mu.Unlock(); return p.saturation }

// Direction returns the requested orientation transform.
func (p *PostProc) Direction() vabridge.Orientation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.direction
}

// Passthrough reports whether the post-processor currently has nothing
// to do.
func (p *PostProc) Passthrough() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passthrough
}

// SetInfo records the negotiated input and output descriptions and
// derives the format, size and memory-feature conversion flags.
func (p *PostProc) SetInfo(in, out FrameInfo) {
	p.mu.Lock()
	if in != out {
		if in.Format != out.Format {
			p.opFlags |= convertFormat
		} else {
			p.opFlags &^= convertFormat
		}
		if in.Width != out.Width || in.Height != out.Height {
			p.opFlags |= convertSize
		} else {
			p.opFlags &^= convertSize
		}
	} else {
		p.opFlags &^= convertFormat | convertSize
	}

	if in.VAMemory != out.VAMemory {
		p.opFlags |= convertFeature
	} else {
		p.opFlags &^= convertFeature
	}

	p.negotiated = true
	p.mu.Unlock()

	p.updatePassthrough()
}

// updateDirectionLocked applies a pending orientation change to the
// driver, reverting the property when the driver rejects it. Callers
// hold the mutex.
func (p *PostProc) updateDirectionLocked() {
	if p.flt == nil {
		return
	}

	changed := (p.direction != vabridge.OrientAuto && p.direction != p.prevDirection) ||
		(p.direction == vabridge.OrientAuto && p.tagDirection != p.prevDirection)
	if !changed {
		p.opFlags &^= convertDirection
		return
	}

	direction := p.direction
	if direction == vabridge.OrientAuto {
		direction = p.tagDirection
	}

	if err := p.flt.SetOrientation(direction); err != nil {
		if p.direction == vabridge.OrientAuto {
			p.tagDirection = p.prevDirection
		} else {
			p.direction = p.prevDirection
		}
		p.opFlags &^= convertDirection
		logger.Warningf(p, "driver cannot set requested orientation, setting it back: %v", err)
		return
	}

	p.prevDirection = direction
	p.opFlags |= convertDirection
}

// updatePassthrough recomputes the passthrough decision from the
// operation flags and logs transitions.
func (p *PostProc) updatePassthrough() {
	p.mu.Lock()
	old := p.passthrough
	p.passthrough = p.opFlags == 0
	changed := old != p.passthrough
	enabled := p.passthrough
	p.mu.Unlock()

	if changed {
		if enabled {
			logger.Info(p, "enabling passthrough")
		} else {
			logger.Info(p, "disabling passthrough")
		}
	}
}

func (p *PostProc) filterValue(t va.FilterType) (float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch t {
	case va.ProcFilterNoiseReduction:
		return p.denoise, true
	case va.ProcFilterSharpening:
		return p.sharpen, true
	case va.ProcFilterSkinToneEnhancement:
		return p.skintone, true
	}
	return 0, false
}

func (p *PostProc) colorBalanceValue(t va.ColorBalanceType) (float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch t {
	case va.ColorBalanceHue:
		return p.hue, true
	case va.ColorBalanceSaturation:
		return p.saturation, true
	case va.ColorBalanceBrightness:
		return p.brightness, true
	case va.ColorBalanceContrast:
		return p.contrast, true
	case va.ColorBalanceAutoSaturation:
		return b2f(p.autoSaturation), true
	case va.ColorBalanceAutoBrightness:
		return b2f(p.autoBrightness), true
	case va.ColorBalanceAutoContrast:
		return b2f(p.autoContrast), true
	}
	return 0, false
}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// addFilterBuffer queues one scalar filter when its value deviates
// from the driver default.
func (p *PostProc) addFilterBuffer(t va.FilterType, fcap va.FilterCap) bool {
	value, ok := p.filterValue(t)
	if !ok {
		return false
	}
	if value == fcap.Range.Default {
		return false
	}

	err := p.flt.AddFilterBuffer(va.ProcFilterParameterBuffer{Type: t, Value: value})
	if err != nil {
		logger.Warningf(p, "failed to queue filter %d: %v", t, err)
		return false
	}
	return true
}

// addColorBalanceBuffer queues the color balance controls deviating
// from their driver defaults.
func (p *PostProc) addColorBalanceBuffer(caps []va.ColorBalanceCap) bool {
	applied := false
	for _, cb := range caps {
		value, ok := p.colorBalanceValue(cb.Attrib)
		if !ok {
			continue
		}
		if value == cb.Range.Default {
			continue
		}

		err := p.flt.AddFilterBuffer(va.ProcFilterParameterBufferColorBalance{
			Type:   va.ProcFilterColorBalance,
			Attrib: cb.Attrib,
			Value:  value,
		})
		if err != nil {
			logger.Warningf(p, "failed to queue color balance %d: %v", cb.Attrib, err)
			continue
		}
		applied = true
	}
	return applied
}

func (p *PostProc) buildFilters() {
	apply := false

	scalar := []va.FilterType{
		va.ProcFilterNoiseReduction,
		va.ProcFilterSharpening,
		va.ProcFilterSkinToneEnhancement,
	}
	for _, t := range scalar {
		fcap, ok := p.flt.FilterCap(t)
		if !ok {
			continue
		}
		apply = p.addFilterBuffer(t, fcap) || apply
	}

	if caps := p.flt.ColorBalanceCaps(); len(caps) > 0 {
		apply = p.addColorBalanceBuffer(caps) || apply
	}

	p.mu.Lock()
	if apply {
		p.opFlags |= convertFilters
	} else {
		p.opFlags &^= convertFilters
	}
	p.mu.Unlock()
}

// RebuildFilters re-queues the driver filter buffers when any gain
// property changed since the last build. The atomic check keeps the
// per-frame cost of an unchanged property set to a single load.
func (p *PostProc) RebuildFilters() {
	if !p.rebuildFilters.Load() {
		return
	}

	p.flt.DropFilterBuffers()
	p.buildFilters()
	p.rebuildFilters.Store(false)

	p.updatePassthrough()
}

// Process runs the queued filters from the input sample to the output
// surface. Pending filter rebuilds are applied first; the crop flag
// tracks whether the input carries a crop rectangle while not in
// passthrough.
func (p *PostProc) Process(src Sample, dst va.SurfaceID) error {
	p.RebuildFilters()
	p.updatePassthrough()

	p.mu.Lock()
	if !p.passthrough && src.HasCrop {
		p.opFlags |= convertCrop
	} else {
		p.opFlags &^= convertCrop
	}
	negotiated := p.negotiated
	p.mu.Unlock()

	if !negotiated {
		return errors.WithStack(utils.NotNegotiatedError{})
	}

	return p.flt.Process(src.Surface, dst)
}
