package carousel

import "math"

// Surface is the host scroll container. SetOffset must move the content
// immediately, without animation.
type Surface interface {
	SetOffset(x float64)
}

// Controller owns the live scroll offset and keeps it inside one cycle of the
// render sequence.
//
// Every offset change (drag, momentum, programmatic scroll) must go through
// OnScroll or ScrollBy. Sync must be called after the render sequence has been
// rebuilt and before the next correction.
type Controller struct {
	surface Surface

	offset float64
	count  int
	layout Layout

	correcting bool
}

// NewController returns a detached controller for n items laid out as l.
func NewController(n int, l Layout) *Controller {
	return &Controller{count: n, layout: l}
}

// Attach starts wraparound correction against s. Until then OnScroll passes
// offsets through.
func (c *Controller) Attach(s Surface) {
	c.surface = s
}

// Attached reports whether a surface has been attached.
func (c *Controller) Attached() bool {
	return c.surface != nil
}

// Sync adopts a new item count and layout. The offset is left alone so the
// visible position survives a resize.
func (c *Controller) Sync(n int, l Layout) {
	c.count = n
	c.layout = l
}

func (c *Controller) Offset() float64 { return c.offset }
func (c *Controller) Count() int { return c.count }
func (c *Controller) Layout() Layout { return c.layout }
func (c *Controller) CycleWidth() float64 { return c.layout.CycleWidth(c.count) }

// OnScroll records a raw offset reported by the surface and returns the
// corrected one. When the two differ the surface is told to jump to the
// corrected offset.
//
// Jumps longer than one cycle are folded in a single step.
func (c *Controller) OnScroll(raw float64) float64 {
	if c.correcting {
		// SetOffset echoed back into us.
		return c.offset
	}

	cycle := c.CycleWidth()
	if c.count <= 0 || cycle <= 0 || c.surface == nil {
		c.offset = raw
		return raw
	}

	corrected := Wrap(raw, cycle)
	c.offset = corrected
	if corrected != raw {
		c.correcting = true
		c.surface.SetOffset(corrected)
		c.correcting = false
	}
	return corrected
}

// ScrollBy moves the offset by delta and applies the correction.
func (c *Controller) ScrollBy(delta float64) float64 {
	return c.OnScroll(c.offset + delta)
}

// CenteredIndex returns the index of the source item whose centre is closest
// to the centre of the viewport, or -1 with no items.
func (c *Controller) CenteredIndex() int {
	stride := c.layout.Stride()
	if c.count <= 0 || stride <= 0 {
		return -1
	}
	return SourceIndex(c.nearestSlot(), c.count)
}

// SnapTarget returns the offset delta that centres the nearest item
// (direction 0), the next one (direction > 0) or the previous one
// (direction < 0).
func (c *Controller) SnapTarget(direction int) float64 {
	stride := c.layout.Stride()
	if c.count <= 0 || stride <= 0 {
		return 0
	}
	slot := c.nearestSlot()
	switch {
	case direction > 0:
		slot++
	case direction < 0:
		slot--
	}
	return c.slotOffset(slot) - c.offset
}

// nearestSlot is the render sequence position whose card centre is closest
// to the viewport centre.
func (c *Controller) nearestSlot() int {
	l := c.layout
	center := c.offset + l.ViewportWidth/2 - l.ItemWidth/2
	return int(math.Round(center / l.Stride()))
}

// slotOffset is the offset at which the card at slot is centred.
func (c *Controller) slotOffset(slot int) float64 {
	l := c.layout
	return float64(slot)*l.Stride() + l.ItemWidth/2 - l.ViewportWidth/2
}

// Wrap folds x into [0, cycle). A non-positive cycle returns x unchanged.
func Wrap(x, cycle float64) float64 {
	if cycle <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x >= 0 && x < cycle {
		return x
	}
	w := math.Mod(x, cycle)
	if w < 0 {
		w += cycle
	}
	if w >= cycle || w == 0 {
		// w+cycle rounded up for a tiny negative x, or math.Mod kept the
		// sign of a negative multiple and returned -0.
		return 0
	}
	return w
}
