// Package carousel implements the scroll math behind an infinitely looping
// horizontal carousel: the padded render sequence, the wraparound correction
// of the scroll offset, and the per-card curve transform.
//
// Nothing here knows about a UI toolkit. A host feeds in items, sizes and raw
// offsets, and draws what comes back.
package carousel

import "math"

// Layout holds the horizontal geometry of a carousel row.
type Layout struct {
	ItemWidth     float64
	Spacing       float64
	ViewportWidth float64
}

// Stride is the distance between the left edges of two neighbouring cards.
func (l Layout) Stride() float64 {
	return l.ItemWidth + l.Spacing
}

// RepeatCount is the number of items appended after the originals so the
// viewport is always covered. A non-positive item width yields 1.
func (l Layout) RepeatCount() int {
	if l.ItemWidth <= 0 || l.ViewportWidth <= 0 {
		return 1
	}
	n := int(math.Ceil(l.ViewportWidth/l.ItemWidth)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// CycleWidth is the scroll distance covered by one pass over n items,
// including the spacing that follows each of them.
func (l Layout) CycleWidth(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * l.Stride()
}
