package carousel

import "math"

// Curve tunes the fanned look of the carousel.
type Curve struct {
	// AnglePerCard is the rotation in degrees for an item one viewport width
	// away from the centre.
	AnglePerCard float64
	// MaxProgress caps how many viewport widths of distance count towards
	// rotation, dip and fade.
	MaxProgress float64

	// CurveHeight lifts the item before it is rotated about its bottom edge;
	// DropRatio of that lift is given back afterwards.
	CurveHeight float64
	DropRatio   float64

	// RowScales is the scale of each row. Missing rows draw at 1.
	RowScales []float64

	// Dip lowers items as they leave the centre and Fade dims them; both reach
	// their full value one viewport width out.
	Dip  float64
	Fade float64
}

// Transform is what the host applies to a single item.
//
// To draw it: raise the item by Lift, rotate it by Rotation about the point
// it was raised from, scale, then move it down by Lift+VerticalOffset. With no
// rotation the item ends up VerticalOffset from its resting place.
type Transform struct {
	VerticalOffset float64
	Lift           float64
	Rotation       float64 // degrees
	Scale          float64
	Opacity        float64
}

// DefaultCurve is the three-row fanned arrangement.
func DefaultCurve() Curve {
	return Curve{
		AnglePerCard: 50,
		MaxProgress:  3,
		CurveHeight:  50,
		DropRatio:    0.8,
		RowScales:    []float64{1, 0.8, 0.6},
	}
}

// FlatCurve is the single-row arrangement: no rotation, items dip and fade
// away from the centre.
func FlatCurve() Curve {
	return Curve{
		MaxProgress: 3,
		RowScales:   []float64{1},
		Dip:         50,
		Fade:        0.5,
	}
}

// Transform computes the transform for an item whose centre sits offset
// units from the viewport centre (negative is left).
func (c Curve) Transform(offset, viewportWidth float64, row int) Transform {
	p := c.Progress(offset, viewportWidth)
	near := math.Min(math.Abs(p), 1)

	scale := 1.0
	if row >= 0 && row < len(c.RowScales) {
		scale = c.RowScales[row]
	}

	return Transform{
		VerticalOffset: -c.CurveHeight + c.CurveHeight*c.DropRatio + c.Dip*near,
		Lift:           c.CurveHeight,
		Rotation:       p * c.AnglePerCard,
		Scale:          scale,
		Opacity:        1 - c.Fade*near,
	}
}

// Progress is offset in viewport widths, clamped to ±MaxProgress.
func (c Curve) Progress(offset, viewportWidth float64) float64 {
	if viewportWidth <= 0 || math.IsNaN(offset) {
		return 0
	}
	p := offset / viewportWidth
	limit := math.Abs(c.MaxProgress)
	if p < 0 {
		return math.Min(math.Max(p, -limit), 0)
	}
	return math.Max(math.Min(p, limit), 0)
}
