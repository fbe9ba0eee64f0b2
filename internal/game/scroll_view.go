package game

// scrollView stands in for a platform scroll container: it holds the
// authoritative content offset and reports every change, programmatic or
// not, to its observer.
type scrollView struct {
	x        float64
	observer func(x float64) float64
}

// SetOffset jumps to x without animation.
func (v *scrollView) SetOffset(x float64) {
	v.x = x
	v.notify()
}

// scrollBy is a user or animation driven move.
func (v *scrollView) scrollBy(dx float64) {
	if dx == 0 {
		return
	}
	v.x += dx
	v.notify()
}

func (v *scrollView) notify() {
	if v.observer != nil {
		v.observer(v.x)
	}
}
