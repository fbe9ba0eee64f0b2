package game

// dragTrail records the last N per-tick drag deltas into a ring buffer so a
// release can be turned into a coasting velocity.
type dragTrail struct {
	buffer    []float64
	nextIndex int
	filled    int
}

func newDragTrail(ringSize int) *dragTrail {
	return &dragTrail{
		buffer: make([]float64, ringSize),
	}
}

func (t *dragTrail) record(delta float64) {
	t.buffer[t.nextIndex] = delta
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
}

func (t *dragTrail) reset() {
	t.nextIndex = 0
	t.filled = 0
}

// snapshot returns up to the last n deltas (most recent last).
func (t *dragTrail) snapshot(n int) []float64 {
	if n > t.filled {
		n = t.filled
	}
	out := make([]float64, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// velocity is the mean of the last n deltas.
func (t *dragTrail) velocity(n int) float64 {
	recent := t.snapshot(n)
	if len(recent) == 0 {
		return 0
	}
	var sum float64
	for _, d := range recent {
		sum += d
	}
	return sum / float64(len(recent))
}
