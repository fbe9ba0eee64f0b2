package carousel

import "math"

// Momentum decays a release velocity into per-tick offset deltas.
type Momentum struct {
	Velocity float64 // offset units per tick
	Friction float64 // fraction of velocity kept each tick, in (0, 1)
	MinSpeed float64 // below this speed the motion stops
}

// Release starts coasting at v units per tick.
func (m *Momentum) Release(v float64) {
	m.Velocity = v
	if math.Abs(v) < m.MinSpeed {
		m.Velocity = 0
	}
}

func (m *Momentum) Active() bool { return m.Velocity != 0 }

func (m *Momentum) Stop() { m.Velocity = 0 }

// Step returns the delta for this tick and decays the velocity.
func (m *Momentum) Step() float64 {
	d := m.Velocity
	m.Velocity *= m.Friction
	if math.Abs(m.Velocity) < m.MinSpeed {
		m.Velocity = 0
	}
	return d
}

// Snap eases the offset towards a target a fraction at a time.
//
// It tracks the distance still to travel rather than an absolute offset, so a
// wraparound in the middle of the animation does not throw it off.
type Snap struct {
	Remaining float64
	Rate      float64 // fraction of the remaining distance covered per tick
}

// snapEpsilon is the distance at which a snap finishes in one final step.
const snapEpsilon = 0.5

func (s *Snap) Start(delta float64) { s.Remaining = delta }

func (s *Snap) Active() bool { return s.Remaining != 0 }

func (s *Snap) Stop() { s.Remaining = 0 }

// Step returns the delta for this tick.
func (s *Snap) Step() float64 {
	if math.Abs(s.Remaining) <= snapEpsilon || s.Rate <= 0 || s.Rate >= 1 {
		d := s.Remaining
		s.Remaining = 0
		return d
	}
	d := s.Remaining * s.Rate
	s.Remaining -= d
	return d
}
