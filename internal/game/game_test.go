package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/iburimskiy/looping-carousel/internal/carousel"
	"github.com/iburimskiy/looping-carousel/internal/config"
)

// newTestGame builds a game without touching the speaker.
func newTestGame(n int) *Game {
	g := &Game{
		view:     &scrollView{},
		trail:    newDragTrail(dragTrailSize),
		momentum: carousel.Momentum{Friction: config.MomentumFriction, MinSpeed: config.MomentumMinSpeed},
		snap:     carousel.Snap{Rate: config.SnapRate},
		multiRow: true,
		centered: -1,
		env:      config.DefaultEnv(),
	}
	g.curve = g.curveFor(true)
	g.ctrl = carousel.NewController(0, carousel.Layout{})
	g.view.observer = g.ctrl.OnScroll
	g.setCards(sampleCards(n))
	return g
}

func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.settle || g.snap.Active() || g.momentum.Active(); i++ {
		if i > 10000 {
			t.Fatal("carousel never came to rest")
		}
		g.updateMotion()
	}
}

func TestLayoutAttachesOnFirstSize(t *testing.T) {
	g := newTestGame(5)
	if g.ctrl.Attached() {
		t.Fatal("controller attached before the first layout")
	}

	g.view.scrollBy(5000)
	g.Layout(0, 0)
	if g.ctrl.Attached() {
		t.Fatal("controller attached to a zero-width surface")
	}

	w, h := g.Layout(400, 300)
	if w != 400 || h != 300 {
		t.Errorf("Layout returned %dx%d", w, h)
	}
	if !g.ctrl.Attached() {
		t.Fatal("controller not attached after first layout")
	}
	cycle := g.ctrl.CycleWidth()
	if off := g.ctrl.Offset(); off < 0 || off >= cycle {
		t.Errorf("offset %v not folded into [0, %v)", off, cycle)
	}
	if g.view.x != g.ctrl.Offset() {
		t.Errorf("surface at %v, controller at %v", g.view.x, g.ctrl.Offset())
	}
}

func TestResizeRebuildsSequence(t *testing.T) {
	g := newTestGame(5)
	g.Layout(400, 300)
	// ceil(400/120)+1 = 5 repeats
	diff(t, 10, len(g.sequence))
	diff(t, 650.0, g.ctrl.CycleWidth())

	g.view.scrollBy(100)
	before := g.ctrl.Offset()

	g.Layout(1000, 300)
	// ceil(1000/120)+1 = 10 repeats
	diff(t, 15, len(g.sequence))
	diff(t, before, g.ctrl.Offset())
	diff(t, g.layout, g.ctrl.Layout())
	for k := 0; k < 10; k++ {
		if g.sequence[5+k] != g.cards[k%5] {
			t.Errorf("sequence[%d] is not card %d", 5+k, k%5)
		}
	}
}

func TestSetCardsResyncs(t *testing.T) {
	g := newTestGame(7)
	g.Layout(400, 300)
	g.view.scrollBy(850)

	g.setCards(sampleCards(2))
	diff(t, 2, g.ctrl.Count())
	diff(t, 260.0, g.ctrl.CycleWidth())
	settle(t, g)
	if off := g.ctrl.Offset(); off < 0 || off >= 260 {
		t.Errorf("offset %v outside the new cycle", off)
	}

	g.setCards(nil)
	diff(t, 0, len(g.sequence))
	g.view.scrollBy(-3000)
	diff(t, g.view.x, g.ctrl.Offset())
	settle(t, g)
}

func TestSetCardsFoldsOffsetImmediately(t *testing.T) {
	g := newTestGame(7)
	g.Layout(1024, 512)
	g.view.scrollBy(900)
	diff(t, 900.0, g.ctrl.Offset())

	g.setCards(sampleCards(2))
	diff(t, 120.0, g.ctrl.Offset())
	diff(t, 120.0, g.view.x)
}

func TestRowsCoverViewport(t *testing.T) {
	g := newTestGame(config.SampleCardCount)
	g.Layout(config.WindowWidth, config.WindowHeight)
	stride := g.layout.Stride()
	last := float64(len(g.sequence)-1)*stride + config.CardWidth

	for row := 0; row < config.RowCount; row++ {
		shift := rowShift(row)
		if shift > 0 {
			t.Errorf("row %d leaves a gap of %v at the left edge", row, shift)
		}
		// Worst case is the offset just below one cycle.
		if right := last - g.ctrl.CycleWidth() + shift; right < config.WindowWidth {
			t.Errorf("row %d ends at %v, before the right edge", row, right)
		}
	}
	diff(t, -float64(config.RowShift), rowShift(1))
}

func TestSettleCentresACard(t *testing.T) {
	g := newTestGame(5)
	g.Layout(400, 300)
	settle(t, g)

	g.view.scrollBy(47)
	g.settle = true
	settle(t, g)
	diff(t, 0.0, g.ctrl.SnapTarget(0), cmpopts.EquateApprox(0, 0.5))
}

func TestStepWrapsAround(t *testing.T) {
	g := newTestGame(5)
	g.Layout(400, 300)
	settle(t, g)

	start := g.ctrl.CenteredIndex()
	for i := 1; i <= 12; i++ {
		g.step(-1)
		settle(t, g)
		want := ((start-i)%5 + 5) % 5
		if got := g.ctrl.CenteredIndex(); got != want {
			t.Fatalf("after %d steps left centred card is %d, want %d", i, got, want)
		}
	}
}

func TestMomentumCoasts(t *testing.T) {
	g := newTestGame(5)
	g.Layout(400, 300)
	settle(t, g)

	g.momentum.Release(40)
	var moved float64
	prev := g.ctrl.Offset()
	for g.momentum.Active() {
		g.updateMotion()
		d := g.ctrl.Offset() - prev
		if d < 0 {
			d += g.ctrl.CycleWidth()
		}
		moved += d
		prev = g.ctrl.Offset()
	}
	if moved < 400 {
		t.Errorf("momentum only carried the carousel %v", moved)
	}
	if !g.settle {
		t.Error("carousel should settle once momentum stops")
	}
}

func TestDetentTracksCentre(t *testing.T) {
	g := newTestGame(5)
	g.Layout(400, 300)
	settle(t, g)
	g.updateDetent()
	first := g.centered

	g.step(1)
	settle(t, g)
	g.updateDetent()
	diff(t, (first+1)%5, g.centered)
}

func TestCurveForMode(t *testing.T) {
	g := newTestGame(3)
	diff(t, float64(config.AnglePerCard), g.curveFor(true).AnglePerCard)
	diff(t, carousel.FlatCurve(), g.curveFor(false))
}

func TestStatus(t *testing.T) {
	g := newTestGame(0)
	diff(t, "No cards - press R for samples or O to open images", g.status())
}

func TestDragTrail(t *testing.T) {
	tr := newDragTrail(4)
	diff(t, 0.0, tr.velocity(3))

	for _, d := range []float64{1, 2, 3, 4, 5, 6} {
		tr.record(d)
	}
	diff(t, []float64{3, 4, 5, 6}, tr.snapshot(10))
	diff(t, []float64{5, 6}, tr.snapshot(2))
	diff(t, 5.0, tr.velocity(3))

	tr.reset()
	diff(t, []float64{}, tr.snapshot(4))
}

func TestToneStreamer(t *testing.T) {
	sr := beep.SampleRate(config.TickSampleRate)
	n := 1000
	s := toneStreamer(sr, config.TickFrequency, n, 0.2)

	buf := make([][2]float64, 300)
	total := 0
	for {
		got, ok := s.Stream(buf)
		if !ok {
			break
		}
		for _, smp := range buf[:got] {
			if math.Abs(smp[0]) > 0.2 || smp[0] != smp[1] {
				t.Fatalf("bad sample %v", smp)
			}
		}
		total += got
	}
	diff(t, n, total)
}

func TestDetentFallsBackToTone(t *testing.T) {
	unsupported := filepath.Join(t.TempDir(), "tick.txt")
	if err := os.WriteFile(unsupported, []byte("tick"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(t.TempDir(), "tick.wav")
	if err := os.WriteFile(broken, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.wav"), unsupported, broken} {
		d := prepareDetent(path)
		if d == nil {
			t.Fatalf("%q: no detent", path)
		}
		want := d.format.SampleRate.N(config.TickLengthMs * time.Millisecond)
		if d.sample.Len() != want {
			t.Errorf("%q: sample has %d frames, want the %d-frame tone", path, d.sample.Len(), want)
		}
		if d.ready {
			t.Errorf("%q: ready without a speaker", path)
		}
	}
}

func TestSampleCards(t *testing.T) {
	cards := sampleCards(4)
	diff(t, 4, len(cards))
	ids := map[string]bool{}
	for _, c := range cards {
		ids[c.id] = true
	}
	diff(t, 4, len(ids))
	if cards[0].tint == cards[2].tint {
		t.Error("sample cards should have distinct tints")
	}
}

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{120, 0, 255, 0},
		{240, 0, 0, 255},
		{360, 255, 0, 0},
		{-120, 0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b := hsvToRgb(tt.h, 1, 1)
		diff(t, [3]uint8{tt.r, tt.g, tt.b}, [3]uint8{r, g, b})
	}
}

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}
