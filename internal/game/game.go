package game

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/looping-carousel/internal/carousel"
	"github.com/iburimskiy/looping-carousel/internal/config"
)

const (
	dragTrailSize   = 16
	releaseSamples  = 5
	visibleMargin   = 2 * config.CardWidth
	backgroundBands = 64
)

type Game struct {
	// items
	cards    []*card
	sequence []*card

	// scrolling
	layout   carousel.Layout
	ctrl     *carousel.Controller
	view     *scrollView
	momentum carousel.Momentum
	snap     carousel.Snap
	trail    *dragTrail

	// look
	curve    carousel.Curve
	multiRow bool

	// pointer
	dragging bool
	dragX    int
	touchID  ebiten.TouchID
	touching bool

	// state
	settle   bool
	autoplay bool
	centered int
	tick     *detent
	env      config.Env
	viewW    int
	viewH    int
	time     float64
	lastErr  error
}

func NewGame() *Game {
	g := &Game{
		view:  &scrollView{},
		trail: newDragTrail(dragTrailSize),
		momentum: carousel.Momentum{
			Friction: config.MomentumFriction,
			MinSpeed: config.MomentumMinSpeed,
		},
		snap:     carousel.Snap{Rate: config.SnapRate},
		multiRow: true,
		centered: -1,
	}
	env, err := config.LoadEnv()
	if err != nil {
		// Non-fatal, fall back to the defaults
		log.Printf("Configuration: %v", err)
	}
	g.env = env
	g.autoplay = env.Autoplay

	g.curve = g.curveFor(g.multiRow)
	g.ctrl = carousel.NewController(0, carousel.Layout{})
	g.view.observer = g.ctrl.OnScroll
	g.setCards(sampleCards(env.SampleCards))

	tick, err := newDetent(env.TickSound)
	if err != nil {
		// Non-fatal, the carousel works without sound
		log.Printf("Audio initialization failed: %v", err)
	}
	g.tick = tick

	return g
}

func (g *Game) curveFor(multiRow bool) carousel.Curve {
	if !multiRow {
		return carousel.FlatCurve()
	}
	c := carousel.DefaultCurve()
	c.AnglePerCard = config.AnglePerCard
	c.CurveHeight = config.CurveHeight
	return c
}

// setCards replaces the item list. The offset is folded into the new cycle
// right away so the viewport never runs past the end of the new sequence.
func (g *Game) setCards(cards []*card) {
	g.cards = cards
	g.centered = -1
	g.rebuild()
	if g.ctrl.Attached() {
		g.view.SetOffset(g.view.x)
	}
	g.momentum.Stop()
	g.snap.Stop()
	g.settle = true
}

// rebuild derives the render sequence and then hands the new geometry to the
// controller. The order matters: corrections must never run against a
// sequence built for a different item count.
func (g *Game) rebuild() {
	g.layout = carousel.Layout{
		ItemWidth:     config.CardWidth,
		Spacing:       config.CardSpacing,
		ViewportWidth: float64(g.viewW),
	}
	g.sequence = carousel.Build(g.cards, g.layout)
	g.ctrl.Sync(len(g.cards), g.layout)
}

func (g *Game) resize(w, h int) {
	g.viewW, g.viewH = w, h
	g.rebuild()

	// Attach once the surface has a real size, so the first correction
	// does not run against a zero-width layout.
	if w > 0 && !g.ctrl.Attached() {
		g.ctrl.Attach(g.view)
		g.view.SetOffset(g.view.x)
		g.settle = true
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewW || outsideHeight != g.viewH {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.multiRow = !g.multiRow
		g.curve = g.curveFor(g.multiRow)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.autoplay = !g.autoplay
		if !g.autoplay {
			g.settle = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openImages()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.setCards(sampleCards(g.env.SampleCards))
		g.lastErr = nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.step(-1)
	}

	g.updatePointer()
	g.updateWheel()
	g.updateMotion()
	g.updateDetent()

	g.time += 1.0 / float64(ebiten.TPS())
	return nil
}

func (g *Game) step(direction int) {
	g.momentum.Stop()
	g.snap.Start(g.ctrl.SnapTarget(direction))
}

func (g *Game) openImages() {
	paths, err := pickImages()
	if err != nil {
		g.lastErr = err
		return
	}
	if len(paths) == 0 {
		return
	}
	cards, err := loadCards(paths)
	if err != nil {
		g.lastErr = err
		log.Printf("Loading images: %v", err)
	}
	if len(cards) > 0 {
		g.setCards(cards)
	}
}

// pointer merges the first touch and the left mouse button into a single
// pointer.
func (g *Game) pointer() (x int, pressed, justPressed, justReleased bool) {
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			return g.dragX, false, false, true
		}
		x, _ = ebiten.TouchPosition(g.touchID)
		return x, true, false, false
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		g.touchID = ids[0]
		g.touching = true
		x, _ = ebiten.TouchPosition(g.touchID)
		return x, true, true, false
	}

	x, _ = ebiten.CursorPosition()
	return x,
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (g *Game) updatePointer() {
	x, pressed, justPressed, justReleased := g.pointer()

	if justPressed {
		g.dragging = true
		g.dragX = x
		g.momentum.Stop()
		g.snap.Stop()
		g.trail.reset()
		return
	}
	if !g.dragging {
		return
	}
	if justReleased || !pressed {
		g.dragging = false
		g.momentum.Release(g.trail.velocity(releaseSamples))
		if !g.momentum.Active() {
			g.settle = true
		}
		return
	}

	// Content follows the pointer, so the offset moves against it.
	dx := float64(g.dragX - x)
	g.dragX = x
	g.trail.record(dx)
	g.view.scrollBy(dx)
}

func (g *Game) updateWheel() {
	wx, wy := ebiten.Wheel()
	if wx == 0 && wy == 0 {
		return
	}
	g.momentum.Stop()
	g.snap.Stop()
	g.view.scrollBy(-(wx + wy) * config.WheelSpeed)
	g.settle = true
}

func (g *Game) updateMotion() {
	if g.dragging {
		return
	}
	switch {
	case g.momentum.Active():
		g.view.scrollBy(g.momentum.Step())
		if !g.momentum.Active() {
			g.settle = true
		}
	case g.autoplay:
		g.view.scrollBy(config.AutoplaySpeed)
	case g.settle:
		g.settle = false
		g.snap.Start(g.ctrl.SnapTarget(0))
	}
	if g.snap.Active() && !g.momentum.Active() {
		g.view.scrollBy(g.snap.Step())
	}
}

func (g *Game) updateDetent() {
	idx := g.ctrl.CenteredIndex()
	if idx == g.centered {
		return
	}
	if g.centered >= 0 && idx >= 0 {
		g.tick.play()
	}
	g.centered = idx
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	if g.multiRow {
		g.drawDisc(screen)
		// Back rows first so the front row overlaps them.
		for row := config.RowCount - 1; row >= 0; row-- {
			g.drawRow(screen, row, g.rowBottom(row), config.RowHeight)
		}
	} else {
		bottom := float64(g.viewH)/2 + config.CardHeight/2
		g.drawRow(screen, 0, bottom, config.CardHeight)
	}

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	ebitenutil.DebugPrintAt(screen,
		"Drag/wheel: scroll  Left/Right: step  Space: autoplay  M: layout  O: open images  R: reset  Esc/Q: quit",
		12, g.viewH-24)
}

// rowShift is the horizontal offset of a row. The middle row is staggered
// against its neighbours; it moves left rather than right so its first card
// still reaches the left edge at offset 0.
func rowShift(row int) float64 {
	if row == 1 {
		return -config.RowShift
	}
	return 0
}

// rowBottom is the resting y of the bottom edge of a row; row 0 is lowest.
func (g *Game) rowBottom(row int) float64 {
	return float64(g.viewH) - config.CurveHeight - 40 - float64(row)*(config.RowHeight+config.RowSpacing)
}

func (g *Game) drawRow(screen *ebiten.Image, row int, bottom float64, cardH int) {
	if len(g.sequence) == 0 || g.viewW == 0 {
		return
	}

	stride := g.layout.Stride()
	offset := g.ctrl.Offset()
	vw := float64(g.viewW)
	shift := rowShift(row)

	for i, c := range g.sequence {
		left := float64(i)*stride - offset + shift
		if left > vw+visibleMargin || left+config.CardWidth < -visibleMargin {
			continue
		}
		cx := left + config.CardWidth/2
		tr := g.curve.Transform(cx-vw/2, vw, row)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-config.CardWidth/2, -float64(cardH))
		op.GeoM.Translate(0, -tr.Lift)
		op.GeoM.Rotate(degToRad(tr.Rotation))
		op.GeoM.Scale(tr.Scale, tr.Scale)
		op.GeoM.Translate(cx, bottom+tr.Lift+tr.VerticalOffset)
		op.ColorScale.ScaleAlpha(float32(clamp01(tr.Opacity)))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(c.faceImage(config.CardWidth, cardH), op)
	}
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	if g.viewH == 0 {
		return
	}
	// Slowly drifting vertical gradient
	band := float32(g.viewH) / backgroundBands
	for i := 0; i < backgroundBands; i++ {
		ratio := float64(i) / backgroundBands
		clr := hueColor(220+40*ratio+10*g.time, 0.5, 0.12+0.1*ratio)
		vector.DrawFilledRect(screen, 0, float32(i)*band, float32(g.viewW), band+1, clr, false)
	}
}

func (g *Game) drawDisc(screen *ebiten.Image) {
	r := float32(g.viewH) / 2
	vector.DrawFilledCircle(screen, float32(g.viewW)/2, float32(g.viewH), r, color.RGBA{R: 255, G: 255, B: 255, A: 24}, true)
}

func (g *Game) status() string {
	if len(g.cards) == 0 {
		return "No cards - press R for samples or O to open images"
	}
	mode := "curved"
	if !g.multiRow {
		mode = "flat"
	}
	status := fmt.Sprintf("Card %d/%d | offset %4.0f / %4.0f | %s",
		g.centered+1, len(g.cards), g.ctrl.Offset(), g.ctrl.CycleWidth(), mode)
	if g.autoplay {
		status += " | autoplay"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}
