package game

import (
	"fmt"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// card is one carousel item. The carousel only sees its position in the
// slice; everything here is presentation.
type card struct {
	id    string
	label string
	tint  color.RGBA
	photo *ebiten.Image

	face       *ebiten.Image
	faceHeight int
}

// sampleCards returns n cards with evenly spaced hues.
func sampleCards(n int) []*card {
	cards := make([]*card, 0, n)
	for i := 0; i < n; i++ {
		hue := float64(i) * 360 / float64(max(n, 1))
		cards = append(cards, &card{
			id:    fmt.Sprintf("sample-%d", i),
			label: fmt.Sprintf("#%d", i+1),
			tint:  hueColor(hue, 0.7, 0.9),
		})
	}
	return cards
}

// loadCards builds one card per image file. Files that fail to decode are
// skipped and reported in the returned error.
func loadCards(paths []string) ([]*card, error) {
	cards := make([]*card, 0, len(paths))
	var failed []string
	for i, path := range paths {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		hue := float64(i) * 360 / float64(len(paths))
		cards = append(cards, &card{
			id:    path,
			label: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			tint:  hueColor(hue, 0.6, 0.8),
			photo: img,
		})
	}
	if len(failed) > 0 {
		return cards, fmt.Errorf("could not load %d image(s): %s", len(failed), strings.Join(failed, "; "))
	}
	return cards, nil
}

// faceImage renders the card once per height and caches it.
func (c *card) faceImage(width, height int) *ebiten.Image {
	if c.face != nil && c.faceHeight == height {
		return c.face
	}
	if c.face != nil {
		c.face.Deallocate()
	}

	face := ebiten.NewImage(width, height)
	w, h := float32(width), float32(height)

	bg := c.tint
	bg.A = 90
	vector.DrawFilledRect(face, 0, 0, w, h, color.RGBA{R: 20, G: 25, B: 35, A: 230}, false)
	vector.DrawFilledRect(face, 0, 0, w, h, bg, false)
	vector.StrokeRect(face, 1, 1, w-2, h-2, 2, c.tint, false)

	radius := float32(math.Min(float64(width), float64(height)) * 0.35)
	cx, cy := w/2, h/2
	disc := c.tint
	disc.A = 128
	vector.DrawFilledCircle(face, cx, cy, radius, disc, true)

	if c.photo != nil {
		c.drawPhoto(face, float64(cx), float64(cy), float64(radius))
	}

	ebitenutil.DebugPrintAt(face, c.label, 8, 6)

	c.face = face
	c.faceHeight = height
	return face
}

// drawPhoto fits the photo into the square around the disc.
func (c *card) drawPhoto(face *ebiten.Image, cx, cy, radius float64) {
	b := c.photo.Bounds()
	pw, ph := float64(b.Dx()), float64(b.Dy())
	if pw == 0 || ph == 0 {
		return
	}
	s := 2 * radius / math.Max(pw, ph)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-pw/2, -ph/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	face.DrawImage(c.photo, op)
}
