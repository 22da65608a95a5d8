package synth

import (
	"image/color"
	"math/rand"
)

// Palette is the per-image color set, jittered from the item seed so no two
// dataset images share exact colors.
type Palette struct {
	Background    color.RGBA
	Border        color.RGBA
	HighlightRow  color.RGBA
	HighlightCol  color.RGBA
	HighlightBox  color.RGBA
	HighlightCell color.RGBA
}

func NewPalette(rng *rand.Rand) Palette {
	bg := uint8(235 + rng.Intn(21)) // near white
	ink := uint8(rng.Intn(40))      // near black
	return Palette{
		Background:    color.RGBA{bg, bg, bg, 255},
		Border:        color.RGBA{ink, ink, ink, 255},
		HighlightRow:  pastel(rng),
		HighlightCol:  pastel(rng),
		HighlightBox:  pastel(rng),
		HighlightCell: pastel(rng),
	}
}

// pastel returns a light tint that keeps the digits readable on top of it.
func pastel(rng *rand.Rand) color.RGBA {
	ch := func() uint8 { return uint8(170 + rng.Intn(61)) }
	return color.RGBA{ch(), ch(), ch(), 255}
}
