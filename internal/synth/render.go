package synth

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

// Config carries the dataset image knobs.
type Config struct {
	ImageSize     int // square edge in px
	Margin        int
	LineThin      int
	LineThick     int
	FontPx        float64
	DoCellGrid    bool // draw thin lines between cells inside a box
	WithHighlight bool
}

func DefaultConfig() Config {
	return Config{
		ImageSize:     512,
		Margin:        16,
		LineThin:      2,
		LineThick:     5,
		FontPx:        48,
		DoCellGrid:    true,
		WithHighlight: true,
	}
}

func (c Config) boardSize() int { return c.ImageSize - 2*c.Margin }

// Renderer rasterizes grids for the synthetic dataset. The font cache is
// injected at construction and shared read-only across items.
type Renderer struct {
	geo   domain.Geometry
	cfg   Config
	fonts *FontCache
}

func NewRenderer(geo domain.Geometry, cfg Config, fonts *FontCache) *Renderer {
	return &Renderer{geo: geo, cfg: cfg, fonts: fonts}
}

// Render draws g into a fresh image: seeded palette, optional highlight
// overlays, box/cell borders, and jittered digits. It returns the image,
// the per-cell pixel boxes, and the highlight applied (nil when disabled).
func (rd *Renderer) Render(g domain.Grid, rng *rand.Rand) (*image.RGBA, [][]CellBox, *Highlight) {
	pal := NewPalette(rng)
	img := image.NewRGBA(image.Rect(0, 0, rd.cfg.ImageSize, rd.cfg.ImageSize))
	fillRect(img, img.Bounds(), pal.Background)

	boxes := rd.CellBoxes()
	hl := rd.pickHighlight(rng)
	if hl != nil {
		rd.drawHighlights(img, hl, boxes, pal, rng)
	}
	rd.drawBorders(img, pal)
	rd.drawNumbers(img, g, boxes, pal, rng)
	return img, boxes, hl
}

// CellBoxes tiles the board area; the last row and column absorb the
// rounding remainder so the boxes cover the board exactly.
func (rd *Renderer) CellBoxes() [][]CellBox {
	n := rd.geo.Size
	w := rd.cfg.boardSize()
	cs := w / n
	boxes := make([][]CellBox, n)
	for r := 0; r < n; r++ {
		boxes[r] = make([]CellBox, n)
		for c := 0; c < n; c++ {
			ww, hh := cs, cs
			if c == n-1 {
				ww = w - cs*(n-1)
			}
			if r == n-1 {
				hh = w - cs*(n-1)
			}
			boxes[r][c] = CellBox{
				X: uint32(rd.cfg.Margin + c*cs),
				Y: uint32(rd.cfg.Margin + r*cs),
				W: uint32(ww),
				H: uint32(hh),
			}
		}
	}
	return boxes
}

func (rd *Renderer) pickHighlight(rng *rand.Rand) *Highlight {
	if !rd.cfg.WithHighlight {
		return nil
	}
	n := rd.geo.Size
	return &Highlight{
		Row:  rng.Intn(n),
		Col:  rng.Intn(n),
		Box:  [2]int{rng.Intn(n / rd.geo.BoxRows), rng.Intn(n / rd.geo.BoxCols)},
		Cell: [2]int{rng.Intn(n), rng.Intn(n)},
	}
}

// drawHighlights paints each of the four overlays with 70 % probability.
func (rd *Renderer) drawHighlights(img *image.RGBA, hl *Highlight, boxes [][]CellBox, pal Palette, rng *rand.Rand) {
	n := rd.geo.Size
	cs := rd.cfg.boardSize() / n
	m := rd.cfg.Margin
	w := rd.cfg.boardSize()

	if rng.Intn(100) < 70 {
		y := int(boxes[hl.Row][0].Y)
		fillRect(img, image.Rect(m, y, m+w, y+cs), pal.HighlightRow)
	}
	if rng.Intn(100) < 70 {
		x := int(boxes[0][hl.Col].X)
		fillRect(img, image.Rect(x, m, x+cs, m+w), pal.HighlightCol)
	}
	if rng.Intn(100) < 70 {
		x0 := m + hl.Box[1]*rd.geo.BoxCols*cs
		y0 := m + hl.Box[0]*rd.geo.BoxRows*cs
		fillRect(img, image.Rect(x0, y0, x0+rd.geo.BoxCols*cs, y0+rd.geo.BoxRows*cs), pal.HighlightBox)
	}
	if rng.Intn(100) < 70 {
		cell := boxes[hl.Cell[0]][hl.Cell[1]]
		fillRect(img, image.Rect(int(cell.X), int(cell.Y), int(cell.X+cell.W), int(cell.Y+cell.H)), pal.HighlightCell)
	}
}

func (rd *Renderer) drawBorders(img *image.RGBA, pal Palette) {
	n := rd.geo.Size
	cs := rd.cfg.boardSize() / n
	m := rd.cfg.Margin
	w := rd.cfg.boardSize()

	for i := 0; i <= n; i++ {
		x := m + i*cs
		y := m + i*cs
		if t := rd.lineThickness(i, rd.geo.BoxCols); t > 0 {
			fillRect(img, image.Rect(x-t/2, m, x-t/2+t, m+w), pal.Border)
		}
		if t := rd.lineThickness(i, rd.geo.BoxRows); t > 0 {
			fillRect(img, image.Rect(m, y-t/2, m+w, y-t/2+t), pal.Border)
		}
	}
}

// lineThickness: thick on the outer frame and box boundaries, thin inside a
// box when the cell grid is enabled, absent otherwise.
func (rd *Renderer) lineThickness(i, block int) int {
	switch {
	case i == 0 || i == rd.geo.Size || i%block == 0:
		return rd.cfg.LineThick
	case rd.cfg.DoCellGrid:
		return rd.cfg.LineThin
	default:
		return 0
	}
}

func (rd *Renderer) drawNumbers(img *image.RGBA, g domain.Grid, boxes [][]CellBox, pal Palette, rng *rand.Rand) {
	face := rd.fonts.Pick(rng, rng.Intn(100) < 35)
	jit := 2.0
	if face.Small {
		jit = 1.0
	}
	src := image.NewUniform(pal.Border)

	n := rd.geo.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g[r][c]
			if v == domain.Empty {
				continue
			}
			cell := boxes[r][c]
			cx := float64(cell.X) + 0.5*float64(cell.W)
			cy := float64(cell.Y) + 0.5*float64(cell.H)
			jx := rng.Float64()*2*jit - jit
			jy := rng.Float64()*2*jit - jit

			tlx := math.Round(cx - 0.5*face.widths[v] + jx)
			tly := math.Round(cy - 0.5*face.height + jy)

			d := font.Drawer{
				Dst:  img,
				Src:  src,
				Face: face.face,
				Dot: fixed.Point26_6{
					X: fixed.I(int(tlx)),
					Y: fixed.I(int(tly + math.Round(face.ascent))),
				},
			}
			d.DrawString(strconv.Itoa(int(v)))
		}
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func fixedToFloat(x fixed.Int26_6) float64 { return float64(x) / 64 }
