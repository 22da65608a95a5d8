package synth

import (
	"math/rand"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

// ItemGenerator assembles dataset items: a grid, its rendered PNG, and the
// matching labels.jsonl record.
type ItemGenerator struct {
	geo    domain.Geometry
	rend   *Renderer
	writer *Writer
}

func NewItemGenerator(geo domain.Geometry, cfg Config, fonts *FontCache, w *Writer) *ItemGenerator {
	return &ItemGenerator{geo: geo, rend: NewRenderer(geo, cfg, fonts), writer: w}
}

// RandomGrid fills a grid from seed: each cell is empty with a probability
// drawn once from 60..75 %, otherwise uniform in 1..N. These are
// recognition-training labels, not necessarily a consistent puzzle.
func RandomGrid(geo domain.Geometry, seed uint64) domain.Grid {
	rng := rand.New(rand.NewSource(int64(seed)))
	n := geo.Size
	g := domain.NewGrid(n)
	p0 := 60 + rng.Intn(16)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if rng.Intn(100) < p0 {
				g[r][c] = domain.Empty
			} else {
				g[r][c] = uint8(1 + rng.Intn(n))
			}
		}
	}
	return g
}

// Emit renders grid under the item seed, saves the PNG, and appends the
// metadata record.
func (g *ItemGenerator) Emit(id uint32, seed uint64, grid domain.Grid) error {
	rng := rand.New(rand.NewSource(int64(seed)))
	img, boxes, hl := g.rend.Render(grid, rng)
	if err := g.writer.SavePNG(img, id); err != nil {
		return err
	}

	n := g.geo.Size
	labels := make([]int, 0, n*n)
	flat := make([]CellBox, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			labels = append(labels, int(grid[r][c]))
		}
		flat = append(flat, boxes[r]...)
	}
	return g.writer.WriteRecord(&Record{
		Schema:    SchemaV1,
		Image:     ImagePath(id),
		Labels:    labels,
		Boxes:     flat,
		Dim:       uint8(n),
		Seed:      seed,
		Highlight: hl,
	})
}
