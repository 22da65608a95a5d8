package hint

import (
	"context"
	"fmt"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

// Singles implements a minimal Hinter that suggests naked singles.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first found naked single if max tier allows it.
func (h *Singles) Hint(ctx context.Context, geo domain.Geometry, g domain.Grid, max domain.StrategyTier) (domain.Hint, bool, error) {
	if max < domain.StrategySingles {
		return domain.Hint{}, false, nil
	}
	n := geo.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g[r][c] != domain.Empty {
				continue
			}
			v, ok := soleCandidate(geo, g, r, c)
			if ok {
				return domain.Hint{
					Message:  fmt.Sprintf("Single: only %d fits here", v),
					Cells:    []domain.CellCoord{{Row: r, Col: c}},
					Value:    v,
					Strategy: domain.StrategySingles,
				}, true, nil
			}
		}
	}
	return domain.Hint{}, false, nil
}

func soleCandidate(geo domain.Geometry, g domain.Grid, r, c int) (uint8, bool) {
	taken := 0
	for i := 0; i < geo.Size; i++ {
		if v := g[r][i]; v != domain.Empty {
			taken |= 1 << (v - 1)
		}
		if v := g[i][c]; v != domain.Empty {
			taken |= 1 << (v - 1)
		}
	}
	r0, c0 := geo.BoxOrigin(geo.BoxIndex(r, c))
	for pr := r0; pr < r0+geo.BoxRows; pr++ {
		for pc := c0; pc < c0+geo.BoxCols; pc++ {
			if v := g[pr][pc]; v != domain.Empty {
				taken |= 1 << (v - 1)
			}
		}
	}
	var last uint8
	count := 0
	for v := uint8(1); v <= uint8(geo.Size); v++ {
		if taken&(1<<(v-1)) == 0 {
			count++
			last = v
			if count > 1 {
				return 0, false
			}
		}
	}
	return last, count == 1
}
