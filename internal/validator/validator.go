package validator

import (
	"context"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

// FastValidator reports duplicate values among the filled cells of each
// row, column, and box using one bitmask per unit.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, geo domain.Geometry, g domain.Grid) (bool, []domain.CellCoord, error) {
	n := geo.Size
	conf := make([]domain.CellCoord, 0, 8)
	// rows
	for r := 0; r < n; r++ {
		m := 0
		for c := 0; c < n; c++ {
			val := g[r][c]
			if val == domain.Empty {
				continue
			}
			bit := 1 << val
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// cols
	for c := 0; c < n; c++ {
		m := 0
		for r := 0; r < n; r++ {
			val := g[r][c]
			if val == domain.Empty {
				continue
			}
			bit := 1 << val
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// boxes
	for box := 0; box < n; box++ {
		m := 0
		r0, c0 := geo.BoxOrigin(box)
		for r := r0; r < r0+geo.BoxRows; r++ {
			for c := c0; c < c0+geo.BoxCols; c++ {
				val := g[r][c]
				if val == domain.Empty {
					continue
				}
				bit := 1 << val
				if m&bit != 0 {
					conf = append(conf, domain.CellCoord{Row: r, Col: c})
				}
				m |= bit
			}
		}
	}
	return len(conf) == 0, conf, nil
}

// Check reports whether every row, column, and box of g is a permutation
// of 1..N. It trusts no solver bookkeeping: callers use it to assert a
// produced solution is actually correct.
func Check(geo domain.Geometry, g domain.Grid) bool {
	if !g.Conforms(geo) {
		return false
	}
	n := geo.Size
	full := 1<<n - 1
	unit := func(cells func(i int) uint8) bool {
		m := 0
		for i := 0; i < n; i++ {
			v := cells(i)
			if v == domain.Empty {
				return false
			}
			m |= 1 << (v - 1)
		}
		return m == full
	}
	for r := 0; r < n; r++ {
		r := r
		if !unit(func(i int) uint8 { return g[r][i] }) {
			return false
		}
	}
	for c := 0; c < n; c++ {
		c := c
		if !unit(func(i int) uint8 { return g[i][c] }) {
			return false
		}
	}
	for box := 0; box < n; box++ {
		r0, c0 := geo.BoxOrigin(box)
		if !unit(func(i int) uint8 { return g[r0+i/geo.BoxCols][c0+i%geo.BoxCols] }) {
			return false
		}
	}
	return true
}
