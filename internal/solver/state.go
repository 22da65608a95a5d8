package solver

import (
	"fmt"
	"math/bits"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

// mask is a value bitset: bit v-1 stands for value v. domain.MaxSize keeps
// every candidate set within 16 bits.
type mask uint16

func bitOf(v uint8) mask { return mask(1) << (v - 1) }

func popcount(m mask) uint8 { return uint8(bits.OnesCount16(uint16(m))) }

// lowest returns the smallest value whose bit is set in m. m must not be 0.
func lowest(m mask) uint8 { return uint8(bits.TrailingZeros16(uint16(m))) + 1 }

// gridState owns the working grid, the per-unit taken masks, and the
// per-cell forbidden/candidate-count caches derived from them. All
// mutations go through assign and banLocal so the trail can undo them.
type gridState struct {
	geo  domain.Geometry
	full mask // low N bits set

	cells [][]uint8

	rowTaken []mask
	colTaken []mask
	boxTaken []mask

	// forbidden[r][c] is the union of the three unit masks covering (r,c)
	// plus values banned there by failed branches. avail[r][c] caches the
	// popcount of its complement and is meaningful only for empty cells.
	forbidden [][]mask
	avail     [][]uint8

	emptyCount int
}

// newGridState scans the givens once, building unit masks and the per-cell
// caches. A duplicate given within any unit yields ErrInvalidPuzzle.
func newGridState(geo domain.Geometry, init domain.Grid) (*gridState, error) {
	n := geo.Size
	st := &gridState{
		geo:       geo,
		full:      mask(1)<<n - 1,
		cells:     make([][]uint8, n),
		rowTaken:  make([]mask, n),
		colTaken:  make([]mask, n),
		boxTaken:  make([]mask, n),
		forbidden: make([][]mask, n),
		avail:     make([][]uint8, n),
	}
	for r := 0; r < n; r++ {
		st.cells[r] = make([]uint8, n)
		st.forbidden[r] = make([]mask, n)
		st.avail[r] = make([]uint8, n)
	}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := init[r][c]
			st.cells[r][c] = v
			if v == domain.Empty {
				st.emptyCount++
				continue
			}
			b := bitOf(v)
			bx := geo.BoxIndex(r, c)
			if st.rowTaken[r]&b != 0 || st.colTaken[c]&b != 0 || st.boxTaken[bx]&b != 0 {
				return nil, fmt.Errorf("%w: duplicate given %d at (%d,%d)", ErrInvalidPuzzle, v, r, c)
			}
			st.rowTaken[r] |= b
			st.colTaken[c] |= b
			st.boxTaken[bx] |= b
		}
	}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if st.cells[r][c] != domain.Empty {
				continue
			}
			f := st.rowTaken[r] | st.colTaken[c] | st.boxTaken[geo.BoxIndex(r, c)]
			st.forbidden[r][c] = f
			st.avail[r][c] = popcount(st.full &^ f)
		}
	}
	return st, nil
}

// candidates returns the legal values for an empty cell.
func (st *gridState) candidates(r, c int) mask {
	return st.full &^ st.forbidden[r][c]
}

func (st *gridState) solved() bool { return st.emptyCount == 0 }

func (st *gridState) copyInto(g domain.Grid) {
	for r := range st.cells {
		copy(g[r], st.cells[r])
	}
}

// assign writes v into the empty cell (r,c), updates the covering unit
// masks, and strikes v from every empty peer's candidates, logging each
// mutation on the trail. It returns ErrUnsolvable the moment a peer's
// candidate count reaches zero; entries already pushed stay valid for undo.
func (st *gridState) assign(t *trail, r, c int, v uint8) error {
	b := bitOf(v)
	bx := st.geo.BoxIndex(r, c)

	t.push(trailOp{kind: opCell, r: uint8(r), c: uint8(c), prevCell: st.cells[r][c]})
	st.cells[r][c] = v
	st.emptyCount--

	t.push(trailOp{kind: opUnit, unit: unitRow, r: uint8(r), prevMask: st.rowTaken[r]})
	st.rowTaken[r] |= b
	t.push(trailOp{kind: opUnit, unit: unitCol, r: uint8(c), prevMask: st.colTaken[c]})
	st.colTaken[c] |= b
	t.push(trailOp{kind: opUnit, unit: unitBox, r: uint8(bx), prevMask: st.boxTaken[bx]})
	st.boxTaken[bx] |= b

	n := st.geo.Size
	for i := 0; i < n; i++ {
		if i != c {
			if err := st.banPeer(t, r, i, b); err != nil {
				return err
			}
		}
		if i != r {
			if err := st.banPeer(t, i, c, b); err != nil {
				return err
			}
		}
	}
	r0, c0 := st.geo.BoxOrigin(bx)
	for pr := r0; pr < r0+st.geo.BoxRows; pr++ {
		for pc := c0; pc < c0+st.geo.BoxCols; pc++ {
			if pr == r || pc == c { // already covered by the row/col sweeps
				continue
			}
			if err := st.banPeer(t, pr, pc, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// banPeer strikes value bit b from an empty peer cell's candidates.
func (st *gridState) banPeer(t *trail, r, c int, b mask) error {
	if st.cells[r][c] != domain.Empty || st.forbidden[r][c]&b != 0 {
		return nil
	}
	t.push(trailOp{kind: opMeta, r: uint8(r), c: uint8(c), prevMask: st.forbidden[r][c], prevAvail: st.avail[r][c]})
	st.forbidden[r][c] |= b
	st.avail[r][c]--
	if st.avail[r][c] == 0 {
		return ErrUnsolvable
	}
	return nil
}

// banLocal excludes v at (r,c) after a failed branch there. The exclusion
// is undone together with the enclosing choice point.
func (st *gridState) banLocal(t *trail, r, c int, v uint8) {
	b := bitOf(v)
	if st.forbidden[r][c]&b != 0 {
		return
	}
	t.push(trailOp{kind: opMeta, r: uint8(r), c: uint8(c), prevMask: st.forbidden[r][c], prevAvail: st.avail[r][c]})
	st.forbidden[r][c] |= b
	st.avail[r][c]--
}
