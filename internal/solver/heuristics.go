package solver

import "github.com/slava-nikulin/puzzle-solver/internal/domain"

// pressure summarizes a cell's neighborhood for MRV tie-breaking: how many
// of its row/column/box peers are still empty, and the sum of their
// candidate counts.
type pressure struct {
	peers     int
	domainSum int
}

// better prefers the cell cutting off more of the search space: more empty
// peers first, then the smaller summed peer domain.
func (a pressure) better(b pressure) bool {
	if a.peers != b.peers {
		return a.peers > b.peers
	}
	return a.domainSum < b.domainSum
}

func (st *gridState) peerPressure(r, c int) pressure {
	n := st.geo.Size
	var p pressure
	visit := func(pr, pc int) {
		if st.cells[pr][pc] == domain.Empty {
			p.peers++
			p.domainSum += int(st.avail[pr][pc])
		}
	}
	for i := 0; i < n; i++ {
		if i != c {
			visit(r, i)
		}
		if i != r {
			visit(i, c)
		}
	}
	r0, c0 := st.geo.BoxOrigin(st.geo.BoxIndex(r, c))
	for pr := r0; pr < r0+st.geo.BoxRows; pr++ {
		for pc := c0; pc < c0+st.geo.BoxCols; pc++ {
			if pr != r && pc != c {
				visit(pr, pc)
			}
		}
	}
	return p
}

// selectCell picks the empty cell with the fewest remaining candidates
// (minimum remaining values). Count ties go to peer pressure. Must only be
// called while empty cells remain; a returned count of zero means a
// contradiction survived propagation and the caller has to backtrack.
func (st *gridState) selectCell() (int, int, uint8) {
	n := st.geo.Size
	br, bc := -1, -1
	var bn uint8
	var bp pressure
	haveP := false
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if st.cells[r][c] != domain.Empty {
				continue
			}
			a := st.avail[r][c]
			switch {
			case br < 0 || a < bn:
				br, bc, bn = r, c, a
				haveP = false
			case a == bn:
				if !haveP {
					bp = st.peerPressure(br, bc)
					haveP = true
				}
				if p := st.peerPressure(r, c); p.better(bp) {
					br, bc, bp = r, c, p
				}
			}
		}
	}
	return br, bc, bn
}

// lcv picks from cands the least constraining value: the one most of the
// cell's empty peers already exclude, so that placing it removes the fewest
// peer options. Bits are scanned from the highest value down with a >=
// comparison, so ties land on the lowest value; the ordering is arbitrary
// but deterministic.
func (st *gridState) lcv(r, c int, cands mask) uint8 {
	var best uint8
	bestScore := -1
	for v := uint8(st.geo.Size); v >= 1; v-- {
		b := bitOf(v)
		if cands&b == 0 {
			continue
		}
		if score := st.peerCollisions(r, c, b); score >= bestScore {
			best, bestScore = v, score
		}
	}
	return best
}

// peerCollisions counts the empty peers of (r,c) whose forbidden mask
// already contains bit b.
func (st *gridState) peerCollisions(r, c int, b mask) int {
	n := st.geo.Size
	score := 0
	visit := func(pr, pc int) {
		if st.cells[pr][pc] == domain.Empty && st.forbidden[pr][pc]&b != 0 {
			score++
		}
	}
	for i := 0; i < n; i++ {
		if i != c {
			visit(r, i)
		}
		if i != r {
			visit(i, c)
		}
	}
	r0, c0 := st.geo.BoxOrigin(st.geo.BoxIndex(r, c))
	for pr := r0; pr < r0+st.geo.BoxRows; pr++ {
		for pc := c0; pc < c0+st.geo.BoxCols; pc++ {
			if pr != r && pc != c {
				visit(pr, pc)
			}
		}
	}
	return score
}
