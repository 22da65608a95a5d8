package solver

import "github.com/slava-nikulin/puzzle-solver/internal/domain"

// propagate resolves naked singles to a fixpoint. The worklist is seeded
// with every empty cell holding exactly one candidate; each forced
// assignment enqueues the peers whose counts just dropped to one. Cells are
// re-validated when popped because their counts may have changed since
// enqueue. Returns the number of forced assignments, or ErrUnsolvable the
// instant any empty cell is left without candidates.
//
// This is unit-uniqueness propagation only; hidden singles and deeper
// combinatorial inference are left to the search.
func (st *gridState) propagate(t *trail) (int, error) {
	n := st.geo.Size
	queue := make([]domain.CellCoord, 0, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if st.cells[r][c] != domain.Empty {
				continue
			}
			switch st.avail[r][c] {
			case 0:
				return 0, ErrUnsolvable
			case 1:
				queue = append(queue, domain.CellCoord{Row: r, Col: c})
			}
		}
	}

	forced := 0
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		r, c := cell.Row, cell.Col
		if st.cells[r][c] != domain.Empty {
			continue
		}
		switch st.avail[r][c] {
		case 0:
			return forced, ErrUnsolvable
		case 1:
		default:
			continue
		}
		if err := st.assign(t, r, c, lowest(st.candidates(r, c))); err != nil {
			return forced, err
		}
		forced++
		queue = st.enqueueSingles(queue, r, c)
	}
	return forced, nil
}

// enqueueSingles appends the empty peers of (r,c) whose candidate count is
// now exactly one.
func (st *gridState) enqueueSingles(queue []domain.CellCoord, r, c int) []domain.CellCoord {
	n := st.geo.Size
	add := func(pr, pc int) {
		if st.cells[pr][pc] == domain.Empty && st.avail[pr][pc] == 1 {
			queue = append(queue, domain.CellCoord{Row: pr, Col: pc})
		}
	}
	for i := 0; i < n; i++ {
		if i != c {
			add(r, i)
		}
		if i != r {
			add(i, c)
		}
	}
	r0, c0 := st.geo.BoxOrigin(st.geo.BoxIndex(r, c))
	for pr := r0; pr < r0+st.geo.BoxRows; pr++ {
		for pc := c0; pc < c0+st.geo.BoxCols; pc++ {
			if pr != r && pc != c {
				add(pr, pc)
			}
		}
	}
	return queue
}
