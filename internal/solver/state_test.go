package solver

import (
	"reflect"
	"testing"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

func snapshot(st *gridState) *gridState {
	cp := &gridState{
		geo:        st.geo,
		full:       st.full,
		emptyCount: st.emptyCount,
		rowTaken:   append([]mask(nil), st.rowTaken...),
		colTaken:   append([]mask(nil), st.colTaken...),
		boxTaken:   append([]mask(nil), st.boxTaken...),
	}
	for r := range st.cells {
		cp.cells = append(cp.cells, append([]uint8(nil), st.cells[r]...))
		cp.forbidden = append(cp.forbidden, append([]mask(nil), st.forbidden[r]...))
		cp.avail = append(cp.avail, append([]uint8(nil), st.avail[r]...))
	}
	return cp
}

func statesEqual(a, b *gridState) bool {
	return a.emptyCount == b.emptyCount &&
		reflect.DeepEqual(a.cells, b.cells) &&
		reflect.DeepEqual(a.rowTaken, b.rowTaken) &&
		reflect.DeepEqual(a.colTaken, b.colTaken) &&
		reflect.DeepEqual(a.boxTaken, b.boxTaken) &&
		reflect.DeepEqual(a.forbidden, b.forbidden) &&
		reflect.DeepEqual(a.avail, b.avail)
}

// Undoing the trail from any point must restore the exact prior state.
func TestTrailUndoRestoresState(t *testing.T) {
	st, err := newGridState(domain.Classic(), gridFrom(canonicalInit))
	if err != nil {
		t.Fatalf("newGridState: %v", err)
	}
	before := snapshot(st)

	tr := newTrail(64)
	mark := tr.mark()
	if err := st.assign(tr, 0, 1, 2); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if statesEqual(before, st) {
		t.Fatal("assign left the state unchanged")
	}
	if _, err := st.propagate(tr); err != nil {
		t.Fatalf("propagate: %v", err)
	}

	tr.undoTo(mark, st)
	if !statesEqual(before, st) {
		t.Fatal("undo did not restore the pre-assignment state")
	}
	if tr.mark() != mark {
		t.Fatalf("trail not truncated: mark=%d", tr.mark())
	}
}

func TestTrailPartialUndo(t *testing.T) {
	st, err := newGridState(domain.Classic(), gridFrom(canonicalInit))
	if err != nil {
		t.Fatalf("newGridState: %v", err)
	}

	tr := newTrail(64)
	if err := st.assign(tr, 0, 1, 2); err != nil {
		t.Fatalf("assign: %v", err)
	}
	mid := snapshot(st)
	mark := tr.mark()

	if err := st.assign(tr, 1, 4, 2); err != nil {
		t.Fatalf("second assign: %v", err)
	}
	tr.undoTo(mark, st)
	if !statesEqual(mid, st) {
		t.Fatal("partial undo did not stop at the mark")
	}
}

func TestGridStateCandidateCounts(t *testing.T) {
	st, err := newGridState(domain.Classic(), gridFrom(canonicalInit))
	if err != nil {
		t.Fatalf("newGridState: %v", err)
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if st.cells[r][c] != domain.Empty {
				continue
			}
			if got, want := st.avail[r][c], popcount(st.candidates(r, c)); got != want {
				t.Fatalf("avail cache at (%d,%d) = %d, candidates say %d", r, c, got, want)
			}
			if st.avail[r][c] == 0 {
				t.Fatalf("fixture cell (%d,%d) has no candidates", r, c)
			}
		}
	}
}

func TestBanLocalExcludesValue(t *testing.T) {
	st, err := newGridState(domain.Classic(), gridFrom(canonicalInit))
	if err != nil {
		t.Fatalf("newGridState: %v", err)
	}
	tr := newTrail(8)
	mark := tr.mark()
	// (0,1) can hold 2 in the fixture
	if st.candidates(0, 1)&bitOf(2) == 0 {
		t.Fatal("fixture changed: 2 not a candidate at (0,1)")
	}
	before := st.avail[0][1]
	st.banLocal(tr, 0, 1, 2)
	if st.candidates(0, 1)&bitOf(2) != 0 {
		t.Fatal("banLocal did not exclude the value")
	}
	if st.avail[0][1] != before-1 {
		t.Fatalf("avail not decremented: %d -> %d", before, st.avail[0][1])
	}
	tr.undoTo(mark, st)
	if st.candidates(0, 1)&bitOf(2) == 0 || st.avail[0][1] != before {
		t.Fatal("undo did not lift the ban")
	}
}
