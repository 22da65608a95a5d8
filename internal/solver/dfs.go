package solver

import (
	"context"
	"time"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
	"github.com/slava-nikulin/puzzle-solver/internal/ports"
)

const defaultProgressEvery = 1024

// DFSSolver is the constraint-propagation-plus-backtracking engine: naked
// single propagation, MRV cell selection with peer-pressure tie-breaking,
// LCV value ordering, and a trail of reversible operations instead of state
// cloning. One Solve call owns its state exclusively; a single DFSSolver
// may serve concurrent calls.
//
// Progress, when set, receives a Stats snapshot every ProgressEvery loop
// iterations. Iterations are also where ctx is checked: the grid state is
// consistent between them, so both make a safe external checkpoint.
type DFSSolver struct {
	Progress      func(ports.Stats)
	ProgressEvery int
}

func NewDFSSolver() *DFSSolver { return &DFSSolver{} }

// choicePoint records one branching decision: the cell, the value applied,
// the sibling candidates not yet tried, and the trail length at the moment
// of branching.
type choicePoint struct {
	r, c      int
	tried     uint8
	remaining mask
	mark      int
}

func (s *DFSSolver) Solve(ctx context.Context, sd *domain.Sudoku) (ports.Stats, error) {
	start := time.Now()
	var stats ports.Stats
	finish := func(err error) (ports.Stats, error) {
		stats.Duration = time.Since(start)
		return stats, err
	}

	if sd == nil || !sd.Geo.Valid() || !sd.Init.Conforms(sd.Geo) || !sd.Solution.Conforms(sd.Geo) {
		return finish(ErrInvalidPuzzle)
	}
	st, err := newGridState(sd.Geo, sd.Init)
	if err != nil {
		return finish(err)
	}

	n := sd.Geo.Size
	t := newTrail(4 * n * n)
	var stack []choicePoint
	every := s.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		if s.Progress != nil && iter%every == 0 {
			snap := stats
			snap.Duration = time.Since(start)
			s.Progress(snap)
		}

		forced, perr := st.propagate(t)
		stats.Propagated += forced
		conflict := perr != nil
		if !conflict {
			if st.solved() {
				st.copyInto(sd.Solution)
				return finish(nil)
			}
			r, c, count := st.selectCell()
			if count == 0 {
				// propagation should have caught this; checked for safety
				conflict = true
			} else {
				cands := st.candidates(r, c)
				v := st.lcv(r, c, cands)
				stack = append(stack, choicePoint{r: r, c: c, tried: v, remaining: cands &^ bitOf(v), mark: t.mark()})
				stats.Nodes++
				conflict = st.assign(t, r, c, v) != nil
			}
		}
		if !conflict {
			continue
		}

		// Unwind to the most recent choice point that still has untried
		// values; exclude the failed value there and retry.
		for {
			if len(stack) == 0 {
				return finish(ErrUnsolvable)
			}
			cp := &stack[len(stack)-1]
			t.undoTo(cp.mark, st)
			stats.Backtracks++
			if cp.remaining == 0 {
				stack = stack[:len(stack)-1]
				continue
			}
			st.banLocal(t, cp.r, cp.c, cp.tried)
			v := st.lcv(cp.r, cp.c, cp.remaining)
			cp.remaining &^= bitOf(v)
			cp.tried = v
			cp.mark = t.mark()
			stats.Nodes++
			if st.assign(t, cp.r, cp.c, v) == nil {
				break
			}
		}
	}
}
