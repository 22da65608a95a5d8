package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
	"github.com/slava-nikulin/puzzle-solver/internal/ports"
	"github.com/slava-nikulin/puzzle-solver/internal/validator"
)

// maxBoxAttempts bounds how often a box is refilled before the repair moves
// back to an earlier box.
const maxBoxAttempts = 10

// StochasticSolver fills the boxes in order with random legal values. A box
// that dead-ends is cleared and refilled; after maxBoxAttempts failures the
// repair steps back through earlier boxes, and exhausting the first box
// restarts the whole pass. Approximate by nature: it keeps retrying until a
// full valid grid appears or ctx expires, so give it a deadline for grids
// that may be unsolvable.
type StochasticSolver struct {
	rng *rand.Rand
}

func NewStochasticSolver(seed int64) *StochasticSolver {
	return &StochasticSolver{rng: rand.New(rand.NewSource(seed))}
}

func (s *StochasticSolver) Solve(ctx context.Context, sd *domain.Sudoku) (ports.Stats, error) {
	start := time.Now()
	var stats ports.Stats
	finish := func(err error) (ports.Stats, error) {
		stats.Duration = time.Since(start)
		return stats, err
	}

	if sd == nil || !sd.Geo.Valid() || !sd.Init.Conforms(sd.Geo) || !sd.Solution.Conforms(sd.Geo) {
		return finish(ErrInvalidPuzzle)
	}
	// reuse the unit-mask scan for duplicate-given detection
	if _, err := newGridState(sd.Geo, sd.Init); err != nil {
		return finish(err)
	}
	sd.Reset()

	geo := sd.Geo
	boxes := geo.Size
	attempts := make([]int, boxes)
	cur := 0

outer:
	for {
		if err := ctx.Err(); err != nil {
			sd.Reset()
			return finish(err)
		}
		// Walk back from the failed box, clearing as we go, until a box
		// with attempts left is found. Exhausting box 0 restarts the pass.
		for t := cur; t >= 0; t-- {
			s.resetBox(sd, t)
			if attempts[t] < maxBoxAttempts {
				attempts[t]++
				if t == 0 && attempts[t] >= maxBoxAttempts {
					for i := range attempts {
						attempts[i] = 0
					}
					cur = 0
					continue outer
				}
				for i := t + 1; i < boxes; i++ {
					attempts[i] = 0
				}
				cur = t
				break
			}
		}
		for ; cur < boxes; cur++ {
			r0, c0 := geo.BoxOrigin(cur)
			for r := r0; r < r0+geo.BoxRows; r++ {
				for c := c0; c < c0+geo.BoxCols; c++ {
					if sd.Solution[r][c] != domain.Empty {
						continue
					}
					cands := s.freeValues(sd, r, c)
					if len(cands) == 0 {
						stats.Backtracks++
						continue outer
					}
					sd.Solution[r][c] = cands[s.rng.Intn(len(cands))]
					stats.Nodes++
				}
			}
		}
		break
	}

	if !validator.Check(geo, sd.Solution) {
		sd.Reset()
		return finish(ErrUnsolvable)
	}
	return finish(nil)
}

// resetBox clears every non-given cell of box t.
func (s *StochasticSolver) resetBox(sd *domain.Sudoku, t int) {
	r0, c0 := sd.Geo.BoxOrigin(t)
	for r := r0; r < r0+sd.Geo.BoxRows; r++ {
		for c := c0; c < c0+sd.Geo.BoxCols; c++ {
			if sd.Init[r][c] == domain.Empty {
				sd.Solution[r][c] = domain.Empty
			}
		}
	}
}

// freeValues lists the values not yet taken in the row, column, or box of
// (r,c).
func (s *StochasticSolver) freeValues(sd *domain.Sudoku, r, c int) []uint8 {
	geo := sd.Geo
	var taken mask
	for i := 0; i < geo.Size; i++ {
		if v := sd.Solution[r][i]; v != domain.Empty {
			taken |= bitOf(v)
		}
		if v := sd.Solution[i][c]; v != domain.Empty {
			taken |= bitOf(v)
		}
	}
	r0, c0 := geo.BoxOrigin(geo.BoxIndex(r, c))
	for pr := r0; pr < r0+geo.BoxRows; pr++ {
		for pc := c0; pc < c0+geo.BoxCols; pc++ {
			if v := sd.Solution[pr][pc]; v != domain.Empty {
				taken |= bitOf(v)
			}
		}
	}
	out := make([]uint8, 0, geo.Size)
	for v := uint8(1); v <= uint8(geo.Size); v++ {
		if taken&bitOf(v) == 0 {
			out = append(out, v)
		}
	}
	return out
}
