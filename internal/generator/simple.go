package generator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
	"github.com/slava-nikulin/puzzle-solver/internal/ports"
)

// errFillFailed reports that the random fill exhausted its search without
// producing a full grid; distinct from caller cancellation.
var errFillFailed = errors.New("generator: could not fill a full grid")

// givensFraction maps a difficulty to the share of cells left as givens.
// For the classic 9×9 these land at roughly 40/34/28/24 givens.
func givensFraction(d domain.Difficulty) float64 {
	switch d {
	case domain.Easy:
		return 0.50
	case domain.Medium:
		return 0.42
	case domain.Hard:
		return 0.35
	default:
		return 0.30 // Expert
	}
}

// Generate creates a solvable puzzle from seed at the target difficulty:
// a full random grid is carved down to the difficulty's givens count, then
// the wired solver confirms the result and its stats are reported.
func (g *SolvableGenerator) Generate(ctx context.Context, geo domain.Geometry, seed int64, diff domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	n := geo.Size

	// 1) full random solution
	full := domain.NewGrid(n)
	if !fillRandom(ctx, rng, geo, full) {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{}, err
		}
		return nil, ports.Stats{}, errFillFailed
	}

	// 2) carve out clues down to the target
	puz := full.Clone()
	positions := make([]int, n*n)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	target := int(float64(n*n) * givensFraction(diff))
	remaining := n * n
	for _, pos := range positions {
		if remaining <= target {
			break
		}
		puz[pos/n][pos%n] = domain.Empty
		remaining--
	}

	// 3) confirm the solver agrees the carved grid is solvable
	sd, err := domain.NewSudoku(geo, puz)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	st, err := g.Solver.Solve(ctx, sd)
	if err != nil {
		return nil, st, err
	}

	p := &domain.Puzzle{
		Seed:       seed,
		Difficulty: diff,
		Geometry:   geo,
		Givens:     puz,
		CreatedAt:  time.Now().UnixNano(),
	}
	st.Duration = time.Since(start)
	return p, st, nil
}

// fillRandom solves an empty grid into a full valid solution by trying the
// values of each cell in random order.
func fillRandom(ctx context.Context, rng *rand.Rand, geo domain.Geometry, grid domain.Grid) bool {
	n := geo.Size
	nums := make([]uint8, n)
	for i := range nums {
		nums[i] = uint8(i + 1)
	}
	var dfs func(r, c int) bool
	dfs = func(r, c int) bool {
		if ctx.Err() != nil {
			return false
		}
		if r == n {
			return true
		}
		nr, nc := r, c+1
		if nc == n {
			nr, nc = r+1, 0
		}
		rng.Shuffle(n, func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
		// deeper frames reshuffle nums in place; iterate a frame-local copy
		// so every value is tried exactly once at this cell
		order := append([]uint8(nil), nums...)
		for _, v := range order {
			if allowed(geo, grid, r, c, v) {
				grid[r][c] = v
				if dfs(nr, nc) {
					return true
				}
				grid[r][c] = domain.Empty
			}
		}
		return false
	}
	return dfs(0, 0)
}

// allowed mirrors the row/col/box checks locally for the generator.
func allowed(geo domain.Geometry, g domain.Grid, r, c int, v uint8) bool {
	for i := 0; i < geo.Size; i++ {
		if g[r][i] == v || g[i][c] == v {
			return false
		}
	}
	r0, c0 := geo.BoxOrigin(geo.BoxIndex(r, c))
	for pr := r0; pr < r0+geo.BoxRows; pr++ {
		for pc := c0; pc < c0+geo.BoxCols; pc++ {
			if g[pr][pc] == v {
				return false
			}
		}
	}
	return true
}
