package ports

import (
	"context"
	"time"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	// Nodes counts branch assignments tried by the search.
	Nodes int
	// Backtracks counts choice-point unwinds.
	Backtracks int
	// Propagated counts forced (naked single) assignments.
	Propagated int
	Duration   time.Duration
}

// Solver fills s.Solution from s.Init, or reports why it cannot.
type Solver interface {
	Solve(ctx context.Context, s *domain.Sudoku) (Stats, error)
}

// Generator creates new puzzles at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, geo domain.Geometry, seed int64, difficulty domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator performs fast constraint checks (row/col/box).
type Validator interface {
	Validate(ctx context.Context, geo domain.Geometry, g domain.Grid) (ok bool, conflicts []domain.CellCoord, err error)
}

// Hinter returns the next logical step up to a max strategy tier.
type Hinter interface {
	Hint(ctx context.Context, geo domain.Geometry, g domain.Grid, max domain.StrategyTier) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
