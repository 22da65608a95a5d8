package solver

import (
	"fmt"
	"strings"

	"github.com/slava-nikulin/puzzle-solver/internal/ports"
)

// Kind selects a solving algorithm.
type Kind int

const (
	// KindDFS is the systematic propagation-plus-backtracking engine.
	KindDFS Kind = iota
	// KindStochastic is the randomized box-by-box repair solver.
	KindStochastic
)

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dfs":
		return KindDFS, nil
	case "stochastic", "random":
		return KindStochastic, nil
	default:
		return KindDFS, fmt.Errorf("unknown solver kind %q", s)
	}
}

// New returns the solver implementation for kind. Only stochastic solvers
// consume the seed.
func New(kind Kind, seed int64) ports.Solver {
	switch kind {
	case KindStochastic:
		return NewStochasticSolver(seed)
	default:
		return NewDFSSolver()
	}
}
