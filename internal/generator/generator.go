package generator

import "github.com/slava-nikulin/puzzle-solver/internal/ports"

// SolvableGenerator creates puzzles that the provided Solver can solve.
// Carving removes givens from a full valid grid, which preserves
// solvability by construction; uniqueness of the solution is not promised.
type SolvableGenerator struct {
	Solver ports.Solver
}

// New wires a generator that uses the given solver as its final
// solvability gate.
func New(s ports.Solver) *SolvableGenerator {
	return &SolvableGenerator{Solver: s}
}
