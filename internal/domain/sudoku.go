package domain

import "fmt"

// Sudoku pairs an initial grid with its working solution. Solvers receive
// the pair, read Init, and fill Solution; givens are never overwritten.
type Sudoku struct {
	Geo      Geometry `json:"geometry"`
	Init     Grid     `json:"init"`
	Solution Grid     `json:"solution"`
}

// NewSudoku builds a Sudoku whose solution starts as a copy of the givens.
func NewSudoku(geo Geometry, init Grid) (*Sudoku, error) {
	if !geo.Valid() {
		return nil, fmt.Errorf("invalid geometry %dx%d/%dx%d", geo.Size, geo.Size, geo.BoxRows, geo.BoxCols)
	}
	if !init.Conforms(geo) {
		return nil, fmt.Errorf("grid does not conform to %dx%d geometry", geo.Size, geo.Size)
	}
	return &Sudoku{Geo: geo, Init: init, Solution: init.Clone()}, nil
}

// Reset discards any solver progress, restoring Solution to the givens.
func (s *Sudoku) Reset() {
	s.Solution.CopyFrom(s.Init)
}

func (s *Sudoku) String() string {
	return s.Solution.String()
}
