package domain

import "fmt"

// MaxSize caps the board edge so a cell's candidate set fits a 16-bit mask.
const MaxSize = 16

// Geometry describes an N×N board partitioned into BoxRows×BoxCols boxes,
// with N = BoxRows·BoxCols.
type Geometry struct {
	Size    int `json:"size"`
	BoxRows int `json:"boxRows"`
	BoxCols int `json:"boxCols"`
}

// NewGeometry builds a Geometry from box dimensions.
func NewGeometry(boxRows, boxCols int) (Geometry, error) {
	if boxRows < 1 || boxCols < 1 {
		return Geometry{}, fmt.Errorf("invalid box dimensions %dx%d", boxRows, boxCols)
	}
	n := boxRows * boxCols
	if n > MaxSize {
		return Geometry{}, fmt.Errorf("board size %d exceeds maximum %d", n, MaxSize)
	}
	return Geometry{Size: n, BoxRows: boxRows, BoxCols: boxCols}, nil
}

// Classic returns the canonical 9×9 geometry with 3×3 boxes.
func Classic() Geometry {
	return Geometry{Size: 9, BoxRows: 3, BoxCols: 3}
}

// Valid reports whether the geometry is internally consistent.
func (g Geometry) Valid() bool {
	return g.BoxRows >= 1 && g.BoxCols >= 1 &&
		g.Size == g.BoxRows*g.BoxCols && g.Size <= MaxSize
}

// BoxIndex returns the box number covering cell (r,c).
func (g Geometry) BoxIndex(r, c int) int {
	return (r/g.BoxRows)*(g.Size/g.BoxCols) + c/g.BoxCols
}

// BoxOrigin returns the top-left cell of the given box.
func (g Geometry) BoxOrigin(box int) (r, c int) {
	perRow := g.Size / g.BoxCols
	return (box / perRow) * g.BoxRows, (box % perRow) * g.BoxCols
}
