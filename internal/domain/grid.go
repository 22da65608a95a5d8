package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Empty marks an unassigned cell.
const Empty uint8 = 0

// Grid is a row-major N×N matrix of cell values, 0 for empty, 1..N for
// placed values.
type Grid [][]uint8

// NewGrid allocates an empty n×n grid backed by a single slice.
func NewGrid(n int) Grid {
	backing := make([]uint8, n*n)
	g := make(Grid, n)
	for r := range g {
		g[r] = backing[r*n : (r+1)*n : (r+1)*n]
	}
	return g
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	out := NewGrid(len(g))
	for r := range g {
		copy(out[r], g[r])
	}
	return out
}

// CopyFrom overwrites g with the values of src. Dimensions must match.
func (g Grid) CopyFrom(src Grid) {
	for r := range g {
		copy(g[r], src[r])
	}
}

// Conforms reports whether the grid has geo's dimensions and every value
// is 0..N.
func (g Grid) Conforms(geo Geometry) bool {
	if len(g) != geo.Size {
		return false
	}
	for _, row := range g {
		if len(row) != geo.Size {
			return false
		}
		for _, v := range row {
			if int(v) > geo.Size {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of unassigned cells.
func (g Grid) EmptyCount() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v == Empty {
				n++
			}
		}
	}
	return n
}

// MarshalJSON encodes the grid as nested arrays of numbers. Without it the
// []uint8 rows would serialize as base64 strings.
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]int, len(g))
	for r, row := range g {
		rows[r] = make([]int, len(row))
		for c, v := range row {
			rows[r][c] = int(v)
		}
	}
	return json.Marshal(rows)
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	out := make(Grid, len(rows))
	for r, row := range rows {
		out[r] = make([]uint8, len(row))
		for c, v := range row {
			if v < 0 || v > MaxSize {
				return fmt.Errorf("cell (%d,%d) value %d out of range", r, c, v)
			}
			out[r][c] = uint8(v)
		}
	}
	*g = out
	return nil
}

// String renders the grid one row per line, values space-separated.
func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		for _, v := range row {
			fmt.Fprintf(&sb, "%d ", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
