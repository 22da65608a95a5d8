package solver

import "errors"

// ErrInvalidPuzzle reports malformed input: wrong dimensions, values out of
// range, or a duplicate among the givens of a row, column, or box.
var ErrInvalidPuzzle = errors.New("invalid puzzle")

// ErrUnsolvable reports an exhausted search: no assignment of the empty
// cells satisfies the row/column/box constraints.
var ErrUnsolvable = errors.New("puzzle is unsolvable")
