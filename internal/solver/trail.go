package solver

import "github.com/slava-nikulin/puzzle-solver/internal/domain"

// The trail is an append-only log of reversible operations. Undoing it in
// reverse order from any mark restores the grid state exactly, which makes
// backtracking cheap: no per-branch cloning.

type opKind uint8

const (
	opCell opKind = iota // grid-cell write
	opUnit               // unit taken-mask update
	opMeta               // per-cell forbidden-mask/count update
)

type unitKind uint8

const (
	unitRow unitKind = iota
	unitCol
	unitBox
)

// trailOp carries the previous value of one mutated location. For opUnit,
// r holds the unit index and unit says which array it belongs to.
type trailOp struct {
	kind      opKind
	unit      unitKind
	r, c      uint8
	prevCell  uint8
	prevMask  mask
	prevAvail uint8
}

type trail struct {
	ops []trailOp
}

func newTrail(capacity int) *trail {
	return &trail{ops: make([]trailOp, 0, capacity)}
}

func (t *trail) push(op trailOp) { t.ops = append(t.ops, op) }

// mark returns the current trail length, to be passed to undoTo later.
func (t *trail) mark() int { return len(t.ops) }

// undoTo replays the log backwards until only mark entries remain,
// restoring every mutated cell and mask of st to its prior value.
func (t *trail) undoTo(mark int, st *gridState) {
	for i := len(t.ops) - 1; i >= mark; i-- {
		op := t.ops[i]
		switch op.kind {
		case opCell:
			if st.cells[op.r][op.c] != domain.Empty && op.prevCell == domain.Empty {
				st.emptyCount++
			}
			st.cells[op.r][op.c] = op.prevCell
		case opUnit:
			switch op.unit {
			case unitRow:
				st.rowTaken[op.r] = op.prevMask
			case unitCol:
				st.colTaken[op.r] = op.prevMask
			default:
				st.boxTaken[op.r] = op.prevMask
			}
		default:
			st.forbidden[op.r][op.c] = op.prevMask
			st.avail[op.r][op.c] = op.prevAvail
		}
	}
	t.ops = t.ops[:mark]
}
