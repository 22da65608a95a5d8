package domain

import "testing"

func TestNewGeometry(t *testing.T) {
	geo, err := NewGeometry(3, 3)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if geo != Classic() {
		t.Fatalf("3x3 boxes = %+v, want classic", geo)
	}

	geo, err = NewGeometry(2, 3)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if geo.Size != 6 {
		t.Fatalf("2x3 boxes give size %d", geo.Size)
	}

	if _, err := NewGeometry(0, 3); err == nil {
		t.Fatal("accepted zero box rows")
	}
	if _, err := NewGeometry(5, 4); err == nil {
		t.Fatal("accepted a 20x20 board")
	}
	if _, err := NewGeometry(4, 4); err != nil {
		t.Fatalf("rejected 16x16: %v", err)
	}
}

func TestBoxIndexAndOrigin(t *testing.T) {
	geo := Classic()
	if got := geo.BoxIndex(0, 0); got != 0 {
		t.Fatalf("BoxIndex(0,0) = %d", got)
	}
	if got := geo.BoxIndex(4, 4); got != 4 {
		t.Fatalf("BoxIndex(4,4) = %d", got)
	}
	if got := geo.BoxIndex(8, 8); got != 8 {
		t.Fatalf("BoxIndex(8,8) = %d", got)
	}
	// origin of a box contains every cell mapping to that box
	for box := 0; box < geo.Size; box++ {
		r0, c0 := geo.BoxOrigin(box)
		for r := r0; r < r0+geo.BoxRows; r++ {
			for c := c0; c < c0+geo.BoxCols; c++ {
				if geo.BoxIndex(r, c) != box {
					t.Fatalf("cell (%d,%d) maps to box %d, want %d", r, c, geo.BoxIndex(r, c), box)
				}
			}
		}
	}
}

func TestBoxIndexNonSquare(t *testing.T) {
	geo, err := NewGeometry(2, 3)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	// 2-row, 3-col boxes: two boxes per band, three bands
	if got := geo.BoxIndex(0, 3); got != 1 {
		t.Fatalf("BoxIndex(0,3) = %d", got)
	}
	if got := geo.BoxIndex(2, 0); got != 2 {
		t.Fatalf("BoxIndex(2,0) = %d", got)
	}
	if got := geo.BoxIndex(5, 5); got != 5 {
		t.Fatalf("BoxIndex(5,5) = %d", got)
	}
	for box := 0; box < geo.Size; box++ {
		r0, c0 := geo.BoxOrigin(box)
		if geo.BoxIndex(r0, c0) != box {
			t.Fatalf("BoxOrigin(%d) = (%d,%d) maps back to %d", box, r0, c0, geo.BoxIndex(r0, c0))
		}
	}
}

func TestGridConforms(t *testing.T) {
	geo := Classic()
	g := NewGrid(9)
	if !g.Conforms(geo) {
		t.Fatal("empty 9x9 should conform")
	}
	g[3][3] = 9
	if !g.Conforms(geo) {
		t.Fatal("value 9 should conform")
	}
	g[3][3] = 10
	if g.Conforms(geo) {
		t.Fatal("value 10 accepted on a 9x9 board")
	}
	if NewGrid(6).Conforms(geo) {
		t.Fatal("6x6 grid accepted under classic geometry")
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(4)
	g[1][2] = 3
	c := g.Clone()
	c[1][2] = 4
	if g[1][2] != 3 {
		t.Fatal("Clone shares backing storage")
	}
	if c.EmptyCount() != 15 {
		t.Fatalf("EmptyCount = %d", c.EmptyCount())
	}
}
