package validator

import (
	"context"
	"testing"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

var solved9 = [][]uint8{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

func gridOf(rows [][]uint8) domain.Grid {
	g := domain.NewGrid(len(rows))
	for r := range rows {
		copy(g[r], rows[r])
	}
	return g
}

func TestCheckAcceptsSolvedGrid(t *testing.T) {
	g := gridOf(solved9)
	if !Check(domain.Classic(), g) {
		t.Fatal("Check rejected a valid solution")
	}
	// checking is pure; a second run must agree
	if !Check(domain.Classic(), g) {
		t.Fatal("repeated Check disagreed")
	}
}

func TestCheckRejectsIncompleteGrid(t *testing.T) {
	g := gridOf(solved9)
	g[4][4] = domain.Empty
	if Check(domain.Classic(), g) {
		t.Fatal("Check accepted a grid with an empty cell")
	}
}

func TestCheckRejectsBoxConflict(t *testing.T) {
	g := gridOf(solved9)
	// swap two cells of the same row across a box border: rows stay
	// permutations, the boxes and columns do not
	g[0][2], g[0][3] = g[0][3], g[0][2]
	if Check(domain.Classic(), g) {
		t.Fatal("Check accepted a grid with box conflicts")
	}
}

func TestCheckHonorsBoxShape(t *testing.T) {
	geo, err := domain.NewGeometry(2, 3)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	g := gridOf([][]uint8{
		{1, 2, 3, 4, 5, 6},
		{4, 5, 6, 1, 2, 3},
		{2, 3, 1, 5, 6, 4},
		{5, 6, 4, 2, 3, 1},
		{3, 1, 2, 6, 4, 5},
		{6, 4, 5, 3, 1, 2},
	})
	if !Check(geo, g) {
		t.Fatal("Check rejected a valid 6x6 solution")
	}
	// same rows but valid only under 3x2 boxes
	wrong := gridOf([][]uint8{
		{1, 2, 3, 4, 5, 6},
		{2, 3, 4, 5, 6, 1},
		{3, 4, 5, 6, 1, 2},
		{4, 5, 6, 1, 2, 3},
		{5, 6, 1, 2, 3, 4},
		{6, 1, 2, 3, 4, 5},
	})
	if Check(geo, wrong) {
		t.Fatal("Check ignored the 2x3 box constraint")
	}
}

func TestValidateFlagsConflicts(t *testing.T) {
	v := New()
	geo := domain.Classic()

	g := domain.NewGrid(9)
	g[0][0] = 5
	g[8][8] = 5
	ok, conf, err := v.Validate(context.Background(), geo, g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok || len(conf) != 0 {
		t.Fatalf("want no conflicts, got %v", conf)
	}

	g[0][8] = 5 // row 0 and col 8 now both hold two fives
	ok, conf, err = v.Validate(context.Background(), geo, g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ok || len(conf) != 2 {
		t.Fatalf("want 2 conflicts, got ok=%v %v", ok, conf)
	}
}

func TestValidateAcceptsPartialGrid(t *testing.T) {
	g := gridOf(solved9)
	for r := 3; r < 9; r++ {
		for c := 0; c < 9; c++ {
			g[r][c] = domain.Empty
		}
	}
	ok, conf, err := New().Validate(context.Background(), domain.Classic(), g)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok {
		t.Fatalf("partial grid flagged: %v", conf)
	}
}
