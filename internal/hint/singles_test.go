package hint

import (
	"context"
	"testing"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

func TestHintFindsNakedSingle(t *testing.T) {
	g := domain.NewGrid(9)
	// row 0 holds 1..8; (0,8) must be 9
	for c := 0; c < 8; c++ {
		g[0][c] = uint8(c + 1)
	}
	h, ok, err := NewSingles().Hint(context.Background(), domain.Classic(), g, domain.StrategySingles)
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if !ok {
		t.Fatal("no hint found")
	}
	if h.Value != 9 || len(h.Cells) != 1 || h.Cells[0] != (domain.CellCoord{Row: 0, Col: 8}) {
		t.Fatalf("unexpected hint %+v", h)
	}
	if h.Strategy != domain.StrategySingles {
		t.Fatalf("unexpected strategy %v", h.Strategy)
	}
}

func TestHintUsesBoxConstraint(t *testing.T) {
	geo, err := domain.NewGeometry(2, 3)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	g := domain.NewGrid(6)
	// box 0 minus (1,2), row 1 and col 2 contribute the rest
	g[0][0], g[0][1], g[0][2] = 1, 2, 3
	g[1][0], g[1][1] = 4, 5
	if _, ok, _ := NewSingles().Hint(context.Background(), geo, g, domain.StrategySingles); !ok {
		t.Fatal("no hint for a cell pinned by its box")
	}
}

func TestHintEmptyGridHasNoSingles(t *testing.T) {
	_, ok, err := NewSingles().Hint(context.Background(), domain.Classic(), domain.NewGrid(9), domain.StrategySingles)
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if ok {
		t.Fatal("hint produced on an empty grid")
	}
}

func TestHintRespectsTierCeiling(t *testing.T) {
	g := domain.NewGrid(9)
	for c := 0; c < 8; c++ {
		g[0][c] = uint8(c + 1)
	}
	_, ok, err := NewSingles().Hint(context.Background(), domain.Classic(), g, domain.StrategyTier(-1))
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if ok {
		t.Fatal("hint returned despite tier ceiling below singles")
	}
}
