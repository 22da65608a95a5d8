package synth

import (
	"bufio"
	"encoding/json"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

func testFonts() *FontCache {
	return NewFontCacheFromFace("7x13", basicfont.Face7x13, 9)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ImageSize = 128
	cfg.Margin = 4
	cfg.FontPx = 13
	return cfg
}

func TestCellBoxesTileBoard(t *testing.T) {
	geo := domain.Classic()
	cfg := testConfig()
	rd := NewRenderer(geo, cfg, testFonts())
	boxes := rd.CellBoxes()

	if len(boxes) != 9 || len(boxes[0]) != 9 {
		t.Fatalf("boxes shape %dx%d", len(boxes), len(boxes[0]))
	}
	board := uint32(cfg.ImageSize - 2*cfg.Margin)
	m := uint32(cfg.Margin)
	if boxes[0][0].X != m || boxes[0][0].Y != m {
		t.Fatalf("first box at (%d,%d), want margin", boxes[0][0].X, boxes[0][0].Y)
	}
	// each row spans the full board width with no gaps or overlaps
	for r := 0; r < 9; r++ {
		x := m
		for c := 0; c < 9; c++ {
			b := boxes[r][c]
			if b.X != x {
				t.Fatalf("box (%d,%d) X=%d, want %d", r, c, b.X, x)
			}
			x += b.W
		}
		if x != m+board {
			t.Fatalf("row %d covers %d px, want %d", r, x-m, board)
		}
	}
	// last column/row absorb the rounding remainder
	if boxes[0][8].W < boxes[0][0].W {
		t.Fatalf("last column narrower than first: %d < %d", boxes[0][8].W, boxes[0][0].W)
	}
	if boxes[8][0].Y+boxes[8][0].H != m+board {
		t.Fatal("last row does not reach the board edge")
	}
}

func TestRandomGridDeterministic(t *testing.T) {
	geo := domain.Classic()
	a := RandomGrid(geo, 7)
	b := RandomGrid(geo, 7)
	if a.String() != b.String() {
		t.Fatal("same seed produced different grids")
	}
	empties, filled := 0, 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			switch v := a[r][c]; {
			case v == domain.Empty:
				empties++
			case v >= 1 && v <= 9:
				filled++
			default:
				t.Fatalf("value %d out of range at (%d,%d)", v, r, c)
			}
		}
	}
	if empties == 0 || filled == 0 {
		t.Fatalf("degenerate grid: %d empty, %d filled", empties, filled)
	}
}

func TestRenderHighlightToggle(t *testing.T) {
	geo := domain.Classic()
	grid := RandomGrid(geo, 3)

	cfg := testConfig()
	img, boxes, hl := NewRenderer(geo, cfg, testFonts()).Render(grid, rand.New(rand.NewSource(1)))
	if img.Bounds().Dx() != cfg.ImageSize || img.Bounds().Dy() != cfg.ImageSize {
		t.Fatalf("image bounds %v", img.Bounds())
	}
	if len(boxes) != 9 {
		t.Fatalf("boxes shape %d", len(boxes))
	}
	if hl == nil {
		t.Fatal("highlight missing despite WithHighlight")
	}
	if hl.Row < 0 || hl.Row >= 9 || hl.Box[0] >= 3 || hl.Box[1] >= 3 {
		t.Fatalf("highlight out of range: %+v", hl)
	}

	cfg.WithHighlight = false
	if _, _, hl := NewRenderer(geo, cfg, testFonts()).Render(grid, rand.New(rand.NewSource(1))); hl != nil {
		t.Fatalf("highlight %+v produced while disabled", hl)
	}
}

func TestWriterDatasetLayout(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	geo := domain.Classic()
	gen := NewItemGenerator(geo, testConfig(), testFonts(), w)
	for id := uint32(0); id < 3; id++ {
		if err := gen.Emit(id, uint64(id)+10, RandomGrid(geo, uint64(id)+10)); err != nil {
			t.Fatalf("Emit(%d): %v", id, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// PNGs decode and match the configured size
	f, err := os.Open(filepath.Join(dir, "images", "000002.png"))
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Fatalf("png width %d", img.Bounds().Dx())
	}

	// labels.jsonl holds one record per item
	lf, err := os.Open(filepath.Join(dir, "labels.jsonl"))
	if err != nil {
		t.Fatalf("open labels: %v", err)
	}
	defer lf.Close()
	sc := bufio.NewScanner(lf)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	var recs []Record
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("%d records, want 3", len(recs))
	}
	for i, rec := range recs {
		if rec.Schema != SchemaV1 {
			t.Fatalf("record %d schema %q", i, rec.Schema)
		}
		if rec.Image != ImagePath(uint32(i)) {
			t.Fatalf("record %d image %q", i, rec.Image)
		}
		if len(rec.Labels) != 81 || len(rec.Boxes) != 81 {
			t.Fatalf("record %d: %d labels, %d boxes", i, len(rec.Labels), len(rec.Boxes))
		}
		if rec.Dim != 9 || rec.Seed != uint64(i)+10 {
			t.Fatalf("record %d meta: dim=%d seed=%d", i, rec.Dim, rec.Seed)
		}
	}
}

func TestPaletteStaysReadable(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		pal := NewPalette(rng)
		if pal.Background.R < 235 {
			t.Fatalf("background too dark: %+v", pal.Background)
		}
		if pal.Border.R >= 40 {
			t.Fatalf("ink too light: %+v", pal.Border)
		}
		for _, h := range []uint8{pal.HighlightRow.R, pal.HighlightCol.G, pal.HighlightBox.B} {
			if h < 170 {
				t.Fatalf("highlight channel %d below pastel floor", h)
			}
		}
	}
}
