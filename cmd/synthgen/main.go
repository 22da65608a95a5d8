package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
	"github.com/slava-nikulin/puzzle-solver/internal/solver"
	"github.com/slava-nikulin/puzzle-solver/internal/synth"
)

func main() {
	out := flag.String("out", "dataset9", "output directory")
	count := flag.Int("count", 1000, "number of items to generate")
	boxRows := flag.Int("box-rows", 3, "box height in cells")
	boxCols := flag.Int("box-cols", 3, "box width in cells")
	fontsDir := flag.String("fonts", "assets/fonts", "directory with .ttf/.otf fonts")
	baseSeed := flag.Uint64("seed", 0, "base seed (0 = current time)")
	imgSize := flag.Int("img", 512, "image edge in px")
	margin := flag.Int("margin", 16, "board margin in px")
	fontPx := flag.Float64("font-px", 48, "digit size in px")
	highlight := flag.Bool("highlight", true, "add row/col/box/cell highlights")
	cellGrid := flag.Bool("cell-grid", true, "draw thin in-box cell lines")
	solved := flag.Bool("solved", false, "emit solved grids instead of random labels")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	lvl := slog.LevelInfo
	switch *levelStr {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))

	geo, err := domain.NewGeometry(*boxRows, *boxCols)
	if err != nil {
		logger.Error("bad geometry", "err", err)
		os.Exit(2)
	}
	if *baseSeed == 0 {
		*baseSeed = uint64(time.Now().UnixNano())
	}

	cfg := synth.Config{
		ImageSize:     *imgSize,
		Margin:        *margin,
		LineThin:      2,
		LineThick:     5,
		FontPx:        *fontPx,
		DoCellGrid:    *cellGrid,
		WithHighlight: *highlight,
	}
	fonts, err := synth.LoadFonts(*fontsDir, cfg.FontPx, geo.Size)
	if err != nil {
		logger.Error("font loading failed", "dir", *fontsDir, "err", err)
		os.Exit(1)
	}
	writer, err := synth.NewWriter(*out)
	if err != nil {
		logger.Error("output setup failed", "dir", *out, "err", err)
		os.Exit(1)
	}
	gen := synth.NewItemGenerator(geo, cfg, fonts, writer)

	start := time.Now()
	emitted := 0
	for id := uint32(0); id < uint32(*count); id++ {
		seed := *baseSeed + uint64(id)
		var grid domain.Grid
		if *solved {
			grid = solvedGrid(geo, seed)
		} else {
			grid = synth.RandomGrid(geo, seed)
		}
		if err := gen.Emit(id, seed, grid); err != nil {
			logger.Error("emit failed", "id", id, "err", err)
			writer.Close()
			os.Exit(1)
		}
		emitted++
		if emitted%500 == 0 {
			logger.Info("progress", "items", emitted, "elapsed", time.Since(start).Round(time.Second))
		}
	}
	if err := writer.Close(); err != nil {
		logger.Error("finalizing labels.jsonl failed", "err", err)
		os.Exit(1)
	}
	logger.Info("done", "items", emitted, "out", *out, "dur", time.Since(start).Round(time.Millisecond))
}

// solvedGrid produces a full valid grid by handing a sparse random seed
// grid to the engine; a conflicting or unsolvable draw falls back to the
// empty board, which always solves.
func solvedGrid(geo domain.Geometry, seed uint64) domain.Grid {
	rng := rand.New(rand.NewSource(int64(seed)))
	n := geo.Size
	init := domain.NewGrid(n)
	// a few random seeds vary the solutions between items
	engine := solver.NewStochasticSolver(int64(seed))
	for tries := 0; tries < 4; tries++ {
		sd, err := domain.NewSudoku(geo, init)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_, serr := engine.Solve(ctx, sd)
			cancel()
			if serr == nil {
				return sd.Solution
			}
		}
		// reseed with a single random given and retry
		init = domain.NewGrid(n)
		init[rng.Intn(n)][rng.Intn(n)] = uint8(1 + rng.Intn(n))
	}
	sd, _ := domain.NewSudoku(geo, domain.NewGrid(n))
	_, _ = solver.NewDFSSolver().Solve(context.Background(), sd)
	return sd.Solution
}
