package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "github.com/slava-nikulin/puzzle-solver/internal/adapters/http"
	wsadapter "github.com/slava-nikulin/puzzle-solver/internal/adapters/ws"
	"github.com/slava-nikulin/puzzle-solver/internal/generator"
	"github.com/slava-nikulin/puzzle-solver/internal/hint"
	"github.com/slava-nikulin/puzzle-solver/internal/infrastructure/storage"
	"github.com/slava-nikulin/puzzle-solver/internal/solver"
	"github.com/slava-nikulin/puzzle-solver/internal/usecase"
	"github.com/slava-nikulin/puzzle-solver/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	solverKind := flag.String("solver", "dfs", "solver to use: dfs|stochastic")
	seed := flag.Int64("seed", 0, "seed for the stochastic solver (0 = current time)")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	_ = os.MkdirAll(*persist, 0o755)

	kind, err := solver.ParseKind(*solverKind)
	if err != nil {
		logger.Error("bad -solver flag", "err", err)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	s := solver.New(kind, *seed)

	// Wire providers → use cases → adapters
	g := generator.New(s)
	v := validator.New()
	st := storage.NewFS(*persist)
	hin := hint.NewSingles()
	uc := usecase.NewService(s, g, v, hin, st)
	h := httpadapter.New(uc)
	live := wsadapter.New(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": "puzzle-solver",
			"api": []string{
				"/api/solve", "/api/solve/live", "/api/validate", "/api/hint",
				"/api/generate", "/api/save", "/api/load", "/api/list",
			},
		})
	})
	h.Register(mux)
	live.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "persist", *persist, "solver", *solverKind)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
