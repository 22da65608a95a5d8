package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
	"github.com/slava-nikulin/puzzle-solver/internal/ports"
	"github.com/slava-nikulin/puzzle-solver/internal/solver"
)

// Handler streams solver progress over a websocket. The client sends one
// board request, receives progress frames sampled at engine checkpoints,
// and finally a done frame with the solution or an error frame.
type Handler struct {
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/solve/live", h.handleLive)
}

type liveReq struct {
	Board   domain.Grid `json:"board"`
	BoxRows int         `json:"boxRows,omitempty"`
	BoxCols int         `json:"boxCols,omitempty"`
}

type liveMsg struct {
	Type       string      `json:"type"` // progress | done | error
	Nodes      int         `json:"nodes,omitempty"`
	Backtracks int         `json:"backtracks,omitempty"`
	Propagated int         `json:"propagated,omitempty"`
	DurationMs int64       `json:"durationMs,omitempty"`
	Board      domain.Grid `json:"board,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func progressMsg(st ports.Stats) liveMsg {
	return liveMsg{
		Type:       "progress",
		Nodes:      st.Nodes,
		Backtracks: st.Backtracks,
		Propagated: st.Propagated,
		DurationMs: st.Duration.Milliseconds(),
	}
}

func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	var req liveReq
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(liveMsg{Type: "error", Error: "invalid request: " + err.Error()})
		return
	}
	geo := domain.Classic()
	if req.BoxRows != 0 || req.BoxCols != 0 {
		geo, err = domain.NewGeometry(req.BoxRows, req.BoxCols)
		if err != nil {
			_ = conn.WriteJSON(liveMsg{Type: "error", Error: err.Error()})
			return
		}
	}
	sd, err := domain.NewSudoku(geo, req.Board)
	if err != nil {
		_ = conn.WriteJSON(liveMsg{Type: "error", Error: err.Error()})
		return
	}

	// The hook runs on the solver goroutine; drop snapshots instead of
	// blocking the search on a slow client.
	progress := make(chan ports.Stats, 16)
	type outcome struct {
		stats ports.Stats
		err   error
	}
	done := make(chan outcome, 1)

	engine := &solver.DFSSolver{
		ProgressEvery: 512,
		Progress: func(st ports.Stats) {
			select {
			case progress <- st:
			default:
			}
		},
	}
	go func() {
		st, err := engine.Solve(r.Context(), sd)
		done <- outcome{stats: st, err: err}
	}()

	for {
		select {
		case st := <-progress:
			if err := conn.WriteJSON(progressMsg(st)); err != nil {
				return
			}
		case res := <-done:
			if res.err != nil {
				_ = conn.WriteJSON(liveMsg{
					Type:       "error",
					Error:      res.err.Error(),
					Nodes:      res.stats.Nodes,
					Backtracks: res.stats.Backtracks,
					Propagated: res.stats.Propagated,
					DurationMs: res.stats.Duration.Milliseconds(),
				})
				return
			}
			_ = conn.WriteJSON(liveMsg{
				Type:       "done",
				Board:      sd.Solution,
				Nodes:      res.stats.Nodes,
				Backtracks: res.stats.Backtracks,
				Propagated: res.stats.Propagated,
				DurationMs: res.stats.Duration.Milliseconds(),
			})
			return
		}
	}
}
