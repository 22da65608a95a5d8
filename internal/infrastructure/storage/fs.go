package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/slava-nikulin/puzzle-solver/internal/domain"
)

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string, d domain.Difficulty) string {
	return filepath.Join(s.dir, d.String(), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	target := s.pathFor(p.ID, p.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	type cand struct {
		path   string
		diff   domain.Difficulty
		legacy bool
	}
	candidates := []cand{
		{filepath.Join(s.dir, "easy", id+".json"), domain.Easy, false},
		{filepath.Join(s.dir, "medium", id+".json"), domain.Medium, false},
		{filepath.Join(s.dir, "hard", id+".json"), domain.Hard, false},
		{filepath.Join(s.dir, "expert", id+".json"), domain.Expert, false},
		{filepath.Join(s.dir, id+".json"), 0, true}, // legacy flat layout
	}
	var chosen *cand
	var data []byte
	for i := range candidates {
		c := candidates[i]
		if _, statErr := os.Stat(c.path); statErr == nil {
			b, err := os.ReadFile(c.path)
			if err != nil {
				return nil, err
			}
			data = b
			chosen = &c
			break
		}
	}
	if data == nil {
		return nil, os.ErrNotExist
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	// If difficulty missing, infer from the folder we loaded from (legacy
	// defaults to Medium). Records predating Geometry get the classic 9×9.
	if out.Difficulty == 0 {
		if chosen != nil && !chosen.legacy {
			out.Difficulty = chosen.diff
		} else {
			out.Difficulty = domain.Medium
		}
	}
	if !out.Geometry.Valid() {
		out.Geometry = domain.Classic()
	}
	return &out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	type m struct {
		ID         string            `json:"id"`
		Name       string            `json:"name,omitempty"`
		Difficulty domain.Difficulty `json:"difficulty"`
		CreatedAt  int64             `json:"createdAt"`
	}

	readDirMeta := func(dir string, fallback domain.Difficulty, out []domain.PuzzleMeta) ([]domain.PuzzleMeta, error) {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return out, nil
			}
			return out, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			dd := mm.Difficulty
			if dd == 0 {
				dd = fallback // infer from folder if absent
			}
			out = append(out, domain.PuzzleMeta{
				ID:         mm.ID,
				Name:       mm.Name,
				Difficulty: dd,
				CreatedAt:  mm.CreatedAt,
			})
		}
		return out, nil
	}

	var out []domain.PuzzleMeta
	var err error
	for _, d := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert} {
		out, err = readDirMeta(filepath.Join(s.dir, d.String()), d, out)
		if err != nil {
			return nil, err
		}
	}
	// legacy flat files directly under s.dir
	out, _ = readDirMeta(s.dir, domain.Medium, out)
	return out, nil
}
