package synth

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Writer owns the dataset layout on disk: <dir>/images/NNNNNN.png files and
// one <dir>/labels.jsonl appended through a large buffer, flushed and
// synced on Close.
type Writer struct {
	dir    string
	labels *os.File
	buf    *bufio.Writer
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, "labels.jsonl"))
	if err != nil {
		return nil, err
	}
	return &Writer{dir: dir, labels: f, buf: bufio.NewWriterSize(f, 8<<20)}, nil
}

// ImagePath returns the path of item id relative to the dataset root.
func ImagePath(id uint32) string {
	return fmt.Sprintf("images/%06d.png", id)
}

func (w *Writer) SavePNG(img image.Image, id uint32) error {
	f, err := os.Create(filepath.Join(w.dir, ImagePath(id)))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w *Writer) WriteRecord(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(data); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.labels.Close()
		return err
	}
	if err := w.labels.Sync(); err != nil {
		w.labels.Close()
		return err
	}
	return w.labels.Close()
}
