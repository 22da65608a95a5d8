package synth

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Face is one renderable typeface at a fixed pixel size, with the glyph
// metrics the renderer needs precomputed: layout height, ascent, and the
// tight width of each value's text.
type Face struct {
	Name  string
	Small bool

	face    font.Face
	ascent  float64
	height  float64
	widths  []float64 // indexed by cell value
}

// FontCache holds every face available to the renderer. It is constructed
// once and passed by reference; there is no lazily initialized process-wide
// state.
type FontCache struct {
	faces []Face
}

// LoadFonts reads every .ttf/.otf under dir and prepares faces at the full
// and half pixel size for values 1..maxValue.
func LoadFonts(dir string, px float64, maxValue int) (*FontCache, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("font dir: %w", err)
	}
	var paths []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".ttf", ".otf":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	fc := &FontCache{}
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		ft, err := opentype.Parse(raw)
		if err != nil {
			continue
		}
		name := filepath.Base(p)
		for _, small := range []bool{false, true} {
			size := px
			if small {
				size = px / 2
			}
			face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
			if err != nil {
				continue
			}
			fc.faces = append(fc.faces, newFace(name, small, face, maxValue))
		}
	}
	if len(fc.faces) == 0 {
		return nil, fmt.Errorf("no usable fonts in %s", dir)
	}
	return fc, nil
}

// NewFontCacheFromFace wraps an existing face (tests use a bitmap face);
// the same face serves both the full and the half size.
func NewFontCacheFromFace(name string, f font.Face, maxValue int) *FontCache {
	return &FontCache{faces: []Face{
		newFace(name, false, f, maxValue),
		newFace(name, true, f, maxValue),
	}}
}

func newFace(name string, small bool, f font.Face, maxValue int) Face {
	m := f.Metrics()
	ascent := fixedToFloat(m.Ascent)
	height := ascent + fixedToFloat(m.Descent)
	widths := make([]float64, maxValue+1)
	for v := 1; v <= maxValue; v++ {
		b, adv := font.BoundString(f, strconv.Itoa(v))
		w := fixedToFloat(b.Max.X - b.Min.X)
		if w <= 0 {
			w = fixedToFloat(adv)
		}
		widths[v] = w
	}
	return Face{Name: name, Small: small, face: f, ascent: ascent, height: height, widths: widths}
}

// Pick returns a random face of the wanted size class.
func (fc *FontCache) Pick(rng *rand.Rand, small bool) *Face {
	matching := make([]*Face, 0, len(fc.faces))
	for i := range fc.faces {
		if fc.faces[i].Small == small {
			matching = append(matching, &fc.faces[i])
		}
	}
	if len(matching) == 0 {
		return &fc.faces[rng.Intn(len(fc.faces))]
	}
	return matching[rng.Intn(len(matching))]
}
