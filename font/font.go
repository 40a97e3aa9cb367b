// Package font resolves (size, weight, style) triples to measurable,
// drawable fonts. Grounded on willow's TTFFont (text.go), backed by
// ebiten/v2/text/v2 for measurement/shaping and flopp/go-findfont for
// locating a system font file for a given weight/style variant, which
// willow itself never needs (it ships its own bitmap/TTF assets bundled
// with the game; a browser has to find *a* system font at runtime).
package font

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Metrics mirrors the ascent/descent/line-height triple line_layout.py and
// input_layout.py read off a tkinter font.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Font measures and draws text at a fixed size/weight/style.
type Font interface {
	MeasureText(s string) float64
	Metrics() Metrics
	Face() *text.GoTextFace
}

// Library resolves (size, weight, style) to a cached Font, matching the
// font-cache pattern of helpers.py's get_font (a dict keyed by the same
// triple) generalized from tkinter fonts to ebiten text faces.
type Library interface {
	Get(size float64, weight, style string) Font
}

type ttfFont struct {
	face *text.GoTextFace
	m    Metrics
}

func (f *ttfFont) Face() *text.GoTextFace { return f.face }
func (f *ttfFont) Metrics() Metrics       { return f.m }

func (f *ttfFont) MeasureText(s string) float64 {
	w, _ := text.Measure(s, f.face, 0)
	return w
}

type cacheKey struct {
	size          float64
	weight, style string
}

// SystemLibrary discovers system font files via go-findfont and caches a
// GoTextFace per (size, weight, style) triple it is asked for.
type SystemLibrary struct {
	mu    sync.Mutex
	cache map[cacheKey]Font

	regularPath    string
	boldPath       string
	italicPath     string
	boldItalicPath string
}

// NewSystemLibrary locates regular/bold/italic/bold-italic variants of
// family (e.g. "Arial") on the host system via go-findfont, matching
// willow's TTFFont loading shape but resolving the font file at runtime
// instead of from a bundled asset path.
func NewSystemLibrary(family string) (*SystemLibrary, error) {
	lib := &SystemLibrary{cache: map[cacheKey]Font{}}

	regular, err := findfont.Find(family + ".ttf")
	if err != nil {
		return nil, err
	}
	lib.regularPath = regular

	if bold, err := findfont.Find(family + " Bold.ttf"); err == nil {
		lib.boldPath = bold
	} else {
		lib.boldPath = regular
	}
	if italic, err := findfont.Find(family + " Italic.ttf"); err == nil {
		lib.italicPath = italic
	} else {
		lib.italicPath = regular
	}
	if bi, err := findfont.Find(family + " Bold Italic.ttf"); err == nil {
		lib.boldItalicPath = bi
	} else {
		lib.boldItalicPath = lib.boldPath
	}
	return lib, nil
}

func (l *SystemLibrary) pathFor(weight, style string) string {
	bold := weight == "bold"
	italic := style == "italic"
	switch {
	case bold && italic:
		return l.boldItalicPath
	case bold:
		return l.boldPath
	case italic:
		return l.italicPath
	default:
		return l.regularPath
	}
}

// Get returns the Font for the given triple, loading and caching it on
// first use.
func (l *SystemLibrary) Get(size float64, weight, style string) Font {
	key := cacheKey{size: size, weight: weight, style: style}

	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.cache[key]; ok {
		return f
	}

	path := l.pathFor(weight, style)
	src, err := loadSource(path)
	if err != nil {
		return nil
	}
	face := text.NewGoTextFace(src)
	face.Size = size

	m := face.Metrics()
	result := &ttfFont{
		face: face,
		m: Metrics{
			Ascent:     m.HAscent,
			Descent:    m.HDescent,
			LineHeight: m.HLineGap + m.HAscent + m.HDescent,
		},
	}
	l.cache[key] = result
	return result
}

func loadSource(path string) (*text.GoTextFaceSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return text.NewGoTextFaceSource(f)
}
