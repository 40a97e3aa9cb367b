package font

import "github.com/hajimehoshi/ebiten/v2/text/v2"

// StubLibrary is a deterministic, file-free Library for tests that need a
// Font but not real glyph metrics — every character is treated as
// charWidth wide, matching the fixed HSTEP/VSTEP grid document_layout.py
// assumes for its own tkinter-backed measurements.
type StubLibrary struct {
	charWidth float64
}

// NewStubLibrary returns a Library where MeasureText(s) == len(s)*charWidth.
func NewStubLibrary(charWidth float64) *StubLibrary {
	return &StubLibrary{charWidth: charWidth}
}

func (l *StubLibrary) Get(size float64, weight, style string) Font {
	return &stubFont{charWidth: l.charWidth, size: size}
}

type stubFont struct {
	charWidth float64
	size      float64
}

func (f *stubFont) MeasureText(s string) float64 {
	return float64(len([]rune(s))) * f.charWidth
}

func (f *stubFont) Metrics() Metrics {
	return Metrics{Ascent: 0.8 * f.size, Descent: 0.2 * f.size, LineHeight: 1.2 * f.size}
}

func (f *stubFont) Face() *text.GoTextFace { return nil }
