// Package pipeline tracks the six dirty bits that drive a frame's work
// (style/layout/paint on the tab side; composite/raster/draw on the UI
// side) and their escalation rules. Grounded on spec.md's rendering
// pipeline description and tab.py's render() sequence (style -> layout ->
// paint), with the bit-escalation/clear discipline and timing-stats
// gating following willow's Scene.Update/Scene.Draw split and debug.go.
package pipeline

import "time"

// Bits tracks which stages of the frame pipeline still need to run.
type Bits struct {
	Style     bool
	Layout    bool
	Paint     bool
	Composite bool
	Raster    bool
	Draw      bool
}

// MarkStyleDirty escalates a style change through every later stage: style
// changes can alter layout, which can alter painted commands, which can
// alter composited layers, which must be re-rastered and redrawn.
func (b *Bits) MarkStyleDirty() {
	b.Style = true
	b.MarkLayoutDirty()
}

// MarkLayoutDirty escalates a layout change through paint/composite/
// raster/draw.
func (b *Bits) MarkLayoutDirty() {
	b.Layout = true
	b.MarkPaintDirty()
}

// MarkPaintDirty escalates a paint change through composite/raster/draw.
func (b *Bits) MarkPaintDirty() {
	b.Paint = true
	b.MarkCompositeDirty()
}

// MarkCompositeDirty escalates through raster/draw.
func (b *Bits) MarkCompositeDirty() {
	b.Composite = true
	b.Raster = true
	b.Draw = true
}

// MarkDrawOnlyDirty marks only Draw, for a compositable-only change (e.g.
// an opacity animation frame handled through composited_updates) that
// needs neither re-layout nor re-paint nor re-raster.
func (b *Bits) MarkDrawOnlyDirty() {
	b.Draw = true
}

// NeedsAnything reports whether any stage has outstanding work.
func (b *Bits) NeedsAnything() bool {
	return b.Style || b.Layout || b.Paint || b.Composite || b.Raster || b.Draw
}

// Clear resets every bit after a frame finishes.
func (b *Bits) Clear() {
	*b = Bits{}
}

// Stats holds per-frame timing, collected only when Debug is set,
// matching debug.go's gated time.Now()/time.Since pattern exactly
// (`if s.debug { t0 = time.Now() } ... stats.X = time.Since(t0)`).
type Stats struct {
	Style     time.Duration
	Layout    time.Duration
	Paint     time.Duration
	Composite time.Duration
	Raster    time.Duration
	Draw      time.Duration
}

// Timer gates stage timing behind a debug flag, so the common case pays no
// time.Now() overhead.
type Timer struct {
	Debug bool
	Stats Stats
}

// Time runs fn, recording its duration into *out only if t.Debug is set.
func (t *Timer) Time(out *time.Duration, fn func()) {
	if !t.Debug {
		fn()
		return
	}
	start := time.Now()
	fn()
	*out = time.Since(start)
}
