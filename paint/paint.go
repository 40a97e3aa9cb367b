// Package paint holds the persistent display-list tree: leaf draw
// commands and the visual-effect nodes (Blend, Transform) that wrap them,
// plus the painter that builds this tree from a styled layout object.
// Grounded 1:1 on compositing.py (PaintCommand, VisualEffect, Transform,
// map/unmap/local_to_absolute/absolute_to_local) and blend.py (Blend,
// parse_transform, paint_visual_effects).
package paint

import (
	"strconv"
	"strings"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/font"
)

// Rect is an axis-aligned box, matching canvas.Rect's shape so commands can
// be handed straight to the canvas without conversion.
type Rect = canvas.Rect

func outset(r Rect, dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

func union(a, b Rect) Rect {
	if a.Width == 0 && a.Height == 0 {
		return b
	}
	x0 := min(a.X, b.X)
	y0 := min(a.Y, b.Y)
	x1 := max(a.X+a.Width, b.X+b.Width)
	y1 := max(a.Y+a.Height, b.Y+b.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Command is anything in the display-list tree: a leaf draw operation or a
// visual-effect node wrapping other commands. Matches compositing.py's
// PaintCommand base (rect + children) generalized to an interface so leaf
// commands and effect nodes share traversal code without a common struct.
type Command interface {
	Bounds() Rect
	Children() []Command
	Parent() Command
	setParent(Command)
	Execute(c *canvas.Canvas)
}

type base struct {
	rect     Rect
	children []Command
	parent   Command
}

func (b *base) Bounds() Rect        { return b.rect }
func (b *base) Children() []Command { return b.children }
func (b *base) Parent() Command     { return b.parent }
func (b *base) setParent(p Command) { b.parent = p }

// Leaf adapts an arbitrary draw operation into a Command with no children,
// letting code outside this package (the compositor's rastered layers)
// take part in the same ancestor Clone/AppendChild wrapping that the rest
// of the display-list tree uses, since Command's setParent is
// unexported and so can only be satisfied by types built on base.
type Leaf struct {
	base
	draw func(c *canvas.Canvas)
}

// NewLeaf returns a Leaf with the given bounds (used when an ancestor
// Blend above it needs to size an offscreen surface) that executes draw
// when drawn.
func NewLeaf(bounds Rect, draw func(c *canvas.Canvas)) *Leaf {
	l := &Leaf{draw: draw}
	l.base = base{rect: bounds}
	return l
}

func (l *Leaf) Execute(c *canvas.Canvas) { l.draw(c) }

func attach(parent Command, children []Command) {
	for _, c := range children {
		c.setParent(parent)
	}
}

// DrawText draws Text at the rect's top-left, with the baseline computed
// from the font's ascent, matching draw.py's DrawText (baseline =
// rect.top() - font.getMetrics().fAscent).
type DrawText struct {
	base
	Text  string
	Font  font.Font
	Color canvas.Color
}

// NewDrawText lays out rect from f's measured width/line-height, matching
// DrawText.__init__'s use of font.measureText/getMetrics.
func NewDrawText(x, y float64, text string, f font.Font, color canvas.Color) *DrawText {
	m := f.Metrics()
	rect := Rect{X: x, Y: y, Width: f.MeasureText(text), Height: m.LineHeight}
	return &DrawText{base: base{rect: rect}, Text: text, Font: f, Color: color}
}

func (d *DrawText) Execute(c *canvas.Canvas) {
	baseline := d.rect.Y + d.Font.Metrics().Ascent
	c.DrawString(d.Text, d.rect.X, baseline, d.Font.Face(), d.Color)
}

// DrawRect fills its rect.
type DrawRect struct {
	base
	Color canvas.Color
}

func (d *DrawRect) Execute(c *canvas.Canvas) { c.DrawRect(d.rect, d.Color) }

// DrawRRect fills its rect with rounded corners.
type DrawRRect struct {
	base
	Radius float64
	Color  canvas.Color
}

func (d *DrawRRect) Execute(c *canvas.Canvas) { c.DrawRRect(d.rect, d.Radius, d.Color) }

// DrawLine strokes a line across its rect's diagonal-defining endpoints.
type DrawLine struct {
	base
	X1, Y1, X2, Y2 float64
	Color          canvas.Color
	Width          float64
}

func (d *DrawLine) Execute(c *canvas.Canvas) {
	c.DrawLine(d.X1, d.Y1, d.X2, d.Y2, d.Color, d.Width)
}

// DrawOutline strokes its rect's border, used for debug borders and input
// focus boxes.
type DrawOutline struct {
	base
	Color canvas.Color
	Width float64
}

func (d *DrawOutline) Execute(c *canvas.Canvas) {
	r := d.rect
	c.DrawLine(r.X, r.Y, r.X+r.Width, r.Y, d.Color, d.Width)
	c.DrawLine(r.X+r.Width, r.Y, r.X+r.Width, r.Y+r.Height, d.Color, d.Width)
	c.DrawLine(r.X+r.Width, r.Y+r.Height, r.X, r.Y+r.Height, d.Color, d.Width)
	c.DrawLine(r.X, r.Y+r.Height, r.X, r.Y, d.Color, d.Width)
}

// NewDrawRect/NewDrawRRect/NewDrawLine/NewDrawOutline construct leaf
// commands with their bounds precomputed, matching compositing.py's
// PaintCommand.__init__(rect).

func NewDrawRect(rect Rect, color canvas.Color) *DrawRect {
	return &DrawRect{base: base{rect: rect}, Color: color}
}

func NewDrawRRect(rect Rect, radius float64, color canvas.Color) *DrawRRect {
	return &DrawRRect{base: base{rect: rect}, Radius: radius, Color: color}
}

func NewDrawLine(x1, y1, x2, y2 float64, color canvas.Color, width float64) *DrawLine {
	rect := Rect{X: min(x1, x2), Y: min(y1, y2), Width: max(x1, x2) - min(x1, x2), Height: max(y1, y2) - min(y1, y2)}
	return &DrawLine{base: base{rect: rect}, X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Width: width}
}

func NewDrawOutline(rect Rect, color canvas.Color, width float64) *DrawOutline {
	return &DrawOutline{base: base{rect: rect}, Color: color, Width: width}
}

// ParseTransform extracts a translate(x,y) offset from a CSS transform
// value. Ported from compositing.py's parse_transform, which drops the
// trailing two characters of each argument and reads what precedes them
// as the number; an argument counts only when those two characters are
// "px", so anything else (a bare number, "%", "em") yields ok=false.
func ParseTransform(value string) (dx, dy float64, ok bool) {
	idx := strings.Index(value, "translate(")
	if idx < 0 {
		return 0, 0, false
	}
	rest := value[idx+len("translate("):]
	end := strings.Index(rest, ")")
	if end < 0 {
		return 0, 0, false
	}
	args := strings.Split(rest[:end], ",")
	if len(args) != 2 {
		return 0, 0, false
	}
	xPx := strings.TrimSpace(args[0])
	yPx := strings.TrimSpace(args[1])
	if !strings.HasSuffix(xPx, "px") || !strings.HasSuffix(yPx, "px") {
		return 0, 0, false
	}
	x, err1 := strconv.ParseFloat(xPx[:len(xPx)-2], 64)
	y, err2 := strconv.ParseFloat(yPx[:len(yPx)-2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, y, true
}
