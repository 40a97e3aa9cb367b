package paint

import (
	"strconv"
	"strings"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/dom"
)

// VisualEffect is a Command that wraps other commands and can remap their
// geometry (Transform) or change how they composite (Blend), matching
// compositing.py's VisualEffect.
type VisualEffect interface {
	Command
	// Map and Unmap convert rect between this effect's child coordinate
	// space and its own, per compositing.py's Transform.map/unmap.
	Map(rect Rect) Rect
	Unmap(rect Rect) Rect
	NeedsCompositing() bool
	Node() *dom.Node
}

type effectBase struct {
	base
	node              *dom.Node
	needsCompositing  bool
}

func (e *effectBase) NeedsCompositing() bool { return e.needsCompositing }
func (e *effectBase) Node() *dom.Node        { return e.node }

func childNeedsCompositing(children []Command) bool {
	for _, c := range children {
		if ve, ok := c.(VisualEffect); ok && ve.NeedsCompositing() {
			return true
		}
	}
	return false
}

func childrenBounds(children []Command) Rect {
	var r Rect
	for _, c := range children {
		r = union(r, c.Bounds())
	}
	return r
}

// Transform translates its children by (dx, dy), a no-op when both are
// zero (matching compositing.py's Transform.execute guarding on a falsy
// translation before saving/restoring the canvas at all).
type Transform struct {
	effectBase
	DX, DY float64
}

// NewTransform wraps children in a Transform effect over node, with
// selfRect as the node's own layout rect (used when there is no
// translation to apply, mirroring compositing.py's Transform(translation,
// self_rect, node, children)).
func NewTransform(dx, dy float64, selfRect Rect, node *dom.Node, children []Command) *Transform {
	t := &Transform{DX: dx, DY: dy}
	rect := selfRect
	if dx != 0 || dy != 0 {
		rect = childrenBounds(children)
	}
	t.base = base{rect: rect, children: children}
	t.node = node
	t.needsCompositing = childNeedsCompositing(children)
	attach(t, children)
	return t
}

func (t *Transform) Execute(c *canvas.Canvas) {
	if t.DX == 0 && t.DY == 0 {
		for _, child := range t.children {
			child.Execute(c)
		}
		return
	}
	c.Save()
	c.Translate(t.DX, t.DY)
	for _, child := range t.children {
		child.Execute(c)
	}
	c.Restore()
}

// Map shifts a child-space rect into this Transform's parent space.
func (t *Transform) Map(rect Rect) Rect {
	return Rect{X: rect.X + t.DX, Y: rect.Y + t.DY, Width: rect.Width, Height: rect.Height}
}

// Unmap shifts a parent-space rect into this Transform's child space.
func (t *Transform) Unmap(rect Rect) Rect {
	return Rect{X: rect.X - t.DX, Y: rect.Y - t.DY, Width: rect.Width, Height: rect.Height}
}

// Clone returns a new Transform with the same translation/node but a
// single replacement child, matching compositing.py's Transform.clone
// (used when the draw-list assembly rewraps a composited layer under a
// shared ancestor).
func (t *Transform) Clone(child Command) *Transform {
	return NewTransform(t.DX, t.DY, t.rect, t.node, []Command{child})
}

// AppendChild adds an additional child to an already-built clone, used
// when a second composited layer reaches this same ancestor during
// draw-list assembly and must join the same save/restore pair rather than
// getting its own clone.
func (t *Transform) AppendChild(child Command) {
	t.children = append(t.children, child)
	if t.DX != 0 || t.DY != 0 {
		t.rect = childrenBounds(t.children)
	}
	attach(t, []Command{child})
}

// BlendMode names the mix-blend-mode values blend.py's parse_blend_mode
// recognizes.
type BlendMode int

const (
	BlendSourceOver BlendMode = iota
	BlendMultiply
	BlendDifference
	BlendDestinationIn
)

func parseBlendMode(value string) BlendMode {
	switch value {
	case "multiply":
		return BlendMultiply
	case "difference":
		return BlendDifference
	case "destination-in":
		return BlendDestinationIn
	default:
		return BlendSourceOver
	}
}

// ToCanvas converts m to the canvas package's blend-mode enum, exported so
// the compositor can re-apply a retained Blend's mode at draw time.
func (m BlendMode) ToCanvas() canvas.BlendMode {
	switch m {
	case BlendMultiply:
		return canvas.BlendMultiply
	case BlendDifference:
		return canvas.BlendDifference
	case BlendDestinationIn:
		return canvas.BlendDestinationIn
	default:
		return canvas.BlendSourceOver
	}
}

// Blend applies opacity and/or a mix-blend-mode to its children, rastering
// them into an offscreen surface first whenever either is non-default
// (ShouldSave), matching blend.py's Blend.execute saveLayer/restore pair.
type Blend struct {
	effectBase
	Opacity   float64
	Mode      BlendMode
	hasMode   bool
	offscreen *canvas.Surface
}

// ShouldSave reports whether this Blend needs an offscreen pass, matching
// blend.py's should_save = blend_mode or opacity < 1.
func (b *Blend) ShouldSave() bool {
	return b.hasMode || b.Opacity < 1
}

// NewBlend wraps children in a Blend over node with the given opacity and
// optional blend mode ("" for none/source-over).
func NewBlend(opacity float64, mode string, node *dom.Node, children []Command) *Blend {
	b := &Blend{Opacity: opacity}
	if mode != "" {
		b.Mode = parseBlendMode(mode)
		b.hasMode = true
	}
	b.base = base{rect: childrenBounds(children), children: children}
	b.node = node
	b.needsCompositing = b.ShouldSave() || childNeedsCompositing(children)
	attach(b, children)
	return b
}

func (b *Blend) Execute(c *canvas.Canvas) {
	if !b.ShouldSave() {
		for _, child := range b.children {
			child.Execute(c)
		}
		return
	}

	r := b.rect
	width, height := int(r.Width)+1, int(r.Height)+1
	if b.offscreen == nil {
		b.offscreen = canvas.NewSurface(width, height)
	} else {
		b.offscreen.Clear()
	}

	offCanvas := canvas.NewCanvas(b.offscreen)
	offCanvas.Translate(-r.X, -r.Y)
	for _, child := range b.children {
		child.Execute(offCanvas)
	}

	c.DrawImageBlended(b.offscreen, r.X, r.Y, b.Opacity, b.Mode.ToCanvas())
}

// Clone returns a new Blend with the same opacity/mode/node but a single
// replacement child, matching blend.py's Blend.clone (used when the
// draw-list assembly rewraps a composited layer under a shared ancestor).
func (b *Blend) Clone(child Command) *Blend {
	return b.cloneWithOpacity(b.Opacity, child)
}

// CloneWithOpacity is Clone but with opacity overridden, used when an
// animation frame's composited_updates carries a fresher value for this
// Blend's node than the one stored on b itself.
func (b *Blend) CloneWithOpacity(opacity float64, child Command) *Blend {
	return b.cloneWithOpacity(opacity, child)
}

func (b *Blend) cloneWithOpacity(opacity float64, child Command) *Blend {
	c := &Blend{Opacity: opacity, Mode: b.Mode, hasMode: b.hasMode}
	children := []Command{child}
	c.base = base{rect: childrenBounds(children), children: children}
	c.node = b.node
	c.needsCompositing = c.ShouldSave() || childNeedsCompositing(children)
	attach(c, children)
	return c
}

// AppendChild adds an additional child to an already-built clone, used
// when a second composited layer reaches this same ancestor during
// draw-list assembly and must join the same save/restore pair rather than
// getting its own clone.
func (b *Blend) AppendChild(child Command) {
	b.children = append(b.children, child)
	b.rect = childrenBounds(b.children)
	attach(b, []Command{child})
}

// Map applies this Blend's destination-in clip to rect, when its last
// child is itself a destination-in Blend, mirroring blend.py's
// Blend.map — otherwise it is the identity, since opacity/blend-mode do
// not otherwise change geometry.
func (b *Blend) Map(rect Rect) Rect {
	if len(b.children) == 0 {
		return rect
	}
	last, ok := b.children[len(b.children)-1].(*Blend)
	if !ok || !last.hasMode || last.Mode != BlendDestinationIn {
		return rect
	}
	return intersect(rect, last.rect)
}

// Unmap is the identity, matching blend.py's Blend.unmap (Blend never
// needs to invert a clip for a descendant's local-space query).
func (b *Blend) Unmap(rect Rect) Rect { return rect }

func intersect(a, b Rect) Rect {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.X+a.Width, b.X+b.Width)
	y1 := min(a.Y+a.Height, b.Y+b.Height)
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PaintVisualEffects wraps a node's own paint commands in the Blend/
// Transform chain its style implies, matching blend.py's
// paint_visual_effects exactly: an optional destination-in clip Blend for
// overflow:clip, an opacity/blend-mode Blend, then a Transform for the CSS
// transform property. Returns the single top-level Command to splice into
// the parent's children.
func PaintVisualEffects(node *dom.Node, cmds []Command, rect Rect) Command {
	dx, dy, hasTransform := ParseTransform(node.Style["transform"])

	opacity := 1.0
	if v := node.Style["opacity"]; v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			opacity = parsed
		}
	}
	mode := node.Style["mix-blend-mode"]

	overflow := node.Style["overflow"]
	if overflow == "" {
		overflow = "visible"
	}
	if overflow == "clip" {
		radius := 0.0
		if v := node.Style["border-radius"]; strings.HasSuffix(v, "px") {
			radius, _ = strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		}
		if mode == "" {
			mode = "source-over"
		}
		clip := NewDrawRRect(rect, radius, canvas.Color{R: 1, G: 1, B: 1, A: 1})
		clipBlend := NewBlend(1.0, "destination-in", nil, []Command{clip})
		cmds = append(cmds, clipBlend)
	}

	blend := NewBlend(opacity, mode, node, cmds)
	node.BlendOp = blend

	if !hasTransform {
		dx, dy = 0, 0
	}
	return NewTransform(dx, dy, rect, node, []Command{blend})
}
