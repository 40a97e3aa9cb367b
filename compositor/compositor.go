// Package compositor groups the display list's leaf/effect commands into
// CompositedLayers, rasters each into a reusable GPU surface, and draws
// the resulting layers into the frame. Grounded 1:1 on compositing.py's
// CompositedLayer (can_merge/composited_bounds/absolute_bounds/raster),
// with surface pooling adapted from willow's rendertexture.go/
// rendertarget.go.
package compositor

import (
	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/paint"
)

// Layer groups display items that share the same effect-parent into one
// rasterizable surface, matching compositing.py's CompositedLayer.
type Layer struct {
	Parent  paint.Command
	Items   []paint.Command
	surface *canvas.Surface
	dirty   bool

	// blendTrigger is set when this layer's sole item is a *paint.Blend
	// retained whole by Flatten because it ShouldSave. Rastering draws
	// the blend's children rather than the Blend itself, so opacity/
	// blend-mode are applied fresh at draw time from the Blend's live
	// fields instead of being baked into the surface — letting a
	// transition that only changes opacity skip Raster entirely and
	// just redraw, per spec §4.H.
	blendTrigger *paint.Blend
}

// CanMerge reports whether item can join this layer: it must share the
// same effect-parent as the layer's first item, per
// CompositedLayer.can_merge.
func (l *Layer) CanMerge(item paint.Command) bool {
	if len(l.Items) == 0 {
		return true
	}
	if l.blendTrigger != nil {
		return false
	}
	return item.Parent() == l.Items[0].Parent()
}

// Add appends item to the layer. Callers must check CanMerge first.
func (l *Layer) Add(item paint.Command) {
	l.Items = append(l.Items, item)
	l.dirty = true
	if l.Parent == nil {
		l.Parent = item.Parent()
	}
	if len(l.Items) == 1 {
		if blend, ok := item.(*paint.Blend); ok && blend.ShouldSave() {
			l.blendTrigger = blend
		}
	}
}

// CompositedBounds returns the union of each item's bounds mapped into the
// layer-parent's local space (i.e. one level less absolute than full
// document coordinates), outset by one pixel for antialiasing slop,
// matching CompositedLayer.composited_bounds.
func (l *Layer) CompositedBounds() paint.Rect {
	var r paint.Rect
	for _, item := range l.Items {
		abs := paint.LocalToAbsolute(item, item.Bounds())
		local := paint.AbsoluteToLocal(item, abs)
		r = unionRect(r, local)
	}
	return outsetRect(r, 1, 1)
}

// AbsoluteBounds returns the union of each item's absolute (document-root)
// bounds, matching CompositedLayer.absolute_bounds.
func (l *Layer) AbsoluteBounds() paint.Rect {
	var r paint.Rect
	for _, item := range l.Items {
		r = unionRect(r, paint.LocalToAbsolute(item, item.Bounds()))
	}
	return r
}

func unionRect(a, b paint.Rect) paint.Rect {
	if a.Width == 0 && a.Height == 0 {
		return b
	}
	x0, y0 := minf(a.X, b.X), minf(a.Y, b.Y)
	x1, y1 := maxf(a.X+a.Width, b.X+b.Width), maxf(a.Y+a.Height, b.Y+b.Height)
	return paint.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func outsetRect(r paint.Rect, dx, dy float64) paint.Rect {
	return paint.Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Raster rasters the layer's items into its backing surface, allocating or
// clearing it as needed, then translating drawing by the layer's bounds
// top-left so items execute in surface-local coordinates, matching
// CompositedLayer.raster. pool lets the surface be reused across frames
// instead of reallocated.
func (l *Layer) Raster(pool *SurfacePool) {
	if !l.dirty && l.surface != nil {
		return
	}
	bounds := l.CompositedBounds()
	width, height := int(bounds.Width)+1, int(bounds.Height)+1

	if l.surface != nil {
		pool.Release(l.surface)
	}
	l.surface = pool.Acquire(width, height)

	c := canvas.NewCanvas(l.surface)
	c.Translate(-bounds.X, -bounds.Y)
	if l.blendTrigger != nil {
		for _, child := range l.blendTrigger.Children() {
			child.Execute(c)
		}
	} else {
		for _, item := range l.Items {
			item.Execute(c)
		}
	}
	l.dirty = false
}

// DrawCommand draws a rastered layer's surface at its composited bounds'
// top-left — the layer-parent's local coordinate space, not the frame's
// absolute one — relying on the ancestor Transform/Blend chain
// AssembleDrawList wraps it in to carry that local frame to its final
// on-screen position. The compositor-side analogue of compositing.py's
// DrawCompositedLayer.
type DrawCommand struct {
	Layer *Layer
}

// Execute draws the layer's surface, if it has been rastered.
func (d *DrawCommand) Execute(c *canvas.Canvas) {
	if d.Layer.surface == nil {
		return
	}
	bounds := d.Layer.CompositedBounds()
	if d.Layer.blendTrigger != nil {
		b := d.Layer.blendTrigger
		c.DrawImageBlended(d.Layer.surface, bounds.X, bounds.Y, b.Opacity, b.Mode.ToCanvas())
		return
	}
	c.DrawImage(d.Layer.surface, bounds.X, bounds.Y, 1.0)
}
