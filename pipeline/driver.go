package pipeline

// StyleFunc resolves style for the current document.
type StyleFunc func()

// LayoutFunc rebuilds the layout tree.
type LayoutFunc func()

// PaintFunc rebuilds the display list.
type PaintFunc func()

// CompositeFunc rebuilds composited layers from the display list.
type CompositeFunc func()

// RasterFunc rasters dirty composited layers.
type RasterFunc func()

// DrawFunc draws the current frame to the screen, applying any pending
// composited_updates.
type DrawFunc func()

// Driver runs exactly the stages its Bits say are dirty, then clears them,
// matching tab.py's render() (style -> layout -> paint, in that order)
// composed with the UI-side composite -> raster -> draw split
// spec.md's Component H names.
type Driver struct {
	Bits  Bits
	Timer Timer

	Style     StyleFunc
	Layout    LayoutFunc
	Paint     PaintFunc
	Composite CompositeFunc
	Raster    RasterFunc
	Draw      DrawFunc

	// CompositedUpdates holds compositable-only style values (currently
	// just opacity) queued by an animation frame that should update an
	// already-rastered layer's draw parameters without re-running
	// paint/composite/raster, keyed by the dom node id whose BlendOp they
	// adjust. The draw stage consumes and clears this map.
	CompositedUpdates map[uint64]float64
}

// NewDriver returns a Driver with all funcs as no-ops; callers assign the
// stage funcs they need.
func NewDriver() *Driver {
	return &Driver{CompositedUpdates: map[uint64]float64{}}
}

// RunTabSide runs whichever of style/layout/paint are dirty, in that
// order, clearing each bit once its stage has run.
func (d *Driver) RunTabSide() {
	if d.Bits.Style && d.Style != nil {
		d.Timer.Time(&d.Timer.Stats.Style, d.Style)
	}
	d.Bits.Style = false
	if d.Bits.Layout && d.Layout != nil {
		d.Timer.Time(&d.Timer.Stats.Layout, d.Layout)
	}
	d.Bits.Layout = false
	if d.Bits.Paint && d.Paint != nil {
		d.Timer.Time(&d.Timer.Stats.Paint, d.Paint)
	}
	d.Bits.Paint = false
}

// RunUISide runs composite/raster/draw according to the dirty bits,
// then clears them (and CompositedUpdates), matching Component H/J's
// commit-then-drive-UI-stages split.
func (d *Driver) RunUISide() {
	if d.Bits.Composite && d.Composite != nil {
		d.Timer.Time(&d.Timer.Stats.Composite, d.Composite)
	}
	if d.Bits.Raster && d.Raster != nil {
		d.Timer.Time(&d.Timer.Stats.Raster, d.Raster)
	}
	if d.Bits.Draw && d.Draw != nil {
		d.Timer.Time(&d.Timer.Stats.Draw, d.Draw)
	}
	d.Bits.Composite, d.Bits.Raster, d.Bits.Draw = false, false, false
	for k := range d.CompositedUpdates {
		delete(d.CompositedUpdates, k)
	}
}

// QueueCompositedUpdate records a draw-only opacity change for nodeID and
// marks only Draw dirty, matching the compositable animation-frame path
// (style change -> opacity only -> no re-layout/re-paint/re-raster needed).
func (d *Driver) QueueCompositedUpdate(nodeID uint64, opacity float64) {
	d.CompositedUpdates[nodeID] = opacity
	d.Bits.MarkDrawOnlyDirty()
}
