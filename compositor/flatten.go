package compositor

import "github.com/hearthframe/wisp/paint"

// Flatten walks the display-list tree in paint order, retaining leaf draw
// commands and the effect nodes that themselves trigger compositing (a
// Blend that ShouldSave, not any node whose bubbled NeedsCompositing flag
// is set), then groups the retained commands into Layers
// by trying each against existing layers from most-recent backward,
// matching compositing.py's layer-construction loop together with spec
// §4.F's retention/merge rules: a command joins the most recent layer that
// shares its effect-parent, but the backward search stops (forcing a new
// layer) the moment it reaches a layer whose absolute bounds overlap the
// command's, since sliding the command under that layer would reorder
// paint order.
func Flatten(root paint.Command) []*Layer {
	var retained []paint.Command
	collectRetained(root, &retained)
	return buildLayers(retained)
}

// FlattenForest is Flatten for a whole display list (the top level of a
// paint tree is a slice of sibling Commands, not a single root, since
// paint.PaintObjectTree returns one Command per top-level child rather
// than wrapping them under a synthetic root).
func FlattenForest(roots []paint.Command) []*Layer {
	var retained []paint.Command
	for _, root := range roots {
		collectRetained(root, &retained)
	}
	return buildLayers(retained)
}

// collectRetained walks cmd preorder, appending leaves and the nodes that
// themselves trigger compositing (a Blend with ShouldSave, per spec §4.B's
// "non-trivial Blend") to out, stopping descent at each trigger: that node
// becomes its own atomic layer item, rastered as a unit — the nearest
// compositing ancestor spec §4.F describes. Using the bubbled
// needs_compositing flag here instead (true on every ancestor up to the
// root once any descendant has it) would collapse the whole tree into one
// layer the moment any element anywhere is semi-transparent, defeating the
// per-layer raster invalidation compositing exists for; own-trigger nodes
// nest correctly since a trigger found deeper in the walk is retained on
// its own before an outer, non-triggering ancestor ever gets the chance.
func collectRetained(cmd paint.Command, out *[]paint.Command) {
	children := cmd.Children()
	if len(children) == 0 {
		*out = append(*out, cmd)
		return
	}
	if blend, ok := cmd.(*paint.Blend); ok && blend.ShouldSave() {
		*out = append(*out, cmd)
		return
	}
	for _, child := range children {
		collectRetained(child, out)
	}
}

// buildLayers groups retained commands into Layers, searching backward
// from the most recently opened layer for one to merge into and stopping
// the search (opening a new layer instead) as soon as an overlapping,
// non-mergeable layer is found.
func buildLayers(retained []paint.Command) []*Layer {
	var layers []*Layer
	for _, item := range retained {
		merged := false
		itemBounds := paint.LocalToAbsolute(item, item.Bounds())
		for i := len(layers) - 1; i >= 0; i-- {
			layer := layers[i]
			if layer.CanMerge(item) {
				layer.Add(item)
				merged = true
				break
			}
			if rectsIntersect(layer.AbsoluteBounds(), itemBounds) {
				break
			}
		}
		if !merged {
			l := &Layer{}
			l.Add(item)
			layers = append(layers, l)
		}
	}
	return layers
}

func rectsIntersect(a, b paint.Rect) bool {
	if a.Width == 0 && a.Height == 0 {
		return false
	}
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}
