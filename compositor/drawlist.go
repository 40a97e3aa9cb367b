package compositor

import (
	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/paint"
)

// AssembleDrawList wraps each composited layer's DrawCompositedLayer leaf
// in clones of its effect-parent chain, built bottom-up, so ancestor
// Transforms and Blends (CSS transform, opacity, mix-blend-mode) that sit
// above a layer but were never retained as one of its own items are
// reapplied when the layer is finally drawn rather than dropped once
// content is flattened into layers. Layers that share an ancestor share
// the same cloned wrapper, deduplicated by the original ancestor node, so
// they paint under one save/restore pair instead of two. updates carries
// any pending composited_updates (dom node id -> live opacity); an
// ancestor Blend whose node has a pending entry is cloned with that live
// value instead of its own possibly-stale stored opacity, matching spec
// §4.G/§4.H. Grounded on blend.py's Blend.clone and compositing.py's
// Transform.clone — the assembly loop itself has no original_source
// counterpart, since draw-list construction is spec-only.
func AssembleDrawList(layers []*Layer, updates map[uint64]float64) []paint.Command {
	cloned := map[paint.Command]paint.Command{}
	var drawList []paint.Command

	for _, layer := range layers {
		if len(layer.Items) == 0 {
			continue
		}
		current := drawLeaf(layer)
		ancestor := layer.Parent
		joined := false

		for ancestor != nil {
			if existing, ok := cloned[ancestor]; ok {
				appendChild(existing, current)
				joined = true
				break
			}
			next := cloneAncestor(ancestor, current, updates)
			cloned[ancestor] = next
			current = next
			ancestor = ancestor.Parent()
		}
		if !joined {
			drawList = append(drawList, current)
		}
	}
	return drawList
}

// drawLeaf wraps layer's rastered surface as a paint.Command leaf
// (compositing.py's DrawCompositedLayer), sized at its current composited
// bounds so an ancestor Blend cloned above it can size its own offscreen
// surface correctly.
func drawLeaf(layer *Layer) paint.Command {
	bounds := layer.CompositedBounds()
	return paint.NewLeaf(bounds, func(c *canvas.Canvas) {
		(&DrawCommand{Layer: layer}).Execute(c)
	})
}

func cloneAncestor(ancestor paint.Command, child paint.Command, updates map[uint64]float64) paint.Command {
	switch v := ancestor.(type) {
	case *paint.Transform:
		return v.Clone(child)
	case *paint.Blend:
		if opacity, ok := liveOpacity(v, updates); ok {
			return v.CloneWithOpacity(opacity, child)
		}
		return v.Clone(child)
	default:
		return child
	}
}

func appendChild(ancestor paint.Command, child paint.Command) {
	switch v := ancestor.(type) {
	case *paint.Transform:
		v.AppendChild(child)
	case *paint.Blend:
		v.AppendChild(child)
	}
}

func liveOpacity(b *paint.Blend, updates map[uint64]float64) (float64, bool) {
	node := b.Node()
	if node == nil {
		return 0, false
	}
	opacity, ok := updates[node.ID()]
	return opacity, ok
}
