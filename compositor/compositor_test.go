package compositor

import (
	"testing"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/paint"
)

func TestFlattenMergesSameParent(t *testing.T) {
	a := paint.NewDrawRect(paint.Rect{Width: 1, Height: 1}, canvas.Color{})
	b := paint.NewDrawRect(paint.Rect{Width: 1, Height: 1}, canvas.Color{})
	tr := paint.NewTransform(0, 0, paint.Rect{Width: 10, Height: 10}, nil, []paint.Command{a, b})

	layers := Flatten(tr)
	if len(layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(layers))
	}
	if len(layers[0].Items) != 2 {
		t.Fatalf("expected two items in the layer, got %d", len(layers[0].Items))
	}
}

func TestFlattenSplitsDifferentParents(t *testing.T) {
	a := paint.NewDrawRect(paint.Rect{Width: 1, Height: 1}, canvas.Color{})
	b := paint.NewDrawRect(paint.Rect{Width: 1, Height: 1}, canvas.Color{})
	tr1 := paint.NewTransform(1, 0, paint.Rect{}, nil, []paint.Command{a})
	tr2 := paint.NewTransform(2, 0, paint.Rect{}, nil, []paint.Command{b})
	root := paint.NewTransform(0, 0, paint.Rect{Width: 10, Height: 10}, nil, []paint.Command{tr1, tr2})

	layers := Flatten(root)
	if len(layers) != 2 {
		t.Fatalf("expected two layers, got %d", len(layers))
	}
}

func TestSurfacePoolReusesBySize(t *testing.T) {
	pool := NewSurfacePool()
	s1 := pool.Acquire(10, 10)
	pool.Release(s1)
	s2 := pool.Acquire(10, 10)
	if s1 != s2 {
		t.Fatal("expected pool to reuse a surface of the same size")
	}
}

func TestFlattenRetainsCompositingEffectAsAtomicItem(t *testing.T) {
	leaf := paint.NewDrawRect(paint.Rect{Width: 4, Height: 4}, canvas.Color{})
	blend := paint.NewBlend(0.5, "", nil, []paint.Command{leaf})
	root := paint.NewTransform(0, 0, paint.Rect{Width: 10, Height: 10}, nil, []paint.Command{blend})

	layers := Flatten(root)
	if len(layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(layers))
	}
	if len(layers[0].Items) != 1 || layers[0].Items[0] != paint.Command(blend) {
		t.Fatalf("expected the Blend node itself retained whole, got %+v", layers[0].Items)
	}
}

func TestFlattenMergesBackwardPastNonOverlappingLayer(t *testing.T) {
	// a and c share an effect-parent; b, between them in paint order, has
	// a distinct parent and non-overlapping bounds. The backward search
	// should skip past b's layer and merge c back into a's.
	a := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 5, Height: 5}, canvas.Color{})
	c := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 5, Height: 5}, canvas.Color{})
	b := paint.NewDrawRect(paint.Rect{X: 100, Y: 100, Width: 5, Height: 5}, canvas.Color{})
	shared := paint.NewTransform(0, 0, paint.Rect{}, nil, []paint.Command{a, c})
	other := paint.NewTransform(0, 0, paint.Rect{}, nil, []paint.Command{b})

	built := buildLayers([]paint.Command{shared.Children()[0], other.Children()[0], shared.Children()[1]})
	if len(built) != 2 {
		t.Fatalf("expected a and c to merge back into one layer past non-overlapping b, got %d layers", len(built))
	}
	if len(built[0].Items) != 2 {
		t.Fatalf("expected the first layer to hold both a and c, got %d items", len(built[0].Items))
	}
}

func TestFlattenStopsBackwardSearchOnOverlap(t *testing.T) {
	// Same shape as above, but b now overlaps shared's bounds: the search
	// must stop at b's layer rather than merging c back into a's, since
	// doing so would paint c before b and reorder the picture.
	a := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 5, Height: 5}, canvas.Color{})
	c := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 5, Height: 5}, canvas.Color{})
	b := paint.NewDrawRect(paint.Rect{X: 2, Y: 2, Width: 5, Height: 5}, canvas.Color{})
	shared := paint.NewTransform(0, 0, paint.Rect{}, nil, []paint.Command{a, c})
	other := paint.NewTransform(0, 0, paint.Rect{}, nil, []paint.Command{b})

	built := buildLayers([]paint.Command{shared.Children()[0], other.Children()[0], shared.Children()[1]})
	if len(built) != 3 {
		t.Fatalf("expected c to open its own layer rather than merge past overlapping b, got %d layers", len(built))
	}
}

func TestRasterDoesNotBakeBlendOpacitySoLiveMutationSkipsReraster(t *testing.T) {
	leaf := paint.NewDrawRect(paint.Rect{Width: 4, Height: 4}, canvas.Color{A: 1})
	blend := paint.NewBlend(0.5, "", nil, []paint.Command{leaf})
	root := paint.NewTransform(0, 0, paint.Rect{Width: 10, Height: 10}, nil, []paint.Command{blend})

	layers := Flatten(root)
	layer := layers[0]
	if layer.blendTrigger != blend {
		t.Fatal("expected the layer to track the retained Blend as its raster-time trigger")
	}

	pool := NewSurfacePool()
	layer.Raster(pool)
	if layer.dirty {
		t.Fatal("expected raster to clear the dirty flag")
	}

	blend.Opacity = 0.1
	if layer.dirty {
		t.Fatal("an animation frame mutating the blend's opacity alone must not force a re-raster")
	}

	draw := &DrawCommand{Layer: layer}
	surface := canvas.NewSurface(20, 20)
	draw.Execute(canvas.NewCanvas(surface))
}

func TestAbsoluteBoundsUnion(t *testing.T) {
	a := paint.NewDrawRect(paint.Rect{X: 0, Y: 0, Width: 5, Height: 5}, canvas.Color{})
	b := paint.NewDrawRect(paint.Rect{X: 10, Y: 10, Width: 5, Height: 5}, canvas.Color{})
	tr := paint.NewTransform(0, 0, paint.Rect{}, nil, []paint.Command{a, b})
	layer := &Layer{}
	layer.Add(tr.Children()[0])
	layer.Add(tr.Children()[1])
	bounds := layer.AbsoluteBounds()
	if bounds.Width != 15 || bounds.Height != 15 {
		t.Fatalf("got %+v", bounds)
	}
}
