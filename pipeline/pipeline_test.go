package pipeline

import "testing"

func TestMarkStyleDirtyEscalates(t *testing.T) {
	var b Bits
	b.MarkStyleDirty()
	if !(b.Style && b.Layout && b.Paint && b.Composite && b.Raster && b.Draw) {
		t.Fatalf("expected full escalation, got %+v", b)
	}
}

func TestMarkPaintDirtyDoesNotTouchLayout(t *testing.T) {
	var b Bits
	b.MarkPaintDirty()
	if b.Style || b.Layout {
		t.Fatalf("paint dirty should not imply style/layout dirty, got %+v", b)
	}
	if !(b.Paint && b.Composite && b.Raster && b.Draw) {
		t.Fatalf("expected paint through draw dirty, got %+v", b)
	}
}

func TestMarkDrawOnlyDirtyIsNarrow(t *testing.T) {
	var b Bits
	b.MarkDrawOnlyDirty()
	if b.Style || b.Layout || b.Paint || b.Composite || b.Raster {
		t.Fatalf("expected only Draw set, got %+v", b)
	}
	if !b.Draw {
		t.Fatal("expected Draw set")
	}
}

func TestClearResetsAllBits(t *testing.T) {
	var b Bits
	b.MarkStyleDirty()
	b.Clear()
	if b.NeedsAnything() {
		t.Fatal("expected no bits set after Clear")
	}
}

func TestDriverRunTabSideSkipsWhenClean(t *testing.T) {
	d := NewDriver()
	ran := false
	d.Style = func() { ran = true }
	d.RunTabSide()
	if ran {
		t.Fatal("should not run style stage when not dirty")
	}
}

func TestDriverRunTabSideRunsAndClears(t *testing.T) {
	d := NewDriver()
	var order []string
	d.Style = func() { order = append(order, "style") }
	d.Layout = func() { order = append(order, "layout") }
	d.Paint = func() { order = append(order, "paint") }
	d.Bits.MarkStyleDirty()
	d.RunTabSide()
	if len(order) != 3 || order[0] != "style" || order[1] != "layout" || order[2] != "paint" {
		t.Fatalf("got %v", order)
	}
	if d.Bits.Style || d.Bits.Layout || d.Bits.Paint {
		t.Fatal("expected tab-side bits cleared")
	}
}

func TestQueueCompositedUpdate(t *testing.T) {
	d := NewDriver()
	d.QueueCompositedUpdate(42, 0.5)
	if !d.Bits.Draw || d.Bits.Composite || d.Bits.Raster {
		t.Fatal("expected draw-only dirty")
	}
	if d.CompositedUpdates[42] != 0.5 {
		t.Fatalf("got %v", d.CompositedUpdates[42])
	}
	d.Draw = func() {}
	d.RunUISide()
	if len(d.CompositedUpdates) != 0 {
		t.Fatal("expected composited updates cleared after draw")
	}
}
