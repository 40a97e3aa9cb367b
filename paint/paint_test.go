package paint

import (
	"testing"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/dom"
)

func TestParseTransformValid(t *testing.T) {
	dx, dy, ok := ParseTransform("translate(10px,20px)")
	if !ok || dx != 10 || dy != 20 {
		t.Fatalf("got %v %v %v", dx, dy, ok)
	}
}

func TestParseTransformMissing(t *testing.T) {
	if _, _, ok := ParseTransform("none"); ok {
		t.Fatal("expected no transform")
	}
}

func TestParseTransformNonPixelSuffixMisparses(t *testing.T) {
	// Only arguments ending in "px" count: "10em" would read as 10 once its
	// last two characters are dropped, so it must yield ok=false instead.
	if _, _, ok := ParseTransform("translate(10em,20em)"); ok {
		t.Fatal("expected non-px suffix to fail to parse")
	}
}

func TestTransformMapUnmap(t *testing.T) {
	tr := NewTransform(5, 10, Rect{}, nil, nil)
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	mapped := tr.Map(r)
	if mapped.X != 6 || mapped.Y != 11 {
		t.Fatalf("got %+v", mapped)
	}
	back := tr.Unmap(mapped)
	if back.X != r.X || back.Y != r.Y {
		t.Fatalf("got %+v", back)
	}
}

func TestTransformZeroTranslationIsNoop(t *testing.T) {
	leaf := NewDrawRect(Rect{X: 0, Y: 0, Width: 10, Height: 10}, canvas.Color{})
	tr := NewTransform(0, 0, Rect{X: 0, Y: 0, Width: 10, Height: 10}, nil, []Command{leaf})
	if tr.Bounds() != (Rect{X: 0, Y: 0, Width: 10, Height: 10}) {
		t.Fatalf("expected self rect when no translation, got %+v", tr.Bounds())
	}
}

func TestBlendShouldSave(t *testing.T) {
	opaque := NewBlend(1.0, "", nil, nil)
	if opaque.ShouldSave() {
		t.Fatal("full opacity, no blend mode should not need saving")
	}
	transparent := NewBlend(0.5, "", nil, nil)
	if !transparent.ShouldSave() {
		t.Fatal("partial opacity should need saving")
	}
	blended := NewBlend(1.0, "multiply", nil, nil)
	if !blended.ShouldSave() {
		t.Fatal("a blend mode should need saving")
	}
}

func TestPaintVisualEffectsSetsBlendOp(t *testing.T) {
	node := dom.NewElement("div")
	node.Style["opacity"] = "0.5"
	cmd := PaintVisualEffects(node, nil, Rect{Width: 10, Height: 10})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if node.BlendOp == nil {
		t.Fatal("expected node.BlendOp to be set")
	}
}

func TestLocalToAbsoluteWalksAncestors(t *testing.T) {
	leaf := NewDrawRect(Rect{X: 1, Y: 1, Width: 2, Height: 2}, canvas.Color{})
	tr := NewTransform(5, 5, Rect{}, nil, []Command{leaf})
	abs := AbsoluteBounds(tr.children[0])
	if abs.X != 6 || abs.Y != 6 {
		t.Fatalf("got %+v", abs)
	}
}
