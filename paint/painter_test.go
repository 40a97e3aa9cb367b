package paint

import (
	"testing"

	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/font"
	"github.com/hearthframe/wisp/layout"
)

func TestPaintObjectTreeEmitsOwnBackground(t *testing.T) {
	node := dom.NewElement("div")
	node.Style["background-color"] = "red"
	obj := &layout.Object{Kind: layout.KindBlock, Node: node, X: 13, Y: 18, Width: 100, Height: 50}

	cmds := PaintObjectTree(obj)
	if len(cmds) != 1 {
		t.Fatalf("expected one top-level command, got %d", len(cmds))
	}
	tr, ok := cmds[0].(*Transform)
	if !ok {
		t.Fatalf("expected a Transform wrapper, got %T", cmds[0])
	}
	blend, ok := tr.Children()[0].(*Blend)
	if !ok {
		t.Fatalf("expected a Blend wrapper, got %T", tr.Children()[0])
	}
	if len(blend.Children()) != 1 {
		t.Fatalf("expected one painted command, got %d", len(blend.Children()))
	}
	rect, ok := blend.Children()[0].(*DrawRRect)
	if !ok {
		t.Fatalf("expected a DrawRRect background, got %T", blend.Children()[0])
	}
	if rect.Bounds() != (Rect{X: 13, Y: 18, Width: 100, Height: 50}) {
		t.Fatalf("got bounds %+v", rect.Bounds())
	}
	if rect.Color != parseColor("red") {
		t.Fatalf("got color %+v", rect.Color)
	}
}

func TestPaintObjectTreeSkipsTransparentBackground(t *testing.T) {
	node := dom.NewElement("div")
	obj := &layout.Object{Kind: layout.KindBlock, Node: node, X: 0, Y: 0, Width: 10, Height: 10}

	cmds := PaintObjectTree(obj)
	tr := cmds[0].(*Transform)
	blend := tr.Children()[0].(*Blend)
	if len(blend.Children()) != 0 {
		t.Fatalf("expected no background command for a transparent node, got %+v", blend.Children())
	}
}

func TestPaintObjectTreePaintsBackgroundBeforeChildren(t *testing.T) {
	node := dom.NewElement("div")
	node.Style["background-color"] = "gray"
	textNode := &layout.Object{Kind: layout.KindText, X: 1, Y: 1, Word: "hi", Font: font.NewStubLibrary(8).Get(16, "normal", "roman")}
	obj := &layout.Object{Kind: layout.KindBlock, Node: node, X: 0, Y: 0, Width: 20, Height: 20, Children: []*layout.Object{textNode}}

	cmds := PaintObjectTree(obj)
	tr := cmds[0].(*Transform)
	blend := tr.Children()[0].(*Blend)
	if len(blend.Children()) != 2 {
		t.Fatalf("expected background + text, got %d commands", len(blend.Children()))
	}
	if _, ok := blend.Children()[0].(*DrawRRect); !ok {
		t.Fatalf("expected the background to paint first, got %T", blend.Children()[0])
	}
	if _, ok := blend.Children()[1].(*DrawText); !ok {
		t.Fatalf("expected the text command second, got %T", blend.Children()[1])
	}
}
