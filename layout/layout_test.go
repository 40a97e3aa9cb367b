package layout

import (
	"testing"

	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/font"
)

func assertClose(t *testing.T, got, want float64) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func buildTree() *dom.Node {
	html := dom.NewElement("html")
	body := dom.NewElement("body")
	p := dom.NewElement("p")
	p.AppendChild(dom.NewText("hello world"))
	body.AppendChild(p)
	html.AppendChild(body)
	for _, n := range []*dom.Node{html, body, p} {
		n.Style["font-size"] = "16px"
		n.Style["font-weight"] = "normal"
		n.Style["font-style"] = "normal"
	}
	return html
}

func TestBuildDocumentLayoutModeBlock(t *testing.T) {
	root := buildTree()
	doc := BuildDocument(root, 800, font.NewStubLibrary(2))
	if doc.Kind != KindDocument {
		t.Fatal("expected document root")
	}
	if len(doc.Children) != 1 || doc.Children[0].Kind != KindBlock {
		t.Fatal("expected one block child")
	}
}

func TestBuildDocumentProducesLines(t *testing.T) {
	root := buildTree()
	doc := BuildDocument(root, 800, font.NewStubLibrary(2))
	body := doc.Children[0].Children[0]
	p := body.Children[0]
	if len(p.Children) == 0 || p.Children[0].Kind != KindLine {
		t.Fatalf("expected p to contain lines, got %+v", p.Children)
	}
}

func TestLineWrapsOnOverflow(t *testing.T) {
	html := dom.NewElement("html")
	p := dom.NewElement("p")
	p.AppendChild(dom.NewText("one two three four five six seven eight nine ten"))
	html.AppendChild(p)
	for _, n := range []*dom.Node{html, p} {
		n.Style["font-size"] = "16px"
	}
	doc := BuildDocument(html, 60, font.NewStubLibrary(4))
	body := doc.Children[0]
	if len(body.Children) != 1 {
		t.Fatalf("expected one block child (p), got %d", len(body.Children))
	}
	if len(body.Children[0].Children) < 2 {
		t.Fatalf("expected multiple wrapped lines, got %d", len(body.Children[0].Children))
	}
}

func TestLineBreakMeasuresWordWithoutTrailingSpace(t *testing.T) {
	p := dom.NewElement("p")
	p.AppendChild(dom.NewText("aaaa bbbb cccc"))
	p.Style["font-size"] = "16px"
	pBlock := &Object{Kind: KindBlock, Node: p, X: 0, Y: 0, Width: 100}
	layoutBlock(pBlock, font.NewStubLibrary(10))
	lines := pBlock.Children
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	line1, line2 := lines[0], lines[1]
	if len(line1.Children) != 2 || len(line2.Children) != 1 {
		t.Fatalf("expected line1={aaaa,bbbb} line2={cccc}, got %d/%d words", len(line1.Children), len(line2.Children))
	}
	if line1.Children[0].Word != "aaaa" || line1.Children[0].X != 0 {
		t.Fatalf("expected aaaa at x=0, got %q@%v", line1.Children[0].Word, line1.Children[0].X)
	}
	if line1.Children[1].Word != "bbbb" || line1.Children[1].X != 50 {
		t.Fatalf("expected bbbb at x=50, got %q@%v", line1.Children[1].Word, line1.Children[1].X)
	}
	if line2.Children[0].Word != "cccc" || line2.Children[0].X != 0 {
		t.Fatalf("expected cccc at x=0, got %q@%v", line2.Children[0].Word, line2.Children[0].X)
	}
}

func TestLayoutModeInline(t *testing.T) {
	p := dom.NewElement("p")
	p.AppendChild(dom.NewText("hi"))
	if layoutMode(p) != "inline" {
		t.Fatal("expected inline mode for text-only children")
	}
}

func TestLayoutModeBlockForBlockChild(t *testing.T) {
	body := dom.NewElement("body")
	body.AppendChild(dom.NewElement("div"))
	if layoutMode(body) != "block" {
		t.Fatal("expected block mode when a child is a block element")
	}
}

func TestLayoutModeBlockForEmpty(t *testing.T) {
	div := dom.NewElement("div")
	if layoutMode(div) != "block" {
		t.Fatal("expected block mode for a childless element")
	}
}
