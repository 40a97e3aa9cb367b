// Package layout builds the layout tree (Document/Block/Line/Text/Input
// objects) from a styled DOM tree and assigns each object's box geometry.
// Grounded on document_layout.py, block_layout.py (mode decision only —
// its single-pass layout algorithm is superseded by the Block/Line split),
// line_layout.py, and input_layout.py.
package layout

import (
	"strconv"
	"strings"

	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/font"
)

// HStep and VStep are the fixed page margins document_layout.py uses.
const (
	HStep = 13
	VStep = 18
)

// InputWidthPx is input_layout.py's INPUT_WIDTH_PX.
const InputWidthPx = 200

// Kind distinguishes the five layout object shapes, following willow's
// flat-struct-plus-enum idiom (see dom.Kind) instead of an interface tree.
type Kind int

const (
	KindDocument Kind = iota
	KindBlock
	KindLine
	KindText
	KindInput
)

// Object is one node in the layout tree. Fields not relevant to a given
// Kind are left zero.
type Object struct {
	Kind Kind
	Node *dom.Node

	Parent   *Object
	Previous *Object
	Children []*Object

	X, Y, Width, Height float64

	// Text-only fields.
	Word string
	Font font.Font
}

func fontSizePx(node *dom.Node) float64 {
	v := node.Style["font-size"]
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 16
	}
	return f
}

func fontWeight(node *dom.Node) string {
	if w := node.Style["font-weight"]; w != "" {
		return w
	}
	return "normal"
}

func fontStyleName(node *dom.Node) string {
	if s := node.Style["font-style"]; s == "normal" {
		return "roman"
	} else if s != "" {
		return s
	}
	return "roman"
}

// layoutMode decides "block" vs "inline" for node's children, per
// block_layout.py's layout_mode(): any block-level element child forces
// block mode; otherwise, any children at all is inline; no children
// defaults to block (an empty leaf has nothing to lay out either way).
func layoutMode(node *dom.Node) string {
	hasText := false
	for _, child := range node.Children() {
		if child.Kind == dom.KindElement && dom.IsBlockElement(child.Tag) {
			return "block"
		}
		if child.Kind == dom.KindText || child.Kind == dom.KindElement {
			hasText = true
		}
	}
	if hasText {
		return "inline"
	}
	return "block"
}

// BuildDocument lays out the whole tree starting from root within a fixed
// viewport width, mirroring DocumentLayout.layout(): one BlockLayout child
// spanning the page margins, height propagated back up from it.
func BuildDocument(root *dom.Node, viewportWidth float64, fontLib font.Library) *Object {
	doc := &Object{Kind: KindDocument, Node: root, X: 0, Y: 0, Width: viewportWidth}
	child := &Object{Kind: KindBlock, Node: root, Parent: doc}
	doc.Children = []*Object{child}

	child.Width = viewportWidth - 2*HStep
	child.X = HStep
	child.Y = VStep
	layoutBlock(child, fontLib)
	doc.Height = child.Height
	return doc
}

func layoutBlock(obj *Object, fontLib font.Library) {
	mode := layoutMode(obj.Node)
	if mode == "block" {
		layoutBlockChildren(obj, fontLib)
		return
	}
	layoutInlineChildren(obj, fontLib)
}

func layoutBlockChildren(obj *Object, fontLib font.Library) {
	var previous *Object
	for _, childNode := range obj.Node.Children() {
		if childNode.Kind == dom.KindText {
			continue
		}
		child := &Object{Kind: KindBlock, Node: childNode, Parent: obj, Previous: previous}
		child.Width = obj.Width
		child.X = obj.X
		if previous != nil {
			child.Y = previous.Y + previous.Height
		} else {
			child.Y = obj.Y
		}
		layoutBlock(child, fontLib)
		obj.Children = append(obj.Children, child)
		previous = child
	}
	obj.Height = sumChildrenHeight(obj)
}

func sumChildrenHeight(obj *Object) float64 {
	var h float64
	for _, c := range obj.Children {
		h += c.Height
	}
	return h
}

// layoutInlineChildren flows descendant text into Line objects, wrapping
// on overflow, per block_layout.py's word()/flush() logic generalized to
// also place <input>/<button> elements as INPUT_WIDTH_PX boxes inline.
func layoutInlineChildren(obj *Object, fontLib font.Library) {
	var lines []*Object
	cur := newLine(obj, nil)
	lines = append(lines, cur)
	cursorX := obj.X

	flush := func() {
		layoutLine(cur, fontLib)
		next := newLine(obj, cur)
		lines = append(lines, next)
		cur = next
		cursorX = obj.X
	}

	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		switch n.Kind {
		case dom.KindText:
			size := fontSizePx(n)
			weight := fontWeight(n)
			style := fontStyleName(n)
			f := fontLib.Get(size, weight, style)
			for _, word := range strings.Fields(n.Text) {
				wordWidth := f.MeasureText(word)
				if cursorX+wordWidth >= obj.X+obj.Width && len(cur.Children) > 0 {
					flush()
				}
				item := &Object{Kind: KindText, Node: n, Parent: cur, Word: word, Font: f, X: cursorX}
				cur.Children = append(cur.Children, item)
				cursorX += wordWidth + f.MeasureText(" ")
			}
		case dom.KindElement:
			if n.Tag == "input" || n.Tag == "button" {
				size := fontSizePx(n)
				weight := fontWeight(n)
				style := fontStyleName(n)
				f := fontLib.Get(size, weight, style)
				w := float64(InputWidthPx)
				if cursorX+w >= obj.X+obj.Width && len(cur.Children) > 0 {
					flush()
				}
				item := &Object{Kind: KindInput, Node: n, Parent: cur, Font: f, X: cursorX, Width: w}
				cur.Children = append(cur.Children, item)
				cursorX += w + f.MeasureText(" ")
				return
			}
			for _, c := range n.Children() {
				walk(c)
			}
		}
	}
	for _, c := range obj.Node.Children() {
		walk(c)
	}

	layoutLine(cur, fontLib)

	var filtered []*Object
	var previous *Object
	for _, ln := range lines {
		if len(ln.Children) == 0 {
			continue
		}
		ln.Previous = previous
		if previous != nil {
			ln.Y = previous.Y + previous.Height
		} else {
			ln.Y = obj.Y
		}
		filtered = append(filtered, ln)
		previous = ln
	}
	obj.Children = filtered
	obj.Height = sumChildrenHeight(obj)
}

func newLine(parent *Object, previous *Object) *Object {
	return &Object{Kind: KindLine, Parent: parent, Previous: previous, X: parent.X, Width: parent.Width}
}

// layoutLine assigns ascent/descent-based baseline positions to a line's
// children, per line_layout.py: empty lines get zero height (guards the
// div-by-zero the original avoids by early-returning).
func layoutLine(line *Object, fontLib font.Library) {
	if len(line.Children) == 0 {
		line.Height = 0
		return
	}
	var maxAscent, maxDescent float64
	for _, item := range line.Children {
		if item.Font == nil {
			continue
		}
		m := item.Font.Metrics()
		if m.Ascent > maxAscent {
			maxAscent = m.Ascent
		}
		if m.Descent > maxDescent {
			maxDescent = m.Descent
		}
	}
	baseline := line.Y + 1.25*maxAscent
	for _, item := range line.Children {
		if item.Font == nil {
			continue
		}
		m := item.Font.Metrics()
		item.Y = baseline - m.Ascent
		if item.Kind == KindInput {
			item.Height = m.LineHeight
		}
	}
	line.Height = 1.25 * (maxAscent + maxDescent)
}
