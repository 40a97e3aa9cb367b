package paint

import (
	"strconv"
	"strings"

	"github.com/hearthframe/wisp/canvas"
	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/layout"
)

func parseColor(name string) canvas.Color {
	switch name {
	case "white":
		return canvas.Color{R: 1, G: 1, B: 1, A: 1}
	case "gray":
		return canvas.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	case "lightblue":
		return canvas.Color{R: 0.68, G: 0.85, B: 0.9, A: 1}
	case "orange":
		return canvas.Color{R: 1, G: 0.65, B: 0, A: 1}
	case "orangered":
		return canvas.Color{R: 1, G: 0.27, B: 0, A: 1}
	case "transparent":
		return canvas.Color{}
	default:
		return canvas.Color{A: 1} // black: every other named color a page might use
	}
}

// PaintTree recursively builds the display-list tree for obj and its
// descendants, returning the commands obj itself contributes (still
// unwrapped by obj's own visual effects — the caller, typically
// PaintObjectTree, wraps each block/document object's subtree in
// PaintVisualEffects), matching helpers.py's paint_tree driving each
// layout object's own paint() method.
func PaintTree(obj *layout.Object) []Command {
	switch obj.Kind {
	case layout.KindText:
		return []Command{NewDrawText(obj.X, obj.Y, obj.Word, obj.Font, parseColor(colorOf(obj)))}
	case layout.KindInput:
		return paintInput(obj)
	default:
		var cmds []Command
		for _, child := range obj.Children {
			cmds = append(cmds, PaintTree(child)...)
		}
		return cmds
	}
}

func colorOf(obj *layout.Object) string {
	if obj.Node == nil {
		return "black"
	}
	if c := obj.Node.Style["color"]; c != "" {
		return c
	}
	return "black"
}

// PaintObjectTree wraps obj's subtree commands in the visual-effect chain
// its own style implies, for every Kind that carries a styled dom.Node
// (Block/Document); Line/Text objects have no node of their own to style
// and simply forward their children's commands unwrapped.
func PaintObjectTree(obj *layout.Object) []Command {
	switch obj.Kind {
	case layout.KindText, layout.KindLine:
		return PaintTree(obj)
	case layout.KindInput:
		return paintInput(obj)
	default:
		var childCmds []Command
		for _, child := range obj.Children {
			childCmds = append(childCmds, PaintObjectTree(child)...)
		}
		if obj.Node == nil {
			return childCmds
		}
		rect := Rect{X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height}
		cmds := append(backgroundCommand(obj.Node, rect), childCmds...)
		return []Command{PaintVisualEffects(obj.Node, cmds, rect)}
	}
}

// backgroundCommand returns obj's own background fill as a single-element
// slice, painted before its children, matching block_layout.py's
// BlockLayout.paint: `if bgcolor != "transparent": cmds.append(DrawRRect(
// self_rect, radius, bgcolor))`.
func backgroundCommand(node *dom.Node, rect Rect) []Command {
	bg := node.Style["background-color"]
	if bg == "" || bg == "transparent" {
		return nil
	}
	radius := 0.0
	if v := node.Style["border-radius"]; strings.HasSuffix(v, "px") {
		radius, _ = strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	}
	return []Command{NewDrawRRect(rect, radius, parseColor(bg))}
}

// paintInput draws an <input>/<button> box, matching input_layout.py's
// InputLayout.paint: background fill, the value text (or the button's
// text child), and a focus cursor line.
func paintInput(obj *layout.Object) []Command {
	var cmds []Command
	rect := Rect{X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height}

	bg := "transparent"
	if obj.Node != nil {
		if v := obj.Node.Style["background-color"]; v != "" {
			bg = v
		}
	}
	if bg != "transparent" {
		cmds = append(cmds, NewDrawRect(rect, parseColor(bg)))
	}

	text := inputText(obj)
	color := parseColor(colorOf(obj))
	if obj.Font != nil {
		cmds = append(cmds, NewDrawText(obj.X, obj.Y, text, obj.Font, color))
		if obj.Node != nil && obj.Node.IsFocused {
			cursorX := obj.X + obj.Font.MeasureText(text)
			m := obj.Font.Metrics()
			cmds = append(cmds, NewDrawLine(cursorX, obj.Y, cursorX, obj.Y+m.LineHeight, color, 1))
		}
	}
	return cmds
}

func inputText(obj *layout.Object) string {
	if obj.Node == nil {
		return ""
	}
	if obj.Node.Tag == "input" {
		v, _ := obj.Node.GetAttribute("value")
		return v
	}
	for _, c := range obj.Node.Children() {
		if c.Kind == dom.KindText {
			return c.Text
		}
	}
	return ""
}
