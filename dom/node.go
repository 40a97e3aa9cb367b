// Package dom holds the HTML document tree: Element and Text nodes, their
// attributes, resolved style, and the per-node animation map the style
// cascade installs transitions into.
package dom

import "github.com/hearthframe/wisp/animate"

var nodeIDCounter uint64

// nextNodeID hands out a monotonically increasing id. The tab that owns a
// document tree runs on a single goroutine at a time (the task queue
// serializes it), so this does not need to be atomic.
func nextNodeID() uint64 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an Element or a Text node. Both kinds share the same struct,
// following willow's flat-struct-with-kind-enum idiom rather than an
// interface hierarchy per node kind.
type Node struct {
	id uint64

	Kind Kind

	// Element fields.
	Tag        string
	Attributes *AttrMap

	// Text fields.
	Text string

	IsFocused bool

	Style      map[string]string
	Animations map[string]*animate.NumericAnimation

	// BlendOp is set by the painter when it wraps this element's paint
	// commands in a Blend visual-effect node, so later style changes that
	// touch opacity/mix-blend-mode/transform can find it again.
	BlendOp interface{}

	parent   *Node
	children []*Node
}

// Kind distinguishes Element from Text nodes.
type Kind int

const (
	KindElement Kind = iota
	KindText
)

// NewElement constructs an unattached element node.
func NewElement(tag string) *Node {
	return &Node{
		id:         nextNodeID(),
		Kind:       KindElement,
		Tag:        tag,
		Attributes: newAttrMap(),
		Style:      map[string]string{},
		Animations: map[string]*animate.NumericAnimation{},
	}
}

// NewText constructs an unattached text node.
func NewText(text string) *Node {
	return &Node{
		id:         nextNodeID(),
		Kind:       KindText,
		Text:       text,
		Style:      map[string]string{},
		Animations: map[string]*animate.NumericAnimation{},
	}
}

// ID returns the node's stable identity, used as a map key by layers that
// need to track per-node state (e.g. composited-layer invalidation).
func (n *Node) ID() uint64 { return n.id }

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in order. Callers must not mutate
// the returned slice.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// AppendChild appends child to n's children, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// IsAncestor reports whether n is an ancestor of other (or other itself).
func (n *Node) IsAncestor(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// GetAttribute returns an element's attribute value and whether it was
// present. Text nodes never have attributes.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Kind != KindElement {
		return "", false
	}
	return n.Attributes.Get(name)
}

// SetAttribute sets or replaces an element attribute.
func (n *Node) SetAttribute(name, value string) {
	if n.Kind != KindElement {
		return
	}
	n.Attributes.Set(name, value)
}

// IsBlockElement reports whether tag is one of the block-level tags the
// layout tree's mode decision checks for (spec.md's layout-mode rule).
func IsBlockElement(tag string) bool {
	return blockElements[tag]
}

var blockElements = map[string]bool{
	"html": true, "body": true, "article": true, "section": true, "nav": true,
	"aside": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "hgroup": true, "header": true, "footer": true, "address": true,
	"p": true, "hr": true, "pre": true, "blockquote": true, "ol": true, "ul": true,
	"menu": true, "li": true, "dl": true, "dt": true, "dd": true, "figure": true,
	"figcaption": true, "main": true, "div": true, "table": true, "form": true,
	"fieldset": true, "legend": true, "details": true, "summary": true,
}

// Walk visits n and every descendant in pre-order.
func Walk(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		Walk(c, visit)
	}
}

// Find returns the first node in n's subtree (pre-order, including n) for
// which match returns true, or nil.
func Find(n *Node, match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in n's subtree (pre-order, including n) for
// which match returns true.
func FindAll(n *Node, match func(*Node) bool) []*Node {
	var out []*Node
	Walk(n, func(cur *Node) {
		if match(cur) {
			out = append(out, cur)
		}
	})
	return out
}
