package style

import (
	"strings"

	"github.com/hearthframe/wisp/dom"
)

// Selector matches a node and carries a cascade priority (specificity),
// following css_parser.py's TagSelector/DescendantSelector pair.
type Selector interface {
	Matches(n *dom.Node) bool
	Priority() int
}

// TagSelector matches elements by tag name, e.g. "p".
type TagSelector struct {
	Tag string
}

func (s TagSelector) Matches(n *dom.Node) bool {
	return n.Kind == dom.KindElement && n.Tag == s.Tag
}

func (s TagSelector) Priority() int { return 1 }

// DescendantSelector matches a Base selector whose match must itself have
// an ancestor matching Ancestor, e.g. "div p" matches a <p> under a <div>.
type DescendantSelector struct {
	Ancestor Selector
	Base     Selector
}

func (s DescendantSelector) Matches(n *dom.Node) bool {
	if !s.Base.Matches(n) {
		return false
	}
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if s.Ancestor.Matches(cur) {
			return true
		}
	}
	return false
}

func (s DescendantSelector) Priority() int {
	return s.Ancestor.Priority() + s.Base.Priority()
}

// ParseSelector builds a selector chain from a space-separated sequence of
// tag words, per css_parser.py's selector().
func ParseSelector(text string) Selector {
	words := strings.Fields(text)
	if len(words) == 0 {
		return TagSelector{Tag: ""}
	}
	var sel Selector = TagSelector{Tag: words[0]}
	for _, w := range words[1:] {
		sel = DescendantSelector{Ancestor: sel, Base: TagSelector{Tag: w}}
	}
	return sel
}

// Rule is a single selector/declaration-block pair parsed out of a
// stylesheet.
type Rule struct {
	Selector Selector
	Body     map[string]string
}

// SortByPriority stable-sorts rules into ascending cascade-priority order
// (css_parser.py's cascade_priority key), so later, more specific rules
// override earlier ones when applied in sequence.
func SortByPriority(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	// insertion sort: stable, matches willow's small-N sort idiom
	// (rebuildSortedChildren in node.go) better than sort.Slice for this
	// typically-small rule count.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].Selector.Priority() > out[j].Selector.Priority() {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
