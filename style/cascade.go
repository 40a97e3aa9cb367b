// Package style resolves a node's cascaded style map from a sorted rule
// list plus its inline style attribute, diffs it against the node's
// previous style to start CSS transitions, and folds percentage font
// sizes down to pixels. Grounded on css_parser.py's style()/diff_styles().
package style

import (
	"strconv"
	"strings"

	"github.com/hearthframe/wisp/animate"
	"github.com/hearthframe/wisp/dom"
)

// InheritedProperties are the default values a node without a matching
// rule falls back to, inherited from its parent otherwise.
var InheritedProperties = map[string]string{
	"font-size":   "16px",
	"font-style":  "normal",
	"font-weight": "normal",
	"color":       "black",
}

// TransitionStartedFunc is called whenever Resolve starts a new transition
// animation on property for node, so the caller (the tab/pipeline) can
// mark the frame as needing another render.
type TransitionStartedFunc func(node *dom.Node, property string)

// Resolve recomputes node.Style in place from rules (already sorted by
// ascending cascade priority) and recurses into node's children, exactly
// mirroring css_parser.py's style(node, rules, tab):
//
//  1. start from inherited defaults (parent's resolved value, or the
//     global default at the root)
//  2. apply every matching rule's declarations, in priority order
//  3. apply the inline "style" attribute last (highest priority)
//  4. resolve a percentage font-size against the parent's pixel font-size
//  5. diff against the previous style and start a NumericAnimation for
//     every transitioned property whose value changed
func Resolve(node *dom.Node, rules []Rule, onTransitionStarted TransitionStartedFunc) {
	oldStyle := node.Style
	hadOldStyle := len(oldStyle) > 0
	node.Style = map[string]string{}

	for prop, def := range InheritedProperties {
		if parent := node.Parent(); parent != nil {
			node.Style[prop] = parent.Style[prop]
		} else {
			node.Style[prop] = def
		}
	}

	for _, rule := range rules {
		if !rule.Selector.Matches(node) {
			continue
		}
		for prop, value := range rule.Body {
			node.Style[prop] = value
		}
	}

	if node.Kind == dom.KindElement {
		if inline, ok := node.GetAttribute("style"); ok {
			for prop, value := range NewParser(inline).ParseBody() {
				node.Style[prop] = value
			}
		}
	}

	if fs := node.Style["font-size"]; strings.HasSuffix(fs, "%") {
		parentFontSize := InheritedProperties["font-size"]
		if parent := node.Parent(); parent != nil {
			parentFontSize = parent.Style["font-size"]
		}
		pct, err1 := strconv.ParseFloat(strings.TrimSuffix(fs, "%"), 64)
		parentPx, err2 := strconv.ParseFloat(strings.TrimSuffix(parentFontSize, "px"), 64)
		if err1 == nil && err2 == nil {
			node.Style["font-size"] = formatPx(pct / 100 * parentPx)
		}
	}

	if hadOldStyle {
		for property, t := range DiffStyles(oldStyle, node.Style) {
			if onTransitionStarted != nil {
				onTransitionStarted(node, property)
			}
			anim := animate.NewNumericAnimation(t.OldValue, t.NewValue, t.NumFrames)
			node.Animations[property] = anim
			value, _ := anim.Animate()
			node.Style[property] = value
		}
	}

	for _, child := range node.Children() {
		Resolve(child, rules, onTransitionStarted)
	}
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
