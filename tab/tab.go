// Package tab drives a single browser tab: navigation, the load sequence,
// click/scroll/keypress handling, and the style->layout->paint render
// pipeline. Grounded on tab.py (load, click, submit_form, scrolldown/
// scrollup, go_back, allowed_request, keypress, draw).
package tab

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hearthframe/wisp/browserhttp"
	"github.com/hearthframe/wisp/dom"
	"github.com/hearthframe/wisp/font"
	"github.com/hearthframe/wisp/htmldoc"
	"github.com/hearthframe/wisp/layout"
	"github.com/hearthframe/wisp/paint"
	"github.com/hearthframe/wisp/pipeline"
	"github.com/hearthframe/wisp/scripting"
	"github.com/hearthframe/wisp/style"
	"github.com/hearthframe/wisp/weburl"
)

// ScrollStep is the pixel delta a single scroll wheel tick moves the page,
// matching tab.py's SCROLL_STEP.
const ScrollStep = 50

// DefaultStyleSheet is the always-applied base stylesheet, standing in for
// browser.css from the original source (not retrieved; a minimal
// equivalent covering the tags block_layout.py singled out).
const DefaultStyleSheet = `
a { color: blue; }
p { font-size: 16px; }
`

// Tab owns one document's navigation state, DOM/style/layout/paint trees,
// and dirty-bit pipeline.
type Tab struct {
	ViewportWidth, ViewportHeight float64

	Client   *browserhttp.Client
	FontLib  font.Library
	Engine   scripting.Engine

	URL          weburl.URL
	Document     *dom.Node
	Rules        []style.Rule
	History      []weburl.URL
	ScrollOffset float64
	Focus        *dom.Node

	AllowedOrigins []string // nil means "no CSP restriction"

	Driver *pipeline.Driver

	DocumentLayout *layout.Object
	DisplayList    []paint.Command
}

// New returns an empty Tab ready to Load a URL.
func New(viewportWidth, viewportHeight float64, fontLib font.Library) *Tab {
	return &Tab{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Client:         browserhttp.NewClient(),
		FontLib:        fontLib,
		Engine:         scripting.NoopEngine{},
		Driver:         pipeline.NewDriver(),
	}
}

// AllowedRequest reports whether fetching target is permitted under the
// page's content-security-policy, matching tab.py's allowed_request:
// unrestricted when no CSP "default-src" was ever seen.
func (t *Tab) AllowedRequest(target weburl.URL) bool {
	if t.AllowedOrigins == nil {
		return true
	}
	for _, origin := range t.AllowedOrigins {
		if origin == target.Origin() {
			return true
		}
	}
	return false
}

// Load navigates the tab to u, optionally POSTing payload, running the
// full load sequence: fetch, parse, CSP, scripts, stylesheets, render.
// Matches tab.py's load().
func (t *Tab) Load(u weburl.URL, payload []byte) error {
	t.ScrollOffset = 0
	t.History = append(t.History, u)
	t.Focus = nil

	body, headers, err := t.fetch(u, payload)
	if err != nil {
		return fmt.Errorf("tab: loading %s: %w", u.String(), err)
	}

	t.URL = u
	t.Document = htmldoc.Parse(string(body))

	t.AllowedOrigins = nil
	if csp, ok := headers["content-security-policy"]; ok {
		t.AllowedOrigins = parseCSP(csp, u)
	}

	t.Rules = nil
	t.Rules = append(t.Rules, style.NewParser(DefaultStyleSheet).ParseStylesheet()...)

	for _, linkNode := range dom.FindAll(t.Document, isStylesheetLink) {
		href, _ := linkNode.GetAttribute("href")
		sheetURL, err := u.Resolve(href)
		if err != nil || !t.AllowedRequest(sheetURL) {
			continue
		}
		sheetBody, _, err := t.fetch(sheetURL, nil)
		if err != nil {
			continue
		}
		t.Rules = append(t.Rules, style.NewParser(string(sheetBody)).ParseStylesheet()...)
	}
	t.Rules = style.SortByPriority(t.Rules)

	for _, scriptNode := range dom.FindAll(t.Document, isExternalScript) {
		src, _ := scriptNode.GetAttribute("src")
		scriptURL, err := u.Resolve(src)
		if err != nil || !t.AllowedRequest(scriptURL) {
			continue
		}
		scriptBody, _, err := t.fetch(scriptURL, nil)
		if err != nil {
			continue
		}
		_ = t.Engine.Run(string(scriptBody))
	}

	t.Driver.Bits.MarkStyleDirty()
	t.Render()
	return nil
}

// fetch retrieves u's body and response headers, dispatching to the raw
// HTTP/1.0 client for http/https and reading/decoding directly for the
// file and data schemes browserhttp intentionally does not implement.
func (t *Tab) fetch(u weburl.URL, payload []byte) ([]byte, map[string]string, error) {
	switch u.Scheme {
	case "file":
		body, err := os.ReadFile(u.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return body, nil, nil
	case "data":
		return []byte(u.DataBody), nil, nil
	default:
		var resp *browserhttp.Response
		var err error
		if payload != nil {
			resp, err = t.Client.Post(u, payload)
		} else {
			resp, err = t.Client.Get(u)
		}
		if err != nil {
			return nil, nil, err
		}
		return resp.Body, resp.Headers, nil
	}
}

func isStylesheetLink(n *dom.Node) bool {
	if n.Kind != dom.KindElement || n.Tag != "link" {
		return false
	}
	rel, _ := n.GetAttribute("rel")
	return rel == "stylesheet"
}

func isExternalScript(n *dom.Node) bool {
	if n.Kind != dom.KindElement || n.Tag != "script" {
		return false
	}
	_, ok := n.GetAttribute("src")
	return ok
}

// parseCSP extracts the "default-src" origin allow-list from a
// content-security-policy header value, normalizing every origin through
// weburl.URL.Origin() on both the stored list and later comparisons
// (spec §9(a)'s resolved open question).
func parseCSP(header string, pageURL weburl.URL) []string {
	fields := strings.Fields(header)
	if len(fields) == 0 || fields[0] != "default-src" {
		return nil
	}
	var origins []string
	for _, raw := range fields[1:] {
		if raw == "'self'" {
			origins = append(origins, pageURL.Origin())
			continue
		}
		u, err := weburl.Parse(raw)
		if err != nil {
			continue
		}
		origins = append(origins, u.Origin())
	}
	return origins
}

// Render runs whichever of style -> layout -> paint are dirty, matching tab.py's render(): style(nodes, rules) -> DocumentLayout(...).
// layout() -> paint_tree(document, display_list).
func (t *Tab) Render() {
	t.Driver.Style = func() {
		style.Resolve(t.Document, t.Rules, t.onTransitionStarted)
	}
	t.Driver.Layout = func() {
		t.DocumentLayout = layout.BuildDocument(t.Document, t.ViewportWidth, t.FontLib)
	}
	t.Driver.Paint = func() {
		t.DisplayList = paint.PaintObjectTree(t.DocumentLayout)
	}
	t.Driver.RunTabSide()
}

func (t *Tab) onTransitionStarted(node *dom.Node, property string) {
	t.Driver.Bits.MarkStyleDirty()
}

// MaxScroll returns the largest permissible ScrollOffset, clamping to zero
// for pages shorter than the viewport, matching tab.py's scrolldown clamp.
func (t *Tab) MaxScroll() float64 {
	if t.DocumentLayout == nil {
		return 0
	}
	max := t.DocumentLayout.Height + 2*layout.VStep - t.ViewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// ScrollDown scrolls the page down by ScrollStep, clamped to MaxScroll.
func (t *Tab) ScrollDown() {
	t.ScrollOffset += ScrollStep
	if max := t.MaxScroll(); t.ScrollOffset > max {
		t.ScrollOffset = max
	}
}

// ScrollUp scrolls the page up by ScrollStep, clamped to zero.
func (t *Tab) ScrollUp() {
	t.ScrollOffset -= ScrollStep
	if t.ScrollOffset < 0 {
		t.ScrollOffset = 0
	}
}

// HasPendingAnimations reports whether any node in the document still has
// an active transition, the tab-thread half of spec §5's "schedule_
// animation_frame sets an armed timer iff needs_animation_frame" check
// (the UI thread cannot read the document directly, so this is evaluated
// here and carried out in the commit snapshot).
func (t *Tab) HasPendingAnimations() bool {
	if t.Document == nil {
		return false
	}
	pending := false
	dom.Walk(t.Document, func(n *dom.Node) {
		if len(n.Animations) > 0 {
			pending = true
		}
	})
	return pending
}

// RunAnimationFrame advances every node's active transitions by one
// frame, matching compositing.py's NumericAnimation.animate driven once
// per rAF tick. A compositable property (currently only opacity, per
// spec §4.H) updates its node's live Blend in place and queues a
// draw-only composited update instead of forcing a full render; any
// other animated property marks layout dirty, triggering the
// layout/paint/composite/raster/draw cascade on the next Render.
func (t *Tab) RunAnimationFrame() {
	if t.Document == nil {
		return
	}
	dom.Walk(t.Document, func(n *dom.Node) {
		for property, anim := range n.Animations {
			value, done := anim.Animate()
			n.Style[property] = value
			t.applyAnimatedProperty(n, property, value)
			if done {
				delete(n.Animations, property)
			}
		}
	})
}

// applyAnimatedProperty routes one property's newly-animated value either
// to the draw-only composited-update path (opacity) or to a full-layout
// invalidation (everything else), per spec §4.H.
func (t *Tab) applyAnimatedProperty(n *dom.Node, property, value string) {
	if property != "opacity" {
		t.Driver.Bits.MarkLayoutDirty()
		return
	}
	opacity, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return
	}
	if blend, ok := n.BlendOp.(*paint.Blend); ok {
		blend.Opacity = opacity
	}
	t.Driver.QueueCompositedUpdate(n.ID(), opacity)
}

// GoBack pops the current entry and reloads the one before it, matching
// tab.py's go_back (only when there is a previous entry to return to).
func (t *Tab) GoBack() error {
	if len(t.History) <= 1 {
		return nil
	}
	t.History = t.History[:len(t.History)-1]
	previous := t.History[len(t.History)-1]
	t.History = t.History[:len(t.History)-1]
	return t.Load(previous, nil)
}

// KeyPress appends ch to the focused input's value, or dispatches a
// keydown event if the focus is on a non-input element, matching
// tab.py's keypress.
func (t *Tab) KeyPress(ch rune) {
	if t.Focus == nil {
		return
	}
	if t.Focus.Tag != "input" {
		_, _ = t.Engine.DispatchEvent("keydown", t.Focus)
		return
	}
	value, _ := t.Focus.GetAttribute("value")
	t.Focus.SetAttribute("value", value+string(ch))
	t.Driver.Bits.MarkLayoutDirty()
	t.Render()
}

// Click hits-tests the document at (x, y) in page coordinates (the caller
// adds ScrollOffset), walks the clicked node's ancestors looking for an
// interactive element, and acts on the first one found, matching
// tab.py's click: focus inputs, follow <a href>, and submit the enclosing
// <form> for a <button>. Focusing an input only records it in t.Focus; the
// node's IsFocused flag is not set and nothing is repainted, so no text
// cursor is drawn for it.
func (t *Tab) Click(x, y float64) error {
	t.Focus = nil
	obj := hitTest(t.DocumentLayout, x, y)
	if obj == nil || obj.Node == nil {
		t.Driver.Bits.MarkDrawOnlyDirty()
		return nil
	}

	for n := obj.Node; n != nil; n = n.Parent() {
		switch n.Tag {
		case "a":
			if href, ok := n.GetAttribute("href"); ok {
				target, err := t.URL.Resolve(href)
				if err != nil || !t.AllowedRequest(target) {
					return nil
				}
				return t.Load(target, nil)
			}
		case "input":
			t.Focus = n
			t.Driver.Bits.MarkDrawOnlyDirty()
			return nil
		case "button":
			if form := enclosingForm(n); form != nil {
				return t.submitForm(form)
			}
			return nil
		}
	}
	return nil
}

func hitTest(obj *layout.Object, x, y float64) *layout.Object {
	if obj == nil {
		return nil
	}
	if x < obj.X || x > obj.X+obj.Width || y < obj.Y || y > obj.Y+obj.Height {
		return nil
	}
	var deepest *layout.Object
	if obj.Node != nil {
		deepest = obj
	}
	for _, child := range obj.Children {
		if hit := hitTest(child, x, y); hit != nil {
			deepest = hit
		}
	}
	return deepest
}

func enclosingForm(n *dom.Node) *dom.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "form" {
			return p
		}
	}
	return nil
}

// submitForm collects every descendant <input name> value, urlencodes
// them, and POSTs the body to the form's action URL, matching tab.py's
// submit_form.
func (t *Tab) submitForm(form *dom.Node) error {
	var pairs [][2]string
	for _, input := range dom.FindAll(form, func(n *dom.Node) bool {
		return n.Kind == dom.KindElement && n.Tag == "input"
	}) {
		name, ok := input.GetAttribute("name")
		if !ok {
			continue
		}
		value, _ := input.GetAttribute("value")
		pairs = append(pairs, [2]string{name, value})
	}

	action, _ := form.GetAttribute("action")
	target, err := t.URL.Resolve(action)
	if err != nil || !t.AllowedRequest(target) {
		return nil
	}
	return t.Load(target, []byte(urlEncode(pairs)))
}

// urlEncode matches tab.py's submit_form percent-encoding via
// net/url.QueryEscape (the standard library's direct equivalent of
// Python's urllib.parse.quote used for form bodies).
func urlEncode(pairs [][2]string) string {
	var parts []string
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return strings.Join(parts, "&")
}
