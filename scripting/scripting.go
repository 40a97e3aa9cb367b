// Package scripting defines the script context interface a tab hands its
// embedded JS engine, plus a no-op stub implementation. The interpreter
// itself is an explicit external collaborator spec.md leaves out of
// scope; no example repo in the pack is a JS engine, so only the export
// surface and a stub proving the tab package's event-dispatch plumbing
// are implemented here. Grounded on js_context.py's export surface.
package scripting

import "github.com/hearthframe/wisp/dom"

// XMLHttpRequestResult is what a script-initiated fetch resolves to.
type XMLHttpRequestResult struct {
	Status int
	Body   string
	Err    error
}

// Host is the set of callbacks a script engine can invoke against the
// owning tab, matching js_context.py's exported Python functions
// (querySelectorAll, getAttribute, innerHTML_set, style_set,
// XMLHttpRequest_send, setTimeout, requestAnimationFrame).
type Host interface {
	Log(message string)
	QuerySelectorAll(selector string) []*dom.Node
	GetAttribute(node *dom.Node, name string) (string, bool)
	SetInnerHTML(node *dom.Node, html string)
	SetStyleAttribute(node *dom.Node, css string)
	XMLHttpRequestSend(method, url string, body string, async bool) (*XMLHttpRequestResult, error)
	SetTimeout(delayMs int, callback func())
	RequestAnimationFrame(callback func())
}

// Engine runs script source against a Host and dispatches DOM events into
// it.
type Engine interface {
	Run(source string) error
	DispatchEvent(eventType string, node *dom.Node) (handled bool, err error)
}

// NoopEngine discards every script it is asked to run and reports every
// event as unhandled, used by tests and as the default engine before a
// real interpreter is wired in.
type NoopEngine struct{}

func (NoopEngine) Run(source string) error { return nil }

func (NoopEngine) DispatchEvent(eventType string, node *dom.Node) (bool, error) {
	return false, nil
}
