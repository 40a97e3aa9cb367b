// Package htmldoc parses HTML text into a dom.Node tree with a small,
// total, single-pass tokenizer. It is deliberately not a conformant
// WHATWG HTML parser (spec.md's Non-goals exclude "conformant HTML
// parsing", not the presence of an HTML parser at all); no original
// html_parser.py survived retrieval, so this is written fresh in the
// teacher's small-total-function idiom rather than adopting
// golang.org/x/net/html, which implements the full tree-construction
// algorithm the spec excludes.
package htmldoc

import (
	"strings"

	"github.com/hearthframe/wisp/dom"
)

// selfClosingTags never get pushed onto the open-element stack.
var selfClosingTags = map[string]bool{
	"br": true, "img": true, "input": true, "link": true, "meta": true, "hr": true,
}

// headOnlyTags are moved under <head> regardless of where they appear in
// the source, matching a browser's usual leniency about a stray <title>
// or <link> showing up after <body> has implicitly started.
var headOnlyTags = map[string]bool{"title": true, "link": true, "meta": true}

// Parse tokenizes html and builds a dom tree, returning the implicit
// <html> root with <head> and <body> children. Unclosed tags are
// auto-closed at end of input; unmatched closing tags are ignored.
func Parse(html string) *dom.Node {
	root := dom.NewElement("html")
	head := dom.NewElement("head")
	body := dom.NewElement("body")
	root.AppendChild(head)
	root.AppendChild(body)

	stack := []*dom.Node{body}

	var text strings.Builder
	flushText := func() {
		if text.Len() == 0 {
			return
		}
		top(stack).AppendChild(dom.NewText(text.String()))
		text.Reset()
	}

	i := 0
	for i < len(html) {
		if html[i] == '<' {
			end := strings.IndexByte(html[i:], '>')
			if end < 0 {
				text.WriteString(html[i:])
				break
			}
			flushText()
			tagText := html[i+1 : i+end]
			i += end + 1

			if strings.HasPrefix(tagText, "!") {
				continue
			}

			if strings.HasPrefix(tagText, "/") {
				tagName := strings.ToLower(strings.TrimSpace(tagText[1:]))
				stack = popTo(stack, tagName)
				continue
			}

			trimmed := strings.TrimSpace(tagText)
			selfClose := strings.HasSuffix(trimmed, "/")
			trimmed = strings.TrimSuffix(trimmed, "/")
			name, attrs := parseTag(trimmed)
			name = strings.ToLower(name)
			if name == "" {
				continue
			}

			el := dom.NewElement(name)
			for k, v := range attrs {
				el.SetAttribute(k, v)
			}

			if headOnlyTags[name] || name == "head" {
				head.AppendChild(el)
			} else if name == "html" || name == "body" {
				// ignore explicit <html>/<body> open tags; the implicit
				// root/body already exist.
			} else {
				top(stack).AppendChild(el)
			}

			if name != "head" && name != "html" && name != "body" &&
				!selfClosingTags[name] && !selfClose {
				stack = append(stack, el)
			}
			continue
		}
		text.WriteByte(html[i])
		i++
	}
	flushText()
	return root
}

func top(stack []*dom.Node) *dom.Node {
	return stack[len(stack)-1]
}

// popTo closes elements up to and including the nearest open tagName,
// leaving the root of stack (body) in place even if the closing tag never
// matched anything open.
func popTo(stack []*dom.Node, tagName string) []*dom.Node {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Tag == tagName {
			if i == 0 {
				return stack[:1]
			}
			return stack[:i]
		}
	}
	return stack
}

// parseTag splits "tagname attr1=val1 attr2="val2"" into the tag name and
// an attribute map, matching the attribute-word scanning style of
// css_parser.py's word()/pair() (quote-aware, alnum-plus-punctuation).
func parseTag(tagText string) (string, map[string]string) {
	fields := splitTagFields(tagText)
	if len(fields) == 0 {
		return "", nil
	}
	attrs := map[string]string{}
	for _, f := range fields[1:] {
		name, value, ok := strings.Cut(f, "=")
		name = strings.ToLower(name)
		if !ok {
			attrs[name] = ""
			continue
		}
		value = strings.Trim(value, `"'`)
		attrs[name] = value
	}
	return fields[0], attrs
}

// splitTagFields splits on whitespace but keeps quoted attribute values
// (which may themselves contain spaces) intact.
func splitTagFields(s string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := byte(0)
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote != 0:
			cur.WriteByte(ch)
			if ch == inQuote {
				inQuote = 0
			}
		case ch == '"' || ch == '\'':
			inQuote = ch
			cur.WriteByte(ch)
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return fields
}
