package style

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Parser tokenizes CSS text with tdewolff's css lexer and assembles
// selector/declaration-block pairs, following the recursive-descent shape
// of css_parser.py's CSSParser (selector/body/parse) but driven off real
// tokens instead of raw character classes.
type Parser struct {
	lexer *css.Lexer
	peeked *peekedToken
}

type peekedToken struct {
	tt  css.TokenType
	lit string
}

// NewParser returns a parser over CSS source text.
func NewParser(text string) *Parser {
	return &Parser{lexer: css.NewLexer(parse.NewInputString(text))}
}

func (p *Parser) next() (css.TokenType, string) {
	if p.peeked != nil {
		tt, lit := p.peeked.tt, p.peeked.lit
		p.peeked = nil
		return tt, lit
	}
	for {
		tt, b := p.lexer.Next()
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		return tt, string(b)
	}
}

func (p *Parser) peek() (css.TokenType, string) {
	if p.peeked == nil {
		tt, lit := p.next()
		p.peeked = &peekedToken{tt: tt, lit: lit}
	}
	return p.peeked.tt, p.peeked.lit
}

// ParseBody parses a sequence of "prop: value;" declarations up to EOF or
// an unmatched "}", matching css_parser.py's body(), including its
// skip-to-next-";"-or-"}" error recovery (spec §7: malformed declarations
// are dropped, not fatal).
func (p *Parser) ParseBody() map[string]string {
	out := map[string]string{}
	for {
		tt, lit := p.peek()
		if tt == css.ErrorToken || tt == css.RightBraceToken {
			return out
		}
		prop, value, ok := p.parsePair()
		if !ok {
			p.recoverUntil(css.SemicolonToken, css.RightBraceToken)
			continue
		}
		out[strings.ToLower(prop)] = value
		if tt2, _ := p.peek(); tt2 == css.SemicolonToken {
			p.next()
		}
		_ = lit
	}
}

func (p *Parser) parsePair() (prop, value string, ok bool) {
	tt, lit := p.next()
	if tt == css.ErrorToken {
		return "", "", false
	}
	prop = lit

	tt, _ = p.next()
	if tt != css.ColonToken {
		return "", "", false
	}

	var valueParts []string
	for {
		tt, lit := p.peek()
		if tt == css.SemicolonToken || tt == css.RightBraceToken || tt == css.ErrorToken {
			break
		}
		p.next()
		valueParts = append(valueParts, lit)
	}
	if len(valueParts) == 0 {
		return "", "", false
	}
	return prop, strings.TrimSpace(strings.Join(valueParts, " ")), true
}

func (p *Parser) recoverUntil(stop ...css.TokenType) {
	for {
		tt, _ := p.peek()
		if tt == css.ErrorToken {
			return
		}
		for _, s := range stop {
			if tt == s {
				if tt == css.SemicolonToken {
					p.next()
				}
				return
			}
		}
		p.next()
	}
}

// ParseStylesheet parses "selector { body }" blocks until EOF, matching
// css_parser.py's parse(), including per-rule error recovery so one
// malformed rule does not abort the rest of the sheet.
func (p *Parser) ParseStylesheet() []Rule {
	var rules []Rule
	for {
		tt, _ := p.peek()
		if tt == css.ErrorToken {
			return rules
		}
		sel, ok := p.parseSelector()
		if !ok {
			p.recoverUntil(css.RightBraceToken)
			continue
		}
		if tt, _ := p.peek(); tt == css.LeftBraceToken {
			p.next()
		} else {
			p.recoverUntil(css.RightBraceToken)
			continue
		}
		body := p.ParseBody()
		if tt, _ := p.peek(); tt == css.RightBraceToken {
			p.next()
		}
		rules = append(rules, Rule{Selector: sel, Body: body})
	}
}

func (p *Parser) parseSelector() (Selector, bool) {
	var words []string
	for {
		tt, lit := p.peek()
		if tt == css.LeftBraceToken || tt == css.ErrorToken {
			break
		}
		p.next()
		words = append(words, lit)
	}
	if len(words) == 0 {
		return nil, false
	}
	return ParseSelector(strings.Join(words, " ")), true
}
