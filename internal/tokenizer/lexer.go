package tokenizer

import (
	"strings"
)

// Separator is the only character that splits tokens. Tabs are ordinary characters.
const Separator = ' '

type tokenKind int

const (
	flagToken tokenKind = iota
	valueToken
)

// token is a flag or a value located in the source line. Offsets are rune indexes.
type token struct {
	kind      tokenKind
	text      string // flag name or unquoted value content
	start     int    // index of '-', the opening quote or the first character
	textStart int    // index where text begins
	end       int    // index just past the token
	quote     rune   // opening quote of a quoted value, zero otherwise
	closed    bool   // quoted value has its closing quote
}

// group is one optional flag followed by the values typed after it
type group struct {
	flag   *token
	values []token
}

type lexer struct {
	src     []rune
	pos     int
	lenient bool
	dead    map[int]bool // positions the rest of the line failed to lex from
}

func newLexer(line string, lenient bool) *lexer {
	return &lexer{src: []rune(line), lenient: lenient}
}

func isQuote(c rune) bool {
	return c == '"' || c == '\''
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c rune) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// IsName reports whether s is a valid command or flag name
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if i == 0 && !isLetter(c) {
			return false
		}
		if !isNameChar(c) {
			return false
		}
	}
	return true
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.src) && l.src[l.pos] == Separator {
		l.pos++
	}
}

func (l *lexer) scanName() string {
	start := l.pos
	for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// command consumes leading spaces and the command name
func (l *lexer) command() (name string, start int, ok bool) {
	l.skipSpaces()
	if l.pos >= len(l.src) || !isLetter(l.src[l.pos]) {
		return "", 0, false
	}
	start = l.pos
	return l.scanName(), start, true
}

// tokens lexes the argument section up to the end of the line. A quoted value
// tries its candidate closing quotes in order until the rest of the line lexes.
func (l *lexer) tokens() ([]token, bool) {
	l.dead = make(map[int]bool)
	return l.rest(nil)
}

func (l *lexer) rest(toks []token) ([]token, bool) {
	l.skipSpaces()
	if l.pos >= len(l.src) {
		return toks, true
	}

	// The remainder lexes the same way whatever came before it
	start := l.pos
	if l.dead[start] {
		return nil, false
	}

	var candidates []token
	switch c := l.src[start]; {
	case c == '-':
		if tok, ok := l.flag(); ok {
			candidates = append(candidates, tok)
		}
	case isQuote(c):
		candidates = l.quoted()
	default:
		if tok, ok := l.unquoted(); ok {
			candidates = append(candidates, tok)
		}
	}

	for _, tok := range candidates {
		l.pos = tok.end
		if out, ok := l.rest(append(toks, tok)); ok {
			return out, true
		}
	}

	l.dead[start] = true
	l.pos = start
	return nil, false
}

func (l *lexer) flag() (token, bool) {
	tok := token{kind: flagToken, start: l.pos, textStart: l.pos + 1}
	l.pos++
	if l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		tok.text = l.scanName()
	}
	tok.end = l.pos
	if tok.text != "" {
		return tok, true
	}
	// A bare '-' is only acceptable while the name is still being typed
	return tok, l.lenient
}

// quoted returns the readings of the quoted value at l.pos, shortest first.
// In lenient mode the last reading runs unterminated to the end of the line.
func (l *lexer) quoted() []token {
	start := l.pos
	q := l.src[start]

	var toks []token
	for end := closingQuote(l.src, start, start+1); end >= 0; end = closingQuote(l.src, start, end+1) {
		toks = append(toks, token{
			kind:      valueToken,
			text:      string(l.src[start+1 : end]),
			start:     start,
			textStart: start + 1,
			end:       end + 1,
			quote:     q,
			closed:    true,
		})
	}

	if l.lenient {
		toks = append(toks, token{
			kind:      valueToken,
			text:      string(l.src[start+1:]),
			start:     start,
			textStart: start + 1,
			end:       len(l.src),
			quote:     q,
		})
	}
	return toks
}

func (l *lexer) unquoted() (token, bool) {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != Separator && !isQuote(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && isQuote(l.src[l.pos]) {
		return token{}, false
	}
	text := string(l.src[start:l.pos])
	return token{kind: valueToken, text: text, start: start, textStart: start, end: l.pos}, true
}

// closingQuote returns the index of the first quote matching src[open], at or
// after from, that is followed by a separator or the end of the line, or -1.
func closingQuote(src []rune, open, from int) int {
	q := src[open]
	for i := from; i < len(src); i++ {
		if src[i] != q {
			continue
		}
		if i+1 == len(src) || src[i+1] == Separator {
			return i
		}
	}
	return -1
}

func groupTokens(toks []token) []group {
	var groups []group
	for i := range toks {
		tok := toks[i]
		if tok.kind == flagToken {
			groups = append(groups, group{flag: &tok})
			continue
		}
		if len(groups) == 0 {
			groups = append(groups, group{})
		}
		last := &groups[len(groups)-1]
		last.values = append(last.values, tok)
	}
	return groups
}

// CollapseSpaces replaces every run of two or more separators with a single
// one, leaving quoted spans untouched. Spans are those chosen by the strict
// grammar, or the first closing candidate when args does not parse.
func CollapseSpaces(args string) string {
	src := []rune(args)
	spans := make(map[int]int)
	l := &lexer{src: src}
	if toks, ok := l.tokens(); ok {
		for _, tok := range toks {
			if tok.closed {
				spans[tok.start] = tok.end
			}
		}
	}

	var b strings.Builder
	b.Grow(len(args))

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isQuote(c):
			end, ok := spans[i]
			if !ok {
				end = closingQuote(src, i, i+1) + 1
				if end == 0 {
					end = len(src)
				}
			}
			b.WriteString(string(src[i:end]))
			i = end
		case c == Separator:
			b.WriteRune(Separator)
			for i < len(src) && src[i] == Separator {
				i++
			}
		default:
			b.WriteRune(c)
			i++
		}
	}
	return b.String()
}
