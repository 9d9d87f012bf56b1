// Package tokenizer turns console lines into command invocations.
//
// Two grammars are supported. Parse is strict and accepts only finished lines
// ready for execution. ParsePartial is lenient and describes what is being typed
// at the end of an unfinished line so it can be completed.
//
// Grammar (informal, strict form):
//
//	line    := ' '* command ' '* args ' '*
//	command := [A-Za-z][A-Za-z0-9_-]*
//	args    := ( flag? value* )*
//	flag    := '-' command
//	value   := quoted | unquoted
//
// A quoted value is closed by the first matching quote, followed by a separator
// or the end of the line, that lets the rest of the line parse. Unquoted values never start with '-' and never contain
// quotes or separators.
package tokenizer

import (
	"strings"

	"github.com/NikitaCOEUR/devcmd/internal/derrors"
)

// Argument is one flag and the values that follow it.
// Name is empty for the leading positional values.
type Argument struct {
	Name   string
	Values []string
}

// HasName reports whether the argument was introduced by a flag
func (a Argument) HasName() bool {
	return a.Name != ""
}

// HasValue reports whether at least one value was given
func (a Argument) HasValue() bool {
	return len(a.Values) > 0
}

// Value returns the first value or an empty string
func (a Argument) Value() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// Invocation is the result of parsing a finished command line
type Invocation struct {
	Name      string
	Arguments []Argument
	// RawArgs is the argument section trimmed with separator runs collapsed
	// outside quotes. Command verify patterns are matched against it.
	RawArgs string
}

// Parse parses a finished line. The only failure is a line that does not
// match the grammar, reported as *derrors.MalformedLineError.
func Parse(line string) (*Invocation, error) {
	if strings.ContainsRune(line, '\n') {
		return nil, derrors.NewMalformedLineError(line, "line must not contain newlines")
	}

	l := newLexer(line, false)
	name, _, ok := l.command()
	if !ok {
		return nil, derrors.NewMalformedLineError(line, "line must start with a command name")
	}

	argsStart := l.pos
	toks, ok := l.tokens()
	if !ok {
		return nil, derrors.NewMalformedLineError(line, "could not process arguments of "+strings.ToLower(name))
	}

	inv := &Invocation{
		Name:    strings.ToLower(name),
		RawArgs: CollapseSpaces(strings.Trim(string(l.src[argsStart:]), string(Separator))),
	}

	for _, g := range groupTokens(toks) {
		arg := Argument{Values: []string{}}
		if g.flag != nil {
			arg.Name = strings.ToLower(g.flag.text)
		}
		for _, v := range g.values {
			arg.Values = append(arg.Values, v.text)
		}
		if !arg.HasName() && !arg.HasValue() {
			continue
		}
		inv.Arguments = append(inv.Arguments, arg)
	}

	return inv, nil
}

// String renders the invocation back into a line that parses to an
// equivalent invocation.
func (inv *Invocation) String() string {
	var b strings.Builder
	b.WriteString(inv.Name)
	for _, arg := range inv.Arguments {
		if arg.HasName() {
			b.WriteString(" -")
			b.WriteString(arg.Name)
		}
		for _, v := range arg.Values {
			b.WriteRune(Separator)
			b.WriteString(Quote(v))
		}
	}
	return b.String()
}

// Quote returns v as a single value token, quoting it when needed.
func Quote(v string) string {
	if v != "" && !strings.ContainsAny(v, " \"'") && v[0] != '-' {
		return v
	}
	q := string(QuoteChar(v))
	return q + v + q
}

// QuoteChar picks the quote that cannot close early inside v: '"' unless v
// holds a '"' followed by a separator or the end of v. Values where both
// quotes close early cannot be represented since quoted spans have no escapes.
func QuoteChar(v string) rune {
	if closesEarly(v, '"') && !closesEarly(v, '\'') {
		return '\''
	}
	return '"'
}

func closesEarly(v string, q rune) bool {
	src := []rune(v)
	for i, c := range src {
		if c == q && (i+1 == len(src) || src[i+1] == Separator) {
			return true
		}
	}
	return false
}
