package tokenizer

import (
	"strings"
)

// Target is what the end of an unfinished line is typing:
// an ArgNameTarget or an ArgValueTarget.
type Target interface {
	target()
}

// ArgNameTarget means a flag name is being typed
type ArgNameTarget struct {
	NameSoFar string
	// Offset is the rune index just after the '-'
	Offset int
}

// ArgValueTarget means a value is being typed or is about to start
type ArgValueTarget struct {
	// ArgName is the lowercased flag owning the value, empty for positional values
	ArgName    string
	ValueIndex int
	ValueSoFar string
	// Offset is the rune index where the value text begins, after any opening quote
	Offset    int
	Quoted    bool
	QuoteChar rune
}

func (ArgNameTarget) target()  {}
func (ArgValueTarget) target() {}

// PartialState describes an unfinished line
type PartialState struct {
	// CommandName is lowercased, CommandText keeps the typed casing
	CommandName   string
	CommandText   string
	CommandOffset int
	// CommandIncomplete is set when the line ends inside the command name.
	// Target is nil in that case.
	CommandIncomplete bool
	Target            Target
}

// ParsePartial classifies an unfinished line. It reports false when the line
// cannot be completed at all.
func ParsePartial(line string) (*PartialState, bool) {
	if strings.ContainsRune(line, '\n') {
		return nil, false
	}

	l := newLexer(line, true)
	name, start, ok := l.command()
	if !ok {
		return nil, false
	}

	state := &PartialState{
		CommandName:   strings.ToLower(name),
		CommandText:   name,
		CommandOffset: start,
	}

	end := len(l.src)
	if l.pos == end {
		state.CommandIncomplete = true
		return state, true
	}

	toks, ok := l.tokens()
	if !ok {
		return nil, false
	}

	trailingSpace := l.src[end-1] == Separator
	if len(toks) == 0 {
		// Only separators after the command: the first positional value starts here
		state.Target = ArgValueTarget{Offset: end}
		return state, true
	}

	groups := groupTokens(toks)
	last := groups[len(groups)-1]

	argName := ""
	if last.flag != nil {
		argName = strings.ToLower(last.flag.text)
	}

	if len(last.values) == 0 {
		if trailingSpace {
			state.Target = ArgValueTarget{ArgName: argName, Offset: end}
		} else {
			state.Target = ArgNameTarget{NameSoFar: last.flag.text, Offset: last.flag.textStart}
		}
		return state, true
	}

	count := len(last.values)
	value := last.values[count-1]
	switch {
	case value.quote != 0 && !value.closed:
		state.Target = ArgValueTarget{
			ArgName:    argName,
			ValueIndex: count - 1,
			ValueSoFar: value.text,
			Offset:     value.textStart,
			Quoted:     true,
			QuoteChar:  value.quote,
		}
	case trailingSpace:
		state.Target = ArgValueTarget{ArgName: argName, ValueIndex: count, Offset: end}
	case value.quote == 0:
		state.Target = ArgValueTarget{
			ArgName:    argName,
			ValueIndex: count - 1,
			ValueSoFar: value.text,
			Offset:     value.textStart,
		}
	default:
		// A closed quote touching the end of the line: nothing left to complete
		return nil, false
	}

	return state, true
}
