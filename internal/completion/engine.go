package completion

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/NikitaCOEUR/devcmd/internal/logger"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
	"github.com/NikitaCOEUR/devcmd/internal/trie"
)

// Kind is the sort of token being completed
type Kind int

const (
	KindCommand Kind = iota
	KindArgName
	KindArgValue
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindArgName:
		return "argument"
	case KindArgValue:
		return "value"
	default:
		return "unknown"
	}
}

// Resolution is the completion target of a line together with the trie
// that serves it
type Resolution struct {
	Kind Kind
	// Key.Command is always set. Arg and Index only for values.
	Key     ValueKey
	Partial string
	// Offset is the rune index in the line where Partial begins
	Offset          int
	Quoted          bool
	Quote           rune
	CaseInsensitive bool
	Sort            bool

	trie *trie.Trie
}

// Engine completes lines against a Registry. Tries are built on first use
// and kept until Reset: the command trie and argument tries always, value
// tries only when their source carries FlagCache.
type Engine struct {
	registry Registry
	log      *logger.Logger

	mu       sync.Mutex
	commands *trie.Trie
	args     map[string]*trie.Trie
	values   map[ValueKey]*trie.Trie
}

// NewEngine creates an engine over registry. A nil log discards output.
func NewEngine(registry Registry, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{
		registry: registry,
		log:      log,
		args:     make(map[string]*trie.Trie),
		values:   make(map[ValueKey]*trie.Trie),
	}
}

// Reset drops every cached trie so registry changes become visible
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.commands = nil
	clear(e.args)
	clear(e.values)
}

// Resolve classifies the end of line and fetches the trie to complete it
// with. It reports false when there is nothing to complete against.
func (e *Engine) Resolve(line string) (*Resolution, bool) {
	state, ok := tokenizer.ParsePartial(line)
	if !ok {
		return nil, false
	}

	res := &Resolution{Key: ValueKey{Command: state.CommandName}}

	if state.CommandIncomplete {
		res.Kind = KindCommand
		res.Partial = state.CommandText
		res.Offset = state.CommandOffset
		res.CaseInsensitive = true
		res.Sort = true
		res.trie = e.commandTrie()
	} else {
		switch t := state.Target.(type) {
		case tokenizer.ArgNameTarget:
			res.Kind = KindArgName
			res.Partial = t.NameSoFar
			res.Offset = t.Offset
			res.CaseInsensitive = true
			res.Sort = true
			res.trie = e.argumentTrie(state.CommandName)
		case tokenizer.ArgValueTarget:
			res.Kind = KindArgValue
			res.Key.Arg = t.ArgName
			res.Key.Index = t.ValueIndex
			res.Partial = t.ValueSoFar
			res.Offset = t.Offset
			res.Quoted = t.Quoted
			res.Quote = t.QuoteChar

			var flags Flags
			res.trie, flags = e.valueTrie(res.Key)
			res.CaseInsensitive = flags.Has(FlagCaseInsensitive)
			res.Sort = flags.Has(FlagSort)
		}
	}

	if res.trie == nil {
		return nil, false
	}

	e.log.Debug().
		Str("kind", res.Kind.String()).
		Str("command", res.Key.Command).
		Str("arg", res.Key.Arg).
		Int("index", res.Key.Index).
		Str("partial", res.Partial).
		Int("offset", res.Offset).
		Msg("Resolved completion target")

	return res, true
}

// Complete extends the token being typed at the end of line as far as it is
// unambiguous. The line is returned unchanged when nothing can be added.
func (e *Engine) Complete(line string) string {
	res, ok := e.Resolve(line)
	if !ok {
		return line
	}

	prefix := res.trie.PrefixNode(res.Partial, res.CaseInsensitive)
	if prefix.Depth() != utf8.RuneCountInString(res.Partial) {
		return line
	}

	ext, end := trie.ExtendUnambiguous(prefix)

	// Typed characters take the casing stored in the trie
	typed := res.Partial
	if res.CaseInsensitive {
		typed = prefix.String()
	}
	value := typed + ext

	quote := res.Quote
	quoteAdded := false
	if res.Kind == KindArgValue && !res.Quoted && needsQuote(typed, ext) {
		quoteAdded = true
		quote = tokenizer.QuoteChar(value)
	}

	src := []rune(line)
	var b strings.Builder
	b.WriteString(string(src[:res.Offset]))
	if quoteAdded {
		b.WriteRune(quote)
	}
	b.WriteString(value)

	if end.IsComplete() && end.ChildCount() == 0 {
		if res.Quoted || quoteAdded {
			b.WriteRune(quote)
		}
		// A flag name is followed directly by its value
		if res.Kind != KindArgName {
			b.WriteRune(tokenizer.Separator)
		}
	}

	return b.String()
}

// ListOptions returns every candidate matching the token being typed, with
// the casing stored in the trie
func (e *Engine) ListOptions(line string) []string {
	res, ok := e.Resolve(line)
	if !ok {
		return nil
	}

	prefix := res.trie.PrefixNode(res.Partial, res.CaseInsensitive)
	if prefix.Depth() != utf8.RuneCountInString(res.Partial) {
		return nil
	}

	base := prefix.String()
	var options []string
	for suffix := range trie.Enumerate(prefix) {
		options = append(options, base+suffix)
	}

	if res.Sort {
		slices.Sort(options)
	}
	return options
}

// needsQuote reports whether an unquoted value can no longer stay unquoted
// once ext is appended
func needsQuote(typed, ext string) bool {
	if strings.IndexFunc(ext, unicode.IsSpace) >= 0 || strings.ContainsAny(ext, `"'`) {
		return true
	}
	return typed == "" && strings.HasPrefix(ext, "-")
}

func (e *Engine) commandTrie() *trie.Trie {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.commands == nil {
		e.commands = trie.New(e.registry.CommandNames()...)
	}
	return e.commands
}

func (e *Engine) argumentTrie(command string) *trie.Trie {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.args[command]; ok {
		return t
	}

	names, ok := e.registry.ArgumentNames(command)
	if !ok {
		return nil
	}
	t := trie.New(names...)
	e.args[command] = t
	return t
}

// valueTrie returns the trie for key, nil when the source is missing or
// currently has no options
func (e *Engine) valueTrie(key ValueKey) (*trie.Trie, Flags) {
	src, ok := e.registry.ValueSource(key)
	if !ok {
		return nil, FlagsNone
	}

	cached := src.Flags.Has(FlagCache)
	if cached {
		e.mu.Lock()
		t, hit := e.values[key]
		e.mu.Unlock()
		if hit {
			return t, src.Flags
		}
	}

	var options []string
	if src.Options != nil {
		options = src.Options()
	}
	if len(options) == 0 {
		return nil, src.Flags
	}

	t := trie.New(options...)
	if cached {
		e.mu.Lock()
		e.values[key] = t
		e.mu.Unlock()
	}

	e.log.Debug().
		Str("command", key.Command).
		Str("arg", key.Arg).
		Int("index", key.Index).
		Int("options", len(options)).
		Bool("cached", cached).
		Msg("Built value trie")

	return t, src.Flags
}
