// Package completion completes unfinished console lines against command names,
// argument names and argument values served by a Registry.
package completion

import (
	"strings"
)

// Flags control how a value source is matched and listed
type Flags int

const (
	// FlagCache keeps the value trie for the lifetime of the engine
	FlagCache Flags = 1 << iota
	// FlagCaseInsensitive matches typed values ignoring ASCII case
	FlagCaseInsensitive
	// FlagSort sorts listed options
	FlagSort

	FlagsNone    Flags = 0
	FlagsDefault       = FlagCache | FlagCaseInsensitive | FlagSort
)

// Has reports whether every bit of f is set
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

var flagNames = map[string]Flags{
	"none":             FlagsNone,
	"cache":            FlagCache,
	"case_insensitive": FlagCaseInsensitive,
	"sort":             FlagSort,
	"default":          FlagsDefault,
}

// ParseFlags combines named flags. It reports false on an unknown name.
func ParseFlags(names []string) (Flags, bool) {
	var f Flags
	for _, name := range names {
		bit, ok := flagNames[strings.ToLower(name)]
		if !ok {
			return 0, false
		}
		f |= bit
	}
	return f, true
}

// FlagNames lists the names accepted by ParseFlags
func FlagNames() []string {
	return []string{"none", "cache", "case_insensitive", "sort", "default"}
}

// String renders the set bits, "none" when empty
func (fl Flags) String() string {
	if fl == FlagsNone {
		return "none"
	}
	var parts []string
	if fl.Has(FlagCache) {
		parts = append(parts, "cache")
	}
	if fl.Has(FlagCaseInsensitive) {
		parts = append(parts, "case_insensitive")
	}
	if fl.Has(FlagSort) {
		parts = append(parts, "sort")
	}
	return strings.Join(parts, "|")
}

// ValueKey identifies a value position: the value at Index typed after
// the flag Arg of Command. Arg is empty for positional values.
type ValueKey struct {
	Command string
	Arg     string
	Index   int
}

// ValueSource produces the options offered at a value position
type ValueSource struct {
	Options func() []string
	Flags   Flags
}

// Registry is what the engine completes against. Names are lowercase.
type Registry interface {
	CommandNames() []string
	// ArgumentNames reports false when the command is unknown or declares no arguments
	ArgumentNames(command string) ([]string, bool)
	ValueSource(key ValueKey) (ValueSource, bool)
}
