// Package commands holds the console command table: registration,
// completion sources and dispatch of finished lines.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/NikitaCOEUR/devcmd/internal/completion"
	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/logger"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
	"github.com/NikitaCOEUR/devcmd/internal/view"
)

// Handler executes a command. Output goes to w.
type Handler func(ctx context.Context, w io.Writer, args []tokenizer.Argument) error

// Command is a registered console command
type Command struct {
	Name        string
	Description string
	// Args are the flag names offered for completion
	Args []string
	// Verify patterns are matched against the normalized argument string.
	// When set, at least one must match for the command to run.
	Verify  []string
	Handler Handler

	patterns []*regexp.Regexp
}

func (c *Command) accepts(rawArgs string) bool {
	if len(c.patterns) == 0 {
		return true
	}
	for _, re := range c.patterns {
		if re.MatchString(rawArgs) {
			return true
		}
	}
	return false
}

// Completion attaches a value source to one value position of a command
type Completion struct {
	Arg    string
	Index  int
	Source completion.ValueSource

	static []string
}

// Static completes with a fixed list. Static lists are always cached.
func Static(arg string, index int, flags completion.Flags, options ...string) Completion {
	opts := slices.Clone(options)
	return Completion{
		Arg:    arg,
		Index:  index,
		Source: completion.ValueSource{Options: func() []string { return opts }, Flags: flags | completion.FlagCache},
		static: opts,
	}
}

// Dynamic completes with whatever fn returns at completion time
func Dynamic(arg string, index int, flags completion.Flags, fn func() []string) Completion {
	return Completion{
		Arg:    arg,
		Index:  index,
		Source: completion.ValueSource{Options: fn, Flags: flags},
	}
}

// Table is the set of registered commands in registration order.
// It implements completion.Registry.
type Table struct {
	mu          sync.RWMutex
	commands    *orderedmap.OrderedMap[string, *Command]
	completions map[completion.ValueKey]Completion

	out   io.Writer
	log   *logger.Logger
	onRun func(line string)
}

var _ completion.Registry = (*Table)(nil)

// NewTable creates a table holding the built-in help command.
// Handler output goes to out, stdout when nil.
func NewTable(out io.Writer, log *logger.Logger) *Table {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logger.Discard()
	}

	t := &Table{
		commands:    orderedmap.New[string, *Command](),
		completions: make(map[completion.ValueKey]Completion),
		out:         out,
		log:         log,
	}
	t.registerHelp()
	return t
}

// OnRun sets a hook called with the raw line of every command about to run
func (t *Table) OnRun(fn func(line string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRun = fn
}

// Register adds a command and its completions. Names are lowercased.
func (t *Table) Register(cmd Command, completions ...Completion) error {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if name == "" {
		return derrors.NewRegistrationError(cmd.Name, "command name is required", nil)
	}
	if !tokenizer.IsName(name) {
		return derrors.NewRegistrationError(cmd.Name, "command name must start with a letter followed by letters, digits, '-' or '_'", nil)
	}
	if cmd.Handler == nil {
		return derrors.NewRegistrationError(name, "handler is required", nil)
	}

	registered := &Command{
		Name:        name,
		Description: cmd.Description,
		Verify:      slices.Clone(cmd.Verify),
		Handler:     cmd.Handler,
	}

	for _, arg := range cmd.Args {
		arg = strings.ToLower(arg)
		if !tokenizer.IsName(arg) {
			return derrors.NewRegistrationError(name, fmt.Sprintf("invalid argument name %q", arg), nil)
		}
		if slices.Contains(registered.Args, arg) {
			return derrors.NewRegistrationError(name, fmt.Sprintf("duplicate argument %q", arg), nil)
		}
		registered.Args = append(registered.Args, arg)
	}

	for _, pattern := range cmd.Verify {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return derrors.NewRegistrationError(name, fmt.Sprintf("invalid verify pattern %q", pattern), err)
		}
		registered.patterns = append(registered.patterns, re)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.commands.Get(name); exists {
		return derrors.NewAlreadyExistsError("command", fmt.Sprintf("command %s is already registered", name))
	}

	keys := make(map[completion.ValueKey]Completion, len(completions))
	for _, c := range completions {
		key, err := completionKey(registered, c)
		if err != nil {
			return err
		}
		if _, dup := keys[key]; dup {
			return derrors.NewAlreadyExistsError("completion", fmt.Sprintf("completion %s already registered", describeKey(key)))
		}
		keys[key] = c
	}

	t.commands.Set(name, registered)
	for key, c := range keys {
		c.Arg = key.Arg
		t.completions[key] = c
	}

	t.log.Debug().
		Str("command", name).
		Strs("args", registered.Args).
		Int("completions", len(keys)).
		Msg("Registered command")

	return nil
}

// RegisterCompletion attaches a value source to an already registered command
func (t *Table) RegisterCompletion(command string, c Completion) error {
	name := strings.ToLower(command)

	t.mu.Lock()
	defer t.mu.Unlock()

	cmd, ok := t.commands.Get(name)
	if !ok {
		return derrors.NewUnknownCommandError(name, fmt.Sprintf("command %s is not registered", name))
	}

	key, err := completionKey(cmd, c)
	if err != nil {
		return err
	}
	if _, dup := t.completions[key]; dup {
		return derrors.NewAlreadyExistsError("completion", fmt.Sprintf("completion %s already registered", describeKey(key)))
	}

	c.Arg = key.Arg
	t.completions[key] = c
	return nil
}

func completionKey(cmd *Command, c Completion) (completion.ValueKey, error) {
	arg := strings.ToLower(c.Arg)
	switch {
	case c.Index < 0:
		return completion.ValueKey{}, derrors.NewRegistrationError(cmd.Name, fmt.Sprintf("negative value index %d", c.Index), nil)
	case c.Source.Options == nil:
		return completion.ValueKey{}, derrors.NewRegistrationError(cmd.Name, "completion has no options", nil)
	case arg != "" && !slices.Contains(cmd.Args, arg):
		return completion.ValueKey{}, derrors.NewRegistrationError(cmd.Name, fmt.Sprintf("completion for undeclared argument %q", arg), nil)
	}
	return completion.ValueKey{Command: cmd.Name, Arg: arg, Index: c.Index}, nil
}

func describeKey(key completion.ValueKey) string {
	if key.Arg == "" {
		return fmt.Sprintf("%s[%d]", key.Command, key.Index)
	}
	return fmt.Sprintf("%s -%s[%d]", key.Command, key.Arg, key.Index)
}

// Lookup returns the command registered under name
func (t *Table) Lookup(name string) (*Command, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.commands.Get(strings.ToLower(name))
}

// Len returns the number of registered commands
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.commands.Len()
}

// CommandNames returns every command name in registration order
func (t *Table) CommandNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, t.commands.Len())
	for pair := t.commands.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ArgumentNames returns the declared arguments of command
func (t *Table) ArgumentNames(command string) ([]string, bool) {
	cmd, ok := t.Lookup(command)
	if !ok || len(cmd.Args) == 0 {
		return nil, false
	}
	return slices.Clone(cmd.Args), true
}

// ValueSource returns the value source registered for key
func (t *Table) ValueSource(key completion.ValueKey) (completion.ValueSource, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.completions[key]
	if !ok {
		return completion.ValueSource{}, false
	}
	return c.Source, true
}

// Info describes a command for display
func (t *Table) Info(name string) (view.CommandInfo, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cmd, ok := t.commands.Get(strings.ToLower(name))
	if !ok {
		return view.CommandInfo{}, false
	}
	return t.info(cmd), true
}

// Infos describes every command in registration order
func (t *Table) Infos() []view.CommandInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	infos := make([]view.CommandInfo, 0, t.commands.Len())
	for pair := t.commands.Oldest(); pair != nil; pair = pair.Next() {
		infos = append(infos, t.info(pair.Value))
	}
	return infos
}

func (t *Table) info(cmd *Command) view.CommandInfo {
	info := view.CommandInfo{
		Name:        cmd.Name,
		Description: cmd.Description,
		Args:        slices.Clone(cmd.Args),
		Verify:      slices.Clone(cmd.Verify),
	}

	var keys []completion.ValueKey
	for key := range t.completions {
		if key.Command == cmd.Name {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b completion.ValueKey) int {
		if c := strings.Compare(a.Arg, b.Arg); c != 0 {
			return c
		}
		return a.Index - b.Index
	})

	for _, key := range keys {
		c := t.completions[key]
		info.Completions = append(info.Completions, view.CompletionInfo{
			Arg:     key.Arg,
			Index:   key.Index,
			Flags:   c.Source.Flags.String(),
			Options: slices.Clone(c.static),
		})
	}
	return info
}
