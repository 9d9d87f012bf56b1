// Package console hosts the interactive prompt: line editing, history and
// Tab completion over the command table.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/peterh/liner"

	"github.com/NikitaCOEUR/devcmd/internal/commands"
	"github.com/NikitaCOEUR/devcmd/internal/completion"
	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/logger"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
	"github.com/NikitaCOEUR/devcmd/internal/view"
)

// DefaultPrompt is used when Config.Prompt is empty
const DefaultPrompt = "> "

// Config holds console settings
type Config struct {
	Prompt string
	// HistoryFile is where history is kept between sessions, empty disables it
	HistoryFile string
	// In and Out default to stdin and stdout
	In  io.Reader
	Out io.Writer
}

// Console reads lines, runs them through the command table and offers
// completion from the engine
type Console struct {
	cfg    Config
	table  *commands.Table
	engine *completion.Engine
	log    *logger.Logger

	exited atomic.Bool
}

// New creates a console and registers the exit command on table
func New(cfg Config, table *commands.Table, engine *completion.Engine, log *logger.Logger) (*Console, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if log == nil {
		log = logger.Discard()
	}

	c := &Console{
		cfg:    cfg,
		table:  table,
		engine: engine,
		log:    log,
	}

	exit := commands.Command{
		Name:        "exit",
		Description: "Leave the console",
		Verify:      []string{"^$"},
		Handler: func(context.Context, io.Writer, []tokenizer.Argument) error {
			c.exited.Store(true)
			return nil
		},
	}
	if err := table.Register(exit); err != nil {
		return nil, fmt.Errorf("failed to register exit command: %w", err)
	}

	return c, nil
}

// Exited reports whether the exit command has run
func (c *Console) Exited() bool {
	return c.exited.Load()
}

// Execute runs a single line. Blank lines are ignored.
func (c *Console) Execute(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return c.table.Run(ctx, line)
}

// Run reads and executes lines until exit, end of input or ctx is done.
// Command failures are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context) error {
	reader := newLineReader(c.cfg.In, c.cfg.Out, c.completeWord, c.cfg.HistoryFile, c.log)
	defer func() { _ = reader.Close() }()

	c.log.Debug().Str("prompt", c.cfg.Prompt).Str("history", c.cfg.HistoryFile).Msg("Console started")

	for !c.Exited() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := reader.ReadLine(c.cfg.Prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			_, _ = fmt.Fprintln(c.cfg.Out)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		reader.AppendHistory(line)

		if err := c.Execute(ctx, line); err != nil {
			c.report(err)
		}
	}
	return nil
}

// report prints user mistakes as warnings and everything else as errors
func (c *Console) report(err error) {
	var (
		malformed *derrors.MalformedLineError
		unknown   *derrors.UnknownCommandError
		invalid   *derrors.ValidationError
	)
	if errors.As(err, &malformed) || errors.As(err, &unknown) || errors.As(err, &invalid) {
		_, _ = fmt.Fprintln(c.cfg.Out, view.RenderWarning(err.Error()))
		return
	}
	_, _ = fmt.Fprintln(c.cfg.Out, view.RenderError(err.Error()))
}

// completeWord is the liner word completer. When the engine can extend the
// text before the cursor the whole head is replaced. Otherwise the candidates
// are returned against the start of the token so liner can print them.
func (c *Console) completeWord(line string, pos int) (string, []string, string) {
	runes := []rune(line)
	pos = max(0, min(pos, len(runes)))
	head, tail := string(runes[:pos]), string(runes[pos:])

	if completed := c.engine.Complete(head); completed != head {
		return "", []string{completed}, tail
	}

	res, ok := c.engine.Resolve(head)
	if !ok {
		return head, nil, tail
	}
	options := c.engine.ListOptions(head)
	if len(options) == 0 {
		return head, nil, tail
	}
	if res.Kind == completion.KindArgValue && !res.Quoted {
		for i, opt := range options {
			options[i] = tokenizer.Quote(opt)
		}
	}
	return string(runes[:res.Offset]), options, tail
}
