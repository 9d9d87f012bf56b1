package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/NikitaCOEUR/devcmd/internal/completion"
	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
	"github.com/NikitaCOEUR/devcmd/internal/view"
)

const helpDescription = `List all available commands or show the description of a command.

Usage:
    help
        List all available commands

    help <command>
        Show the description of a command`

func (t *Table) registerHelp() {
	help := Command{
		Name:        "help",
		Description: helpDescription,
		Verify:      []string{"^$", "^[a-zA-Z0-9][a-zA-Z0-9_-]*$"},
		Handler:     t.help,
	}
	if err := t.Register(help, Dynamic("", 0, completion.FlagsDefault, t.CommandNames)); err != nil {
		panic(err)
	}
}

func (t *Table) help(_ context.Context, w io.Writer, args []tokenizer.Argument) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w, view.RenderCommandList(t.Infos()))
		return err
	}

	name := strings.ToLower(args[0].Value())
	info, ok := t.Info(name)
	if !ok {
		return derrors.NewUnknownCommandError(name, fmt.Sprintf("command %s not found", name))
	}
	_, err := fmt.Fprintln(w, view.RenderCommandHelp(info))
	return err
}
