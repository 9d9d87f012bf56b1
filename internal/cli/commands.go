package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/view"
)

// RunParams contains parameters for the Run command
type RunParams struct {
	CommonParams
	Line string
}

// Run executes a single command line against the command table
func Run(ctx context.Context, params RunParams) error {
	comps, err := initializeComponents(params.CommonParams)
	if err != nil {
		return err
	}
	return comps.table.Run(ctx, params.Line)
}

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	CommonParams
	Line string
}

// Complete prints the line extended as far as it is unambiguous. The result
// is quoted so trailing separators stay visible.
func Complete(params CompleteParams) error {
	comps, err := initializeComponents(params.CommonParams)
	if err != nil {
		return err
	}

	completed := comps.engine.Complete(params.Line)
	_, err = fmt.Fprintf(params.out(), "%q\n", completed)
	return err
}

// OptionsParams contains parameters for the Options command
type OptionsParams struct {
	CommonParams
	Line string
	// Plain prints one candidate per line instead of columns
	Plain bool
	Width int
}

// Options prints every candidate for the token being typed at the end of the line
func Options(params OptionsParams) error {
	comps, err := initializeComponents(params.CommonParams)
	if err != nil {
		return err
	}

	options := comps.engine.ListOptions(params.Line)
	if params.Plain {
		if len(options) == 0 {
			return nil
		}
		_, err = fmt.Fprintln(params.out(), strings.Join(options, "\n"))
		return err
	}

	_, err = fmt.Fprintln(params.out(), view.RenderOptions(options, params.Width))
	return err
}

// ListParams contains parameters for the List command
type ListParams struct {
	CommonParams
	// Command shows the help of a single command when set
	Command string
}

// List prints the available commands, or the help of one command
func List(params ListParams) error {
	comps, err := initializeComponents(params.CommonParams)
	if err != nil {
		return err
	}

	if params.Command == "" {
		_, err = fmt.Fprintln(params.out(), view.RenderCommandList(comps.table.Infos()))
		return err
	}

	info, ok := comps.table.Info(params.Command)
	if !ok {
		return derrors.NewUnknownCommandError(params.Command, fmt.Sprintf("command %s not found", params.Command))
	}
	_, err = fmt.Fprintln(params.out(), view.RenderCommandHelp(info))
	return err
}
