package cli

import (
	"context"
	"io"

	"github.com/NikitaCOEUR/devcmd/internal/config"
	"github.com/NikitaCOEUR/devcmd/internal/console"
)

// ConsoleParams contains parameters for the Console command
type ConsoleParams struct {
	CommonParams
	// In defaults to stdin
	In io.Reader
}

// Console starts the interactive prompt
func Console(ctx context.Context, params ConsoleParams) error {
	comps, err := initializeComponents(params.CommonParams)
	if err != nil {
		return err
	}

	c, err := console.New(console.Config{
		Prompt:      comps.config.Prompt,
		HistoryFile: config.ExpandHome(comps.config.HistoryFile),
		In:          params.In,
		Out:         params.out(),
	}, comps.table, comps.engine, comps.log)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
