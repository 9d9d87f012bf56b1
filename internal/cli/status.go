package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devcmd/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath string
	Dir        string
	Out        io.Writer
}

// Status displays what devcmd loads in the current directory
func Status(params StatusParams) error {
	data, err := status.CollectAll(params.Dir, params.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	out := params.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, status.Render(data))
	return err
}
