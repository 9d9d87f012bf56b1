package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devcmd/internal/config"
	"github.com/NikitaCOEUR/devcmd/internal/view"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	// ConfigPath is validated when set, otherwise the local config of Dir
	ConfigPath string
	Dir        string
	Out        io.Writer
}

// Validate validates a devcmd configuration file
func Validate(params ValidateParams) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	configPath := params.ConfigPath
	if configPath == "" {
		dir := params.Dir
		if dir == "" {
			currentDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			dir = currentDir
		}

		configPath = config.FindLocalConfig(dir)
		if configPath == "" {
			return fmt.Errorf("no config file found in %s", dir)
		}
	}

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	report := view.ValidationReport{Path: configPath, Errors: result.Messages()}
	if _, err := fmt.Fprintln(out, view.RenderValidation([]view.ValidationReport{report})); err != nil {
		return err
	}

	if !result.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	return nil
}
