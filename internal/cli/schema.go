package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devcmd/internal/config"
)

// SchemaParams contains parameters for the Schema command
type SchemaParams struct {
	// OutputPath receives the schema, Out is used when empty
	OutputPath string
	Out        io.Writer
}

// Schema displays or exports the JSON Schema for devcmd configuration files
func Schema(params SchemaParams) error {
	schemaJSON := config.GetSchemaJSON()

	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	if params.OutputPath != "" {
		if err := os.WriteFile(params.OutputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", params.OutputPath, err)
		}
		_, err := fmt.Fprintf(out, "JSON Schema written to: %s\n", params.OutputPath)
		return err
	}

	_, err := fmt.Fprintln(out, schemaJSON)
	return err
}
