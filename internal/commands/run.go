package commands

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
	"github.com/NikitaCOEUR/devcmd/internal/trace"
)

// Run parses line and executes the matching command
func (t *Table) Run(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer trace.Region(ctx, "run")()
	trace.Log(ctx, "line", line)
	t.log.Debug().Str("line", line).Msg("Running command")

	inv, err := tokenizer.Parse(line)
	if err != nil {
		t.log.Warn().Str("line", line).Msg("Could not process command")
		return err
	}

	cmd, ok := t.Lookup(inv.Name)
	if !ok {
		t.log.Warn().Str("command", inv.Name).Msg("Command not found")
		return derrors.NewUnknownCommandError(inv.Name, fmt.Sprintf("command %s not found, use 'help' for a list of commands", inv.Name))
	}

	if !cmd.accepts(inv.RawArgs) {
		t.log.Warn().Str("command", inv.Name).Str("args", inv.RawArgs).Msg("Arguments rejected")
		return derrors.NewValidationError(inv.Name, fmt.Sprintf("invalid format for %s, use 'help %s' for a description", inv.Name, inv.Name), nil)
	}

	t.mu.RLock()
	hook, out := t.onRun, t.out
	t.mu.RUnlock()

	if hook != nil {
		hook(line)
	}

	if err := cmd.Handler(ctx, out, inv.Arguments); err != nil {
		return derrors.NewExecutionError(inv.Name, "command failed", err)
	}
	return nil
}
