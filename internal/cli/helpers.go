package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NikitaCOEUR/devcmd/internal/commands"
	"github.com/NikitaCOEUR/devcmd/internal/completion"
	"github.com/NikitaCOEUR/devcmd/internal/config"
	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/logger"
	"github.com/NikitaCOEUR/devcmd/internal/timing"
)

// CommonParams are shared by every command working on the command table
type CommonParams struct {
	LogLevel string
	// ConfigPath replaces the local config lookup when set
	ConfigPath string
	// Dir is where the local config is looked up, the working directory when empty
	Dir string
	// Out receives command output, stdout when nil
	Out io.Writer
	// LogOutput receives log lines, stderr when nil
	LogOutput io.Writer
}

func (p CommonParams) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// components holds initialized devcmd components
type components struct {
	config  *config.Config
	sources []string
	log     *logger.Logger
	table   *commands.Table
	engine  *completion.Engine
}

// initializeComponents loads the configuration and builds the command table
// and the completion engine over it
func initializeComponents(params CommonParams) (*components, error) {
	dir := params.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	sw := timing.Start()
	cfg, sources, err := config.New().LoadHierarchy(dir, params.ConfigPath)
	if err != nil {
		return nil, derrors.NewConfigurationError(lastSource(sources, params.ConfigPath), "failed to load configuration", err)
	}

	level := params.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	log := logger.New(level, params.LogOutput)
	sw.Lap("config")
	log.Debug().Strs("sources", sources).Int("commands", len(cfg.Commands)).Msg("Loaded configuration")

	if errs := cfg.Check(); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.String())
		}
		return nil, derrors.NewConfigurationError(lastSource(sources, params.ConfigPath), "invalid configuration: "+strings.Join(msgs, "; "), nil)
	}

	table := commands.NewTable(params.out(), log)
	for _, cmd := range cfg.Commands {
		if err := registerConfigCommand(table, cmd); err != nil {
			return nil, derrors.NewConfigurationError(lastSource(sources, params.ConfigPath), "failed to register "+cmd.Name, err)
		}
	}

	sw.Lap("table")
	sw.Fields(log.Debug()).Msg("Initialized components")

	return &components{
		config:  cfg,
		sources: sources,
		log:     log,
		table:   table,
		engine:  completion.NewEngine(table, log),
	}, nil
}

// registerConfigCommand turns a declared command into a table entry. Commands
// without a template print their parsed arguments.
func registerConfigCommand(table *commands.Table, cmd config.CommandConfig) error {
	handler := commands.ArgumentsHandler(strings.ToLower(cmd.Name))
	if cmd.Template != "" {
		h, err := commands.TemplateHandler(strings.ToLower(cmd.Name), cmd.Template)
		if err != nil {
			return err
		}
		handler = h
	}

	completions := make([]commands.Completion, 0, len(cmd.Complete))
	for _, c := range cmd.Complete {
		flags := completion.FlagsDefault
		if len(c.Flags) > 0 {
			parsed, ok := completion.ParseFlags(c.Flags)
			if !ok {
				return fmt.Errorf("unknown completion flag in %v", c.Flags)
			}
			flags = parsed
		}
		completions = append(completions, commands.Static(c.Arg, c.Index, flags, c.Options...))
	}

	return table.Register(commands.Command{
		Name:        cmd.Name,
		Description: cmd.Description,
		Args:        cmd.Args,
		Verify:      cmd.Verify,
		Handler:     handler,
	}, completions...)
}

func lastSource(sources []string, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if len(sources) == 0 {
		return config.DefaultsName
	}
	return sources[len(sources)-1]
}
