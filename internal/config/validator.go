package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/NikitaCOEUR/devcmd/internal/commands"
	"github.com/NikitaCOEUR/devcmd/internal/completion"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
)

// ReservedNames are commands provided by devcmd itself
var ReservedNames = []string{"help", "exit"}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Messages renders every error as "field: message"
func (r *ValidationResult) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.String())
	}
	return msgs
}

// Validate validates a config file: schema first, then the semantic checks
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	for _, e := range cfg.Check() {
		result.addError(e.Field, e.Message)
	}
	return result, nil
}

// Check runs the checks the schema cannot express
func (c *Config) Check() []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(c.Commands))
	for i, cmd := range c.Commands {
		field := fmt.Sprintf("commands.%d", i)
		name := strings.ToLower(cmd.Name)

		switch {
		case !tokenizer.IsName(cmd.Name):
			add(field+".name", "Invalid command name %q", cmd.Name)
		case slices.Contains(ReservedNames, name):
			add(field+".name", "Command name %q is reserved", cmd.Name)
		case seen[name]:
			add(field+".name", "Command %q is declared more than once", cmd.Name)
		}
		seen[name] = true

		args := make([]string, 0, len(cmd.Args))
		for j, arg := range cmd.Args {
			if !tokenizer.IsName(arg) {
				add(fmt.Sprintf("%s.args.%d", field, j), "Invalid argument name %q", arg)
				continue
			}
			lower := strings.ToLower(arg)
			if slices.Contains(args, lower) {
				add(fmt.Sprintf("%s.args.%d", field, j), "Argument %q is declared more than once", arg)
			}
			args = append(args, lower)
		}

		for j, pattern := range cmd.Verify {
			if _, err := regexp.Compile(pattern); err != nil {
				add(fmt.Sprintf("%s.verify.%d", field, j), "Invalid pattern: %v", err)
			}
		}

		if cmd.Template != "" {
			if _, err := commands.ParseTemplate(name, cmd.Template); err != nil {
				add(field+".template", "%v", err)
			}
		}

		type position struct {
			arg   string
			index int
		}
		positions := make(map[position]bool, len(cmd.Complete))
		for j, comp := range cmd.Complete {
			cfield := fmt.Sprintf("%s.complete.%d", field, j)
			arg := strings.ToLower(comp.Arg)

			if arg != "" && !slices.Contains(args, arg) {
				add(cfield+".arg", "Argument %q is not declared in args", comp.Arg)
			}
			if comp.Index < 0 {
				add(cfield+".index", "Index must not be negative")
			}
			if len(comp.Options) == 0 {
				add(cfield+".options", "At least one option is required")
			}
			if _, ok := completion.ParseFlags(comp.Flags); !ok {
				add(cfield+".flags", "Unknown flag, expected one of %s", strings.Join(completion.FlagNames(), ", "))
			}

			pos := position{arg: arg, index: comp.Index}
			if positions[pos] {
				add(cfield, "Completion for %q index %d is declared more than once", comp.Arg, comp.Index)
			}
			positions[pos] = true
		}
	}

	return errs
}
