// Package view renders console output: command listings, command help,
// completion candidates and validation reports.
package view

// CommandInfo contains everything displayed about a command
type CommandInfo struct {
	Name        string
	Description string
	Args        []string
	Verify      []string
	Completions []CompletionInfo
}

// CompletionInfo describes a value source attached to a command
type CompletionInfo struct {
	Arg   string // empty for positional values
	Index int
	Flags string
	// Options is only set for static sources
	Options []string
}

// ValidationReport is the outcome of validating one configuration file
type ValidationReport struct {
	Path   string
	Errors []string
}
