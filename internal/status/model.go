// Package status collects and renders what devcmd would load in a directory.
package status

// Data holds all status information
type Data struct {
	Version    string
	CurrentDir string

	Sources []SourceInfo

	LogLevel string
	Prompt   string
	History  HistoryInfo

	Commands []CommandSummary
}

// SourceInfo is one configuration layer
type SourceInfo struct {
	Kind   string // defaults, global or local
	Path   string
	Exists bool
	// Loaded is false when the file exists but could not be used
	Loaded bool
}

// HistoryInfo describes the console history file
type HistoryInfo struct {
	Path    string
	Exists  bool
	Entries int
}

// CommandSummary describes a declared command
type CommandSummary struct {
	Name        string
	Args        int
	Completions int
	Template    bool
}
