// Package config handles loading and merging of devcmd configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames contains supported local configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".devcmd.yml",
	".devcmd.yaml",
	".devcmd.toml",
	".devcmd.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "config.yml"
	// DefaultsName identifies the embedded defaults in loaded file lists
	DefaultsName = "<defaults>"
)

//go:embed defaults.yml
var defaultsYAML []byte

// CompleteConfig declares a static value completion
type CompleteConfig struct {
	Arg     string   `koanf:"arg"`
	Index   int      `koanf:"index"`
	Options []string `koanf:"options"`
	Flags   []string `koanf:"flags"`
}

// CommandConfig declares a console command
type CommandConfig struct {
	Name        string           `koanf:"name"`
	Description string           `koanf:"description"`
	Args        []string         `koanf:"args"`
	Verify      []string         `koanf:"verify"`
	Template    string           `koanf:"template"`
	Complete    []CompleteConfig `koanf:"complete"`
}

// Config represents a devcmd configuration
type Config struct {
	LogLevel    string          `koanf:"log_level"`
	Prompt      string          `koanf:"prompt"`
	HistoryFile string          `koanf:"history_file"`
	Commands    []CommandConfig `koanf:"commands"`
}

// Command returns the command declared under name
func (c *Config) Command(name string) (CommandConfig, bool) {
	for _, cmd := range c.Commands {
		if strings.EqualFold(cmd.Name, name) {
			return cmd, true
		}
	}
	return CommandConfig{}, false
}

// Loader handles loading and parsing configuration files
type Loader struct {
	// Cache for parsed configs, keyed by path
	parsedCache map[string]*Config
}

// New creates a new config loader
func New() *Loader {
	return &Loader{
		parsedCache: make(map[string]*Config),
	}
}

// parserFor picks the koanf parser matching the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads and parses a configuration file
func (l *Loader) Load(path string) (*Config, error) {
	if cached, exists := l.parsedCache[path]; exists {
		return cached, nil
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	l.parsedCache[path] = cfg
	return cfg, nil
}

// LoadDefaults parses the embedded defaults
func (l *Loader) LoadDefaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// DefaultsYAML returns the embedded defaults
func DefaultsYAML() []byte {
	return defaultsYAML
}

// Merge merges parent and child configs, with child taking precedence.
// Commands are merged by name: a child command replaces the parent one in place,
// new commands are appended.
func Merge(parent, child *Config) *Config {
	merged := &Config{
		LogLevel:    parent.LogLevel,
		Prompt:      parent.Prompt,
		HistoryFile: parent.HistoryFile,
	}

	if child.LogLevel != "" {
		merged.LogLevel = child.LogLevel
	}
	if child.Prompt != "" {
		merged.Prompt = child.Prompt
	}
	if child.HistoryFile != "" {
		merged.HistoryFile = child.HistoryFile
	}

	index := make(map[string]int, len(parent.Commands)+len(child.Commands))
	for _, cmd := range parent.Commands {
		index[strings.ToLower(cmd.Name)] = len(merged.Commands)
		merged.Commands = append(merged.Commands, cmd)
	}
	for _, cmd := range child.Commands {
		key := strings.ToLower(cmd.Name)
		if i, ok := index[key]; ok {
			merged.Commands[i] = cmd
			continue
		}
		index[key] = len(merged.Commands)
		merged.Commands = append(merged.Commands, cmd)
	}

	return merged
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		// Fallback to ~/.config
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "devcmd", GlobalConfigName), nil
}

// ExpandHome resolves a leading ~ in path
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// FindLocalConfig returns the first supported config file in dir, or an empty string
func FindLocalConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadHierarchy merges the embedded defaults, the global config and the local
// config of dir. A non-empty explicit path replaces the local lookup and must exist.
// It returns the merged config and the sources used, in merge order.
func (l *Loader) LoadHierarchy(dir, explicit string) (*Config, []string, error) {
	merged, err := l.LoadDefaults()
	if err != nil {
		return nil, nil, err
	}
	sources := []string{DefaultsName}

	// An unreadable global config is skipped so local configs still apply
	if globalPath, err := GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if globalCfg, err := l.Load(globalPath); err == nil {
				merged = Merge(merged, globalCfg)
				sources = append(sources, globalPath)
			}
		}
	}

	localPath := explicit
	if localPath == "" {
		localPath = FindLocalConfig(dir)
	} else if _, err := os.Stat(localPath); err != nil {
		return nil, sources, fmt.Errorf("config file not found: %s", localPath)
	}

	if localPath != "" {
		localCfg, err := l.Load(localPath)
		if err != nil {
			return nil, append(sources, localPath), err
		}
		merged = Merge(merged, localCfg)
		sources = append(sources, localPath)
	}

	return merged, sources, nil
}
