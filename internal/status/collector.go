package status

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/NikitaCOEUR/devcmd/internal/config"
	"github.com/NikitaCOEUR/devcmd/pkg/version"
)

const (
	kindDefaults = "defaults"
	kindGlobal   = "global"
	kindLocal    = "local"
)

// CollectAll gathers the status of dir. A non-empty explicit path replaces
// the local config lookup like --config does.
func CollectAll(dir, explicit string) (*Data, error) {
	if dir == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = currentDir
	}

	data := &Data{
		Version:    version.String(),
		CurrentDir: dir,
		Commands:   make([]CommandSummary, 0),
	}

	cfg, sources, err := config.New().LoadHierarchy(dir, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	collectSources(data, dir, explicit, sources)

	data.LogLevel = cfg.LogLevel
	data.Prompt = cfg.Prompt
	data.History = collectHistory(config.ExpandHome(cfg.HistoryFile))

	for _, cmd := range cfg.Commands {
		data.Commands = append(data.Commands, CommandSummary{
			Name:        strings.ToLower(cmd.Name),
			Args:        len(cmd.Args),
			Completions: len(cmd.Complete),
			Template:    cmd.Template != "",
		})
	}

	return data, nil
}

func collectSources(data *Data, dir, explicit string, loaded []string) {
	data.Sources = append(data.Sources, SourceInfo{
		Kind:   kindDefaults,
		Path:   config.DefaultsName,
		Exists: true,
		Loaded: true,
	})

	if globalPath, err := config.GetGlobalConfigPath(); err == nil {
		data.Sources = append(data.Sources, fileSource(kindGlobal, globalPath, loaded))
	}

	localPath := explicit
	if localPath == "" {
		localPath = config.FindLocalConfig(dir)
	}
	if localPath != "" {
		data.Sources = append(data.Sources, fileSource(kindLocal, localPath, loaded))
	}
}

func fileSource(kind, path string, loaded []string) SourceInfo {
	_, err := os.Stat(path)
	return SourceInfo{
		Kind:   kind,
		Path:   path,
		Exists: err == nil,
		Loaded: slices.Contains(loaded, path),
	}
}

// collectHistory counts the non-empty lines of the history file
func collectHistory(path string) HistoryInfo {
	info := HistoryInfo{Path: path}
	if path == "" {
		return info
	}

	file, err := os.Open(path)
	if err != nil {
		return info
	}
	defer func() { _ = file.Close() }()
	info.Exists = true

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			info.Entries++
		}
	}
	return info
}
