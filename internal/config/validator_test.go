package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_FileNotFound(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidate_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".devcmd.yml")
	writeFile(t, path, `commands:
  - name: deploy
    description: Deploy a service
    args: [env, force]
    verify: ['^-env \w+( -force)?$']
    template: 'deploying {{ index .Args "env" | first }}'
    complete:
      - arg: env
        options: [staging, prod]
      - options: [api, web]
        flags: [none]
`)

	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid, result.Messages())
	assert.Empty(t, result.Errors)
}

func TestValidate_SchemaErrorsStopEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".devcmd.yml")
	writeFile(t, path, "commands:\n  - name: help\n    unknown: true\n")

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	for _, e := range result.Errors {
		assert.NotContains(t, e.Message, "reserved", "semantic checks run only on schema-valid files")
	}
}

func TestValidate_SemanticErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".devcmd.yml")
	writeFile(t, path, "commands:\n  - name: exit\n")

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "commands.0.name", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "reserved")
}

func TestConfig_Check(t *testing.T) {
	tests := []struct {
		name      string
		commands  []CommandConfig
		wantField string
		wantMsg   string
	}{
		{
			name:      "invalid command name",
			commands:  []CommandConfig{{Name: "9lives"}},
			wantField: "commands.0.name",
			wantMsg:   "Invalid command name",
		},
		{
			name:      "reserved name",
			commands:  []CommandConfig{{Name: "HELP"}},
			wantField: "commands.0.name",
			wantMsg:   "reserved",
		},
		{
			name:      "duplicate command",
			commands:  []CommandConfig{{Name: "deploy"}, {Name: "Deploy"}},
			wantField: "commands.1.name",
			wantMsg:   "more than once",
		},
		{
			name:      "invalid argument name",
			commands:  []CommandConfig{{Name: "deploy", Args: []string{"-env"}}},
			wantField: "commands.0.args.0",
			wantMsg:   "Invalid argument name",
		},
		{
			name:      "duplicate argument",
			commands:  []CommandConfig{{Name: "deploy", Args: []string{"env", "ENV"}}},
			wantField: "commands.0.args.1",
			wantMsg:   "more than once",
		},
		{
			name:      "invalid pattern",
			commands:  []CommandConfig{{Name: "deploy", Verify: []string{"^(unclosed$"}}},
			wantField: "commands.0.verify.0",
			wantMsg:   "Invalid pattern",
		},
		{
			name:      "invalid template",
			commands:  []CommandConfig{{Name: "deploy", Template: "{{ .Command"}},
			wantField: "commands.0.template",
			wantMsg:   "failed to parse template",
		},
		{
			name: "completion for undeclared argument",
			commands: []CommandConfig{{Name: "deploy", Complete: []CompleteConfig{
				{Arg: "env", Options: []string{"a"}},
			}}},
			wantField: "commands.0.complete.0.arg",
			wantMsg:   "not declared",
		},
		{
			name: "negative index",
			commands: []CommandConfig{{Name: "deploy", Complete: []CompleteConfig{
				{Index: -1, Options: []string{"a"}},
			}}},
			wantField: "commands.0.complete.0.index",
			wantMsg:   "negative",
		},
		{
			name: "missing options",
			commands: []CommandConfig{{Name: "deploy", Complete: []CompleteConfig{
				{},
			}}},
			wantField: "commands.0.complete.0.options",
			wantMsg:   "At least one option",
		},
		{
			name: "unknown flag",
			commands: []CommandConfig{{Name: "deploy", Complete: []CompleteConfig{
				{Options: []string{"a"}, Flags: []string{"fuzzy"}},
			}}},
			wantField: "commands.0.complete.0.flags",
			wantMsg:   "Unknown flag",
		},
		{
			name: "duplicate completion position",
			commands: []CommandConfig{{Name: "deploy", Args: []string{"env"}, Complete: []CompleteConfig{
				{Arg: "env", Options: []string{"a"}},
				{Arg: "ENV", Options: []string{"b"}},
			}}},
			wantField: "commands.0.complete.1",
			wantMsg:   "more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Commands: tt.commands}
			errs := cfg.Check()
			require.Len(t, errs, 1, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Contains(t, errs[0].Message, tt.wantMsg)
		})
	}
}

func TestConfig_Check_Valid(t *testing.T) {
	cfg := &Config{Commands: []CommandConfig{
		{
			Name:     "deploy",
			Args:     []string{"env"},
			Verify:   []string{`^-env \w+$`},
			Template: "{{ .Command }}",
			Complete: []CompleteConfig{
				{Arg: "env", Options: []string{"a"}, Flags: []string{"cache", "sort"}},
				{Arg: "env", Index: 1, Options: []string{"b"}},
				{Options: []string{"c"}},
			},
		},
	}}
	assert.Empty(t, cfg.Check())
}

func TestValidationResult_Messages(t *testing.T) {
	result := &ValidationResult{Valid: true}
	result.addError("commands.0.name", "bad name")
	result.addError("", "plain")

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"commands.0.name: bad name", "plain"}, result.Messages())
}
