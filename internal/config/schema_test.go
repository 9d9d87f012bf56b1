package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaJSON(t *testing.T) {
	schema := GetSchemaJSON()
	assert.Contains(t, schema, "draft-07")
	assert.Contains(t, schema, "devcmd configuration")
	assert.Contains(t, schema, `"commands"`)
}

func TestValidateWithSchema(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		content   string
		wantValid bool
		wantField string
	}{
		{
			name: "valid yaml",
			path: "config.yml",
			content: `log_level: debug
prompt: "> "
commands:
  - name: deploy
    args: [env]
    complete:
      - arg: env
        options: [staging]
        flags: [cache, sort]
`,
			wantValid: true,
		},
		{
			name:      "empty yaml document",
			path:      "config.yaml",
			content:   "",
			wantValid: true,
		},
		{
			name:      "valid json",
			path:      "config.json",
			content:   `{"commands": [{"name": "deploy", "complete": [{"index": 1, "options": ["a"]}]}]}`,
			wantValid: true,
		},
		{
			name: "valid toml",
			path: "config.toml",
			content: `prompt = "$ "

[[commands]]
name = "deploy"
args = ["env"]
`,
			wantValid: true,
		},
		{
			name:      "invalid yaml syntax",
			path:      "config.yml",
			content:   "commands: [[[",
			wantValid: false,
			wantField: "syntax",
		},
		{
			name:      "invalid json syntax",
			path:      "config.json",
			content:   `{"commands": `,
			wantValid: false,
			wantField: "syntax",
		},
		{
			name:      "invalid toml syntax",
			path:      "config.toml",
			content:   `prompt = `,
			wantValid: false,
			wantField: "syntax",
		},
		{
			name:      "unknown top-level key",
			path:      "config.yml",
			content:   "aliases: {}\n",
			wantValid: false,
		},
		{
			name:      "command without name",
			path:      "config.yml",
			content:   "commands:\n  - description: nameless\n",
			wantValid: false,
		},
		{
			name:      "command name with spaces",
			path:      "config.yml",
			content:   "commands:\n  - name: two words\n",
			wantValid: false,
		},
		{
			name:      "empty completion options",
			path:      "config.yml",
			content:   "commands:\n  - name: deploy\n    complete:\n      - options: []\n",
			wantValid: false,
		},
		{
			name:      "negative completion index",
			path:      "config.yml",
			content:   "commands:\n  - name: deploy\n    complete:\n      - index: -1\n        options: [a]\n",
			wantValid: false,
		},
		{
			name:      "unknown completion flag",
			path:      "config.yml",
			content:   "commands:\n  - name: deploy\n    complete:\n      - options: [a]\n        flags: [fuzzy]\n",
			wantValid: false,
		},
		{
			name:      "unknown log level",
			path:      "config.yml",
			content:   "log_level: loud\n",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateWithSchema(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, result.Messages())
			if tt.wantValid {
				assert.Empty(t, result.Errors)
				return
			}
			require.NotEmpty(t, result.Errors)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
			}
		})
	}
}

func TestValidateWithSchema_SyntaxMessages(t *testing.T) {
	result, err := ValidateWithSchema("config.json", []byte("{"))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0].Message, "Invalid JSON syntax"))

	result, err = ValidateWithSchema("config.yml", []byte("a: [b"))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0].Message, "Invalid YAML syntax"))
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema("config.ini", []byte("a=b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format: .ini")
}
