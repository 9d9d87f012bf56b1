package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCommandList(t *testing.T) {
	output := RenderCommandList([]CommandInfo{
		{Name: "test1", Description: "Demo command\nwith more lines"},
		{Name: "echo", Description: "Print values"},
		{Name: "help"},
	})

	assert.Contains(t, output, "Available commands:")
	assert.Contains(t, output, "Demo command")
	assert.NotContains(t, output, "with more lines")
	assert.Contains(t, output, "Use 'help <command>'")

	// Sorted by name
	echo := strings.Index(output, "   echo")
	help := strings.Index(output, "   help")
	test1 := strings.Index(output, "   test1")
	assert.GreaterOrEqual(t, echo, 0)
	assert.Less(t, echo, help)
	assert.Less(t, help, test1)
}

func TestRenderCommandHelp(t *testing.T) {
	output := RenderCommandHelp(CommandInfo{
		Name:        "test1",
		Description: "Demo command\nSecond line",
		Args:        []string{"name1", "quoted"},
		Verify:      []string{"^$"},
		Completions: []CompletionInfo{
			{Arg: "name1", Index: 0, Flags: "cache|sort", Options: []string{"val11", "val12"}},
			{Index: 0, Flags: "none"},
		},
	})

	assert.Contains(t, output, "test1")
	assert.Contains(t, output, "Second line")
	assert.Contains(t, output, "Arguments:")
	assert.Contains(t, output, "-name1")
	assert.Contains(t, output, "-quoted")
	assert.Contains(t, output, "Accepted forms:")
	assert.Contains(t, output, "^$")
	assert.Contains(t, output, "-name1[0]")
	assert.Contains(t, output, "val11, val12")
	assert.Contains(t, output, "positional[0]")
	assert.False(t, strings.HasSuffix(output, "\n"))
}

func TestRenderCommandHelp_Minimal(t *testing.T) {
	output := RenderCommandHelp(CommandInfo{Name: "bare"})

	assert.Contains(t, output, "No description")
	assert.NotContains(t, output, "Arguments:")
	assert.NotContains(t, output, "Completions:")
}

func TestRenderOptions(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, RenderOptions(nil, 80), "No options")
	})

	t.Run("fits on one line", func(t *testing.T) {
		output := RenderOptions([]string{"val11", "val12"}, 80)
		assert.Equal(t, 1, strings.Count(output, "\n")+1)
		assert.Contains(t, output, "val11")
		assert.Contains(t, output, "val12")
	})

	t.Run("wraps in columns", func(t *testing.T) {
		// cell width is 4, two columns fit in 8
		output := RenderOptions([]string{"aa", "bb", "cc", "dd"}, 8)
		lines := strings.Split(output, "\n")
		assert.Len(t, lines, 2)
		assert.Contains(t, lines[0], "aa")
		assert.Contains(t, lines[0], "cc")
		assert.Contains(t, lines[1], "bb")
		assert.Contains(t, lines[1], "dd")
	})

	t.Run("unknown width", func(t *testing.T) {
		assert.Contains(t, RenderOptions([]string{"x"}, 0), "x")
	})
}

func TestRenderValidation(t *testing.T) {
	output := RenderValidation([]ValidationReport{
		{Path: "/tmp/ok.yml"},
		{Path: "/tmp/bad.yml", Errors: []string{"commands.0.name: is required"}},
	})

	assert.Contains(t, output, "/tmp/ok.yml")
	assert.Contains(t, output, "is valid")
	assert.Contains(t, output, "/tmp/bad.yml")
	assert.Contains(t, output, "commands.0.name: is required")
}

func TestRenderWarningAndError(t *testing.T) {
	assert.Contains(t, RenderWarning("careful"), "careful")
	assert.Contains(t, RenderError("broken"), "broken")
}
