package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is used when the terminal width is unknown
const DefaultWidth = 80

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderCommandList lists commands sorted by name with the first line of
// their description
func RenderCommandList(cmds []CommandInfo) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Available commands:") + "\n")

	sorted := slices.Clone(cmds)
	slices.SortFunc(sorted, func(a, b CommandInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	nameWidth := 0
	for _, cmd := range sorted {
		nameWidth = max(nameWidth, lipgloss.Width(cmd.Name))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)

	for _, cmd := range sorted {
		line := "   " + nameCol.Render(valueStyle.Render(cmd.Name))
		if summary := firstLine(cmd.Description); summary != "" {
			line += subtleStyle.Render(summary)
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	b.WriteString(subtleStyle.Render("Use 'help <command>' for a description"))
	return b.String()
}

// RenderCommandHelp shows the description, arguments and completions of a command
func RenderCommandHelp(cmd CommandInfo) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(cmd.Name) + "\n")

	if cmd.Description != "" {
		for _, line := range strings.Split(strings.TrimRight(cmd.Description, "\n"), "\n") {
			b.WriteString("   " + valueStyle.Render(line) + "\n")
		}
	} else {
		b.WriteString("   " + subtleStyle.Render("No description") + "\n")
	}

	if len(cmd.Args) > 0 {
		b.WriteString(sectionStyle.Render("Arguments:") + "\n")
		args := make([]string, 0, len(cmd.Args))
		for _, arg := range cmd.Args {
			args = append(args, keyStyle.Render("-"+arg))
		}
		b.WriteString("   " + strings.Join(args, " ") + "\n")
	}

	if len(cmd.Verify) > 0 {
		b.WriteString(sectionStyle.Render("Accepted forms:") + "\n")
		for _, pattern := range cmd.Verify {
			b.WriteString("   " + subtleStyle.Render(pattern) + "\n")
		}
	}

	if len(cmd.Completions) > 0 {
		b.WriteString(sectionStyle.Render("Completions:") + "\n")
		for _, c := range cmd.Completions {
			target := "-" + c.Arg
			if c.Arg == "" {
				target = "positional"
			}
			line := fmt.Sprintf("   %s %s %s",
				keyStyle.Render(fmt.Sprintf("%s[%d]", target, c.Index)),
				subtleStyle.Render("("+c.Flags+")"),
				valueStyle.Render(strings.Join(c.Options, ", ")))
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderOptions lays candidates out in columns fitting width
func RenderOptions(options []string, width int) string {
	if len(options) == 0 {
		return subtleStyle.Render("No options")
	}
	if width <= 0 {
		width = DefaultWidth
	}

	cell := 0
	for _, opt := range options {
		cell = max(cell, lipgloss.Width(opt))
	}
	cell += 2

	cols := max(1, width/cell)
	rows := (len(options) + cols - 1) / cols
	cellStyle := lipgloss.NewStyle().Width(cell)

	lines := make([]string, 0, rows)
	for r := range rows {
		var cells []string
		// Column-major order like shell completion listings
		for c := range cols {
			i := c*rows + r
			if i >= len(options) {
				break
			}
			cells = append(cells, cellStyle.Render(valueStyle.Render(options[i])))
		}
		lines = append(lines, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
	return strings.Join(lines, "\n")
}

// RenderWarning renders a single warning line
func RenderWarning(msg string) string {
	return warningStyle.Render("⚠ " + msg)
}

// RenderError renders a single error line
func RenderError(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// RenderValidation reports the outcome of validating configuration files
func RenderValidation(reports []ValidationReport) string {
	var b strings.Builder
	for _, r := range reports {
		if len(r.Errors) == 0 {
			b.WriteString(successStyle.Render("✓ ") + valueStyle.Render(r.Path) + subtleStyle.Render(" is valid") + "\n")
			continue
		}
		b.WriteString(errorStyle.Render("✗ ") + valueStyle.Render(r.Path) + "\n")
		for _, e := range r.Errors {
			b.WriteString("   " + errorStyle.Render("- "+e) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
