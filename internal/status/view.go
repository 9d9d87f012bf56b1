package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
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

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderConsole(data),
		renderConfigHierarchy(data),
		renderCommands(data),
	}
	return strings.Join(sections, "\n")
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConsole(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Console:") + "\n")
	b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel) + "\n")
	b.WriteString("   " + keyStyle.Render("Prompt: ") + valueStyle.Render(fmt.Sprintf("%q", data.Prompt)) + "\n")

	switch {
	case data.History.Path == "":
		b.WriteString("   " + keyStyle.Render("History: ") + subtleStyle.Render("disabled"))
	case data.History.Exists:
		b.WriteString("   " + keyStyle.Render("History: ") + valueStyle.Render(data.History.Path) +
			subtleStyle.Render(fmt.Sprintf(" (%d entries)", data.History.Entries)))
	default:
		b.WriteString("   " + keyStyle.Render("History: ") + valueStyle.Render(data.History.Path) +
			subtleStyle.Render(" (not created yet)"))
	}
	return b.String()
}

func renderConfigHierarchy(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration hierarchy:") + "\n")

	for i, src := range data.Sources {
		status := successStyle.Render("✓")
		note := ""
		switch {
		case !src.Exists:
			status = subtleStyle.Render("-")
			note = subtleStyle.Render(" (not found)")
		case !src.Loaded:
			status = errorStyle.Render("✗")
			note = subtleStyle.Render(" (ignored)")
		}

		b.WriteString(fmt.Sprintf("   %d. %s %s %s%s\n",
			i+1,
			valueStyle.Render(src.Path),
			subtleStyle.Render("("+src.Kind+")"),
			status,
			note))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderCommands(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("🧩 Commands (%d):", len(data.Commands))) + "\n")

	if len(data.Commands) == 0 {
		b.WriteString("   " + subtleStyle.Render("No commands declared"))
		return b.String()
	}

	nameWidth := 0
	for _, cmd := range data.Commands {
		nameWidth = max(nameWidth, lipgloss.Width(cmd.Name))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)

	for _, cmd := range data.Commands {
		details := fmt.Sprintf("%d args, %d completions", cmd.Args, cmd.Completions)
		if cmd.Template {
			details += ", template"
		}
		b.WriteString("   " + nameCol.Render(valueStyle.Render(cmd.Name)) + subtleStyle.Render(details) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
