package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/essaypolish/internal/essay"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	form := []string{
		"  Tab / Shift+Tab  Move between fields",
		"  ←/→              Change input type, essay type, level",
		"  ↑/↓, Space       Move and toggle optimization options",
		"  Ctrl+G           Generate the prompt",
		"  Ctrl+L           Clear content and output",
		"  Ctrl+S           Provider settings and form defaults",
		"  Esc              Quit",
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Form")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		styleBox.Copy().Width(60).Render(strings.Join(form, "\n"))))
	b.WriteString("\n\n")

	result := []string{
		"  c                Copy prompt to clipboard",
		"  s                Send prompt to the configured model",
		"  x                Clear and start over",
		"  j/k, PgUp/PgDn   Scroll",
		"  Esc              Back to form (cancels streaming)",
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Result")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		styleBox.Copy().Width(60).Render(strings.Join(result, "\n"))))
	b.WriteString("\n\n")

	var options []string
	for _, t := range essay.Types {
		var labels []string
		for _, o := range t.Options() {
			labels = append(labels, o.Label())
		}
		options = append(options, "  "+t.Label()+": "+strings.Join(labels, " / "))
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		styleBox.Copy().Width(60).Render(strings.Join(options, "\n"))))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
