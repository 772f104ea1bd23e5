package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const responseDivider = "──────── 回复 ────────"

// wrap soft-wraps text to width, keeping existing line breaks
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func (a *App) renderResult() string {
	s := a.state
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("生成的提示词")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	req := s.request()
	var opts []string
	for _, o := range req.Options {
		opts = append(opts, o.Label())
	}
	summary := styleSubtitle.Render(fmt.Sprintf("%s · %s · %s · %s",
		req.Type.Label(), req.Level.Label(), req.InputType.Label(), strings.Join(opts, ", ")))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, summary))
	b.WriteString("\n\n")

	resultStyle := styleBox.Copy().
		Width(min(76, a.width-4)).
		BorderForeground(colorPrimary)
	if s.streaming {
		resultStyle = resultStyle.BorderForeground(colorSecondary)
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultStyle.Render(s.output.View())))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(s.notice)))
	}
	b.WriteString("\n")

	var status string
	if s.streaming {
		status = fmt.Sprintf("Streaming from %s...  [Esc] Cancel", s.config.Provider)
	} else {
		tokens := fmt.Sprintf("~%d tokens  %3.f%%", estimateTokens(s.prompt), s.output.ScrollPercent()*100)
		status = tokens + "  [j/k] Scroll  [c] Copy  [s] Send  [x] Clear  [Esc] Back"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}
