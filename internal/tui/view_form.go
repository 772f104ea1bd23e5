package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/essaypolish/internal/essay"
)

const title = "高考英语作文提示词生成器"

func (a *App) renderForm() string {
	s := a.state
	var b strings.Builder

	header := styleTitle.Render(title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n")
	sub := styleSubtitle.Render("Essay polishing prompt builder")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, sub))
	b.WriteString("\n\n")

	var inputLabels, typeLabels, levelLabels []string
	for _, t := range essay.InputTypes {
		inputLabels = append(inputLabels, t.Label())
	}
	for _, t := range essay.Types {
		typeLabels = append(typeLabels, t.Label())
	}
	for _, l := range essay.Levels {
		levelLabels = append(levelLabels, l.Label())
	}

	rows := []string{
		a.fieldRow(fieldInputType, "输入类型", radios(inputLabels, s.inputType)),
		a.fieldRow(fieldEssayType, "作文类型", radios(typeLabels, s.essayType)),
		a.fieldRow(fieldLevel, "润色级别", radios(levelLabels, s.level)),
		a.fieldRow(fieldOptions, "优化维度", a.renderOptions()),
	}

	boxWidth := min(76, a.width-4)
	settings := styleBox.Copy().
		Width(boxWidth).
		Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, settings))
	b.WriteString("\n")

	contentLabel := styleLabel.Render("输入内容")
	border := colorMuted
	if s.focus == fieldContent {
		contentLabel = styleLabelFocused.Render("输入内容")
		border = colorSecondary
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		lipgloss.NewStyle().Width(boxWidth+2).Render(contentLabel)))
	b.WriteString("\n")

	contentBox := styleBox.Copy().
		Width(boxWidth).
		BorderForeground(border).
		Render(s.content.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, contentBox))
	b.WriteString("\n")

	if s.warning != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleWarning.Render(s.warning)))
	} else if s.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(s.notice)))
	}
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Tab] Next  [←/→] Choose  [Space] Toggle  [Ctrl+G] Generate  [Ctrl+L] Clear  [Ctrl+S] Settings  [F1] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) fieldRow(f field, label, body string) string {
	style := styleLabel
	if a.state.focus == f {
		style = styleLabelFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), body)
}

func radios(labels []string, selected int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == selected {
			parts[i] = styleChoiceActive.Render("(•) " + l)
		} else {
			parts[i] = styleChoice.Render("( ) " + l)
		}
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderOptions() string {
	s := a.state
	var lines []string
	for i, o := range s.visibleOptions() {
		cursor := "  "
		if s.focus == fieldOptions && i == s.optionCursor {
			cursor = "> "
		}
		box := "[ ]"
		style := styleChoice
		if s.selected[o] {
			box = "[x]"
			style = styleChoiceActive
		}
		lines = append(lines, style.Render(cursor+box+" "+o.Label()))
	}
	return strings.Join(lines, "\n")
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
