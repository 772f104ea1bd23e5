package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	// form field labels
	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(10)

	styleLabelFocused = styleLabel.Copy().
				Foreground(colorSecondary).
				Bold(true)

	styleChoice = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleChoiceActive = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorSuccess)
)
