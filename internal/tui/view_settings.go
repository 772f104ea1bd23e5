package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/essaypolish/internal/config"
	"github.com/sant0-9/essaypolish/internal/essay"
)

const settingsWidth = 56

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderProviderList()
	case "model":
		return a.renderModelList()
	case "apikey":
		return a.renderAPIKeyEntry()
	default:
		return a.renderSettingsMain()
	}
}

// settingsPage centers a heading, the blocks and a help line
func (a *App) settingsPage(heading, help string, blocks ...string) string {
	var b strings.Builder
	center := func(s string) {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s))
		b.WriteString("\n\n")
	}

	center(styleTitle.Render(heading))
	for _, block := range blocks {
		center(block)
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(help)))

	return a.centerVertically(b.String())
}

func settingsBox(lines ...string) string {
	return styleBox.Copy().
		Width(settingsWidth).
		Render(strings.Join(lines, "\n"))
}

func settingRow(label, value string) string {
	return styleLabel.Render(label) + value
}

func (a *App) renderSettingsMain() string {
	cfg := a.state.config

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}
	conn := []string{
		styleChoiceActive.Render("模型服务"),
		settingRow("Provider", providerName),
		settingRow("Model", cfg.Model),
		settingRow("API Key", maskKey(cfg.APIKey)),
	}
	if cfg.BaseURL != "" {
		conn = append(conn, settingRow("Base URL", cfg.BaseURL))
	}

	req := cfg.Request()
	defaults := []string{
		styleChoiceActive.Render("表单默认值"),
		settingRow("作文类型", req.Type.Label()),
		settingRow("润色级别", req.Level.Label()),
		settingRow("输入类型", req.InputType.Label()),
		settingRow("优化维度", optionLabels(req.Options)),
	}

	blocks := []string{
		settingsBox(conn...),
		settingsBox(defaults...),
		settingsBox(
			"[p] Provider   [m] Model   [k] API key",
			"[d] Save the current form as defaults",
		),
	}
	if path, err := config.ConfigPath(); err == nil {
		blocks = append(blocks, styleSubtitle.Render(path))
	}
	if a.state.notice != "" {
		blocks = append(blocks, styleNotice.Render(a.state.notice))
	}

	return a.settingsPage("Settings", "[Esc] Back", blocks...)
}

// optionLabels joins the option labels for display
func optionLabels(opts []essay.Option) string {
	var labels []string
	for _, o := range opts {
		labels = append(labels, o.Label())
	}
	if len(labels) == 0 {
		return "无"
	}
	return strings.Join(labels, "、")
}

// maskKey shows only the ends of a key
func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

// choiceList renders items with a cursor on the selected one
func (a *App) choiceList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if i == a.state.settingsSelected {
			lines[i] = styleChoiceActive.Render("> " + item)
		} else {
			lines[i] = styleChoice.Render("  " + item)
		}
	}
	return settingsBox(lines...)
}

const listHelp = "[Up/Down] Navigate  [Enter] Select  [Esc] Cancel"

func (a *App) renderProviderList() string {
	items := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		items[i] = fmt.Sprintf("%-12s %s", p.Name, p.Description)
	}
	return a.settingsPage("Select Provider", listHelp, a.choiceList(items))
}

func (a *App) renderModelList() string {
	p := config.GetProvider(a.state.config.Provider)
	if p == nil {
		return a.settingsPage("Select Model", "[Esc] Back", styleSubtitle.Render("No provider selected"))
	}

	items := make([]string, len(p.Models))
	for i, m := range p.Models {
		items[i] = m
		if m == a.state.config.Model {
			items[i] += " (current)"
		}
	}
	return a.settingsPage("Select Model", listHelp,
		styleSubtitle.Render("Provider: "+p.Name),
		a.choiceList(items),
	)
}

func (a *App) renderAPIKeyEntry() string {
	hint := "Enter your API key"
	if p := config.GetProvider(a.state.config.Provider); p != nil && p.SignupURL != "" {
		hint = fmt.Sprintf("Enter your %s API key. Get one at: %s", p.Name, p.SignupURL)
	}

	input := styleBox.Copy().
		Width(settingsWidth).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())

	return a.settingsPage("Update API Key", "[Enter] Save  [Esc] Cancel",
		styleSubtitle.Render(hint),
		input,
	)
}
