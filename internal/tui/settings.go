package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/essaypolish/internal/config"
	"github.com/sant0-9/essaypolish/internal/llm"
)

const pingTimeout = 15 * time.Second

func (a *App) openSettings() {
	a.state.content.Blur()
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
	a.state.notice = ""
	a.view = viewSettings
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state

	switch s.settingsMode {
	case "provider":
		return a.handleListKey(msg, len(config.Providers), func(i int) tea.Cmd {
			p := config.Providers[i]
			s.config.Provider = p.ID
			s.config.Model = p.DefaultModel
			s.config.BaseURL = ""
			if p.NeedsAPIKey && s.config.APIKey == "" {
				return a.editAPIKey()
			}
			return a.saveConfig(true)
		})

	case "model":
		provider := config.GetProvider(s.config.Provider)
		if provider == nil {
			s.settingsMode = ""
			return nil
		}
		return a.handleListKey(msg, len(provider.Models), func(i int) tea.Cmd {
			s.config.Model = provider.Models[i]
			return a.saveConfig(true)
		})

	case "apikey":
		switch {
		case key.Matches(msg, keys.Quit):
			s.apiKeyInput.Reset()
			s.apiKeyInput.Blur()
			s.settingsMode = ""
			return nil
		case key.Matches(msg, keys.Enter):
			s.config.APIKey = s.apiKeyInput.Value()
			s.apiKeyInput.Reset()
			s.apiKeyInput.Blur()
			return a.saveConfig(true)
		}
		var cmd tea.Cmd
		s.apiKeyInput, cmd = s.apiKeyInput.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.view = viewForm
		a.setFocus(s.focus)
	default:
		switch msg.String() {
		case "p":
			s.settingsMode = "provider"
			s.settingsSelected = providerIndex(s.config.Provider)
		case "m":
			s.settingsMode = "model"
			s.settingsSelected = 0
		case "k":
			return a.editAPIKey()
		case "d":
			s.config.Defaults = s.defaults()
			return a.saveConfig(false)
		}
	}
	return nil
}

// handleListKey drives the up/down/enter lists in settings
func (a *App) handleListKey(msg tea.KeyMsg, n int, choose func(int) tea.Cmd) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		s.settingsMode = ""
	case key.Matches(msg, keys.Up):
		if s.settingsSelected > 0 {
			s.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if s.settingsSelected < n-1 {
			s.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		return choose(s.settingsSelected)
	}
	return nil
}

func (a *App) editAPIKey() tea.Cmd {
	a.state.settingsMode = "apikey"
	a.state.apiKeyInput.Focus()
	return textinput.Blink
}

// saveConfig writes the config. With check set, the provider is pinged
// once the file is saved.
func (a *App) saveConfig(check bool) tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return configErrorMsg{err}
		}
		return configSavedMsg{check: check}
	}
}

func (a *App) checkProvider() tea.Cmd {
	provider, err := llm.NewProvider(a.state.config)
	if err != nil {
		return func() tea.Msg { return pingMsg{err: err} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return pingMsg{provider: provider.Name(), err: provider.Ping(ctx)}
	}
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return 0
}
