package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/essaypolish/internal/config"
	"github.com/sant0-9/essaypolish/internal/essay"
	"github.com/sant0-9/essaypolish/internal/llm"
	"github.com/sant0-9/essaypolish/internal/logger"
	"github.com/sant0-9/essaypolish/internal/prompts"
)

type view int

const (
	viewForm view = iota
	viewResult
	viewSettings
	viewHelp
	viewError
)

const (
	warnEmptyContent = "请输入要润色的内容！"
	warnNoOptions    = "请至少选择一个优化维度！"
	noticeCopied     = "提示词已复制到剪贴板！"
)

// swapped out in tests
var writeClipboard = clipboard.WriteAll

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
}

func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := &App{
		view:  viewForm,
		state: newState(cfg),
	}
	a.setFocus(fieldContent)
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textarea.Blink)
}

type configSavedMsg struct{ check bool }
type pingMsg struct {
	provider string
	err      error
}
type configErrorMsg struct{ error }
type streamStartedMsg struct{ events <-chan llm.StreamEvent }
type streamEventMsg struct {
	events <-chan llm.StreamEvent
	llm.StreamEvent
}
type streamErrorMsg struct{ error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case configSavedMsg:
		a.state.settingsMode = ""
		if !msg.check {
			a.state.notice = "Settings saved"
			return a, nil
		}
		a.state.notice = "Settings saved, checking connection..."
		return a, a.checkProvider()

	case pingMsg:
		if msg.err != nil {
			a.fail(fmt.Errorf("checking provider: %w", msg.err))
			return a, nil
		}
		a.state.notice = "Connected to " + msg.provider
		return a, nil

	case configErrorMsg:
		a.fail(fmt.Errorf("saving config: %w", msg.error))
		return a, nil

	case streamStartedMsg:
		a.state.events = msg.events
		return a, waitForEvent(msg.events)

	case streamEventMsg:
		return a, a.handleStreamEvent(msg)

	case streamErrorMsg:
		a.stopStreaming()
		a.fail(msg.error)
		return a, nil
	}

	// blink, mouse and other widget messages
	var cmd tea.Cmd
	switch a.view {
	case viewForm:
		a.state.content, cmd = a.state.content.Update(msg)
	case viewResult:
		a.state.output, cmd = a.state.output.Update(msg)
	case viewSettings:
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
	}
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	boxWidth := min(76, width-4)
	if boxWidth < 20 {
		boxWidth = 20
	}
	a.state.content.SetWidth(boxWidth - 4)

	a.state.output.Width = boxWidth - 4
	a.state.output.Height = max(5, height-10)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.view {
	case viewResult:
		return a.handleResultKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Enter) {
			a.view = viewForm
			a.setFocus(a.state.focus)
		}
		return nil
	case viewError:
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Enter) {
			a.state.err = nil
			a.view = a.state.errFrom
			if a.view == viewForm {
				a.setFocus(a.state.focus)
			}
		}
		return nil
	default:
		return a.handleFormKey(msg)
	}
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Next):
		a.setFocus((a.state.focus + 1) % fieldCount)
		return nil
	case key.Matches(msg, keys.Prev):
		a.setFocus((a.state.focus + fieldCount - 1) % fieldCount)
		return nil
	case key.Matches(msg, keys.Generate):
		return a.generate()
	case key.Matches(msg, keys.Clear):
		a.clear()
		return nil
	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil
	}

	s := a.state
	if s.focus == fieldContent {
		var cmd tea.Cmd
		s.content, cmd = s.content.Update(msg)
		if s.warning == warnEmptyContent {
			s.warning = ""
		}
		return cmd
	}

	switch s.focus {
	case fieldInputType:
		s.inputType = cycle(s.inputType, len(essay.InputTypes), msg)
	case fieldEssayType:
		prev := s.essayType
		s.essayType = cycle(s.essayType, len(essay.Types), msg)
		if prev != s.essayType {
			s.optionCursor = 0
		}
	case fieldLevel:
		s.level = cycle(s.level, len(essay.Levels), msg)
	case fieldOptions:
		opts := s.visibleOptions()
		switch {
		case key.Matches(msg, keys.Up):
			if s.optionCursor > 0 {
				s.optionCursor--
			}
		case key.Matches(msg, keys.Down):
			if s.optionCursor < len(opts)-1 {
				s.optionCursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			o := opts[s.optionCursor]
			s.selected[o] = !s.selected[o]
			if s.warning == warnNoOptions {
				s.warning = ""
			}
		}
	}
	return nil
}

// cycle moves a radio selection left or right, wrapping around
func cycle(current, n int, msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Up):
		return (current + n - 1) % n
	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Down), key.Matches(msg, keys.Toggle):
		return (current + 1) % n
	}
	return current
}

func (a *App) setFocus(f field) {
	a.state.focus = f
	if f == fieldContent {
		a.state.content.Focus()
	} else {
		a.state.content.Blur()
	}
}

func (a *App) generate() tea.Cmd {
	req := a.state.request()
	if err := req.Validate(); err != nil {
		switch {
		case errors.Is(err, essay.ErrEmptyContent):
			a.state.warning = warnEmptyContent
			a.setFocus(fieldContent)
		case errors.Is(err, essay.ErrNoOptions):
			a.state.warning = warnNoOptions
			a.setFocus(fieldOptions)
		default:
			a.state.warning = err.Error()
		}
		return nil
	}

	prompt, err := prompts.Build(req)
	if err != nil {
		a.fail(err)
		return nil
	}

	logger.Infof("built %s prompt with %d options", req.Type, len(req.Options))

	s := a.state
	s.warning = ""
	s.notice = ""
	s.prompt = prompt
	s.response = ""
	a.refreshOutput()
	s.output.GotoTop()
	s.content.Blur()
	a.view = viewResult
	return nil
}

// clear empties the content and any generated output
func (a *App) clear() {
	a.stopStreaming()
	s := a.state
	s.content.Reset()
	s.prompt = ""
	s.response = ""
	s.notice = ""
	s.warning = ""
	s.output.SetContent("")
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		if s.streaming {
			a.stopStreaming()
			s.notice = "Cancelled"
			return nil
		}
		a.view = viewForm
		a.setFocus(fieldContent)
		return nil
	case key.Matches(msg, keys.Copy):
		a.copyPrompt()
		return nil
	case key.Matches(msg, keys.ClearAll):
		a.clear()
		a.view = viewForm
		a.setFocus(fieldContent)
		return nil
	case key.Matches(msg, keys.Send):
		return a.send()
	}

	var cmd tea.Cmd
	s.output, cmd = s.output.Update(msg)
	return cmd
}

func (a *App) copyPrompt() {
	if a.state.prompt == "" {
		return
	}
	if err := writeClipboard(a.state.prompt); err != nil {
		logger.Warnf("clipboard write failed: %v", err)
		a.state.notice = "Clipboard unavailable: " + err.Error()
		return
	}
	a.state.notice = noticeCopied
}

func (a *App) send() tea.Cmd {
	s := a.state
	if s.streaming || s.prompt == "" {
		return nil
	}

	provider, err := llm.NewProvider(s.config)
	if err != nil {
		a.fail(err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.streaming = true
	s.response = ""
	s.notice = ""
	a.refreshOutput()

	req := llm.NewPromptRequest(s.config.Model, s.prompt)
	logger.Infof("sending prompt to %s", provider.Name())

	return func() tea.Msg {
		events, err := provider.Stream(ctx, req)
		if err != nil {
			return streamErrorMsg{err}
		}
		return streamStartedMsg{events}
	}
}

func waitForEvent(events <-chan llm.StreamEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			ev = llm.StreamEvent{Done: true}
		}
		return streamEventMsg{events: events, StreamEvent: ev}
	}
}

func (a *App) handleStreamEvent(msg streamEventMsg) tea.Cmd {
	s := a.state
	// events from a cancelled stream
	if !s.streaming || msg.events != s.events {
		return nil
	}

	if msg.Error != nil {
		a.stopStreaming()
		a.fail(msg.Error)
		return nil
	}

	s.response += msg.Chunk
	a.refreshOutput()
	s.output.GotoBottom()

	if msg.Done {
		a.stopStreaming()
		return nil
	}
	return waitForEvent(msg.events)
}

func (a *App) stopStreaming() {
	s := a.state
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.streaming = false
	s.events = nil
}

func (a *App) refreshOutput() {
	s := a.state
	content := s.prompt
	if s.response != "" || s.streaming {
		content += "\n\n" + responseDivider + "\n\n" + s.response
	}
	s.output.SetContent(wrap(content, s.output.Width))
}

func (a *App) fail(err error) {
	logger.Errorf("%v", err)
	a.state.err = err
	if a.view != viewError {
		a.state.errFrom = a.view
	}
	a.view = viewError
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewResult:
		return a.renderResult()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderForm()
	}
}
