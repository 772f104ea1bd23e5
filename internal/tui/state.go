package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sant0-9/essaypolish/internal/config"
	"github.com/sant0-9/essaypolish/internal/essay"
	"github.com/sant0-9/essaypolish/internal/llm"
)

type field int

const (
	fieldInputType field = iota
	fieldEssayType
	fieldLevel
	fieldOptions
	fieldContent
)

const fieldCount = 5

type state struct {
	config *config.Config

	// Form
	focus        field
	inputType    int
	essayType    int
	level        int
	optionCursor int
	// remembered per option, even while the other essay type is shown
	selected map[essay.Option]bool
	content  textarea.Model
	warning  string

	// Result
	prompt   string
	response string
	output   viewport.Model
	notice   string

	// Streaming
	streaming bool
	events    <-chan llm.StreamEvent
	cancel    context.CancelFunc

	// Settings
	settingsMode     string
	settingsSelected int
	apiKeyInput      textinput.Model

	err     error
	errFrom view
}

func newState(cfg *config.Config) *state {
	content := textarea.New()
	content.Placeholder = "Paste a word, a paragraph or a full essay..."
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetWidth(70)
	content.SetHeight(8)

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	s := &state{
		config:      cfg,
		selected:    make(map[essay.Option]bool),
		content:     content,
		output:      viewport.New(70, 16),
		apiKeyInput: apiKey,
	}
	s.applyDefaults(cfg.Request())
	return s
}

func (s *state) applyDefaults(req essay.Request) {
	s.inputType = indexOf(essay.InputTypes, req.InputType)
	s.essayType = indexOf(essay.Types, req.Type)
	s.level = indexOf(essay.Levels, req.Level)
	for _, o := range req.Options {
		s.selected[o] = true
	}
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return 0
}

func (s *state) currentType() essay.Type {
	return essay.Types[s.essayType]
}

// visibleOptions are the options of the selected essay type
func (s *state) visibleOptions() []essay.Option {
	return s.currentType().Options()
}

// request collects the form into a builder request. Only options of the
// selected essay type are sent, in display order.
func (s *state) request() essay.Request {
	var opts []essay.Option
	for _, o := range s.visibleOptions() {
		if s.selected[o] {
			opts = append(opts, o)
		}
	}

	return essay.Request{
		Content:   strings.TrimSpace(s.content.Value()),
		Type:      s.currentType(),
		Level:     essay.Levels[s.level],
		InputType: essay.InputTypes[s.inputType],
		Options:   opts,
	}
}

// defaults captures the form as config defaults. Selections of both essay
// types are kept.
func (s *state) defaults() config.Defaults {
	var opts []string
	for _, t := range essay.Types {
		for _, o := range t.Options() {
			if s.selected[o] {
				opts = append(opts, string(o))
			}
		}
	}

	return config.Defaults{
		EssayType:   string(s.currentType()),
		PolishLevel: string(essay.Levels[s.level]),
		InputType:   essay.InputTypes[s.inputType].Key(),
		Options:     opts,
	}
}
