package essay

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType      = errors.New("unknown essay type")
	ErrUnknownLevel     = errors.New("unknown polish level")
	ErrUnknownInputType = errors.New("unknown input type")
	ErrEmptyContent     = errors.New("content is empty")
	ErrNoOptions        = errors.New("no optimization option selected")
)

// InputType is what kind of text the user pasted
type InputType int

const (
	WordPhrase InputType = iota
	Paragraph
	FullEssay
)

// InputTypes lists every input type in display order
var InputTypes = []InputType{WordPhrase, Paragraph, FullEssay}

// Label is substituted into the prompt text
func (t InputType) Label() string {
	switch t {
	case WordPhrase:
		return "单词/词组"
	case Paragraph:
		return "段落"
	case FullEssay:
		return "全文"
	default:
		return ""
	}
}

// Key is the stable name used by flags and config
func (t InputType) Key() string {
	switch t {
	case WordPhrase:
		return "word_phrase"
	case Paragraph:
		return "paragraph"
	case FullEssay:
		return "full_essay"
	default:
		return ""
	}
}

func (t InputType) String() string {
	return t.Key()
}

func (t InputType) Valid() bool {
	return t >= WordPhrase && t <= FullEssay
}

// ParseInputType accepts either the key or the display label
func ParseInputType(s string) (InputType, error) {
	s = strings.TrimSpace(s)
	for _, t := range InputTypes {
		if strings.EqualFold(s, t.Key()) || s == t.Label() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInputType, s)
}

// Type is the kind of writing task
type Type string

const (
	Argumentative Type = "argumentative"
	Continuation  Type = "continuation"
)

var Types = []Type{Argumentative, Continuation}

func (t Type) Label() string {
	switch t {
	case Argumentative:
		return "议论文"
	case Continuation:
		return "读后续写"
	default:
		return string(t)
	}
}

func (t Type) Valid() bool {
	return t == Argumentative || t == Continuation
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Level is the requested editing intensity. It does not change the prompt yet.
type Level string

const (
	Basic    Level = "basic"
	Medium   Level = "medium"
	Advanced Level = "advanced"
)

var Levels = []Level{Basic, Medium, Advanced}

func (l Level) Label() string {
	switch l {
	case Basic:
		return "基础"
	case Medium:
		return "中等"
	case Advanced:
		return "高级"
	default:
		return string(l)
	}
}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Option is one editing dimension. Which options apply depends on the essay type.
type Option string

const (
	Structure  Option = "structure"
	Vocabulary Option = "vocabulary"
	Grammar    Option = "grammar"
	Coherence  Option = "coherence"
	Vividness  Option = "vividness"
	Climax     Option = "climax"
)

func (o Option) Label() string {
	switch o {
	case Structure:
		return "文章结构"
	case Vocabulary:
		return "词汇提升"
	case Grammar:
		return "语法优化"
	case Coherence:
		return "连贯性"
	case Vividness:
		return "生动性"
	case Climax:
		return "高潮处理"
	default:
		return string(o)
	}
}

// Options returns the options that apply to t, in display order
func (t Type) Options() []Option {
	switch t {
	case Argumentative:
		return []Option{Structure, Vocabulary, Grammar}
	case Continuation:
		return []Option{Coherence, Vividness, Climax}
	default:
		return nil
	}
}

// Accepts reports whether o is one of t's options
func (t Type) Accepts(o Option) bool {
	for _, known := range t.Options() {
		if known == o {
			return true
		}
	}
	return false
}
