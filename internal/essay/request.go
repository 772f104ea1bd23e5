package essay

import (
	"fmt"
	"strings"
)

// Request holds everything the prompt builder needs
type Request struct {
	Content   string
	Type      Type
	Level     Level
	InputType InputType
	// Options keeps caller order. Keys not valid for Type are ignored when building.
	Options []Option
}

// DefaultRequest mirrors the form's initial selections
func DefaultRequest() Request {
	return Request{
		Type:      Argumentative,
		Level:     Medium,
		InputType: Paragraph,
		Options:   []Option{Structure, Vocabulary, Grammar},
	}
}

// Validate runs the checks a front end must do before building
func (r Request) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, string(r.Type))
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	if len(r.Options) == 0 {
		return ErrNoOptions
	}
	return nil
}

// ParseOptions converts raw keys without rejecting unknown ones
func ParseOptions(keys []string) []Option {
	opts := make([]Option, 0, len(keys))
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			opts = append(opts, Option(part))
		}
	}
	return opts
}
