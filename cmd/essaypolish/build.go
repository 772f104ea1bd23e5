package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sant0-9/essaypolish/internal/config"
	"github.com/sant0-9/essaypolish/internal/essay"
	"github.com/sant0-9/essaypolish/internal/llm"
	"github.com/sant0-9/essaypolish/internal/logger"
	"github.com/sant0-9/essaypolish/internal/prompts"
	"github.com/spf13/cobra"
)

var writeClipboard = clipboard.WriteAll

type buildOptions struct {
	essayType string
	level     string
	inputType string
	options   []string
	file      string
	copy      bool
	send      bool
	noStream  bool
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	o := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [content...]",
		Short: "Print a polishing prompt",
		Long: `Build a polishing prompt and print it.

Content comes from --file, the positional arguments, or stdin, in that order.
Flags that are not given fall back to the defaults in the config file.`,
		Example: `  essaypolish build --option structure --option grammar "Nowadays, more and more..."
  cat essay.txt | essaypolish build --essay-type continuation --option climax --input-type full_essay
  essaypolish build --file essay.txt --send`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := o.request(cmd, root.config)
			if err != nil {
				return err
			}

			content, err := o.readContent(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			req.Content = strings.TrimSpace(content)

			if err := req.Validate(); err != nil {
				return err
			}

			prompt, err := prompts.Build(req)
			if err != nil {
				return err
			}
			logger.Debugf("built %s prompt with options %v", req.Type, req.Options)

			if o.copy {
				if err := writeClipboard(prompt); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "提示词已复制到剪贴板！")
			}

			if o.send {
				return sendPrompt(cmd, root.config, prompt, !o.noStream)
			}

			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.essayType, "essay-type", "t", "", "argumentative or continuation")
	f.StringVarP(&o.level, "level", "l", "", "Polish level: basic, medium or advanced")
	f.StringVarP(&o.inputType, "input-type", "i", "", "word_phrase, paragraph or full_essay")
	f.StringArrayVarP(&o.options, "option", "o", nil, "Focus area, repeatable and kept in order (e.g. structure, climax)")
	f.StringVarP(&o.file, "file", "f", "", "Read content from a file (- for stdin)")
	f.BoolVar(&o.copy, "copy", false, "Copy the prompt to the clipboard")
	f.BoolVar(&o.send, "send", false, "Send the prompt to the configured provider and print the reply")
	f.BoolVar(&o.noStream, "no-stream", false, "With --send, wait for the whole reply instead of streaming it")

	return cmd
}

// request merges flags over the config defaults
func (o *buildOptions) request(cmd *cobra.Command, cfg *config.Config) (essay.Request, error) {
	req := cfg.Request()
	flags := cmd.Flags()

	if flags.Changed("essay-type") {
		t, err := essay.ParseType(o.essayType)
		if err != nil {
			return req, err
		}
		req.Type = t
	}
	if flags.Changed("level") {
		l, err := essay.ParseLevel(o.level)
		if err != nil {
			return req, err
		}
		req.Level = l
	}
	if flags.Changed("input-type") {
		it, err := essay.ParseInputType(o.inputType)
		if err != nil {
			return req, err
		}
		req.InputType = it
	}

	if flags.Changed("option") {
		// explicit keys are passed through as-is; unknown ones are skipped by the builder
		req.Options = essay.ParseOptions(o.options)
	} else {
		req.Options = defaultOptions(req.Type, req.Options)
	}

	return req, nil
}

// defaultOptions keeps the configured defaults that fit t, or every option
// of t when none do
func defaultOptions(t essay.Type, configured []essay.Option) []essay.Option {
	var opts []essay.Option
	for _, o := range configured {
		if t.Accepts(o) {
			opts = append(opts, o)
		}
	}
	if len(opts) == 0 {
		return t.Options()
	}
	return opts
}

func (o *buildOptions) readContent(stdin io.Reader, args []string) (string, error) {
	switch {
	case o.file == "-":
		return readAll(stdin)
	case o.file != "":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return "", fmt.Errorf("reading content: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return readAll(stdin)
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func sendPrompt(cmd *cobra.Command, cfg *config.Config, prompt string, stream bool) error {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	logger.Infof("sending prompt to %s (%s)", provider.Name(), cfg.Model)

	req := llm.NewPromptRequest(cfg.Model, prompt)
	out := cmd.OutOrStdout()

	if !stream {
		resp, err := provider.Complete(cmd.Context(), req)
		if err != nil {
			return err
		}
		logger.Debugf("reply used %d prompt and %d completion tokens",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		fmt.Fprintln(out, resp.Content)
		return nil
	}

	events, err := provider.Stream(cmd.Context(), req)
	if err != nil {
		return err
	}

	for ev := range events {
		if ev.Error != nil {
			return ev.Error
		}
		fmt.Fprint(out, ev.Chunk)
		if ev.Done {
			break
		}
	}
	fmt.Fprintln(out)

	// interrupted streams end without Done
	return cmd.Context().Err()
}
