package main

import (
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/essaypolish/internal/config"
	"github.com/sant0-9/essaypolish/internal/logger"
	"github.com/sant0-9/essaypolish/internal/tui"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel   string
	configPath string
	config     *config.Config
	logFile    *os.File
}

func newRootCmd(opts *rootOptions) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "essaypolish",
		Short: "Build polishing prompts for high school English essays",
		Long: `essaypolish turns an essay type, polish level, input type and a set of
focus areas into a ready-to-paste prompt for a language model.

Run without a subcommand to open the interactive form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.Root() == cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, opts.config)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Set the logging level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Config file (default ~/.config/essaypolish/config.yaml)")

	cmd.AddCommand(
		newBuildCmd(opts),
		newOptionsCmd(),
		newVersionCmd(),
	)

	return cmd
}

// load reads config and sets up logging. The form logs to a file so the
// alt screen stays clean; other commands log to stderr.
func (o *rootOptions) load(interactive bool) error {
	if o.configPath != "" {
		config.SetPath(o.configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o.config = cfg

	level := o.logLevel
	if level == "" {
		level = cfg.LogLevel
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if f, err := openLogFile(); err == nil {
			o.logFile = f
			w = f
		}
	}
	logger.Init(level, w)
	logger.Debugf("log level set to %s", level)
	return nil
}

// close releases the form's log file. Call it after logger.Sync.
func (o *rootOptions) close() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return err
}

func openLogFile() (*os.File, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "essaypolish.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
}

func runForm(cmd *cobra.Command, cfg *config.Config) error {
	app := tui.NewApp(cfg)
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	_, err := p.Run()
	return err
}
