package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sant0-9/essaypolish/internal/essay"
	"github.com/sant0-9/essaypolish/internal/logger"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv overrides the stored API key when set
const APIKeyEnv = "ESSAYPOLISH_API_KEY"

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`

	Defaults Defaults `yaml:"defaults"`

	// fileKey is the key as stored on disk, envKey the override from APIKeyEnv
	fileKey string
	envKey  string
}

// Defaults are the form's initial selections
type Defaults struct {
	EssayType   string   `yaml:"essay_type"`
	PolishLevel string   `yaml:"polish_level"`
	InputType   string   `yaml:"input_type"`
	Options     []string `yaml:"options"`
}

func DefaultConfig() *Config {
	req := essay.DefaultRequest()
	opts := make([]string, 0, len(req.Options))
	for _, o := range req.Options {
		opts = append(opts, string(o))
	}

	return &Config{
		Provider: "ollama",
		Model:    "llama3.1:8b",
		LogLevel: "info",
		Defaults: Defaults{
			EssayType:   string(req.Type),
			PolishLevel: string(req.Level),
			InputType:   req.InputType.Key(),
			Options:     opts,
		},
	}
}

var pathOverride string

// SetPath makes Load and Save use path instead of the default location
func SetPath(path string) {
	pathOverride = path
}

func ConfigDir() (string, error) {
	if pathOverride != "" {
		return filepath.Dir(pathOverride), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "essaypolish"), nil
}

func ConfigPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file. A missing file yields DefaultConfig.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debugf("no config at %s, using defaults", path)
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.fileKey = cfg.APIKey
	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.APIKey = key
		cfg.envKey = key
	}

	return cfg, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	out := *c
	if c.envKey != "" && c.APIKey == c.envKey {
		// a key from the environment is never written to disk
		out.APIKey = c.fileKey
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	c.fileKey = out.APIKey
	return nil
}

// Request turns the stored defaults into a request with no content.
// Unparseable values fall back to the built-in defaults.
func (c *Config) Request() essay.Request {
	req := essay.DefaultRequest()

	if t, err := essay.ParseType(c.Defaults.EssayType); err == nil {
		req.Type = t
	} else if c.Defaults.EssayType != "" {
		logger.Warnf("ignoring default essay type: %v", err)
	}

	if l, err := essay.ParseLevel(c.Defaults.PolishLevel); err == nil {
		req.Level = l
	} else if c.Defaults.PolishLevel != "" {
		logger.Warnf("ignoring default polish level: %v", err)
	}

	if it, err := essay.ParseInputType(c.Defaults.InputType); err == nil {
		req.InputType = it
	} else if c.Defaults.InputType != "" {
		logger.Warnf("ignoring default input type: %v", err)
	}

	if c.Defaults.Options != nil {
		req.Options = essay.ParseOptions(c.Defaults.Options)
	}

	return req
}
