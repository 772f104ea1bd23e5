package llm

import (
	"fmt"

	"github.com/sant0-9/essaypolish/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	info := config.GetProvider(cfg.Provider)

	switch cfg.Provider {
	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil

	case "ollama", "openai", "groq", "openrouter":
		if info.NeedsAPIKey && cfg.APIKey == "" {
			return nil, fmt.Errorf("%s requires an API key", cfg.Provider)
		}
		baseURL := info.BaseURL
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			// ollama ignores the key but the client still sends a header
			apiKey = "ollama"
		}
		return NewOpenAIProvider(cfg.Provider, baseURL, apiKey, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewOpenAIProvider("custom", cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
