package coach

import (
	"fmt"
	"strings"
)

// DefaultOllamaBaseURL is Ollama's OpenAI-compatible endpoint
const DefaultOllamaBaseURL = "http://localhost:11434/v1"

// NewProvider creates the configured provider, or nil when coaching is disabled
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		p, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return p, nil

	case "ollama":
		if config.BaseURL == "" {
			config.BaseURL = DefaultOllamaBaseURL
		}
		if config.APIKey == "" {
			// Ollama ignores the key but the client sends one
			config.APIKey = "ollama"
		}
		return newCompatibleProvider("ollama", config), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown coach provider: %s (supported: openai, ollama)", config.Provider)
	}
}
