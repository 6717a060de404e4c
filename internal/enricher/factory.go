package enricher

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by the factory
const (
	EnvProvider     = "DOCCHUNK_ENRICHMENT_PROVIDER"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Config holds enricher configuration.
type Config struct {
	Provider  string
	APIKey    string
	CacheSize int
}

// NewFromEnv creates an enricher based on environment variables.
// Priority:
// 1. DOCCHUNK_ENRICHMENT_PROVIDER (gemini, openai, noop)
// 2. Check for API keys: GEMINI_API_KEY, OPENAI_API_KEY
// 3. Default to the no-op provider when no key is found
func NewFromEnv() (Enricher, error) {
	provider := os.Getenv(EnvProvider)
	geminiKey := os.Getenv(EnvGeminiAPIKey)
	openaiKey := os.Getenv(EnvOpenAIAPIKey)

	cache := NewCache(0)

	if provider != "" {
		switch strings.ToLower(provider) {
		case ProviderGemini:
			return NewGeminiProvider(geminiKey, cache)
		case ProviderOpenAI:
			return NewOpenAIProvider(openaiKey, cache)
		case ProviderNoop:
			return NewNoopProvider(), nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
		}
	}

	if geminiKey != "" {
		return NewGeminiProvider(geminiKey, cache)
	}
	if openaiKey != "" {
		return NewOpenAIProvider(openaiKey, cache)
	}

	return NewNoopProvider(), nil
}

// New creates an enricher with explicit configuration.
func New(cfg Config) (Enricher, error) {
	var cache *Cache
	if cfg.CacheSize > 0 {
		cache = NewCache(cfg.CacheSize)
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return NewGeminiProvider(cfg.APIKey, cache)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cache)
	case ProviderNoop, "":
		return NewNoopProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

// DetectProvider returns the provider that NewFromEnv would pick.
func DetectProvider() string {
	if provider := os.Getenv(EnvProvider); provider != "" {
		return strings.ToLower(provider)
	}
	if os.Getenv(EnvGeminiAPIKey) != "" {
		return ProviderGemini
	}
	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}
	return ProviderNoop
}
