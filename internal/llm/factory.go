package llm

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/config"
)

// NewProvider creates the bare provider for providerType. API keys and
// hosts come from the environment.
func NewProvider(providerType config.ProviderType, model string) (Provider, error) {
	switch providerType {
	case config.ProviderGoogle:
		apiKey := os.Getenv(config.APIKeyEnvVar(providerType))
		if apiKey == "" {
			return nil, fmt.Errorf("%s environment variable is not set", config.APIKeyEnvVar(providerType))
		}
		return NewGoogleProvider(apiKey, model, os.Getenv("GOOGLE_API_BASE_URL")), nil

	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(providerType))
		if apiKey == "" {
			return nil, fmt.Errorf("%s environment variable is not set", config.APIKeyEnvVar(providerType))
		}
		return NewOpenAIProvider(apiKey, model, os.Getenv("OPENAI_BASE_URL")), nil

	case config.ProviderOllama:
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = DefaultOllamaHost
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// FromConfig builds the provider the assistant uses: the configured
// backend behind a rate limiter and a circuit breaker.
func FromConfig(cfg config.AssistantConfig, logger *zap.Logger) (Provider, error) {
	p, err := NewProvider(cfg.Provider, cfg.ChatModel)
	if err != nil {
		return nil, err
	}
	p = NewRateLimitedProvider(p, cfg.RequestsPerMinute)
	return NewBreakerProvider(p, BreakerConfig{
		Failures: uint32(cfg.BreakerFailures),
		Timeout:  time.Duration(cfg.BreakerTimeoutSeconds) * time.Second,
	}, logger), nil
}
