package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Config selects the model behind the tutor.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the API endpoint for anthropic, openai and
	// openrouter.
	BaseURL string
	// Timeout bounds one request, retries included.
	Timeout time.Duration
	Retry   RetryPolicy
}

type providerInfo struct {
	keyEnv       string
	defaultModel string
}

// Providers are probed in this order by DiscoverConfig.
var providerOrder = []string{"anthropic", "openai", "gemini", "openrouter"}

var providers = map[string]providerInfo{
	"anthropic":  {"ANTHROPIC_API_KEY", "claude-haiku"},
	"openai":     {"OPENAI_API_KEY", "gpt-4o-mini"},
	"gemini":     {"GEMINI_API_KEY", "gemini-flash"},
	"openrouter": {"OPENROUTER_API_KEY", "google/gemini-2.5-flash"},
	"mock":       {},
}

// DefaultConfig returns settings for provider with its default model and
// the API key from its standard environment variable.
func DefaultConfig(provider string) Config {
	info := providers[provider]
	cfg := Config{
		Provider: provider,
		Model:    info.defaultModel,
		Timeout:  30 * time.Second,
		Retry:    RetryPolicy{Attempts: 2, Base: 500 * time.Millisecond, Max: 5 * time.Second},
	}
	if info.keyEnv != "" {
		cfg.APIKey = os.Getenv(info.keyEnv)
	}
	return cfg
}

// DiscoverConfig picks the first provider whose API key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, name := range providerOrder {
		if os.Getenv(providers[name].keyEnv) != "" {
			return DefaultConfig(name), true
		}
	}
	return Config{}, false
}

// Validate checks the provider name and key.
func (c Config) Validate() error {
	info, ok := providers[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if info.keyEnv != "" && c.APIKey == "" {
		return fmt.Errorf("the %s provider needs an API key (tutor.api_key or %s)", c.Provider, info.keyEnv)
	}
	return nil
}

// NewProvider builds the configured provider wrapped with logging and
// retries. Each attempt is logged.
func NewProvider(ctx context.Context, cfg Config, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "anthropic":
		p, err = NewAnthropicProvider(cfg)
	case "openai":
		p, err = NewOpenAIProvider(cfg)
	case "openrouter":
		p, err = NewOpenRouterProvider(cfg)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg)
	case "mock":
		return WithLogging(NewMockProvider(), log), nil
	}
	if err != nil {
		return nil, err
	}
	return WithRetry(WithLogging(p, log), cfg.Retry), nil
}
