package llm

import (
	"fmt"
	"log/slog"

	llmprovider "github.com/haowjy/meridian-llm-go"
	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"

	"memoir/internal/analytics"
	"memoir/internal/config"
)

// ProviderFactory creates LLM provider instances from configuration
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{
		config: cfg,
	}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "anthropic" - Claude models via Anthropic API
//   - "lorem" - offline provider for local development (no API key required)
func (f *ProviderFactory) GetProvider(providerName string) (llmprovider.Provider, error) {
	switch providerName {
	case "anthropic":
		return f.createAnthropicProvider()
	case "lorem":
		return lorem.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

// NewClassifier resolves the configured model and wraps its provider
func (f *ProviderFactory) NewClassifier(vocab *analytics.Vocabulary, logger *slog.Logger) (*Classifier, error) {
	info, err := ParseModel(f.config.DefaultModel, f.config.DefaultProvider)
	if err != nil {
		return nil, err
	}

	provider, err := f.GetProvider(info.Provider)
	if err != nil {
		return nil, err
	}

	logger.Info("classifier configured", "provider", provider.Name().String(), "model", info.Model)

	return NewClassifier(provider, ClassifierConfig{
		Provider: info.Provider,
		Model:    info.Model,
		Vocab:    vocab,
	}, logger), nil
}

func (f *ProviderFactory) createAnthropicProvider() (llmprovider.Provider, error) {
	if f.config.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
	}

	return provider, nil
}
