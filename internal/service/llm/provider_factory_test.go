package llm

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/analytics"
	"memoir/internal/config"
)

func TestProviderFactory_GetProvider(t *testing.T) {
	f := NewProviderFactory(&config.Config{})

	p, err := f.GetProvider("lorem")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = f.GetProvider("anthropic")
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")

	_, err = f.GetProvider("openai")
	assert.ErrorContains(t, err, "unsupported provider")
}

func TestProviderFactory_NewClassifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := NewProviderFactory(&config.Config{DefaultProvider: "lorem", DefaultModel: "lorem-fast"})

	c, err := f.NewClassifier(analytics.DefaultVocabulary(), logger)
	require.NoError(t, err)
	assert.Equal(t, "lorem", c.provider)
	assert.Equal(t, "lorem-fast", c.model)
}
