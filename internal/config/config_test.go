package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("TABLE_PREFIX", "")

	cfg := Load()

	assert.Equal(t, "test_", cfg.TablePrefix)
	assert.Equal(t, "https://example.supabase.co/auth/v1/.well-known/jwks.json", cfg.SupabaseJWKSURL)
	assert.Equal(t, DefaultSurpriseProbability, cfg.SurpriseProbability)
	assert.Equal(t, DefaultSurpriseDelay, cfg.SurpriseDelay)
	assert.Equal(t, DefaultFreePromptLimit, cfg.FreePromptLimit)
	assert.False(t, cfg.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABLE_PREFIX", "custom_")
	t.Setenv("SURPRISE_PROBABILITY", "0.5")
	t.Setenv("SURPRISE_DELAY", "250ms")
	t.Setenv("FREE_PROMPT_LIMIT", "3")
	t.Setenv("SURPRISE_WORKERS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "custom_", cfg.TablePrefix)
	assert.Equal(t, 0.5, cfg.SurpriseProbability)
	assert.Equal(t, 250*time.Millisecond, cfg.SurpriseDelay)
	assert.Equal(t, 3, cfg.FreePromptLimit)
	assert.Equal(t, 2, cfg.SurpriseWorkers)
}

func TestSetupLogFileKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"memoir-2020-01-01T00-00-00.log", "memoir-2020-01-02T00-00-00.log", "memoir-2020-01-03T00-00-00.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, "memoir-*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.NotContains(t, files, filepath.Join(dir, "memoir-2020-01-01T00-00-00.log"))
	assert.NotContains(t, files, filepath.Join(dir, "memoir-2020-01-02T00-00-00.log"))
}
