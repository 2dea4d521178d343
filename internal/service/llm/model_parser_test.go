package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		name         string
		modelStr     string
		fallback     string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{
			name:         "claude model infers anthropic",
			modelStr:     "claude-haiku-4-5-20251001",
			wantProvider: "anthropic",
			wantModel:    "claude-haiku-4-5-20251001",
		},
		{
			name:         "lorem model",
			modelStr:     "lorem-fast",
			wantProvider: "lorem",
			wantModel:    "lorem-fast",
		},
		{
			name:         "explicit provider prefix",
			modelStr:     "anthropic/claude-sonnet-4-5",
			wantProvider: "anthropic",
			wantModel:    "claude-sonnet-4-5",
		},
		{
			name:         "unknown prefix uses fallback",
			modelStr:     "custom-model",
			fallback:     "lorem",
			wantProvider: "lorem",
			wantModel:    "custom-model",
		},
		{
			name:     "unknown prefix without fallback",
			modelStr: "custom-model",
			wantErr:  true,
		},
		{
			name:     "empty model",
			modelStr: "  ",
			wantErr:  true,
		},
		{
			name:     "empty provider segment",
			modelStr: "/claude-haiku",
			wantErr:  true,
		},
		{
			name:     "empty model segment",
			modelStr: "anthropic/",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseModel(tt.modelStr, tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, info.Provider)
			assert.Equal(t, tt.wantModel, info.Model)
		})
	}
}
