package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain/models"
)

func TestDetectThemes(t *testing.T) {
	vocab := DefaultVocabulary()

	tests := []struct {
		name string
		text string
		want []ThemeHit
	}{
		{
			name: "keywords of one theme add up",
			text: "work was long. more work after the job, then the other job. saw a friend, my friend.",
			want: []ThemeHit{{Name: "work", Count: 4}},
		},
		{
			name: "below threshold is dropped",
			text: "a friend called. another friend texted.",
			want: []ThemeHit{},
		},
		{
			name: "suffixes match",
			text: "working on learning, learned a lot and growing",
			want: []ThemeHit{{Name: "growth", Count: 3}},
		},
		{
			name: "shared keyword counts for both themes",
			text: "project notes. project plan. project review.",
			want: []ThemeHit{{Name: "work", Count: 3}, {Name: "creativity", Count: 3}},
		},
		{
			name: "no partial word matches",
			text: "network homework artwork",
			want: []ThemeHit{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectThemes(tt.text, vocab, DefaultThemeMinCount, DefaultThemeTopN)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectThemesOrderAndTopN(t *testing.T) {
	vocab := DefaultVocabulary()
	text := "sleep sleep sleep. think think think think. friend friend friend friend friend. learn learn learn"

	got := DetectThemes(text, vocab, 3, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "relationships", got[0].Name)
	assert.Equal(t, "reflection", got[1].Name)
}

func TestJoinContentLowercases(t *testing.T) {
	entries := []models.Entry{{Content: "Work"}, {Content: "JOB"}}
	assert.Equal(t, "work\njob", JoinContent(entries))
}

func TestThemeConnections(t *testing.T) {
	vocab := DefaultVocabulary()
	entries := []models.Entry{
		{Content: "meeting with my boss, then a workout"},
		{Content: "job stress, could not sleep"},
		{Content: "family dinner"},
	}

	got := ThemeConnections(entries, vocab, 20)

	require.NotEmpty(t, got)
	assert.Equal(t, ThemeConnection{From: "work", To: "health", Strength: 2}, got[0])
}
