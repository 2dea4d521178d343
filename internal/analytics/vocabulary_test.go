package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()

	assert.Equal(t, []string{"happiness", "sadness", "fear", "anger", "surprise", "disgust"}, vocab.Categories)
	assert.Equal(t, 5.0, vocab.DefaultIntensity)
	require.Len(t, vocab.Themes, 6)

	categories := map[string]bool{}
	for _, c := range vocab.Categories {
		categories[c] = true
	}
	for mood, def := range vocab.Moods {
		assert.True(t, categories[def.Category], "mood %s maps to unknown category %q", mood, def.Category)
		assert.GreaterOrEqual(t, def.Intensity, 1.0, mood)
		assert.LessOrEqual(t, def.Intensity, 10.0, mood)
	}
}

func TestVocabularyLookups(t *testing.T) {
	vocab := DefaultVocabulary()

	assert.Equal(t, 8.0, vocab.Intensity("Happy"))
	assert.Equal(t, 5.0, vocab.Intensity("wistful"))

	cat, ok := vocab.Category("grateful")
	require.True(t, ok)
	assert.Equal(t, "happiness", cat)

	_, ok = vocab.Category("wistful")
	assert.False(t, ok)

	label, ok := vocab.Normalize("  Anxious. ")
	assert.True(t, ok)
	assert.Equal(t, "anxious", label)

	_, ok = vocab.Normalize("meh")
	assert.False(t, ok)
}

func TestNewVocabulary(t *testing.T) {
	vocab, err := NewVocabulary(
		map[string]MoodDef{"glad": {Category: "joy", Intensity: 9}},
		[]Theme{{Name: "pets", Keywords: []string{"dog", "cat"}}},
		4,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"joy"}, vocab.Categories)
	assert.Equal(t, 4.0, vocab.Intensity("unknown"))
	assert.Equal(t, []ThemeHit{{Name: "pets", Count: 2}}, DetectThemes("dogs and cats", vocab, 1, 3))

	_, err = NewVocabulary(nil, []Theme{{Keywords: []string{"x"}}}, 5)
	assert.Error(t, err)
}
