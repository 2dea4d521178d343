package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain/models"
)

func TestExtractEntities(t *testing.T) {
	first := daysAgo(1)
	first.Content = "Had coffee with Sarah in Lisbon. Sarah laughed a lot."
	second := daysAgo(0)
	second.Content = "Called Sarah again about the garden. The garden needs water."

	got := ExtractEntities([]models.Entry{second, first}, 10)

	require.Len(t, got, 3)
	assert.Equal(t, "Sarah", got[0].Text)
	assert.Equal(t, EntityPerson, got[0].Type)
	assert.Equal(t, 2, got[0].Count)
	assert.Len(t, got[0].Dates, 2)
	assert.True(t, got[0].Dates[0].Before(got[0].Dates[1]))

	assert.Equal(t, "garden", got[1].Text)
	assert.Equal(t, EntityTopic, got[1].Type)
	assert.Equal(t, 2, got[1].Count)
	assert.Len(t, got[1].Dates, 1)

	assert.Equal(t, "Lisbon", got[2].Text)
	assert.Equal(t, EntityPlace, got[2].Type)
}

func TestExtractEntitiesTopN(t *testing.T) {
	e := daysAgo(0)
	e.Content = "met Ana, Ben, Cleo and Dev"

	got := ExtractEntities([]models.Entry{e}, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Text)
	assert.Equal(t, "Ben", got[1].Text)
}

func TestEmotionalIntensity(t *testing.T) {
	assert.InDelta(t, 5.2, EmotionalIntensity("Wow!! Really?"), 1e-9)
	assert.Equal(t, 0.0, EmotionalIntensity("quiet evening"))
	assert.Equal(t, 10.0, EmotionalIntensity("!!!!!!!!"))
}
