package config

import "time"

const (
	// MaxEntryTitleLength fits VARCHAR(255).
	MaxEntryTitleLength = 255

	// MaxEntryContentLength caps a single entry, in runes.
	MaxEntryContentLength = 10000

	// MaxTraitItems caps each merged trait list (themes, values).
	MaxTraitItems = 10

	// MaxPromptIntentionLength caps the free-text writing intention.
	MaxPromptIntentionLength = 500

	// RecentMoodHistory is how many past moods the insight prompt sees.
	RecentMoodHistory = 5

	// DefaultReflectionPageSize bounds GET /api/reflections.
	DefaultReflectionPageSize = 20
	MaxReflectionPageSize     = 100

	// MaxSeriesDays bounds the series endpoint window.
	MaxSeriesDays = 366
)

// Goals.
const (
	MaxGoalTextLength     = 500
	MaxGoalCategoryLength = 50
	MaxGoalNotesLength    = 2000

	// MaxActiveGoals caps goals in the active state; paused and completed
	// goals do not count.
	MaxActiveGoals = 10
)

// Dashboard windows.
const (
	MoodSeriesDays     = 14
	PulseDays          = 30
	HeatmapWeeks       = 8
	LensWindow         = 7
	TrendWindow        = 7
	EntityLimit        = 15
	ThemeConnectionCap = 20
)

const (
	// DefaultSurpriseProbability is the chance a save triggers a surprise.
	DefaultSurpriseProbability = 0.33

	// DefaultSurpriseDelay paces the reveal of a surprise after it is ready.
	DefaultSurpriseDelay = 2 * time.Second

	// DefaultFreePromptLimit is the number of analysed saves per usage period.
	DefaultFreePromptLimit = 10
)
