// Package analytics turns a user's entry collection into the derived views
// the dashboards render: streaks, distributions, lens averages and trends,
// gap-filled time series, themes and entities.
//
// Every function here is pure. Callers pass the entries (newest first, as
// the store returns them), the reference time and the user's location, and
// get the same output for the same input.
package analytics

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// MoodDef maps a mood word onto a basic category and a 1-10 intensity.
type MoodDef struct {
	Category  string  `yaml:"category"`
	Intensity float64 `yaml:"intensity"`
}

// Theme is a named keyword list.
type Theme struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary holds the mood table and the theme keyword tables.
type Vocabulary struct {
	Categories       []string           `yaml:"categories"`
	DefaultIntensity float64            `yaml:"default_intensity"`
	Moods            map[string]MoodDef `yaml:"moods"`
	Themes           []Theme            `yaml:"-"`

	// compiled keyword patterns, parallel to Themes[i].Keywords
	patterns [][]*regexp.Regexp
}

var (
	defaultVocab    *Vocabulary
	defaultVocabErr error
	defaultOnce     sync.Once
)

// DefaultVocabulary returns the embedded vocabulary. It panics if the
// embedded files are malformed, which can only happen at build time.
func DefaultVocabulary() *Vocabulary {
	defaultOnce.Do(func() {
		defaultVocab, defaultVocabErr = LoadVocabulary()
	})
	if defaultVocabErr != nil {
		panic(defaultVocabErr)
	}
	return defaultVocab
}

// LoadVocabulary parses the embedded YAML tables.
func LoadVocabulary() (*Vocabulary, error) {
	var v Vocabulary
	if err := loadConfigFile("config/vocabulary.yaml", &v); err != nil {
		return nil, err
	}

	var themes struct {
		Themes []Theme `yaml:"themes"`
	}
	if err := loadConfigFile("config/themes.yaml", &themes); err != nil {
		return nil, err
	}
	v.Themes = themes.Themes

	if err := v.compile(); err != nil {
		return nil, err
	}
	return &v, nil
}

// NewVocabulary builds a vocabulary from explicit tables. Used by tests and
// callers that want a custom theme set.
func NewVocabulary(moods map[string]MoodDef, themes []Theme, defaultIntensity float64) (*Vocabulary, error) {
	v := &Vocabulary{
		Moods:            moods,
		Themes:           themes,
		DefaultIntensity: defaultIntensity,
	}
	seen := map[string]bool{}
	for _, def := range moods {
		if def.Category != "" && !seen[def.Category] {
			seen[def.Category] = true
			v.Categories = append(v.Categories, def.Category)
		}
	}
	if err := v.compile(); err != nil {
		return nil, err
	}
	return v, nil
}

func loadConfigFile(name string, dest interface{}) error {
	data, err := configFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func (v *Vocabulary) compile() error {
	v.patterns = make([][]*regexp.Regexp, len(v.Themes))
	for i, theme := range v.Themes {
		if theme.Name == "" {
			return fmt.Errorf("theme %d has no name", i)
		}
		for _, kw := range theme.Keywords {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\w*\b`)
			if err != nil {
				return fmt.Errorf("theme %s keyword %q: %w", theme.Name, kw, err)
			}
			v.patterns[i] = append(v.patterns[i], re)
		}
	}
	return nil
}

// Normalize lowercases a raw label and strips surrounding punctuation.
// It reports whether the result is a known mood.
func (v *Vocabulary) Normalize(raw string) (string, bool) {
	label := strings.ToLower(strings.Trim(strings.TrimSpace(raw), ".,!?\"'`*"))
	_, ok := v.Moods[label]
	return label, ok
}

// Intensity returns the 1-10 intensity of a mood, or the default for unknown labels.
func (v *Vocabulary) Intensity(mood string) float64 {
	if def, ok := v.Moods[strings.ToLower(mood)]; ok {
		return def.Intensity
	}
	return v.DefaultIntensity
}

// Category maps a mood onto its basic category.
func (v *Vocabulary) Category(mood string) (string, bool) {
	def, ok := v.Moods[strings.ToLower(mood)]
	if !ok || def.Category == "" {
		return "", false
	}
	return def.Category, true
}
