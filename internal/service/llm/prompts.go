package llm

import (
	"fmt"
	"sort"
	"strings"

	"memoir/internal/domain/models"
	"memoir/internal/domain/services"
)

const previewLength = 100

func moodPrompt(text string, labels []string) string {
	return fmt.Sprintf(`You are attuned to emotional energy in personal writing.
Name the primary mood of the journal entry below.
Respond with ONLY ONE WORD from this list: %s.

Entry: %s`, strings.Join(labels, ", "), text)
}

func insightPrompt(text string, recentMoods []string, prefs *models.PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a compassionate journaling companion. Reflect on the entry below. ")
	b.WriteString("Offer an insight that illuminates a pattern or a quiet strength, as a trusted friend would. ")
	b.WriteString("Keep it to 2-3 sentences.\n")
	writeProfile(&b, prefs)
	if len(recentMoods) > 0 {
		fmt.Fprintf(&b, "\nRecent moods, newest first: %s\n", strings.Join(recentMoods, ", "))
	}
	fmt.Fprintf(&b, "\nEntry: %s", text)
	return b.String()
}

func writingPrompt(prefs *models.PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a warm guide for reflective writing. ")
	b.WriteString("Write one journaling prompt that invites honest introspection. ")
	b.WriteString("Keep it to 1-2 sentences and reply with the prompt only.\n")
	writeProfile(&b, prefs)
	return b.String()
}

func lensPrompt(text string) string {
	return fmt.Sprintf(`Score this journal entry on five life lenses, each from 0.0 to 1.0:
- connection: people, affection, empathy, care, conflict resolution
- vitality: rest, pace, momentum, tension, movement
- purpose: building, striving, finishing, frustration, focus
- growth: reflection language such as realized, learned, changed; new topics
- harmony: calm language, closure, balance, contentment

For every lens scoring above 0.3 add an insight quoting the signal you noticed.

Respond in JSON:
{"scores": {"connection": 0.0, "vitality": 0.0, "purpose": 0.0, "growth": 0.0, "harmony": 0.0},
 "insights": [{"lens": "", "signal": "", "interpretation": ""}]}

Entry: %s`, text)
}

func traitsPrompt(text string) string {
	return fmt.Sprintf(`Based on this journal entry, extract:
1. Key themes (max 3 words each)
2. Core values mentioned
3. Tone preference (playful/serious/balanced)

Entry: "%s"

Respond in JSON: {"themes": [], "values": [], "tone": ""}`, text)
}

func surprisePrompt(req *services.SurpriseRequest) string {
	var b strings.Builder
	b.WriteString("You are a thoughtful journaling assistant with long-term memory.\n")

	fmt.Fprintf(&b, "\nCurrent entry: %q\n\n", req.Entry.Content)

	switch req.Type {
	case models.ReflectionQuote:
		b.WriteString("Share an inspiring quote (with author) that relates to this reflection. Make it unexpected but meaningful.")
	case models.ReflectionChallenge:
		b.WriteString(`Offer a tiny, actionable micro-challenge related to this reflection. Start with "Try this:" and keep it simple.`)
	case models.ReflectionEcho:
		if req.Past != nil {
			fmt.Fprintf(&b, "Past entry from %s: %q\n\n", req.Past.CreatedAt.Format("January 2, 2006"), preview(req.Past.Content))
			b.WriteString(`Compare the current entry with the past one. Show growth or change. Start with a time reference like "Three weeks ago..."`)
			break
		}
		fallthrough
	default:
		b.WriteString(`Make a gentle observation about a pattern in this reflection. Start with "I notice..." and stay non-judgmental.`)
	}

	b.WriteString("\nKeep it under 60 words.")
	return b.String()
}

// writeProfile appends what the model should know about the writer
func writeProfile(b *strings.Builder, prefs *models.PromptContext) {
	if prefs == nil {
		return
	}
	if prefs.Tone != "" {
		fmt.Fprintf(b, "\nPreferred tone: %s", prefs.Tone)
	}
	if len(prefs.Goals) > 0 {
		fmt.Fprintf(b, "\nCurrent goals: %s", strings.Join(prefs.Goals, "; "))
	}
	if prefs.Intention != "" {
		fmt.Fprintf(b, "\nWriting intention: %s", prefs.Intention)
	}
	if t := prefs.Traits; t != nil {
		if len(t.Themes) > 0 {
			fmt.Fprintf(b, "\nRecurring themes: %s", strings.Join(t.Themes, ", "))
		}
		if len(t.Values) > 0 {
			fmt.Fprintf(b, "\nCore values: %s", strings.Join(t.Values, ", "))
		}
	}
	b.WriteString("\n")
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength]) + "..."
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
