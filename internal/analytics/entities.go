package analytics

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"memoir/internal/domain/models"
)

// EntityType is the coarse kind of an extracted entity.
type EntityType string

const (
	EntityPerson EntityType = "person"
	EntityPlace  EntityType = "place"
	EntityTopic  EntityType = "topic"
)

// Entity is a recurring name or topic across entries.
type Entity struct {
	Text  string      `json:"text"`
	Type  EntityType  `json:"type"`
	Count int         `json:"count"`
	Dates []time.Time `json:"dates"`
}

// minTopicLength filters short common words out of topic candidates.
const minTopicLength = 6

var placePrepositions = map[string]bool{
	"in": true, "at": true, "to": true, "from": true, "near": true, "visited": true,
}

var stopwords = map[string]bool{
	"i": true, "i'm": true, "i've": true, "i'll": true, "i'd": true, "the": true, "a": true,
	"an": true, "and": true, "but": true, "or": true, "so": true, "it": true, "its": true,
	"this": true, "that": true, "these": true, "those": true, "my": true, "me": true,
	"we": true, "our": true, "you": true, "your": true, "he": true, "she": true,
	"they": true, "them": true, "his": true, "her": true, "their": true, "today": true,
	"yesterday": true, "tomorrow": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true, "sunday": true, "when": true,
	"what": true, "why": true, "how": true, "then": true, "there": true, "here": true,
	"also": true, "just": true, "really": true, "because": true, "something": true,
	"anything": true, "everything": true, "nothing": true, "though": true, "through": true,
	"before": true, "after": true, "again": true, "still": true, "about": true,
	"should": true, "would": true, "could": true, "might": true, "being": true,
	"having": true, "thinking": true, "feeling": true, "little": true, "things": true,
	"people": true, "myself": true, "another": true, "around": true, "maybe": true,
}

type entityKey struct {
	text string
	kind EntityType
}

// ExtractEntities surfaces people, places and topics with simple token
// heuristics: capitalised words that do not open a sentence are names
// (places when they follow a locative preposition), and long lowercase
// words repeated across entries are topics. Results are ordered by count,
// then alphabetically, capped at topN.
func ExtractEntities(entries []models.Entry, topN int) []Entity {
	found := make(map[entityKey]*Entity)
	order := make([]entityKey, 0)

	add := func(key entityKey, at time.Time) {
		ent, ok := found[key]
		if !ok {
			ent = &Entity{Text: key.text, Type: key.kind}
			found[key] = ent
			order = append(order, key)
		}
		ent.Count++
		day := at.UTC().Truncate(24 * time.Hour)
		for _, d := range ent.Dates {
			if d.Equal(day) {
				return
			}
		}
		ent.Dates = append(ent.Dates, day)
	}

	for i := range entries {
		tokens := tokenize(entries[i].Content)
		for j, tok := range tokens {
			word := tok.text
			lower := strings.ToLower(word)
			if stopwords[lower] {
				continue
			}
			if tok.capitalised && !tok.sentenceStart {
				kind := EntityPerson
				if j > 0 && placePrepositions[strings.ToLower(tokens[j-1].text)] {
					kind = EntityPlace
				}
				add(entityKey{text: word, kind: kind}, entries[i].CreatedAt)
				continue
			}
			if !tok.capitalised && len([]rune(lower)) >= minTopicLength {
				add(entityKey{text: lower, kind: EntityTopic}, entries[i].CreatedAt)
			}
		}
	}

	out := make([]Entity, 0, len(order))
	for _, key := range order {
		ent := found[key]
		// single mentions of a topic are noise; names are kept
		if ent.Type == EntityTopic && ent.Count < 2 {
			continue
		}
		sort.Slice(ent.Dates, func(a, b int) bool { return ent.Dates[a].Before(ent.Dates[b]) })
		out = append(out, *ent)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Text < out[b].Text
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

type token struct {
	text          string
	capitalised   bool
	sentenceStart bool
}

// tokenize splits text into words, remembering whether each word starts
// a sentence. Apostrophes stay inside words.
func tokenize(text string) []token {
	var tokens []token
	var cur []rune
	sentenceStart := true
	pendingStart := true

	flush := func() {
		if len(cur) == 0 {
			return
		}
		w := strings.Trim(string(cur), "'")
		if w != "" {
			r := []rune(w)
			tokens = append(tokens, token{
				text:          w,
				capitalised:   unicode.IsUpper(r[0]),
				sentenceStart: pendingStart,
			})
			pendingStart = false
		}
		cur = cur[:0]
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			if len(cur) == 0 {
				pendingStart = sentenceStart
				sentenceStart = false
			}
			cur = append(cur, r)
		default:
			flush()
			if r == '.' || r == '!' || r == '?' || r == '\n' {
				sentenceStart = true
			}
		}
	}
	flush()
	return tokens
}

// EmotionalIntensity scores punctuation and shouting on a 0-10 scale.
func EmotionalIntensity(text string) float64 {
	var exclamations, questions, capitals int
	for _, r := range text {
		switch {
		case r == '!':
			exclamations++
		case r == '?':
			questions++
		case unicode.IsUpper(r):
			capitals++
		}
	}
	score := float64(exclamations*2+questions) + float64(capitals)/10
	if score > 10 {
		return 10
	}
	return score
}
