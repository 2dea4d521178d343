package main

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"memoir/internal/analytics"
	"memoir/internal/domain/models"
)

var demoLines = []string{
	"Had dinner with my sister and we laughed about old family trips.",
	"Long day at work. The project deadline moved again and I felt stretched thin.",
	"Went for a run by the river before breakfast. Legs heavy but mind clear.",
	"Read a few chapters and practiced Spanish for twenty minutes.",
	"Couldn't sleep well. Kept thinking about money and the rent increase.",
	"Called Maya to catch up. It has been too long since we talked.",
	"Meditated for ten minutes and noticed how tense my shoulders were.",
	"Shipped the feature I had been stuck on. Small win, felt proud.",
	"Rainy Sunday. Cooked soup, cleaned the apartment, watched a film.",
	"Therapy session today. We talked about setting boundaries at work.",
	"Weekend hike with friends in the hills. Tired and happy.",
	"Argued with my partner about chores. We made up later but I'm drained.",
}

var demoTitles = []string{"", "", "Morning pages", "Evening check-in", "Note to self"}

// moodWords returns the vocabulary's mood labels in a stable order
func moodWords(vocab *analytics.Vocabulary) []string {
	words := make([]string, 0, len(vocab.Moods))
	for w := range vocab.Moods {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// demoEntries spreads roughly perDay entries per day over the last days
// days, oldest first. The output depends only on its inputs and rnd.
func demoEntries(userID string, days int, perDay float64, now time.Time, moods []string, rnd *rand.Rand) []*models.SeedEntryRequest {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	var out []*models.SeedEntryRequest
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for i := 0; i < entriesForDay(perDay, rnd); i++ {
			createdAt := day.Add(time.Duration(7+rnd.IntN(15))*time.Hour + time.Duration(rnd.IntN(60))*time.Minute)
			if createdAt.After(now) {
				continue
			}

			req := &models.SeedEntryRequest{
				UserID:     userID,
				Content:    demoLines[rnd.IntN(len(demoLines))],
				LensScores: randomScores(rnd),
				CreatedAt:  createdAt,
			}
			if title := demoTitles[rnd.IntN(len(demoTitles))]; title != "" {
				req.Title = &title
			}
			if len(moods) > 0 {
				mood := moods[rnd.IntN(len(moods))]
				req.Mood = &mood
			}
			out = append(out, req)
		}
	}
	return out
}

// entriesForDay draws a small count with mean perDay
func entriesForDay(perDay float64, rnd *rand.Rand) int {
	n := int(perDay)
	if rnd.Float64() < perDay-float64(n) {
		n++
	}
	return n
}

func randomScores(rnd *rand.Rand) *models.LensScores {
	var s models.LensScores
	for _, l := range models.Lenses {
		s.Set(l, math.Round(rnd.Float64()*100)/100)
	}
	return &s
}
