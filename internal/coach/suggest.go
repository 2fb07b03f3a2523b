package coach

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// Search finds foods in the quick-add pool by fuzzy prefix match,
// case-insensitive, best matches first.
func Search(query string, limit int) []Food {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 2 {
		return nil
	}
	words := strings.Fields(q)

	type scored struct {
		food  Food
		score int
	}
	var results []scored

	for _, f := range quickFoods {
		name := strings.ToLower(f.Name)

		allMatch := true
		for _, w := range words {
			if !strings.Contains(name, w) {
				allMatch = false
				break
			}
		}
		if !allMatch {
			continue
		}

		var score int
		switch {
		case name == q:
			score = 100
		case strings.HasPrefix(name, q):
			score = 80
		case strings.HasPrefix(name, words[0]):
			score = 60
		case strings.Contains(name, q):
			score = 40
		default:
			score = 20 // all words present but scattered
		}

		// Shorter names are more specific; protein-heavy foods get a nudge.
		if extra := 20 - len(name); extra > 0 {
			score += extra
		}
		score += min(f.Protein, 10)

		results = append(results, scored{food: f, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	out := make([]Food, len(results))
	for i, r := range results {
		out[i] = r.food
	}
	return out
}

// defaultSuggestionIDs lists the go-to foods per meal slot for quick add.
var defaultSuggestionIDs = map[tracker.MealCategory][]string{
	tracker.MealBreakfast: {"eggs", "greek-yogurt", "oatmeal", "egg-whites", "peanut-butter"},
	tracker.MealLunch:     {"chicken-breast", "deli-turkey", "tuna-canned", "lentils", "quinoa"},
	tracker.MealDinner:    {"salmon", "chicken-thigh", "ground-turkey", "shrimp", "tofu"},
	tracker.MealSnack:     {"cottage-cheese", "protein-shake", "protein-bar", "almonds", "edamame"},
}

// DefaultSuggestions returns the quick-add suggestions for a meal slot.
func DefaultSuggestions(category tracker.MealCategory) []Food {
	var out []Food
	for _, id := range defaultSuggestionIDs[category] {
		if f, ok := findQuickFood(id); ok {
			out = append(out, f)
		}
	}
	return out
}

// highProteinIDs is the rotating pool for snack-mode suggestions.
var highProteinIDs = []string{
	"chicken-breast", "protein-shake", "greek-yogurt", "cottage-cheese",
	"eggs", "salmon", "deli-turkey", "protein-bar", "string-cheese",
	"jerky-beef", "ground-turkey", "turkey-breast", "edamame", "lentils",
	"hemp-seeds", "tofu", "tempeh", "lobster", "sardines",
}

// HighProteinSuggestions shuffles the high-protein pool with the given source
// and returns the first limit foods. Callers seed the source; a fixed seed
// gives a reproducible order.
func HighProteinSuggestions(rng *rand.Rand, limit int) []Food {
	foods := make([]Food, 0, len(highProteinIDs))
	for _, id := range highProteinIDs {
		if f, ok := findQuickFood(id); ok {
			foods = append(foods, f)
		}
	}

	rng.Shuffle(len(foods), func(i, j int) {
		foods[i], foods[j] = foods[j], foods[i]
	})

	if limit > 0 && len(foods) > limit {
		foods = foods[:limit]
	}
	return foods
}
