package store

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// maxFavorites caps the stored list; least-used entries fall off.
const maxFavorites = 10

// Favorite is a frequently logged food, merged by name and protein amount.
type Favorite struct {
	Name     string               `json:"name"`
	Protein  int                  `json:"protein"`
	Carbs    int                  `json:"carbs"`
	Calories int                  `json:"calories"`
	Fiber    int                  `json:"fiber"`
	Category tracker.MealCategory `json:"category"`
	Count    int                  `json:"count"`
}

// Favorites returns the stored favorites. Malformed items are dropped.
func (s *Store) Favorites() []Favorite {
	raw, ok := s.Get(favoritesKey)
	if !ok {
		return nil
	}
	var parsed []Favorite
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.notify(ErrReadCorrupted, favoritesKey)
		return nil
	}
	kept := parsed[:0]
	for _, f := range parsed {
		if f.Name == "" || len(f.Name) > 200 {
			continue
		}
		if !f.Category.Valid() {
			f.Category = tracker.MealSnack
		}
		if f.Count < 1 {
			f.Count = 1
		}
		kept = append(kept, f)
	}
	return kept
}

// UpdateFavorite bumps the use count for a logged food, creating it when new.
// Matching is case-insensitive on name plus exact protein grams.
func (s *Store) UpdateFavorite(name string, protein int, category tracker.MealCategory, macros *tracker.Macros) {
	favorites := s.Favorites()

	found := false
	for i := range favorites {
		f := &favorites[i]
		if strings.EqualFold(f.Name, name) && f.Protein == protein {
			f.Count++
			f.Category = category
			if macros != nil {
				f.Carbs = macros.Carbs
				f.Calories = macros.Calories
				f.Fiber = macros.Fiber
			}
			found = true
			break
		}
	}

	if !found {
		fav := Favorite{Name: name, Protein: protein, Category: category, Count: 1}
		if macros != nil {
			fav.Carbs = macros.Carbs
			fav.Calories = macros.Calories
			fav.Fiber = macros.Fiber
		}
		favorites = append(favorites, fav)
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].Count > favorites[j].Count
	})
	if len(favorites) > maxFavorites {
		favorites = favorites[:maxFavorites]
	}
	s.setJSON(favoritesKey, favorites)
}

// TopFavorites returns the most-used favorites, at most limit.
func (s *Store) TopFavorites(limit int) []Favorite {
	favorites := s.Favorites()
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].Count > favorites[j].Count
	})
	if limit > 0 && len(favorites) > limit {
		favorites = favorites[:limit]
	}
	return favorites
}

// CategoryFavorites returns the most-used favorites for one meal slot.
func (s *Store) CategoryFavorites(category tracker.MealCategory, limit int) []Favorite {
	var out []Favorite
	for _, f := range s.Favorites() {
		if f.Category == category {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
