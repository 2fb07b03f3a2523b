// Package coach plans meals and suggests foods from a curated catalog.
package coach

import "github.com/sadopc/proteinpal/internal/tracker"

// Food is a catalog item. SuitableFor lists the meal slots it fits; the
// planner falls back to the whole pool when a slot has no suitable foods.
type Food struct {
	ID          string
	Name        string
	Protein     int
	Macros      tracker.Macros
	Category    tracker.MealCategory
	SuitableFor []tracker.MealCategory
}

func (f Food) suitableFor(c tracker.MealCategory) bool {
	for _, m := range f.SuitableFor {
		if m == c {
			return true
		}
	}
	return false
}

// coachFoods is the curated pool for meal planning.
var coachFoods = []Food{
	{
		ID: "protein-shake", Name: "Protein Shake", Protein: 30,
		Macros:   tracker.Macros{Carbs: 3, Calories: 160, Fiber: 1},
		Category: tracker.MealSnack,
		SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack},
	},
	{
		ID: "chicken-breast", Name: "Chicken Breast", Protein: 31,
		Macros:   tracker.Macros{Carbs: 0, Calories: 165, Fiber: 0},
		Category: tracker.MealLunch,
		SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner},
	},
	{
		ID: "greek-yogurt", Name: "Greek Yogurt", Protein: 15,
		Macros:   tracker.Macros{Carbs: 7, Calories: 100, Fiber: 0},
		Category: tracker.MealBreakfast,
		SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack},
	},
	{
		ID: "cottage-cheese", Name: "Cottage Cheese", Protein: 14,
		Macros:   tracker.Macros{Carbs: 5, Calories: 110, Fiber: 0},
		Category: tracker.MealSnack,
		SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner, tracker.MealSnack},
	},
	{
		ID: "eggs", Name: "Eggs", Protein: 12,
		Macros:   tracker.Macros{Carbs: 1, Calories: 143, Fiber: 0},
		Category: tracker.MealBreakfast,
		SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealLunch},
	},
	{
		ID: "string-cheese", Name: "String Cheese", Protein: 7,
		Macros:   tracker.Macros{Carbs: 0, Calories: 80, Fiber: 0},
		Category: tracker.MealSnack,
		SuitableFor: []tracker.MealCategory{tracker.MealSnack},
	},
	{
		ID: "salmon", Name: "Salmon", Protein: 25,
		Macros:   tracker.Macros{Carbs: 0, Calories: 208, Fiber: 0},
		Category: tracker.MealDinner,
		SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner},
	},
	{
		ID: "lentils", Name: "Lentils", Protein: 9,
		Macros:   tracker.Macros{Carbs: 20, Calories: 115, Fiber: 8},
		Category: tracker.MealLunch,
		SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner},
	},
	{
		ID: "edamame", Name: "Edamame", Protein: 9,
		Macros:   tracker.Macros{Carbs: 5, Calories: 95, Fiber: 4},
		Category: tracker.MealSnack,
		SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner, tracker.MealSnack},
	},
	{
		ID: "tofu", Name: "Tofu", Protein: 10,
		Macros:   tracker.Macros{Carbs: 2, Calories: 88, Fiber: 1},
		Category: tracker.MealLunch,
		SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner},
	},
}

// Catalog returns a copy of the curated meal-planning pool.
func Catalog() []Food {
	out := make([]Food, len(coachFoods))
	copy(out, coachFoods)
	return out
}

// quickFoods backs the search and quick-add surfaces. A broader pool than the
// planner catalog, deliberately common foods with rough per-serving macros.
var quickFoods = []Food{
	{ID: "chicken-breast", Name: "Chicken Breast", Protein: 31, Macros: tracker.Macros{Calories: 165}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "chicken-thigh", Name: "Chicken Thigh", Protein: 24, Macros: tracker.Macros{Calories: 209}, Category: tracker.MealDinner, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "ground-beef", Name: "Ground Beef", Protein: 22, Macros: tracker.Macros{Calories: 250}, Category: tracker.MealDinner, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "ground-turkey", Name: "Ground Turkey", Protein: 27, Macros: tracker.Macros{Calories: 195}, Category: tracker.MealDinner, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "turkey-breast", Name: "Turkey Breast", Protein: 29, Macros: tracker.Macros{Calories: 135}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "deli-turkey", Name: "Deli Turkey", Protein: 18, Macros: tracker.Macros{Carbs: 2, Calories: 100}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealSnack}},
	{ID: "salmon", Name: "Salmon", Protein: 25, Macros: tracker.Macros{Calories: 208}, Category: tracker.MealDinner, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "tuna-canned", Name: "Canned Tuna", Protein: 24, Macros: tracker.Macros{Calories: 110}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealSnack}},
	{ID: "sardines", Name: "Sardines", Protein: 23, Macros: tracker.Macros{Calories: 190}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealSnack}},
	{ID: "shrimp", Name: "Shrimp", Protein: 20, Macros: tracker.Macros{Calories: 85}, Category: tracker.MealDinner, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "lobster", Name: "Lobster", Protein: 19, Macros: tracker.Macros{Calories: 90}, Category: tracker.MealDinner, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "eggs", Name: "Eggs", Protein: 12, Macros: tracker.Macros{Carbs: 1, Calories: 143}, Category: tracker.MealBreakfast, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealLunch, tracker.MealSnack}},
	{ID: "egg-whites", Name: "Egg Whites", Protein: 11, Macros: tracker.Macros{Calories: 52}, Category: tracker.MealBreakfast, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealLunch}},
	{ID: "greek-yogurt", Name: "Greek Yogurt", Protein: 15, Macros: tracker.Macros{Carbs: 7, Calories: 100}, Category: tracker.MealBreakfast, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack}},
	{ID: "cottage-cheese", Name: "Cottage Cheese", Protein: 14, Macros: tracker.Macros{Carbs: 5, Calories: 110}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack}},
	{ID: "string-cheese", Name: "String Cheese", Protein: 7, Macros: tracker.Macros{Calories: 80}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealSnack}},
	{ID: "protein-shake", Name: "Protein Shake", Protein: 30, Macros: tracker.Macros{Carbs: 3, Calories: 160, Fiber: 1}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack}},
	{ID: "protein-bar", Name: "Protein Bar", Protein: 20, Macros: tracker.Macros{Carbs: 23, Calories: 210, Fiber: 3}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealSnack}},
	{ID: "jerky-beef", Name: "Beef Jerky", Protein: 11, Macros: tracker.Macros{Carbs: 3, Calories: 80}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealSnack}},
	{ID: "almonds", Name: "Almonds", Protein: 6, Macros: tracker.Macros{Carbs: 6, Calories: 164, Fiber: 4}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealSnack}},
	{ID: "peanut-butter", Name: "Peanut Butter", Protein: 8, Macros: tracker.Macros{Carbs: 6, Calories: 188, Fiber: 2}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack}},
	{ID: "oatmeal", Name: "Oatmeal", Protein: 6, Macros: tracker.Macros{Carbs: 27, Calories: 150, Fiber: 4}, Category: tracker.MealBreakfast, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast}},
	{ID: "tofu", Name: "Tofu", Protein: 10, Macros: tracker.Macros{Carbs: 2, Calories: 88, Fiber: 1}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "tempeh", Name: "Tempeh", Protein: 19, Macros: tracker.Macros{Carbs: 9, Calories: 160, Fiber: 5}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "lentils", Name: "Lentils", Protein: 9, Macros: tracker.Macros{Carbs: 20, Calories: 115, Fiber: 8}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "edamame", Name: "Edamame", Protein: 9, Macros: tracker.Macros{Carbs: 5, Calories: 95, Fiber: 4}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner, tracker.MealSnack}},
	{ID: "black-beans", Name: "Black Beans", Protein: 8, Macros: tracker.Macros{Carbs: 20, Calories: 114, Fiber: 7}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
	{ID: "hemp-seeds", Name: "Hemp Seeds", Protein: 10, Macros: tracker.Macros{Carbs: 3, Calories: 166, Fiber: 1}, Category: tracker.MealSnack, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast, tracker.MealSnack}},
	{ID: "milk-skim", Name: "Skim Milk", Protein: 8, Macros: tracker.Macros{Carbs: 12, Calories: 83}, Category: tracker.MealBreakfast, SuitableFor: []tracker.MealCategory{tracker.MealBreakfast}},
	{ID: "quinoa", Name: "Quinoa", Protein: 8, Macros: tracker.Macros{Carbs: 39, Calories: 222, Fiber: 5}, Category: tracker.MealLunch, SuitableFor: []tracker.MealCategory{tracker.MealLunch, tracker.MealDinner}},
}

// Database returns a copy of the quick-add food pool.
func Database() []Food {
	out := make([]Food, len(quickFoods))
	copy(out, quickFoods)
	return out
}

// findQuickFood looks up a quick-add food by id.
func findQuickFood(id string) (Food, bool) {
	for _, f := range quickFoods {
		if f.ID == id {
			return f, true
		}
	}
	return Food{}, false
}
