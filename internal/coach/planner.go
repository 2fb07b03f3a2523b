package coach

import (
	"math"
	"strings"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// MealSlot is one planned future meal, loggable in a single tap.
type MealSlot struct {
	Label         string
	Category      tracker.MealCategory
	TargetProtein int
	Foods         []Food
	TotalProtein  int
	TotalMacros   tracker.Macros
	CombinedName  string
}

// usedPenalty discourages repeating a food across slots in one planning run,
// in protein-gram-equivalent difference.
const usedPenalty = 5

// CategoryForHour maps a fractional local hour to the meal slot it falls in.
func CategoryForHour(hour float64) tracker.MealCategory {
	switch {
	case hour < 11:
		return tracker.MealBreakfast
	case hour < 14:
		return tracker.MealLunch
	case hour < 17:
		return tracker.MealSnack
	default:
		return tracker.MealDinner
	}
}

// PlanMeals partitions the remaining protein budget across the remaining meal
// slots and picks the best one- or two-food combo per slot. currentHour is the
// fractional local hour (e.g. 13.5 for 1:30pm).
func PlanMeals(proteinRemaining int, hoursRemaining, mealInterval, currentHour float64) []MealSlot {
	if proteinRemaining <= 0 {
		return nil
	}

	mealsLeft := int(math.Floor(hoursRemaining / mealInterval))
	if mealsLeft < 1 {
		mealsLeft = 1
	}

	var slots []MealSlot
	used := make(map[string]bool)
	budget := proteinRemaining

	for i := 0; i < mealsLeft; i++ {
		slotsRemaining := mealsLeft - i
		// Final slot absorbs the whole remainder; earlier slots re-split the
		// running budget so rounding error can't accumulate past the end.
		slotTarget := budget
		if slotsRemaining > 1 {
			slotTarget = int(math.Round(float64(budget) / float64(slotsRemaining)))
		}

		slotHour := math.Mod(currentHour+float64(i)*mealInterval, 24)
		category := CategoryForHour(slotHour)

		foods := pickFoods(coachFoods, slotTarget, category, used)
		for _, f := range foods {
			used[f.ID] = true
		}

		totalProtein := 0
		var totalMacros tracker.Macros
		names := make([]string, 0, len(foods))
		for _, f := range foods {
			totalProtein += f.Protein
			totalMacros.Carbs += f.Macros.Carbs
			totalMacros.Calories += f.Macros.Calories
			totalMacros.Fiber += f.Macros.Fiber
			names = append(names, f.Name)
		}

		label := category.Label()
		if mealsLeft == 1 {
			label = "Next Meal"
		}

		slots = append(slots, MealSlot{
			Label:         label,
			Category:      category,
			TargetProtein: slotTarget,
			Foods:         foods,
			TotalProtein:  totalProtein,
			TotalMacros:   totalMacros,
			CombinedName:  strings.Join(names, " + "),
		})

		budget -= slotTarget
		if budget <= 0 {
			break
		}
	}

	return slots
}

// pickFoods selects the single food or distinct pair closest to the target,
// with a reuse penalty per already-used id. A pair beats a single on ties.
func pickFoods(pool []Food, target int, category tracker.MealCategory, used map[string]bool) []Food {
	filtered := make([]Food, 0, len(pool))
	for _, f := range pool {
		if f.suitableFor(category) {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == 0 {
		filtered = pool
	}
	if len(filtered) == 0 {
		return nil
	}

	penalty := func(f Food) int {
		if used[f.ID] {
			return usedPenalty
		}
		return 0
	}

	bestSingleScore := -1
	var bestSingle Food
	for _, f := range filtered {
		score := abs(f.Protein-target) + penalty(f)
		if bestSingleScore < 0 || score < bestSingleScore {
			bestSingleScore = score
			bestSingle = f
		}
	}

	bestPairScore := -1
	var bestPair [2]Food
	for i := 0; i < len(filtered); i++ {
		for j := i + 1; j < len(filtered); j++ {
			score := abs(filtered[i].Protein+filtered[j].Protein-target) +
				penalty(filtered[i]) + penalty(filtered[j])
			if bestPairScore < 0 || score < bestPairScore {
				bestPairScore = score
				bestPair = [2]Food{filtered[i], filtered[j]}
			}
		}
	}

	switch {
	case bestPairScore < 0 && bestSingleScore >= 0:
		return []Food{bestSingle}
	case bestSingleScore < 0 && bestPairScore >= 0:
		return []Food{bestPair[0], bestPair[1]}
	case bestPairScore <= bestSingleScore:
		return []Food{bestPair[0], bestPair[1]}
	default:
		return []Food{bestSingle}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
