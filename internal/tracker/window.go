package tracker

import (
	"fmt"
	"math"
	"time"
)

const autoWindowHours = 12

// FixedBounds is a user-configured eating window in minutes since midnight.
type FixedBounds struct {
	StartMinutes int
	EndMinutes   int
}

// Window is the derived eating window for today.
type Window struct {
	Start          time.Time
	End            time.Time
	HoursElapsed   float64 // rounded to 0.1
	HoursRemaining float64 // rounded to 0.1, never negative
	Open           bool
	Suggestion     string // per-meal suggestion text, empty when none applies
	MealsLeft      int
	PerMealGrams   int
}

// ComputeWindow derives the eating window from today's entries or a fixed
// override. Returns false when no window is defined (no entries, no override).
// Entries need not be pre-sorted.
func ComputeWindow(entries []ProteinEntry, totalProtein, goal int, mealInterval float64, fixed *FixedBounds, now time.Time) (Window, bool) {
	var start, end time.Time

	switch {
	case fixed != nil:
		start = MinutesToInstant(now, fixed.StartMinutes)
		end = MinutesToInstant(now, fixed.EndMinutes)
		// Overnight window: end at or before start rolls to the next day.
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
	case len(entries) > 0:
		first := entries[0].Timestamp
		for _, e := range entries[1:] {
			if e.Timestamp < first {
				first = e.Timestamp
			}
		}
		start = time.UnixMilli(first)
		end = start.Add(autoWindowHours * time.Hour)
	default:
		return Window{}, false
	}

	elapsed := now.Sub(start).Hours()
	remaining := math.Max(0, end.Sub(now).Hours())
	open := !now.Before(start) && now.Before(end)

	w := Window{
		Start:          start,
		End:            end,
		HoursElapsed:   math.Round(elapsed*10) / 10,
		HoursRemaining: math.Round(remaining*10) / 10,
		Open:           open,
	}

	if open && totalProtein < goal {
		mealsLeft := int(math.Floor(remaining / mealInterval))
		if mealsLeft < 1 {
			mealsLeft = 1
		}
		perMeal := int(math.Round(float64(goal-totalProtein) / float64(mealsLeft)))
		if perMeal > 0 {
			w.MealsLeft = mealsLeft
			w.PerMealGrams = perMeal
			w.Suggestion = fmt.Sprintf("~%dg protein per meal (%d meals left)", perMeal, mealsLeft)
		}
	}

	return w, true
}
