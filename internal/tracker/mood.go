package tracker

// Mood is the companion's current state.
type Mood string

const (
	MoodTired        Mood = "tired"
	MoodHungry       Mood = "hungry"
	MoodDisappointed Mood = "disappointed"
	MoodMotivated    Mood = "motivated"
	MoodHappy        Mood = "happy"
	MoodFlexing      Mood = "flexing"
	MoodFull         Mood = "full"
)

// ComputeMood classifies the companion's mood. hoursSinceMeal is nil when no
// meal has been logged today. localHour is the current wall-clock hour,
// injected so the after-6pm rule is testable.
//
// First match wins; the disappointed rules must run before the progress-tier
// fallback so a small late snack reads as disappointed, not tired.
func ComputeMood(progressPercent int, hoursSinceMeal *float64, mealInterval float64, isCheatDay bool, localHour int) Mood {
	justAte := hoursSinceMeal != nil && *hoursSinceMeal < 0.5

	// Cheat day: never a negative mood.
	if isCheatDay {
		switch {
		case justAte:
			return MoodFull
		case progressPercent >= 100:
			return MoodFlexing
		case progressPercent > 0:
			return MoodHappy
		default:
			return MoodMotivated
		}
	}

	if justAte {
		return MoodFull
	}

	// Overdue for a meal and goal not reached. Exactly the interval is not
	// overdue (strict >).
	if hoursSinceMeal != nil && *hoursSinceMeal > mealInterval && progressPercent < 100 {
		return MoodHungry
	}

	// Ate something but fell off badly: significantly overdue with low progress.
	if progressPercent > 0 && progressPercent < 50 &&
		hoursSinceMeal != nil && *hoursSinceMeal > mealInterval*1.5 {
		return MoodDisappointed
	}

	// After 6pm with less than half the goal and something eaten.
	if localHour >= 18 && progressPercent > 0 && progressPercent < 50 {
		return MoodDisappointed
	}

	if hoursSinceMeal == nil && progressPercent == 0 {
		return MoodTired
	}

	switch {
	case progressPercent >= 100:
		return MoodFlexing
	case progressPercent >= 70:
		return MoodHappy
	case progressPercent >= 30:
		return MoodMotivated
	default:
		return MoodTired
	}
}
