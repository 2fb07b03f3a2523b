package tracker

// StreakTier is a pure function of the current streak length.
type StreakTier string

const (
	TierNone   StreakTier = "none"
	TierBronze StreakTier = "bronze"
	TierSilver StreakTier = "silver"
	TierGold   StreakTier = "gold"
	TierQueen  StreakTier = "queen"
)

// TierFor maps a streak length to its tier.
func TierFor(streak int) StreakTier {
	switch {
	case streak >= 30:
		return TierQueen
	case streak >= 14:
		return TierGold
	case streak >= 7:
		return TierSilver
	case streak >= 3:
		return TierBronze
	default:
		return TierNone
	}
}

// StreakData tracks consecutive days the goal was met.
type StreakData struct {
	CurrentStreak   int        `json:"currentStreak"`
	LongestStreak   int        `json:"longestStreak"`
	LastGoalMetDate string     `json:"lastGoalMetDate"` // YYYY-MM-DD, empty when never
	Tier            StreakTier `json:"tier"`
}

// DefaultStreak is the zero-value streak.
func DefaultStreak() StreakData {
	return StreakData{Tier: TierNone}
}

// ValidStreak reports whether a decoded streak has a usable shape.
func ValidStreak(s StreakData) bool {
	return s.CurrentStreak >= 0 && s.LongestStreak >= 0 &&
		(s.LastGoalMetDate == "" || dateKeyRE.MatchString(s.LastGoalMetDate))
}

// ReconcileOnLoad applies yesterday's outcome to the streak. Call once per
// session start. daySuccessful reports whether the record for a day key
// counted (goal met or cheat day). Returns the next snapshot; the caller
// persists it.
func (s StreakData) ReconcileOnLoad(clock Clock, daySuccessful func(dateKey string) bool) StreakData {
	now := clock.Now()
	todayKey := DayKey(now)
	yesterdayKey := DayKey(now.AddDate(0, 0, -1))

	// Today's goal already recorded means this session was reconciled.
	if s.LastGoalMetDate == todayKey {
		return s
	}

	if daySuccessful(yesterdayKey) {
		if s.LastGoalMetDate != yesterdayKey {
			diff := 999
			if s.LastGoalMetDate != "" {
				if d, ok := DaysBetween(s.LastGoalMetDate, yesterdayKey); ok {
					diff = d
				}
			}
			if diff <= 1 {
				s.CurrentStreak++
			} else {
				s.CurrentStreak = 1
			}
			s.LastGoalMetDate = yesterdayKey
		}
	} else if s.LastGoalMetDate != "" {
		if diff, ok := DaysBetween(s.LastGoalMetDate, yesterdayKey); ok && diff >= 1 {
			s.CurrentStreak = 0
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.Tier = TierFor(s.CurrentStreak)
	return s
}

// MarkTodayMet records today as a goal-met day. Idempotent within the same
// day: calling again after today is recorded changes nothing.
func (s StreakData) MarkTodayMet(clock Clock) StreakData {
	now := clock.Now()
	todayKey := DayKey(now)
	if s.LastGoalMetDate == todayKey {
		return s
	}

	yesterdayKey := DayKey(now.AddDate(0, 0, -1))
	if s.LastGoalMetDate == yesterdayKey {
		s.CurrentStreak++
	} else if s.CurrentStreak == 0 {
		s.CurrentStreak = 1
	}

	s.LastGoalMetDate = todayKey
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.Tier = TierFor(s.CurrentStreak)
	return s
}
