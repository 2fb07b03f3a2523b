package tracker

// Level thresholds, ascending. Level is the highest 1-based index whose
// threshold the total reaches; level 5 is the cap.
var xpThresholds = []int{0, 100, 300, 700, 1200}

const (
	entryXP        = 10
	milestone50XP  = 25
	milestone100XP = 50
	streakBonusXP  = 5 // per streak day, on the 100% milestone
)

// XpData tracks total XP and the per-day award idempotency keys.
type XpData struct {
	TotalXP            int    `json:"totalXp"`
	Level              int    `json:"level"`
	LastEntryAwardDate string `json:"lastEntryAwardDate"`
	Last50Date         string `json:"last50Date"`
	Last100Date        string `json:"last100Date"`
	EntryCountToday    int    `json:"entryCountToday"`
}

// DefaultXP is the zero-value XP state.
func DefaultXP() XpData {
	return XpData{Level: 1}
}

// ValidXP reports whether a decoded XP snapshot has a usable shape.
func ValidXP(x XpData) bool {
	return x.TotalXP >= 0
}

// LevelForXP returns the level for a total, 1..5.
func LevelForXP(total int) int {
	for i := len(xpThresholds) - 1; i >= 0; i-- {
		if total >= xpThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// NextLevelThreshold returns the XP needed for the next level, or 0 at cap.
func NextLevelThreshold(level int) int {
	if level >= len(xpThresholds) {
		return 0
	}
	return xpThresholds[level]
}

// Normalize resets the daily entry counter on date rollover and recomputes the
// level. Run after loading a persisted snapshot.
func (x XpData) Normalize(todayKey string) XpData {
	if x.LastEntryAwardDate != todayKey {
		x.EntryCountToday = 0
	}
	x.Level = LevelForXP(x.TotalXP)
	return x
}

// AwardEntryXP adds the fixed per-entry award. Callers invoke it once per
// newly logged entry; it is not capped per day.
func (x XpData) AwardEntryXP(todayKey string) XpData {
	if x.LastEntryAwardDate != todayKey {
		x.EntryCountToday = 0
		x.LastEntryAwardDate = todayKey
	}
	x.TotalXP += entryXP
	x.EntryCountToday++
	x.Level = LevelForXP(x.TotalXP)
	return x
}

// AwardMilestoneXP awards the 50% and 100% daily milestones. Each fires at
// most once per calendar day; both can fire in one call when progress is
// already past 100%. The 100% milestone carries a streak bonus.
func (x XpData) AwardMilestoneXP(todayKey string, progressPercent, currentStreak int) XpData {
	changed := false

	if progressPercent >= 50 && x.Last50Date != todayKey {
		x.TotalXP += milestone50XP
		x.Last50Date = todayKey
		changed = true
	}

	if progressPercent >= 100 && x.Last100Date != todayKey {
		x.TotalXP += milestone100XP + currentStreak*streakBonusXP
		x.Last100Date = todayKey
		changed = true
	}

	if changed {
		x.Level = LevelForXP(x.TotalXP)
	}
	return x
}
