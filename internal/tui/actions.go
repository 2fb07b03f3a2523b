package tui

import (
	"fmt"
	"sync"

	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

// logResult carries everything the UI needs to celebrate after logging.
type logResult struct {
	day        tracker.DayRecord
	crossed100 bool
	leveledUp  bool
	newLevel   int
	tier       tracker.StreakTier
	tierChange bool
	ok         bool
}

// logEntry persists a new entry and runs every engine that reacts to it:
// the meal timer, favorites, entry XP, the streak when the goal is crossed,
// and the milestone XP with the streak bonus.
func logEntry(s *store.Store, clock tracker.Clock, name string, protein int, category tracker.MealCategory, macros *tracker.Macros) logResult {
	now := clock.Now()
	todayKey := tracker.DayKey(now)

	day := s.Day(todayKey)
	progressBefore := day.ProgressPercent()

	entry := tracker.ProteinEntry{
		ID:        tracker.NewEntryID(),
		Name:      name,
		Protein:   protein,
		Category:  category,
		Timestamp: now.UnixMilli(),
	}
	if macros != nil {
		carbs, calories, fiber := macros.Carbs, macros.Calories, macros.Fiber
		entry.Carbs = &carbs
		entry.Calories = &calories
		entry.Fiber = &fiber
	}

	if !day.AddEntry(entry) {
		return logResult{day: day}
	}
	if !s.SaveDay(day) {
		return logResult{day: day}
	}

	s.SetLastMealTime(entry.Timestamp)
	s.UpdateFavorite(name, protein, category, macros)

	xp := s.XP(todayKey)
	levelBefore := xp.Level
	xp = xp.AwardEntryXP(todayKey)

	progress := day.ProgressPercent()
	streak := s.Streak()
	tierBefore := streak.Tier

	if progress >= 100 {
		streak = streak.MarkTodayMet(clock)
		s.SaveStreak(streak)
	}

	// Milestones run after the streak so the 100% bonus sees today's count.
	xp = xp.AwardMilestoneXP(todayKey, progress, streak.CurrentStreak)
	s.SaveXP(xp)

	return logResult{
		day:        day,
		crossed100: progressBefore < 100 && progress >= 100,
		leveledUp:  xp.Level > levelBefore,
		newLevel:   xp.Level,
		tier:       streak.Tier,
		tierChange: streak.Tier != tierBefore,
		ok:         true,
	}
}

// deleteEntry removes an entry from a day and, for today, rewinds the meal
// timer to the newest surviving entry.
func deleteEntry(s *store.Store, clock tracker.Clock, dateKey, entryID string) (tracker.ProteinEntry, bool) {
	day := s.Day(dateKey)
	removed, ok := day.RemoveEntry(entryID)
	if !ok {
		return tracker.ProteinEntry{}, false
	}
	if !s.SaveDay(day) {
		return tracker.ProteinEntry{}, false
	}

	if dateKey == tracker.DayKey(clock.Now()) {
		if last, ok := day.LastMealTimestamp(); ok {
			s.SetLastMealTime(last)
		} else {
			s.ClearLastMealTime()
		}
	}
	return removed, true
}

// shiftEntryTime nudges an entry's timestamp by delta minutes, keeping the
// meal timer consistent when the day is today.
func shiftEntryTime(s *store.Store, clock tracker.Clock, dateKey, entryID string, deltaMinutes int) bool {
	day := s.Day(dateKey)

	var current int64
	found := false
	for _, e := range day.Entries {
		if e.ID == entryID {
			current = e.Timestamp
			found = true
			break
		}
	}
	if !found {
		return false
	}

	if !day.SetEntryTimestamp(entryID, current+int64(deltaMinutes)*60_000) {
		return false
	}
	if !s.SaveDay(day) {
		return false
	}

	if dateKey == tracker.DayKey(clock.Now()) {
		if last, ok := day.LastMealTimestamp(); ok {
			s.SetLastMealTime(last)
		}
	}
	return true
}

// cheatDaysUsedThisWeek counts cheat days in the Monday-start week containing
// now, excluding the given date key so toggling it doesn't count itself.
func cheatDaysUsedThisWeek(s *store.Store, clock tracker.Clock, excludeKey string) int {
	used := 0
	for _, key := range tracker.WeekKeys(clock.Now()) {
		if key == excludeKey {
			continue
		}
		if s.Day(key).IsCheatDay {
			used++
		}
	}
	return used
}

// toggleCheatDay flips a day's cheat flag, enforcing the weekly allowance on
// the way up. When today becomes a cheat day the streak records it as met.
func toggleCheatDay(s *store.Store, clock tracker.Clock, dateKey string) (on bool, err error) {
	day := s.Day(dateKey)
	settings := s.Settings()

	if !day.IsCheatDay {
		used := cheatDaysUsedThisWeek(s, clock, dateKey)
		if used >= settings.CheatDaysPerWeek {
			return false, fmt.Errorf("cheat day limit reached (%d/week)", settings.CheatDaysPerWeek)
		}
	}

	day.IsCheatDay = !day.IsCheatDay
	if !s.SaveDay(day) {
		return false, fmt.Errorf("could not save day")
	}

	if day.IsCheatDay && dateKey == tracker.DayKey(clock.Now()) {
		s.SaveStreak(s.Streak().MarkTodayMet(clock))
	}
	return day.IsCheatDay, nil
}

// addWater bumps today's water count and returns the new total.
func addWater(s *store.Store, clock tracker.Clock, oz int) int {
	day := s.Day(tracker.DayKey(clock.Now()))
	day.WaterOz += oz
	s.SaveDay(day)
	return day.WaterOz
}

// errSink collects storage error callbacks for the status bar. The store may
// fire from whatever goroutine performs the write, so access is locked.
type errSink struct {
	mu   sync.Mutex
	msgs []string
}

func (e *errSink) handle(kind store.ErrorKind, key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case store.ErrQuotaExceeded:
		e.msgs = append(e.msgs, "Storage full! Export your data and free up space.")
	case store.ErrWriteFailed:
		e.msgs = append(e.msgs, fmt.Sprintf("Could not save %s", key))
	case store.ErrReadCorrupted:
		e.msgs = append(e.msgs, fmt.Sprintf("Discarded corrupted record %s", key))
	}
}

// drain returns and clears the queued messages.
func (e *errSink) drain() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := e.msgs
	e.msgs = nil
	return msgs
}
