package store

import (
	"encoding/json"
	"time"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// Record keys. Day records live under dayPrefix + YYYY-MM-DD.
const (
	settingsKey   = "settings"
	dayPrefix     = "day_"
	streakKey     = "streak"
	xpKey         = "xp"
	lastMealKey   = "last_meal_time"
	favoritesKey  = "favorites"
	onboardingKey = "onboarding_complete"
	lastBackupKey = "last_backup"
)

func dayKey(dateKey string) string {
	return dayPrefix + dateKey
}

// Settings returns the persisted settings, or defaults when absent or
// corrupted.
func (s *Store) Settings() tracker.UserSettings {
	raw, ok := s.Get(settingsKey)
	if !ok {
		return tracker.DefaultSettings()
	}
	settings := tracker.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.notify(ErrReadCorrupted, settingsKey)
		return tracker.DefaultSettings()
	}
	return settings
}

// SaveSettings persists the settings.
func (s *Store) SaveSettings(settings tracker.UserSettings) bool {
	return s.setJSON(settingsKey, settings)
}

// Day returns the record for a date key, lazily seeding a fresh one from
// current settings when absent. Corrupted values are discarded and replaced
// with the seeded default; invalid entries inside a valid record are dropped.
// The returned record's entries are sorted ascending by timestamp.
func (s *Store) Day(dateKey string) tracker.DayRecord {
	raw, ok := s.Get(dayKey(dateKey))
	if ok {
		var day tracker.DayRecord
		if err := json.Unmarshal([]byte(raw), &day); err != nil || !tracker.ValidDayRecord(day) {
			s.notify(ErrReadCorrupted, dayKey(dateKey))
		} else {
			kept := day.Entries[:0]
			for _, e := range day.Entries {
				if tracker.ValidEntry(e) {
					kept = append(kept, e)
				}
			}
			day.Entries = kept
			day.SortEntries()
			return day
		}
	}
	return tracker.NewDayRecord(dateKey, s.Settings())
}

// SaveDay persists a day record under its date key.
func (s *Store) SaveDay(day tracker.DayRecord) bool {
	return s.setJSON(dayKey(day.Date), day)
}

// AllDays returns every persisted day record, sorted ascending by date.
// Records that fail validation are skipped.
func (s *Store) AllDays() []tracker.DayRecord {
	var days []tracker.DayRecord
	for _, key := range s.KeysWithPrefix(dayPrefix) {
		raw, ok := s.Get(key)
		if !ok {
			continue
		}
		var day tracker.DayRecord
		if err := json.Unmarshal([]byte(raw), &day); err != nil || !tracker.ValidDayRecord(day) {
			s.notify(ErrReadCorrupted, key)
			continue
		}
		kept := day.Entries[:0]
		for _, e := range day.Entries {
			if tracker.ValidEntry(e) {
				kept = append(kept, e)
			}
		}
		day.Entries = kept
		day.SortEntries()
		days = append(days, day)
	}
	return days
}

// Streak returns the persisted streak, or the zero-value default when absent
// or malformed.
func (s *Store) Streak() tracker.StreakData {
	raw, ok := s.Get(streakKey)
	if !ok {
		return tracker.DefaultStreak()
	}
	var streak tracker.StreakData
	if err := json.Unmarshal([]byte(raw), &streak); err != nil || !tracker.ValidStreak(streak) {
		s.notify(ErrReadCorrupted, streakKey)
		return tracker.DefaultStreak()
	}
	return streak
}

// SaveStreak persists the streak.
func (s *Store) SaveStreak(streak tracker.StreakData) bool {
	return s.setJSON(streakKey, streak)
}

// XP returns the persisted XP state normalized for today (daily counter
// reset, level recomputed), or the default when absent or malformed.
func (s *Store) XP(todayKey string) tracker.XpData {
	raw, ok := s.Get(xpKey)
	if !ok {
		return tracker.DefaultXP()
	}
	var xp tracker.XpData
	if err := json.Unmarshal([]byte(raw), &xp); err != nil || !tracker.ValidXP(xp) {
		s.notify(ErrReadCorrupted, xpKey)
		return tracker.DefaultXP()
	}
	return xp.Normalize(todayKey)
}

// SaveXP persists the XP state.
func (s *Store) SaveXP(xp tracker.XpData) bool {
	return s.setJSON(xpKey, xp)
}

// LastMealTime returns the last logged meal timestamp, only when it falls on
// the same calendar day as now (the timer resets daily).
func (s *Store) LastMealTime(now time.Time) (int64, bool) {
	raw, ok := s.Get(lastMealKey)
	if !ok {
		return 0, false
	}
	var millis int64
	if err := json.Unmarshal([]byte(raw), &millis); err != nil {
		s.notify(ErrReadCorrupted, lastMealKey)
		return 0, false
	}
	if tracker.DayKey(time.UnixMilli(millis).In(now.Location())) != tracker.DayKey(now) {
		return 0, false
	}
	return millis, true
}

// SetLastMealTime records the most recent meal timestamp.
func (s *Store) SetLastMealTime(millis int64) bool {
	return s.setJSON(lastMealKey, millis)
}

// ClearLastMealTime forgets the meal timer, e.g. after the last entry of the
// day is deleted.
func (s *Store) ClearLastMealTime() {
	s.Remove(lastMealKey)
}

// OnboardingComplete reports whether first-run setup finished.
func (s *Store) OnboardingComplete() bool {
	raw, ok := s.Get(onboardingKey)
	return ok && raw == "true"
}

// MarkOnboardingComplete records first-run setup as finished.
func (s *Store) MarkOnboardingComplete() bool {
	return s.Set(onboardingKey, "true")
}

// LastBackup returns the recorded last-export instant.
func (s *Store) LastBackup() (time.Time, bool) {
	raw, ok := s.Get(lastBackupKey)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.notify(ErrReadCorrupted, lastBackupKey)
		return time.Time{}, false
	}
	return t, true
}

// SetLastBackup records an export at the given instant.
func (s *Store) SetLastBackup(now time.Time) bool {
	return s.Set(lastBackupKey, now.UTC().Format(time.RFC3339))
}

// ShouldSuggestBackup reports whether the user should be nudged to export:
// never backed up with a week of records accumulated, or a week since the
// last backup.
func (s *Store) ShouldSuggestBackup(now time.Time) bool {
	last, ok := s.LastBackup()
	if !ok {
		return len(s.KeysWithPrefix(dayPrefix)) >= 7
	}
	return now.Sub(last) >= 7*24*time.Hour
}

func (s *Store) setJSON(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.notify(ErrWriteFailed, key)
		return false
	}
	return s.Set(key, string(data))
}
