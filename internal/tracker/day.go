package tracker

import (
	"sort"

	"github.com/google/uuid"
)

// MaxEntriesPerDay bounds a single day's log.
const MaxEntriesPerDay = 100

// NewEntryID returns a unique opaque entry identifier.
func NewEntryID() string {
	return uuid.NewString()
}

// NewDayRecord creates an empty record for a date, seeded from settings.
func NewDayRecord(dateKey string, settings UserSettings) DayRecord {
	return DayRecord{
		Date:    dateKey,
		Entries: []ProteinEntry{},
		Goal:    settings.DailyGoal,
		MacroGoals: &Macros{
			Carbs:    settings.CarbGoal,
			Calories: settings.CalorieGoal,
			Fiber:    settings.FiberGoal,
		},
	}
}

// TotalProtein sums the day's logged protein grams.
func (d DayRecord) TotalProtein() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Protein
	}
	return total
}

// TotalMacros sums the day's optional macro fields, treating absent as zero.
func (d DayRecord) TotalMacros() Macros {
	var m Macros
	for _, e := range d.Entries {
		if e.Carbs != nil {
			m.Carbs += *e.Carbs
		}
		if e.Calories != nil {
			m.Calories += *e.Calories
		}
		if e.Fiber != nil {
			m.Fiber += *e.Fiber
		}
	}
	return m
}

// ProgressPercent is the rounded protein progress against the day's goal.
func (d DayRecord) ProgressPercent() int {
	if d.Goal <= 0 {
		return 0
	}
	return int(float64(d.TotalProtein())/float64(d.Goal)*100 + 0.5)
}

// SortEntries restores the ascending-by-timestamp invariant.
func (d *DayRecord) SortEntries() {
	sort.SliceStable(d.Entries, func(i, j int) bool {
		return d.Entries[i].Timestamp < d.Entries[j].Timestamp
	})
}

// AddEntry appends an entry and re-sorts. Returns false when the day is full.
func (d *DayRecord) AddEntry(e ProteinEntry) bool {
	if len(d.Entries) >= MaxEntriesPerDay {
		return false
	}
	d.Entries = append(d.Entries, e)
	d.SortEntries()
	return true
}

// RemoveEntry deletes an entry by id. Returns the removed entry.
func (d *DayRecord) RemoveEntry(id string) (ProteinEntry, bool) {
	for i, e := range d.Entries {
		if e.ID == id {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return e, true
		}
	}
	return ProteinEntry{}, false
}

// SetEntryTimestamp edits an entry's timestamp and re-sorts.
func (d *DayRecord) SetEntryTimestamp(id string, millis int64) bool {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			d.Entries[i].Timestamp = millis
			d.SortEntries()
			return true
		}
	}
	return false
}

// LastMealTimestamp returns the most recent entry timestamp.
func (d DayRecord) LastMealTimestamp() (int64, bool) {
	if len(d.Entries) == 0 {
		return 0, false
	}
	latest := d.Entries[0].Timestamp
	for _, e := range d.Entries[1:] {
		if e.Timestamp > latest {
			latest = e.Timestamp
		}
	}
	return latest, true
}

// IsDaySuccessful reports whether a day counts toward the streak: goal
// reached or cheat day. The streak engine and weekly aggregator both go
// through here.
func IsDaySuccessful(d DayRecord) bool {
	return d.IsCheatDay || d.TotalProtein() >= d.Goal
}
