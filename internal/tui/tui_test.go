package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// Wednesday noon; the Monday-start week runs 2026-03-09 through 2026-03-15.
var testNow = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Logging pipeline
// ============================================================

func TestLogEntryPersistsEverywhere(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}
	todayKey := tracker.DayKey(testNow)

	res := logEntry(s, clock, "Chicken Breast", 90, tracker.MealLunch, nil)
	if !res.ok {
		t.Fatal("log should succeed")
	}
	if res.crossed100 {
		t.Fatal("90g of 160g is not a goal crossing")
	}

	day := s.Day(todayKey)
	if len(day.Entries) != 1 || day.Entries[0].Name != "Chicken Breast" {
		t.Fatalf("day not persisted: %+v", day.Entries)
	}

	// 10 for the entry plus 25 for crossing 50%.
	xp := s.XP(todayKey)
	if xp.TotalXP != 35 {
		t.Fatalf("xp = %d", xp.TotalXP)
	}

	if last, ok := s.LastMealTime(testNow); !ok || last != testNow.UnixMilli() {
		t.Fatalf("meal timer not set: %d, %v", last, ok)
	}

	favs := s.Favorites()
	if len(favs) != 1 || favs[0].Name != "Chicken Breast" {
		t.Fatalf("favorite not recorded: %+v", favs)
	}
}

func TestLogEntryGoalCrossingStartsStreak(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}
	todayKey := tracker.DayKey(testNow)

	res := logEntry(s, clock, "Big Dinner", 160, tracker.MealDinner, nil)
	if !res.crossed100 {
		t.Fatal("160g of 160g should cross the goal")
	}

	streak := s.Streak()
	if streak.CurrentStreak != 1 || streak.LastGoalMetDate != todayKey {
		t.Fatalf("streak not marked: %+v", streak)
	}

	// 10 entry, 25 at 50%, 50 at 100%, plus 5 per streak day.
	if xp := s.XP(todayKey); xp.TotalXP != 90 {
		t.Fatalf("xp = %d", xp.TotalXP)
	}
}

func TestLogEntryMilestonesFireOnce(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}
	todayKey := tracker.DayKey(testNow)

	logEntry(s, clock, "Dinner", 160, tracker.MealDinner, nil)
	logEntry(s, clock, "Snack", 20, tracker.MealSnack, nil)

	// The second entry adds only its 10; both milestones already fired.
	if xp := s.XP(todayKey); xp.TotalXP != 100 {
		t.Fatalf("xp = %d", xp.TotalXP)
	}
	if streak := s.Streak(); streak.CurrentStreak != 1 {
		t.Fatalf("streak should not double-count: %+v", streak)
	}
}

func TestLogEntryLevelUp(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}

	s.SaveXP(tracker.XpData{TotalXP: 95, Level: 1})

	res := logEntry(s, clock, "Yogurt", 10, tracker.MealSnack, nil)
	if !res.leveledUp || res.newLevel != 2 {
		t.Fatalf("expected level up to 2, got %+v", res)
	}
}

func TestLogEntryMacros(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}

	logEntry(s, clock, "Shake", 30, tracker.MealSnack, &tracker.Macros{Carbs: 5, Calories: 180, Fiber: 2})

	day := s.Day(tracker.DayKey(testNow))
	e := day.Entries[0]
	if e.Carbs == nil || *e.Carbs != 5 || e.Calories == nil || *e.Calories != 180 {
		t.Fatalf("macros not persisted: %+v", e)
	}
}

func TestLogEntryFullDayFails(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}
	todayKey := tracker.DayKey(testNow)

	day := s.Day(todayKey)
	for i := 0; i < tracker.MaxEntriesPerDay; i++ {
		day.Entries = append(day.Entries, tracker.ProteinEntry{
			ID:        tracker.NewEntryID(),
			Name:      "filler",
			Protein:   1,
			Timestamp: int64(i + 1),
		})
	}
	s.SaveDay(day)

	if res := logEntry(s, clock, "One Too Many", 10, tracker.MealSnack, nil); res.ok {
		t.Fatal("a full day should refuse more entries")
	}
}

// ============================================================
// Delete and reschedule
// ============================================================

func TestDeleteEntryRewindsMealTimer(t *testing.T) {
	s := newTestStore(t)
	todayKey := tracker.DayKey(testNow)

	logEntry(s, fixedClock{testNow}, "Lunch", 40, tracker.MealLunch, nil)
	later := testNow.Add(2 * time.Hour)
	logEntry(s, fixedClock{later}, "Snack", 20, tracker.MealSnack, nil)

	day := s.Day(todayKey)
	newest := day.Entries[len(day.Entries)-1]

	if _, ok := deleteEntry(s, fixedClock{later}, todayKey, newest.ID); !ok {
		t.Fatal("delete failed")
	}
	if last, ok := s.LastMealTime(later); !ok || last != testNow.UnixMilli() {
		t.Fatalf("timer should rewind to the surviving entry, got %d, %v", last, ok)
	}

	// Deleting the last entry clears the timer entirely.
	day = s.Day(todayKey)
	deleteEntry(s, fixedClock{later}, todayKey, day.Entries[0].ID)
	if _, ok := s.LastMealTime(later); ok {
		t.Fatal("timer should clear with no entries left")
	}
}

func TestDeleteEntryUnknownID(t *testing.T) {
	s := newTestStore(t)
	if _, ok := deleteEntry(s, fixedClock{testNow}, tracker.DayKey(testNow), "nope"); ok {
		t.Fatal("unknown ID should fail")
	}
}

func TestShiftEntryTime(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}
	todayKey := tracker.DayKey(testNow)

	logEntry(s, clock, "Lunch", 40, tracker.MealLunch, nil)
	id := s.Day(todayKey).Entries[0].ID

	if !shiftEntryTime(s, clock, todayKey, id, -15) {
		t.Fatal("shift failed")
	}
	got := s.Day(todayKey).Entries[0].Timestamp
	want := testNow.UnixMilli() - 15*60_000
	if got != want {
		t.Fatalf("timestamp = %d, want %d", got, want)
	}

	// The meal timer follows the newest entry.
	if last, _ := s.LastMealTime(testNow); last != want {
		t.Fatalf("timer = %d, want %d", last, want)
	}

	if shiftEntryTime(s, clock, todayKey, "nope", 15) {
		t.Fatal("unknown ID should fail")
	}
}

// ============================================================
// Cheat days and water
// ============================================================

func TestToggleCheatDayEnforcesWeeklyLimit(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}
	todayKey := tracker.DayKey(testNow)

	on, err := toggleCheatDay(s, clock, todayKey)
	if err != nil || !on {
		t.Fatalf("first toggle: %v, %v", on, err)
	}
	if !s.Day(todayKey).IsCheatDay {
		t.Fatal("flag not persisted")
	}

	// Today is a cheat day, so the streak counts it as met.
	if streak := s.Streak(); streak.LastGoalMetDate != todayKey {
		t.Fatalf("cheat day should mark the streak: %+v", streak)
	}

	// Default allowance is one per week.
	if _, err := toggleCheatDay(s, clock, "2026-03-10"); err == nil {
		t.Fatal("second cheat day in the week should be refused")
	}

	// Toggling off frees the slot.
	if on, err := toggleCheatDay(s, clock, todayKey); err != nil || on {
		t.Fatalf("toggle off: %v, %v", on, err)
	}
	if _, err := toggleCheatDay(s, clock, "2026-03-10"); err != nil {
		t.Fatalf("slot should be free again: %v", err)
	}
}

func TestCheatDaysUsedThisWeekExcludes(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}

	day := s.Day("2026-03-09")
	day.IsCheatDay = true
	s.SaveDay(day)

	if got := cheatDaysUsedThisWeek(s, clock, ""); got != 1 {
		t.Fatalf("used = %d", got)
	}
	if got := cheatDaysUsedThisWeek(s, clock, "2026-03-09"); got != 0 {
		t.Fatalf("excluded key should not count, got %d", got)
	}
}

func TestAddWaterAccumulates(t *testing.T) {
	s := newTestStore(t)
	clock := fixedClock{testNow}

	if got := addWater(s, clock, 8); got != 8 {
		t.Fatalf("got %d", got)
	}
	if got := addWater(s, clock, 8); got != 16 {
		t.Fatalf("got %d", got)
	}
	if s.Day(tracker.DayKey(testNow)).WaterOz != 16 {
		t.Fatal("water not persisted")
	}
}

// ============================================================
// Error sink
// ============================================================

func TestErrSinkCollectsAndDrains(t *testing.T) {
	sink := &errSink{}
	sink.handle(store.ErrQuotaExceeded, "day_2026-03-11")
	sink.handle(store.ErrWriteFailed, "settings")
	sink.handle(store.ErrReadCorrupted, "streak")

	msgs := sink.drain()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if !strings.Contains(msgs[0], "Storage full") {
		t.Fatalf("quota message: %q", msgs[0])
	}
	if msgs[1] != "Could not save settings" {
		t.Fatalf("write message: %q", msgs[1])
	}
	if !strings.Contains(msgs[2], "corrupted record streak") {
		t.Fatalf("read message: %q", msgs[2])
	}

	if got := sink.drain(); len(got) != 0 {
		t.Fatal("drain should clear the queue")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestProgressBar(t *testing.T) {
	bar := progressBar(10, 50)
	if got := strings.Count(bar, "█"); got != 5 {
		t.Fatalf("filled = %d", got)
	}
	if got := strings.Count(bar, "░"); got != 5 {
		t.Fatalf("empty = %d", got)
	}

	// Overshoot clamps at a full bar.
	if got := strings.Count(progressBar(10, 140), "█"); got != 10 {
		t.Fatalf("clamped filled = %d", got)
	}
	if got := strings.Count(progressBar(10, -5), "█"); got != 0 {
		t.Fatalf("negative filled = %d", got)
	}
}

func TestFormatHoursShort(t *testing.T) {
	if got := formatHoursShort(1.5); got != "1.5h" {
		t.Fatalf("got %q", got)
	}
	if got := formatHoursShort(0); got != "0.0h" {
		t.Fatalf("got %q", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:30", 570, false},
		{"9:30", 570, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClock(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClockMinutes(t *testing.T) {
	if got := formatClockMinutes(570); got != "09:30" {
		t.Fatalf("got %q", got)
	}
	if got := formatClockMinutes(0); got != "00:00" {
		t.Fatalf("got %q", got)
	}
}

func TestValidators(t *testing.T) {
	v := positiveInt(1, 10)
	if v("5") != nil {
		t.Error("5 should pass")
	}
	if v("0") == nil || v("11") == nil || v("abc") == nil {
		t.Error("out-of-range values should fail")
	}

	if validClock("") != nil || validClock("10:00") != nil {
		t.Error("empty and valid clocks should pass")
	}
	if validClock("banana") == nil {
		t.Error("garbage clock should fail")
	}

	if optionalInt("") != nil || optionalInt("42") != nil {
		t.Error("empty and numeric should pass")
	}
	if optionalInt("x") == nil || optionalInt("-1") == nil {
		t.Error("garbage and negative should fail")
	}

	if got := parseOptional("42"); got != 42 {
		t.Errorf("parseOptional(42) = %d", got)
	}
	if got := parseOptional(""); got != 0 {
		t.Errorf("parseOptional(empty) = %d", got)
	}
	if got := parseOptional("-5"); got != 0 {
		t.Errorf("parseOptional(-5) = %d", got)
	}
}

// ============================================================
// Avatar
// ============================================================

func TestAvatarCoversAllCompanionsAndMoods(t *testing.T) {
	companions := []tracker.Companion{tracker.CompanionSloth, tracker.CompanionPanda, tracker.CompanionBunny}
	moods := []tracker.Mood{
		tracker.MoodTired, tracker.MoodHungry, tracker.MoodDisappointed,
		tracker.MoodMotivated, tracker.MoodHappy, tracker.MoodFlexing, tracker.MoodFull,
	}

	for _, c := range companions {
		if _, ok := companionEars[c]; !ok {
			t.Errorf("no ears for %s", c)
		}
		if _, ok := companionNames[c]; !ok {
			t.Errorf("no name for %s", c)
		}
	}
	for _, m := range moods {
		if _, ok := moodFaces[m]; !ok {
			t.Errorf("no face for %s", m)
		}
		if moodMessage(m) == "" {
			t.Errorf("no message for %s", m)
		}
	}

	// Unknown companions fall back instead of rendering nothing.
	if renderAvatar(tracker.Companion("axolotl"), tracker.MoodHappy) == "" {
		t.Fatal("unknown companion should still render")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSaveSettingsClampsCheatDays(t *testing.T) {
	s := newTestStore(t)

	m := newSettingsModel(s, fixedClock{testNow})
	m.settings = tracker.DefaultSettings()
	m, _ = m.showForm()

	*m.cheatDays = "5"
	m.saveSettings()

	if got := s.Settings().CheatDaysPerWeek; got != 3 {
		t.Fatalf("cheat days should clamp to 3, got %d", got)
	}
}

// ============================================================
// Weekly view
// ============================================================

func TestWeeklyPastWeekFullyElapsed(t *testing.T) {
	s := newTestStore(t)

	// The whole week before testNow, Monday 2026-03-02 through Sunday
	// 2026-03-08, with the goal met every day.
	for i := 0; i < 7; i++ {
		date := testNow.AddDate(0, 0, -9+i)
		day := s.Day(tracker.DayKey(date))
		day.AddEntry(tracker.ProteinEntry{
			ID:        tracker.NewEntryID(),
			Name:      "Meal Prep",
			Protein:   200,
			Timestamp: date.UnixMilli(),
		})
		s.SaveDay(day)
	}

	m := newWeeklyModel(s, fixedClock{testNow})
	m.offset = 1

	msg, ok := m.refresh()().(weeklyDataMsg)
	if !ok {
		t.Fatal("refresh should produce weekly data")
	}
	sum := msg.summary

	if sum.WeekStartLabel != "Mar 2" || sum.WeekEndLabel != "Mar 8" {
		t.Fatalf("wrong week: %s - %s", sum.WeekStartLabel, sum.WeekEndLabel)
	}
	if sum.TotalDaysElapsed != 7 {
		t.Fatalf("a finished week has 7 elapsed days, got %d", sum.TotalDaysElapsed)
	}
	if sum.ProteinDaysHit != 7 {
		t.Fatalf("hit = %d", sum.ProteinDaysHit)
	}
	for _, d := range sum.Breakdown {
		if d.IsFuture || d.IsToday {
			t.Fatalf("%s should be an ordinary past day: %+v", d.DateKey, d)
		}
	}
}

func TestWeeklyCurrentWeekKeepsTodayAnchor(t *testing.T) {
	s := newTestStore(t)
	m := newWeeklyModel(s, fixedClock{testNow})

	msg := m.refresh()().(weeklyDataMsg)
	// testNow is a Wednesday, so only Mon-Wed have elapsed.
	if msg.summary.TotalDaysElapsed != 3 {
		t.Fatalf("elapsed = %d", msg.summary.TotalDaysElapsed)
	}
}

// ============================================================
// Root model
// ============================================================

func TestNewAppStartsOnboarding(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, fixedClock{testNow})

	if !a.onboarding || a.activeView != viewSettings {
		t.Fatalf("fresh store should onboard on settings: %+v", a.activeView)
	}
	if !strings.Contains(a.status, "Welcome") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestNewAppAfterOnboarding(t *testing.T) {
	s := newTestStore(t)
	s.MarkOnboardingComplete()
	a := NewApp(s, fixedClock{testNow})

	if a.onboarding || a.activeView != viewDashboard {
		t.Fatal("returning user should land on the dashboard")
	}
}

func TestNewAppSuggestsBackup(t *testing.T) {
	s := newTestStore(t)
	s.MarkOnboardingComplete()
	for i := 0; i < 7; i++ {
		key := tracker.DayKey(testNow.AddDate(0, 0, -i))
		s.SaveDay(tracker.DayRecord{Date: key, Goal: 160})
	}

	a := NewApp(s, fixedClock{testNow})
	if !strings.Contains(a.status, "export") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestSettingsSavedFinishesOnboarding(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, fixedClock{testNow})

	model, _ := a.Update(settingsSavedMsg{})
	a = model.(App)

	if a.onboarding || a.activeView != viewDashboard {
		t.Fatal("saving settings should finish onboarding")
	}
	if !s.OnboardingComplete() {
		t.Fatal("onboarding flag not persisted")
	}
}

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	s.MarkOnboardingComplete()
	a := NewApp(s, fixedClock{testNow})

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	a = model.(App)
	if a.activeView != viewLog {
		t.Fatalf("view = %v", a.activeView)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.activeView != viewCoach {
		t.Fatalf("tab should advance, got %v", a.activeView)
	}
}

func TestAppViewSmoke(t *testing.T) {
	s := newTestStore(t)
	s.MarkOnboardingComplete()
	a := NewApp(s, fixedClock{testNow})

	if got := a.View(); got != "Loading..." {
		t.Fatalf("unsized view = %q", got)
	}

	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a = model.(App)

	for view := viewDashboard; view <= viewSettings; view++ {
		a.activeView = view
		out := a.View()
		if out == "" {
			t.Fatalf("empty view for %s", viewNames[view])
		}
		if !strings.Contains(out, "proteinpal") {
			t.Fatalf("header missing for %s", viewNames[view])
		}
	}
}

func TestCelebrationMessages(t *testing.T) {
	var a App

	got := a.celebration(entryLoggedMsg{name: "Eggs", protein: 18})
	if got != "Logged Eggs (+18g)" {
		t.Fatalf("got %q", got)
	}

	got = a.celebration(entryLoggedMsg{
		name: "Dinner", protein: 60,
		crossed100: true,
		leveledUp:  true, newLevel: 3,
		tierChange: true, tier: tracker.TierBronze,
	})
	for _, want := range []string{"Goal crushed", "Level 3", "bronze"} {
		if !strings.Contains(got, want) {
			t.Fatalf("celebration %q missing %q", got, want)
		}
	}
}

func TestViewNamesMatchStates(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("got %d view names", len(viewNames))
	}
	if viewNames[viewDashboard] != "Dashboard" || viewNames[viewSettings] != "Settings" {
		t.Fatalf("names out of order: %v", viewNames)
	}
}

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help empty")
	}
	full := keys.FullHelp()
	if len(full) == 0 {
		t.Fatal("full help empty")
	}
	for _, col := range full {
		if len(col) == 0 {
			t.Fatal("empty help column")
		}
	}
}
