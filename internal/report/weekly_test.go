package report

import (
	"testing"
	"time"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// Wednesday, so the week runs Mon 2026-03-09 through Sun 2026-03-15 with
// three days elapsed.
var testNow = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func dayWith(dateKey string, protein int) tracker.DayRecord {
	d := tracker.DayRecord{Date: dateKey, Goal: 160}
	if protein > 0 {
		d.Entries = []tracker.ProteinEntry{
			{ID: "e-" + dateKey, Name: "food", Protein: protein, Timestamp: 1},
		}
	}
	return d
}

func readDayFrom(days map[string]tracker.DayRecord) func(string) tracker.DayRecord {
	return func(dateKey string) tracker.DayRecord {
		if d, ok := days[dateKey]; ok {
			return d
		}
		return tracker.DayRecord{Date: dateKey, Goal: 160}
	}
}

// ============================================================
// Summarize
// ============================================================

func TestSummarizeCounts(t *testing.T) {
	days := map[string]tracker.DayRecord{
		"2026-03-09": dayWith("2026-03-09", 170), // Mon, hit
		"2026-03-10": dayWith("2026-03-10", 80),  // Tue, miss
		"2026-03-11": dayWith("2026-03-11", 100), // Wed (today), miss
	}

	s := Summarize(tracker.DefaultSettings(), readDayFrom(days), testNow)

	if s.TotalDaysElapsed != 3 {
		t.Fatalf("elapsed days = %d", s.TotalDaysElapsed)
	}
	if s.ProteinDaysHit != 1 {
		t.Fatalf("days hit = %d", s.ProteinDaysHit)
	}
	if s.AvgProteinPerDay != 117 { // (170+80+100)/3 rounded
		t.Fatalf("avg = %d", s.AvgProteinPerDay)
	}
	if len(s.Breakdown) != 7 {
		t.Fatalf("breakdown has %d days", len(s.Breakdown))
	}
}

func TestSummarizeBestAndWorst(t *testing.T) {
	days := map[string]tracker.DayRecord{
		"2026-03-09": dayWith("2026-03-09", 170),
		"2026-03-10": dayWith("2026-03-10", 80),
		"2026-03-11": dayWith("2026-03-11", 100),
	}

	s := Summarize(tracker.DefaultSettings(), readDayFrom(days), testNow)

	if s.BestDay == nil || s.BestDay.Label != "Mon" || s.BestDay.Protein != 170 {
		t.Fatalf("best day: %+v", s.BestDay)
	}
	if s.WorstDay == nil || s.WorstDay.Label != "Tue" || s.WorstDay.Protein != 80 {
		t.Fatalf("worst day: %+v", s.WorstDay)
	}
}

func TestSummarizeCheatDay(t *testing.T) {
	cheat := dayWith("2026-03-10", 10)
	cheat.IsCheatDay = true
	days := map[string]tracker.DayRecord{
		"2026-03-09": dayWith("2026-03-09", 170),
		"2026-03-10": cheat,
		"2026-03-11": dayWith("2026-03-11", 100),
	}

	s := Summarize(tracker.DefaultSettings(), readDayFrom(days), testNow)

	if s.ProteinDaysHit != 2 {
		t.Fatalf("cheat day counts as hit: got %d", s.ProteinDaysHit)
	}
	if s.CheatDaysUsed != 1 {
		t.Fatalf("cheat days used = %d", s.CheatDaysUsed)
	}
	// A 10g cheat day must not read as the worst day.
	if s.WorstDay != nil && s.WorstDay.Label == "Tue" {
		t.Fatal("cheat day should be excluded from worst")
	}
}

func TestSummarizeWorkoutDays(t *testing.T) {
	// Default workout days are Mon/Wed/Fri; Mon and Wed have passed.
	days := map[string]tracker.DayRecord{
		"2026-03-09": dayWith("2026-03-09", 170), // Mon, hit
		"2026-03-11": dayWith("2026-03-11", 50),  // Wed, logged but missed
	}

	s := Summarize(tracker.DefaultSettings(), readDayFrom(days), testNow)

	if s.ScheduledWorkoutDays != 2 {
		t.Fatalf("scheduled workout days = %d", s.ScheduledWorkoutDays)
	}
	if s.WorkoutDaysCompleted != 1 {
		t.Fatalf("workout days completed = %d", s.WorkoutDaysCompleted)
	}
	if s.FocusTip != "Prioritize protein on workout days for better recovery." {
		t.Fatalf("missed workout day should drive the tip, got %q", s.FocusTip)
	}
}

func TestSummarizeFutureDaysExcluded(t *testing.T) {
	days := map[string]tracker.DayRecord{
		// Saturday data should not count yet.
		"2026-03-14": dayWith("2026-03-14", 500),
	}

	s := Summarize(tracker.DefaultSettings(), readDayFrom(days), testNow)

	if s.BestDay != nil {
		t.Fatal("future days must not produce a best day")
	}
	for _, d := range s.Breakdown {
		if d.DateKey == "2026-03-14" && !d.IsFuture {
			t.Fatal("saturday should be flagged future")
		}
		if d.DateKey == "2026-03-11" && !d.IsToday {
			t.Fatal("wednesday should be flagged today")
		}
	}
}

func TestSummarizeWeekLabels(t *testing.T) {
	s := Summarize(tracker.DefaultSettings(), readDayFrom(nil), testNow)
	if s.WeekStartLabel != "Mar 9" || s.WeekEndLabel != "Mar 15" {
		t.Fatalf("labels: %q to %q", s.WeekStartLabel, s.WeekEndLabel)
	}
}

// ============================================================
// Focus tip
// ============================================================

func TestFocusTipRules(t *testing.T) {
	tests := []struct {
		name string
		in   tipInput
		want string
	}{
		{
			"nothing logged",
			tipInput{},
			"Start logging your protein to see weekly insights!",
		},
		{
			"strong week",
			tipInput{proteinDaysHit: 5, totalDaysElapsed: 7, avgGoal: 160},
			"Amazing week! Keep this momentum going into next week.",
		},
		{
			"missed workout days",
			tipInput{proteinDaysHit: 1, totalDaysElapsed: 3, workoutDaysMissed: 2, avgProteinPerDay: 150, avgGoal: 160},
			"Prioritize protein on workout days for better recovery.",
		},
		{
			"low average",
			tipInput{proteinDaysHit: 1, totalDaysElapsed: 3, avgProteinPerDay: 100, avgGoal: 160},
			"Focus on hitting your protein target more consistently.",
		},
		{
			"uneven spread",
			tipInput{proteinDaysHit: 1, totalDaysElapsed: 3, avgProteinPerDay: 150, avgGoal: 160, bestProtein: 250, worstProtein: 40},
			"Try to spread protein more evenly across the week.",
		},
		{
			"cheat days spent",
			tipInput{proteinDaysHit: 1, totalDaysElapsed: 3, avgProteinPerDay: 150, avgGoal: 160, bestProtein: 160, worstProtein: 140, cheatDaysUsed: 1, cheatDaysMax: 1},
			"Plan higher-protein meals before your cheat days.",
		},
		{
			"weekend dip",
			tipInput{proteinDaysHit: 1, totalDaysElapsed: 3, avgProteinPerDay: 150, avgGoal: 160, bestProtein: 160, worstProtein: 140, weekendLow: true},
			"Weekends tend to be your weak spot — prep some easy options.",
		},
		{
			"default",
			tipInput{proteinDaysHit: 1, totalDaysElapsed: 3, avgProteinPerDay: 150, avgGoal: 160, bestProtein: 160, worstProtein: 140},
			"Log early in the day to stay on track!",
		},
	}

	for _, tt := range tests {
		if got := focusTip(tt.in); got != tt.want {
			t.Errorf("%s: got %q", tt.name, got)
		}
	}
}
