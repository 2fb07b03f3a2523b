// Package report rolls persisted day records up into weekly statistics.
package report

import (
	"math"
	"time"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// DayBreakdown is one day of the week for chart rendering. Future days are
// included here but excluded from the accumulated stats.
type DayBreakdown struct {
	DateKey      string
	DayLabel     string // Mon..Sun
	Protein      int
	Goal         int
	IsWorkoutDay bool
	IsCheatDay   bool
	IsToday      bool
	IsFuture     bool
	HitGoal      bool
	HasEntries   bool
}

// DayStat is a best/worst day reference.
type DayStat struct {
	Label   string
	Protein int
}

// Summary is the weekly rollup the UI consumes.
type Summary struct {
	WeekStartLabel       string
	WeekEndLabel         string
	ProteinDaysHit       int
	TotalDaysElapsed     int
	WorkoutDaysCompleted int
	ScheduledWorkoutDays int // workout days at or before today
	AvgProteinPerDay     int // across days with entries
	BestDay              *DayStat
	WorstDay             *DayStat
	CheatDaysUsed        int
	Breakdown            []DayBreakdown
	FocusTip             string
}

var shortDayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func dateLabel(key string) string {
	t, ok := tracker.ParseDayKey(key)
	if !ok {
		return key
	}
	return t.Format("Jan 2")
}

func weekdayOf(key string) int {
	t, ok := tracker.ParseDayKey(key)
	if !ok {
		return 0
	}
	return int(t.Weekday())
}

// Summarize computes the Monday-start week containing now. readDay returns
// the persisted record for a day key (lazily seeded for missing days).
func Summarize(settings tracker.UserSettings, readDay func(dateKey string) tracker.DayRecord, now time.Time) Summary {
	todayKey := tracker.DayKey(now)
	weekKeys := tracker.WeekKeys(now)

	s := Summary{
		WeekStartLabel: dateLabel(weekKeys[0]),
		WeekEndLabel:   dateLabel(weekKeys[6]),
	}

	var (
		totalProtein           int
		daysWithEntries        int
		workoutDaysMissed      int
		weekendProtein         int
		weekendDaysWithEntries int
		totalGoal              int
	)

	for _, dateKey := range weekKeys {
		dow := weekdayOf(dateKey)
		isFuture := dateKey > todayKey
		isToday := dateKey == todayKey
		isWorkoutDay := settings.IsWorkoutDay(dow)

		day := readDay(dateKey)
		dayProtein := day.TotalProtein()
		hasEntries := len(day.Entries) > 0
		hitGoal := tracker.IsDaySuccessful(day)

		if !isFuture {
			s.TotalDaysElapsed++
			totalGoal += day.Goal

			if hasEntries {
				daysWithEntries++
				totalProtein += dayProtein

				if dow == 0 || dow == 6 {
					weekendProtein += dayProtein
					weekendDaysWithEntries++
				}

				if s.BestDay == nil || dayProtein > s.BestDay.Protein {
					s.BestDay = &DayStat{Label: shortDayNames[dow], Protein: dayProtein}
				}
				// Cheat days don't count as a worst day.
				if !day.IsCheatDay && (s.WorstDay == nil || dayProtein < s.WorstDay.Protein) {
					s.WorstDay = &DayStat{Label: shortDayNames[dow], Protein: dayProtein}
				}
			}

			if hitGoal {
				s.ProteinDaysHit++
			}
			if day.IsCheatDay {
				s.CheatDaysUsed++
			}
			if isWorkoutDay {
				if hitGoal {
					s.WorkoutDaysCompleted++
				} else if hasEntries {
					workoutDaysMissed++
				}
			}
		}

		if isWorkoutDay && dateKey <= todayKey {
			s.ScheduledWorkoutDays++
		}

		s.Breakdown = append(s.Breakdown, DayBreakdown{
			DateKey:      dateKey,
			DayLabel:     shortDayNames[dow],
			Protein:      dayProtein,
			Goal:         day.Goal,
			IsWorkoutDay: isWorkoutDay,
			IsCheatDay:   day.IsCheatDay,
			IsToday:      isToday,
			IsFuture:     isFuture,
			HitGoal:      hitGoal,
			HasEntries:   hasEntries,
		})
	}

	if daysWithEntries > 0 {
		s.AvgProteinPerDay = int(math.Round(float64(totalProtein) / float64(daysWithEntries)))
	}

	avgGoal := float64(settings.DailyGoal)
	if s.TotalDaysElapsed > 0 {
		avgGoal = float64(totalGoal) / float64(s.TotalDaysElapsed)
	}

	weekendAvg := avgGoal
	if weekendDaysWithEntries > 0 {
		weekendAvg = float64(weekendProtein) / float64(weekendDaysWithEntries)
	}
	weekendLow := weekendDaysWithEntries > 0 && weekendAvg < avgGoal*0.6

	bestProtein := 0
	if s.BestDay != nil {
		bestProtein = s.BestDay.Protein
	}
	worstProtein := avgGoal
	if s.WorstDay != nil {
		worstProtein = float64(s.WorstDay.Protein)
	}

	s.FocusTip = focusTip(tipInput{
		proteinDaysHit:    s.ProteinDaysHit,
		totalDaysElapsed:  s.TotalDaysElapsed,
		avgProteinPerDay:  float64(s.AvgProteinPerDay),
		avgGoal:           avgGoal,
		workoutDaysMissed: workoutDaysMissed,
		bestProtein:       float64(bestProtein),
		worstProtein:      worstProtein,
		cheatDaysUsed:     s.CheatDaysUsed,
		cheatDaysMax:      settings.CheatDaysPerWeek,
		weekendLow:        weekendLow,
	})

	return s
}

type tipInput struct {
	proteinDaysHit    int
	totalDaysElapsed  int
	avgProteinPerDay  float64
	avgGoal           float64
	workoutDaysMissed int
	bestProtein       float64
	worstProtein      float64
	cheatDaysUsed     int
	cheatDaysMax      int
	weekendLow        bool
}

// focusTip picks the week's coaching message; first matching rule wins.
func focusTip(in tipInput) string {
	if in.totalDaysElapsed == 0 {
		return "Start logging your protein to see weekly insights!"
	}

	hitRate := float64(in.proteinDaysHit) / float64(in.totalDaysElapsed)

	switch {
	case hitRate >= 0.7:
		return "Amazing week! Keep this momentum going into next week."
	case in.workoutDaysMissed > 0:
		return "Prioritize protein on workout days for better recovery."
	case in.avgProteinPerDay < in.avgGoal*0.8:
		return "Focus on hitting your protein target more consistently."
	case in.bestProtein > in.avgGoal*1.2 && in.worstProtein < in.avgGoal*0.5:
		return "Try to spread protein more evenly across the week."
	case in.cheatDaysUsed >= in.cheatDaysMax && in.cheatDaysMax > 0:
		return "Plan higher-protein meals before your cheat days."
	case in.weekendLow:
		return "Weekends tend to be your weak spot — prep some easy options."
	default:
		return "Log early in the day to stay on track!"
	}
}
