package tracker

import "regexp"

// MealCategory is the meal slot an entry belongs to.
type MealCategory string

const (
	MealBreakfast MealCategory = "breakfast"
	MealLunch     MealCategory = "lunch"
	MealDinner    MealCategory = "dinner"
	MealSnack     MealCategory = "snack"
)

func (c MealCategory) Valid() bool {
	switch c {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Label returns the display name for the category.
func (c MealCategory) Label() string {
	switch c {
	case MealBreakfast:
		return "Breakfast"
	case MealLunch:
		return "Lunch"
	case MealDinner:
		return "Dinner"
	case MealSnack:
		return "Snack"
	}
	return string(c)
}

// Companion is the virtual animal the user picked.
type Companion string

const (
	CompanionSloth Companion = "sloth"
	CompanionPanda Companion = "panda"
	CompanionBunny Companion = "bunny"
)

// SuggestionMode selects what the coach view shows.
type SuggestionMode string

const (
	SuggestSnack SuggestionMode = "snack"
	SuggestCoach SuggestionMode = "coach"
	SuggestNone  SuggestionMode = "none"
)

// WindowMode selects how the eating window is derived.
type WindowMode string

const (
	WindowAuto  WindowMode = "auto"
	WindowFixed WindowMode = "fixed"
)

// Macros is a carb/calorie/fiber bundle.
type Macros struct {
	Carbs    int `json:"carbs"`
	Calories int `json:"calories"`
	Fiber    int `json:"fiber"`
}

// ProteinEntry is one logged food event. Immutable once created except for
// timestamp edits and deletion.
type ProteinEntry struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Protein   int          `json:"protein"`
	Category  MealCategory `json:"category"`
	Timestamp int64        `json:"timestamp"` // epoch millis
	Carbs     *int         `json:"carbs,omitempty"`
	Calories  *int         `json:"calories,omitempty"`
	Fiber     *int         `json:"fiber,omitempty"`
}

// DayRecord is one calendar day's state. Entries stay sorted ascending by
// timestamp after any mutation.
type DayRecord struct {
	Date       string         `json:"date"` // YYYY-MM-DD
	Entries    []ProteinEntry `json:"entries"`
	Goal       int            `json:"goal"`
	MacroGoals *Macros        `json:"macroGoals,omitempty"`
	IsCheatDay bool           `json:"isCheatDay,omitempty"`
	WaterOz    int            `json:"waterOz,omitempty"`
}

// UserSettings is the shared, read-mostly configuration.
type UserSettings struct {
	DailyGoal        int            `json:"dailyGoal"`
	Companion        Companion      `json:"companion"`
	DarkMode         bool           `json:"darkMode"`
	MealInterval     float64        `json:"mealInterval"` // hours
	CarbGoal         int            `json:"carbGoal"`
	CalorieGoal      int            `json:"calorieGoal"`
	FiberGoal        int            `json:"fiberGoal"`
	WindowMode       WindowMode     `json:"eatingWindowMode"`
	WindowStart      *int           `json:"eatingWindowStart,omitempty"` // minutes since midnight
	WindowEnd        *int           `json:"eatingWindowEnd,omitempty"`
	WorkoutDays      []int          `json:"workoutDays"` // 0=Sun..6=Sat
	CheatDaysPerWeek int            `json:"cheatDaysPerWeek"`
	ShowMacros       bool           `json:"showMacros"`
	ShowWater        bool           `json:"showWater"`
	WaterGoalOz      int            `json:"waterGoalOz"`
	ShowWeekly       bool           `json:"showWeeklySummary"`
	SuggestionMode   SuggestionMode `json:"suggestionMode"`
}

// IsWorkoutDay reports whether the given weekday (0=Sun..6=Sat) is flagged.
func (s UserSettings) IsWorkoutDay(weekday int) bool {
	for _, d := range s.WorkoutDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// DefaultSettings returns the out-of-box configuration.
func DefaultSettings() UserSettings {
	return UserSettings{
		DailyGoal:        160,
		Companion:        CompanionSloth,
		MealInterval:     3,
		CarbGoal:         250,
		CalorieGoal:      2000,
		FiberGoal:        25,
		WindowMode:       WindowAuto,
		WorkoutDays:      []int{1, 3, 5}, // Mon, Wed, Fri
		CheatDaysPerWeek: 1,
		ShowMacros:       true,
		ShowWater:        true,
		WaterGoalOz:      64,
		ShowWeekly:       true,
		SuggestionMode:   SuggestSnack,
	}
}

var dateKeyRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidEntry reports whether a decoded entry satisfies the data-model bounds.
// Entries falling outside are dropped on read rather than surfaced as errors.
func ValidEntry(e ProteinEntry) bool {
	return e.ID != "" &&
		len(e.Name) > 0 && len(e.Name) <= 200 &&
		e.Protein >= 0 && e.Protein <= 10000 &&
		e.Timestamp > 0 &&
		(e.Category == "" || e.Category.Valid())
}

// ValidDayRecord reports whether a decoded record has a usable shape. Its
// entries still need per-entry filtering via ValidEntry.
func ValidDayRecord(d DayRecord) bool {
	return dateKeyRE.MatchString(d.Date) &&
		len(d.Entries) <= 100 &&
		d.Goal > 0 && d.Goal <= 10000
}
