package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

type settingsModel struct {
	store  *store.Store
	clock  tracker.Clock
	width  int
	height int

	settings   tracker.UserSettings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dailyGoal      *string
	companion      *string
	mealInterval   *string
	windowMode     *string
	windowStart    *string
	windowEnd      *string
	workoutDays    *[]int
	cheatDays      *string
	waterGoal      *string
	showMacros     *bool
	showWater      *bool
	showWeekly     *bool
	suggestionMode *string
	carbGoal       *string
	calorieGoal    *string
	fiberGoal      *string
}

func newSettingsModel(s *store.Store, clock tracker.Clock) settingsModel {
	dg, cp, mi, wm, ws, we := "", "", "", "", "", ""
	cd, wg, sm, cg, kg, fg := "", "", "", "", "", ""
	var wd []int
	macros, water, weekly := false, false, false
	return settingsModel{
		store:          s,
		clock:          clock,
		dailyGoal:      &dg,
		companion:      &cp,
		mealInterval:   &mi,
		windowMode:     &wm,
		windowStart:    &ws,
		windowEnd:      &we,
		workoutDays:    &wd,
		cheatDays:      &cd,
		waterGoal:      &wg,
		showMacros:     &macros,
		showWater:      &water,
		showWeekly:     &weekly,
		suggestionMode: &sm,
		carbGoal:       &cg,
		calorieGoal:    &kg,
		fiberGoal:      &fg,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings tracker.UserSettings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{settings: s.store.Settings()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func positiveInt(low, high int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < low || n > high {
			return fmt.Errorf("enter a number between %d and %d", low, high)
		}
		return nil
	}
}

func validClock(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if _, err := parseClock(v); err != nil {
		return err
	}
	return nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("use HH:MM")
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("use HH:MM")
	}
	return h*60 + m, nil
}

func formatClockMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.settings

	*s.dailyGoal = strconv.Itoa(cur.DailyGoal)
	*s.companion = string(cur.Companion)
	*s.mealInterval = strconv.FormatFloat(cur.MealInterval, 'f', -1, 64)
	*s.windowMode = string(cur.WindowMode)
	*s.windowStart = ""
	*s.windowEnd = ""
	if cur.WindowStart != nil {
		*s.windowStart = formatClockMinutes(*cur.WindowStart)
	}
	if cur.WindowEnd != nil {
		*s.windowEnd = formatClockMinutes(*cur.WindowEnd)
	}
	*s.workoutDays = append([]int(nil), cur.WorkoutDays...)
	*s.cheatDays = strconv.Itoa(cur.CheatDaysPerWeek)
	*s.waterGoal = strconv.Itoa(cur.WaterGoalOz)
	*s.showMacros = cur.ShowMacros
	*s.showWater = cur.ShowWater
	*s.showWeekly = cur.ShowWeekly
	*s.suggestionMode = string(cur.SuggestionMode)
	*s.carbGoal = strconv.Itoa(cur.CarbGoal)
	*s.calorieGoal = strconv.Itoa(cur.CalorieGoal)
	*s.fiberGoal = strconv.Itoa(cur.FiberGoal)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily protein goal (g)").Value(s.dailyGoal).
				Validate(positiveInt(1, 10000)),
			huh.NewSelect[string]().Title("Companion").
				Options(
					huh.NewOption("Sloth", string(tracker.CompanionSloth)),
					huh.NewOption("Panda", string(tracker.CompanionPanda)),
					huh.NewOption("Bunny", string(tracker.CompanionBunny)),
				).Value(s.companion),
			huh.NewInput().Title("Meal interval (hours)").Value(s.mealInterval).
				Validate(func(v string) error {
					f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
					if err != nil || f <= 0 || f > 24 {
						return fmt.Errorf("enter hours between 0 and 24")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Suggestions").
				Options(
					huh.NewOption("Snack ideas", string(tracker.SuggestSnack)),
					huh.NewOption("Meal coach", string(tracker.SuggestCoach)),
					huh.NewOption("Off", string(tracker.SuggestNone)),
				).Value(s.suggestionMode),
		).Title("Goals"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Eating window").
				Options(
					huh.NewOption("From first meal (12h)", string(tracker.WindowAuto)),
					huh.NewOption("Fixed hours", string(tracker.WindowFixed)),
				).Value(s.windowMode),
			huh.NewInput().Title("Window start (HH:MM, fixed mode)").Value(s.windowStart).
				Validate(validClock),
			huh.NewInput().Title("Window end (HH:MM, fixed mode)").Value(s.windowEnd).
				Validate(validClock),
		).Title("Eating Window"),
		huh.NewGroup(
			huh.NewMultiSelect[int]().Title("Workout days").
				Options(
					huh.NewOption("Monday", 1),
					huh.NewOption("Tuesday", 2),
					huh.NewOption("Wednesday", 3),
					huh.NewOption("Thursday", 4),
					huh.NewOption("Friday", 5),
					huh.NewOption("Saturday", 6),
					huh.NewOption("Sunday", 0),
				).Value(s.workoutDays),
			huh.NewInput().Title("Cheat days per week").Value(s.cheatDays).
				Validate(positiveInt(0, 3)),
		).Title("Schedule"),
		huh.NewGroup(
			huh.NewConfirm().Title("Track macros").Value(s.showMacros),
			huh.NewInput().Title("Carb goal (g)").Value(s.carbGoal).Validate(positiveInt(0, 10000)),
			huh.NewInput().Title("Calorie goal").Value(s.calorieGoal).Validate(positiveInt(0, 100000)),
			huh.NewInput().Title("Fiber goal (g)").Value(s.fiberGoal).Validate(positiveInt(0, 1000)),
			huh.NewConfirm().Title("Track water").Value(s.showWater),
			huh.NewInput().Title("Water goal (oz)").Value(s.waterGoal).Validate(positiveInt(1, 1000)),
			huh.NewConfirm().Title("Show weekly summary").Value(s.showWeekly),
		).Title("Tracking"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return settingsSavedMsg{} },
		)
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	next := s.settings

	next.DailyGoal, _ = strconv.Atoi(strings.TrimSpace(*s.dailyGoal))
	next.Companion = tracker.Companion(*s.companion)
	next.MealInterval, _ = strconv.ParseFloat(strings.TrimSpace(*s.mealInterval), 64)
	next.WindowMode = tracker.WindowMode(*s.windowMode)
	next.WorkoutDays = append([]int(nil), *s.workoutDays...)
	next.CheatDaysPerWeek, _ = strconv.Atoi(strings.TrimSpace(*s.cheatDays))
	next.CheatDaysPerWeek = min(next.CheatDaysPerWeek, 3)
	next.WaterGoalOz, _ = strconv.Atoi(strings.TrimSpace(*s.waterGoal))
	next.ShowMacros = *s.showMacros
	next.ShowWater = *s.showWater
	next.ShowWeekly = *s.showWeekly
	next.SuggestionMode = tracker.SuggestionMode(*s.suggestionMode)
	next.CarbGoal, _ = strconv.Atoi(strings.TrimSpace(*s.carbGoal))
	next.CalorieGoal, _ = strconv.Atoi(strings.TrimSpace(*s.calorieGoal))
	next.FiberGoal, _ = strconv.Atoi(strings.TrimSpace(*s.fiberGoal))

	next.WindowStart, next.WindowEnd = nil, nil
	if m, err := parseClock(strings.TrimSpace(*s.windowStart)); err == nil && strings.TrimSpace(*s.windowStart) != "" {
		next.WindowStart = &m
	}
	if m, err := parseClock(strings.TrimSpace(*s.windowEnd)); err == nil && strings.TrimSpace(*s.windowEnd) != "" {
		next.WindowEnd = &m
	}

	s.store.SaveSettings(next)

	// Today's record carries its own goals; keep it in step with the change.
	todayKey := tracker.DayKey(s.clock.Now())
	day := s.store.Day(todayKey)
	day.Goal = next.DailyGoal
	day.MacroGoals = &tracker.Macros{
		Carbs:    next.CarbGoal,
		Calories: next.CalorieGoal,
		Fiber:    next.FiberGoal,
	}
	s.store.SaveDay(day)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.settings
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s",
			lipgloss.NewStyle().Width(24).Render(label),
			highlightStyle.Render(value))
	}

	windowLabel := "from first meal (12h)"
	if cur.WindowMode == tracker.WindowFixed {
		start, end := "?", "?"
		if cur.WindowStart != nil {
			start = formatClockMinutes(*cur.WindowStart)
		}
		if cur.WindowEnd != nil {
			end = formatClockMinutes(*cur.WindowEnd)
		}
		windowLabel = fmt.Sprintf("fixed %s - %s", start, end)
	}

	var dayNames []string
	for _, d := range cur.WorkoutDays {
		if d >= 0 && d < 7 {
			dayNames = append(dayNames, [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}[d])
		}
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		row("Daily protein goal", fmt.Sprintf("%dg", cur.DailyGoal)),
		row("Companion", companionNames[cur.Companion]),
		row("Meal interval", fmt.Sprintf("%.1fh", cur.MealInterval)),
		row("Eating window", windowLabel),
		row("Workout days", strings.Join(dayNames, ", ")),
		row("Cheat days per week", strconv.Itoa(cur.CheatDaysPerWeek)),
		row("Suggestions", string(cur.SuggestionMode)),
		row("Track macros", fmt.Sprintf("%v", cur.ShowMacros)),
		row("Track water", fmt.Sprintf("%v (%d oz goal)", cur.ShowWater, cur.WaterGoalOz)),
		row("Weekly summary", fmt.Sprintf("%v", cur.ShowWeekly)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
