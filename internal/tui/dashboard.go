package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/proteinpal/internal/coach"
	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

type dashboardModel struct {
	store  *store.Store
	clock  tracker.Clock
	width  int
	height int

	settings  tracker.UserSettings
	day       tracker.DayRecord
	streak    tracker.StreakData
	xp        tracker.XpData
	lastMeal  int64
	hasMeal   bool
	favorites []store.Favorite

	// Favorites quick-add cursor, -1 when nothing selected
	favCursor int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	entryName     *string
	entryProtein  *string
	entryCategory *string
	entryCarbs    *string
	entryCalories *string
	entryFiber    *string
}

func newDashboardModel(s *store.Store, clock tracker.Clock) dashboardModel {
	name, protein, category := "", "", ""
	carbs, calories, fiber := "", "", ""
	return dashboardModel{
		store:         s,
		clock:         clock,
		favCursor:     -1,
		entryName:     &name,
		entryProtein:  &protein,
		entryCategory: &category,
		entryCarbs:    &carbs,
		entryCalories: &calories,
		entryFiber:    &fiber,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	settings  tracker.UserSettings
	day       tracker.DayRecord
	streak    tracker.StreakData
	xp        tracker.XpData
	lastMeal  int64
	hasMeal   bool
	favorites []store.Favorite
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		now := d.clock.Now()
		todayKey := tracker.DayKey(now)
		lastMeal, hasMeal := d.store.LastMealTime(now)
		return dashboardDataMsg{
			settings:  d.store.Settings(),
			day:       d.store.Day(todayKey),
			streak:    d.store.Streak(),
			xp:        d.store.XP(todayKey),
			lastMeal:  lastMeal,
			hasMeal:   hasMeal,
			favorites: d.store.TopFavorites(5),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.settings = msg.settings
		d.day = msg.day
		d.streak = msg.streak
		d.xp = msg.xp
		d.lastMeal = msg.lastMeal
		d.hasMeal = msg.hasMeal
		d.favorites = msg.favorites
		if d.favCursor >= len(d.favorites) {
			d.favCursor = len(d.favorites) - 1
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Add):
			return d.showForm()

		case key.Matches(msg, keys.Water):
			if !d.settings.ShowWater {
				return d, nil
			}
			total := addWater(d.store, d.clock, 8)
			return d, tea.Batch(
				d.refresh(),
				statusCmd(fmt.Sprintf("Water: %d oz", total), false),
			)

		case key.Matches(msg, keys.Cheat):
			return d.toggleCheat()

		case key.Matches(msg, keys.Up):
			if len(d.favorites) > 0 && d.favCursor > 0 {
				d.favCursor--
			} else if d.favCursor < 0 && len(d.favorites) > 0 {
				d.favCursor = 0
			}
			return d, nil

		case key.Matches(msg, keys.Down):
			if d.favCursor < len(d.favorites)-1 {
				d.favCursor++
			}
			return d, nil

		case key.Matches(msg, keys.Enter):
			if d.favCursor >= 0 && d.favCursor < len(d.favorites) {
				return d, d.logFavorite(d.favorites[d.favCursor])
			}
			return d, nil

		case key.Matches(msg, keys.Back):
			d.favCursor = -1
			return d, nil
		}
	}
	return d, nil
}

func (d dashboardModel) toggleCheat() (dashboardModel, tea.Cmd) {
	todayKey := tracker.DayKey(d.clock.Now())
	on, err := toggleCheatDay(d.store, d.clock, todayKey)
	if err != nil {
		return d, statusCmd(err.Error(), true)
	}
	return d, tea.Batch(
		d.refresh(),
		func() tea.Msg { return cheatToggledMsg{dateKey: todayKey, on: on} },
	)
}

func (d dashboardModel) logFavorite(f store.Favorite) tea.Cmd {
	return func() tea.Msg {
		var macros *tracker.Macros
		if f.Carbs > 0 || f.Calories > 0 || f.Fiber > 0 {
			macros = &tracker.Macros{Carbs: f.Carbs, Calories: f.Calories, Fiber: f.Fiber}
		}
		res := logEntry(d.store, d.clock, f.Name, f.Protein, f.Category, macros)
		if !res.ok {
			return statusMsg{text: "Could not log entry", isError: true}
		}
		return entryLoggedMsg{
			name:       f.Name,
			protein:    f.Protein,
			crossed100: res.crossed100,
			leveledUp:  res.leveledUp,
			newLevel:   res.newLevel,
			tier:       res.tier,
			tierChange: res.tierChange,
		}
	}
}

func (d dashboardModel) showForm() (dashboardModel, tea.Cmd) {
	*d.entryName = ""
	*d.entryProtein = ""
	*d.entryCategory = string(coach.CategoryForHour(float64(d.clock.Now().Hour())))
	*d.entryCarbs = ""
	*d.entryCalories = ""
	*d.entryFiber = ""

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Food").Value(d.entryName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name required")
					}
					if len(s) > 200 {
						return fmt.Errorf("name too long")
					}
					return nil
				}),
			huh.NewInput().Title("Protein (g)").Value(d.entryProtein).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 || n > 10000 {
						return fmt.Errorf("enter grams, 0-10000")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Meal").
				Options(
					huh.NewOption("Breakfast", string(tracker.MealBreakfast)),
					huh.NewOption("Lunch", string(tracker.MealLunch)),
					huh.NewOption("Dinner", string(tracker.MealDinner)),
					huh.NewOption("Snack", string(tracker.MealSnack)),
				).Value(d.entryCategory),
		).Title("Log Protein"),
	}

	if d.settings.ShowMacros {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Carbs (g, optional)").Value(d.entryCarbs).Validate(optionalInt),
			huh.NewInput().Title("Calories (optional)").Value(d.entryCalories).Validate(optionalInt),
			huh.NewInput().Title("Fiber (g, optional)").Value(d.entryFiber).Validate(optionalInt),
		).Title("Macros"))
	}

	d.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func optionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		return d, d.submitEntry()
	}

	return d, cmd
}

func (d dashboardModel) submitEntry() tea.Cmd {
	name := strings.TrimSpace(*d.entryName)
	protein, _ := strconv.Atoi(strings.TrimSpace(*d.entryProtein))
	category := tracker.MealCategory(*d.entryCategory)

	var macros *tracker.Macros
	carbs := parseOptional(*d.entryCarbs)
	calories := parseOptional(*d.entryCalories)
	fiber := parseOptional(*d.entryFiber)
	if carbs > 0 || calories > 0 || fiber > 0 {
		macros = &tracker.Macros{Carbs: carbs, Calories: calories, Fiber: fiber}
	}

	return func() tea.Msg {
		res := logEntry(d.store, d.clock, name, protein, category, macros)
		if !res.ok {
			return statusMsg{text: "Could not log entry (day full?)", isError: true}
		}
		return entryLoggedMsg{
			name:       name,
			protein:    protein,
			crossed100: res.crossed100,
			leveledUp:  res.leveledUp,
			newLevel:   res.newLevel,
			tier:       res.tier,
			tierChange: res.tierChange,
		}
	}
}

func parseOptional(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// --- Rendering ---

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.width - 4

	if d.formActive && d.form != nil {
		return panelStyle.Width(w).Render(d.form.View())
	}

	companion := d.renderCompanionPanel(w)
	progress := d.renderProgressPanel(w)
	timers := d.renderTimersPanel(w)

	sections := []string{companion, progress, timers}
	if len(d.favorites) > 0 {
		sections = append(sections, d.renderFavoritesPanel(w))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d dashboardModel) currentMood() tracker.Mood {
	now := d.clock.Now()
	var hoursSince *float64
	if d.hasMeal {
		h := tracker.HoursSince(now, d.lastMeal)
		hoursSince = &h
	}
	return tracker.ComputeMood(
		d.day.ProgressPercent(),
		hoursSince,
		d.settings.MealInterval,
		d.day.IsCheatDay,
		now.Hour(),
	)
}

func (d dashboardModel) renderCompanionPanel(w int) string {
	mood := d.currentMood()
	avatar := renderAvatar(d.settings.Companion, mood)

	name := companionNames[d.settings.Companion]
	label := moodLabelStyle.Render(fmt.Sprintf("%s is %s", name, string(mood)))
	message := mutedStyle.Render(moodMessage(mood))

	badges := d.renderBadges()

	content := lipgloss.JoinVertical(lipgloss.Center, avatar, label, message, "", badges)
	if d.day.IsCheatDay {
		banner := warningStyle.Render("🍕 CHEAT DAY — enjoy it!")
		content = lipgloss.JoinVertical(lipgloss.Center, banner, content)
	}
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderBadges() string {
	var parts []string

	if d.streak.CurrentStreak > 0 {
		flame := tierStyle(d.streak.Tier).Render(
			fmt.Sprintf("🔥 %d day streak", d.streak.CurrentStreak))
		parts = append(parts, flame)
	}

	level := highlightStyle.Render(fmt.Sprintf("Lv %d", d.xp.Level))
	next := tracker.NextLevelThreshold(d.xp.Level)
	if next > 0 {
		level += mutedStyle.Render(fmt.Sprintf("  %d/%d xp", d.xp.TotalXP, next))
	} else {
		level += mutedStyle.Render(fmt.Sprintf("  %d xp (max)", d.xp.TotalXP))
	}
	parts = append(parts, level)

	return strings.Join(parts, "   ")
}

func (d dashboardModel) renderProgressPanel(w int) string {
	total := d.day.TotalProtein()
	percent := d.day.ProgressPercent()

	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Protein"),
		highlightStyle.Render(fmt.Sprintf("%dg / %dg (%d%%)", total, d.day.Goal, percent)),
	)
	bar := progressBar(w-8, percent)

	rows := []string{header, bar}

	if d.settings.ShowMacros {
		m := d.day.TotalMacros()
		goals := d.day.MacroGoals
		if goals != nil {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf(
				"carbs %d/%dg  calories %d/%d  fiber %d/%dg",
				m.Carbs, goals.Carbs, m.Calories, goals.Calories, m.Fiber, goals.Fiber,
			)))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf(
				"carbs %dg  calories %d  fiber %dg", m.Carbs, m.Calories, m.Fiber,
			)))
		}
	}

	if d.settings.ShowWater {
		waterBar := progressBar(20, d.day.WaterOz*100/max(d.settings.WaterGoalOz, 1))
		rows = append(rows, fmt.Sprintf("%s %s %s",
			titleStyle.Render("Water"),
			waterBar,
			mutedStyle.Render(fmt.Sprintf("%d/%d oz", d.day.WaterOz, d.settings.WaterGoalOz)),
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTimersPanel(w int) string {
	now := d.clock.Now()
	var rows []string

	if d.hasMeal {
		hoursSince := tracker.HoursSince(now, d.lastMeal)
		timer := fmt.Sprintf("Last meal %s ago (at %s)",
			formatHoursShort(hoursSince), formatClock(d.lastMeal))
		if hoursSince > d.settings.MealInterval {
			timer = warningStyle.Render(timer + "  time to eat!")
		} else {
			timer = normalItemStyle.Render(timer)
		}
		rows = append(rows, timer)
	} else {
		rows = append(rows, mutedStyle.Render("No meals logged today. Press a to add one."))
	}

	if win, ok := d.eatingWindow(now); ok {
		state := successStyle.Render("open")
		if !win.Open {
			state = errorStyle.Render("closed")
		}
		rows = append(rows, fmt.Sprintf("%s %s  %s → %s  %s left",
			titleStyle.Render("Eating window"),
			state,
			win.Start.Local().Format("15:04"),
			win.End.Local().Format("15:04"),
			formatHoursShort(win.HoursRemaining),
		))
		if win.Suggestion != "" {
			rows = append(rows, highlightStyle.Render(win.Suggestion))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) eatingWindow(now time.Time) (tracker.Window, bool) {
	var fixed *tracker.FixedBounds
	if d.settings.WindowMode == tracker.WindowFixed &&
		d.settings.WindowStart != nil && d.settings.WindowEnd != nil {
		fixed = &tracker.FixedBounds{
			StartMinutes: *d.settings.WindowStart,
			EndMinutes:   *d.settings.WindowEnd,
		}
	}
	return tracker.ComputeWindow(
		d.day.Entries, d.day.TotalProtein(), d.day.Goal,
		d.settings.MealInterval, fixed, now,
	)
}

func (d dashboardModel) renderFavoritesPanel(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Favorites"))

	for i, f := range d.favorites {
		cursor := "  "
		style := normalItemStyle
		if i == d.favCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %3dg  ×%d",
			cursor, f.Name, f.Protein, f.Count)))
	}
	rows = append(rows, mutedStyle.Render("  ↑/↓: select  enter: log again"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
