package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/proteinpal/internal/coach"
	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

type coachModel struct {
	store  *store.Store
	clock  tracker.Clock
	rng    *rand.Rand
	width  int
	height int

	settings tracker.UserSettings
	day      tracker.DayRecord
	slots    []coach.MealSlot
	snacks   []coach.Food
	cursor   int

	searching bool
	query     string
	results   []coach.Food
}

func newCoachModel(s *store.Store, clock tracker.Clock) coachModel {
	return coachModel{
		store: s,
		clock: clock,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *coachModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type coachDataMsg struct {
	settings tracker.UserSettings
	day      tracker.DayRecord
}

func (c coachModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return coachDataMsg{
			settings: c.store.Settings(),
			day:      c.store.Day(tracker.DayKey(c.clock.Now())),
		}
	}
}

func (c coachModel) update(msg tea.Msg) (coachModel, tea.Cmd) {
	switch msg := msg.(type) {
	case coachDataMsg:
		c.settings = msg.settings
		c.day = msg.day
		c.rebuildPlan()
		if len(c.snacks) == 0 {
			c.snacks = coach.HighProteinSuggestions(c.rng, 6)
		}
		return c, nil

	case tea.KeyMsg:
		if c.searching {
			return c.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
			return c, nil

		case key.Matches(msg, keys.Down):
			if c.cursor < c.listLen()-1 {
				c.cursor++
			}
			return c, nil

		case key.Matches(msg, keys.Enter):
			return c.logSelected()

		case key.Matches(msg, keys.Shuffle):
			c.snacks = coach.HighProteinSuggestions(c.rng, 6)
			c.cursor = 0
			return c, nil
		}

		if msg.String() == "/" {
			c.searching = true
			c.query = ""
			c.results = nil
			c.cursor = 0
			return c, nil
		}
	}
	return c, nil
}

func (c coachModel) updateSearch(msg tea.KeyMsg) (coachModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.searching = false
		c.query = ""
		c.results = nil
		c.cursor = 0
		return c, nil

	case "enter":
		if c.cursor < len(c.results) {
			food := c.results[c.cursor]
			c.searching = false
			c.query = ""
			c.results = nil
			c.cursor = 0
			return c, c.logFood(food)
		}
		return c, nil

	case "backspace":
		if len(c.query) > 0 {
			c.query = c.query[:len(c.query)-1]
			c.results = coach.Search(c.query, 8)
			c.cursor = 0
		}
		return c, nil

	case "up":
		if c.cursor > 0 {
			c.cursor--
		}
		return c, nil

	case "down":
		if c.cursor < len(c.results)-1 {
			c.cursor++
		}
		return c, nil
	}

	switch msg.Type {
	case tea.KeySpace:
		c.query += " "
	case tea.KeyRunes:
		c.query += string(msg.Runes)
	default:
		return c, nil
	}
	c.results = coach.Search(c.query, 8)
	c.cursor = 0
	return c, nil
}

func (c *coachModel) rebuildPlan() {
	remaining := c.day.Goal - c.day.TotalProtein()
	now := c.clock.Now()
	hourf := float64(now.Hour()) + float64(now.Minute())/60

	hoursRemaining := c.settings.MealInterval
	var fixed *tracker.FixedBounds
	if c.settings.WindowMode == tracker.WindowFixed &&
		c.settings.WindowStart != nil && c.settings.WindowEnd != nil {
		fixed = &tracker.FixedBounds{
			StartMinutes: *c.settings.WindowStart,
			EndMinutes:   *c.settings.WindowEnd,
		}
	}
	if win, ok := tracker.ComputeWindow(c.day.Entries, c.day.TotalProtein(), c.day.Goal,
		c.settings.MealInterval, fixed, now); ok && win.Open {
		hoursRemaining = win.HoursRemaining
	}

	c.slots = coach.PlanMeals(remaining, hoursRemaining, c.settings.MealInterval, hourf)
	if c.cursor >= c.listLen() {
		c.cursor = 0
	}
}

func (c coachModel) listLen() int {
	switch c.settings.SuggestionMode {
	case tracker.SuggestCoach:
		return len(c.slots)
	case tracker.SuggestSnack:
		return len(c.snacks)
	}
	return 0
}

func (c coachModel) logSelected() (coachModel, tea.Cmd) {
	switch c.settings.SuggestionMode {
	case tracker.SuggestCoach:
		if c.cursor < len(c.slots) {
			slot := c.slots[c.cursor]
			macros := slot.TotalMacros
			return c, func() tea.Msg {
				res := logEntry(c.store, c.clock, slot.CombinedName, slot.TotalProtein, slot.Category, &macros)
				if !res.ok {
					return statusMsg{text: "Could not log meal", isError: true}
				}
				return entryLoggedMsg{
					name:       slot.CombinedName,
					protein:    slot.TotalProtein,
					crossed100: res.crossed100,
					leveledUp:  res.leveledUp,
					newLevel:   res.newLevel,
					tier:       res.tier,
					tierChange: res.tierChange,
				}
			}
		}
	case tracker.SuggestSnack:
		if c.cursor < len(c.snacks) {
			return c, c.logFood(c.snacks[c.cursor])
		}
	}
	return c, nil
}

func (c coachModel) logFood(f coach.Food) tea.Cmd {
	macros := f.Macros
	category := f.Category
	if category == "" {
		category = tracker.MealSnack
	}
	return func() tea.Msg {
		res := logEntry(c.store, c.clock, f.Name, f.Protein, category, &macros)
		if !res.ok {
			return statusMsg{text: "Could not log food", isError: true}
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

func (c coachModel) view() string {
	w := c.width - 4

	if c.searching {
		return c.renderSearch(w)
	}

	switch c.settings.SuggestionMode {
	case tracker.SuggestCoach:
		return c.renderPlan(w)
	case tracker.SuggestSnack:
		return c.renderSnacks(w)
	default:
		return panelStyle.Width(w).Render(
			mutedStyle.Render("Suggestions are turned off. Enable them in Settings."))
	}
}

func (c coachModel) renderPlan(w int) string {
	remaining := c.day.Goal - c.day.TotalProtein()

	var rows []string
	rows = append(rows, titleStyle.Render("Meal Coach"))

	if remaining <= 0 {
		rows = append(rows, successStyle.Render("Goal reached! Nothing left to plan. 💪"))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%dg protein to go", remaining)))
	rows = append(rows, "")

	for i, slot := range c.slots {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s  (~%dg target)", cursor, slot.Label, slot.TargetProtein)))
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %s  %dg protein, %d cal",
			slot.CombinedName, slot.TotalProtein, slot.TotalMacros.Calories)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: log meal  /: search foods"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c coachModel) renderSnacks(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Snack Ideas"))
	rows = append(rows, "")

	for i, f := range c.snacks {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %3dg  %d cal",
			cursor, f.Name, f.Protein, f.Macros.Calories)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: log  r: reshuffle  /: search foods"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c coachModel) renderSearch(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Search Foods"))
	rows = append(rows, highlightStyle.Render("/ "+c.query+"▌"))
	rows = append(rows, "")

	if len(c.query) >= 2 && len(c.results) == 0 {
		rows = append(rows, mutedStyle.Render("  No matches"))
	}
	for i, f := range c.results {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %3dg  %d cal",
			cursor, f.Name, f.Protein, f.Macros.Calories)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: log  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
