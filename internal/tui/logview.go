package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

// maxLogLookback bounds how far back the log view can page.
const maxLogLookback = 3650

type logModel struct {
	store  *store.Store
	clock  tracker.Clock
	width  int
	height int

	offset   int // days back from today, 0 = today
	settings tracker.UserSettings
	day      tracker.DayRecord
	cursor   int
}

func newLogModel(s *store.Store, clock tracker.Clock) logModel {
	return logModel{store: s, clock: clock}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l logModel) viewedKey() string {
	return tracker.DayKey(l.clock.Now().AddDate(0, 0, -l.offset))
}

type logDataMsg struct {
	settings tracker.UserSettings
	day      tracker.DayRecord
}

func (l logModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return logDataMsg{
			settings: l.store.Settings(),
			day:      l.store.Day(l.viewedKey()),
		}
	}
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logDataMsg:
		l.settings = msg.settings
		l.day = msg.day
		if l.cursor >= len(l.day.Entries) {
			l.cursor = len(l.day.Entries) - 1
		}
		if l.cursor < 0 {
			l.cursor = 0
		}
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if l.offset < maxLogLookback {
				l.offset++
				l.cursor = 0
			}
			return l, l.refresh()

		case key.Matches(msg, keys.Right):
			if l.offset > 0 {
				l.offset--
				l.cursor = 0
			}
			return l, l.refresh()

		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
			return l, nil

		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.day.Entries)-1 {
				l.cursor++
			}
			return l, nil

		case key.Matches(msg, keys.Delete):
			return l.deleteSelected()

		case key.Matches(msg, keys.Later):
			return l.shiftSelected(15)

		case key.Matches(msg, keys.Earlier):
			return l.shiftSelected(-15)

		case key.Matches(msg, keys.Cheat):
			return l.toggleCheat()
		}
	}
	return l, nil
}

func (l logModel) deleteSelected() (logModel, tea.Cmd) {
	if l.cursor >= len(l.day.Entries) {
		return l, nil
	}
	entry := l.day.Entries[l.cursor]
	dateKey := l.viewedKey()
	return l, func() tea.Msg {
		removed, ok := deleteEntry(l.store, l.clock, dateKey, entry.ID)
		if !ok {
			return statusMsg{text: "Could not delete entry", isError: true}
		}
		return entryDeletedMsg{name: removed.Name}
	}
}

func (l logModel) shiftSelected(deltaMinutes int) (logModel, tea.Cmd) {
	if l.cursor >= len(l.day.Entries) {
		return l, nil
	}
	entry := l.day.Entries[l.cursor]
	dateKey := l.viewedKey()
	if !shiftEntryTime(l.store, l.clock, dateKey, entry.ID, deltaMinutes) {
		return l, statusCmd("Could not adjust time", true)
	}
	return l, l.refresh()
}

func (l logModel) toggleCheat() (logModel, tea.Cmd) {
	dateKey := l.viewedKey()
	on, err := toggleCheatDay(l.store, l.clock, dateKey)
	if err != nil {
		return l, statusCmd(err.Error(), true)
	}
	return l, tea.Batch(
		l.refresh(),
		func() tea.Msg { return cheatToggledMsg{dateKey: dateKey, on: on} },
	)
}

func (l logModel) view() string {
	w := l.width - 4

	dateKey := l.viewedKey()
	header := titleStyle.Render("Log  ") + highlightStyle.Render(dateKey)
	if l.offset == 0 {
		header += mutedStyle.Render("  (today)")
	} else if l.offset == 1 {
		header += mutedStyle.Render("  (yesterday)")
	}
	if l.day.IsCheatDay {
		header += "  " + warningStyle.Render("CHEAT DAY")
	}

	total := l.day.TotalProtein()
	summary := fmt.Sprintf("%dg / %dg", total, l.day.Goal)
	if tracker.IsDaySuccessful(l.day) {
		summary = successStyle.Render(summary + "  ✓")
	} else {
		summary = normalItemStyle.Render(summary)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, summary)
	rows = append(rows, "")

	if len(l.day.Entries) == 0 {
		rows = append(rows, mutedStyle.Render("  No entries for this day"))
	}

	for i, e := range l.day.Entries {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s  %-24s %4dg  %s",
			cursor, formatClock(e.Timestamp), e.Name, e.Protein, e.Category.Label())
		rows = append(rows, style.Render(line))
	}

	if l.settings.ShowWater && l.day.WaterOz > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Water: %d oz", l.day.WaterOz)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: day  ↑/↓: select  d: delete  +/-: adjust time  c: cheat day"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
