package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/proteinpal/internal/export"
	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	clock  tracker.Clock
	errors *errSink
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	dayKey        string
	onboarding    bool

	dashboard dashboardModel
	log       logModel
	coach     coachModel
	weekly    weeklyModel
	settings  settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store, clock tracker.Clock) App {
	h := help.New()
	h.ShowAll = false

	sink := &errSink{}
	s.SetErrorHandler(sink.handle)

	a := App{
		store:      s,
		clock:      clock,
		errors:     sink,
		activeView: viewDashboard,
		dayKey:     tracker.DayKey(clock.Now()),
		dashboard:  newDashboardModel(s, clock),
		log:        newLogModel(s, clock),
		coach:      newCoachModel(s, clock),
		weekly:     newWeeklyModel(s, clock),
		settings:   newSettingsModel(s, clock),
		help:       h,
	}

	if !s.OnboardingComplete() {
		a.onboarding = true
		a.activeView = viewSettings
		a.status = "Welcome! Set your protein goal and pick a companion, then press enter."
	} else if s.ShouldSuggestBackup(clock.Now()) {
		a.status = "It's been a while since your last export. Press e to back up."
	}

	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.refresh(),
		a.settings.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.log.setSize(a.width, contentHeight)
		a.coach.setSize(a.width, contentHeight)
		a.weekly.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form, search), delegate first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewLog
			return a, a.log.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCoach
			return a, a.coach.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewWeekly
			return a, a.weekly.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		return a.handleTick()

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case entryLoggedMsg:
		a.status = a.celebration(msg)
		a.statusError = false
		return a, tea.Batch(a.dashboard.refresh(), a.refreshCurrentView())

	case entryDeletedMsg:
		a.status = fmt.Sprintf("Deleted %s", msg.name)
		a.statusError = false
		return a, tea.Batch(a.dashboard.refresh(), a.refreshCurrentView())

	case cheatToggledMsg:
		if msg.on {
			a.status = fmt.Sprintf("%s is now a cheat day. Enjoy!", msg.dateKey)
		} else {
			a.status = fmt.Sprintf("%s is back to a normal day", msg.dateKey)
		}
		a.statusError = false
		return a, tea.Batch(a.dashboard.refresh(), a.refreshCurrentView())

	case settingsSavedMsg:
		a.status = "Settings saved"
		a.statusError = false
		if a.onboarding {
			a.onboarding = false
			a.store.MarkOnboardingComplete()
			a.activeView = viewDashboard
			a.status = "All set! Press a to log your first meal."
		}
		return a, a.dashboard.refresh()

	case dayRolloverMsg:
		a.status = "A new day! Fresh start."
		a.statusError = false
		return a, tea.Batch(a.dashboard.refresh(), a.refreshCurrentView())

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.store.SetLastBackup(a.clock.Now())
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}

	if msgs := a.errors.drain(); len(msgs) > 0 {
		a.status = strings.Join(msgs, "; ")
		a.statusError = true
	}

	if todayKey := tracker.DayKey(a.clock.Now()); todayKey != a.dayKey {
		a.dayKey = todayKey
		cmds = append(cmds, func() tea.Msg { return dayRolloverMsg{dateKey: todayKey} })
	}

	return a, tea.Batch(cmds...)
}

func (a App) celebration(msg entryLoggedMsg) string {
	parts := []string{fmt.Sprintf("Logged %s (+%dg)", msg.name, msg.protein)}
	if msg.crossed100 {
		parts = append(parts, "🎉 Goal crushed!")
	}
	if msg.leveledUp {
		parts = append(parts, fmt.Sprintf("⬆ Level %d!", msg.newLevel))
	}
	if msg.tierChange && msg.tier != tracker.TierNone {
		parts = append(parts, fmt.Sprintf("New streak tier: %s!", msg.tier))
	}
	return strings.Join(parts, "  ")
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewLog:
		a.log, cmd = a.log.update(msg)
	case viewCoach:
		a.coach, cmd = a.coach.update(msg)
	case viewWeekly:
		a.weekly, cmd = a.weekly.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewCoach:
		return a.coach.searching
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewLog:
		return a.log.refresh()
	case viewCoach:
		return a.coach.refresh()
	case viewWeekly:
		return a.weekly.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewLog:
		content = a.log.view()
	case viewCoach:
		content = a.coach.view()
	case viewWeekly:
		content = a.weekly.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("proteinpal")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		days := a.store.AllDays()

		home, _ := os.UserHomeDir()
		dateStr := tracker.DayKey(a.clock.Now())

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("proteinpal-export-%s.csv", dateStr))
			if err := export.ToCSV(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("proteinpal-export-%s.json", dateStr))
			if err := export.ToJSON(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
