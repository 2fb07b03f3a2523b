package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/proteinpal/internal/report"
	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
)

type weeklyModel struct {
	store  *store.Store
	clock  tracker.Clock
	width  int
	height int

	offset  int // weeks back from the current week, 0 = this week
	summary report.Summary
	loaded  bool

	chart barchart.Model
}

func newWeeklyModel(s *store.Store, clock tracker.Clock) weeklyModel {
	return weeklyModel{
		store: s,
		clock: clock,
		chart: barchart.New(60, 10),
	}
}

func (m *weeklyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type weeklyDataMsg struct {
	summary report.Summary
}

func (m weeklyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings := m.store.Settings()
		anchor := m.clock.Now().AddDate(0, 0, -7*m.offset)
		if m.offset > 0 {
			// A past week has fully elapsed; anchor on its Sunday so
			// none of its days read as future.
			anchor = anchor.AddDate(0, 0, (7-int(anchor.Weekday()))%7)
		}
		summary := report.Summarize(settings, m.store.Day, anchor)
		return weeklyDataMsg{summary: summary}
	}
}

func (m weeklyModel) update(msg tea.Msg) (weeklyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weeklyDataMsg:
		m.summary = msg.summary
		m.loaded = true
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *weeklyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range m.summary.Breakdown {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		switch {
		case d.IsFuture:
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		case d.IsCheatDay:
			style = lipgloss.NewStyle().Foreground(colorWarning)
		case d.HitGoal:
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		case d.IsToday:
			style = lipgloss.NewStyle().Foreground(colorHighlight)
		}

		label := d.DayLabel
		if d.IsWorkoutDay {
			label += "*"
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: d.DateKey, Value: float64(d.Protein), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m weeklyModel) view() string {
	w := m.width - 4

	if !m.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	s := m.summary

	weekLabel := fmt.Sprintf("%s - %s", s.WeekStartLabel, s.WeekEndLabel)
	if m.offset == 0 {
		weekLabel += "  (this week)"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly Summary"), "  ", mutedStyle.Render(weekLabel),
	)

	stats := m.renderStats()
	tip := highlightStyle.Render("💡 " + s.FocusTip)
	nav := mutedStyle.Render("  ←/→: change week   * = workout day")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", stats, "", tip, "", nav,
		),
	)
}

func (m weeklyModel) renderStats() string {
	s := m.summary

	var rows []string
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Goal days hit",
		highlightStyle.Render(fmt.Sprintf("%d / %d", s.ProteinDaysHit, s.TotalDaysElapsed))))
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Workout days covered",
		highlightStyle.Render(fmt.Sprintf("%d / %d", s.WorkoutDaysCompleted, s.ScheduledWorkoutDays))))
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Avg protein per day",
		highlightStyle.Render(fmt.Sprintf("%dg", s.AvgProteinPerDay))))

	if s.BestDay != nil {
		rows = append(rows, fmt.Sprintf("  %-22s %s", "Best day",
			successStyle.Render(fmt.Sprintf("%s (%dg)", s.BestDay.Label, s.BestDay.Protein))))
	}
	if s.WorstDay != nil {
		rows = append(rows, fmt.Sprintf("  %-22s %s", "Lowest day",
			warningStyle.Render(fmt.Sprintf("%s (%dg)", s.WorstDay.Label, s.WorstDay.Protein))))
	}
	if s.CheatDaysUsed > 0 {
		rows = append(rows, fmt.Sprintf("  %-22s %s", "Cheat days used",
			warningStyle.Render(fmt.Sprintf("%d", s.CheatDaysUsed))))
	}

	return strings.Join(rows, "\n")
}
