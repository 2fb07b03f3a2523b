package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/proteinpal/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLog
	viewCoach
	viewWeekly
	viewSettings
)

var viewNames = []string{"Dashboard", "Log", "Coach", "Weekly", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// entryLoggedMsg fires after an entry is persisted and the engines ran.
type entryLoggedMsg struct {
	name       string
	protein    int
	crossed100 bool
	leveledUp  bool
	newLevel   int
	tier       tracker.StreakTier
	tierChange bool
}

type entryDeletedMsg struct {
	name string
}

type cheatToggledMsg struct {
	dateKey string
	on      bool
}

type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

type dayRolloverMsg struct {
	dateKey string
}

// --- Helpers ---

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

func formatClock(millis int64) string {
	return time.UnixMilli(millis).Local().Format("15:04")
}

func formatHoursShort(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// progressBar renders a fixed-width bar, clamped at 100%.
func progressBar(width, percent int) string {
	if width < 2 {
		width = 2
	}
	filled := width * percent / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
