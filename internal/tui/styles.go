package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
	colorGold      = lipgloss.Color("#F1C40F")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Avatar
	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			Align(lipgloss.Center)

	moodLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight).
			Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// tierStyle picks a color for a streak tier badge.
func tierStyle(tier tracker.StreakTier) lipgloss.Style {
	switch tier {
	case tracker.TierBronze:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#CD7F32"))
	case tracker.TierSilver:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	case tracker.TierGold:
		return lipgloss.NewStyle().Foreground(colorGold)
	case tracker.TierQueen:
		return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	default:
		return mutedStyle
	}
}
