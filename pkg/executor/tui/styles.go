package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	coralPink   = lipgloss.Color("#FFCCCB") // Lighter coral accent - secondary
	mintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - passing checks
	amber       = lipgloss.Color("#FFD59E") // Warnings
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
)

// Common Styles
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	warningStyle = lipgloss.NewStyle().
			Foreground(amber)

	passStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	titleStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(mutedGray).
				PaddingLeft(4)

	elementStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			PaddingLeft(4)

	cursorStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	// Tab bar
	activeTabStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedGray).
				Padding(0, 2)

	// Container Styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)
)

// scoreStyle picks the score color: green from 90, amber from 50.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 90:
		return passStyle.Bold(true)
	case score >= 50:
		return warningStyle.Bold(true)
	default:
		return errorStyle.Bold(true)
	}
}
