package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthStyle returns the style for a health level.
func HealthStyle(h domain.HealthLevel) lipgloss.Style {
	switch h {
	case domain.HealthCritical:
		return StyleRed
	case domain.HealthWarning:
		return StyleYellow
	case domain.HealthGood:
		return StyleGreen
	default:
		return StyleDim
	}
}

// HealthIndicator returns a colored indicator such as "● CRÍTICO".
func HealthIndicator(h domain.HealthLevel) string {
	switch h {
	case domain.HealthCritical:
		return StyleRed.Render("● CRÍTICO")
	case domain.HealthWarning:
		return StyleYellow.Render("● ATENÇÃO")
	case domain.HealthGood:
		return StyleGreen.Render("● OK")
	default:
		return StyleDim.Render("● --")
	}
}

// CriticalityBadge renders a score colored by its band, e.g. "87 HIGH".
func CriticalityBadge(score int, band domain.CriticalityBand) string {
	text := fmt.Sprintf("%3d %s", score, strings.ToUpper(string(band)))
	switch band {
	case domain.BandHigh:
		return StyleRed.Bold(true).Render(text)
	case domain.BandMedium:
		return StyleYellow.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}

// PriorityBadge renders a project priority; unset priorities show dimmed.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Render("urgent")
	case domain.PriorityHigh:
		return StyleYellow.Render("high")
	case domain.PriorityMedium:
		return StyleFg.Render("medium")
	case domain.PriorityLow:
		return StyleDim.Render("low")
	default:
		return StyleDim.Render("--")
	}
}

// TaskStatusPill returns a colored task status label.
func TaskStatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.TaskCompleted:
		return StyleDim.Render("✔ completed")
	case domain.TaskBlocked:
		return StyleRed.Render("✖ blocked")
	case domain.TaskInProgress:
		return StyleBlue.Render("◐ in progress")
	default:
		return StyleFg.Render("○ pending")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
