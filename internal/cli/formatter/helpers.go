package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays renders a signed day distance such as "In 3d" or "2w ago".
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateFrom returns a human-friendly distance between two calendar
// days. Times of day are ignored.
func RelativeDateFrom(t, now time.Time) string {
	return RelativeDays(domain.DaysBetween(now, t))
}

// DeadlineStyled colors a day distance by urgency.
func DeadlineStyled(days int) string {
	text := RelativeDays(days)
	switch {
	case days < 0 || days <= 3:
		return StyleRed.Render(text)
	case days <= 14:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// RenderProgress renders a percentage bar like [████░░░░]  45%.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateOrDash formats an optional date as YYYY-MM-DD.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

// Truncate shortens s to width runes, adding an ellipsis when cut.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 2 {
		return s
	}
	return string(r[:width-1]) + "…"
}
