package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/charmbracelet/glamour"
)

// ReportMarkdown renders a client report as a Markdown document, ready to
// paste into an email or a wiki page.
func ReportMarkdown(r *domain.ClientReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "_%s · %s_\n\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Source)
	if r.Summary != "" {
		b.WriteString(r.Summary + "\n")
	}
	for _, sec := range []struct {
		title string
		lines []string
	}{{"Destaques", r.Highlights}, {"Riscos", r.Risks}} {
		if len(sec.lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", sec.title)
		for _, l := range sec.lines {
			b.WriteString("- " + l + "\n")
		}
	}
	return b.String()
}

// RenderMarkdown lays out Markdown for the terminal. Styled output uses the
// dark/light auto style; plain output uses glamour's notty style.
func RenderMarkdown(md string, width int, styled bool) (string, error) {
	style := glamour.WithStylePath("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
