package formatter

import (
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
)

// FormatReport renders a stored client report.
func FormatReport(r *domain.ClientReport) string {
	var b strings.Builder
	b.WriteString(Dim(r.CreatedAt.Format("2006-01-02 15:04") + " · " + sourceLabel(r.Source)))
	b.WriteString("\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n")

	writeSection := func(title string, lines []string, bullet string) {
		if len(lines) == 0 {
			return
		}
		b.WriteString("\n" + Header(title) + "\n")
		for _, l := range lines {
			b.WriteString(bullet + " " + l + "\n")
		}
	}
	writeSection("Destaques", r.Highlights, StyleGreen.Render("+"))
	writeSection("Riscos", r.Risks, StyleRed.Render("!"))

	return RenderBox(r.Title, strings.TrimRight(b.String(), "\n"))
}

// FormatReportList renders report metadata newest first.
func FormatReportList(reports []*domain.ClientReport, projectLabels map[string]string) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		scope := Dim("portfolio")
		if r.ProjectID != "" {
			scope = domain.CoalesceStr(projectLabels[r.ProjectID], TruncID(r.ProjectID))
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			r.CreatedAt.Format("2006-01-02 15:04"),
			scope,
			Bold(Truncate(r.Title, 48)),
			sourceLabel(r.Source),
		})
	}
	return RenderBox("Reports", strings.TrimRight(
		RenderTable([]string{"ID", "CREATED", "SCOPE", "TITLE", "SOURCE"}, rows), "\n"))
}

func sourceLabel(s domain.ReportSource) string {
	if s == domain.ReportFromLLM {
		return StylePurple.Render("llm")
	}
	return Dim("deterministic")
}
