package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/domain"
)

// FormatBoard renders the ranked board with a summary line and warnings.
func FormatBoard(resp *app.BoardResponse) string {
	var b strings.Builder
	b.WriteString(FormatBoardSummary(resp.Summary))
	b.WriteString("\n\n")

	if len(resp.Projects) == 0 {
		b.WriteString(Dim("No projects to show."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatBoardTable(resp.Projects))
	}

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! " + w))
		b.WriteString("\n")
	}
	return RenderBox("Board", strings.TrimRight(b.String(), "\n"))
}

// FormatBoardSummary renders the one-line portfolio summary.
func FormatBoardSummary(s app.BoardSummary) string {
	return fmt.Sprintf("%s  %d active · %d final   %s %d   %s %d   %s %d",
		Dim(s.GeneratedAt.Format("2006-01-02")),
		s.CountsActive, s.CountsFinal,
		StyleRed.Render("critical"), s.CountsCritical,
		StyleYellow.Render("warning"), s.CountsWarning,
		StyleGreen.Render("good"), s.CountsGood,
	)
}

// FormatBoardTable renders one row per project in board order.
func FormatBoardTable(views []app.ProjectBoardView) string {
	headers := []string{"#", "ID", "PROJECT", "STATUS", "PRIORITY", "SCORE", "HEALTH", "DEADLINE", "TASKS"}
	rows := make([][]string, 0, len(views))
	for i, v := range views {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			boardID(v),
			Bold(Truncate(v.Title, 32)),
			statusLabel(v),
			PriorityBadge(v.Priority),
			scoreLabel(v),
			HealthIndicator(v.Health),
			deadlineLabel(v),
			taskLabel(v.Tasks),
		})
	}
	return RenderTable(headers, rows, 0)
}

// FormatProjectDetail renders the breakdown of one board row: factors,
// health issues and the project's tasks.
func FormatProjectDetail(v app.ProjectBoardView, tasks []*domain.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(v.Title), Dim(boardID(v)))
	if v.Client != "" {
		fmt.Fprintf(&b, "Client:    %s\n", v.Client)
	}
	fmt.Fprintf(&b, "Status:    %s\n", statusLabel(v))
	fmt.Fprintf(&b, "Priority:  %s\n", PriorityBadge(v.Priority))
	fmt.Fprintf(&b, "Progress:  %s\n", RenderProgress(v.Progress, 20))
	if v.StartDate != nil {
		fmt.Fprintf(&b, "Start:     %s\n", *v.StartDate)
	}
	fmt.Fprintf(&b, "Deadline:  %s\n", deadlineDetail(v))
	fmt.Fprintf(&b, "Score:     %s\n", scoreLabel(v))
	fmt.Fprintf(&b, "Health:    %s\n", HealthIndicator(v.Health))

	if len(v.Factors) > 0 {
		b.WriteString("\n" + Header("Criticality factors") + "\n")
		rows := make([][]string, 0, len(v.Factors))
		for _, f := range v.Factors {
			rows = append(rows, []string{string(f.Code), fmt.Sprintf("+%d", f.Points), f.Message})
		}
		b.WriteString(RenderTable([]string{"FACTOR", "POINTS", "DETAIL"}, rows, 1))
	}

	if len(v.Issues) > 0 {
		b.WriteString("\n" + Header("Issues") + "\n")
		for _, issue := range v.Issues {
			b.WriteString(HealthStyle(v.Health).Render("• "+issue) + "\n")
		}
	}

	b.WriteString("\n" + Header("Tasks") + "\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("No tasks.") + "\n")
	} else {
		rows := make([][]string, 0, len(tasks))
		for _, t := range tasks {
			rows = append(rows, []string{
				TruncID(t.ID),
				t.Title,
				TaskStatusPill(t.Status),
				domain.CoalesceStr(t.Assignee, Dim("--")),
				DateOrDash(t.Deadline),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "TASK", "STATUS", "ASSIGNEE", "DEADLINE"}, rows))
	}

	return strings.TrimRight(b.String(), "\n")
}

func boardID(v app.ProjectBoardView) string {
	if v.ShortID != "" {
		return v.ShortID
	}
	return TruncID(v.ProjectID)
}

func statusLabel(v app.ProjectBoardView) string {
	name := domain.CoalesceStr(v.StatusName, "--")
	if v.IsFinal {
		return StyleDim.Render("✔ " + name)
	}
	if v.StatusName == "" {
		return Dim(name)
	}
	return StyleBlue.Render(name)
}

func scoreLabel(v app.ProjectBoardView) string {
	if v.IsFinal {
		return Dim("  - final")
	}
	return CriticalityBadge(v.Criticality, v.Band)
}

func deadlineLabel(v app.ProjectBoardView) string {
	if v.DaysLeft == nil {
		return Dim("--")
	}
	if v.IsFinal {
		return Dim(*v.Deadline)
	}
	return DeadlineStyled(*v.DaysLeft)
}

func deadlineDetail(v app.ProjectBoardView) string {
	if v.Deadline == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%s (%s)", *v.Deadline, deadlineLabel(v))
}

func taskLabel(c app.TaskCounts) string {
	if c.Total == 0 {
		return Dim("--")
	}
	label := fmt.Sprintf("%d/%d", c.Completed, c.Total)
	var extra []string
	if c.Blocked > 0 {
		extra = append(extra, StyleRed.Render(fmt.Sprintf("%d blocked", c.Blocked)))
	}
	if c.Overdue > 0 {
		extra = append(extra, StyleYellow.Render(fmt.Sprintf("%d late", c.Overdue)))
	}
	if len(extra) > 0 {
		label += " " + strings.Join(extra, " ")
	}
	return label
}
