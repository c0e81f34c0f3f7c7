package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
)

// FormatStatusList renders the status taxonomy in order.
func FormatStatusList(statuses []*domain.ProjectStatus) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		kind := StyleBlue.Render("active")
		if s.IsFinal {
			kind = Dim("final")
		}
		phase := string(s.EffectivePhase())
		if s.Phase == "" {
			phase = Dim(domain.CoalesceStr(phase, "custom") + " (by name)")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.OrderIndex),
			Bold(s.Name),
			phase,
			kind,
			TruncID(s.ID),
		})
	}
	return RenderBox("Phases", RenderTable([]string{"ORDER", "NAME", "PHASE", "KIND", "ID"}, rows, 0))
}

// FormatProjectList renders projects with their status names resolved.
func FormatProjectList(projects []*domain.Project, statusNames map[string]string) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		status := Dim("--")
		if name, ok := statusNames[p.StatusID]; ok {
			status = name
		}
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(Truncate(p.Title, 40)),
			domain.CoalesceStr(p.Client, Dim("--")),
			status,
			PriorityBadge(p.Priority),
			fmt.Sprintf("%d%%", p.Progress),
			DateOrDash(p.Deadline),
		})
	}
	table := RenderTable([]string{"ID", "TITLE", "CLIENT", "STATUS", "PRIORITY", "PROGRESS", "DEADLINE"}, rows, 5)
	return RenderBox("Projects", table)
}

// FormatTaskList renders tasks; projectLabels maps project IDs to display IDs.
func FormatTaskList(tasks []*domain.Task, projectLabels map[string]string) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			domain.CoalesceStr(projectLabels[t.ProjectID], TruncID(t.ProjectID)),
			t.Title,
			TaskStatusPill(t.Status),
			domain.CoalesceStr(t.Assignee, Dim("--")),
			DateOrDash(t.Deadline),
		})
	}
	return RenderBox("Tasks", strings.TrimRight(
		RenderTable([]string{"ID", "PROJECT", "TASK", "STATUS", "ASSIGNEE", "DEADLINE"}, rows), "\n"))
}
