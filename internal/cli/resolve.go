package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
)

const dateLayout = "2006-01-02"

// parseOptionalDate parses YYYY-MM-DD. Empty input yields nil.
func parseOptionalDate(flag, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", flag, s)
	}
	return &t, nil
}

// parseDateUpdate is parseOptionalDate for update flags, where "none"
// clears the field.
func parseDateUpdate(flag, s string) (*time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return nil, nil
	}
	t, err := parseOptionalDate(flag, s)
	if err == nil && t == nil {
		return nil, fmt.Errorf("%s needs a date or \"none\"", flag)
	}
	return t, err
}

func validateOptionalDate(s string) error {
	_, err := parseOptionalDate("date", s)
	return err
}

// resolveStatusID maps a status name or ID to its ID. Empty input means no
// status.
func resolveStatusID(ctx context.Context, app *App, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	st, err := app.Statuses.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	return st.ID, nil
}

// resolveTaskID accepts a full task ID or an unambiguous prefix of one, as
// printed by task list.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}
	tasks, err := app.Tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// projectLabels maps project IDs to their display IDs.
func projectLabels(ctx context.Context, app *App) (map[string]string, error) {
	projects, err := app.Projects.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(projects))
	for _, p := range projects {
		labels[p.ID] = p.DisplayID()
	}
	return labels, nil
}

func statusNames(statuses []*domain.ProjectStatus) map[string]string {
	names := make(map[string]string, len(statuses))
	for _, s := range statuses {
		names[s.ID] = s.Name
	}
	return names
}

// shortRef returns the 8-character prefix task and report IDs are listed by.
func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func matchReportID(reports []*domain.ClientReport, input string) (string, error) {
	input = strings.TrimSpace(input)
	var matches []string
	for _, r := range reports {
		if r.ID == input {
			return r.ID, nil
		}
		if input != "" && strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("report %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("report ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
