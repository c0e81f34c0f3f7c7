package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateImportFile checks the document before conversion and returns every
// problem found. existing holds the statuses already in the store.
func ValidateImportFile(f *ImportFile, existing []*domain.ProjectStatus) []error {
	var errs []error

	if len(f.Statuses) == 0 && len(f.Projects) == 0 {
		return []error{fmt.Errorf("import file declares no statuses and no projects")}
	}

	known := make(map[string]bool, len(existing)+len(f.Statuses))
	for _, s := range existing {
		known[statusKey(s.Name)] = true
	}

	declared := make(map[string]bool, len(f.Statuses))
	for i, s := range f.Statuses {
		path := fmt.Sprintf("statuses[%d]", i)
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
			continue
		}
		key := statusKey(s.Name)
		if declared[key] {
			errs = append(errs, fmt.Errorf("%s.name %q is declared twice", path, s.Name))
		}
		declared[key] = true
		known[key] = true
		if _, err := domain.ParsePhase(s.Phase); err != nil {
			errs = append(errs, fmt.Errorf("%s.phase: %w", path, err))
		}
	}

	shortIDs := make(map[string]bool)
	for i, p := range f.Projects {
		path := fmt.Sprintf("projects[%d]", i)
		errs = append(errs, validateProject(path, &p, known)...)

		if p.ShortID != "" {
			id := strings.ToUpper(p.ShortID)
			if shortIDs[id] {
				errs = append(errs, fmt.Errorf("%s.short_id %q is used twice", path, p.ShortID))
			}
			shortIDs[id] = true
		}

		for j, t := range p.Tasks {
			errs = append(errs, validateTask(fmt.Sprintf("%s.tasks[%d]", path, j), &t)...)
		}
	}

	return errs
}

func validateProject(path string, p *ProjectImport, knownStatuses map[string]bool) []error {
	var errs []error

	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if p.ShortID != "" {
		probe := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("%s.short_id: %w", path, err))
		}
	}
	if p.Status != "" && !knownStatuses[statusKey(p.Status)] {
		errs = append(errs, fmt.Errorf("%s.status: unknown status %q", path, p.Status))
	}
	if _, err := domain.ParsePriority(p.Priority); err != nil {
		errs = append(errs, fmt.Errorf("%s.priority: %w", path, err))
	}
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		errs = append(errs, fmt.Errorf("%s.progress must be between 0 and 100, got %d", path, *p.Progress))
	}

	start, startErr := parseDateField(path+".start_date", p.StartDate)
	deadline, deadlineErr := parseDateField(path+".deadline", p.Deadline)
	for _, err := range []error{startErr, deadlineErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if start != nil && deadline != nil && deadline.Before(*start) {
		errs = append(errs, fmt.Errorf("%s.deadline %q is before start_date %q", path, *p.Deadline, *p.StartDate))
	}

	return errs
}

func validateTask(path string, t *TaskImport) []error {
	var errs []error

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if _, err := domain.ParseTaskStatus(t.Status); err != nil {
		errs = append(errs, fmt.Errorf("%s.status: %w", path, err))
	}
	if _, err := parseDateField(path+".deadline", t.Deadline); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func parseDateField(path string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", path, *s)
	}
	return &t, nil
}

func statusKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
