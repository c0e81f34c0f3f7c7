package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/google/uuid"
)

// Bundle holds the records produced from an import document, ready to be
// persisted in one transaction. Statuses contains only newly declared
// statuses; references to stored statuses resolve to their existing IDs.
type Bundle struct {
	Statuses []*domain.ProjectStatus
	Projects []*domain.Project
	Tasks    []*domain.Task
}

// Convert transforms a validated ImportFile into domain records.
// Call ValidateImportFile first; Convert assumes the document is valid.
func Convert(f *ImportFile, existing []*domain.ProjectStatus, now time.Time) (*Bundle, error) {
	now = now.UTC().Truncate(time.Second)

	byName := make(map[string]string, len(existing)+len(f.Statuses))
	for _, s := range existing {
		byName[statusKey(s.Name)] = s.ID
	}

	b := &Bundle{}

	for i, si := range f.Statuses {
		if _, ok := byName[statusKey(si.Name)]; ok {
			continue
		}
		phase, err := domain.ParsePhase(si.Phase)
		if err != nil {
			return nil, fmt.Errorf("statuses[%d]: %w", i, err)
		}
		s := &domain.ProjectStatus{
			ID:         uuid.New().String(),
			Name:       strings.TrimSpace(si.Name),
			Phase:      phase,
			IsFinal:    si.Final,
			OrderIndex: domain.IntFromPtrWithDefault(len(existing)+i, si.Order),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		byName[statusKey(s.Name)] = s.ID
		b.Statuses = append(b.Statuses, s)
	}

	for i, pi := range f.Projects {
		priority, err := domain.ParsePriority(pi.Priority)
		if err != nil {
			return nil, fmt.Errorf("projects[%d]: %w", i, err)
		}

		var statusID string
		if pi.Status != "" {
			id, ok := byName[statusKey(pi.Status)]
			if !ok {
				return nil, fmt.Errorf("projects[%d]: unknown status %q", i, pi.Status)
			}
			statusID = id
		}

		p := &domain.Project{
			ID:          uuid.New().String(),
			ShortID:     strings.ToUpper(pi.ShortID),
			Title:       strings.TrimSpace(pi.Title),
			Client:      pi.Client,
			Description: pi.Description,
			StatusID:    statusID,
			Priority:    priority,
			Progress:    domain.IntFromPtrWithDefault(0, pi.Progress),
			StartDate:   parseOptionalDate(pi.StartDate),
			Deadline:    parseOptionalDate(pi.Deadline),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("projects[%d]: %w", i, err)
		}
		b.Projects = append(b.Projects, p)

		for j, ti := range pi.Tasks {
			status, err := domain.ParseTaskStatus(ti.Status)
			if err != nil {
				return nil, fmt.Errorf("projects[%d].tasks[%d]: %w", i, j, err)
			}
			b.Tasks = append(b.Tasks, &domain.Task{
				ID:        uuid.New().String(),
				ProjectID: p.ID,
				Title:     strings.TrimSpace(ti.Title),
				Status:    status,
				Assignee:  ti.Assignee,
				Deadline:  parseOptionalDate(ti.Deadline),
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}

	return b, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
