package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
)

// filterProjectsByScope returns only projects whose ID or short ID is in
// scope. If scope is empty, all projects are returned unchanged.
func filterProjectsByScope(projects []*domain.Project, scope []string) []*domain.Project {
	if len(scope) == 0 {
		return projects
	}
	scopeSet := make(map[string]bool, len(scope))
	for _, ref := range scope {
		scopeSet[ref] = true
		scopeSet[strings.ToUpper(ref)] = true
	}
	var filtered []*domain.Project
	for _, p := range projects {
		if scopeSet[p.ID] || (p.ShortID != "" && scopeSet[p.ShortID]) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// resolveProject looks a project up by short ID first, then by ID.
func resolveProject(ctx context.Context, projects repository.ProjectRepo, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("project reference is required")
	}
	p, err := projects.GetByShortID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	p, err = projects.GetByID(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project %q: %w", ref, repository.ErrNotFound)
	}
	return p, err
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
