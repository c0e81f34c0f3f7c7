package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/alexanderramin/triage/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateNormalizesInput(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, r.statuses)

	p := &domain.Project{ShortID: " erp01 ", Title: "  ERP  ", Client: " ACME ", Priority: "urgente"}
	require.NoError(t, svc.Create(ctx, p))

	got, err := svc.Resolve(ctx, "erp01")
	require.NoError(t, err)
	assert.Equal(t, "ERP01", got.ShortID)
	assert.Equal(t, "ERP", got.Title)
	assert.Equal(t, "ACME", got.Client)
	assert.Equal(t, domain.PriorityUrgent, got.Priority)

	byID, err := svc.Resolve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID.ID)
}

func TestProjectService_RejectsInvalidWrites(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, r.statuses)

	cases := []struct {
		name string
		p    *domain.Project
		msg  string
	}{
		{"missing title", &domain.Project{}, "title is required"},
		{"progress out of range", &domain.Project{Title: "X", Progress: 101}, "between 0 and 100"},
		{"bad short id", &domain.Project{Title: "X", ShortID: "E1"}, "short ID"},
		{"bad priority", &domain.Project{Title: "X", Priority: "whenever"}, "priority"},
		{"unknown status", &domain.Project{Title: "X", StatusID: "missing"}, "does not exist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, tc.p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestProjectService_ShortIDMustBeUnique(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, r.statuses)

	first := &domain.Project{ShortID: "CRM01", Title: "CRM"}
	require.NoError(t, svc.Create(ctx, first))

	err := svc.Create(ctx, &domain.Project{ShortID: "crm01", Title: "Other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")

	second := &domain.Project{ShortID: "CRM02", Title: "Other"}
	require.NoError(t, svc.Create(ctx, second))
	second.ShortID = "CRM01"
	assert.Error(t, svc.Update(ctx, second))

	first.Progress = 55
	require.NoError(t, svc.Update(ctx, first), "keeping its own short ID is fine")
}

func TestProjectService_ListFilters(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, r.statuses)

	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject("A", testutil.WithClient("ACME"), testutil.WithPriority(domain.PriorityHigh))))
	require.NoError(t, r.projects.Create(ctx, testutil.NewTestProject("B", testutil.WithClient("Globex"))))

	all, err := svc.List(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	acme, err := svc.List(ctx, repository.ProjectFilter{Client: "ACME"})
	require.NoError(t, err)
	require.Len(t, acme, 1)
	assert.Equal(t, "A", acme[0].Title)

	high, err := svc.List(ctx, repository.ProjectFilter{Priority: domain.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, high, 1)
}

func TestProjectService_DeleteCascadesTasks(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, r.statuses)

	p := testutil.NewTestProject("Doomed")
	require.NoError(t, r.projects.Create(ctx, p))
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(p.ID, "Orphan soon")))

	require.NoError(t, svc.Delete(ctx, p.ID))

	tasks, err := r.tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	_, err = svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
